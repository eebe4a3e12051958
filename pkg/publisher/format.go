package publisher

import (
	"fmt"
	"strings"

	"github.com/shouni/go-pixetale/pkg/domain"
)

// Format はエクスポートする HTML の種類です。
type Format string

const (
	FormatPrintable Format = "printable"
	FormatColoring  Format = "coloring"
	FormatFlipbook  Format = "flipbook"
)

// Formats は Publish が既定で書き出す全形式です。
var Formats = []Format{FormatPrintable, FormatColoring, FormatFlipbook}

var fileSuffixes = map[Format]string{
	FormatPrintable: "_Printable_Story.html",
	FormatColoring:  "_ColoringBook.html",
	FormatFlipbook:  "_Interactive_Flipbook.html",
}

// ParseFormat は文字列を Format に変換します。
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := fileSuffixes[f]; !ok {
		return "", fmt.Errorf("unsupported export format %q", s)
	}
	return f, nil
}

// FileName はエクスポートファイル名を返します。例: "The_Cat_Knight_ColoringBook.html"
func FileName(doc *domain.StoryDocument, f Format) string {
	return doc.ExportBaseName() + fileSuffixes[f]
}
