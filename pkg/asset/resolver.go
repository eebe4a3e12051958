package asset

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/shouni/go-utils/urlpath"
)

const (
	// DefaultImageDir は抽出した挿絵を格納するデフォルトのディレクトリ名です。
	DefaultImageDir = "images"
	// DefaultStoryJSON は生成された物語のデフォルト JSON ファイル名です。
	DefaultStoryJSON = "story.json"
	// DefaultPageFileName はページ挿絵の共通のベースファイル名です。
	DefaultPageFileName = "page.png"
	// DefaultCoverFileName は表紙のファイル名です。
	DefaultCoverFileName = "cover.png"
)

// PageFileRegex はページ挿絵 (page_1.png 等) に一致します
var PageFileRegex = createIndexedRegex(DefaultPageFileName)

// ResolveOutputPath は、ベースとなるディレクトリパスとファイル名から、
// GCS/ローカルを考慮した最終的な出力パスを生成します。
func ResolveOutputPath(baseDir, fileName string) (string, error) {
	return urlpath.ResolvePath(baseDir, fileName)
}

// GenerateIndexedPath は、指定されたベースパスの拡張子の前に連番を挿入します。
// 例: "out/images/page.png", 1 -> "out/images/page_1.png"
func GenerateIndexedPath(basePath string, index int) (string, error) {
	return urlpath.GenerateIndexedPath(basePath, index)
}

// IsRemotePath はローカルに書き込めないリモートのパス（gs:// や https:// など）かどうかを返します。
func IsRemotePath(p string) bool {
	if urlpath.IsRemoteURI(p) {
		return true
	}
	lower := strings.ToLower(p)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

func createIndexedRegex(fileName string) *regexp.Regexp {
	ext := filepath.Ext(fileName)
	baseName := strings.TrimSuffix(fileName, ext)
	pattern := fmt.Sprintf(`^%s_\d+%s$`, regexp.QuoteMeta(baseName), regexp.QuoteMeta(ext))
	return regexp.MustCompile(pattern)
}
