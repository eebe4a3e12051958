package publisher

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/renderer/html"
)

// paragraphRenderer はページ本文を段落の HTML に変換します。
// 生の HTML は出力しません。
type paragraphRenderer struct {
	soft goldmark.Markdown
	hard goldmark.Markdown
}

func newParagraphRenderer() *paragraphRenderer {
	return &paragraphRenderer{
		soft: goldmark.New(),
		hard: goldmark.New(goldmark.WithRendererOptions(html.WithHardWraps())),
	}
}

// Paragraphs は空行区切りで段落に分けた HTML を返します。
func (r *paragraphRenderer) Paragraphs(content string) (template.HTML, error) {
	return r.convert(r.soft, content)
}

// Lines は改行ごとに改行タグを入れた HTML を返します。
func (r *paragraphRenderer) Lines(content string) (template.HTML, error) {
	return r.convert(r.hard, content)
}

func (r *paragraphRenderer) convert(md goldmark.Markdown, content string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(strings.TrimSpace(content)), &buf); err != nil {
		return "", fmt.Errorf("本文の HTML 変換に失敗しました: %w", err)
	}
	return template.HTML(buf.String()), nil
}
