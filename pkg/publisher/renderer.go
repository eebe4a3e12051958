package publisher

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/shouni/go-pixetale/pkg/asset"
	"github.com/shouni/go-pixetale/pkg/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

var templateFiles = map[Format]string{
	FormatPrintable: "templates/printable.html",
	FormatColoring:  "templates/coloring.html",
	FormatFlipbook:  "templates/flipbook.html",
}

type bookView struct {
	Title string
	Cover template.URL
	Pages []pageView
}

type pageView struct {
	Number       int
	Image        template.URL
	Paragraphs   template.HTML
	Lines        template.HTML
	TextPosition domain.TextPosition
}

// Renderer は StoryDocument から単体で開ける HTML を生成します。
type Renderer struct {
	templates map[Format]*template.Template
	text      *paragraphRenderer
}

// NewRenderer は埋め込みテンプレートを解析して Renderer を初期化します。
func NewRenderer() (*Renderer, error) {
	parsed := make(map[Format]*template.Template, len(templateFiles))
	for f, name := range templateFiles {
		tmpl, err := template.ParseFS(templateFS, name)
		if err != nil {
			return nil, fmt.Errorf("テンプレート '%s' の解析に失敗: %w", name, err)
		}
		parsed[f] = tmpl
	}
	return &Renderer{templates: parsed, text: newParagraphRenderer()}, nil
}

// Render は指定した形式の HTML を w に書き出します。
func (r *Renderer) Render(w io.Writer, f Format, doc *domain.StoryDocument) error {
	if doc == nil {
		return fmt.Errorf("publisher: データが空です")
	}
	tmpl, ok := r.templates[f]
	if !ok {
		return fmt.Errorf("publisher: 不明な形式です: '%s'", f)
	}
	view, err := r.buildView(doc)
	if err != nil {
		return err
	}
	if err := tmpl.Execute(w, view); err != nil {
		return fmt.Errorf("publisher: HTML生成に失敗しました: %w", err)
	}
	return nil
}

func (r *Renderer) buildView(doc *domain.StoryDocument) (bookView, error) {
	view := bookView{
		Title: doc.Title,
		Cover: safeImageURL(doc.CoverImageURL),
		Pages: make([]pageView, 0, len(doc.Pages)),
	}
	for i, p := range doc.Pages {
		paragraphs, err := r.text.Paragraphs(p.Content)
		if err != nil {
			return bookView{}, err
		}
		lines, err := r.text.Lines(p.Content)
		if err != nil {
			return bookView{}, err
		}
		view.Pages = append(view.Pages, pageView{
			Number:       i + 1,
			Image:        safeImageURL(p.ImageURL),
			Paragraphs:   paragraphs,
			Lines:        lines,
			TextPosition: p.TextPosition,
		})
	}
	return view, nil
}

// safeImageURL は画像として埋め込んでよい URL だけを通します。
// html/template は data URI を無害化してしまうので、ここで検査して template.URL にします。
func safeImageURL(s string) template.URL {
	lower := strings.ToLower(s)
	switch {
	case strings.HasPrefix(lower, "data:image/") && asset.IsDataURI(s):
		return template.URL(s)
	case strings.HasPrefix(lower, "https://"), strings.HasPrefix(lower, "http://"):
		return template.URL(s)
	}
	return ""
}
