package prompts

import (
	"fmt"
	"strings"
	"text/template"
)

// TextPromptBuilder は物語生成プロンプトのテンプレートを保持します。
type TextPromptBuilder struct {
	tmpl *template.Template
}

// NewTextPromptBuilder は埋め込みテンプレートを解析して TextPromptBuilder を初期化します。
func NewTextPromptBuilder() (*TextPromptBuilder, error) {
	return newTextPromptBuilder(StoryPrompt)
}

func newTextPromptBuilder(content string) (*TextPromptBuilder, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("プロンプトテンプレート (go:embed) の読み込みに失敗しました: 内容が空です")
	}
	tmpl, err := template.New("story").Option("missingkey=error").Parse(content)
	if err != nil {
		return nil, fmt.Errorf("プロンプトの解析に失敗: %w", err)
	}
	return &TextPromptBuilder{tmpl: tmpl}, nil
}

// Build はテンプレートを実行して物語生成プロンプトを返します。
func (b *TextPromptBuilder) Build(data StoryTemplateData) (string, error) {
	if strings.TrimSpace(data.Topic) == "" {
		return "", fmt.Errorf("トピックが空です")
	}
	if data.PageCount <= 0 {
		data.PageCount = DefaultPageCount
	}

	var sb strings.Builder
	if err := b.tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("プロンプトテンプレートの実行に失敗しました: %w", err)
	}
	return sb.String(), nil
}
