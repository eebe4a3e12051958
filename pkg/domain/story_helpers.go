package domain

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

const defaultExportBaseName = "Story"

var (
	unsafeNameRun  = regexp.MustCompile(`[^\p{L}\p{N}-]+`)
	paragraphBreak = regexp.MustCompile(`\n\s*\n`)

	validate     *validator.Validate
	validateOnce sync.Once
)

// Clone はページスライスまで含めたディープコピーを返します。
// 公開済みのドキュメントを後から書き換えないために使います。
func (d *StoryDocument) Clone() *StoryDocument {
	if d == nil {
		return nil
	}
	c := *d
	if d.Pages != nil {
		c.Pages = make([]StoryPage, len(d.Pages))
		copy(c.Pages, d.Pages)
	}
	return &c
}

// Validate はモデル出力が絵本として最低限の構造を満たすか検証します。
func (d *StoryDocument) Validate() error {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	if err := validate.Struct(d); err != nil {
		return fmt.Errorf("story document is invalid: %w", err)
	}
	if strings.TrimSpace(d.Title) == "" {
		return fmt.Errorf("story document is invalid: title is blank")
	}
	return nil
}

// Normalize はページ番号を並び順に合わせて振り直します。
func (d *StoryDocument) Normalize() {
	for i := range d.Pages {
		d.Pages[i].PageNumber = i + 1
	}
}

// ExportBaseName はエクスポートファイル名の接頭辞を返します。
// 文字・数字・"-" 以外の連続（空白やパス区切り、"." を含む）は "_" 1つに置き換え、前後の "_" は落とします。
func (d *StoryDocument) ExportBaseName() string {
	name := strings.Trim(unsafeNameRun.ReplaceAllString(d.Title, "_"), "_")
	if name == "" {
		return defaultExportBaseName
	}
	return name
}

// Paragraphs はページ本文を空行区切りの段落に分割します。
func (p StoryPage) Paragraphs() []string {
	blocks := paragraphBreak.Split(p.Content, -1)
	paragraphs := make([]string, 0, len(blocks))
	for _, b := range blocks {
		if t := strings.TrimSpace(b); t != "" {
			paragraphs = append(paragraphs, t)
		}
	}
	return paragraphs
}
