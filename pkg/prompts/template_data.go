package prompts

import (
	_ "embed"

	"github.com/shouni/go-pixetale/pkg/domain"
)

const (
	// DefaultPageCount は1冊あたりのページ数です。
	DefaultPageCount = 10

	// BottomLayoutInstruction は本文を下に置くページの挿絵プロンプト末尾です。
	BottomLayoutInstruction = "...subject centered in the UPPER 70% of the frame, leave EMPTY DARK SPACE or simple ground at the BOTTOM 30% for text, wide shot."
	// TopLayoutInstruction は本文を上に置くページの挿絵プロンプト末尾です。
	TopLayoutInstruction = "...subject centered in the LOWER 70% of the frame, leave EMPTY SKY or simple ceiling at the TOP 30% for text, wide shot."

	imagePromptTail = "no text, no speech bubbles, vertical composition, cinematic shot, 16-bit pixel art style"
)

//go:embed story.md
var StoryPrompt string

// StoryTemplateData は物語生成プロンプトのテンプレートに渡すデータ構造です。
type StoryTemplateData struct {
	Topic     string
	Language  domain.Language
	Bilingual bool
	PageCount int

	Personalized    bool
	HeroName        string
	HeroDisplayName string
	HeroGender      string
	HeroHair        string
	HeroEyes        string
	HeroClothing    string
	VisualAnchor    string

	BottomLayout string
	TopLayout    string
	PromptTail   string
}

// NewStoryTemplateData はユーザー入力からテンプレートデータを組み立てます。
func NewStoryTemplateData(topic string, lang domain.Language, hero *domain.HeroTraits) StoryTemplateData {
	data := StoryTemplateData{
		Topic:        topic,
		Language:     lang,
		Bilingual:    lang.IsBilingual(),
		PageCount:    DefaultPageCount,
		BottomLayout: BottomLayoutInstruction,
		TopLayout:    TopLayoutInstruction,
		PromptTail:   imagePromptTail,
	}
	if hero.HasPersonalization() {
		data.Personalized = true
		data.HeroName = hero.Name
		data.HeroDisplayName = hero.DisplayName()
		data.HeroGender = hero.GenderOrDefault()
		data.HeroHair = hero.Hair
		data.HeroEyes = hero.Eyes
		data.HeroClothing = hero.Clothing
		data.VisualAnchor = hero.VisualAnchor()
	}
	return data
}
