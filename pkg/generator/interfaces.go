package generator

import (
	"context"

	"github.com/shouni/go-pixetale/pkg/domain"

	"google.golang.org/genai"
)

// ContentGenerator は Gemini API の generateContent 呼び出しを抽象化します。
// *genai.Models がこのインターフェースを満たします。
type ContentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// StoryGenerator はトピックから挿絵のない絵本ドキュメントを生成します。
type StoryGenerator interface {
	GenerateStory(ctx context.Context, topic string, lang domain.Language, hero *domain.HeroTraits) (*domain.StoryDocument, error)
}

// IllustrationGenerator はシーン記述から挿絵1枚を生成し、data URI として返します。
type IllustrationGenerator interface {
	GenerateIllustration(ctx context.Context, scene string) (string, error)
}
