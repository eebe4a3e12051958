package generator

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/shouni/go-pixetale/pkg/domain"
	"github.com/shouni/go-pixetale/pkg/prompts"

	"google.golang.org/genai"
)

// GeminiStoryGenerator はスキーマ制約付きの1回の呼び出しで物語を生成します。
// この層では再試行しません。
type GeminiStoryGenerator struct {
	client        ContentGenerator
	promptBuilder prompts.StoryPromptBuilder
	model         string
	temperature   float32
}

// NewGeminiStoryGenerator は GeminiStoryGenerator を生成します。
func NewGeminiStoryGenerator(client ContentGenerator, pb prompts.StoryPromptBuilder, model string) *GeminiStoryGenerator {
	if model == "" {
		model = DefaultTextModel
	}
	return &GeminiStoryGenerator{
		client:        client,
		promptBuilder: pb,
		model:         model,
		temperature:   DefaultStoryTemperature,
	}
}

// GenerateStory は物語テキストを生成します。失敗は全て ErrGeneration に一致するエラーで返します。
func (g *GeminiStoryGenerator) GenerateStory(ctx context.Context, topic string, lang domain.Language, hero *domain.HeroTraits) (*domain.StoryDocument, error) {
	fail := func(err error) error {
		return &Error{Kind: Classify(err), Op: OpStory, Attempts: 1, Err: err}
	}

	prompt, err := g.promptBuilder.Build(prompts.NewStoryTemplateData(strings.TrimSpace(topic), lang, hero))
	if err != nil {
		return nil, &Error{Kind: KindFatal, Op: OpStory, Attempts: 0, Err: err}
	}

	start := time.Now()
	slog.InfoContext(ctx, "物語の生成リクエストを送信します",
		"model", g.model,
		"language", lang,
		"personalized", hero.HasPersonalization())

	resp, err := g.client.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(g.temperature),
		ResponseMIMEType: jsonMIMEType,
		ResponseSchema:   storySchema(),
	})
	if err != nil {
		return nil, fail(err)
	}

	text := responseText(resp)
	if strings.TrimSpace(text) == "" {
		return nil, fail(errEmptyResponse)
	}

	doc, err := parseStory(text)
	if err != nil {
		return nil, fail(err)
	}

	slog.InfoContext(ctx, "物語を受信しました",
		"title", doc.Title,
		"pages", len(doc.Pages),
		"elapsed", time.Since(start).Round(time.Millisecond))
	return doc, nil
}
