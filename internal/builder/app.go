package builder

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shouni/go-pixetale/internal/config"
	"github.com/shouni/go-pixetale/pkg/generator"

	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// AppContext は、アプリケーション実行に必要な共通コンテキストを保持する
// これを各Build関数に渡すことで、依存関係の注入を簡素化します。
type AppContext struct {
	Config  *config.Config         // Configは、環境変数から読み込まれたグローバルな設定です（APIキー、モデル名など）。
	Options config.GenerateOptions // Optionsは、コマンドラインから渡された実行時の設定です（トピック、出力先など）。

	story       generator.StoryGenerator
	illustrator generator.IllustrationGenerator
}

// NewAppContext は設定に従って生成クライアントを初期化し、AppContext を返します。
// Options.Mock が真なら API キーなしで動く MockGenerator を使います。
func NewAppContext(ctx context.Context, cfg *config.Config) (*AppContext, error) {
	appCtx := &AppContext{Config: cfg, Options: cfg.Options}

	if cfg.Options.Mock {
		slog.InfoContext(ctx, "モック生成器で実行します")
		return appCtx, nil
	}

	client, err := InitializeAIClient(ctx, cfg.GeminiAPIKey)
	if err != nil {
		return nil, err
	}
	story, err := InitializeStoryGenerator(client, cfg.Options.AIModel)
	if err != nil {
		return nil, err
	}
	appCtx.story = story
	appCtx.illustrator = InitializeIllustrator(client, cfg)
	return appCtx, nil
}

// generators は生成器の組を返します。
// モックは呼び出し記録を持つため、呼ぶたびに新しいものを作り、セッション間で共有しません。
func (a *AppContext) generators() (generator.StoryGenerator, generator.IllustrationGenerator) {
	if a.Options.Mock {
		m := generator.NewMockGenerator()
		return m, m
	}
	return a.story, a.illustrator
}

// InitializeAIClient は genai クライアントを初期化し、モデル呼び出し口を返します。
func InitializeAIClient(ctx context.Context, apiKey string) (generator.ContentGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY が設定されていません")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("AIクライアントの初期化に失敗しました: %w", err)
	}
	return client.Models, nil
}

// InitializeStoryGenerator は物語テキストの生成器を初期化します。
func InitializeStoryGenerator(client generator.ContentGenerator, model string) (*generator.GeminiStoryGenerator, error) {
	pb, err := newStoryPromptBuilder()
	if err != nil {
		return nil, err
	}
	return generator.NewGeminiStoryGenerator(client, pb, model), nil
}

// InitializeIllustrator は挿絵の生成器を初期化します。
// リミッターは全セッションで共有するため AppContext ごとに1つだけ作ります。
func InitializeIllustrator(client generator.ContentGenerator, cfg *config.Config) *generator.GeminiIllustrator {
	opts := []generator.IllustratorOption{
		generator.WithModel(cfg.Options.ImageModel),
		generator.WithRetry(cfg.ImageMaxAttempts, cfg.ImageRetryBase),
	}
	if cfg.ImageRate > 0 {
		opts = append(opts, generator.WithRateLimit(rate.NewLimiter(rate.Every(cfg.ImageRate), 1)))
	}
	return generator.NewGeminiIllustrator(client, newIllustrationPromptBuilder(), opts...)
}
