package generator

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shouni/go-pixetale/pkg/asset"
	"github.com/shouni/go-pixetale/pkg/prompts"

	"github.com/shouni/gemini-image-kit/ports"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// GeminiIllustrator はピクセルアートの挿絵を1枚ずつ生成します。
// 通常の失敗は待機を挟んで再試行し、クォータ超過は即座に返します。
type GeminiIllustrator struct {
	client        ContentGenerator
	promptBuilder prompts.IllustrationPromptBuilder
	model         string
	maxAttempts   int
	baseDelay     time.Duration
	limiter       *rate.Limiter
	sleep         func(ctx context.Context, d time.Duration) error
}

// IllustratorOption は GeminiIllustrator の設定を変更します。
type IllustratorOption func(*GeminiIllustrator)

// WithModel は画像生成モデルを指定します。
func WithModel(model string) IllustratorOption {
	return func(g *GeminiIllustrator) {
		if model != "" {
			g.model = model
		}
	}
}

// WithRetry は最大試行回数と待機時間の単位を指定します。
func WithRetry(maxAttempts int, baseDelay time.Duration) IllustratorOption {
	return func(g *GeminiIllustrator) {
		if maxAttempts > 0 {
			g.maxAttempts = maxAttempts
		}
		if baseDelay >= 0 {
			g.baseDelay = baseDelay
		}
	}
}

// WithRateLimit は全セッションで共有する画像リクエストのリミッターを設定します。
func WithRateLimit(limiter *rate.Limiter) IllustratorOption {
	return func(g *GeminiIllustrator) {
		g.limiter = limiter
	}
}

// NewGeminiIllustrator は GeminiIllustrator を生成します。
func NewGeminiIllustrator(client ContentGenerator, pb prompts.IllustrationPromptBuilder, opts ...IllustratorOption) *GeminiIllustrator {
	g := &GeminiIllustrator{
		client:        client,
		promptBuilder: pb,
		model:         DefaultImageModel,
		maxAttempts:   DefaultMaxAttempts,
		baseDelay:     DefaultRetryBaseDelay,
		sleep:         sleepContext,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// GenerateIllustration はシーン記述から挿絵を生成し、data URI で返します。
func (g *GeminiIllustrator) GenerateIllustration(ctx context.Context, scene string) (string, error) {
	req := g.promptBuilder.BuildRequest(scene)

	var lastErr error
	for attempt := 1; attempt <= g.maxAttempts; attempt++ {
		img, err := g.generateOnce(ctx, req)
		if err == nil {
			return asset.EncodeDataURI(img.MimeType, img.Data), nil
		}

		kind := Classify(err)
		if kind != KindTransient {
			return "", &Error{Kind: kind, Op: OpIllustration, Attempts: attempt, Err: err}
		}
		lastErr = err
		slog.WarnContext(ctx, "挿絵の生成に失敗しました",
			"attempt", attempt,
			"max_attempts", g.maxAttempts,
			"error", err)

		if attempt < g.maxAttempts {
			if err := g.sleep(ctx, g.baseDelay*time.Duration(attempt)); err != nil {
				return "", &Error{Kind: KindFatal, Op: OpIllustration, Attempts: attempt, Err: err}
			}
		}
	}

	return "", &Error{Kind: KindTransient, Op: OpIllustration, Attempts: g.maxAttempts, Err: lastErr}
}

// generateOnce は1回分の画像生成リクエストを送信します。
func (g *GeminiIllustrator) generateOnce(ctx context.Context, req ports.GenerationOptions) (*ports.ImageResponse, error) {
	if g.limiter != nil {
		if err := g.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("リミッター待機中にエラーが発生しました: %w", err)
		}
	}

	resp, err := g.client.GenerateContent(ctx, g.model, genai.Text(req.Prompt), &genai.GenerateContentConfig{
		ImageConfig: &genai.ImageConfig{AspectRatio: req.AspectRatio},
	})
	if err != nil {
		return nil, err
	}

	blob, ok := firstInlineImage(resp)
	if !ok {
		return nil, errNoImage
	}
	mimeType := blob.MIMEType
	if mimeType == "" {
		mimeType = defaultImageMIMEType
	}
	return &ports.ImageResponse{Data: blob.Data, MimeType: mimeType}, nil
}

// sleepContext は d だけ待機します。ctx が先に終われば ctx のエラーを返します。
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
