package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shouni/go-pixetale/pkg/domain"
	"github.com/shouni/go-pixetale/pkg/generator"
)

const (
	progressStoryWritten = 10
	progressCover        = 25
	progressComplete     = 100
)

// ErrQuest は絵本生成全体の失敗を表します。物語テキストの生成失敗だけが該当します。
var ErrQuest = errors.New("quest failed")

// QuestError は致命的な失敗の原因を保持します。
type QuestError struct {
	Err error
}

func (e *QuestError) Error() string {
	return fmt.Sprintf("%s: %v", ErrQuest, e.Err)
}

func (e *QuestError) Unwrap() error { return e.Err }

func (e *QuestError) Is(target error) bool { return target == ErrQuest }

// QuestPipeline は物語、表紙、各ページの挿絵を順番に生成します。
// 画像リクエストは並列化せず、固定の待機を挟んで1枚ずつ送ります。
type QuestPipeline struct {
	story       generator.StoryGenerator
	illustrator generator.IllustrationGenerator
	pacer       Pacer
}

// Option は QuestPipeline の設定を変更します。
type Option func(*QuestPipeline)

// WithPageDelay は画像リクエスト間の待機時間を指定します。
func WithPageDelay(d time.Duration) Option {
	return func(p *QuestPipeline) {
		p.pacer = FixedPacer{Delay: d}
	}
}

// WithPacer は待機の実装を差し替えます。
func WithPacer(pacer Pacer) Option {
	return func(p *QuestPipeline) {
		if pacer != nil {
			p.pacer = pacer
		}
	}
}

// NewQuestPipeline は QuestPipeline を生成します。
func NewQuestPipeline(story generator.StoryGenerator, illustrator generator.IllustrationGenerator, opts ...Option) *QuestPipeline {
	p := &QuestPipeline{
		story:       story,
		illustrator: illustrator,
		pacer:       FixedPacer{Delay: DefaultPageDelay},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run は絵本を1冊生成します。
// 失敗して中断するのは物語テキストの生成に失敗した場合だけで、挿絵の失敗は
// 表紙なし、またはプレースホルダーとして扱い処理を続けます。
func (p *QuestPipeline) Run(ctx context.Context, req QuestRequest, onProgress ProgressFunc) (*domain.StoryDocument, error) {
	if onProgress == nil {
		onProgress = func(Update) {}
	}
	logger := slog.With("topic", req.Topic, "language", req.Language)
	start := time.Now()

	// 1. 物語テキスト
	doc, err := p.story.GenerateStory(ctx, req.Topic, req.Language, req.Hero)
	if err != nil {
		questsTotal.WithLabelValues("failed").Inc()
		logger.ErrorContext(ctx, "物語の生成に失敗しました", "error", err)
		return nil, &QuestError{Err: err}
	}
	onProgress(Update{
		Stage:    StageStoryWritten,
		Status:   domain.StatusIllustrating,
		Progress: progressStoryWritten,
		Story:    doc.Clone(),
	})

	// 2. 表紙
	coverScene := doc.CoverImagePrompt
	if strings.TrimSpace(coverScene) == "" {
		coverScene = doc.Title
	}
	cover := p.illustrate(ctx, TargetCover, 0, coverScene)
	if cover.OK() {
		doc.CoverImageURL = cover.ImageURL
	} else {
		logger.WarnContext(ctx, "表紙の生成に失敗しました。表紙なしで続行します", "target", TargetCover, "error", cover.Err)
	}
	onProgress(Update{
		Stage:    StageCover,
		Status:   domain.StatusIllustrating,
		Progress: progressCover,
		Story:    doc.Clone(),
	})

	// 3. 表紙の結果に関係なく、最初のページの前に1回待つ
	if err := p.pacer.Pause(ctx); err != nil {
		questsTotal.WithLabelValues("failed").Inc()
		return nil, &QuestError{Err: err}
	}

	// 4. 各ページ
	total := len(doc.Pages)
	for i := range doc.Pages {
		if i > 0 {
			if err := p.pacer.Pause(ctx); err != nil {
				questsTotal.WithLabelValues("failed").Inc()
				return nil, &QuestError{Err: err}
			}
		}

		res := p.illustrate(ctx, TargetPage, i+1, doc.Pages[i].ImagePrompt)
		if !res.OK() {
			logger.WarnContext(ctx, "挿絵の生成に失敗しました。プレースホルダーを使います",
				"target", TargetPage,
				"page", i+1,
				"error", res.Err)
		}
		doc.Pages[i].ImageURL = res.PageImage()

		// 最後のページは ready と同時に公開する
		if i < total-1 {
			onProgress(Update{
				Stage:    StagePage,
				Status:   domain.StatusIllustrating,
				Progress: PageProgress(i+1, total),
				Page:     i + 1,
				Story:    doc.Clone(),
			})
		}
	}

	// 5. 完成
	onProgress(Update{
		Stage:    StageReady,
		Status:   domain.StatusReady,
		Progress: progressComplete,
		Page:     total,
		Story:    doc.Clone(),
	})

	questsTotal.WithLabelValues("ready").Inc()
	questDuration.Observe(time.Since(start).Seconds())
	logger.InfoContext(ctx, "絵本が完成しました",
		"title", doc.Title,
		"pages", total,
		"has_cover", doc.CoverImageURL != "",
		"elapsed", time.Since(start).Round(time.Second))
	return doc, nil
}

// illustrate は挿絵1枚を生成し、結果を IllustrationResult にまとめます。
func (p *QuestPipeline) illustrate(ctx context.Context, target Target, page int, scene string) IllustrationResult {
	url, err := p.illustrator.GenerateIllustration(ctx, scene)
	if err == nil && url == "" {
		err = fmt.Errorf("%w: empty image", generator.ErrImageGeneration)
	}
	illustrationsTotal.WithLabelValues(string(target), illustrationOutcome(err)).Inc()
	return IllustrationResult{Target: target, Page: page, ImageURL: url, Err: err}
}

// PageProgress は completed ページ目まで終わった時点の進捗率を返します。
func PageProgress(completed, total int) int {
	if total <= 0 {
		return progressComplete
	}
	span := progressComplete - progressCover
	// 四捨五入 (0.5 は切り上げ)
	return progressCover + (2*completed*span+total)/(2*total)
}
