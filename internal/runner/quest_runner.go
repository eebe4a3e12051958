package runner

import (
	"context"
	"log/slog"
	"time"

	"github.com/shouni/go-pixetale/pkg/domain"
	"github.com/shouni/go-pixetale/pkg/pipeline"
)

// QuestRunner は物語と全挿絵を生成する1回のクエストを実行するのだ。
// state.Controller からもそのまま呼べる形なのだ。
type QuestRunner interface {
	Run(ctx context.Context, req pipeline.QuestRequest, onProgress pipeline.ProgressFunc) (*domain.StoryDocument, error)
}

// LoggingQuestRunner は進捗をログに流しながら QuestPipeline を実行するのだ。
type LoggingQuestRunner struct {
	pipeline QuestRunner
}

// NewLoggingQuestRunner は LoggingQuestRunner を生成するのだ。
func NewLoggingQuestRunner(p QuestRunner) *LoggingQuestRunner {
	return &LoggingQuestRunner{pipeline: p}
}

// Run はクエストを実行し、各通知をログに記録してから onProgress に渡すのだ。
func (r *LoggingQuestRunner) Run(ctx context.Context, req pipeline.QuestRequest, onProgress pipeline.ProgressFunc) (*domain.StoryDocument, error) {
	start := time.Now()
	doc, err := r.pipeline.Run(ctx, req, func(u pipeline.Update) {
		slog.InfoContext(ctx, "進捗",
			"stage", u.Stage,
			"status", u.Status,
			"progress", u.Progress,
			"page", u.Page)
		if onProgress != nil {
			onProgress(u)
		}
	})
	if err != nil {
		slog.ErrorContext(ctx, "クエストに失敗したのだ", "error", err, "elapsed", time.Since(start).Round(time.Second))
		return nil, err
	}
	slog.InfoContext(ctx, "クエストが完了したのだ",
		"title", doc.Title,
		"pages", len(doc.Pages),
		"elapsed", time.Since(start).Round(time.Second))
	return doc, nil
}
