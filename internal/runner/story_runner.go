package runner

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shouni/go-pixetale/pkg/domain"
	"github.com/shouni/go-pixetale/pkg/generator"
	"github.com/shouni/go-pixetale/pkg/pipeline"
)

// StoryRunner は挿絵を描かずに物語テキストだけを生成するのだ。
type StoryRunner interface {
	Run(ctx context.Context, req pipeline.QuestRequest) (*domain.StoryDocument, error)
}

// TextStoryRunner は StoryGenerator を1回だけ呼ぶ実装なのだ。
type TextStoryRunner struct {
	story generator.StoryGenerator
}

// NewTextStoryRunner は TextStoryRunner を生成するのだ。
func NewTextStoryRunner(story generator.StoryGenerator) *TextStoryRunner {
	return &TextStoryRunner{story: story}
}

// Run は物語を生成し、ページ番号を振り直したドキュメントを返すのだ。
func (r *TextStoryRunner) Run(ctx context.Context, req pipeline.QuestRequest) (*domain.StoryDocument, error) {
	slog.InfoContext(ctx, "物語だけを生成するのだ", "topic", req.Topic, "language", req.Language)
	doc, err := r.story.GenerateStory(ctx, req.Topic, req.Language, req.Hero)
	if err != nil {
		return nil, fmt.Errorf("物語の生成に失敗したのだ: %w", err)
	}
	doc.Normalize()
	return doc, nil
}
