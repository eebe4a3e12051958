package builder

import (
	"fmt"

	"github.com/shouni/go-pixetale/internal/runner"
	"github.com/shouni/go-pixetale/pkg/pipeline"
	"github.com/shouni/go-pixetale/pkg/prompts"
	"github.com/shouni/go-pixetale/pkg/publisher"
	"github.com/shouni/go-pixetale/pkg/state"
)

// BuildStoryRunner は物語テキストだけを生成する Runner を構築します。
func BuildStoryRunner(appCtx *AppContext) runner.StoryRunner {
	story, _ := appCtx.generators()
	return runner.NewTextStoryRunner(story)
}

// BuildQuestPipeline は1冊分の生成を行うオーケストレーターを構築します。
func BuildQuestPipeline(appCtx *AppContext) *pipeline.QuestPipeline {
	story, illustrator := appCtx.generators()
	return pipeline.NewQuestPipeline(
		story,
		illustrator,
		pipeline.WithPageDelay(appCtx.Options.PageDelay),
	)
}

// BuildQuestRunner は進捗をログに残しながらクエストを実行する Runner を構築します。
func BuildQuestRunner(appCtx *AppContext) runner.QuestRunner {
	return runner.NewLoggingQuestRunner(BuildQuestPipeline(appCtx))
}

// BuildController は1セッション分の状態コントローラーを構築します。
func BuildController(appCtx *AppContext) *state.Controller {
	return state.NewController(BuildQuestRunner(appCtx))
}

// BuildPublisher は HTML テンプレートを読み込んだ StoryPublisher を構築します。
func BuildPublisher() (*publisher.StoryPublisher, error) {
	renderer, err := publisher.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("HTMLレンダラーの初期化に失敗しました: %w", err)
	}
	return publisher.NewStoryPublisher(publisher.NewLocalWriter(), renderer), nil
}

// BuildPublishRunner はコンテンツ保存を行う Runner を構築します。
func BuildPublishRunner(appCtx *AppContext) (runner.PublishRunner, error) {
	formats, err := ParseFormats(appCtx.Options.Formats)
	if err != nil {
		return nil, err
	}
	pub, err := BuildPublisher()
	if err != nil {
		return nil, err
	}
	return runner.NewDefaultPublishRunner(pub, formats, appCtx.Options.ExtractImages), nil
}

// ParseFormats はフラグの文字列を publisher.Format に変換します。空なら全形式です。
func ParseFormats(values []string) ([]publisher.Format, error) {
	formats := make([]publisher.Format, 0, len(values))
	for _, v := range values {
		f, err := publisher.ParseFormat(v)
		if err != nil {
			return nil, err
		}
		formats = append(formats, f)
	}
	return formats, nil
}

func newStoryPromptBuilder() (prompts.StoryPromptBuilder, error) {
	pb, err := prompts.NewTextPromptBuilder()
	if err != nil {
		return nil, fmt.Errorf("プロンプトビルダーの作成に失敗しました: %w", err)
	}
	return pb, nil
}

func newIllustrationPromptBuilder() prompts.IllustrationPromptBuilder {
	return prompts.NewPixelArtPromptBuilder()
}
