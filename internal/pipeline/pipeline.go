package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/shouni/go-pixetale/internal/builder"
	"github.com/shouni/go-pixetale/internal/config"
	"github.com/shouni/go-pixetale/pkg/asset"
	"github.com/shouni/go-pixetale/pkg/domain"
	"github.com/shouni/go-pixetale/pkg/pipeline"
	"github.com/shouni/go-pixetale/pkg/publisher"
	"github.com/shouni/go-pixetale/pkg/state"
)

// Execute は物語と挿絵を生成し、story.json と HTML を書き出すのだ。
// ctx がキャンセルされると、待機中でも生成中でもそこで中断するのだ。
func Execute(ctx context.Context, cfg *config.Config) error {
	req, err := questRequest(cfg.Options)
	if err != nil {
		return err
	}
	appCtx, err := builder.NewAppContext(ctx, cfg)
	if err != nil {
		return err
	}

	// --- Phase 1 & 2: 物語と挿絵 ---
	// CLI ではコントローラーを通さず、ctx のキャンセル（Ctrl+C）を待機と生成にそのまま伝えるのだ。
	doc, err := builder.BuildQuestRunner(appCtx).Run(ctx, req, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", state.UserMessage(err), err)
	}

	// --- Phase 3: 公開/保存 ---
	return runPublishStep(ctx, appCtx, doc)
}

// ExecuteStoryOnly は挿絵を描かずに物語テキストだけを生成し、story.json として保存するのだ。
func ExecuteStoryOnly(ctx context.Context, cfg *config.Config) error {
	req, err := questRequest(cfg.Options)
	if err != nil {
		return err
	}
	appCtx, err := builder.NewAppContext(ctx, cfg)
	if err != nil {
		return err
	}

	doc, err := builder.BuildStoryRunner(appCtx).Run(ctx, req)
	if err != nil {
		return err
	}

	outputPath, err := asset.ResolveOutputPath(cfg.Options.OutputDir, asset.DefaultStoryJSON)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("JSONの生成に失敗したのだ: %w", err)
	}
	if err := publisher.NewLocalWriter().Write(ctx, outputPath, bytes.NewReader(data), "application/json"); err != nil {
		return fmt.Errorf("物語の保存に失敗したのだ: %w", err)
	}
	slog.Info("物語を保存したのだ", "title", doc.Title, "pages", len(doc.Pages), "path", outputPath)
	return nil
}

// ExecuteExport は保存済みの story.json（'-' なら標準入力）から HTML を再生成するのだ。
func ExecuteExport(ctx context.Context, cfg *config.Config, stdin io.Reader) error {
	doc, err := readStory(cfg.Options.StoryFile, stdin)
	if err != nil {
		return err
	}
	appCtx := &builder.AppContext{Config: cfg, Options: cfg.Options}
	return runPublishStep(ctx, appCtx, doc)
}

func runPublishStep(ctx context.Context, appCtx *builder.AppContext, doc *domain.StoryDocument) error {
	slog.Info("公開処理を開始するのだ...", "output", appCtx.Options.OutputDir)
	publishRunner, err := builder.BuildPublishRunner(appCtx)
	if err != nil {
		return fmt.Errorf("PublishRunnerの構築に失敗したのだ: %w", err)
	}
	res, err := publishRunner.Run(ctx, doc, appCtx.Options.OutputDir)
	if err != nil {
		return err
	}
	for f, p := range res.HTMLPaths {
		slog.Info("書き出したのだ", "format", f, "path", p)
	}
	slog.Info("絵本が完成したのだ！", "title", doc.Title, "story", res.StoryPath, "images", len(res.ImagePaths))
	return nil
}

func questRequest(opts config.GenerateOptions) (pipeline.QuestRequest, error) {
	topic := strings.TrimSpace(opts.Topic)
	if topic == "" {
		return pipeline.QuestRequest{}, state.ErrEmptyTopic
	}
	lang, err := domain.ParseLanguage(opts.Language)
	if err != nil {
		return pipeline.QuestRequest{}, err
	}
	hero := &domain.HeroTraits{
		Name:     opts.Hero.Name,
		Gender:   domain.Gender(opts.Hero.Gender),
		Hair:     opts.Hero.Hair,
		Eyes:     opts.Hero.Eyes,
		Clothing: opts.Hero.Clothing,
	}
	return pipeline.QuestRequest{Topic: topic, Language: lang, Hero: hero}, nil
}

func readStory(path string, stdin io.Reader) (*domain.StoryDocument, error) {
	var (
		data []byte
		err  error
	)
	if path == "" || path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("物語ファイル '%s' の読み込みに失敗しました: %w", path, err)
	}

	var doc domain.StoryDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("物語ファイル '%s' のデコードに失敗しました: %w", path, err)
	}
	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("物語ファイル '%s' の内容が不正なのだ: %w", path, err)
	}
	doc.Normalize()
	return &doc, nil
}
