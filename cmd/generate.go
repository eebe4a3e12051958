package cmd

import (
	"fmt"
	"log/slog"

	"github.com/shouni/go-pixetale/internal/pipeline"

	"github.com/spf13/cobra"
)

// generateCmd は、物語と全ページの挿絵を生成して絵本を書き出すのだ。
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "物語と挿絵を生成して絵本を書き出すのだ。",
	Long: `トピックから物語を書き、表紙と10ページ分のピクセルアートを1枚ずつ描いて、
story.json と3種類の HTML を出力するのだ。挿絵に失敗したページはプレースホルダーになるのだよ。`,
	Example: `  pixetale generate -t "a dragon who is afraid of the dark" -l Bilingual --hero-name Mia`,
	RunE:    generateCommand,
}

func init() {
	addQuestFlags(generateCmd)
	addExportFlags(generateCmd)
}

func generateCommand(cmd *cobra.Command, args []string) error {
	if opts.Topic == "" {
		return fmt.Errorf("物語のトピック（--topic）を指定してほしいのだ")
	}
	cfg := appCfg

	slog.Info("絵本生成パイプラインを起動するのだ！",
		"topic", opts.Topic,
		"language", opts.Language,
		"text_model", cfg.GeminiModel,
		"image_model", cfg.GeminiImageModel,
		"output", cfg.Options.OutputDir,
		"mock", opts.Mock)

	if err := pipeline.Execute(cmd.Context(), cfg); err != nil {
		return fmt.Errorf("パイプライン実行中にエラーが発生したのだ: %w", err)
	}
	return nil
}
