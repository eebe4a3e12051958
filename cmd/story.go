package cmd

import (
	"fmt"
	"log/slog"

	"github.com/shouni/go-pixetale/internal/pipeline"

	"github.com/spf13/cobra"
)

// storyCmd は、挿絵なしで物語テキストだけを生成するのだ。
var storyCmd = &cobra.Command{
	Use:     "story",
	Short:   "物語テキストだけを生成して story.json に保存するのだ。",
	Example: `  pixetale story -t "a lost penguin" -o output/penguin`,
	RunE:    storyCommand,
}

func init() {
	addQuestFlags(storyCmd)
}

func storyCommand(cmd *cobra.Command, args []string) error {
	if opts.Topic == "" {
		return fmt.Errorf("物語のトピック（--topic）を指定してほしいのだ")
	}
	cfg := appCfg

	slog.Info("物語だけを書くのだ", "topic", opts.Topic, "model", cfg.GeminiModel)
	return pipeline.ExecuteStoryOnly(cmd.Context(), cfg)
}
