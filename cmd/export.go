package cmd

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/shouni/go-pixetale/examples"
	"github.com/shouni/go-pixetale/internal/pipeline"

	"github.com/spf13/cobra"
)

var useSample bool

// exportCmd は、保存済みの story.json から HTML を作り直すのだ。API キーは不要なのだ。
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "story.json から印刷用・ぬりえ・フリップブックの HTML を書き出すのだ。",
	Example: `  pixetale export -f output/story.json --format coloring
  cat story.json | pixetale export -f -
  pixetale export --sample`,
	RunE: exportCommand,
}

func init() {
	exportCmd.Flags().StringVarP(&opts.StoryFile, "story-file", "f", "", "読み込む story.json（'-'で標準入力なのだ）。")
	exportCmd.Flags().BoolVar(&useSample, "sample", false, "同梱のサンプル絵本を書き出すのだ。")
	addExportFlags(exportCmd)
}

func exportCommand(cmd *cobra.Command, args []string) error {
	cfg := appCfg

	var stdin io.Reader = os.Stdin
	switch {
	case useSample:
		cfg.Options.StoryFile = "-"
		stdin = bytes.NewReader(examples.SampleStoryJSON)
	case cfg.Options.StoryFile == "":
		return fmt.Errorf("読み込む story.json（--story-file）を指定してほしいのだ")
	}
	return pipeline.ExecuteExport(cmd.Context(), cfg, stdin)
}
