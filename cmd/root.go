package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/shouni/go-pixetale/internal/config"

	"github.com/spf13/cobra"
)

const appName = "pixetale"

var (
	opts    config.GenerateOptions
	appCfg  *config.Config // preRunAppE で .env・環境変数・フラグをまとめた設定なのだ
	verbose bool
	logJSON bool
)

var rootCmd = &cobra.Command{
	Use:   appName,
	Short: "ピクセルアートの絵本を生成するのだ。",
	Long: `トピックから10ページの子ども向け絵本（物語 + ピクセルアートの挿絵）を生成し、
印刷用・ぬりえ・フリップブックの HTML として書き出すのだ。`,
	SilenceUsage:      true,
	PersistentPreRunE: preRunAppE,
}

// addAppFlags は、アプリケーション全般に適用されるグローバルフラグを定義するのだ。
func addAppFlags(rootCmd *cobra.Command) {
	// --- ログ ---
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "デバッグログを出すのだ。")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "ログを JSON で出すのだ。")

	// --- 生成結果の出力設定 ---
	rootCmd.PersistentFlags().StringVarP(&opts.OutputDir, "output-dir", "o", config.DefaultOutputDir, "story.json と HTML の保存先ディレクトリなのだ。")

	// --- AIモデル・挙動設定 ---
	rootCmd.PersistentFlags().StringVar(&opts.AIModel, "model", config.DefaultModel, "物語を書く Gemini モデル名なのだ。")
	rootCmd.PersistentFlags().StringVar(&opts.ImageModel, "image-model", config.DefaultImageModel, "挿絵を描く Gemini モデル名なのだ。")
	rootCmd.PersistentFlags().BoolVar(&opts.Mock, "mock", false, "API を呼ばずにモック生成器で動かすのだ。")
	rootCmd.PersistentFlags().DurationVar(&opts.PageDelay, "page-delay", config.DefaultPageDelay, "挿絵リクエストの間隔なのだ。")
}

// addQuestFlags は物語の入力に関するフラグを定義するのだ。
func addQuestFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&opts.Topic, "topic", "t", "", "物語のトピックなのだ（必須）。")
	cmd.Flags().StringVarP(&opts.Language, "language", "l", config.DefaultLanguage, "English / Spanish / Bilingual なのだ。")
	cmd.Flags().StringVar(&opts.Hero.Name, "hero-name", "", "主人公の名前なのだ。")
	cmd.Flags().StringVar(&opts.Hero.Gender, "hero-gender", "", "Boy / Girl / Robot / Animal など。")
	cmd.Flags().StringVar(&opts.Hero.Hair, "hero-hair", "", "主人公の髪の特徴なのだ。")
	cmd.Flags().StringVar(&opts.Hero.Eyes, "hero-eyes", "", "主人公の目の特徴なのだ。")
	cmd.Flags().StringVar(&opts.Hero.Clothing, "hero-clothing", "", "主人公の服装なのだ。")
}

// addExportFlags は書き出しに関するフラグを定義するのだ。
func addExportFlags(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&opts.Formats, "format", nil, "printable / coloring / flipbook（省略時は全部）なのだ。")
	cmd.Flags().BoolVar(&opts.ExtractImages, "extract-images", false, "挿絵を images/ に PNG として保存するのだ。")
}

// preRunAppE は、ロガーを整えて設定（.env を含む）を読み込んでから必須チェックを行うのだ。
func preRunAppE(cmd *cobra.Command, args []string) error {
	setupLogger()
	appCfg = loadConfig(cmd)

	if cmd.Name() == exportCmd.Name() {
		return nil
	}
	return requireAPIKey(appCfg)
}

// requireAPIKey は Gemini API を使う実行で API キーが揃っているかを確かめるのだ。
func requireAPIKey(cfg *config.Config) error {
	if cfg.Options.Mock || cfg.GeminiAPIKey != "" {
		return nil
	}
	return fmt.Errorf("エラー: GEMINI_API_KEY が設定されていません（環境変数または .env）。--mock を使うか、キーを設定してほしいのだ")
}

func setupLogger() {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handlerOpts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler = slog.NewTextHandler(os.Stderr, handlerOpts)
	if logJSON {
		handler = slog.NewJSONHandler(os.Stderr, handlerOpts)
	}
	slog.SetDefault(slog.New(handler).With("app", appName))
}

// loadConfig は環境変数の設定にフラグの値を重ねるのだ。
// フラグが明示されていなければ環境変数側の値を優先するのだ。
func loadConfig(cmd *cobra.Command) *config.Config {
	cfg := config.LoadConfig()
	merged := opts
	flags := cmd.Flags()
	if !flags.Changed("model") {
		merged.AIModel = cfg.GeminiModel
	}
	if !flags.Changed("image-model") {
		merged.ImageModel = cfg.GeminiImageModel
	}
	if !flags.Changed("output-dir") {
		merged.OutputDir = cfg.OutputDir
	}
	if !flags.Changed("page-delay") {
		merged.PageDelay = cfg.PageDelay
	}
	cfg.GeminiModel = merged.AIModel
	cfg.GeminiImageModel = merged.ImageModel
	cfg.OutputDir = merged.OutputDir
	cfg.PageDelay = merged.PageDelay
	cfg.Options = merged
	return cfg
}

// Execute は、アプリケーションのメインエントリポイントなのだ。
// main.go から呼び出されて、cobra のコマンドライン解析を開始するのだよ。
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	addAppFlags(rootCmd)
	rootCmd.AddCommand(generateCmd, storyCmd, exportCmd, serveCmd)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
