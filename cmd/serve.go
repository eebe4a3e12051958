package cmd

import (
	"github.com/shouni/go-pixetale/internal/pipeline"

	"github.com/spf13/cobra"
)

var serveAddr string

// serveCmd は、セッションごとに絵本を生成する HTTP API を起動するのだ。
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "HTTP API サーバーを起動するのだ。",
	Long: `POST /api/sessions でセッションを作り、/start で生成を始め、GET で進捗を取得するのだ。
完成後は /exports/{printable|coloring|flipbook} から HTML をダウンロードできるのだよ。`,
	RunE: serveCommand,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "待ち受けアドレス（省略時は SERVER_ADDR）なのだ。")
}

func serveCommand(cmd *cobra.Command, args []string) error {
	cfg := appCfg
	if serveAddr != "" {
		cfg.ServerAddr = serveAddr
	}
	return pipeline.ExecuteServe(cmd.Context(), cfg)
}
