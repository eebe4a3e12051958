package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/shouni/go-pixetale/internal/builder"
	"github.com/shouni/go-pixetale/internal/config"
	"github.com/shouni/go-pixetale/internal/server"
	"github.com/shouni/go-pixetale/pkg/publisher"
	"github.com/shouni/go-pixetale/pkg/state"

	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

// ExecuteServe は HTTP API を起動し、ctx が終わるまで待ち受けるのだ。
// 画像リクエストのリミッターは全セッションで共有されるのだ。
func ExecuteServe(ctx context.Context, cfg *config.Config) error {
	appCtx, err := builder.NewAppContext(ctx, cfg)
	if err != nil {
		return err
	}
	renderer, err := publisher.NewRenderer()
	if err != nil {
		return err
	}

	factory := func() *state.Controller { return builder.BuildController(appCtx) }
	srv := &http.Server{
		Addr:              cfg.ServerAddr,
		Handler:           server.New(server.NewSessionStore(cfg.SessionTTL), factory, renderer).Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		slog.Info("サーバーを起動するのだ", "addr", cfg.ServerAddr, "session_ttl", cfg.SessionTTL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	eg.Go(func() error {
		<-egCtx.Done()
		slog.Info("サーバーを停止するのだ...")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return eg.Wait()
}
