package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/kudos/pkg/cli/config"
	controller "github.com/secmon-lab/kudos/pkg/controller/http"
	"github.com/secmon-lab/kudos/pkg/service/directory"
	"github.com/secmon-lab/kudos/pkg/service/ratelimit"
	"github.com/secmon-lab/kudos/pkg/usecase"
	"github.com/secmon-lab/kudos/pkg/utils/apperr"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var (
		serverCfg config.Server
		slackCfg  config.Slack
		cacheCfg  config.Cache
	)

	flags := joinFlags(
		serverCfg.Flags(),
		slackCfg.Flags(),
		cacheCfg.Flags(),
	)

	return &cli.Command{
		Name:  "serve",
		Usage: "Start HTTP server",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			logger.Info("Starting kudos server",
				slog.String("addr", serverCfg.Addr),
				slog.Any("slack", slackCfg),
				slog.Any("cache", cacheCfg),
			)

			// Create Slack client
			slackClient := slackCfg.Configure()
			if slackClient == nil {
				return goerr.New("Slack client configuration is required. Please provide KUDOS_SLACK_OAUTH_TOKEN")
			}

			if !slackCfg.CanVerifySignature() {
				logger.Warn("Slack signing secret not configured - inbound requests will not be verified")
			}

			// Create services and use case
			limiter := ratelimit.New(cacheCfg.APICallInterval)
			directoryCache := directory.New(slackClient, limiter, cacheCfg.DirectoryTTL)
			kudosUC := usecase.NewKudos(slackClient, directoryCache, limiter)

			// Create HTTP server
			server, err := controller.NewServer(ctx, serverCfg.Addr, &slackCfg, kudosUC)
			if err != nil {
				return goerr.Wrap(err, "failed to create HTTP server")
			}

			// Start server in goroutine
			go func() {
				logger.Info("HTTP server starting", slog.String("addr", serverCfg.Addr))
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					apperr.Handle(ctx, goerr.Wrap(err, "HTTP server error"))
				}
			}()

			// Wait for interrupt signal
			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

			select {
			case <-ctx.Done():
				logger.Info("Context cancelled, shutting down...")
			case sig := <-sigChan:
				logger.Info("Signal received, shutting down...", slog.Any("signal", sig))
			}

			// Graceful shutdown
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logger.Info("Server shutdown complete")
			return nil
		},
	}
}
