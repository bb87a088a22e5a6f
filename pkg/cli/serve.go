package cli

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mad-satoru/madai/pkg/server"
	"github.com/mad-satoru/madai/pkg/usecase/apikey"
	"github.com/mad-satoru/madai/pkg/usecase/bot"
	"github.com/mad-satoru/madai/pkg/usecase/chat"
	"github.com/mad-satoru/madai/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func serveCommand() *cli.Command {
	var (
		cfg           config
		addr          string
		pruneInterval time.Duration
		retentionDays int64
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "Listen address",
			Value:       "127.0.0.1:8080",
			Sources:     cli.EnvVars("MADAI_ADDR"),
			Destination: &addr,
		},
		&cli.DurationFlag{
			Name:        "prune-interval",
			Usage:       "Background history prune interval (0 disables)",
			Sources:     cli.EnvVars("MADAI_PRUNE_INTERVAL"),
			Destination: &pruneInterval,
		},
		&cli.IntFlag{
			Name:        "retention-days",
			Usage:       "History retention for the background prune",
			Value:       1,
			Sources:     cli.EnvVars("MADAI_RETENTION_DAYS"),
			Destination: &retentionDays,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)
	flags = append(flags, telegramFlags(&cfg)...)

	return &cli.Command{
		Name:  "serve",
		Usage: "Run the HTTP API server",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			ctx = cfg.setupLogger(ctx)

			repo, err := cfg.newRepository()
			if err != nil {
				return err
			}
			defer repo.Close()

			chatUC := chat.New(repo)
			keyUC := apikey.New(repo)
			botUC := bot.New(repo, cfg.newTelegram(), chatUC)

			ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			srv := &http.Server{
				Addr:              addr,
				Handler:           server.New(chatUC, keyUC, botUC).Handler(),
				ReadHeaderTimeout: 10 * time.Second,
				BaseContext:       func(net.Listener) context.Context { return ctx },
			}

			if pruneInterval > 0 {
				go runPruneLoop(ctx, chatUC, pruneInterval, time.Duration(retentionDays)*24*time.Hour)
			}

			errCh := make(chan error, 1)
			go func() {
				logging.From(ctx).Info("starting server", "addr", addr)
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if err != nil && !errors.Is(err, http.ErrServerClosed) {
					return goerr.Wrap(err, "server failed")
				}
			case <-ctx.Done():
				logging.From(ctx).Info("shutting down")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				if err := srv.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "graceful shutdown failed")
				}
			}

			return nil
		},
	}
}

// runPruneLoop drops conversation entries beyond the retention age on a
// fixed interval until the context is canceled.
func runPruneLoop(ctx context.Context, chatUC *chat.UseCase, interval, retention time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := chatUC.Prune(ctx, retention); err != nil {
				logging.From(ctx).Error("background prune failed", "error", err)
			}
		}
	}
}
