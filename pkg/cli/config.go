package cli

import (
	"context"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mad-satoru/madai/pkg/adapter"
	"github.com/mad-satoru/madai/pkg/repository"
	"github.com/mad-satoru/madai/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// config holds configuration values
type config struct {
	// Repository
	dbPath string

	// Logging
	logLevel string

	// Adapters
	telegramAPI string
}

// globalFlags returns common flags used across commands with destination config
func globalFlags(cfg *config) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "db",
			Aliases:     []string{"d"},
			Usage:       "SQLite database path (':memory:' keeps everything in process)",
			Value:       "madai.db",
			Sources:     cli.EnvVars("MADAI_DB"),
			Destination: &cfg.dbPath,
		},
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "Log level (debug, info, warn, error)",
			Value:       "info",
			Sources:     cli.EnvVars("MADAI_LOG_LEVEL"),
			Destination: &cfg.logLevel,
		},
	}
}

// telegramFlags returns flags for Telegram-related configuration
func telegramFlags(cfg *config) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "telegram-api",
			Usage:       "Telegram Bot API base URL override",
			Sources:     cli.EnvVars("MADAI_TELEGRAM_API"),
			Destination: &cfg.telegramAPI,
		},
	}
}

// setupLogger installs the default logger at the configured level
func (cfg *config) setupLogger(ctx context.Context) context.Context {
	logger := logging.New(cfg.logLevel, os.Stderr)
	logging.SetDefault(logger)
	return logging.With(ctx, logger)
}

// newRepository creates a new repository instance
func (cfg *config) newRepository() (repository.Repository, error) {
	if cfg.dbPath == "" {
		return nil, goerr.New("db path is required")
	}
	if cfg.dbPath == ":memory:" {
		return repository.NewMemory(), nil
	}

	repo, err := repository.NewSQLite(cfg.dbPath)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open database", goerr.V("path", cfg.dbPath))
	}
	return repo, nil
}

// newTelegram creates a new Telegram adapter instance
func (cfg *config) newTelegram() adapter.Telegram {
	var opts []adapter.TelegramOption
	if cfg.telegramAPI != "" {
		opts = append(opts, adapter.WithTelegramBaseURL(cfg.telegramAPI))
	}
	return adapter.NewTelegram(opts...)
}
