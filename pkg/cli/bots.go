package cli

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mad-satoru/madai/pkg/usecase/apikey"
	"github.com/mad-satoru/madai/pkg/usecase/bot"
	"github.com/mad-satoru/madai/pkg/usecase/chat"
	"github.com/urfave/cli/v3"
)

func botsCommand() *cli.Command {
	return &cli.Command{
		Name:  "bots",
		Usage: "Manage Telegram bots",
		Commands: []*cli.Command{
			botsListCommand(),
			botsRegisterCommand(),
			botsToggleCommand(),
		},
	}
}

// apiKeyFlag is shared by all bot subcommands: bot ownership is always
// scoped to a credential, exactly as over HTTP.
func apiKeyFlag(dest *string) cli.Flag {
	return &cli.StringFlag{
		Name:        "api-key",
		Usage:       "API key owning the bots",
		Sources:     cli.EnvVars("MADAI_API_KEY"),
		Required:    true,
		Destination: dest,
	}
}

func botsListCommand() *cli.Command {
	var (
		cfg config
		key string
	)

	flags := []cli.Flag{apiKeyFlag(&key)}
	flags = append(flags, globalFlags(&cfg)...)

	return &cli.Command{
		Name:  "list",
		Usage: "List registered bots",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			ctx = cfg.setupLogger(ctx)

			repo, err := cfg.newRepository()
			if err != nil {
				return err
			}
			defer repo.Close()

			principal, err := apikey.New(repo).Validate(ctx, key)
			if err != nil {
				return err
			}

			uc := bot.New(repo, cfg.newTelegram(), chat.New(repo))
			bots, err := uc.List(ctx, principal)
			if err != nil {
				return err
			}

			for _, b := range bots {
				state := "inactive"
				if b.Active {
					state = "active"
				}
				fmt.Fprintf(c.Root().Writer, "%d\t@%s\t%s\t%s\n", b.ID, b.Username, b.Token, state)
			}
			return nil
		},
	}
}

func botsRegisterCommand() *cli.Command {
	var (
		cfg        config
		key        string
		token      string
		webhookURL string
	)

	flags := []cli.Flag{
		apiKeyFlag(&key),
		&cli.StringFlag{
			Name:        "token",
			Usage:       "Telegram bot token",
			Required:    true,
			Destination: &token,
		},
		&cli.StringFlag{
			Name:        "webhook-url",
			Usage:       "Public URL of the /hooks/telegram endpoint",
			Required:    true,
			Destination: &webhookURL,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)
	flags = append(flags, telegramFlags(&cfg)...)

	return &cli.Command{
		Name:  "register",
		Usage: "Register a Telegram bot and set its webhook",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			ctx = cfg.setupLogger(ctx)

			repo, err := cfg.newRepository()
			if err != nil {
				return err
			}
			defer repo.Close()

			principal, err := apikey.New(repo).Validate(ctx, key)
			if err != nil {
				return err
			}

			uc := bot.New(repo, cfg.newTelegram(), chat.New(repo))
			registered, err := uc.Register(ctx, principal, token, webhookURL)
			if err != nil {
				return goerr.Wrap(err, "failed to register bot")
			}

			fmt.Fprintf(c.Root().Writer, "Registered @%s (id %d)\n", registered.Username, registered.ID)
			return nil
		},
	}
}

func botsToggleCommand() *cli.Command {
	var (
		cfg   config
		key   string
		botID int64
	)

	flags := []cli.Flag{
		apiKeyFlag(&key),
		&cli.IntFlag{
			Name:        "id",
			Usage:       "Bot ID",
			Required:    true,
			Destination: &botID,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)
	flags = append(flags, telegramFlags(&cfg)...)

	return &cli.Command{
		Name:  "toggle",
		Usage: "Flip a bot's active state",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			ctx = cfg.setupLogger(ctx)

			repo, err := cfg.newRepository()
			if err != nil {
				return err
			}
			defer repo.Close()

			principal, err := apikey.New(repo).Validate(ctx, key)
			if err != nil {
				return err
			}

			uc := bot.New(repo, cfg.newTelegram(), chat.New(repo))
			active, err := uc.Toggle(ctx, principal, botID)
			if err != nil {
				return err
			}

			state := "inactive"
			if active {
				state = "active"
			}
			fmt.Fprintf(c.Root().Writer, "Bot %d is now %s\n", botID, state)
			return nil
		},
	}
}
