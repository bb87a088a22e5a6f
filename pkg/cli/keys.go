package cli

import (
	"context"
	"fmt"

	"github.com/mad-satoru/madai/pkg/usecase/apikey"
	"github.com/urfave/cli/v3"
)

func keysCommand() *cli.Command {
	return &cli.Command{
		Name:  "keys",
		Usage: "Manage API keys",
		Commands: []*cli.Command{
			keysListCommand(),
			keysIssueCommand(),
			keysRevokeCommand(),
		},
	}
}

func keysListCommand() *cli.Command {
	var cfg config

	return &cli.Command{
		Name:  "list",
		Usage: "List all API keys",
		Flags: globalFlags(&cfg),
		Action: func(ctx context.Context, c *cli.Command) error {
			ctx = cfg.setupLogger(ctx)

			repo, err := cfg.newRepository()
			if err != nil {
				return err
			}
			defer repo.Close()

			keys, err := apikey.New(repo).List(ctx)
			if err != nil {
				return err
			}

			for _, k := range keys {
				status := "active"
				if k.Revoked() {
					status = "revoked"
				}
				lastUsed := "-"
				if k.LastUsed != nil {
					lastUsed = k.LastUsed.Format("2006-01-02 15:04:05")
				}
				fmt.Fprintf(c.Root().Writer, "%d\t%s\t%s\t%s\n", k.ID, k.Name, status, lastUsed)
			}
			return nil
		},
	}
}

func keysIssueCommand() *cli.Command {
	var (
		cfg  config
		name string
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "name",
			Usage:       "Key name",
			Destination: &name,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)

	return &cli.Command{
		Name:  "issue",
		Usage: "Issue a new API key",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			ctx = cfg.setupLogger(ctx)

			repo, err := cfg.newRepository()
			if err != nil {
				return err
			}
			defer repo.Close()

			issued, err := apikey.New(repo).Issue(ctx, name)
			if err != nil {
				return err
			}

			// The secret is shown once; listings never include it.
			fmt.Fprintf(c.Root().Writer, "%s\n", issued.Key)
			return nil
		},
	}
}

func keysRevokeCommand() *cli.Command {
	var (
		cfg config
		id  int64
	)

	flags := []cli.Flag{
		&cli.IntFlag{
			Name:        "id",
			Usage:       "Key ID to revoke",
			Required:    true,
			Destination: &id,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)

	return &cli.Command{
		Name:  "revoke",
		Usage: "Revoke an API key",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			ctx = cfg.setupLogger(ctx)

			repo, err := cfg.newRepository()
			if err != nil {
				return err
			}
			defer repo.Close()

			if err := apikey.New(repo).Revoke(ctx, id); err != nil {
				return err
			}

			fmt.Fprintf(c.Root().Writer, "Revoked key %d\n", id)
			return nil
		},
	}
}
