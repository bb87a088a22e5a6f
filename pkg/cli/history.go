package cli

import (
	"context"
	"fmt"

	"github.com/mad-satoru/madai/pkg/usecase/chat"
	"github.com/urfave/cli/v3"
)

func historyCommand() *cli.Command {
	var (
		cfg   config
		limit int64
	)

	flags := []cli.Flag{
		&cli.IntFlag{
			Name:        "limit",
			Aliases:     []string{"n"},
			Usage:       "Maximum number of entries",
			Value:       100,
			Destination: &limit,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)

	return &cli.Command{
		Name:  "history",
		Usage: "List conversation history, oldest first",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			ctx = cfg.setupLogger(ctx)

			repo, err := cfg.newRepository()
			if err != nil {
				return err
			}
			defer repo.Close()

			messages, err := chat.New(repo).History(ctx, int(limit))
			if err != nil {
				return err
			}

			for _, msg := range messages {
				fmt.Fprintf(c.Root().Writer, "%s\t%s\t%s\n",
					msg.CreatedAt.Format("2006-01-02 15:04:05"),
					msg.Role,
					msg.Content,
				)
			}
			return nil
		},
	}
}
