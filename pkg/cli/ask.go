package cli

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/mad-satoru/madai/pkg/usecase/chat"
	"github.com/urfave/cli/v3"
)

func askCommand() *cli.Command {
	var cfg config

	return &cli.Command{
		Name:      "ask",
		Usage:     "Resolve a single query and print the answer",
		ArgsUsage: "<query>",
		Flags:     globalFlags(&cfg),
		Action: func(ctx context.Context, c *cli.Command) error {
			ctx = cfg.setupLogger(ctx)

			query := c.Args().First()
			if query == "" {
				return goerr.New("query argument is required")
			}

			repo, err := cfg.newRepository()
			if err != nil {
				return err
			}
			defer repo.Close()

			out, err := chat.New(repo).Resolve(ctx, chat.ResolveInput{
				Query:  query,
				ChatID: uuid.New().String(),
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(c.Root().Writer, "%s\n", out.AIMessage.Content)
			return nil
		},
	}
}
