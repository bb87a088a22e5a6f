package cli

import (
	"context"

	"github.com/urfave/cli/v3"
)

type Error struct {
	Code    int
	Message string
}

func Run(ctx context.Context, argv []string) *Error {
	cmd := &cli.Command{
		Name:  "madai",
		Usage: "Lua programming assistant",
		Commands: []*cli.Command{
			serveCommand(),
			askCommand(),
			chatCommand(),
			historyCommand(),
			pruneCommand(),
			seedCommand(),
			keysCommand(),
			botsCommand(),
		},
	}

	if err := cmd.Run(ctx, argv); err != nil {
		return &Error{
			Code:    1,
			Message: err.Error(),
		}
	}

	return nil
}
