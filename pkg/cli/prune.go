package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/mad-satoru/madai/pkg/usecase/chat"
	"github.com/urfave/cli/v3"
)

func pruneCommand() *cli.Command {
	var (
		cfg  config
		days int64
	)

	flags := []cli.Flag{
		&cli.IntFlag{
			Name:        "days",
			Usage:       "Delete entries older than this many days (0 deletes everything)",
			Value:       1,
			Destination: &days,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)

	return &cli.Command{
		Name:  "prune",
		Usage: "Delete old conversation entries",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			ctx = cfg.setupLogger(ctx)

			repo, err := cfg.newRepository()
			if err != nil {
				return err
			}
			defer repo.Close()

			deleted, err := chat.New(repo).Prune(ctx, time.Duration(days)*24*time.Hour)
			if err != nil {
				return err
			}

			fmt.Fprintf(c.Root().Writer, "Deleted %d messages\n", deleted)
			return nil
		},
	}
}
