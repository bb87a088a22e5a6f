package cli

import (
	"context"
	"fmt"

	"github.com/mad-satoru/madai/pkg/usecase/knowledge"
	"github.com/urfave/cli/v3"
)

func seedCommand() *cli.Command {
	var (
		cfg  config
		file string
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "file",
			Aliases:     []string{"f"},
			Usage:       "YAML seed file",
			Value:       "seed/knowledge.yml",
			Sources:     cli.EnvVars("MADAI_SEED_FILE"),
			Destination: &file,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)

	return &cli.Command{
		Name:  "seed",
		Usage: "Load knowledge records from a YAML file",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			ctx = cfg.setupLogger(ctx)

			repo, err := cfg.newRepository()
			if err != nil {
				return err
			}
			defer repo.Close()

			count, err := knowledge.New(repo).Seed(ctx, file)
			if err != nil {
				return err
			}

			fmt.Fprintf(c.Root().Writer, "Seeded %d records\n", count)
			return nil
		},
	}
}
