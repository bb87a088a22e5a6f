package cli_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/mad-satoru/madai/pkg/cli"
)

func TestAskCommand(t *testing.T) {
	err := cli.Run(context.Background(), []string{"madai", "ask", "--db", ":memory:", "--log-level", "error", "2 + 2"})
	gt.V(t, err).Nil()
}

func TestAskCommandRequiresQuery(t *testing.T) {
	err := cli.Run(context.Background(), []string{"madai", "ask", "--db", ":memory:", "--log-level", "error"})
	gt.V(t, err).NotNil()
}

func TestPruneCommand(t *testing.T) {
	err := cli.Run(context.Background(), []string{"madai", "prune", "--db", ":memory:", "--log-level", "error", "--days", "1"})
	gt.V(t, err).Nil()
}

func TestHistoryCommand(t *testing.T) {
	err := cli.Run(context.Background(), []string{"madai", "history", "--db", ":memory:", "--log-level", "error"})
	gt.V(t, err).Nil()
}

func TestSeedCommand(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "seed.yml")
	gt.NoError(t, os.WriteFile(path, []byte("topics:\n  - name: test\n    keywords: [test]\n"), 0o600))

	err := cli.Run(context.Background(), []string{"madai", "seed", "--db", ":memory:", "--log-level", "error", "--file", path})
	gt.V(t, err).Nil()
}

func TestSeedCommandMissingFile(t *testing.T) {
	err := cli.Run(context.Background(), []string{"madai", "seed", "--db", ":memory:", "--log-level", "error", "--file", "/nonexistent.yml"})
	gt.V(t, err).NotNil()
}
