package knowledge

import (
	"context"
	"io"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mad-satoru/madai/pkg/model"
	"github.com/mad-satoru/madai/pkg/utils/logging"
	"gopkg.in/yaml.v3"
)

// seedFile is the on-disk shape of a knowledge seed: one list per domain,
// all lists optional.
type seedFile struct {
	Games       []*model.KnowledgeRecord `yaml:"games"`
	Celebrities []*model.KnowledgeRecord `yaml:"celebrities"`
	Topics      []*model.KnowledgeRecord `yaml:"topics"`
}

// Seed loads a YAML seed file and appends every record it holds. Returns the
// number of stored records. Seeding is append-only; running the same file
// twice duplicates its records.
func (u *UseCase) Seed(ctx context.Context, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to open seed file", goerr.V("path", path))
	}
	defer f.Close()

	count, err := u.SeedFrom(ctx, f)
	if err != nil {
		return count, goerr.Wrap(err, "failed to load seed file", goerr.V("path", path))
	}
	return count, nil
}

// SeedFrom reads YAML seed data from r and appends every record.
func (u *UseCase) SeedFrom(ctx context.Context, r io.Reader) (int, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to read seed data")
	}

	var seed seedFile
	if err := yaml.Unmarshal(raw, &seed); err != nil {
		return 0, goerr.Wrap(err, "failed to parse seed data")
	}

	count := 0
	for _, batch := range []struct {
		domain  model.Domain
		records []*model.KnowledgeRecord
	}{
		{model.DomainGames, seed.Games},
		{model.DomainCelebrities, seed.Celebrities},
		{model.DomainTopics, seed.Topics},
	} {
		for _, rec := range batch.records {
			if err := u.repo.PutKnowledge(ctx, batch.domain, rec); err != nil {
				return count, goerr.Wrap(err, "failed to store seed record",
					goerr.V("domain", batch.domain),
					goerr.V("name", rec.Name),
				)
			}
			count++
		}
	}

	logging.From(ctx).Info("seeded knowledge base", "records", count)
	return count, nil
}
