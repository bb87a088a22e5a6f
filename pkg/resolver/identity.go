package resolver

import (
	"context"
	"errors"
	"strings"

	"github.com/mad-satoru/madai/pkg/model"
	"github.com/mad-satoru/madai/pkg/repository"
)

// fallbackCreatorInfo answers identity questions when the settings table has
// no creator_info row, e.g. against a store seeded by older migrations.
const fallbackCreatorInfo = "MadAI создал Мад Сатору в 2025 году"

// identityStage answers "who made you" style questions from the creator_info
// setting, so the wording can be changed without a redeploy.
type identityStage struct {
	repo repository.Repository
}

func (s *identityStage) Name() string { return "identity" }

func (s *identityStage) Resolve(ctx context.Context, query string) (string, error) {
	q := strings.ToLower(query)

	asked := (strings.Contains(q, "создал") && strings.Contains(q, "madai")) ||
		strings.Contains(q, "кто создал") ||
		strings.Contains(q, "автор")
	if !asked {
		return "", nil
	}

	info, err := s.repo.GetSetting(ctx, model.SettingCreatorInfo)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return fallbackCreatorInfo, nil
		}
		return "", err
	}
	return info, nil
}
