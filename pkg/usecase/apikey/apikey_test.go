package apikey_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/mad-satoru/madai/pkg/model"
	"github.com/mad-satoru/madai/pkg/repository"
	"github.com/mad-satoru/madai/pkg/usecase/apikey"
)

func TestIssueAndValidate(t *testing.T) {
	repo := repository.NewMemory()
	uc := apikey.New(repo)
	ctx := context.Background()

	issued := gt.R1(uc.Issue(ctx, "my-service")).NoError(t)
	gt.Equal(t, issued.Name, "my-service")
	gt.True(t, strings.HasPrefix(issued.Key, apikey.KeyPrefix))
	gt.Equal(t, len(issued.Key), len(apikey.KeyPrefix)+43)

	principal := gt.R1(uc.Validate(ctx, issued.Key)).NoError(t)
	gt.Equal(t, principal.KeyID, issued.ID)
	gt.Equal(t, principal.Name, "my-service")
}

func TestIssueDefaultName(t *testing.T) {
	uc := apikey.New(repository.NewMemory())

	issued := gt.R1(uc.Issue(context.Background(), "  ")).NoError(t)
	gt.Equal(t, issued.Name, apikey.DefaultKeyName)
}

func TestIssueUniqueKeys(t *testing.T) {
	uc := apikey.New(repository.NewMemory())
	ctx := context.Background()

	a := gt.R1(uc.Issue(ctx, "a")).NoError(t)
	b := gt.R1(uc.Issue(ctx, "b")).NoError(t)
	gt.True(t, a.Key != b.Key)
}

func TestValidateUnknownKey(t *testing.T) {
	uc := apikey.New(repository.NewMemory())

	_, err := uc.Validate(context.Background(), "madai_nope")
	gt.True(t, errors.Is(err, model.ErrUnauthorized))
}

func TestRevokedKeyRejected(t *testing.T) {
	repo := repository.NewMemory()
	uc := apikey.New(repo)
	ctx := context.Background()

	issued := gt.R1(uc.Issue(ctx, "short-lived")).NoError(t)
	gt.NoError(t, uc.Revoke(ctx, issued.ID))

	_, err := uc.Validate(ctx, issued.Key)
	gt.True(t, errors.Is(err, model.ErrUnauthorized))

	keys := gt.R1(uc.List(ctx)).NoError(t)
	gt.A(t, keys).Length(1)
	gt.Equal(t, keys[0].Key, "")
	gt.True(t, keys[0].Revoked())
}

func TestRecordUsage(t *testing.T) {
	repo := repository.NewMemory()
	uc := apikey.New(repo)
	ctx := context.Background()

	issued := gt.R1(uc.Issue(ctx, "used")).NoError(t)
	uc.RecordUsage(ctx, &model.Principal{KeyID: issued.ID, Name: issued.Name})

	keys := gt.R1(uc.List(ctx)).NoError(t)
	gt.A(t, keys).Length(1)
	gt.V(t, keys[0].LastUsed).NotNil()

	// Unknown principal is logged, not surfaced.
	uc.RecordUsage(ctx, &model.Principal{KeyID: 9999})
}
