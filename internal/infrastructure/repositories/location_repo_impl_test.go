package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"partner-onboarding.backend/internal/domain/entities"
)

func TestPartnerLocationRepository_CreateCountList(t *testing.T) {
	db := newMigratedTestDB(t)
	repo := NewPartnerLocationRepository(db)
	ctx := context.Background()

	count, err := repo.CountByAccountID(ctx, "uid-1")
	require.NoError(t, err)
	require.Zero(t, count)

	require.NoError(t, repo.Create(ctx, &entities.PartnerLocation{
		ID:        "loc-1",
		AccountID: "uid-1",
		Name:      "Clinica",
		Address:   "Calle 1",
		IsDefault: true,
		CreatedAt: time.Now().UTC(),
	}))

	count, err = repo.CountByAccountID(ctx, "uid-1")
	require.NoError(t, err)
	require.Equal(t, int64(1), count)

	items, err := repo.ListByAccountID(ctx, "uid-1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.True(t, items[0].IsDefault)
	require.Equal(t, "Calle 1", items[0].Address)
}
