package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"partner-onboarding.backend/internal/domain/entities"
	domainerrors "partner-onboarding.backend/internal/domain/errors"
)

func newRequest(id string, kind entities.RequestKind, createdAt time.Time) *entities.RegistrationRequest {
	return &entities.RegistrationRequest{
		ID:           id,
		Kind:         kind,
		Email:        id + "@example.com",
		FirstName:    "Ana",
		LastName:     "Lopez",
		BusinessName: "Clinica " + id,
		Website:      "https://example.com",
		BusinessType: "clinic",
		Location:     "Madrid",
		Phone:        entities.Phone{Code: "ES", Name: "Spain", Number: "600000000", DialCode: "+34"},
		Consent:      true,
		CreatedAt:    createdAt,
	}
}

func TestRegistrationRequestRepository_CreateGetDelete(t *testing.T) {
	db := newMigratedTestDB(t)
	repo := NewRegistrationRequestRepository(db)
	ctx := context.Background()

	req := newRequest("req-1", entities.RequestKindSignup, time.Now().UTC())
	require.NoError(t, repo.Create(ctx, req))

	got, err := repo.GetByID(ctx, "req-1")
	require.NoError(t, err)
	require.Equal(t, entities.RequestKindSignup, got.Kind)
	require.Equal(t, req.Phone, got.Phone)
	require.True(t, got.Consent)
	require.False(t, got.Approved)

	require.NoError(t, repo.Delete(ctx, "req-1"))
	_, err = repo.GetByID(ctx, "req-1")
	require.ErrorIs(t, err, domainerrors.ErrNotFound)

	require.ErrorIs(t, repo.Delete(ctx, "req-1"), domainerrors.ErrNotFound)
}

func TestRegistrationRequestRepository_ListPending(t *testing.T) {
	db := newMigratedTestDB(t)
	repo := NewRegistrationRequestRepository(db)
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(ctx, newRequest("s1", entities.RequestKindSignup, base)))
	require.NoError(t, repo.Create(ctx, newRequest("s2", entities.RequestKindSignup, base.Add(time.Hour))))
	require.NoError(t, repo.Create(ctx, newRequest("c1", entities.RequestKindContact, base.Add(2*time.Hour))))

	items, total, err := repo.ListPending(ctx, entities.RequestKindSignup, 10, 0)
	require.NoError(t, err)
	require.Equal(t, int64(2), total)
	require.Len(t, items, 2)
	require.Equal(t, "s2", items[0].ID, "newest first")

	items, total, err = repo.ListPending(ctx, "", 1, 1)
	require.NoError(t, err)
	require.Equal(t, int64(3), total)
	require.Len(t, items, 1)
	require.Equal(t, "s2", items[0].ID)
}

func TestRegistrationRequestRepository_AssignsID(t *testing.T) {
	db := newMigratedTestDB(t)
	repo := NewRegistrationRequestRepository(db)

	req := newRequest("", entities.RequestKindContact, time.Now().UTC())
	require.NoError(t, repo.Create(context.Background(), req))
	require.NotEmpty(t, req.ID)

	_, err := repo.GetByID(context.Background(), req.ID)
	require.NoError(t, err)
}
