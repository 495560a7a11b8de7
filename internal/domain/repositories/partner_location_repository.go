package repositories

import (
	"context"

	"partner-onboarding.backend/internal/domain/entities"
)

// PartnerLocationRepository defines location store operations used by onboarding
type PartnerLocationRepository interface {
	Create(ctx context.Context, location *entities.PartnerLocation) error
	CountByAccountID(ctx context.Context, accountID string) (int64, error)
	ListByAccountID(ctx context.Context, accountID string) ([]*entities.PartnerLocation, error)
}
