package repositories

import (
	"context"

	"partner-onboarding.backend/internal/domain/entities"
)

// RegistrationRequestRepository defines request store operations
type RegistrationRequestRepository interface {
	Create(ctx context.Context, req *entities.RegistrationRequest) error
	GetByID(ctx context.Context, id string) (*entities.RegistrationRequest, error)
	Delete(ctx context.Context, id string) error
	ListPending(ctx context.Context, kind entities.RequestKind, limit, offset int) ([]*entities.RegistrationRequest, int64, error)
}
