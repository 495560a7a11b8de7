package repositories

import (
	"context"

	"partner-onboarding.backend/internal/domain/entities"
)

// IdentityProvider creates and deletes authenticated users. It is a separate
// system from the document store: its writes never join a UnitOfWork.
type IdentityProvider interface {
	// CreateUser fails with ErrAlreadyExists if the email is taken and
	// ErrWeakPassword if the password is rejected
	CreateUser(ctx context.Context, params entities.NewIdentityUser) (*entities.IdentityUser, error)
	SetRoleClaim(ctx context.Context, uid string, role entities.IdentityRole) error
	DeleteUser(ctx context.Context, uid string) error
	GetUser(ctx context.Context, uid string) (*entities.IdentityUser, error)
	// Authenticate fails with ErrInvalidCredentials on unknown email or bad password
	Authenticate(ctx context.Context, email, password string) (*entities.IdentityUser, error)
	ListByRole(ctx context.Context, role entities.IdentityRole, limit, offset int) ([]*entities.IdentityUser, error)
}

// CodeNotifier delivers a freshly issued registration code out of band
type CodeNotifier interface {
	SendRegistrationCode(ctx context.Context, account *entities.PartnerAccount) error
}
