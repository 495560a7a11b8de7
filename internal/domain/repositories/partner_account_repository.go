package repositories

import (
	"context"
	"time"

	"partner-onboarding.backend/internal/domain/entities"
)

// PartnerAccountRepository defines account store operations
type PartnerAccountRepository interface {
	Create(ctx context.Context, account *entities.PartnerAccount) error
	// CreateIfAbsent inserts account unless a row with its key already exists
	CreateIfAbsent(ctx context.Context, account *entities.PartnerAccount) error
	GetByID(ctx context.Context, id string) (*entities.PartnerAccount, error)
	GetByUID(ctx context.Context, uid string) (*entities.PartnerAccount, error)
	GetByEmail(ctx context.Context, email string) (*entities.PartnerAccount, error)
	// FindEnabledByEmailAndCode returns the first enabled account matching both fields
	FindEnabledByEmailAndCode(ctx context.Context, email, code string) (*entities.PartnerAccount, error)
	// HasOutstanding reports whether email has an enabled account without a uid
	HasOutstanding(ctx context.Context, email string) (bool, error)
	// CodeInUse reports whether any unregistered account carries code
	CodeInUse(ctx context.Context, code string) (bool, error)
	UpdateStatus(ctx context.Context, id string, status entities.AccountStatus, at time.Time) error
	SaveProfile(ctx context.Context, id string, profile entities.Profile, completed bool, at time.Time) error
	// Relocate writes moved under its new key and deletes the row at oldID, atomically
	Relocate(ctx context.Context, oldID string, moved *entities.PartnerAccount) error
	// RegisteredUIDs returns the subset of uids that have an account bound to them
	RegisteredUIDs(ctx context.Context, uids []string) (map[string]bool, error)
}
