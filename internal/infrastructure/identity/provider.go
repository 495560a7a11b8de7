package identity

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"partner-onboarding.backend/internal/domain/entities"
	domainerrors "partner-onboarding.backend/internal/domain/errors"
	"partner-onboarding.backend/internal/infrastructure/models"
	"partner-onboarding.backend/pkg/crypto"
	"partner-onboarding.backend/pkg/utils"
)

// MinPasswordLength is the shortest password the provider accepts
const MinPasswordLength = 6

var (
	hashPassword = crypto.HashPasswordWithCost
	newUID       = utils.NewDocumentID
	now          = func() time.Time { return time.Now().UTC() }
)

// Provider is a database-backed identity provider. It never joins the request
// transaction: its writes survive a document store rollback and are undone only
// by explicit compensation.
type Provider struct {
	db          *gorm.DB
	bcryptCost  int
	minPassword int
}

// NewProvider creates an identity provider. A non-positive minPassword uses MinPasswordLength.
func NewProvider(db *gorm.DB, bcryptCost, minPassword int) *Provider {
	if minPassword <= 0 {
		minPassword = MinPasswordLength
	}
	return &Provider{db: db, bcryptCost: bcryptCost, minPassword: minPassword}
}

func (p *Provider) CreateUser(ctx context.Context, params entities.NewIdentityUser) (*entities.IdentityUser, error) {
	email := strings.ToLower(strings.TrimSpace(params.Email))
	if email == "" {
		return nil, domainerrors.ErrInvalidInput
	}
	if len(params.Password) < p.minPassword {
		return nil, domainerrors.ErrWeakPassword
	}

	var count int64
	if err := p.db.WithContext(ctx).Model(&models.IdentityUser{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, domainerrors.ErrAlreadyExists
	}

	hash, err := hashPassword(params.Password, p.bcryptCost)
	if err != nil {
		return nil, err
	}

	ts := now()
	m := &models.IdentityUser{
		UID:          newUID(),
		Email:        email,
		DisplayName:  params.DisplayName,
		PasswordHash: hash,
		CreatedAt:    ts,
		UpdatedAt:    ts,
	}
	if err := p.db.WithContext(ctx).Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || isUniqueViolation(err) {
			return nil, domainerrors.ErrAlreadyExists
		}
		return nil, err
	}
	return toEntity(m), nil
}

func (p *Provider) SetRoleClaim(ctx context.Context, uid string, role entities.IdentityRole) error {
	res := p.db.WithContext(ctx).Model(&models.IdentityUser{}).
		Where("uid = ?", uid).
		Updates(map[string]interface{}{
			"role":       string(role),
			"updated_at": now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (p *Provider) DeleteUser(ctx context.Context, uid string) error {
	res := p.db.WithContext(ctx).Where("uid = ?", uid).Delete(&models.IdentityUser{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (p *Provider) GetUser(ctx context.Context, uid string) (*entities.IdentityUser, error) {
	var m models.IdentityUser
	if err := p.db.WithContext(ctx).Where("uid = ?", uid).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toEntity(&m), nil
}

func (p *Provider) Authenticate(ctx context.Context, email, password string) (*entities.IdentityUser, error) {
	var m models.IdentityUser
	err := p.db.WithContext(ctx).Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrInvalidCredentials
		}
		return nil, err
	}
	if !crypto.CheckPassword(password, m.PasswordHash) {
		return nil, domainerrors.ErrInvalidCredentials
	}
	return toEntity(&m), nil
}

// ListByRole pages through users holding role, oldest first. An empty role
// lists users without any role claim.
func (p *Provider) ListByRole(ctx context.Context, role entities.IdentityRole, limit, offset int) ([]*entities.IdentityUser, error) {
	query := p.db.WithContext(ctx).Model(&models.IdentityUser{})
	if role == "" {
		query = query.Where("role IS NULL")
	} else {
		query = query.Where("role = ?", string(role))
	}

	var ms []models.IdentityUser
	if err := query.Order("created_at ASC").Order("uid ASC").Limit(limit).Offset(offset).Find(&ms).Error; err != nil {
		return nil, err
	}

	users := make([]*entities.IdentityUser, 0, len(ms))
	for i := range ms {
		users = append(users, toEntity(&ms[i]))
	}
	return users, nil
}

// Seed creates a user with a role claim already set. Used by the admin bootstrap command.
func (p *Provider) Seed(ctx context.Context, params entities.NewIdentityUser, role entities.IdentityRole) (*entities.IdentityUser, error) {
	user, err := p.CreateUser(ctx, params)
	if err != nil {
		return nil, err
	}
	if err := p.SetRoleClaim(ctx, user.UID, role); err != nil {
		return nil, err
	}
	user.Role = role
	return user, nil
}

func toEntity(m *models.IdentityUser) *entities.IdentityUser {
	return &entities.IdentityUser{
		UID:         m.UID,
		Email:       m.Email,
		DisplayName: m.DisplayName,
		Role:        entities.IdentityRole(m.Role.String),
		CreatedAt:   m.CreatedAt,
	}
}

func isUniqueViolation(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}
