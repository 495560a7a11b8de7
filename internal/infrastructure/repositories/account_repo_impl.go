package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"partner-onboarding.backend/internal/domain/entities"
	domainerrors "partner-onboarding.backend/internal/domain/errors"
	"partner-onboarding.backend/internal/infrastructure/models"
)

// PartnerAccountRepositoryImpl implements PartnerAccountRepository
type PartnerAccountRepositoryImpl struct {
	db *gorm.DB
}

func NewPartnerAccountRepository(db *gorm.DB) *PartnerAccountRepositoryImpl {
	return &PartnerAccountRepositoryImpl{db: db}
}

func (r *PartnerAccountRepositoryImpl) Create(ctx context.Context, account *entities.PartnerAccount) error {
	m, err := r.toModel(account)
	if err != nil {
		return err
	}
	return translateDuplicate(GetDB(ctx, r.db).Create(m).Error)
}

func (r *PartnerAccountRepositoryImpl) CreateIfAbsent(ctx context.Context, account *entities.PartnerAccount) error {
	m, err := r.toModel(account)
	if err != nil {
		return err
	}
	return GetDB(ctx, r.db).Clauses(clause.OnConflict{DoNothing: true}).Create(m).Error
}

func (r *PartnerAccountRepositoryImpl) GetByID(ctx context.Context, id string) (*entities.PartnerAccount, error) {
	return r.first(lockingDB(ctx, r.db).Where("id = ?", id))
}

func (r *PartnerAccountRepositoryImpl) GetByUID(ctx context.Context, uid string) (*entities.PartnerAccount, error) {
	return r.first(lockingDB(ctx, r.db).Where("uid = ?", uid))
}

// GetByEmail prefers a registered account when several rows share the email
func (r *PartnerAccountRepositoryImpl) GetByEmail(ctx context.Context, email string) (*entities.PartnerAccount, error) {
	return r.first(lockingDB(ctx, r.db).
		Where("email = ?", strings.ToLower(email)).
		Order("CASE WHEN uid IS NULL THEN 1 ELSE 0 END").
		Order("created_at ASC"))
}

func (r *PartnerAccountRepositoryImpl) FindEnabledByEmailAndCode(ctx context.Context, email, code string) (*entities.PartnerAccount, error) {
	return r.first(lockingDB(ctx, r.db).
		Where("email = ? AND registration_code = ? AND status = ?",
			strings.ToLower(email), code, string(entities.AccountStatusEnabled)).
		Order("created_at ASC"))
}

func (r *PartnerAccountRepositoryImpl) HasOutstanding(ctx context.Context, email string) (bool, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&models.PartnerAccount{}).
		Where("email = ? AND status = ? AND uid IS NULL",
			strings.ToLower(email), string(entities.AccountStatusEnabled)).
		Count(&count).Error
	return count > 0, err
}

func (r *PartnerAccountRepositoryImpl) CodeInUse(ctx context.Context, code string) (bool, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&models.PartnerAccount{}).
		Where("registration_code = ? AND uid IS NULL", code).
		Count(&count).Error
	return count > 0, err
}

func (r *PartnerAccountRepositoryImpl) UpdateStatus(ctx context.Context, id string, status entities.AccountStatus, at time.Time) error {
	res := GetDB(ctx, r.db).Model(&models.PartnerAccount{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     string(status),
			"updated_at": at,
		})
	if res.Error != nil {
		return translateDuplicate(res.Error)
	}
	if res.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *PartnerAccountRepositoryImpl) SaveProfile(ctx context.Context, id string, profile entities.Profile, completed bool, at time.Time) error {
	raw, err := marshalProfile(profile)
	if err != nil {
		return err
	}
	res := GetDB(ctx, r.db).Model(&models.PartnerAccount{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"profile":              raw,
			"onboarding_completed": completed,
			"updated_at":           at,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// Relocate joins the caller's transaction when there is one and opens its own otherwise
func (r *PartnerAccountRepositoryImpl) Relocate(ctx context.Context, oldID string, moved *entities.PartnerAccount) error {
	m, err := r.toModel(moved)
	if err != nil {
		return err
	}
	move := func(tx *gorm.DB) error {
		if err := tx.Create(m).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", oldID).Delete(&models.PartnerAccount{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domainerrors.ErrNotFound
		}
		return nil
	}
	if tx, ok := ctx.Value(txKey).(*gorm.DB); ok {
		return move(tx)
	}
	return r.db.WithContext(ctx).Transaction(move)
}

func (r *PartnerAccountRepositoryImpl) RegisteredUIDs(ctx context.Context, uids []string) (map[string]bool, error) {
	found := make(map[string]bool, len(uids))
	if len(uids) == 0 {
		return found, nil
	}
	var rows []string
	if err := GetDB(ctx, r.db).Model(&models.PartnerAccount{}).
		Where("uid IN ?", uids).
		Pluck("uid", &rows).Error; err != nil {
		return nil, err
	}
	for _, uid := range rows {
		found[uid] = true
	}
	return found, nil
}

func (r *PartnerAccountRepositoryImpl) first(query *gorm.DB) (*entities.PartnerAccount, error) {
	var m models.PartnerAccount
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m)
}

func (r *PartnerAccountRepositoryImpl) toModel(a *entities.PartnerAccount) (*models.PartnerAccount, error) {
	raw, err := marshalProfile(a.Profile)
	if err != nil {
		return nil, err
	}
	return &models.PartnerAccount{
		ID:                  a.ID,
		UID:                 a.UID,
		Email:               strings.ToLower(a.Email),
		FirstName:           a.FirstName,
		LastName:            a.LastName,
		BusinessName:        a.BusinessName,
		Website:             a.Website,
		BusinessType:        a.BusinessType,
		Location:            a.Location,
		PhoneDialCode:       a.Phone.DialCode,
		PhoneNumber:         a.Phone.Number,
		PhoneCountryCode:    a.Phone.Code,
		PhoneCountryName:    a.Phone.Name,
		Status:              string(a.Status),
		RegistrationCode:    a.RegistrationCode,
		ApprovedAt:          a.ApprovedAt,
		CreatedAt:           a.CreatedAt,
		RegisteredAt:        a.RegisteredAt,
		OnboardingCompleted: a.OnboardingCompleted,
		Profile:             raw,
		UpdatedAt:           a.UpdatedAt,
	}, nil
}

func (r *PartnerAccountRepositoryImpl) toEntity(m *models.PartnerAccount) (*entities.PartnerAccount, error) {
	profile := entities.Profile{}
	if m.Profile != "" {
		if err := json.Unmarshal([]byte(m.Profile), &profile); err != nil {
			return nil, err
		}
	}
	return &entities.PartnerAccount{
		ID:           m.ID,
		UID:          m.UID,
		Email:        m.Email,
		FirstName:    m.FirstName,
		LastName:     m.LastName,
		BusinessName: m.BusinessName,
		Website:      m.Website,
		BusinessType: m.BusinessType,
		Location:     m.Location,
		Phone: entities.Phone{
			Code:     m.PhoneCountryCode,
			Name:     m.PhoneCountryName,
			Number:   m.PhoneNumber,
			DialCode: m.PhoneDialCode,
		},
		Status:              entities.AccountStatus(m.Status),
		RegistrationCode:    m.RegistrationCode,
		ApprovedAt:          m.ApprovedAt,
		CreatedAt:           m.CreatedAt,
		RegisteredAt:        m.RegisteredAt,
		OnboardingCompleted: m.OnboardingCompleted,
		Profile:             profile,
		UpdatedAt:           m.UpdatedAt,
	}, nil
}

func marshalProfile(p entities.Profile) (string, error) {
	if p == nil {
		return "{}", nil
	}
	raw, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// translateDuplicate maps a unique violation on the outstanding-account indexes
// to ErrAlreadyExists. The connection must be opened with TranslateError.
func translateDuplicate(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domainerrors.ErrAlreadyExists
	}
	return err
}
