package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"partner-onboarding.backend/internal/domain/entities"
	domainerrors "partner-onboarding.backend/internal/domain/errors"
	"partner-onboarding.backend/internal/infrastructure/models"
	"partner-onboarding.backend/pkg/utils"
)

// RegistrationRequestRepositoryImpl implements RegistrationRequestRepository
type RegistrationRequestRepositoryImpl struct {
	db *gorm.DB
}

func NewRegistrationRequestRepository(db *gorm.DB) *RegistrationRequestRepositoryImpl {
	return &RegistrationRequestRepositoryImpl{db: db}
}

func (r *RegistrationRequestRepositoryImpl) Create(ctx context.Context, req *entities.RegistrationRequest) error {
	if req.ID == "" {
		req.ID = utils.NewDocumentID()
	}
	m := &models.RegistrationRequest{
		ID:               req.ID,
		Kind:             string(req.Kind),
		Email:            req.Email,
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		BusinessName:     req.BusinessName,
		Website:          req.Website,
		BusinessType:     req.BusinessType,
		Location:         req.Location,
		PhoneDialCode:    req.Phone.DialCode,
		PhoneNumber:      req.Phone.Number,
		PhoneCountryCode: req.Phone.Code,
		PhoneCountryName: req.Phone.Name,
		Message:          req.Message,
		Consent:          req.Consent,
		Approved:         req.Approved,
		CreatedAt:        req.CreatedAt,
	}
	return GetDB(ctx, r.db).Create(m).Error
}

func (r *RegistrationRequestRepositoryImpl) GetByID(ctx context.Context, id string) (*entities.RegistrationRequest, error) {
	var m models.RegistrationRequest
	if err := lockingDB(ctx, r.db).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

func (r *RegistrationRequestRepositoryImpl) Delete(ctx context.Context, id string) error {
	res := GetDB(ctx, r.db).Where("id = ?", id).Delete(&models.RegistrationRequest{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// ListPending returns unapproved requests, newest first. An empty kind lists both kinds.
func (r *RegistrationRequestRepositoryImpl) ListPending(ctx context.Context, kind entities.RequestKind, limit, offset int) ([]*entities.RegistrationRequest, int64, error) {
	pending := func() *gorm.DB {
		query := GetDB(ctx, r.db).Model(&models.RegistrationRequest{}).Where("approved = ?", false)
		if kind != "" {
			query = query.Where("kind = ?", string(kind))
		}
		return query
	}

	var total int64
	if err := pending().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ms []models.RegistrationRequest
	if err := pending().Order("created_at DESC").Limit(limit).Offset(offset).Find(&ms).Error; err != nil {
		return nil, 0, err
	}

	requests := make([]*entities.RegistrationRequest, 0, len(ms))
	for i := range ms {
		requests = append(requests, r.toEntity(&ms[i]))
	}
	return requests, total, nil
}

func (r *RegistrationRequestRepositoryImpl) toEntity(m *models.RegistrationRequest) *entities.RegistrationRequest {
	return &entities.RegistrationRequest{
		ID:           m.ID,
		Kind:         entities.RequestKind(m.Kind),
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
		Message:   m.Message,
		Consent:   m.Consent,
		Approved:  m.Approved,
		CreatedAt: m.CreatedAt,
	}
}
