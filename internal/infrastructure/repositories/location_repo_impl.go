package repositories

import (
	"context"

	"gorm.io/gorm"
	"partner-onboarding.backend/internal/domain/entities"
	"partner-onboarding.backend/internal/infrastructure/models"
	"partner-onboarding.backend/pkg/utils"
)

// PartnerLocationRepositoryImpl implements PartnerLocationRepository
type PartnerLocationRepositoryImpl struct {
	db *gorm.DB
}

func NewPartnerLocationRepository(db *gorm.DB) *PartnerLocationRepositoryImpl {
	return &PartnerLocationRepositoryImpl{db: db}
}

func (r *PartnerLocationRepositoryImpl) Create(ctx context.Context, location *entities.PartnerLocation) error {
	if location.ID == "" {
		location.ID = utils.NewDocumentID()
	}
	m := &models.PartnerLocation{
		ID:        location.ID,
		AccountID: location.AccountID,
		Name:      location.Name,
		Address:   location.Address,
		IsDefault: location.IsDefault,
		CreatedAt: location.CreatedAt,
	}
	return GetDB(ctx, r.db).Create(m).Error
}

func (r *PartnerLocationRepositoryImpl) CountByAccountID(ctx context.Context, accountID string) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&models.PartnerLocation{}).
		Where("account_id = ?", accountID).
		Count(&count).Error
	return count, err
}

func (r *PartnerLocationRepositoryImpl) ListByAccountID(ctx context.Context, accountID string) ([]*entities.PartnerLocation, error) {
	var ms []models.PartnerLocation
	if err := GetDB(ctx, r.db).
		Where("account_id = ?", accountID).
		Order("created_at ASC").
		Find(&ms).Error; err != nil {
		return nil, err
	}

	locations := make([]*entities.PartnerLocation, 0, len(ms))
	for _, m := range ms {
		locations = append(locations, &entities.PartnerLocation{
			ID:        m.ID,
			AccountID: m.AccountID,
			Name:      m.Name,
			Address:   m.Address,
			IsDefault: m.IsDefault,
			CreatedAt: m.CreatedAt,
		})
	}
	return locations, nil
}
