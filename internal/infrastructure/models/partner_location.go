package models

import "time"

type PartnerLocation struct {
	ID        string    `gorm:"type:varchar(64);primaryKey"`
	AccountID string    `gorm:"type:varchar(64);not null;index"`
	Name      string    `gorm:"type:varchar(255);not null"`
	Address   string    `gorm:"type:varchar(500)"`
	IsDefault bool      `gorm:"not null;default:false"`
	CreatedAt time.Time `gorm:"not null"`
}

func (PartnerLocation) TableName() string {
	return "partner_locations"
}
