package models

import (
	"time"

	"github.com/volatiletech/null/v8"
)

type PartnerAccount struct {
	ID                  string      `gorm:"type:varchar(64);primaryKey"`
	UID                 null.String `gorm:"column:uid;type:varchar(64);index"`
	Email               string      `gorm:"type:varchar(255);not null;index;uniqueIndex:idx_partner_accounts_outstanding_email,where:status = 'enabled' AND uid IS NULL"`
	FirstName           string      `gorm:"type:varchar(100);not null"`
	LastName            string      `gorm:"type:varchar(100);not null"`
	BusinessName        string      `gorm:"type:varchar(255);not null"`
	Website             null.String `gorm:"type:varchar(255)"`
	BusinessType        string      `gorm:"type:varchar(100)"`
	Location            string      `gorm:"type:varchar(255)"`
	PhoneDialCode       string      `gorm:"type:varchar(10)"`
	PhoneNumber         string      `gorm:"type:varchar(32)"`
	PhoneCountryCode    string      `gorm:"type:varchar(8)"`
	PhoneCountryName    string      `gorm:"type:varchar(100)"`
	Status              string      `gorm:"type:varchar(20);not null;default:'enabled';index"`
	RegistrationCode    null.String `gorm:"type:varchar(32);uniqueIndex:idx_partner_accounts_outstanding_code,where:uid IS NULL"`
	ApprovedAt          time.Time   `gorm:"not null"`
	CreatedAt           time.Time   `gorm:"not null"`
	RegisteredAt        null.Time
	OnboardingCompleted bool   `gorm:"not null;default:false"`
	Profile             string `gorm:"type:text;not null;default:'{}'"`
	UpdatedAt           time.Time
}

func (PartnerAccount) TableName() string {
	return "partner_accounts"
}
