package models

import (
	"time"
)

type RegistrationRequest struct {
	ID               string    `gorm:"type:varchar(64);primaryKey"`
	Kind             string    `gorm:"type:varchar(20);not null;index"`
	Email            string    `gorm:"type:varchar(255);not null;index"`
	FirstName        string    `gorm:"type:varchar(100);not null"`
	LastName         string    `gorm:"type:varchar(100);not null"`
	BusinessName     string    `gorm:"type:varchar(255);not null"`
	Website          string    `gorm:"type:varchar(255)"`
	BusinessType     string    `gorm:"type:varchar(100)"`
	Location         string    `gorm:"type:varchar(255)"`
	PhoneDialCode    string    `gorm:"type:varchar(10)"`
	PhoneNumber      string    `gorm:"type:varchar(32)"`
	PhoneCountryCode string    `gorm:"type:varchar(8)"`
	PhoneCountryName string    `gorm:"type:varchar(100)"`
	Message          string    `gorm:"type:text"`
	Consent          bool      `gorm:"not null;default:false"`
	Approved         bool      `gorm:"not null;default:false"`
	CreatedAt        time.Time `gorm:"not null;index"`
}

func (RegistrationRequest) TableName() string {
	return "registration_requests"
}
