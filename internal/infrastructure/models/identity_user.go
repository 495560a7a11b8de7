package models

import (
	"time"

	"github.com/volatiletech/null/v8"
)

type IdentityUser struct {
	UID          string      `gorm:"column:uid;type:varchar(64);primaryKey"`
	Email        string      `gorm:"type:varchar(255);uniqueIndex;not null"`
	DisplayName  string      `gorm:"type:varchar(200)"`
	PasswordHash string      `gorm:"type:varchar(255);not null"`
	Role         null.String `gorm:"type:varchar(50);index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (IdentityUser) TableName() string {
	return "identity_users"
}
