package entities

import "time"

// PartnerLocation is a physical location attached to a partner account
type PartnerLocation struct {
	ID        string    `json:"id"`
	AccountID string    `json:"accountId"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	IsDefault bool      `json:"isDefault"`
	CreatedAt time.Time `json:"createdAt"`
}
