package entities

import (
	"strings"
	"time"

	"github.com/volatiletech/null/v8"
)

// AccountStatus represents whether a partner account may be used
type AccountStatus string

const (
	AccountStatusEnabled  AccountStatus = "enabled"
	AccountStatusDisabled AccountStatus = "disabled"
)

// Toggled returns the opposite status
func (s AccountStatus) Toggled() AccountStatus {
	if s == AccountStatusEnabled {
		return AccountStatusDisabled
	}
	return AccountStatusEnabled
}

// PartnerAccount is the durable partner record. It is keyed by the request id
// until registration completes and by the identity uid afterwards.
type PartnerAccount struct {
	ID                  string        `json:"id"`
	UID                 null.String   `json:"uid,omitempty"`
	Email               string        `json:"email"`
	FirstName           string        `json:"firstName"`
	LastName            string        `json:"lastName"`
	BusinessName        string        `json:"businessName"`
	Website             null.String   `json:"website,omitempty"`
	BusinessType        string        `json:"businessType"`
	Location            string        `json:"location"`
	Phone               Phone         `json:"phone"`
	Status              AccountStatus `json:"status"`
	RegistrationCode    null.String   `json:"-"`
	ApprovedAt          time.Time     `json:"approvedAt"`
	CreatedAt           time.Time     `json:"createdAt"`
	RegisteredAt        null.Time     `json:"registeredAt,omitempty"`
	OnboardingCompleted bool          `json:"onboardingCompleted"`
	Profile             Profile       `json:"profile,omitempty"`
	UpdatedAt           time.Time     `json:"updatedAt"`
}

// NewAccountFromRequest builds the approved-unregistered account for req
func NewAccountFromRequest(req *RegistrationRequest, code string, approvedAt time.Time) *PartnerAccount {
	createdAt := req.CreatedAt
	if createdAt.IsZero() {
		createdAt = approvedAt
	}
	acc := &PartnerAccount{
		ID:               req.ID,
		Email:            strings.ToLower(req.Email),
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		BusinessName:     req.BusinessName,
		BusinessType:     req.BusinessType,
		Location:         req.Location,
		Phone:            req.Phone,
		Status:           AccountStatusEnabled,
		RegistrationCode: null.StringFrom(code),
		ApprovedAt:       approvedAt,
		CreatedAt:        createdAt,
		Profile:          Profile{},
		UpdatedAt:        approvedAt,
	}
	if req.Website != "" {
		acc.Website = null.StringFrom(req.Website)
	}
	return acc
}

// IsRegistered reports whether the account is bound to an identity user
func (a *PartnerAccount) IsRegistered() bool {
	return a.UID.Valid && a.UID.String != ""
}

// IsEnabled reports whether the account may pass verification
func (a *PartnerAccount) IsEnabled() bool {
	return a.Status == AccountStatusEnabled
}

// DisplayName joins first and last name
func (a *PartnerAccount) DisplayName() string {
	return strings.TrimSpace(a.FirstName + " " + a.LastName)
}

// Relocated returns the registered copy of the account keyed by uid. The
// registration code is dropped so code and uid never coexist.
func (a *PartnerAccount) Relocated(uid string, at time.Time) *PartnerAccount {
	moved := *a
	moved.ID = uid
	moved.UID = null.StringFrom(uid)
	moved.RegistrationCode = null.String{}
	moved.RegisteredAt = null.TimeFrom(at)
	moved.OnboardingCompleted = false
	moved.Profile = a.Profile.Clone()
	moved.UpdatedAt = at
	return &moved
}
