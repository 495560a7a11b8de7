package entities

import "time"

// RequestKind distinguishes partner signups from plain contact submissions
type RequestKind string

const (
	RequestKindSignup  RequestKind = "signup"
	RequestKindContact RequestKind = "contact"
)

// Phone is the structured phone number captured by the signup form
type Phone struct {
	Code     string `json:"code"`                      // ISO country code, e.g. "ES"
	Name     string `json:"name"`                      // country name
	Number   string `json:"number" binding:"required"` // national number
	DialCode string `json:"dialCode"`                  // e.g. "+34"
}

// IsZero reports whether no phone field is set
func (p Phone) IsZero() bool {
	return p == Phone{}
}

// RegistrationRequest is an unapproved signup or contact submission
type RegistrationRequest struct {
	ID           string      `json:"id"`
	Kind         RequestKind `json:"kind"`
	Email        string      `json:"email"`
	FirstName    string      `json:"firstName"`
	LastName     string      `json:"lastName"`
	BusinessName string      `json:"businessName"`
	Website      string      `json:"website,omitempty"`
	BusinessType string      `json:"businessType,omitempty"`
	Location     string      `json:"location,omitempty"`
	Phone        Phone       `json:"phone"`
	Message      string      `json:"message,omitempty"`
	Consent      bool        `json:"consent"`
	Approved     bool        `json:"approved"`
	CreatedAt    time.Time   `json:"createdAt"`
}

// SignupRequestInput is the public signup payload
type SignupRequestInput struct {
	Email        string `json:"email" binding:"required"`
	FirstName    string `json:"firstName" binding:"required"`
	LastName     string `json:"lastName" binding:"required"`
	BusinessName string `json:"businessName" binding:"required"`
	Website      string `json:"website"`
	BusinessType string `json:"businessType" binding:"required"`
	Location     string `json:"location" binding:"required"`
	Phone        *Phone `json:"phone" binding:"required"`
	Consent      *bool  `json:"consent" binding:"required"`
}

// ContactRequestInput is the public contact form payload
type ContactRequestInput struct {
	Email        string `json:"email" binding:"required"`
	FirstName    string `json:"firstName" binding:"required"`
	LastName     string `json:"lastName" binding:"required"`
	BusinessName string `json:"businessName" binding:"required"`
	Message      string `json:"message" binding:"required"`
	Phone        *Phone `json:"phone"`
	Consent      *bool  `json:"consent" binding:"required"`
}

// RequestListResponse is the admin listing of pending requests
type RequestListResponse struct {
	Requests []*RegistrationRequest `json:"requests"`
	Page     int                    `json:"page"`
	Limit    int                    `json:"limit"`
	Total    int64                  `json:"total"`
	Pages    int                    `json:"pages"`
}
