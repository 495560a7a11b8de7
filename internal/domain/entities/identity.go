package entities

import "time"

// IdentityRole is the role claim attached to an identity-provider user
type IdentityRole string

const (
	IdentityRolePartner IdentityRole = "partner"
	IdentityRoleAdmin   IdentityRole = "admin"
)

// IdentityUser is a user owned by the identity provider
type IdentityUser struct {
	UID         string       `json:"uid"`
	Email       string       `json:"email"`
	DisplayName string       `json:"displayName"`
	Role        IdentityRole `json:"role,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
}

// NewIdentityUser holds the parameters for creating an identity user
type NewIdentityUser struct {
	Email       string
	Password    string
	DisplayName string
}

// Caller is the authenticated principal of a request, if any
type Caller struct {
	UID   string
	Email string
	Role  IdentityRole
}

// IsAdmin reports whether the caller carries the admin claim
func (c *Caller) IsAdmin() bool {
	return c != nil && c.Role == IdentityRoleAdmin
}

// SignInInput is the identity sign-in payload
type SignInInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse is returned by a successful sign-in
type AuthResponse struct {
	AccessToken  string        `json:"accessToken"`
	RefreshToken string        `json:"refreshToken"`
	User         *IdentityUser `json:"user"`
}
