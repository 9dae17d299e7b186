package domain

import "time"

// Role gates navigation and page access.
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleCashier Role = "CASHIER"
	RoleKitchen Role = "KITCHEN"
)

// Roles lists every known role.
var Roles = []Role{RoleAdmin, RoleCashier, RoleKitchen}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleCashier, RoleKitchen:
		return true
	}
	return false
}

// Identity is the display-only view of an access token payload.
// It is never a basis for trust decisions.
type Identity struct {
	SubjectID string
	Email     string
	Role      Role
	IssuedAt  *time.Time
	ExpiresAt *time.Time
}

// Expired reports whether the payload carries an expiry in the past.
func (i *Identity) Expired(now time.Time) bool {
	return i != nil && i.ExpiresAt != nil && !now.Before(*i.ExpiresAt)
}

// TokenPair is issued by the backend on login and refresh.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Complete reports whether both tokens are present.
func (p *TokenPair) Complete() bool {
	return p != nil && p.AccessToken != "" && p.RefreshToken != ""
}
