package domain

import "time"

const (
	ProfileAdmin = "ADMIN"
	ProfileUser  = "USER"
)

// User models an account holder. The password-reset token and its expiry live
// on the user row: issuing a new token overwrites the previous pair, and
// consuming one clears both fields in the same store update that swaps the
// credential hash.
type User struct {
	ID                   string     `json:"user_id"`
	Name                 string     `json:"name"`
	Username             string     `json:"username"`
	Email                string     `json:"email"`
	Phone                string     `json:"phone,omitempty"`
	PasswordHash         string     `json:"-"`
	Profile              string     `json:"profile"`
	Active               bool       `json:"active"`
	PasswordResetToken   string     `json:"-"`
	PasswordResetExpires *time.Time `json:"-"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

// Principal is the authenticated identity derived from a verified token. It
// is passed explicitly into every authorization-sensitive operation, never
// read from ambient state.
type Principal struct {
	UserID   string
	Username string
	Profile  string
}

// IsAdmin reports whether the principal carries the ADMIN profile.
func (p *Principal) IsAdmin() bool {
	return p != nil && p.Profile == ProfileAdmin
}
