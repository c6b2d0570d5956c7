package credential

import (
	"time"

	"github.com/google/uuid"
)

// User is a local clinic-staff account, provisioned on first successful
// DrChrono authorization and keyed by the DrChrono username.
type User struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Username  string    `db:"username" json:"username"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Credential is the stored DrChrono OAuth token set for one local user.
// There is exactly one credential per user; the callback and every refresh
// upsert it in place.
type Credential struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	UserID       uuid.UUID  `db:"user_id" json:"user_id"`
	AccessToken  string     `db:"access_token" json:"-"`
	RefreshToken *string    `db:"refresh_token" json:"-"`
	ExpiresAt    *time.Time `db:"expires_at" json:"expires_at,omitempty"`
	Scope        string     `db:"scope" json:"scope"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}

// IsExpired reports whether the access token must be refreshed before use.
// A credential without a known expiry always counts as expired.
func (c *Credential) IsExpired(now time.Time) bool {
	if c.ExpiresAt == nil {
		return true
	}
	return !now.Before(*c.ExpiresAt)
}
