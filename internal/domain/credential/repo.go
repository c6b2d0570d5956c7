package credential

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a user has no stored credential.
var ErrNotFound = errors.New("credential not found")

type Repository interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*Credential, error)
	// Upsert writes the credential for cred.UserID, inserting or replacing.
	Upsert(ctx context.Context, cred *Credential) error
}

type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	// GetOrCreate resolves a local user by DrChrono username, creating one
	// on first sight.
	GetOrCreate(ctx context.Context, username string) (*User, error)
}
