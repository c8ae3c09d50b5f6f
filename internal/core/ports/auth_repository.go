package ports

import (
	"context"

	"github.com/zafiro/crm/internal/core/domain"
)

// CredentialRepository looks up login credentials.
type CredentialRepository interface {
	// FindByEmail returns domain.ErrInvalidCredentials when no record matches.
	FindByEmail(ctx context.Context, email string) (*domain.Credential, error)
}

// ProfileRepository resolves employee profiles together with their role.
type ProfileRepository interface {
	// FindWithRole loads the profile and its role in a single lookup.
	// Returns domain.ErrProfileNotFound when no profile exists and
	// domain.ErrUnknownRole when the stored role name is not recognised.
	FindWithRole(ctx context.Context, userID string) (*domain.UserProfile, error)
	// UpdateRole points the profile at a different role.
	// Returns domain.ErrProfileNotFound when no profile exists.
	UpdateRole(ctx context.Context, userID, roleID string) error
}

// SessionStore tracks live sessions.
type SessionStore interface {
	// Save records the session until its expiry.
	Save(ctx context.Context, session domain.Session) error
	// UserID returns the user bound to a live session, or
	// domain.ErrUnauthenticated when the session is unknown or expired.
	UserID(ctx context.Context, sessionID string) (string, error)
	Delete(ctx context.Context, sessionID string) error
}
