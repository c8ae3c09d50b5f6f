package ports

import (
	"context"

	"github.com/zafiro/crm/internal/core/domain"
)

// AuthService manages the session lifecycle.
type AuthService interface {
	// Login verifies the credentials and returns a signed session token.
	Login(ctx context.Context, email, password string) (string, *domain.Session, error)
	// ValidateSession returns domain.ErrUnauthenticated for any missing,
	// malformed, expired or revoked token.
	ValidateSession(ctx context.Context, token string) (*domain.Session, error)
	SignOut(ctx context.Context, session *domain.Session) error
}

// AccessService resolves users and makes authorization decisions.
type AccessService interface {
	ResolveUser(ctx context.Context, session *domain.Session) (*domain.UserProfile, error)
	HasPermission(user *domain.UserProfile, resource domain.Resource, action domain.Action) bool
	RequirePermission(user *domain.UserProfile, resource domain.Resource, action domain.Action) error
	RequireRole(user *domain.UserProfile, allowed ...domain.RoleName) error
	UpdateUserRole(ctx context.Context, actor *domain.UserProfile, userID, roleID string) error
}
