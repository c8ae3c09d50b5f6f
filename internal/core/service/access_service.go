package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/zafiro/crm/internal/api/metrics"
	"github.com/zafiro/crm/internal/core/domain"
	"github.com/zafiro/crm/internal/core/ports"
)

// AccessService resolves the user behind a session and answers role and
// permission questions about them.
type AccessService struct {
	profiles ports.ProfileRepository
	logger   zerolog.Logger
}

func NewAccessService(profiles ports.ProfileRepository, logger zerolog.Logger) *AccessService {
	return &AccessService{profiles: profiles, logger: logger}
}

// ResolveUser loads the profile and role for the session's user. A missing or
// deactivated profile yields domain.ErrProfileNotFound, which callers treat
// like an unauthenticated request.
func (s *AccessService) ResolveUser(ctx context.Context, session *domain.Session) (*domain.UserProfile, error) {
	if session == nil || session.UserID == "" {
		return nil, domain.ErrUnauthenticated
	}

	user, err := s.profiles.FindWithRole(ctx, session.UserID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrProfileNotFound):
			s.logger.Warn().Str("user_id", session.UserID).Msg("no profile for session user")
			return nil, domain.ErrProfileNotFound
		case errors.Is(err, domain.ErrUnknownRole):
			s.logger.Warn().Err(err).Str("user_id", session.UserID).Msg("profile has unrecognised role")
			return nil, err
		default:
			return nil, fmt.Errorf("resolve user %s: %w: %w", session.UserID, domain.ErrFetch, err)
		}
	}
	if !user.Active {
		s.logger.Warn().Str("user_id", session.UserID).Msg("profile is inactive")
		return nil, domain.ErrProfileNotFound
	}
	return user, nil
}

// HasPermission reports whether the user's role grants action on resource.
func (s *AccessService) HasPermission(user *domain.UserProfile, resource domain.Resource, action domain.Action) bool {
	return domain.HasPermission(user, resource, action)
}

// RequirePermission returns domain.ErrForbidden unless the user's matrix grants
// action on resource.
func (s *AccessService) RequirePermission(user *domain.UserProfile, resource domain.Resource, action domain.Action) error {
	if !domain.HasPermission(user, resource, action) {
		metrics.AccessDecisionsTotal.WithLabelValues(string(resource), string(action), "deny").Inc()
		s.logger.Debug().
			Str("user_id", profileID(user)).
			Str("resource", string(resource)).
			Str("action", string(action)).
			Msg("permission denied")
		return domain.ErrForbidden
	}
	metrics.AccessDecisionsTotal.WithLabelValues(string(resource), string(action), "allow").Inc()
	return nil
}

// RequireRole returns domain.ErrForbidden unless the user's role is exactly one
// of allowed.
func (s *AccessService) RequireRole(user *domain.UserProfile, allowed ...domain.RoleName) error {
	names := make([]string, 0, len(allowed))
	for _, r := range allowed {
		names = append(names, string(r))
	}
	label := strings.Join(names, ",")

	if !user.HasRole(allowed...) {
		metrics.AccessDecisionsTotal.WithLabelValues("role", label, "deny").Inc()
		s.logger.Debug().Str("user_id", profileID(user)).Str("allowed", label).Msg("role denied")
		return domain.ErrForbidden
	}
	metrics.AccessDecisionsTotal.WithLabelValues("role", label, "allow").Inc()
	return nil
}

// UpdateUserRole reassigns a user's role. Only admins may do this; the store
// is not touched when the check fails.
func (s *AccessService) UpdateUserRole(ctx context.Context, actor *domain.UserProfile, userID, roleID string) error {
	if err := s.RequireRole(actor, domain.RoleAdmin); err != nil {
		return err
	}
	if userID == "" || roleID == "" {
		return fmt.Errorf("update user role: %w", domain.ErrInvalidInput)
	}

	if err := s.profiles.UpdateRole(ctx, userID, roleID); err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return err
		}
		s.logger.Error().Err(err).Str("user_id", userID).Str("role_id", roleID).Msg("failed to update user role")
		return fmt.Errorf("update user role: %w: %w", domain.ErrUpdate, err)
	}

	s.logger.Info().Str("actor_id", actor.ID).Str("user_id", userID).Str("role_id", roleID).Msg("user role updated")
	return nil
}

func profileID(u *domain.UserProfile) string {
	if u == nil {
		return ""
	}
	return u.ID
}
