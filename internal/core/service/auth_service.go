package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/zafiro/crm/internal/api/metrics"
	"github.com/zafiro/crm/internal/core/domain"
	"github.com/zafiro/crm/internal/core/ports"
)

const defaultSessionTTL = 8 * time.Hour

// AuthService implements login, session validation and sign-out. A session
// token is a signed JWT whose jti names a session record in the session
// store; the token is only valid while that record exists.
type AuthService struct {
	creds      ports.CredentialRepository
	sessions   ports.SessionStore
	signingKey []byte
	sessionTTL time.Duration
	logger     zerolog.Logger
	now        func() time.Time
}

func NewAuthService(
	creds ports.CredentialRepository,
	sessions ports.SessionStore,
	signingKey string,
	sessionTTL time.Duration,
	logger zerolog.Logger,
) *AuthService {
	if sessionTTL <= 0 {
		sessionTTL = defaultSessionTTL
	}
	return &AuthService{
		creds:      creds,
		sessions:   sessions,
		signingKey: []byte(signingKey),
		sessionTTL: sessionTTL,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.Session, error) {
	if email == "" || password == "" {
		metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		return "", nil, domain.ErrInvalidCredentials
	}

	cred, err := s.creds.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
			return "", nil, domain.ErrInvalidCredentials
		}
		metrics.LoginsTotal.WithLabelValues(metrics.ResultError).Inc()
		return "", nil, fmt.Errorf("login: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)) != nil {
		metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		return "", nil, domain.ErrInvalidCredentials
	}

	now := s.now().UTC()
	session := &domain.Session{
		ID:        uuid.NewString(),
		UserID:    cred.UserID,
		ExpiresAt: now.Add(s.sessionTTL).Truncate(time.Second),
	}

	if err := s.sessions.Save(ctx, *session); err != nil {
		metrics.LoginsTotal.WithLabelValues(metrics.ResultError).Inc()
		return "", nil, fmt.Errorf("login: save session: %w", err)
	}

	token, err := s.generateToken(session, now)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(metrics.ResultError).Inc()
		return "", nil, fmt.Errorf("login: sign token: %w", err)
	}

	metrics.LoginsTotal.WithLabelValues(metrics.ResultOK).Inc()
	s.logger.Info().Str("user_id", cred.UserID).Str("session_id", session.ID).Msg("session created")
	return token, session, nil
}

// ValidateSession checks the token signature and expiry, then confirms the
// session is still live in the session store.
func (s *AuthService) ValidateSession(ctx context.Context, token string) (*domain.Session, error) {
	if token == "" {
		metrics.SessionValidationsTotal.WithLabelValues("missing").Inc()
		return nil, domain.ErrUnauthenticated
	}

	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.signingKey, nil
	}, jwt.WithExpirationRequired(), jwt.WithTimeFunc(s.now))
	if err != nil || !parsed.Valid || claims.ID == "" || claims.Subject == "" {
		metrics.SessionValidationsTotal.WithLabelValues("invalid").Inc()
		return nil, domain.ErrUnauthenticated
	}

	userID, err := s.sessions.UserID(ctx, claims.ID)
	if err != nil {
		if !errors.Is(err, domain.ErrUnauthenticated) {
			s.logger.Warn().Err(err).Str("session_id", claims.ID).Msg("session lookup failed")
		}
		metrics.SessionValidationsTotal.WithLabelValues("revoked").Inc()
		return nil, domain.ErrUnauthenticated
	}
	if userID != claims.Subject {
		metrics.SessionValidationsTotal.WithLabelValues("invalid").Inc()
		return nil, domain.ErrUnauthenticated
	}

	metrics.SessionValidationsTotal.WithLabelValues("valid").Inc()
	return &domain.Session{
		ID:        claims.ID,
		UserID:    claims.Subject,
		ExpiresAt: claims.ExpiresAt.Time.UTC(),
	}, nil
}

// SignOut destroys the session record so its token stops validating.
func (s *AuthService) SignOut(ctx context.Context, session *domain.Session) error {
	if session == nil {
		return nil
	}
	if err := s.sessions.Delete(ctx, session.ID); err != nil {
		return fmt.Errorf("sign out: %w", err)
	}
	s.logger.Info().Str("user_id", session.UserID).Str("session_id", session.ID).Msg("session destroyed")
	return nil
}

func (s *AuthService) generateToken(session *domain.Session, issuedAt time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		ID:        session.ID,
		Subject:   session.UserID,
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.signingKey)
}
