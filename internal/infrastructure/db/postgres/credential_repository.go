package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/zafiro/crm/internal/core/domain"
)

type CredentialRepository struct {
	pool *pgxpool.Pool
}

func NewCredentialRepository(pool *pgxpool.Pool) *CredentialRepository {
	return &CredentialRepository{pool: pool}
}

func (r *CredentialRepository) FindByEmail(ctx context.Context, email string) (*domain.Credential, error) {
	var c domain.Credential
	row := r.pool.QueryRow(ctx, `
		SELECT user_id, email, password_hash
		FROM auth_users
		WHERE lower(email) = lower($1)
	`, email)
	if err := row.Scan(&c.UserID, &c.Email, &c.PasswordHash); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	return &c, nil
}
