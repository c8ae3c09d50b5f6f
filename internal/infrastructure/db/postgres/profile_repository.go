package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/zafiro/crm/internal/core/domain"
)

type ProfileRepository struct {
	pool *pgxpool.Pool
}

func NewProfileRepository(pool *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{pool: pool}
}

// FindWithRole loads a profile joined to its role. A profile without a role
// comes back with a nil Role, which denies every permission.
func (r *ProfileRepository) FindWithRole(ctx context.Context, userID string) (*domain.UserProfile, error) {
	var (
		p         domain.UserProfile
		roleID    *string
		roleName  *string
		rolePerms []byte
	)
	row := r.pool.QueryRow(ctx, `
		SELECT p.id, p.first_name, p.last_name, p.email, p.phone, p.avatar_url,
		       COALESCE(p.role_id, ''), p.active, r.id, r.name, r.permissions
		FROM user_profiles p
		LEFT JOIN employee_roles r ON r.id = p.role_id
		WHERE p.id = $1
	`, userID)
	if err := row.Scan(
		&p.ID, &p.FirstName, &p.LastName, &p.Email, &p.Phone, &p.AvatarURL,
		&p.RoleID, &p.Active, &roleID, &roleName, &rolePerms,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}

	if roleID == nil {
		return &p, nil
	}

	role, err := decodeRole(*roleID, *roleName, rolePerms)
	if err != nil {
		return nil, err
	}
	p.Role = role
	return &p, nil
}

func (r *ProfileRepository) UpdateRole(ctx context.Context, userID, roleID string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE user_profiles
		SET role_id = $2, updated_at = now()
		WHERE id = $1
	`, userID, roleID)
	if err != nil {
		if pgCode(err) == codeForeignKeyViolation {
			return fmt.Errorf("role %s: %w", roleID, domain.ErrInvalidInput)
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}

// decodeRole validates the stored role name against the known roles and
// decodes the permission matrix.
func decodeRole(id, name string, permissions []byte) (*domain.Role, error) {
	roleName, err := domain.ParseRoleName(name)
	if err != nil {
		return nil, fmt.Errorf("role %q: %w", name, err)
	}

	var matrix domain.PermissionMatrix
	if len(permissions) > 0 {
		if err := json.Unmarshal(permissions, &matrix); err != nil {
			return nil, fmt.Errorf("role %q permissions: %w", name, err)
		}
	}
	return &domain.Role{ID: id, Name: roleName, Permissions: matrix}, nil
}
