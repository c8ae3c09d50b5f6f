package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/zafiro/crm/internal/core/domain"
)

const clientColumns = `id, first_name, last_name, email, phone, birthdate::text,
	preferences, tags, notes, address, created_at, updated_at`

type ClientRepository struct {
	pool *pgxpool.Pool
}

func NewClientRepository(pool *pgxpool.Pool) *ClientRepository {
	return &ClientRepository{pool: pool}
}

func (r *ClientRepository) List(ctx context.Context) ([]domain.Client, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+clientColumns+`
		FROM clients
		ORDER BY last_name ASC
	`)
	if err != nil {
		return nil, err
	}
	return collectClients(rows)
}

func (r *ClientRepository) FindByID(ctx context.Context, id string) (*domain.Client, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+clientColumns+`
		FROM clients
		WHERE id = $1
	`, id)
	c, err := scanClient(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrClientNotFound
		}
		return nil, err
	}
	return c, nil
}

func (r *ClientRepository) Create(ctx context.Context, c domain.Client) (*domain.Client, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO clients (first_name, last_name, email, phone, birthdate,
			preferences, tags, notes, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5::text::date, $6, $7, $8, $9, $10, $11)
		RETURNING `+clientColumns,
		c.FirstName, c.LastName, c.Email, c.Phone, c.Birthdate,
		c.Preferences, c.Tags, c.Notes, c.Address, c.CreatedAt, c.UpdatedAt,
	)
	created, err := scanClient(row)
	if err != nil {
		return nil, translateWriteError(err)
	}
	return created, nil
}

func (r *ClientRepository) Update(ctx context.Context, id string, upd domain.UpdateClient, updatedAt time.Time) (*domain.Client, error) {
	query, args := buildClientUpdate(id, upd, updatedAt)
	updated, err := scanClient(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrClientNotFound
		}
		return nil, translateWriteError(err)
	}
	return updated, nil
}

func (r *ClientRepository) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM clients WHERE id = $1`, id)
	return err
}

func (r *ClientRepository) Search(ctx context.Context, query string) ([]domain.Client, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+clientColumns+`
		FROM clients
		WHERE first_name ILIKE $1 ESCAPE '\'
		   OR last_name  ILIKE $1 ESCAPE '\'
		   OR email      ILIKE $1 ESCAPE '\'
		ORDER BY last_name ASC
	`, containsPattern(query))
	if err != nil {
		return nil, err
	}
	return collectClients(rows)
}

// containsPattern turns query into an ILIKE pattern that matches it as a
// literal substring.
func containsPattern(query string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(query)
	return "%" + escaped + "%"
}

// buildClientUpdate renders an UPDATE touching updated_at plus every non-nil
// field of upd.
func buildClientUpdate(id string, upd domain.UpdateClient, updatedAt time.Time) (string, []any) {
	sets := []string{"updated_at = $1"}
	args := []any{updatedAt}

	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if upd.FirstName != nil {
		add("first_name", *upd.FirstName)
	}
	if upd.LastName != nil {
		add("last_name", *upd.LastName)
	}
	if upd.Email != nil {
		add("email", *upd.Email)
	}
	if upd.Phone != nil {
		add("phone", *upd.Phone)
	}
	if upd.Birthdate != nil {
		args = append(args, *upd.Birthdate)
		sets = append(sets, fmt.Sprintf("birthdate = $%d::text::date", len(args)))
	}
	if upd.Preferences != nil {
		add("preferences", upd.Preferences)
	}
	if upd.Tags != nil {
		add("tags", *upd.Tags)
	}
	if upd.Notes != nil {
		add("notes", *upd.Notes)
	}
	if upd.Address != nil {
		add("address", upd.Address)
	}

	args = append(args, id)
	query := fmt.Sprintf(
		"UPDATE clients SET %s WHERE id = $%d RETURNING %s",
		strings.Join(sets, ", "), len(args), clientColumns,
	)
	return query, args
}

func scanClient(row pgx.Row) (*domain.Client, error) {
	var c domain.Client
	if err := row.Scan(
		&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.Phone, &c.Birthdate,
		&c.Preferences, &c.Tags, &c.Notes, &c.Address, &c.CreatedAt, &c.UpdatedAt,
	); err != nil {
		return nil, err
	}
	c.CreatedAt = c.CreatedAt.UTC()
	c.UpdatedAt = c.UpdatedAt.UTC()
	return &c, nil
}

func collectClients(rows pgx.Rows) ([]domain.Client, error) {
	defer rows.Close()

	clients := []domain.Client{}
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		clients = append(clients, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return clients, nil
}

func translateWriteError(err error) error {
	if pgCode(err) == codeUniqueViolation {
		return fmt.Errorf("%w: %w", domain.ErrDuplicateClient, err)
	}
	return err
}
