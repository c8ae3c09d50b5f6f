package ports

import (
	"context"
	"time"

	"github.com/zafiro/crm/internal/core/domain"
)

// ClientRepository defines persistence operations for clients. Every method is
// a single round trip to the store.
type ClientRepository interface {
	// List returns every client ordered by last name ascending.
	List(ctx context.Context) ([]domain.Client, error)
	// FindByID returns domain.ErrClientNotFound when no row matches.
	FindByID(ctx context.Context, id string) (*domain.Client, error)
	// Create inserts c and returns the stored row with its assigned id.
	// Unique constraint violations are reported as domain.ErrDuplicateClient.
	Create(ctx context.Context, c domain.Client) (*domain.Client, error)
	// Update applies the non-nil fields of upd plus updatedAt and returns the
	// full row. Returns domain.ErrClientNotFound when id does not exist.
	Update(ctx context.Context, id string, upd domain.UpdateClient, updatedAt time.Time) (*domain.Client, error)
	// Delete removes the row. Deleting a missing id is not an error.
	Delete(ctx context.Context, id string) error
	// Search matches query case-insensitively as a literal substring of first
	// name, last name or email, ordered by last name ascending.
	Search(ctx context.Context, query string) ([]domain.Client, error)
}
