package ports

import (
	"context"

	"github.com/zafiro/crm/internal/core/domain"
)

// ClientService is the data access contract used by the page controllers.
type ClientService interface {
	ListClients(ctx context.Context) ([]domain.Client, error)
	// GetClient returns nil, nil when the client does not exist.
	GetClient(ctx context.Context, id string) (*domain.Client, error)
	CreateClient(ctx context.Context, data domain.NewClient) (*domain.Client, error)
	UpdateClient(ctx context.Context, id string, partial domain.UpdateClient) (*domain.Client, error)
	DeleteClient(ctx context.Context, id string) error
	SearchClients(ctx context.Context, query string) ([]domain.Client, error)
}
