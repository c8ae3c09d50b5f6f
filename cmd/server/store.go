package main

import (
	"context"
	"fmt"

	"github.com/zafiro/crm/internal/core/ports"
	"github.com/zafiro/crm/internal/infrastructure/config"
	mongodb "github.com/zafiro/crm/internal/infrastructure/db/mongo"
	"github.com/zafiro/crm/internal/infrastructure/db/postgres"
)

// store bundles the repositories of the configured driver.
type store struct {
	clients     ports.ClientRepository
	profiles    ports.ProfileRepository
	credentials ports.CredentialRepository
	ping        func(ctx context.Context) error
	close       func()
}

func openStore(ctx context.Context, cfg config.StoreConfig) (*store, error) {
	switch cfg.Driver {
	case config.DriverMongo:
		client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.URL, Database: cfg.Database})
		if err != nil {
			return nil, err
		}
		if err := mongodb.EnsureIndexes(ctx, db); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, err
		}
		return &store{
			clients:     mongodb.NewClientRepository(db),
			profiles:    mongodb.NewProfileRepository(db),
			credentials: mongodb.NewCredentialRepository(db),
			ping:        func(ctx context.Context) error { return client.Ping(ctx, nil) },
			close:       func() { _ = client.Disconnect(context.Background()) },
		}, nil

	case config.DriverPostgres:
		pool, err := postgres.Connect(ctx, postgres.Config{URL: cfg.URL})
		if err != nil {
			return nil, err
		}
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		return &store{
			clients:     postgres.NewClientRepository(pool),
			profiles:    postgres.NewProfileRepository(pool),
			credentials: postgres.NewCredentialRepository(pool),
			ping:        pool.Ping,
			close:       pool.Close,
		}, nil

	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.Driver)
	}
}
