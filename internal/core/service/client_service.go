package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/zafiro/crm/internal/api/metrics"
	"github.com/zafiro/crm/internal/core/domain"
	"github.com/zafiro/crm/internal/core/ports"
)

// ClientService is the data access layer for clients. Each method performs a
// single store call; failures are logged and returned, never retried.
type ClientService struct {
	repo   ports.ClientRepository
	logger zerolog.Logger
	now    func() time.Time
}

func NewClientService(repo ports.ClientRepository, logger zerolog.Logger) *ClientService {
	return &ClientService{repo: repo, logger: logger, now: time.Now}
}

// timestamp returns the current time truncated to what every store keeps.
func (s *ClientService) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Millisecond)
}

// ListClients returns all clients ordered by last name.
func (s *ClientService) ListClients(ctx context.Context) ([]domain.Client, error) {
	done := observe("list")
	clients, err := s.repo.List(ctx)
	if err != nil {
		done(metrics.ResultError)
		s.logger.Error().Err(err).Msg("failed to list clients")
		return nil, fmt.Errorf("list clients: %w: %w", domain.ErrFetch, err)
	}
	done(metrics.ResultOK)
	return clients, nil
}

// GetClient returns the client with the given id, or nil when none exists.
func (s *ClientService) GetClient(ctx context.Context, id string) (*domain.Client, error) {
	done := observe("get")
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrClientNotFound) {
			done("not_found")
			return nil, nil
		}
		done(metrics.ResultError)
		s.logger.Error().Err(err).Str("client_id", id).Msg("failed to fetch client")
		return nil, fmt.Errorf("get client %s: %w: %w", id, domain.ErrFetch, err)
	}
	done(metrics.ResultOK)
	return c, nil
}

// CreateClient stamps both timestamps with the same instant and inserts the
// client. Uniqueness is left to the store.
func (s *ClientService) CreateClient(ctx context.Context, data domain.NewClient) (*domain.Client, error) {
	now := s.timestamp()
	c := domain.Client{
		FirstName:   data.FirstName,
		LastName:    data.LastName,
		Email:       data.Email,
		Phone:       data.Phone,
		Birthdate:   data.Birthdate,
		Preferences: data.Preferences,
		Tags:        data.Tags,
		Notes:       data.Notes,
		Address:     data.Address,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	done := observe("create")
	created, err := s.repo.Create(ctx, c)
	if err != nil {
		done(metrics.ResultError)
		s.logger.Error().Err(err).Str("email", data.Email).Msg("failed to create client")
		return nil, fmt.Errorf("create client: %w: %w", domain.ErrCreate, err)
	}
	done(metrics.ResultOK)

	s.logger.Info().Str("client_id", created.ID).Msg("client created")
	return created, nil
}

// UpdateClient refreshes updated_at and applies the partial update.
func (s *ClientService) UpdateClient(ctx context.Context, id string, partial domain.UpdateClient) (*domain.Client, error) {
	done := observe("update")
	updated, err := s.repo.Update(ctx, id, partial, s.timestamp())
	if err != nil {
		done(metrics.ResultError)
		s.logger.Error().Err(err).Str("client_id", id).Msg("failed to update client")
		return nil, fmt.Errorf("update client %s: %w: %w", id, domain.ErrUpdate, err)
	}
	done(metrics.ResultOK)
	return updated, nil
}

// DeleteClient removes the client. Missing ids are not reported.
func (s *ClientService) DeleteClient(ctx context.Context, id string) error {
	done := observe("delete")
	if err := s.repo.Delete(ctx, id); err != nil {
		done(metrics.ResultError)
		s.logger.Error().Err(err).Str("client_id", id).Msg("failed to delete client")
		return fmt.Errorf("delete client %s: %w: %w", id, domain.ErrDelete, err)
	}
	done(metrics.ResultOK)

	s.logger.Info().Str("client_id", id).Msg("client deleted")
	return nil
}

// SearchClients matches query against first name, last name and email. An
// empty query behaves like ListClients.
func (s *ClientService) SearchClients(ctx context.Context, query string) ([]domain.Client, error) {
	if query == "" {
		return s.ListClients(ctx)
	}

	done := observe("search")
	clients, err := s.repo.Search(ctx, query)
	if err != nil {
		done(metrics.ResultError)
		s.logger.Error().Err(err).Str("query", query).Msg("failed to search clients")
		return nil, fmt.Errorf("search clients: %w: %w", domain.ErrFetch, err)
	}
	done(metrics.ResultOK)
	return clients, nil
}

// observe starts timing an operation and returns the func that records it.
func observe(operation string) func(result string) {
	start := time.Now()
	return func(result string) {
		metrics.ClientOperationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
		metrics.ClientOperationsTotal.WithLabelValues(operation, result).Inc()
	}
}
