// Command server runs the CRM HTTP API.
//
// @title        Zafiro CRM API
// @version      1.0
// @description  Client records and employee access control for the jewelry CRM.
// @BasePath     /
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	_ "github.com/zafiro/crm/docs"
	"github.com/zafiro/crm/internal/api"
	"github.com/zafiro/crm/internal/api/handler"
	"github.com/zafiro/crm/internal/core/service"
	"github.com/zafiro/crm/internal/infrastructure/config"
	redisdb "github.com/zafiro/crm/internal/infrastructure/db/redis"
	"github.com/zafiro/crm/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "crm",
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	store, err := openStore(ctx, cfg.Store)
	if err != nil {
		return err
	}
	defer store.close()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return err
	}
	defer func() { _ = rdb.Close() }()

	authService := service.NewAuthService(
		store.credentials,
		redisdb.NewSessionStore(rdb),
		cfg.Store.Key,
		cfg.Session.TTL,
		logger.Component("auth"),
	)
	accessService := service.NewAccessService(store.profiles, logger.Component("access"))
	clientService := service.NewClientService(store.clients, logger.Component("clients"))

	e := api.NewRouter(api.Deps{
		Logger:  log,
		Auth:    authService,
		Access:  accessService,
		Clients: clientService,
		Checks: map[string]handler.Check{
			cfg.Store.Driver: store.ping,
			"redis":          func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
		},
		Cookie: handler.CookieConfig{
			Name:   cfg.Session.CookieName,
			Secure: cfg.Session.CookieSecure,
		},
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("store", cfg.Store.Driver).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
