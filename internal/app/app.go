package app

import (
	"context"
	"fmt"
	stdhttp "net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/sobachat/sobachat-server/internal/config"
	"github.com/sobachat/sobachat-server/internal/core"
	"github.com/sobachat/sobachat-server/internal/session"
	"github.com/sobachat/sobachat-server/internal/store"
	"github.com/sobachat/sobachat-server/internal/store/sqlite"
	transporthttp "github.com/sobachat/sobachat-server/internal/transport/http"
	"github.com/sobachat/sobachat-server/internal/uploads"
)

// App wires together core and transport layers.
type App struct {
	server          *stdhttp.Server
	shutdownTimeout time.Duration
	hub             *core.Hub
	store           store.Store
	log             *zerolog.Logger
}

// New constructs the application with provided configuration.
func New(cfg config.Config, logger *zerolog.Logger) (*App, error) {
	st, err := sqlite.New(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("init store: %w", err)
	}
	logger.Info().Str("db_path", cfg.DatabasePath).Msg("uploads ledger initialized")

	ups, err := uploads.NewService(cfg.UploadDir, cfg.UploadMaxBytes, st, logger)
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("init uploads: %w", err)
	}

	sessions := session.NewManager(cfg.SessionSecret, cfg.SessionTTL)
	hub := core.NewHub(cfg.Rooms, logger)
	server := transporthttp.NewServer(hub, sessions, ups, cfg, logger)

	return &App{
		server:          server,
		shutdownTimeout: cfg.ShutdownTimeout,
		hub:             hub,
		store:           st,
		log:             logger,
	}, nil
}

// Run starts the HTTP server and blocks until context cancellation or fatal error.
func (a *App) Run(ctx context.Context) error {
	serverErr := make(chan error, 1)

	go a.hub.Run(ctx)

	go func() {
		if err := a.server.ListenAndServe(); err != nil && err != stdhttp.ErrServerClosed {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()

	select {
	case err := <-serverErr:
		a.cleanup()
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
		defer cancel()

		a.log.Info().Msg("shutting down http server")
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			a.cleanup()
			return err
		}

		a.cleanup()
		return <-serverErr
	}
}

// cleanup closes the store and other resources.
func (a *App) cleanup() {
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.log.Warn().Err(err).Msg("failed to close store")
		} else {
			a.log.Info().Msg("store closed")
		}
	}
}
