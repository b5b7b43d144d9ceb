package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dukaworks/console/internal/console/authz"
	httpapi "github.com/dukaworks/console/internal/console/http"
	"github.com/dukaworks/console/internal/console/session"
	"github.com/dukaworks/console/internal/console/store"
	"github.com/dukaworks/console/internal/console/store/drivers/sqlite"
	"github.com/dukaworks/console/pkg/apiclient"
	"github.com/dukaworks/console/pkg/mockdata"
	"github.com/dukaworks/console/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the console gateway with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db      store.Store
	api     *apiclient.Client
	manager *session.Manager
	gate    *authz.Gate

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "duka-console",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	app.initSession()
	app.initHTTP()

	return app, nil
}

// Run rehydrates the session, starts the server, and blocks until
// shutdown is requested.
func (app *Application) Run() error {
	// Rehydrate before accepting traffic; guarded endpoints answer 503
	// until this completes.
	if err := app.manager.Load(context.Background()); err != nil {
		return fmt.Errorf("failed to restore session: %w", err)
	}

	app.logger.Info("console starting",
		"port", app.cfg.Port, "version", BuildVersion, "backend", app.cfg.APIBaseURL)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a shutdown signal or server error
	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down console...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	// Shutdown the HTTP server
	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	// Let an in-flight permission refresh finish persisting.
	app.manager.WaitRefresh()

	// Close database connection
	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("console stopped")
	return nil
}

// initDatabase initializes the session database and applies migrations
func (app *Application) initDatabase() error {
	host := fmt.Sprintf("file:%s?_busy_timeout=5000", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(host)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

// initSession wires the API client, session manager and gate together.
func (app *Application) initSession() {
	app.api = apiclient.NewClient(app.cfg.APIBaseURL)
	if app.cfg.APITimeout > 0 {
		app.api.HTTPClient.Timeout = app.cfg.APITimeout
	}
	if app.cfg.OfflineFallback {
		app.api.Fallback = mockdata.NewProvider()
	}

	app.manager = session.NewManager(app.logger, app.db, app.api)

	// Every 401 from any backend endpoint lands here; the session is
	// cleared in one place instead of per screen.
	app.api.OnUnauthorized = func() {
		app.manager.Invalidate(context.Background())
	}

	app.gate = authz.NewGate(app.manager)
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		BuildVersion,
		app.db,
		app.manager,
		app.gate,
		app.api,
		app.logger,
	)
	router.ApplyRoutes()

	app.router = router

	// Initialize HTTP server
	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
