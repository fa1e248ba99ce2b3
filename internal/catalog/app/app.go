package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/ltplabs/ecatalog/internal/catalog/http"
	"github.com/ltplabs/ecatalog/pkg/cryptox"
	"github.com/ltplabs/ecatalog/pkg/dbsdk"
	"github.com/ltplabs/ecatalog/pkg/jwtx"
	"github.com/ltplabs/ecatalog/pkg/slogx"
)

// BuildVersion is overridden at build time via -ldflags.
var BuildVersion = "v0.1.0"

// Application wires the catalog gateway.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db       *dbsdk.Client
	auth     *dbsdk.Client
	verifier *jwtx.HS256
	hasher   *cryptox.Hasher

	server *http.Server
	router *httpapi.Router
}

func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg:    cfg,
		logger: slogx.New(cfg.Log),
	}

	verifier, err := jwtx.NewHS256([]byte(cfg.JWTSecret), cfg.Issuer)
	if err != nil {
		return nil, fmt.Errorf("JWT_SECRET: %w", err)
	}
	app.verifier = verifier

	pepper, err := cryptox.LoadPepper(cfg.Pepper, cfg.PepperFile, false)
	if err != nil {
		return nil, err
	}
	app.hasher = cryptox.NewHasher(pepper)

	app.db = dbsdk.New(cfg.DatabaseURL, cfg.HTTPTimeout)
	app.auth = dbsdk.New(cfg.AuthURL, cfg.HTTPTimeout)
	app.auth.Service = "authentication"
	app.auth.ForwardAuthorization = true

	app.initHTTP()
	return app, nil
}

// Handler exposes the router for in-process tests.
func (app *Application) Handler() http.Handler { return app.router }

// Run starts the gateway and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.logger.Info("catalog service starting",
		"port", app.cfg.Port,
		"database_url", app.cfg.DatabaseURL,
		"auth_url", app.cfg.AuthURL,
	)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
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

func (app *Application) Shutdown() error {
	app.logger.Info("shutting down catalog service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		return app.server.Close()
	}

	app.logger.Info("catalog service stopped")
	return nil
}

func (app *Application) initHTTP() {
	router := httpapi.NewRouter(app.db, app.auth, app.verifier, app.hasher, app.logger, BuildVersion)
	router.ApplyRoutes()
	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
