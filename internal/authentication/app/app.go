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

	httpapi "github.com/ltplabs/ecatalog/internal/authentication/http"
	"github.com/ltplabs/ecatalog/internal/authentication/service"
	"github.com/ltplabs/ecatalog/pkg/cryptox"
	"github.com/ltplabs/ecatalog/pkg/dbsdk"
	"github.com/ltplabs/ecatalog/pkg/jwtx"
	"github.com/ltplabs/ecatalog/pkg/slogx"
)

// BuildVersion is overridden at build time via -ldflags.
var BuildVersion = "v0.1.0"

type Application struct {
	cfg    Config
	logger *slog.Logger

	db     *dbsdk.Client
	signer *jwtx.HS256

	authService *service.AuthService

	server *http.Server
	router *httpapi.Router
}

func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg:    cfg,
		logger: slogx.New(cfg.Log),
	}

	signer, err := jwtx.NewHS256([]byte(cfg.JWTSecret), cfg.Issuer)
	if err != nil {
		return nil, fmt.Errorf("JWT_SECRET: %w", err)
	}
	app.signer = signer

	pepper, err := cryptox.LoadPepper(cfg.Pepper, cfg.PepperFile, false)
	if err != nil {
		return nil, err
	}

	app.db = dbsdk.New(cfg.DatabaseURL, cfg.HTTPTimeout)
	app.authService = &service.AuthService{
		Directory: app.db,
		Hasher:    cryptox.NewHasher(pepper),
		Signer:    signer,
		Issuer:    cfg.Issuer,
		AccessTTL: cfg.AccessTokenTTL,
	}

	app.initHTTP()
	return app, nil
}

// Handler exposes the router for in-process tests.
func (app *Application) Handler() http.Handler { return app.router }

func (app *Application) Run() error {
	app.logger.Info("authentication service starting",
		"port", app.cfg.Port,
		"database_url", app.cfg.DatabaseURL,
		"access_token_ttl", app.cfg.AccessTokenTTL.String(),
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
	app.logger.Info("shutting down authentication service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		return app.server.Close()
	}

	app.logger.Info("authentication service stopped")
	return nil
}

func (app *Application) initHTTP() {
	router := httpapi.NewRouter(app.authService, app.signer, app.db, app.logger, BuildVersion)
	router.ApplyRoutes()
	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
