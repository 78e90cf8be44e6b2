package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/riandyrn/otelchi"

	"github.com/neomorfeo/bookmart/internal/adapter/assets"
	"github.com/neomorfeo/bookmart/internal/adapter/auth"
	"github.com/neomorfeo/bookmart/internal/adapter/fsm"
	otelAdapter "github.com/neomorfeo/bookmart/internal/adapter/otel"
	riverAdapter "github.com/neomorfeo/bookmart/internal/adapter/river"
	"github.com/neomorfeo/bookmart/internal/adapter/sqlite"
	"github.com/neomorfeo/bookmart/internal/app"
	"github.com/neomorfeo/bookmart/internal/config"
	"github.com/neomorfeo/bookmart/internal/domain"

	handler "github.com/neomorfeo/bookmart/internal/adapter/http"
)

const version = "0.1.0"

func main() {
	if err := run(); err != nil {
		slog.Error("bookmart stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Observability ---
	providers, err := otelAdapter.Setup(ctx, cfg.OTel)
	if err != nil {
		return fmt.Errorf("otel: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := providers.Shutdown(shutdownCtx); err != nil {
			slog.Error("otel shutdown", "error", err)
		}
	}()

	// --- Adapters (out) ---
	db, err := otelAdapter.OpenDB(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer db.Close()

	store, err := sqlite.NewFromDB(db)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}

	riverClient, err := riverAdapter.Setup(ctx, db)
	if err != nil {
		return fmt.Errorf("river: %w", err)
	}
	// Stop drains jobs on shutdown, so the client outlives the signal context.
	if err := riverClient.Start(context.WithoutCancel(ctx)); err != nil {
		return fmt.Errorf("starting river: %w", err)
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := riverClient.Stop(stopCtx); err != nil {
			slog.Error("river shutdown", "error", err)
		}
	}()

	publisher, err := otelAdapter.NewTracingPublisher(riverAdapter.NewPublisher(riverClient))
	if err != nil {
		return fmt.Errorf("event publisher: %w", err)
	}

	images, err := newAssetStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("asset store: %w", err)
	}

	tokens := auth.NewTokenService(cfg.SessionSecret, cfg.SessionTTL)

	// --- Application ---
	books := otelAdapter.NewTracingBookRepository(store)
	deps := handler.Deps{
		Auth:    app.NewAuthService(store, auth.NewHasher(0), tokens),
		Catalog: app.NewCatalogService(books, images),
		Orders: app.NewOrderService(
			otelAdapter.NewTracingOrderRepository(store), books, publisher, fsm.New(),
		),
		Identities:    tokens,
		SecureCookies: cfg.SecureCookies,
	}

	// --- Adapters (in) ---
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           newRouter(cfg, deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("bookmart listening", "addr", srv.Addr, "docs", "http://localhost:"+cfg.Port+"/docs")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server: %w", err)
		}
	case <-ctx.Done():
	}
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	slog.Info("stopped")
	return nil
}

// newRouter builds the chi router with middleware, the API and, for the
// filesystem backend, the static asset route.
func newRouter(cfg config.Config, deps handler.Deps) http.Handler {
	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(otelchi.Middleware(cfg.OTel.ServiceName, otelchi.WithChiRoutes(router)))

	api := humachi.New(router, handler.APIConfig("bookmart", version))
	handler.Register(api, deps)

	if cfg.AssetBackend == config.AssetBackendFS && strings.HasPrefix(cfg.AssetBaseURL, "/") {
		prefix := strings.TrimRight(cfg.AssetBaseURL, "/")
		router.Handle(prefix+"/*", http.StripPrefix(prefix+"/", http.FileServer(http.Dir(cfg.AssetDir))))
	}

	return router
}

func newAssetStore(ctx context.Context, cfg config.Config) (domain.AssetStore, error) {
	if cfg.AssetBackend == config.AssetBackendS3 {
		client, err := assets.NewS3Client(ctx)
		if err != nil {
			return nil, err
		}
		return assets.NewS3Store(client, cfg.AssetBucket, cfg.AssetBaseURL), nil
	}
	store, err := assets.NewFSStore(cfg.AssetDir, cfg.AssetBaseURL)
	if err != nil {
		return nil, err
	}
	return store, nil
}
