package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/errgroup"

	"filetags/config"
	"filetags/internal/adapters/auth"
	"filetags/internal/adapters/files"
	httpdelivery "filetags/internal/delivery/http"
	"filetags/internal/domain"
	"filetags/internal/repository/postgres"
	"filetags/internal/services"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 15 * time.Second
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			logger := config.NewLogger()
			slog.SetDefault(logger)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			handler, cleanup, err := buildHandler(ctx, cfg, logger, files.NewRootedFs(cfg.FilesRoot), afero.NewOsFs())
			if err != nil {
				return err
			}
			defer cleanup()
			return serve(ctx, &http.Server{
				Addr:              ":" + cfg.Port,
				Handler:           handler,
				ReadHeaderTimeout: readHeaderTimeout,
			}, logger)
		},
	}
}

// serve runs srv until ctx is done, then shuts it down gracefully.
func serve(ctx context.Context, srv *http.Server, logger *slog.Logger) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// buildHandler wires the tag manager, its file source and the auth stack
// into the HTTP handler. root holds the tracked files; osFs is used to read
// the manifest, whose path is not confined to root.
func buildHandler(ctx context.Context, cfg *config.Config, logger *slog.Logger, root, osFs afero.Fs) (http.Handler, func(), error) {
	src, cleanup, err := openSource(cfg, root, osFs)
	if err != nil {
		return nil, nil, err
	}

	manager := services.NewTagManager(files.NewStore(root), logger)
	if err := services.Bootstrap(ctx, manager, src); err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to bootstrap tag manager: %w", err)
	}

	if cfg.AdminPasswordHash == "" {
		logger.Warn("ADMIN_PASSWORD_HASH is not set, login and mutating routes are unavailable")
	}
	authService := services.NewOperatorAuthService(
		cfg.AdminUsername,
		cfg.AdminPasswordHash,
		auth.NewBcryptHasher(bcrypt.DefaultCost),
		auth.NewJWTIssuer(cfg.JWTSecret),
		cfg.JWTExpiry,
	)

	handler := httpdelivery.NewHandler(httpdelivery.Deps{
		Logger:         logger,
		Manager:        manager,
		Auth:           authService,
		Verifier:       auth.NewJWTVerifier(cfg.JWTSecret),
		AllowedOrigins: cfg.CORSAllowedOrigins,
		RequestTimeout: cfg.RequestTimeout,
	})
	return handler, cleanup, nil
}

func openSource(cfg *config.Config, root, osFs afero.Fs) (domain.FileSource, func(), error) {
	switch cfg.FileSource {
	case config.SourceManifest:
		return files.NewManifestSource(osFs, cfg.ManifestPath), func() {}, nil
	case config.SourcePostgres:
		db, err := openDB(cfg.DBUrl)
		if err != nil {
			return nil, nil, err
		}
		return postgres.NewTrackedFileRepository(db, cfg.FilesRoot), func() { db.Close() }, nil
	default:
		return files.NewDirSource(root), func() {}, nil
	}
}

func openDB(url string) (*sql.DB, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}
