package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/owc/owc/internal/config"
	"github.com/owc/owc/internal/domain/attachments"
	"github.com/owc/owc/internal/domain/claimform"
	"github.com/owc/owc/internal/domain/claims"
	"github.com/owc/owc/internal/domain/letters"
	"github.com/owc/owc/internal/domain/lookup"
	"github.com/owc/owc/internal/domain/review"
	"github.com/owc/owc/internal/platform/auth"
	"github.com/owc/owc/internal/platform/blobstore"
	"github.com/owc/owc/internal/platform/db"
	"github.com/owc/owc/internal/platform/middleware"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "claims-server",
		Short: "Workers' compensation claims API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the claims API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir, cfg.DBSchema)
			fmt.Printf("Running migrations on schema: %s\n", cfg.DBSchema)

			count, err := migrator.Up(ctx)
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			fmt.Printf("Applied %d migration(s) successfully.\n", count)
			return nil
		},
	}
	upCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(upCmd)

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir, cfg.DBSchema)
			statuses, err := migrator.Status(ctx)
			if err != nil {
				return fmt.Errorf("failed to get migration status: %w", err)
			}

			fmt.Printf("Migration status for schema: %s\n", cfg.DBSchema)
			fmt.Printf("%-10s %-40s %-10s %s\n", "VERSION", "NAME", "STATUS", "APPLIED AT")
			fmt.Println("---------- ---------------------------------------- ---------- --------------------")
			for _, s := range statuses {
				status := "pending"
				appliedAt := ""
				if s.Applied {
					status = "applied"
					if s.AppliedAt != nil {
						appliedAt = s.AppliedAt.Format("2006-01-02 15:04:05")
					}
				}
				fmt.Printf("%-10d %-40s %-10s %s\n", s.Version, s.Name, status, appliedAt)
			}
			return nil
		},
	}
	statusCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(statusCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Rollback last migration (not supported)",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("WARNING: migrate down is destructive and not supported by the built-in runner.")
			fmt.Println("Restore the schema from a backup instead.")
			return nil
		},
	})

	return cmd
}

func runServer() error {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid config")
	}

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	logger.Info().Msg("connected to database")

	// Object storage backend
	var store blobstore.ObjectStore
	switch cfg.StorageBackend {
	case "s3":
		s3store, err := blobstore.NewS3Store(ctx, cfg.StorageBucket, cfg.StorageRegion,
			cfg.StoragePublic, time.Duration(cfg.SignedURLTTL)*time.Second)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to initialize S3 storage")
		}
		store = s3store
		logger.Info().Str("bucket", cfg.StorageBucket).Msg("using S3 object storage")
	default:
		store = blobstore.NewMemoryStore()
		logger.Warn().Msg("using in-memory object storage; uploads do not survive restarts")
	}

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID", auth.RolesHeader},
	}))
	e.Use(auth.Middleware(cfg.IsDev()))

	e.GET("/health", db.HealthHandler(pool))

	api := e.Group("/api")

	// -- Domain wiring --

	claimsRepo := claims.NewRepoPG(pool)
	claimsSvc := claims.NewService(claimsRepo)
	claims.NewHandler(claimsSvc).RegisterRoutes(api)

	reviewRepo := review.NewRepoPG(pool)
	reviewSvc := review.NewService(reviewRepo, logger)
	review.NewHandler(reviewSvc).RegisterRoutes(api)

	attachRepo := attachments.NewRepoPG(pool)
	attachSvc := attachments.NewService(store, attachRepo, logger)
	attachments.NewHandler(attachSvc).RegisterRoutes(api)

	lookupRepo := lookup.NewRepoPG(pool)
	lookupSvc := lookup.NewService(lookupRepo, logger)
	lookup.NewHandler(lookupSvc).RegisterRoutes(api)

	formRepo := claimform.NewRepoPG(pool)
	formSvc := claimform.NewService(formRepo, claimsSvc, attachSvc, lookupSvc, logger)
	claimform.NewHandler(formSvc).RegisterRoutes(api)

	letterSvc := letters.NewService(claimsSvc, reviewSvc, logger)
	letters.NewHandler(letterSvc).RegisterRoutes(api)

	// Reference dictionaries are independent reads; warm them without
	// blocking startup.
	go func() {
		if err := lookupSvc.Preload(context.Background()); err != nil {
			logger.Warn().Err(err).Msg("lookup preload failed; will retry on first request")
		}
	}()

	// Start server with graceful shutdown
	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("port", cfg.Port).Msg("claims server listening")
		errCh <- e.Start(":" + cfg.Port)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info().Msg("server stopped")
	return nil
}
