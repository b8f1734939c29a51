package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"roster-audit/core/database"
	"roster-audit/core/loader"
	"roster-audit/core/logger"
	"roster-audit/core/middleware/auth"
	"roster-audit/core/middleware/rayid"
	"roster-audit/core/storage"
	"roster-audit/feature/audit"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "roster-audit/docs/swagger"
)

// @title Roster Audit API
// @version 1.0
// @description Reconciles legacy and replacement employee roster snapshots.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the roster audit server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// 1. Load Configuration and Logger
		cfg, logg, err := bootstrap()
		if err != nil {
			return err
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 2. Connect to Database (Optional, serves db:// sources)
		var db *gorm.DB
		if conn, err := database.Connect(cfg.Database); err != nil {
			logg.Warn("Optional database connection failed, db:// sources disabled", zap.Error(err))
		} else {
			db = conn
			logg.Info("Connected to HR database", zap.String("driver", cfg.Database.Driver))
		}

		// 3. Initialize Storage (Optional, serves storage:// sources and report uploads)
		var store storage.Client
		if client, err := storage.NewClient(cfg.Storage); err != nil {
			logg.Warn("Failed to create storage client, storage:// sources disabled", zap.Error(err))
		} else {
			ctx, cancel := context.WithTimeout(cmd.Context(), time.Duration(max(cfg.Storage.TimeoutSeconds, 1))*time.Second)
			err := storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region, logg)
			cancel()
			if err != nil {
				logg.Warn("Snapshot bucket unavailable, storage:// sources disabled", zap.Error(err))
			} else {
				store = client
			}
		}

		svc, err := audit.NewService(store, cfg.Storage, db, cfg.Audit, logg)
		if err != nil {
			return fmt.Errorf("invalid audit configuration: %w", err)
		}

		// 4. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
			BodyLimit:             cfg.Server.BodyLimit(),
		})

		// Middleware Registration
		// RayID must be first to trace everything
		app.Use(rayid.New())
		app.Use(logger.Middleware(logg))

		// Swagger Documentation (Public)
		app.Get("/swagger/*", swagger.HandlerDefault)
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey, Skip: []string{"/swagger"}}))

		// 5. Load Features
		mgr := loader.NewManager()
		mgr.Register(audit.NewFeature(svc, logg))

		loaded, err := mgr.LoadAll(app)
		if err != nil {
			return fmt.Errorf("failed to load features: %w", err)
		}
		logg.Info("Features loaded", zap.Strings("features", loaded))

		// 6. Start Server
		errc := make(chan error, 1)
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			errc <- app.Listen(":" + cfg.Server.Port)
		}()

		// 7. Graceful Shutdown
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		select {
		case err := <-errc:
			return fmt.Errorf("server failed: %w", err)
		case <-sig:
		}

		logg.Info("Shutting down server...")
		timeout := time.Duration(cfg.Server.ShutdownTimeoutSeconds) * time.Second
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		return app.ShutdownWithTimeout(timeout)
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
