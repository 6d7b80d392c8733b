// Command devconnector runs the DevConnector API and its maintenance tasks.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"devconnector/internal/config"
	"devconnector/internal/database"
	"devconnector/internal/middleware"
	"devconnector/internal/observability"
	"devconnector/internal/seed"
	"devconnector/internal/server"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// @title DevConnector API
// @version 1.0
// @description Developer profiles, posts, comments and likes.

// @contact.name API Support
// @contact.email support@devconnector.dev

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:5000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

const shutdownTimeout = 10 * time.Second

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "devconnector",
		Short:         "DevConnector API server",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(serveCmd(), migrateCmd(), seedCmd())
	return cmd
}

// loadConfig loads configuration and installs the logger every
// subcommand shares.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	observability.InitLogging(cfg.Env, middleware.NewContextHandler)
	return cfg, nil
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}
}

func serve(ctx context.Context, cfg *config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}

	shutdownTracing, err := observability.InitTracing(observability.TracingConfig{
		ServiceName:  observability.ServiceName,
		Environment:  cfg.Env,
		Enabled:      cfg.TracingEnabled,
		Exporter:     cfg.TracingExporter,
		OTLPEndpoint: cfg.OTLPEndpoint,
		SamplerRatio: cfg.TracingSampleRatio,
	})
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}

	srv, err := server.NewServer(ctx, cfg)
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server stopped: %w", err)
		}
		return nil
	case sig := <-sigChan:
		slog.Info("Shutting down server...", slog.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err = srv.Shutdown(shutdownCtx)
	if tracingErr := shutdownTracing(shutdownCtx); tracingErr != nil {
		err = errors.Join(err, fmt.Errorf("shutdown tracing: %w", tracingErr))
	}
	return err
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			db, err := database.Connect(cfg)
			if err != nil {
				return err
			}
			defer closeDB(db)

			if err := database.Migrate(db); err != nil {
				return err
			}
			slog.Info("Schema is up to date")
			return nil
		},
	}
}

func seedCmd() *cobra.Command {
	var (
		preset     string
		presetFile string
		clean      bool
		skipBcrypt bool
		dryRun     bool
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Populate the database with generated users, profiles and posts",
		RunE: func(_ *cobra.Command, _ []string) error {
			presets := seed.DefaultPresets()
			if presetFile != "" {
				loaded, err := seed.LoadPresetsFile(presetFile)
				if err != nil {
					return fmt.Errorf("load presets: %w", err)
				}
				presets = loaded
			}
			p, ok := presets[preset]
			if !ok {
				return fmt.Errorf("unknown preset %q (available: %v)", preset, seed.PresetNames(presets))
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cfg.IsProduction() {
				return errors.New("refusing to seed a production database")
			}

			var db *gorm.DB
			if !dryRun {
				db, err = database.Connect(cfg)
				if err != nil {
					return err
				}
				defer closeDB(db)
			}

			s := seed.NewSeeder(db, seed.Options{SkipBcrypt: skipBcrypt, DryRun: dryRun})
			if clean {
				if err := s.ClearAll(); err != nil {
					return fmt.Errorf("cleanup failed: %w", err)
				}
			}

			sum, err := s.Apply(p)
			if err != nil {
				return fmt.Errorf("seeding failed: %w", err)
			}
			slog.Info("Seeding complete",
				slog.String("preset", preset),
				slog.Int("users", sum.Users),
				slog.Int("profiles", sum.Profiles),
				slog.Int("posts", sum.Posts),
				slog.String("password", seed.DefaultPassword),
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&preset, "preset", "small", "Preset to apply")
	cmd.Flags().StringVar(&presetFile, "file", "", "YAML file with custom presets")
	cmd.Flags().BoolVar(&clean, "clean", false, "Delete existing data first")
	cmd.Flags().BoolVar(&skipBcrypt, "fast", true, "Hash the shared password once")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Generate without writing to the database")
	return cmd
}

func closeDB(db *gorm.DB) {
	if err := database.Close(db); err != nil {
		slog.Error("error closing database", slog.String("error", err.Error()))
	}
}
