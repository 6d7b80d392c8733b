// Package bootstrap connects the runtime dependencies shared by the CLI
// commands.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"devconnector/internal/config"
	"devconnector/internal/database"
	"devconnector/internal/revocation"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	// RequireRedis fails startup when REDIS_URL is set but unreachable.
	RequireRedis bool
}

// InitRuntime connects to the database and, when configured, Redis. An
// unreachable Redis yields a nil client unless opts.RequireRedis is set.
func InitRuntime(ctx context.Context, cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	r, err := connectRedis(ctx, cfg.RedisURL)
	if err != nil {
		if opts.RequireRedis {
			_ = database.Close(db)
			return nil, nil, err
		}
		slog.WarnContext(ctx, "Redis unavailable, token revocation disabled", slog.String("error", err.Error()))
	}

	return db, r, nil
}

func connectRedis(ctx context.Context, url string) (*redis.Client, error) {
	if url == "" {
		return nil, nil
	}
	client, err := revocation.Connect(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}
	return client, nil
}
