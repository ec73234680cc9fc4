package database

import (
	"context"
	"fmt"

	"github.com/Rana718/petseed/internal/config"
	"github.com/Rana718/petseed/internal/database/mysql"
	"github.com/Rana718/petseed/internal/database/postgres"
	"github.com/Rana718/petseed/internal/database/sqlite"
)

func NewAdapter(provider string) DatabaseAdapter {
	switch config.NormalizeProvider(provider) {
	case "postgresql":
		return postgres.New()
	case "mysql":
		return mysql.New()
	case "sqlite":
		return sqlite.New()
	default:
		return postgres.New()
	}
}

// Open builds the adapter for cfg, connects and pings it.
func Open(ctx context.Context, cfg *config.Config) (DatabaseAdapter, error) {
	dbURL, err := cfg.GetDatabaseURL()
	if err != nil {
		return nil, err
	}

	adapter := NewAdapter(cfg.Database.Provider)
	if err := adapter.Connect(ctx, dbURL); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := adapter.Ping(ctx); err != nil {
		adapter.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return adapter, nil
}
