package factory

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"

	"github.com/dayminder/dayminder/internal/config"
	storepkg "github.com/dayminder/dayminder/internal/store"
	"github.com/dayminder/dayminder/internal/store/memory"
	storepg "github.com/dayminder/dayminder/internal/store/postgres"
	storesqlite "github.com/dayminder/dayminder/internal/store/sqlite"
)

// NewStore returns the store.Store selected by cfg.DBDriver.
func NewStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (storepkg.Store, error) {
	switch cfg.DBDriver {
	case "memory":
		log.Warn().Msg("using in-memory store; reminders are lost on restart")
		return memory.New(), nil
	case "sqlite":
		st, err := storesqlite.New(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite %s: %w", cfg.SQLitePath, err)
		}
		log.Debug().Str("path", cfg.SQLitePath).Msg("sqlite store ready")
		return st, nil
	case "postgres":
		return newPostgresStore(ctx, cfg, log)
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER: %s", cfg.DBDriver)
	}
}

// newPostgresStore connects and applies the schema, retrying with
// exponential backoff until the bootstrap budget runs out. This covers a
// database container that is still starting.
func newPostgresStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (storepkg.Store, error) {
	dsn := cfg.PostgresDSN
	if dsn == "" {
		return nil, fmt.Errorf("%s_POSTGRES_DSN is required when DB_DRIVER=postgres", config.Prefix)
	}

	budget := time.Duration(cfg.BootstrapTimeoutSeconds) * time.Second
	if budget <= 0 {
		budget = 5 * time.Second
	}
	bootCtx, cancel := context.WithTimeout(ctx, budget)
	defer cancel()

	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = 100 * time.Millisecond
	exp.MaxInterval = 2 * time.Second
	exp.MaxElapsedTime = budget

	var db *sql.DB
	attempt := 0
	op := func() error {
		attempt++
		conn, err := storepg.Open(bootCtx, dsn)
		if err != nil {
			log.Warn().Err(err).Int("attempt", attempt).Msg("postgres not reachable yet")
			return err
		}
		if err := storepg.EnsureSchema(bootCtx, conn); err != nil {
			_ = conn.Close()
			log.Warn().Err(err).Int("attempt", attempt).Msg("postgres schema bootstrap failed")
			return err
		}
		db = conn
		return nil
	}
	if err := backoff.Retry(op, backoff.WithContext(exp, bootCtx)); err != nil {
		return nil, fmt.Errorf("postgres bootstrap after %d attempts: %w", attempt, err)
	}
	log.Debug().Int("attempts", attempt).Msg("postgres store ready")
	return storepg.NewWithDB(db), nil
}
