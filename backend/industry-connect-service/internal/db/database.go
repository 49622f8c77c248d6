package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/anaghasb/CC-phase2-integration/internal/logging"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when the addressed row does not exist.
var ErrNotFound = errors.New("not found")

// Postgres error code for foreign key violations.
const foreignKeyViolation = "23503"

// Database holds the database connection pool
type Database struct {
	Pool *pgxpool.Pool
}

// Options controls pool sizing and connection retries.
type Options struct {
	MaxConns     int32
	MaxRetries   int
	InitialDelay time.Duration
}

// NewDatabase creates a new connection pool, retrying while the database comes up.
func NewDatabase(ctx context.Context, dsn string, opts Options) (*Database, error) {
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("invalid DATABASE_URL: %w", err)
	}

	// Set pool settings
	poolConfig.MaxConns = opts.MaxConns
	poolConfig.MinConns = 0
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 5 * time.Minute

	if opts.MaxRetries < 1 {
		opts.MaxRetries = 1
	}

	var pool *pgxpool.Pool
	var lastErr error

	for attempt := 1; attempt <= opts.MaxRetries; attempt++ {
		logging.LogKV("info", "database connection attempt", map[string]interface{}{
			"attempt":      attempt,
			"max_attempts": opts.MaxRetries,
			"host":         poolConfig.ConnConfig.Host,
			"database":     poolConfig.ConnConfig.Database,
		})

		pool, err = pgxpool.NewWithConfig(ctx, poolConfig)
		if err != nil {
			lastErr = fmt.Errorf("failed to create connection pool: %w", err)
		} else {
			pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			err = pool.Ping(pingCtx)
			cancel()
			if err == nil {
				break
			}
			lastErr = fmt.Errorf("failed to ping database: %w", err)
			pool.Close()
			pool = nil
		}

		logging.LogKV("warn", "database connection failed", map[string]interface{}{
			"attempt": attempt,
			"error":   lastErr.Error(),
		})
		if attempt < opts.MaxRetries {
			// Exponential backoff: 1s, 2s, 4s, 8s, ...
			delay := opts.InitialDelay * time.Duration(1<<(attempt-1))
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	if pool == nil {
		return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", opts.MaxRetries, lastErr)
	}

	logging.LogKV("info", "database connection established", nil)
	return &Database{Pool: pool}, nil
}

// Close closes the database connection pool
func (db *Database) Close() {
	if db.Pool != nil {
		db.Pool.Close()
		logging.LogKV("info", "database connection pool closed", nil)
	}
}

// Health checks if the database is healthy
func (db *Database) Health(ctx context.Context) error {
	return db.Pool.Ping(ctx)
}

func notFoundIfNoRows(err error, what string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return err
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation
}
