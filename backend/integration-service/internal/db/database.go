package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/anaghasb/CC-phase2-integration/internal/logging"
	"github.com/lib/pq"
)

// ErrNotFound is returned when no row matches.
var ErrNotFound = errors.New("not found")

// Database represents the database connection
type Database struct {
	DB *sql.DB
}

// Options controls pool sizing and connection retries.
type Options struct {
	MaxOpenConns int
	MaxRetries   int
	InitialDelay time.Duration
}

// NewDatabase opens a lib/pq handle, retrying with exponential backoff while the database comes up.
func NewDatabase(ctx context.Context, dsn string, opts Options) (*Database, error) {
	if opts.MaxRetries < 1 {
		opts.MaxRetries = 1
	}

	var db *sql.DB
	var lastErr error

	for attempt := 1; attempt <= opts.MaxRetries; attempt++ {
		logging.LogKV("info", "database connection attempt", map[string]interface{}{
			"attempt":      attempt,
			"max_attempts": opts.MaxRetries,
		})

		connector, err := pq.NewConnector(dsn)
		if err != nil {
			// a malformed DSN will not fix itself
			return nil, fmt.Errorf("failed to build pq connector: %w", err)
		}
		db = sql.OpenDB(connector)

		pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		err = db.PingContext(pingCtx)
		cancel()
		if err == nil {
			break
		}

		lastErr = fmt.Errorf("failed to ping database: %w", err)
		logging.LogKV("warn", "database connection failed", map[string]interface{}{
			"attempt": attempt,
			"error":   lastErr.Error(),
		})
		db.Close()
		db = nil

		if attempt < opts.MaxRetries {
			// Exponential backoff: 1s, 2s, 4s, 8s, 16s
			delay := opts.InitialDelay * time.Duration(1<<(attempt-1))
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	if db == nil {
		return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", opts.MaxRetries, lastErr)
	}

	db.SetMaxOpenConns(opts.MaxOpenConns)
	db.SetMaxIdleConns(2)
	db.SetConnMaxIdleTime(5 * time.Minute)

	logging.LogKV("info", "database connection established", nil)
	return &Database{DB: db}, nil
}

// Close closes the database connection
func (d *Database) Close() error {
	if d.DB != nil {
		return d.DB.Close()
	}
	return nil
}

// Health checks if the database connection is healthy
func (d *Database) Health(ctx context.Context) error {
	return d.DB.PingContext(ctx)
}

// Init creates the link table if it does not exist yet.
func (d *Database) Init(ctx context.Context) error {
	tx, err := d.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, stmt := range []string{
		`CREATE TABLE IF NOT EXISTS process_partner_links (
			id SERIAL PRIMARY KEY,
			process_id INTEGER NOT NULL,
			partner_id INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_process_partner_links_process ON process_partner_links(process_id)`,
		`CREATE INDEX IF NOT EXISTS idx_process_partner_links_partner ON process_partner_links(partner_id)`,
	} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement failed: %w", err)
		}
	}
	return tx.Commit()
}
