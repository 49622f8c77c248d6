package db

import (
	"context"
	"fmt"

	"github.com/anaghasb/CC-phase2-integration/internal/logging"
)

// schemaStatements create the industry connect tables. Registrations and
// feedback carry no foreign key to events: they are accepted for any event_id.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS industry_partners (
		id SERIAL PRIMARY KEY,
		company_name TEXT NOT NULL,
		domain TEXT NOT NULL,
		contact_person TEXT NOT NULL,
		contact_email TEXT NOT NULL,
		description TEXT
	);`,
	`CREATE TABLE IF NOT EXISTS user_industry_links (
		id SERIAL PRIMARY KEY,
		user_id INTEGER NOT NULL,
		partner_id INTEGER NOT NULL REFERENCES industry_partners(id) ON DELETE CASCADE
	);`,
	`CREATE INDEX IF NOT EXISTS idx_user_industry_links_partner ON user_industry_links(partner_id);`,
	`CREATE TABLE IF NOT EXISTS events (
		id SERIAL PRIMARY KEY,
		title TEXT,
		description TEXT,
		datetime TIMESTAMPTZ,
		mode TEXT,
		location TEXT,
		host_organization TEXT,
		max_participants INTEGER
	);`,
	`CREATE INDEX IF NOT EXISTS idx_events_datetime ON events(datetime);`,
	`CREATE TABLE IF NOT EXISTS event_registrations (
		id SERIAL PRIMARY KEY,
		event_id INTEGER,
		user_id INTEGER
	);`,
	`CREATE INDEX IF NOT EXISTS idx_event_registrations_event ON event_registrations(event_id);`,
	`CREATE TABLE IF NOT EXISTS event_feedbacks (
		id SERIAL PRIMARY KEY,
		event_id INTEGER,
		user_id INTEGER,
		feedback TEXT
	);`,
}

// Init creates/verifies the industry connect tables.
// Safe to call at startup; idempotent.
func (db *Database) Init(ctx context.Context) error {
	if db == nil || db.Pool == nil {
		return fmt.Errorf("nil pool")
	}

	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, s := range schemaStatements {
		if _, err := tx.Exec(ctx, s); err != nil {
			return fmt.Errorf("exec schema: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit schema: %w", err)
	}

	logging.LogKV("info", "schema verified", map[string]interface{}{"tables": 5})
	return nil
}
