package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/anaghasb/CC-phase2-integration/backend/integration-service/internal/models"
)

// CreateLink inserts a process-partner link. Callers validate both ids upstream first.
func (d *Database) CreateLink(ctx context.Context, processID, partnerID int) (*models.ProcessPartnerLink, error) {
	link := models.ProcessPartnerLink{ProcessID: processID, PartnerID: partnerID}
	err := d.DB.QueryRowContext(ctx,
		`INSERT INTO process_partner_links (process_id, partner_id) VALUES ($1, $2) RETURNING id`,
		processID, partnerID,
	).Scan(&link.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to insert link: %w", err)
	}
	return &link, nil
}

// ListLinksByPartner returns the links of one partner in insertion order.
func (d *Database) ListLinksByPartner(ctx context.Context, partnerID int) ([]models.ProcessPartnerLink, error) {
	return d.listLinks(ctx, "partner_id", partnerID)
}

// ListLinksByProcess returns the links of one process in insertion order.
func (d *Database) ListLinksByProcess(ctx context.Context, processID int) ([]models.ProcessPartnerLink, error) {
	return d.listLinks(ctx, "process_id", processID)
}

// column is chosen by the callers above, never taken from a request.
func (d *Database) listLinks(ctx context.Context, column string, id int) ([]models.ProcessPartnerLink, error) {
	query := `SELECT id, process_id, partner_id FROM process_partner_links WHERE ` + column + ` = $1 ORDER BY id`
	rows, err := d.DB.QueryContext(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query links: %w", err)
	}
	defer rows.Close()

	links := make([]models.ProcessPartnerLink, 0)
	for rows.Next() {
		var l models.ProcessPartnerLink
		if err := rows.Scan(&l.ID, &l.ProcessID, &l.PartnerID); err != nil {
			return nil, fmt.Errorf("failed to scan link: %w", err)
		}
		links = append(links, l)
	}
	return links, rows.Err()
}

// DeleteLink removes one link matching both ids; with duplicates the oldest goes first.
func (d *Database) DeleteLink(ctx context.Context, processID, partnerID int) error {
	var id int
	err := d.DB.QueryRowContext(ctx, `
		DELETE FROM process_partner_links
		WHERE id = (
			SELECT id FROM process_partner_links
			WHERE process_id = $1 AND partner_id = $2
			ORDER BY id
			LIMIT 1
		)
		RETURNING id`,
		processID, partnerID,
	).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("link %d/%d: %w", processID, partnerID, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to delete link: %w", err)
	}
	return nil
}
