package db

import (
	"context"
	"fmt"
	"time"

	"github.com/anaghasb/CC-phase2-integration/backend/industry-connect-service/internal/models"
	"github.com/jackc/pgx/v5"
)

const eventColumns = `id, COALESCE(title,''), COALESCE(description,''), datetime, COALESCE(mode,''),
	COALESCE(location,''), COALESCE(host_organization,''), COALESCE(max_participants,0)`

func scanEvent(row pgx.Row) (*models.Event, error) {
	var e models.Event
	var at *time.Time
	if err := row.Scan(&e.ID, &e.Title, &e.Description, &at, &e.Mode, &e.Location, &e.HostOrganization, &e.MaxParticipants); err != nil {
		return nil, err
	}
	if at != nil {
		e.Datetime = at.UTC()
	}
	return &e, nil
}

// CreateEvent inserts an event and returns the stored row.
func (db *Database) CreateEvent(ctx context.Context, req models.EventCreateRequest) (*models.Event, error) {
	query := `
        INSERT INTO events (title, description, datetime, mode, location, host_organization, max_participants)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING ` + eventColumns
	e, err := scanEvent(db.Pool.QueryRow(ctx, query,
		req.Title, req.Description, req.Datetime.Time, req.Mode, req.Location, req.HostOrganization, *req.MaxParticipants,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	return e, nil
}

// ListUpcomingEvents returns events scheduled strictly after now, soonest first.
func (db *Database) ListUpcomingEvents(ctx context.Context, now time.Time) ([]models.Event, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT `+eventColumns+` FROM events WHERE datetime > $1 ORDER BY datetime, id`, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]models.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, *e)
	}
	return events, rows.Err()
}

// GetEvent returns an event by ID
func (db *Database) GetEvent(ctx context.Context, id int) (*models.Event, error) {
	e, err := scanEvent(db.Pool.QueryRow(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1`, id))
	if err != nil {
		return nil, notFoundIfNoRows(err, "event")
	}
	return e, nil
}

// CreateRegistration records a registration without checking the event or its capacity.
func (db *Database) CreateRegistration(ctx context.Context, req models.RegisterUserRequest) (*models.EventRegistration, error) {
	var r models.EventRegistration
	err := db.Pool.QueryRow(ctx,
		`INSERT INTO event_registrations (event_id, user_id) VALUES ($1, $2) RETURNING id, event_id, user_id`,
		req.EventID, req.UserID,
	).Scan(&r.ID, &r.EventID, &r.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}
	return &r, nil
}

// ListRegistrations returns registrations for an event ordered by id
func (db *Database) ListRegistrations(ctx context.Context, eventID int) ([]models.EventRegistration, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, event_id, user_id FROM event_registrations WHERE event_id = $1 ORDER BY id`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	regs := make([]models.EventRegistration, 0)
	for rows.Next() {
		var r models.EventRegistration
		if err := rows.Scan(&r.ID, &r.EventID, &r.UserID); err != nil {
			return nil, err
		}
		regs = append(regs, r)
	}
	return regs, rows.Err()
}

// CreateFeedback stores feedback without checking the event.
func (db *Database) CreateFeedback(ctx context.Context, req models.FeedbackCreateRequest) (*models.EventFeedback, error) {
	var f models.EventFeedback
	err := db.Pool.QueryRow(ctx,
		`INSERT INTO event_feedbacks (event_id, user_id, feedback) VALUES ($1, $2, $3) RETURNING id, event_id, user_id, feedback`,
		req.EventID, req.UserID, req.Feedback,
	).Scan(&f.ID, &f.EventID, &f.UserID, &f.Feedback)
	if err != nil {
		return nil, fmt.Errorf("failed to submit feedback: %w", err)
	}
	return &f, nil
}
