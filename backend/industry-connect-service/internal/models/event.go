package models

import "time"

// Event modes recognised by clients. The mode column is free-form and not
// checked against these.
const (
	EventModeOnline  = "online"
	EventModeOffline = "offline"
)

// Event is a scheduled industry event.
// Backed by table `events`
type Event struct {
	ID               int       `json:"id" db:"id"`
	Title            string    `json:"title" db:"title"`
	Description      string    `json:"description" db:"description"`
	Datetime         time.Time `json:"datetime" db:"datetime"`
	Mode             string    `json:"mode" db:"mode"`
	Location         string    `json:"location" db:"location"`
	HostOrganization string    `json:"host_organization" db:"host_organization"`
	MaxParticipants  int       `json:"max_participants" db:"max_participants"`
}

// EventCreateRequest represents event creation request. Capacity and mode are stored as given.
// Pointers make `required` a presence check, so empty strings and zero are accepted.
type EventCreateRequest struct {
	Title            *string    `json:"title" binding:"required"`
	Description      *string    `json:"description" binding:"required"`
	Datetime         *Timestamp `json:"datetime" binding:"required"`
	Mode             *string    `json:"mode" binding:"required"`
	Location         *string    `json:"location" binding:"required"`
	HostOrganization *string    `json:"host_organization" binding:"required"`
	MaxParticipants  *int       `json:"max_participants" binding:"required"`
}

// EventRegistration records a user signing up for an event.
// Backed by table `event_registrations`
type EventRegistration struct {
	ID      int `json:"id" db:"id"`
	EventID int `json:"event_id" db:"event_id"`
	UserID  int `json:"user_id" db:"user_id"`
}

// RegisterUserRequest represents an event registration request
type RegisterUserRequest struct {
	EventID *int `json:"event_id" binding:"required"`
	UserID  *int `json:"user_id" binding:"required"`
}

// EventFeedback is free text left by a user about an event.
// Backed by table `event_feedbacks`
type EventFeedback struct {
	ID       int    `json:"id" db:"id"`
	EventID  int    `json:"event_id" db:"event_id"`
	UserID   int    `json:"user_id" db:"user_id"`
	Feedback string `json:"feedback" db:"feedback"`
}

// FeedbackCreateRequest represents a feedback submission
type FeedbackCreateRequest struct {
	EventID  *int    `json:"event_id" binding:"required"`
	UserID   *int    `json:"user_id" binding:"required"`
	Feedback *string `json:"feedback" binding:"required"`
}
