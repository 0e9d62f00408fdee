// Package queue defines message payloads exchanged over the message broker.
package queue

import (
	"time"

	"github.com/google/uuid"

	"gigbook/internal/model"
)

// Actions carried by GigListedEvent.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
)

// GigListedEvent is published whenever an organizer creates or updates
// a gig listing.  It contains enough information for downstream
// consumers to log, notify, or trigger analytics without querying the
// primary database.
type GigListedEvent struct {
	EventID    string `json:"event_id"`
	GigID      uint64 `json:"gig_id"`
	OwnerID    uint64 `json:"owner_id"`
	Venue      string `json:"venue"`
	StartsAt   string `json:"starts_at"`
	Genre      string `json:"genre"`
	Action     string `json:"action"` // created | updated
	OccurredAt string `json:"occurred_at"`
}

// NewGigListedEvent builds an event from a persisted gig.  Times are
// serialized in the DB-friendly "2006-01-02 15:04:05" format.
func NewGigListedEvent(g *model.Gig, genreName, action string) GigListedEvent {
	return GigListedEvent{
		EventID:    uuid.NewString(),
		GigID:      g.ID,
		OwnerID:    g.OwnerID,
		Venue:      g.Venue,
		StartsAt:   g.StartsAt.Format("2006-01-02 15:04:05"),
		Genre:      genreName,
		Action:     action,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	}
}
