package model

import "time"

// Gig represents a bookable event listing at a venue.  Each gig is
// owned by the organizer who created it and carries a single
// point-in-time value for when it takes place.  This struct
// corresponds to a row in the `gigs` table.
//
// Fields:
//  ID        – primary key identifier.
//  OwnerID   – user ID of the organizer who listed the gig.
//  Venue     – venue name where the gig takes place.
//  StartsAt  – when the gig starts, stored without timezone and
//              interpreted in the server's local zone.
//  GenreID   – references genres.id.
//  CreatedAt – timestamp when the listing was created.
//  UpdatedAt – timestamp of last update.
type Gig struct {
	ID        uint64    // gigs.id
	OwnerID   uint64    // gigs.owner_id
	Venue     string    // gigs.venue
	StartsAt  time.Time // gigs.starts_at
	GenreID   uint8     // gigs.genre_id
	CreatedAt time.Time // gigs.created_at
	UpdatedAt time.Time // gigs.updated_at
}
