// Package repository contains data access logic for gig listings.  A
// Gig represents a bookable event at a venue on a specific date and
// time.  Ownership is enforced in SQL so a handler can never mutate
// another organizer's listing by mistake.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"gigbook/internal/model"
)

// GigRepo manages persistence for gigs.
type GigRepo struct {
	db *sql.DB
}

// NewGigRepo constructs a GigRepo with the given DB handle.
func NewGigRepo(db *sql.DB) *GigRepo {
	return &GigRepo{db: db}
}

// DB exposes the underlying sql.DB.  It allows callers to begin
// transactions spanning multiple repositories.
func (r *GigRepo) DB() *sql.DB {
	return r.db
}

const gigColumns = `id, owner_id, venue, starts_at, genre_id, created_at, updated_at`

func scanGig(row interface{ Scan(...any) error }, g *model.Gig) error {
	return row.Scan(&g.ID, &g.OwnerID, &g.Venue, &g.StartsAt, &g.GenreID, &g.CreatedAt, &g.UpdatedAt)
}

// Create inserts a new gig and assigns the generated ID back to the
// struct.  The caller must provide owner_id, venue, starts_at and
// genre_id.  Timestamps are populated from the freshly inserted row so
// the returned value matches what any later read would see.
func (r *GigRepo) Create(ctx context.Context, g *model.Gig) error {
	const q = `INSERT INTO gigs (owner_id, venue, starts_at, genre_id) VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, g.OwnerID, g.Venue, g.StartsAt, g.GenreID)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	g.ID = uint64(id)
	const sel = `SELECT ` + gigColumns + ` FROM gigs WHERE id = ?`
	return scanGig(r.db.QueryRowContext(ctx, sel, g.ID), g)
}

// GetByID retrieves a gig by its ID.  It returns ErrGigNotFound if
// there is no matching row.
func (r *GigRepo) GetByID(ctx context.Context, id uint64) (*model.Gig, error) {
	const q = `SELECT ` + gigColumns + ` FROM gigs WHERE id = ?`
	var g model.Gig
	if err := scanGig(r.db.QueryRowContext(ctx, q, id), &g); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGigNotFound
		}
		return nil, err
	}
	return &g, nil
}

// GetByIDAndOwner retrieves a gig only when it belongs to the given
// owner.  It returns ErrGigNotFound when the row does not exist and
// ErrForbidden when it exists but is owned by someone else.
func (r *GigRepo) GetByIDAndOwner(ctx context.Context, id, ownerID uint64) (*model.Gig, error) {
	g, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if g.OwnerID != ownerID {
		return nil, ErrForbidden
	}
	return g, nil
}

// ListByOwner returns all gigs created by the given organizer, ordered
// by start time ascending.  When no gigs exist it returns an empty
// slice and nil error.
func (r *GigRepo) ListByOwner(ctx context.Context, ownerID uint64) ([]model.Gig, error) {
	const q = `SELECT ` + gigColumns + ` FROM gigs WHERE owner_id = ? ORDER BY starts_at ASC`
	rows, err := r.db.QueryContext(ctx, q, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []model.Gig
	for rows.Next() {
		var g model.Gig
		if err := scanGig(rows, &g); err != nil {
			return nil, err
		}
		result = append(result, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// ListUpcoming returns all gigs starting at or after the given instant
// regardless of owner.  It is used by public browse endpoints to show
// guests what is coming up, ordered by start time ascending.
func (r *GigRepo) ListUpcoming(ctx context.Context, from time.Time) ([]model.Gig, error) {
	const q = `SELECT ` + gigColumns + ` FROM gigs WHERE starts_at >= ? ORDER BY starts_at ASC`
	rows, err := r.db.QueryContext(ctx, q, from)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []model.Gig
	for rows.Next() {
		var g model.Gig
		if err := scanGig(rows, &g); err != nil {
			return nil, err
		}
		result = append(result, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// UpdateByIDAndOwner updates a gig's attributes if it belongs to the
// given owner.  It only performs the UPDATE when there is at least one
// differing field; otherwise it returns ErrNoChange.  When the
// row/ownership doesn't match, it returns sql.ErrNoRows.
func (r *GigRepo) UpdateByIDAndOwner(ctx context.Context, g *model.Gig, ownerID uint64) error {
	const q = `UPDATE gigs
               SET venue = ?, starts_at = ?, genre_id = ?, updated_at = CURRENT_TIMESTAMP
               WHERE id = ? AND owner_id = ?
                 AND (venue <> ? OR starts_at <> ? OR genre_id <> ?)`

	res, err := r.db.ExecContext(ctx, q,
		g.Venue, g.StartsAt, g.GenreID, // SET
		g.ID, ownerID, // WHERE (record + owner)
		g.Venue, g.StartsAt, g.GenreID, // only if at least one field differs
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}

	// Determine if it's "not found/ownership" or simply "no change".
	const qExists = `SELECT 1 FROM gigs WHERE id = ? AND owner_id = ? LIMIT 1`
	var one int
	if err := r.db.QueryRowContext(ctx, qExists, g.ID, ownerID).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return sql.ErrNoRows // record doesn't exist or belongs to another owner
		}
		return err
	}
	return ErrNoChange // row exists but values are identical
}

// DeleteByIDAndOwner removes a gig provided it belongs to the given
// owner.  If the gig does not exist, ErrGigNotFound is returned.  If it
// is owned by another user, ErrForbidden is returned.
func (r *GigRepo) DeleteByIDAndOwner(ctx context.Context, id, ownerID uint64) error {
	var dbOwnerID uint64
	err := r.db.QueryRowContext(ctx, `SELECT owner_id FROM gigs WHERE id = ?`, id).Scan(&dbOwnerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrGigNotFound
		}
		return err
	}
	if dbOwnerID != ownerID {
		return ErrForbidden
	}
	_, err = r.db.ExecContext(ctx, `DELETE FROM gigs WHERE id = ?`, id)
	return err
}
