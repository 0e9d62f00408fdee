package repository

import (
	"context"
	"database/sql"
	"errors"

	"gigbook/internal/model"
)

// GenreRepo reads the genre catalogue.  Genres are seeded by the
// schema migration and never mutated at runtime, so this repository
// only exposes lookups.
type GenreRepo struct {
	db *sql.DB
}

// NewGenreRepo constructs a GenreRepo with the given DB handle.
func NewGenreRepo(db *sql.DB) *GenreRepo {
	return &GenreRepo{db: db}
}

// ListAll returns every genre ordered by ID.  The ordering matters:
// forms present the options in catalogue order.
func (r *GenreRepo) ListAll(ctx context.Context) ([]model.Genre, error) {
	const q = `SELECT id, name FROM genres ORDER BY id ASC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []model.Genre
	for rows.Next() {
		var g model.Genre
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, err
		}
		result = append(result, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// GetByID retrieves a single genre.  It returns ErrGenreNotFound when
// the ID is not part of the catalogue.
func (r *GenreRepo) GetByID(ctx context.Context, id uint8) (*model.Genre, error) {
	const q = `SELECT id, name FROM genres WHERE id = ?`
	var g model.Genre
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&g.ID, &g.Name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGenreNotFound
		}
		return nil, err
	}
	return &g, nil
}
