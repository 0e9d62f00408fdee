package handler // handler defines http handlers

import (
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"

	"gigbook/internal/repository"
)

// GigHandler bundles repositories for organizers to manage their
// listings.
type GigHandler struct {
	GigRepo   *repository.GigRepo   // GigRepo provides gig persistence
	GenreRepo *repository.GenreRepo // GenreRepo reads the genre catalogue
}

// NewGigHandler constructs a new GigHandler and panics if a dependency
// is nil.
func NewGigHandler(gigRepo *repository.GigRepo, genreRepo *repository.GenreRepo) *GigHandler {
	if gigRepo == nil || genreRepo == nil {
		panic("nil repository passed to NewGigHandler")
	}
	return &GigHandler{
		GigRepo:   gigRepo,
		GenreRepo: genreRepo,
	}
}

// getUserID extracts the user_id from echo.Context and converts it to uint64
func getUserID(c echo.Context) (uint64, error) {
	v := c.Get("user_id")
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}
