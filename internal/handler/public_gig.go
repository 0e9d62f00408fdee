package handler

// public_gig.go exposes unauthenticated browse endpoints.  Guests can
// list upcoming gigs and the genre catalogue without an account.  The
// responses are sanitized: owner IDs and bookkeeping timestamps are
// not included.

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"gigbook/internal/model"
	"gigbook/internal/repository"
)

// PublicHandler bundles repositories for guest browsing.
type PublicHandler struct {
	GigRepo   *repository.GigRepo
	GenreRepo *repository.GenreRepo
}

// NewPublicHandler constructs a PublicHandler and panics on nil deps.
func NewPublicHandler(gigRepo *repository.GigRepo, genreRepo *repository.GenreRepo) *PublicHandler {
	if gigRepo == nil || genreRepo == nil {
		panic("nil repository passed to NewPublicHandler")
	}
	return &PublicHandler{GigRepo: gigRepo, GenreRepo: genreRepo}
}

// publicGig is the guest-facing gig shape.
type publicGig struct {
	ID       uint64    `json:"id"`
	Venue    string    `json:"venue"`
	StartsAt time.Time `json:"starts_at"`
	GenreID  uint8     `json:"genre_id"`
}

func toPublicGig(g *model.Gig) publicGig {
	return publicGig{ID: g.ID, Venue: g.Venue, StartsAt: g.StartsAt, GenreID: g.GenreID}
}

// ListUpcomingGigs handles GET /v1/browse/gigs and returns all gigs
// starting now or later, ordered by start time.
func (h *PublicHandler) ListUpcomingGigs(c echo.Context) error {
	gigs, err := h.GigRepo.ListUpcoming(c.Request().Context(), time.Now())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to load gigs"})
	}
	items := make([]publicGig, 0, len(gigs))
	for i := range gigs {
		items = append(items, toPublicGig(&gigs[i]))
	}
	return c.JSON(http.StatusOK, map[string]any{"items": items})
}

// GetPublicGig handles GET /v1/browse/gigs/:id.
func (h *PublicHandler) GetPublicGig(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	g, err := h.GigRepo.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrGigNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "gig not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}
	return c.JSON(http.StatusOK, toPublicGig(g))
}

// ListGenres handles GET /v1/genres and returns the genre catalogue in
// the order forms should present it.
func (h *PublicHandler) ListGenres(c echo.Context) error {
	genres, err := h.GenreRepo.ListAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to load genres"})
	}
	return c.JSON(http.StatusOK, map[string]any{"items": genres})
}
