package handler // handler package contains organizer-facing gig handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"gigbook/internal/form"
	"gigbook/internal/model"
	"gigbook/internal/queue"
	"gigbook/internal/repository"
	queue_publisher "gigbook/internal/service"
)

// gigFormReq mirrors the fields an organizer submits from the gig form.
// Date and time arrive as separate strings and are only combined into a
// single value after field-level validation has passed.
type gigFormReq struct {
	ID      uint64 `json:"id"`       // must stay zero when creating
	Venue   string `json:"venue"`    // venue name
	Date    string `json:"date"`     // "2006-01-02"
	Time    string `json:"time"`     // "15:04" or "15:04:05"
	GenreID uint8  `json:"genre_id"` // selected genre, 1-based
}

// gigResp is the JSON shape returned for a gig.  StartsAt is formatted
// the way the form submitted it so clients can round-trip values.
type gigResp struct {
	ID        uint64    `json:"id"`
	OwnerID   uint64    `json:"owner_id"`
	Venue     string    `json:"venue"`
	StartsAt  time.Time `json:"starts_at"`
	GenreID   uint8     `json:"genre_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toGigResp(g *model.Gig) gigResp {
	return gigResp{
		ID:        g.ID,
		OwnerID:   g.OwnerID,
		Venue:     g.Venue,
		StartsAt:  g.StartsAt,
		GenreID:   g.GenreID,
		CreatedAt: g.CreatedAt,
		UpdatedAt: g.UpdatedAt,
	}
}

// fieldErrors flattens validation failures into a field->message map
// for the client to annotate the form with.
func fieldErrors(errs []form.FieldError) map[string]string {
	out := make(map[string]string, len(errs))
	for i := range errs {
		out[errs[i].Field] = errs[i].Err.Error()
	}
	return out
}

// NewGigForm handles GET /v1/gigs/form and returns an empty form for a
// new listing together with the genre options and the action label the
// client should render ("Create", because the form's ID is zero).
func (h *GigHandler) NewGigForm(c echo.Context) error {
	if _, err := getUserID(c); err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
	}
	genres, err := h.GenreRepo.ListAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to load genres"})
	}
	f := &form.GigForm{Genres: genres}
	return c.JSON(http.StatusOK, map[string]any{
		"form":   f,
		"action": f.ActionLabel(),
	})
}

// EditGigForm handles GET /v1/gigs/:id/form and returns a form
// pre-populated from the stored gig.  The action label is "Update"
// because the form carries a nonzero ID.  Ownership is enforced.
func (h *GigHandler) EditGigForm(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	g, err := h.GigRepo.GetByIDAndOwner(c.Request().Context(), id, ownerID)
	if err != nil {
		return gigLookupError(c, err)
	}
	genres, err := h.GenreRepo.ListAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to load genres"})
	}
	f := form.FromGig(g, genres)
	return c.JSON(http.StatusOK, map[string]any{
		"form":   f,
		"action": f.ActionLabel(),
	})
}

// CreateGig handles POST /v1/gigs and creates a new listing.  The body
// must describe a create-intent form: a nonzero ID belongs on the
// update route instead.
func (h *GigHandler) CreateGig(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
	}
	var body gigFormReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	// A nonzero ID signals update intent; creating with one would let
	// the route and the form disagree about what is being done.
	if body.ID != 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "id must be omitted when creating"})
	}

	f := &form.GigForm{
		Venue:   strings.TrimSpace(body.Venue),
		Date:    strings.TrimSpace(body.Date),
		Time:    strings.TrimSpace(body.Time),
		GenreID: body.GenreID,
	}
	if errs := f.Validate(time.Now()); len(errs) > 0 {
		return c.JSON(http.StatusUnprocessableEntity, map[string]any{"errors": fieldErrors(errs)})
	}
	startsAt, err := f.CombinedDateTime()
	if err != nil {
		var fe *form.FieldError
		if errors.As(err, &fe) {
			return c.JSON(http.StatusUnprocessableEntity, map[string]any{"errors": fieldErrors([]form.FieldError{*fe})})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to combine date and time"})
	}
	genre, err := h.GenreRepo.GetByID(c.Request().Context(), f.GenreID)
	if err != nil {
		if errors.Is(err, repository.ErrGenreNotFound) {
			return c.JSON(http.StatusUnprocessableEntity, map[string]any{"errors": map[string]string{"genre_id": "unknown genre"}})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to verify genre"})
	}

	g := &model.Gig{
		OwnerID:  ownerID,
		Venue:    f.Venue,
		StartsAt: startsAt,
		GenreID:  f.GenreID,
	}
	if err := h.GigRepo.Create(c.Request().Context(), g); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "could not create gig"})
	}

	// Publish best-effort; a broker outage must not fail the request.
	_ = queue_publisher.PublishGigListed(c.Request().Context(), queue.NewGigListedEvent(g, genre.Name, queue.ActionCreated))

	return c.JSON(http.StatusCreated, toGigResp(g))
}

// UpdateGig handles PUT /v1/gigs/:id and replaces the editable fields
// of an existing listing with a full form submission.  The form's ID
// comes from the path so routing and intent stay consistent: the
// update handler always works on a nonzero identifier.
func (h *GigHandler) UpdateGig(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	var body gigFormReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if body.ID != 0 && body.ID != id {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "body id does not match path id"})
	}
	// Verify the gig exists and belongs to the caller before validating
	// input, so a wrong-owner probe never learns whether its payload
	// was well formed.
	if _, err := h.GigRepo.GetByIDAndOwner(c.Request().Context(), id, ownerID); err != nil {
		return gigLookupError(c, err)
	}

	f := &form.GigForm{
		ID:      id,
		Venue:   strings.TrimSpace(body.Venue),
		Date:    strings.TrimSpace(body.Date),
		Time:    strings.TrimSpace(body.Time),
		GenreID: body.GenreID,
	}
	if errs := f.Validate(time.Now()); len(errs) > 0 {
		return c.JSON(http.StatusUnprocessableEntity, map[string]any{"errors": fieldErrors(errs)})
	}
	startsAt, err := f.CombinedDateTime()
	if err != nil {
		var fe *form.FieldError
		if errors.As(err, &fe) {
			return c.JSON(http.StatusUnprocessableEntity, map[string]any{"errors": fieldErrors([]form.FieldError{*fe})})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to combine date and time"})
	}
	genre, err := h.GenreRepo.GetByID(c.Request().Context(), f.GenreID)
	if err != nil {
		if errors.Is(err, repository.ErrGenreNotFound) {
			return c.JSON(http.StatusUnprocessableEntity, map[string]any{"errors": map[string]string{"genre_id": "unknown genre"}})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to verify genre"})
	}

	upd := &model.Gig{
		ID:       id,
		OwnerID:  ownerID,
		Venue:    f.Venue,
		StartsAt: startsAt,
		GenreID:  f.GenreID,
	}
	if err := h.GigRepo.UpdateByIDAndOwner(c.Request().Context(), upd, ownerID); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return c.JSON(http.StatusNotFound, map[string]string{"error": "gig not found"})
		case errors.Is(err, repository.ErrNoChange):
			return c.JSON(http.StatusConflict, map[string]string{"error": "gig already has these values"})
		default:
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "update failed"})
		}
	}

	fresh, err := h.GigRepo.GetByID(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to load gig"})
	}

	_ = queue_publisher.PublishGigListed(c.Request().Context(), queue.NewGigListedEvent(fresh, genre.Name, queue.ActionUpdated))

	return c.JSON(http.StatusOK, toGigResp(fresh))
}

// ListMyGigs handles GET /v1/gigs and returns every listing owned by
// the caller, ordered by start time.
func (h *GigHandler) ListMyGigs(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
	}
	gigs, err := h.GigRepo.ListByOwner(c.Request().Context(), ownerID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to load gigs"})
	}
	items := make([]gigResp, 0, len(gigs))
	for i := range gigs {
		items = append(items, toGigResp(&gigs[i]))
	}
	return c.JSON(http.StatusOK, map[string]any{"items": items})
}

// GetGig handles GET /v1/gigs/:id for the owning organizer.
func (h *GigHandler) GetGig(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	g, err := h.GigRepo.GetByIDAndOwner(c.Request().Context(), id, ownerID)
	if err != nil {
		return gigLookupError(c, err)
	}
	return c.JSON(http.StatusOK, toGigResp(g))
}

// DeleteGig handles DELETE /v1/gigs/:id and removes a listing owned by
// the caller.
func (h *GigHandler) DeleteGig(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	if err := h.GigRepo.DeleteByIDAndOwner(c.Request().Context(), id, ownerID); err != nil {
		return gigLookupError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// gigLookupError translates repository sentinels into HTTP responses.
func gigLookupError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, repository.ErrGigNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": "gig not found"})
	case errors.Is(err, repository.ErrForbidden):
		return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
	default:
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}
}
