// Package form holds the per-request view model used when creating or
// editing a gig listing.  The form is built by the handler layer (empty
// for a new listing, pre-populated from a stored gig when editing),
// validated, translated into a persistence call and then discarded.  It
// owns no long-lived state and is safe to use from concurrent requests
// because every request constructs its own instance.
package form

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gigbook/internal/model"
)

// Sentinel errors distinguishing the ways a submitted form can fail.
// All of them are recoverable at the request boundary: handlers map
// them onto per-field messages and the client redisplays the form.
var (
	// ErrRequired indicates a mandatory field was empty or unset.
	ErrRequired = errors.New("required")
	// ErrPastDate indicates the gig date precedes today.  The comparison
	// is calendar-date only; a gig later today is still valid.
	ErrPastDate = errors.New("date must not be in the past")
	// ErrInvalidTime indicates the time field is not a valid time of day.
	ErrInvalidTime = errors.New("invalid time")
	// ErrParse indicates the combined date+time string could not be
	// parsed into a point in time.  It is deliberately distinct from the
	// field-level errors so callers can tell the two stages apart.
	ErrParse = errors.New("unparseable date-time")
)

// FieldError attaches a failing field name to one of the sentinel
// errors above.  It unwraps to the sentinel so callers can use
// errors.Is to branch on the kind of failure.
type FieldError struct {
	Field string // form field the error belongs to
	Err   error  // one of the sentinel errors
}

// Error implements the error interface.
func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

// Unwrap exposes the wrapped sentinel for errors.Is / errors.As.
func (e *FieldError) Unwrap() error {
	return e.Err
}

// Intent states whether a submitted form creates a new gig or updates
// an existing one.  It is always derived from the form's ID: zero means
// the record has not been persisted yet.  Routing must stay consistent
// with this rule: a create handler may only accept forms whose intent
// is IntentCreate.
type Intent int

const (
	// IntentCreate means the form describes a gig that does not exist yet.
	IntentCreate Intent = iota
	// IntentUpdate means the form refers to an existing gig by ID.
	IntentUpdate
)

// Layouts accepted by the form.  Dates arrive as ISO calendar dates and
// times as 24h clock values, with or without seconds.
const (
	dateLayout        = "2006-01-02"
	timeLayout        = "15:04"
	timeLayoutSeconds = "15:04:05"
)

// GigForm carries the editable fields of a gig listing together with
// the genre options the client needs to render a selection control.
// Date and Time stay strings until validation has passed; only then is
// CombinedDateTime used to produce the single point-in-time value that
// gets persisted.
//
// Fields:
//  ID      – gig identifier; zero while the gig is unsaved (create intent).
//  Venue   – venue name, required.
//  Date    – calendar date string ("2006-01-02"), required, today or later.
//  Time    – time-of-day string ("15:04" or "15:04:05"), required.
//  GenreID – selected genre, required; genre IDs start at 1 so zero
//            means nothing was chosen.
//  Genres  – ordered genre options supplied by the caller for display;
//            never persisted by this package.
type GigForm struct {
	ID      uint64        `json:"id"`
	Venue   string        `json:"venue"`
	Date    string        `json:"date"`
	Time    string        `json:"time"`
	GenreID uint8         `json:"genre_id"`
	Genres  []model.Genre `json:"genres,omitempty"`
}

// FromGig builds a pre-populated edit form from a stored gig.  The
// date and time are formatted so that a round trip through
// CombinedDateTime reproduces the stored point in time exactly:
// seconds are only emitted when the stored value actually has them.
func FromGig(g *model.Gig, genres []model.Genre) *GigForm {
	layout := timeLayout
	if g.StartsAt.Second() != 0 {
		layout = timeLayoutSeconds
	}
	return &GigForm{
		ID:      g.ID,
		Venue:   g.Venue,
		Date:    g.StartsAt.Format(dateLayout),
		Time:    g.StartsAt.Format(layout),
		GenreID: g.GenreID,
		Genres:  genres,
	}
}

// Intent reports whether this form creates a new gig or updates an
// existing one.  Zero ID means create; any other value means update,
// regardless of whether that ID actually exists in storage.  Existence
// is the repository's concern.
func (f *GigForm) Intent() Intent {
	if f.ID == 0 {
		return IntentCreate
	}
	return IntentUpdate
}

// ActionLabel returns the label the client should show for this form:
// "Update" for an existing gig, "Create" for a new one.  Pure function
// of the ID.
func (f *GigForm) ActionLabel() string {
	if f.Intent() == IntentUpdate {
		return "Update"
	}
	return "Create"
}

// Validate applies the field-level rules in a fixed order (venue, date,
// time, genre) and returns one FieldError per failing field.  The now
// argument anchors the past-date check; callers pass time.Now() so that
// "today" is evaluated in the server's local zone, matching the zone
// CombinedDateTime parses in.  A nil result means the form passed.
func (f *GigForm) Validate(now time.Time) []FieldError {
	var errs []FieldError

	if strings.TrimSpace(f.Venue) == "" {
		errs = append(errs, FieldError{Field: "venue", Err: ErrRequired})
	}

	if f.Date == "" {
		errs = append(errs, FieldError{Field: "date", Err: ErrRequired})
	} else if y, m, d, ok := looseDate(f.Date); !ok {
		// The field check is deliberately loose: it only rejects input
		// that cannot be shaped into a calendar date at all.  Impossible
		// dates that still look like one (2024-02-30) pass here and are
		// caught later by CombinedDateTime, keeping the two stages
		// independent.
		errs = append(errs, FieldError{Field: "date", Err: ErrParse})
	} else {
		gigDate := time.Date(y, time.Month(m), d, 0, 0, 0, 0, now.Location())
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		if gigDate.Before(today) {
			errs = append(errs, FieldError{Field: "date", Err: ErrPastDate})
		}
	}

	if f.Time == "" {
		errs = append(errs, FieldError{Field: "time", Err: ErrRequired})
	} else if !validTime(f.Time) {
		errs = append(errs, FieldError{Field: "time", Err: ErrInvalidTime})
	}

	if f.GenreID == 0 {
		errs = append(errs, FieldError{Field: "genre_id", Err: ErrRequired})
	}

	return errs
}

// CombinedDateTime joins the date and time fields with a single space
// and parses the result in the server's local timezone.  The listing
// domain has no cross-zone semantics, so local time is the documented
// interpretation of every stored gig time.  Callers must run Validate
// first; this method does not re-check the individual fields.  When the
// combined string is not a real point in time it returns a FieldError
// wrapping ErrParse.
func (f *GigForm) CombinedDateTime() (time.Time, error) {
	combined := f.Date + " " + f.Time
	layout := dateLayout + " " + timeLayout
	if strings.Count(f.Time, ":") == 2 {
		layout = dateLayout + " " + timeLayoutSeconds
	}
	t, err := time.ParseInLocation(layout, combined, time.Local)
	if err != nil {
		return time.Time{}, &FieldError{Field: "date", Err: ErrParse}
	}
	return t, nil
}

// looseDate checks that s is shaped like an ISO calendar date
// (four digits, dash, two digits, dash, two digits) with a month in
// 1..12 and a day in 1..31.  It does not verify the day exists in the
// month; that stricter check belongs to the combined parse.
func looseDate(s string) (year, month, day int, ok bool) {
	if len(s) != 10 || s[4] != '-' || s[7] != '-' {
		return 0, 0, 0, false
	}
	year, ok = atoiDigits(s[0:4])
	if !ok {
		return 0, 0, 0, false
	}
	month, ok = atoiDigits(s[5:7])
	if !ok || month < 1 || month > 12 {
		return 0, 0, 0, false
	}
	day, ok = atoiDigits(s[8:10])
	if !ok || day < 1 || day > 31 {
		return 0, 0, 0, false
	}
	return year, month, day, true
}

// validTime reports whether s parses as a time of day, with or
// without seconds.
func validTime(s string) bool {
	layout := timeLayout
	if strings.Count(s, ":") == 2 {
		layout = timeLayoutSeconds
	}
	_, err := time.Parse(layout, s)
	return err == nil
}

// atoiDigits converts a string of ASCII digits to an int.  Unlike
// strconv.Atoi it rejects signs and spaces so "+1" or " 1" cannot
// sneak through the date shape check.
func atoiDigits(s string) (int, bool) {
	n := 0
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if ch < '0' || ch > '9' {
			return 0, false
		}
		n = n*10 + int(ch-'0')
	}
	return n, true
}
