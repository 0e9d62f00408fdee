package form

import (
	"errors"
	"testing"
	"time"

	"gigbook/internal/model"
)

// fieldErr returns the error recorded for the given field, or nil when
// the field passed validation.
func fieldErr(t *testing.T, errs []FieldError, field string) error {
	t.Helper()
	for _, e := range errs {
		if e.Field == field {
			return e.Err
		}
	}
	return nil
}

func validForm(now time.Time) *GigForm {
	return &GigForm{
		Venue:   "The Basement",
		Date:    now.AddDate(0, 0, 7).Format("2006-01-02"),
		Time:    "19:30",
		GenreID: 2,
	}
}

func TestActionLabel(t *testing.T) {
	cases := []struct {
		name string
		id   uint64
		want string
	}{
		{"zero id means create", 0, "Create"},
		{"nonzero id means update", 1, "Update"},
		{"large id means update", 981274, "Update"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := &GigForm{ID: tc.id}
			if got := f.ActionLabel(); got != tc.want {
				t.Errorf("ActionLabel() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestIntent(t *testing.T) {
	if (&GigForm{ID: 0}).Intent() != IntentCreate {
		t.Errorf("Intent() with zero ID should be IntentCreate")
	}
	if (&GigForm{ID: 42}).Intent() != IntentUpdate {
		t.Errorf("Intent() with nonzero ID should be IntentUpdate")
	}
}

func TestValidateAcceptsCompleteForm(t *testing.T) {
	now := time.Now()
	if errs := validForm(now).Validate(now); len(errs) != 0 {
		t.Fatalf("Validate() = %v, want no errors", errs)
	}
}

func TestValidateRequiredFields(t *testing.T) {
	now := time.Now()

	t.Run("empty venue", func(t *testing.T) {
		f := validForm(now)
		f.Venue = ""
		errs := f.Validate(now)
		if err := fieldErr(t, errs, "venue"); !errors.Is(err, ErrRequired) {
			t.Errorf("venue error = %v, want ErrRequired", err)
		}
	})

	t.Run("whitespace venue", func(t *testing.T) {
		f := validForm(now)
		f.Venue = "   "
		errs := f.Validate(now)
		if err := fieldErr(t, errs, "venue"); !errors.Is(err, ErrRequired) {
			t.Errorf("venue error = %v, want ErrRequired", err)
		}
	})

	t.Run("missing date", func(t *testing.T) {
		f := validForm(now)
		f.Date = ""
		errs := f.Validate(now)
		if err := fieldErr(t, errs, "date"); !errors.Is(err, ErrRequired) {
			t.Errorf("date error = %v, want ErrRequired", err)
		}
	})

	t.Run("missing time", func(t *testing.T) {
		f := validForm(now)
		f.Time = ""
		errs := f.Validate(now)
		if err := fieldErr(t, errs, "time"); !errors.Is(err, ErrRequired) {
			t.Errorf("time error = %v, want ErrRequired", err)
		}
	})

	t.Run("unselected genre", func(t *testing.T) {
		f := validForm(now)
		f.GenreID = 0
		errs := f.Validate(now)
		if err := fieldErr(t, errs, "genre_id"); !errors.Is(err, ErrRequired) {
			t.Errorf("genre error = %v, want ErrRequired", err)
		}
	})

	t.Run("empty form reports every field in order", func(t *testing.T) {
		errs := (&GigForm{}).Validate(now)
		want := []string{"venue", "date", "time", "genre_id"}
		if len(errs) != len(want) {
			t.Fatalf("Validate() returned %d errors, want %d: %v", len(errs), len(want), errs)
		}
		for i, field := range want {
			if errs[i].Field != field {
				t.Errorf("errs[%d].Field = %q, want %q", i, errs[i].Field, field)
			}
		}
	})
}

func TestValidateDateRules(t *testing.T) {
	now := time.Now()

	t.Run("yesterday is rejected", func(t *testing.T) {
		f := validForm(now)
		f.Date = now.AddDate(0, 0, -1).Format("2006-01-02")
		errs := f.Validate(now)
		if err := fieldErr(t, errs, "date"); !errors.Is(err, ErrPastDate) {
			t.Errorf("date error = %v, want ErrPastDate", err)
		}
	})

	t.Run("today is valid even late in the day", func(t *testing.T) {
		// The past-date rule compares calendar dates only, so a gig
		// today passes even when validation runs at 23:59.
		late := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 0, 0, time.Local)
		f := validForm(late)
		f.Date = late.Format("2006-01-02")
		f.Time = "08:00"
		if errs := f.Validate(late); len(errs) != 0 {
			t.Errorf("Validate() = %v, want no errors for today's date", errs)
		}
	})

	t.Run("shapeless date fails the field check", func(t *testing.T) {
		f := validForm(now)
		f.Date = "30/02/2031"
		errs := f.Validate(now)
		if err := fieldErr(t, errs, "date"); !errors.Is(err, ErrParse) {
			t.Errorf("date error = %v, want ErrParse", err)
		}
	})

	t.Run("impossible but well-shaped date passes the field check", func(t *testing.T) {
		// Feb 30 looks like a date, so field validation lets it through;
		// only the combined parse rejects it.
		f := validForm(now)
		f.Date = "2031-02-30"
		if errs := f.Validate(now); len(errs) != 0 {
			t.Fatalf("Validate() = %v, want no field errors for 2031-02-30", errs)
		}
		if _, err := f.CombinedDateTime(); !errors.Is(err, ErrParse) {
			t.Errorf("CombinedDateTime() error = %v, want ErrParse", err)
		}
	})
}

func TestValidateTimeRules(t *testing.T) {
	now := time.Now()

	cases := []struct {
		name string
		time string
		ok   bool
	}{
		{"minute precision", "19:30", true},
		{"second precision", "19:30:45", true},
		{"midnight", "00:00", true},
		{"out of range", "25:61", false},
		{"garbage", "half past eight", false},
		{"bare hour", "19", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := validForm(now)
			f.Time = tc.time
			errs := f.Validate(now)
			err := fieldErr(t, errs, "time")
			if tc.ok && err != nil {
				t.Errorf("time %q rejected: %v", tc.time, err)
			}
			if !tc.ok && !errors.Is(err, ErrInvalidTime) {
				t.Errorf("time %q error = %v, want ErrInvalidTime", tc.time, err)
			}
		})
	}
}

func TestCombinedDateTime(t *testing.T) {
	t.Run("components survive the combine", func(t *testing.T) {
		f := &GigForm{Date: "2031-06-21", Time: "19:30"}
		got, err := f.CombinedDateTime()
		if err != nil {
			t.Fatalf("CombinedDateTime() error = %v", err)
		}
		if got.Format("2006-01-02") != f.Date {
			t.Errorf("date component = %s, want %s", got.Format("2006-01-02"), f.Date)
		}
		if got.Format("15:04") != f.Time {
			t.Errorf("time component = %s, want %s", got.Format("15:04"), f.Time)
		}
		if got.Location() != time.Local {
			t.Errorf("location = %v, want time.Local", got.Location())
		}
	})

	t.Run("seconds precision is honored", func(t *testing.T) {
		f := &GigForm{Date: "2031-06-21", Time: "19:30:45"}
		got, err := f.CombinedDateTime()
		if err != nil {
			t.Fatalf("CombinedDateTime() error = %v", err)
		}
		if got.Second() != 45 {
			t.Errorf("seconds = %d, want 45", got.Second())
		}
	})

	t.Run("parse failure is a distinct error kind", func(t *testing.T) {
		f := &GigForm{Date: "2031-02-30", Time: "19:30"}
		_, err := f.CombinedDateTime()
		if !errors.Is(err, ErrParse) {
			t.Fatalf("CombinedDateTime() error = %v, want ErrParse", err)
		}
		if errors.Is(err, ErrRequired) || errors.Is(err, ErrPastDate) || errors.Is(err, ErrInvalidTime) {
			t.Errorf("ErrParse must not match any field-level sentinel")
		}
		var fe *FieldError
		if !errors.As(err, &fe) {
			t.Fatalf("error %v is not a *FieldError", err)
		}
	})
}

func TestFromGigRoundTrip(t *testing.T) {
	genres := []model.Genre{{ID: 1, Name: "Rock"}, {ID: 2, Name: "Jazz"}}

	cases := []struct {
		name     string
		startsAt time.Time
	}{
		{"minute precision", time.Date(2031, 6, 21, 19, 30, 0, 0, time.Local)},
		{"second precision", time.Date(2031, 6, 21, 19, 30, 45, 0, time.Local)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g := &model.Gig{ID: 7, Venue: "The Basement", StartsAt: tc.startsAt, GenreID: 2}
			f := FromGig(g, genres)

			if f.ID != g.ID || f.Venue != g.Venue || f.GenreID != g.GenreID {
				t.Errorf("FromGig() copied fields wrong: %+v", f)
			}
			if f.ActionLabel() != "Update" {
				t.Errorf("ActionLabel() = %q, want Update for stored gig", f.ActionLabel())
			}
			if len(f.Genres) != len(genres) {
				t.Errorf("genre options = %d, want %d", len(f.Genres), len(genres))
			}

			got, err := f.CombinedDateTime()
			if err != nil {
				t.Fatalf("CombinedDateTime() error = %v", err)
			}
			if !got.Equal(tc.startsAt) {
				t.Errorf("round trip drifted: got %v, want %v", got, tc.startsAt)
			}
		})
	}
}
