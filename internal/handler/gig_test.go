package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"gigbook/internal/repository"
)

// The routing-consistency and field-validation rejections all happen
// before any repository call, so these tests can run the handlers with
// repositories that carry no live database connection.
func testGigHandler() *GigHandler {
	return NewGigHandler(repository.NewGigRepo(nil), repository.NewGenreRepo(nil))
}

func gigRequest(t *testing.T, method, target, body string, params map[string]string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", uint64(1))
	for k, v := range params {
		c.SetParamNames(k)
		c.SetParamValues(v)
	}
	return c, rec
}

func TestCreateGigRejectsNonzeroID(t *testing.T) {
	h := testGigHandler()
	body := `{"id":5,"venue":"The Basement","date":"2031-06-15","time":"20:00","genre_id":2}`
	c, rec := gigRequest(t, http.MethodPost, "/v1/gigs", body, nil)

	if err := h.CreateGig(c); err != nil {
		t.Fatalf("CreateGig() error = %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestCreateGigReportsFieldErrors(t *testing.T) {
	h := testGigHandler()
	c, rec := gigRequest(t, http.MethodPost, "/v1/gigs", `{}`, nil)

	if err := h.CreateGig(c); err != nil {
		t.Fatalf("CreateGig() error = %v", err)
	}
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}

	var resp struct {
		Errors map[string]string `json:"errors"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	for _, field := range []string{"venue", "date", "time", "genre_id"} {
		if _, ok := resp.Errors[field]; !ok {
			t.Errorf("errors map missing %q: %v", field, resp.Errors)
		}
	}
}

func TestUpdateGigRejectsMismatchedBodyID(t *testing.T) {
	h := testGigHandler()
	body := `{"id":8,"venue":"The Basement","date":"2031-06-15","time":"20:00","genre_id":2}`
	c, rec := gigRequest(t, http.MethodPut, "/v1/gigs/7", body, map[string]string{"id": "7"})

	if err := h.UpdateGig(c); err != nil {
		t.Fatalf("UpdateGig() error = %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestUpdateGigRejectsBadPathID(t *testing.T) {
	h := testGigHandler()

	for _, id := range []string{"abc", "0"} {
		t.Run(id, func(t *testing.T) {
			c, rec := gigRequest(t, http.MethodPut, "/v1/gigs/"+id, `{}`, map[string]string{"id": id})
			if err := h.UpdateGig(c); err != nil {
				t.Fatalf("UpdateGig() error = %v", err)
			}
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}
