package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"gigbook/internal/utils"
)

const testSecret = "unit-test-secret"

func doRequest(t *testing.T, mw echo.MiddlewareFunc, authHeader string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/gigs", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := mw(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return rec
}

func TestJWTAuth(t *testing.T) {
	mw := JWTAuth(testSecret)

	t.Run("missing header", func(t *testing.T) {
		rec := doRequest(t, mw, "")
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("malformed token", func(t *testing.T) {
		rec := doRequest(t, mw, "Bearer not-a-jwt")
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("wrong secret", func(t *testing.T) {
		at, err := utils.NewAccessToken("other-secret", 1, "ORGANIZER", 5)
		if err != nil {
			t.Fatalf("NewAccessToken() error = %v", err)
		}
		rec := doRequest(t, mw, "Bearer "+at.Token)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("valid token passes claims through", func(t *testing.T) {
		at, err := utils.NewAccessToken(testSecret, 7, "ORGANIZER", 5)
		if err != nil {
			t.Fatalf("NewAccessToken() error = %v", err)
		}

		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/v1/gigs", nil)
		req.Header.Set("Authorization", "Bearer "+at.Token)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		handler := mw(func(c echo.Context) error {
			if role, _ := c.Get("role").(string); role != "ORGANIZER" {
				t.Errorf("role claim = %v, want ORGANIZER", c.Get("role"))
			}
			if c.Get("user_id") == nil {
				t.Error("user_id claim missing from context")
			}
			return c.String(http.StatusOK, "ok")
		})
		if err := handler(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", rec.Code)
		}
	})
}

func TestRequireRole(t *testing.T) {
	e := echo.New()
	mw := RequireRole("ORGANIZER")

	run := func(role interface{}) int {
		req := httptest.NewRequest(http.MethodPost, "/v1/gigs", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		if role != nil {
			c.Set("role", role)
		}
		handler := mw(func(c echo.Context) error {
			return c.String(http.StatusOK, "ok")
		})
		if err := handler(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		return rec.Code
	}

	if code := run("ORGANIZER"); code != http.StatusOK {
		t.Errorf("organizer status = %d, want 200", code)
	}
	if code := run("FAN"); code != http.StatusForbidden {
		t.Errorf("fan status = %d, want 403", code)
	}
	if code := run(nil); code != http.StatusForbidden {
		t.Errorf("missing role status = %d, want 403", code)
	}
}
