package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"gigbook/internal/handler"
	"gigbook/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication on
// the provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Used by load balancers or monitoring systems to verify that the
	// service is up and running.
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication-related routes and applies
// the necessary middleware.  Unauthenticated operations live under
// /v1/auth, while protected endpoints live under /v1.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	// Operations that do not require an existing session.
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	// Refresh rotates the refresh token and issues a new pair.
	g.POST("/refresh", a.Refresh)
	// Logout accepts a JSON body containing a `refresh_token` and
	// invalidates that token; no JWT is required.
	g.POST("/logout", a.Logout)

	// Routes that require a valid access token.
	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole("ORGANIZER", "FAN"))
	auth.GET("/me", a.Me)
}

// RegisterGigs registers the organizer-facing gig management routes.
// All of them require a valid access token with the ORGANIZER role.
// The create/update split must stay consistent with form intent: the
// POST route only accepts forms without an ID, the PUT route derives
// the form's ID from the path.
func RegisterGigs(e *echo.Echo, h *handler.GigHandler, jwtSecret string) {
	g := e.Group("/v1/gigs")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole("ORGANIZER"))

	// Form endpoints feed the client everything it needs to render the
	// gig form: field values, genre options and the action label.
	g.GET("/form", h.NewGigForm)
	g.GET("/:id/form", h.EditGigForm)

	g.POST("", h.CreateGig)
	g.GET("", h.ListMyGigs)
	g.GET("/:id", h.GetGig)
	g.PUT("/:id", h.UpdateGig)
	g.DELETE("/:id", h.DeleteGig)
}

// RegisterPublic registers unauthenticated browse endpoints on the
// provided Echo instance.  These routes do not apply any JWT or role
// middleware and are intended for guest users.  The extra middleware
// (typically the Redis response cache) applies to browse routes only.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, mw ...echo.MiddlewareFunc) {
	// Expose upcoming gigs to guests
	e.GET("/v1/browse/gigs", p.ListUpcomingGigs, mw...)
	// Gig details by id
	e.GET("/v1/browse/gigs/:id", p.GetPublicGig, mw...)
	// The genre catalogue, in the order forms present it
	e.GET("/v1/genres", p.ListGenres, mw...)
}
