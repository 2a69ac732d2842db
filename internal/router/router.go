package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/iliyamo/event-pass-market/internal/handler"    // import the handlers that implement business logic
	"github.com/iliyamo/event-pass-market/internal/middleware" // import middleware for JWT authentication and role enforcement
)

// RegisterRoutes registers routes that do not require authentication on
// the provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// The health endpoint can be used by load balancers or monitoring
	// systems to verify that the service is up and running.
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication-related routes and applies
// the necessary middleware.  Unauthenticated operations live under
// /v1/auth, while protected endpoints live under /v1.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	// Operations that do not require an existing session: register,
	// login, refresh.  Each handler generates or exchanges tokens.
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	// Logout does not require JWT authentication: it accepts either a
	// bearer token (revoke all sessions) or a refresh_token in the body
	// (revoke one session).
	g.POST("/logout", a.Logout)

	// Routes requiring a valid access token live under /v1.
	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole("USER"))
	auth.GET("/me", a.Me)
}

// RegisterPublic registers the unauthenticated browse/search endpoints.
// The optional cache middleware (Redis response cache) is applied to
// the listing reads; pass nil wrappers to disable caching.
func RegisterPublic(e *echo.Echo, l *handler.ListingHandler, cache echo.MiddlewareFunc) {
	mws := []echo.MiddlewareFunc{}
	if cache != nil {
		mws = append(mws, cache)
	}
	// Full read of all available listings, ranked. Never cached: every
	// full fetch must hit the store and rebuild the autocomplete index.
	e.GET("/v1/listings", l.GetListings)
	// Filtered search (city, pass_type, date, q), ranked.
	e.GET("/v1/listings/search", l.SearchListings, mws...)
	// Event-name autocomplete served from the in-memory prefix index.
	// Never cached: the index is already memory-fast and rebuilds must
	// be visible immediately.
	e.GET("/v1/listings/suggest", l.Suggest)
	// Single listing by id (seller contact withheld).
	e.GET("/v1/listings/:id", l.GetListing, mws...)
}

// RegisterListings registers the authenticated listing mutations:
// create, boost, mark sold and contact unlock.
func RegisterListings(e *echo.Echo, l *handler.ListingHandler, jwtSecret string) {
	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole("USER"))

	auth.POST("/listings", l.CreateListing)
	auth.POST("/listings/:id/boost", l.Boost)
	auth.POST("/listings/:id/sold", l.MarkSold)
	auth.POST("/listings/:id/unlock", l.Unlock)
}
