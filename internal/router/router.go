package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/iliyamo/library-seat-availability/internal/handler"    // import the handlers that implement business logic
	"github.com/iliyamo/library-seat-availability/internal/middleware" // import middleware for identity, caching and rate limiting
)

// RegisterRoutes registers routes that carry no per-user state on the
// provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Map the GET request at path "/healthz" to the Health handler.  This
	// endpoint can be used by load balancers or monitoring systems to verify
	// that the service is up and running.
	e.GET("/healthz", handler.Health)
}

// RegisterCatalog registers the study-space browse endpoints.  These read
// only from the catalog database, never from the reservation feed.
func RegisterCatalog(e *echo.Echo, s *handler.SpaceHandler, mw ...echo.MiddlewareFunc) {
	g := e.Group("/v1", mw...)
	// List every study space grouped by building.
	g.GET("/spaces", s.GetSpaces)
	// Details of one study space including its seat list.
	g.GET("/spaces/:id", s.GetSpace)
	// The dates a user may currently query, today through the end of the
	// reservation horizon.
	g.GET("/dates", s.GetDates)
}

// RegisterAvailability registers the availability grid endpoint.  The
// route is grouped separately from the catalog because it hits the
// external feed and therefore gets the rate limiter even when caching is
// disabled.
func RegisterAvailability(e *echo.Echo, a *handler.AvailabilityHandler, mw ...echo.MiddlewareFunc) {
	g := e.Group("/v1", mw...)
	g.GET("/spaces/:id/availability", a.GetAvailability)
}

// RegisterSelection registers the slot-selection endpoints.  All of them
// require the Identity middleware so a session can be resolved, and none
// of them are cached: selection state is mutable per request.
func RegisterSelection(e *echo.Echo, s *handler.SelectionHandler) {
	g := e.Group("/v1/selection", middleware.Identity())
	// Toggle one seat/hour cell, honouring the hour-blocking rule.
	g.POST("/click", s.Click)
	// Deselect a whole hour across every seat, as a click on the hour
	// header does in the UI.
	g.POST("/hour/:hour/clear", s.ClearHour)
	// The current selection as coalesced ranges with booking links.
	g.GET("", s.Get)
	// Drop the whole selection.
	g.DELETE("", s.Clear)
}
