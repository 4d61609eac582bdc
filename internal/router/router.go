package router // package router defines how HTTP routes are registered for the API

import (
    "github.com/labstack/echo/v4" // import the Echo web framework to handle routing

    "github.com/pgclosets/booking-api/internal/handler"    // import the handlers that implement business logic
    "github.com/pgclosets/booking-api/internal/middleware" // import middleware for admin authentication
)

// RegisterRoutes registers routes that require no authentication and no
// other middleware on the provided Echo instance.  Currently it exposes
// only a health check used by load balancers and monitoring systems.
func RegisterRoutes(e *echo.Echo) {
    e.GET("/healthz", handler.Health)
}

// RegisterBooking registers the public booking endpoints.  The rate
// limiter guards the creation endpoint only: availability reads are
// cheap and cacheable, while reservation attempts hit the transactional
// path.  The cache middleware wraps the availability read.
func RegisterBooking(e *echo.Echo, h *handler.BookingHandler, rateLimit, cache echo.MiddlewareFunc) {
    g := e.Group("/v1/bookings")
    g.GET("/availability", h.Availability, cache)
    g.POST("", h.Create, rateLimit)
}

// RegisterAdmin registers the back-office login and the protected
// admin endpoints.  Everything under /v1/admin requires a valid admin
// access token; the booking and blocked-date handlers assume the
// middleware has already rejected anonymous callers.
func RegisterAdmin(e *echo.Echo, a *handler.AuthHandler, b *handler.AdminBookingHandler, d *handler.AdminBlockedDateHandler, jwtSecret string) {
    // Login lives outside the protected group: it is how a session starts.
    e.POST("/v1/auth/login", a.Login)

    g := e.Group("/v1/admin")
    g.Use(middleware.AdminAuth(jwtSecret))

    // Booking back-office: list a day's schedule, inspect one booking,
    // and drive the one-directional status lifecycle.
    g.GET("/bookings", b.List)
    g.GET("/bookings/:id", b.Get)
    g.POST("/bookings/:id/confirm", b.Confirm)
    g.POST("/bookings/:id/cancel", b.Cancel)

    // Blocked-date registry.
    g.GET("/blocked-dates", d.List)
    g.POST("/blocked-dates", d.Create)
    g.DELETE("/blocked-dates/:date", d.Delete)
}
