package router // package router defines how HTTP routes are registered for the API

import (
    "path/filepath"

    "github.com/labstack/echo/v4" // import the Echo web framework to handle routing
    "github.com/redis/go-redis/v9"

    "github.com/iliyamo/condo-booking/internal/config"
    "github.com/iliyamo/condo-booking/internal/handler"
    "github.com/iliyamo/condo-booking/internal/middleware"
    "github.com/iliyamo/condo-booking/internal/repository"
)

// RegisterRoutes wires every route of the booking API onto the provided
// Echo instance: the public reads, the key-or-session write endpoints,
// the session-only admin endpoints and the static site.  rdb may be nil;
// rate limiting then degrades to a pass-through.
func RegisterRoutes(
    e *echo.Echo,
    cfg config.Config,
    bookings *handler.BookingHandler,
    prices *handler.PriceHandler,
    uploads *handler.UploadHandler,
    auth *handler.AuthHandler,
    sessions repository.SessionStore,
    rdb *redis.Client,
) {
    // Health check for load balancers and monitoring.
    e.GET("/healthz", handler.Health)

    // Public reads: anyone may list bookings and prices.
    e.GET("/api/bookings", bookings.List)
    e.GET("/api/prices", prices.List)

    // Browser-facing login form and session establishment.
    e.GET("/login", func(c echo.Context) error {
        return c.File(filepath.Join(cfg.PublicDir, "login.html"))
    })
    e.POST("/login", auth.Login)

    // Write endpoints accept either the pre-shared API key or a live
    // admin session, and sit behind the redis token bucket.  The writer
    // guard runs first so the limiter can key on the resolved admin user.
    limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
    writer := middleware.RequireWriter(cfg.APIKey, cfg.SessionSecret, sessions)
    e.POST("/api/bookings", bookings.Create, writer, limiter)
    e.POST("/api/prices", prices.Set, writer, limiter)

    // Admin-only endpoints require a live session; an API key is not
    // sufficient here.
    admin := middleware.AdminSession(cfg.SessionSecret, sessions)
    e.POST("/api/upload", uploads.Upload, admin)
    e.POST("/logout", auth.Logout, admin)
    e.GET("/admin", func(c echo.Context) error {
        return c.File(filepath.Join(cfg.PublicDir, "admin.html"))
    }, admin)

    // Static assets: the public site at the root, uploaded images under
    // /uploads.
    e.Static("/", cfg.PublicDir)
    e.Static("/uploads", cfg.UploadDir)
}
