package main // Entry point package

import (
    "log" // Logging library

    "github.com/joho/godotenv"    // Loads .env files in development
    "github.com/labstack/echo/v4" // Echo web framework

    "github.com/pgclosets/booking-api/internal/config"
    "github.com/pgclosets/booking-api/internal/database"
    "github.com/pgclosets/booking-api/internal/handler"
    "github.com/pgclosets/booking-api/internal/limiter"
    "github.com/pgclosets/booking-api/internal/middleware"
    "github.com/pgclosets/booking-api/internal/queue"
    "github.com/pgclosets/booking-api/internal/repository"
    "github.com/pgclosets/booking-api/internal/router"
    "github.com/pgclosets/booking-api/internal/service"
)

func main() {
    // Load .env if present; real deployments set the environment directly.
    _ = godotenv.Load()

    cfg := config.Load() // Load environment config

    db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
    if err != nil {
        log.Fatalf("database: %v", err)
    }
    defer db.Close()

    // Redis is optional: when unavailable the response cache is disabled
    // and rate limiting falls back to the in-memory sliding window.
    rdb := config.NewRedisClient()
    if rdb == nil {
        log.Printf("redis unavailable; using in-memory rate limiting, response cache disabled")
    }

    bookingRepo := repository.NewBookingRepo(db)
    blockedRepo := repository.NewBlockedDateRepo(db)
    adminRepo := repository.NewAdminUserRepo(db)

    bookingSvc := service.NewBookingService(bookingRepo, blockedRepo, queue.PublishBookingCreated)

    bookingHandler := handler.NewBookingHandler(bookingSvc)
    authHandler := handler.NewAuthHandler(adminRepo, cfg.JWTSecret, cfg.AccessTTLMin)
    adminBookings := handler.NewAdminBookingHandler(bookingRepo)
    adminDates := handler.NewAdminBlockedDateHandler(blockedRepo)

    rlCfg := config.LoadRateLimitConfig()
    fallback := limiter.NewMemoryWindow(rlCfg.Capacity, rlCfg.Window)
    rateLimit := middleware.NewRateLimiter(rlCfg, rdb, fallback)
    cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

    // Background consumer appending booking.created events to the audit
    // log.  It reconnects on broker failures and never stops the server.
    go func() {
        if err := queue.StartBookingConsumer(); err != nil {
            log.Printf("booking consumer stopped: %v", err)
        }
    }()

    e := echo.New() // Create Echo instance
    router.RegisterRoutes(e)
    router.RegisterBooking(e, bookingHandler, rateLimit, cache)
    router.RegisterAdmin(e, authHandler, adminBookings, adminDates, cfg.JWTSecret)

    addr := ":" + cfg.Port                                // Address string with port
    log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

    if err := e.Start(addr); err != nil { // Start HTTP server
        log.Fatal(err) // Log and exit if server fails
    }
}
