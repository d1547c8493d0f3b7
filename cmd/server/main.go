package main // Entry point package

import (
	"context" // startup timeouts
	"log"     // Logging library
	"time"

	"github.com/joho/godotenv"    // .env loader for local development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/iliyamo/condo-booking/internal/config"     // Internal config loader
	"github.com/iliyamo/condo-booking/internal/database"   // MySQL pool constructor
	"github.com/iliyamo/condo-booking/internal/handler"    // HTTP handlers
	"github.com/iliyamo/condo-booking/internal/notify"     // Notification delivery
	"github.com/iliyamo/condo-booking/internal/queue"      // Event publisher and consumer
	"github.com/iliyamo/condo-booking/internal/repository" // Data access layer
	"github.com/iliyamo/condo-booking/internal/router"     // Internal router setup
	"github.com/iliyamo/condo-booking/internal/service"    // Booking admission service
)

func main() {
	_ = godotenv.Load() // load .env when present; real env vars win

	cfg := config.Load() // Load environment config

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}

	// Redis backs admin sessions and rate limiting; without it sessions
	// fall back to process memory and the limiter disables itself.
	rdb := config.NewRedisClient()
	var sessions repository.SessionStore
	if rdb != nil {
		sessions = repository.NewRedisSessionStore(rdb)
	} else {
		log.Printf("redis unavailable, using in-memory session store")
		sessions = repository.NewMemorySessionStore()
	}

	bookingRepo := repository.NewBookingRepo(db)
	priceRepo := repository.NewPriceRepo(db)
	userRepo := repository.NewUserRepo(db)

	// Seed the admin account when ADMIN_USERNAME/ADMIN_PASSWORD are set;
	// an existing account is left untouched.
	seedCtx, cancelSeed := context.WithTimeout(context.Background(), 10*time.Second)
	if err := service.SeedAdmin(seedCtx, userRepo, cfg.AdminUsername, cfg.AdminPassword, cfg.BcryptCost); err != nil {
		cancelSeed()
		log.Fatalf("admin seed: %v", err)
	}
	cancelSeed()

	bookingSvc := service.NewBookingService(bookingRepo, queue.NewPublisher())

	// The consumer turns booking.created events into guest and admin
	// notifications. It reconnects forever in the background.
	go func() {
		if err := queue.StartBookingConsumer(notify.NewLog(), cfg.AdminEmail); err != nil {
			log.Printf("booking-consumer stopped: %v", err)
		}
	}()

	e := echo.New() // Create Echo instance
	router.RegisterRoutes(e, cfg,
		handler.NewBookingHandler(bookingSvc),
		handler.NewPriceHandler(priceRepo),
		handler.NewUploadHandler(cfg.UploadDir),
		handler.NewAuthHandler(cfg, userRepo, sessions),
		sessions,
		rdb,
	)

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
