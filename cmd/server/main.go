package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv"    // Load .env files into the environment
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/iliyamo/library-seat-availability/internal/availability" // Availability engine (hour window)
	"github.com/iliyamo/library-seat-availability/internal/config"       // Internal config loader
	"github.com/iliyamo/library-seat-availability/internal/database"     // MySQL connection pool
	"github.com/iliyamo/library-seat-availability/internal/feed"         // Upstream reservation feed client
	"github.com/iliyamo/library-seat-availability/internal/handler"      // HTTP handlers
	"github.com/iliyamo/library-seat-availability/internal/middleware"   // Identity, cache and rate-limit middleware
	"github.com/iliyamo/library-seat-availability/internal/queue"        // RabbitMQ consumer for analytics events
	"github.com/iliyamo/library-seat-availability/internal/repository"   // Study-space catalog repository
	"github.com/iliyamo/library-seat-availability/internal/router"       // Route registration
	"github.com/iliyamo/library-seat-availability/internal/selection"    // Per-session selection store
)

func main() {
	// Load a .env file when present; in production the variables come from
	// the environment directly and the missing file is not an error.
	if err := godotenv.Load(); err != nil {
		log.Printf(".env not loaded: %v", err)
	}

	cfg := config.Load() // Load environment config

	// Open the catalog database.  The catalog is required: without it there
	// are no study spaces to query availability for.
	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	spaces := repository.NewSpaceRepo(db)
	feedClient := feed.NewClient(cfg.FeedBaseURL)
	selections := selection.NewStore()
	window := availability.HourWindow{First: cfg.GridFirst, Last: cfg.GridLast}

	spaceHandler := handler.NewSpaceHandler(spaces)
	availabilityHandler := handler.NewAvailabilityHandler(spaces, feedClient, selections, window)
	selectionHandler := handler.NewSelectionHandler(selections)

	// Redis backs both the response cache and the rate limiter.  Either can
	// be disabled independently via its config; a nil-safe middleware list
	// keeps the wiring below uniform.
	rdb := config.NewRedisClient()
	cacheCfg := config.LoadCacheConfig()
	rateCfg := config.LoadRateLimitConfig()

	var grid []echo.MiddlewareFunc
	grid = append(grid, middleware.Identity())
	if rateCfg.Enabled {
		grid = append(grid, middleware.NewTokenBucket(rateCfg, rdb))
	}
	if cacheCfg.Enabled {
		grid = append(grid, middleware.NewRedisCache(cacheCfg, rdb))
	}

	// The analytics consumer runs for the lifetime of the process and
	// reconnects on broker failures; a broken broker never takes the API
	// down.
	go func() {
		if err := queue.StartAvailabilityConsumer(); err != nil {
			log.Printf("availability consumer stopped: %v", err)
		}
	}()

	e := echo.New() // Create Echo instance
	router.RegisterRoutes(e)
	router.RegisterCatalog(e, spaceHandler, middleware.Identity())
	router.RegisterAvailability(e, availabilityHandler, grid...)
	router.RegisterSelection(e, selectionHandler)

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
