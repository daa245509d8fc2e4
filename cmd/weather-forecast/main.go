package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/akosarev/weather-forecast/internal/api/http"
	"github.com/akosarev/weather-forecast/internal/cache"
	"github.com/akosarev/weather-forecast/internal/cities"
	"github.com/akosarev/weather-forecast/internal/config"
	"github.com/akosarev/weather-forecast/internal/events"
	"github.com/akosarev/weather-forecast/internal/forecast"
	"github.com/akosarev/weather-forecast/internal/logger"
	"github.com/akosarev/weather-forecast/internal/scheduler"
	"github.com/akosarev/weather-forecast/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.SetLevel(cfg.LogLevel)

	// Backing medium for the cache: bbolt when a data path is configured,
	// otherwise in-memory.
	var store cache.Store
	if cfg.DataPath != "" {
		bolt, err := storage.OpenBolt(cfg.DataPath)
		if err != nil {
			logger.Fatalf("failed to open data file: %v", err)
		}
		defer bolt.Close()
		store = bolt
	} else {
		store = storage.NewMemoryStore()
	}

	forecastCache := cache.New(store,
		cache.WithTTL(cfg.CacheTTL),
		cache.WithPrefix(cfg.CachePrefix),
	)

	// Shared HTTP client for outbound upstream calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}
	client := forecast.NewHTTPClient(httpClient, cfg.APIBaseURL, cfg.UpstreamRPS, cfg.UpstreamBurst)

	svc := forecast.NewService(forecastCache, client)

	// The bus carries city-list changes to whoever renders them; the
	// service itself only logs.
	bus := events.NewBus()
	bus.Subscribe(events.CityAdded, func(p events.Payload) {
		logger.Infof("city added: %s", p.City)
	})
	bus.Subscribe(events.CityRemoved, func(p events.Payload) {
		logger.Infof("city removed at index %d", p.Index)
	})

	list := cities.New(forecastCache, svc, bus)

	// Warm the default city when nothing is tracked yet.
	if cfg.DefaultCity != "" && len(list.All()) == 0 {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if svc.GetData(ctx, cfg.DefaultCity) == nil {
				logger.Errorf("failed to warm default city %s", cfg.DefaultCity)
			}
		}()
	}

	sched := scheduler.New(list, cfg.RefreshInterval, svc)
	if err := sched.Start(); err != nil {
		logger.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		AppName:               "weather-forecast",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	app.Use(fiberlogger.New())
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "weather-forecast",
		})
	})

	httpapi.RegisterRoutes(app, svc, list)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			logger.Errorf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Errorf("error during shutdown: %v", err)
	}
}
