// Package main provides the Stafflow designer API server.
package main

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/gofiber/fiber/v3/middleware/logger"

	"github.com/stafflow/stafflow/pkg/catalog"
	"github.com/stafflow/stafflow/pkg/simulation"
	"github.com/stafflow/stafflow/pkg/store"
	"github.com/stafflow/stafflow/pkg/web"
)

// API bundles the designer backend: one in-memory graph store, the automation
// catalog, and the simulation engine behind a Fiber app.
type API struct {
	logger   *slog.Logger
	store    *store.Store
	catalog  catalog.Provider
	engine   *simulation.Engine
	validate *validator.Validate
}

// Config carries the tunable latencies of the mocked boundaries.
type Config struct {
	CatalogLatency time.Duration
	StepDelay      time.Duration
	DispatchDelay  time.Duration
}

func NewAPI(logger *slog.Logger, config Config) *API {
	return &API{
		logger: logger,
		store:  store.New(),
		catalog: catalog.NewStaticProvider(
			catalog.WithLatency(config.CatalogLatency),
		),
		engine: simulation.NewEngine(
			simulation.WithStepDelay(config.StepDelay),
			simulation.WithDispatchDelay(config.DispatchDelay),
			simulation.WithLogger(logger.With("module", "simulation")),
		),
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (a *API) App() *fiber.App {
	handlers := web.NewAPIHandlers(a.store, a.catalog, a.engine, a.validate, a.logger)

	app := fiber.New()
	app.Use(cors.New())
	app.Use(logger.New(logger.Config{
		DisableColors: true,
	}))

	app.Get(healthcheck.DefaultLivenessEndpoint, healthcheck.NewHealthChecker())
	app.Get(healthcheck.DefaultReadinessEndpoint, healthcheck.NewHealthChecker())

	app.Get("/", func(c fiber.Ctx) error {
		return c.SendString("Stafflow API")
	})

	handlers.Register(app)

	return app
}

func (a *API) Start(port int) error {
	app := a.App()

	return app.Listen(":" + strconv.Itoa(port))
}
