package main

import (
	"context"
	"os"

	cli "github.com/urfave/cli/v3"

	"github.com/stafflow/stafflow/pkg/catalog"
	"github.com/stafflow/stafflow/pkg/log"
	"github.com/stafflow/stafflow/pkg/otelhelper"
	"github.com/stafflow/stafflow/pkg/simulation"
)

const defaultPort = 8910

func main() {
	logger := log.WithModule("api")

	cmd := &cli.Command{
		Name:                  "stafflow-api",
		Usage:                 "Design, validate, and simulate HR workflows",
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port to run the API server on",
				Value:   defaultPort,
				Sources: cli.EnvVars("PORT"),
			},
			&cli.DurationFlag{
				Name:    "catalog-latency",
				Usage:   "Artificial latency of the automation catalog fetch",
				Value:   catalog.DefaultLatency,
				Sources: cli.EnvVars("CATALOG_LATENCY"),
			},
			&cli.DurationFlag{
				Name:    "step-delay",
				Usage:   "Artificial per-node latency during simulation",
				Value:   simulation.DefaultStepDelay,
				Sources: cli.EnvVars("STEP_DELAY"),
			},
			&cli.DurationFlag{
				Name:    "dispatch-delay",
				Usage:   "Artificial latency before a simulation starts",
				Value:   simulation.DefaultDispatchDelay,
				Sources: cli.EnvVars("DISPATCH_DELAY"),
			},
			&cli.BoolFlag{
				Name:    "tracing",
				Usage:   "Export OTLP traces for API and simulation spans",
				Sources: cli.EnvVars("TRACING_ENABLED"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Value:   "info",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			log.Setup(command.String("log-level"))

			logger.InfoContext(ctx, "Initializing Stafflow API")

			if command.Bool("tracing") {
				tracerProvider, err := otelhelper.InitTracer(ctx, "stafflow-api")
				if err != nil {
					return err
				}

				defer func() {
					if err := tracerProvider.Shutdown(context.Background()); err != nil {
						logger.Error("Failed to shutdown tracer provider", "error", err)
					}
				}()
			}

			api := NewAPI(logger, Config{
				CatalogLatency: command.Duration("catalog-latency"),
				StepDelay:      command.Duration("step-delay"),
				DispatchDelay:  command.Duration("dispatch-delay"),
			})

			err := api.Start(command.Int("port"))
			if err != nil {
				logger.ErrorContext(ctx, "Failed to start API server", "error", err)
			}

			return err
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		logger.Error("Command failed", "error", err)
		os.Exit(1)
	}
}
