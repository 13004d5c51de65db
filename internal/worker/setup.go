// Package worker provides initialization and setup utilities for Temporal workers.
package worker

import (
	"fmt"
	"log/slog"

	"go.temporal.io/sdk/client"
	tlog "go.temporal.io/sdk/log"
	sdkworker "go.temporal.io/sdk/worker"

	"github.com/ahrav/go-gradebook/internal/config"
	"github.com/ahrav/go-gradebook/pkg/events"
)

// Dial connects to the Temporal frontend described by cfg. The client logs
// through logger, or slog.Default() when logger is nil.
func Dial(cfg config.TemporalConfig, logger *slog.Logger) (client.Client, error) {
	if logger == nil {
		logger = slog.Default()
	}

	c, err := client.Dial(client.Options{
		HostPort:  cfg.HostPort,
		Namespace: cfg.Namespace,
		Logger:    tlog.NewStructuredLogger(logger.With("component", "temporal")),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to temporal at %s: %w", cfg.HostPort, err)
	}
	return c, nil
}

// New creates a worker on cfg.TaskQueue with every workflow and activity
// registered. Events are written to the log.
func New(c client.Client, cfg config.TemporalConfig, logger *slog.Logger) sdkworker.Worker {
	w := sdkworker.New(c, cfg.TaskQueue, sdkworker.Options{})
	RegisterAll(w, events.NewSlogEventSink(logger))
	return w
}
