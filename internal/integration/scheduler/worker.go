// Package scheduler runs the recurring transaction job on an interval.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/finance-tracker/recurring/internal/application/adapter"
	"github.com/finance-tracker/recurring/internal/application/usecase/recurring"
)

// DueProcessor materializes due recurring definitions.
type DueProcessor interface {
	Execute(ctx context.Context, input recurring.ProcessDueInput) (*recurring.ProcessDueOutput, error)
}

// Worker triggers a recurring run on every tick.
type Worker struct {
	processor    DueProcessor
	clock        adapter.Clock
	pollInterval time.Duration
}

// WorkerConfig holds configuration for the scheduler worker.
type WorkerConfig struct {
	PollInterval time.Duration
}

// DefaultWorkerConfig returns the default worker configuration.
func DefaultWorkerConfig() WorkerConfig {
	return WorkerConfig{
		PollInterval: time.Hour,
	}
}

// NewWorker creates a new scheduler worker.
func NewWorker(processor DueProcessor, clock adapter.Clock, config WorkerConfig) *Worker {
	if config.PollInterval <= 0 {
		config.PollInterval = DefaultWorkerConfig().PollInterval
	}
	return &Worker{
		processor:    processor,
		clock:        clock,
		pollInterval: config.PollInterval,
	}
}

// Start begins the worker loop. It blocks until the context is cancelled.
func (w *Worker) Start(ctx context.Context) {
	slog.Info("Recurring scheduler started", "poll_interval", w.pollInterval)

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	// Run immediately on start, then on ticker
	w.run(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Recurring scheduler shutting down")
			return
		case <-ticker.C:
			w.run(ctx)
		}
	}
}

func (w *Worker) run(ctx context.Context) {
	// The use case logs and counts its own failures.
	if _, err := w.processor.Execute(ctx, recurring.ProcessDueInput{EvaluationDate: w.clock.Now()}); err != nil {
		slog.Warn("Recurring run skipped, will retry on next tick", "error", err)
	}
}

// ProcessNow runs the job once immediately.
func (w *Worker) ProcessNow(ctx context.Context) {
	w.run(ctx)
}
