package export

import (
	"context"
	"log/slog"
	"time"

	"lyricdrop/internal/logging"
	"lyricdrop/internal/queue"
)

const defaultPollInterval = 2 * time.Second

// JobBurner renders a single export job.
type JobBurner interface {
	Burn(ctx context.Context, job *queue.Job) error
}

// Worker drains the export job queue, burning one job at a time.
type Worker struct {
	store    *queue.Store
	burner   JobBurner
	logger   *slog.Logger
	interval time.Duration
}

// NewWorker wires a worker to the job store and burner.
func NewWorker(store *queue.Store, burner JobBurner, logger *slog.Logger) *Worker {
	return &Worker{
		store:    store,
		burner:   burner,
		logger:   logging.NewComponentLogger(logger, "export-worker"),
		interval: defaultPollInterval,
	}
}

// Run polls for pending jobs until the context is cancelled. Jobs are
// processed strictly in enqueue order.
func (w *Worker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		w.drain(ctx)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (w *Worker) drain(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}
		job, err := w.store.NextPending(ctx)
		if err != nil {
			w.logger.Error("claim pending job", logging.Error(err))
			return
		}
		if job == nil {
			return
		}
		w.process(ctx, job)
	}
}

func (w *Worker) process(ctx context.Context, job *queue.Job) {
	started := time.Now()
	err := w.burner.Burn(ctx, job)
	if err != nil {
		job.Status = queue.StatusFailed
		job.ErrorMessage = err.Error()
		w.logger.Error("burn failed",
			logging.Int64(logging.FieldJobID, job.ID),
			logging.Error(err),
		)
	} else {
		job.Status = queue.StatusCompleted
		job.ErrorMessage = ""
		w.logger.Info("burn completed",
			logging.Int64(logging.FieldJobID, job.ID),
			logging.String("output", job.OutputPath),
			logging.Duration("elapsed", time.Since(started)),
		)
	}

	if updateErr := w.store.Update(ctx, job); updateErr != nil {
		w.logger.Error("persist job result",
			logging.Int64(logging.FieldJobID, job.ID),
			logging.Error(updateErr),
		)
	}
}
