package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/taskflow/taskflow-api/internal/logger"
	"github.com/taskflow/taskflow-api/internal/services"
)

// ArchiveWorker periodically sweeps completed, past-deadline tasks into the
// archive. The HTTP endpoint triggers the same sweep on demand; the worker
// just keeps the archive current without a client asking.
type ArchiveWorker struct {
	tasks    *services.TaskService
	interval time.Duration
}

func NewArchiveWorker(tasks *services.TaskService, interval time.Duration) *ArchiveWorker {
	return &ArchiveWorker{
		tasks:    tasks,
		interval: interval,
	}
}

// Start runs the sweep loop until the context is cancelled.
func (w *ArchiveWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	logger.Info("archive worker started", zap.Duration("interval", w.interval))
	for {
		select {
		case <-ticker.C:
			w.sweep(ctx)
		case <-ctx.Done():
			logger.Info("archive worker stopping")
			return
		}
	}
}

func (w *ArchiveWorker) sweep(ctx context.Context) {
	start := time.Now()

	result, err := w.tasks.ArchiveCompletedPastDeadline(ctx, start)
	if err != nil {
		logger.Error("archive sweep failed", err)
		return
	}

	logger.Info("archive sweep finished",
		zap.Int("archived", result.Archived),
		zap.Int("failures", len(result.SecondaryFailures)),
		zap.Duration("took", time.Since(start)))
}
