package sweeper

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/dayminder/dayminder/internal/cleanup"
)

// Runner runs one cleanup pass. *cleanup.Engine satisfies it.
type Runner interface {
	Run(ctx context.Context) (cleanup.Result, error)
}

// Config controls polling cadence.
type Config struct {
	Interval time.Duration // sweep period; <= 0 disables the worker
}

// Worker runs the cleanup engine on a fixed period inside the service
// process, so one-time reminders are purged even when nobody lists.
type Worker struct {
	runner Runner
	log    zerolog.Logger
	cfg    Config

	lastOK atomic.Int64 // unix nanos of the last successful pass
}

// NewWorker constructs a Worker from dependencies.
func NewWorker(r Runner, cfg Config, log zerolog.Logger) *Worker {
	return &Worker{runner: r, log: log, cfg: cfg}
}

// Enabled reports whether Run will do anything.
func (w *Worker) Enabled() bool { return w.cfg.Interval > 0 }

// LastSuccess is the time of the last pass that committed or found nothing to do.
func (w *Worker) LastSuccess() time.Time {
	n := w.lastOK.Load()
	if n == 0 {
		return time.Time{}
	}
	return time.Unix(0, n)
}

// Run starts the polling loop until ctx is canceled.
func (w *Worker) Run(ctx context.Context) error {
	if !w.Enabled() {
		w.log.Info().Msg("sweeper disabled")
		<-ctx.Done()
		return ctx.Err()
	}
	w.log.Info().Dur("interval", w.cfg.Interval).Msg("sweeper starting")
	ticker := time.NewTicker(w.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("sweeper stopping")
			return ctx.Err()
		case <-ticker.C:
			if err := w.processOnce(ctx); err != nil {
				// log and continue; the next tick is the retry
				w.log.Error().Stack().Err(err).
					Time("last_success", w.LastSuccess()).
					Msg("sweeper pass failed")
			}
		}
	}
}

func (w *Worker) processOnce(ctx context.Context) error {
	res, err := w.runner.Run(ctx)
	if err != nil {
		return err
	}
	w.lastOK.Store(time.Now().UnixNano())
	if res.Changed() {
		w.log.Info().
			Int("scanned", res.Scanned).
			Int("purged", res.Purged).
			Int("completed", res.Completed).
			Msg("sweeper pass applied changes")
	}
	return nil
}
