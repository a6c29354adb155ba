// Package cleanup applies the reminder lifecycle rules to the whole store.
//
// A pass purges one-time reminders left over from a previous calendar day and
// marks every open reminder whose time of day has passed as completed. All
// writes of a pass are committed as one batch.
package cleanup

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/dayminder/dayminder/internal/model"
	"github.com/dayminder/dayminder/internal/store"
	"github.com/dayminder/dayminder/internal/timepolicy"
)

// Result summarizes one pass.
type Result struct {
	Scanned   int `json:"scanned"`
	Purged    int `json:"purged"`
	Completed int `json:"completed"`
}

// Changed reports whether the pass wrote anything.
func (r Result) Changed() bool { return r.Purged+r.Completed > 0 }

// Engine runs cleanup passes against a store.
type Engine struct {
	store store.Store
	log   zerolog.Logger
	now   func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the wall clock. The location of the returned time
// decides which calendar day "today" is.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// New constructs an Engine over s.
func New(s store.Store, log zerolog.Logger, opts ...Option) *Engine {
	e := &Engine{store: s, log: log, now: time.Now}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Run performs one pass. It is idempotent: a second pass with no store
// changes in between writes nothing. Errors are returned as-is to the caller;
// nothing is retried.
func (e *Engine) Run(ctx context.Context) (Result, error) {
	var res Result
	now := e.now()

	snaps, err := e.store.List(ctx, model.RemindersCollection, store.Query{})
	if err != nil {
		runsTotal.WithLabelValues("error").Inc()
		return res, fmt.Errorf("cleanup: list reminders: %w", err)
	}
	res.Scanned = len(snaps)

	b := e.store.Batch()
	for _, snap := range snaps {
		r, err := model.DecodeReminder(snap.ID, snap.Data, now.Location())
		if err != nil {
			e.log.Warn().Err(err).Str("reminder_id", snap.ID).Msg("cleanup: skipping undecodable reminder")
			continue
		}
		switch {
		case r.RepeatMode == model.RepeatToday && timepolicy.IsFromPreviousDay(r.CreatedAt, now):
			// delete wins; an update of the same document would be wasted
			b.Delete(model.RemindersCollection, r.ID)
			res.Purged++
		case !r.Completed && timepolicy.HasTimePassed(r.Time, now):
			b.Update(model.RemindersCollection, r.ID, map[string]any{"completed": true})
			res.Completed++
		}
	}

	if b.Len() == 0 {
		runsTotal.WithLabelValues("noop").Inc()
		return res, nil
	}
	if err := b.Commit(ctx); err != nil {
		runsTotal.WithLabelValues("error").Inc()
		return Result{Scanned: res.Scanned}, fmt.Errorf("cleanup: commit %d ops: %w", b.Len(), err)
	}

	runsTotal.WithLabelValues("applied").Inc()
	remindersPurgedTotal.Add(float64(res.Purged))
	remindersCompletedTotal.Add(float64(res.Completed))
	e.log.Debug().
		Int("scanned", res.Scanned).
		Int("purged", res.Purged).
		Int("completed", res.Completed).
		Msg("cleanup pass committed")
	return res, nil
}
