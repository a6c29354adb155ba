// Package viewstate keeps a client-side view of the reminder list in step
// with a Repository.
//
// Every mutation is followed by a full reload; the reload result is the only
// source of truth, there are no optimistic local edits. A failed reload keeps
// the previous list and records the error. A background cycle started with
// Start runs a cleanup pass and reload on a fixed interval.
package viewstate

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/dayminder/dayminder/internal/cleanup"
	"github.com/dayminder/dayminder/internal/model"
)

// DefaultInterval is the period of the automatic cleanup cycle.
const DefaultInterval = 60 * time.Second

// Repository is the reminder store the synchronizer drives. It is satisfied
// by the in-process ReminderService and by the HTTP client.
type Repository interface {
	Create(ctx context.Context, form model.ReminderFormData, userID string) (string, error)
	List(ctx context.Context, userID string) ([]model.Reminder, error)
	Update(ctx context.Context, id string, patch model.ReminderPatch) error
	Delete(ctx context.Context, id string) error
	SetCompleted(ctx context.Context, id string, completed bool) error
	Cleanup(ctx context.Context) (cleanup.Result, error)
}

// State is a point-in-time copy of what the synchronizer holds.
type State struct {
	Reminders []model.Reminder
	Loading   bool
	Err       error
}

// Option configures a Synchronizer.
type Option func(*Synchronizer)

// WithInterval sets the automatic cycle period. Non-positive values are ignored.
func WithInterval(d time.Duration) Option {
	return func(s *Synchronizer) {
		if d > 0 {
			s.interval = d
		}
	}
}

// WithOnChange registers a callback invoked with a fresh State after every
// change. It runs on the goroutine that made the change and must not block.
func WithOnChange(fn func(State)) Option {
	return func(s *Synchronizer) { s.onChange = fn }
}

// WithUserID scopes Add and Load to an owner tag.
func WithUserID(userID string) Option {
	return func(s *Synchronizer) { s.userID = userID }
}

func WithLogger(log zerolog.Logger) Option {
	return func(s *Synchronizer) { s.log = log }
}

type Synchronizer struct {
	repo     Repository
	userID   string
	interval time.Duration
	onChange func(State)
	log      zerolog.Logger

	mu        sync.Mutex
	reminders []model.Reminder
	loads     int // loads in flight; Loading is loads > 0
	err       error

	cycling atomic.Bool // single in-flight slot for the automatic cycle

	lifeMu sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func New(repo Repository, opts ...Option) *Synchronizer {
	s := &Synchronizer{repo: repo, interval: DefaultInterval, log: zerolog.Nop()}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Snapshot returns a copy of the current state.
func (s *Synchronizer) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

func (s *Synchronizer) stateLocked() State {
	out := State{Loading: s.loads > 0, Err: s.err}
	if s.reminders != nil {
		out.Reminders = append([]model.Reminder(nil), s.reminders...)
	}
	return out
}

// update applies fn under the lock and notifies the listener.
func (s *Synchronizer) update(fn func()) {
	s.mu.Lock()
	fn()
	st := s.stateLocked()
	s.mu.Unlock()
	if s.onChange != nil {
		s.onChange(st)
	}
}

// Load replaces the held list with a fresh List result. On failure the
// previous list is kept and the error is recorded. Loading is cleared on exit
// either way. The error is also returned.
func (s *Synchronizer) Load(ctx context.Context) error {
	s.update(func() {
		s.loads++
		s.err = nil
	})

	list, err := s.repo.List(ctx, s.userID)

	s.update(func() {
		s.loads--
		if err != nil {
			s.err = err
			return
		}
		s.reminders = list
	})
	if err != nil {
		s.log.Error().Err(err).Msg("viewstate: load reminders")
	}
	return err
}

// mutate clears the error, runs op, and reloads on success. A failed op is
// recorded and returned without a reload.
func (s *Synchronizer) mutate(ctx context.Context, what string, op func() error) error {
	s.update(func() { s.err = nil })
	if err := op(); err != nil {
		s.update(func() { s.err = err })
		s.log.Error().Err(err).Str("op", what).Msg("viewstate: mutation failed")
		return err
	}
	_ = s.Load(ctx)
	return nil
}

// Add creates a reminder, reloads, and returns the new id.
func (s *Synchronizer) Add(ctx context.Context, form model.ReminderFormData) (string, error) {
	var id string
	err := s.mutate(ctx, "add", func() error {
		var err error
		id, err = s.repo.Create(ctx, form, s.userID)
		return err
	})
	return id, err
}

func (s *Synchronizer) Update(ctx context.Context, id string, patch model.ReminderPatch) error {
	return s.mutate(ctx, "update", func() error { return s.repo.Update(ctx, id, patch) })
}

func (s *Synchronizer) Delete(ctx context.Context, id string) error {
	return s.mutate(ctx, "delete", func() error { return s.repo.Delete(ctx, id) })
}

func (s *Synchronizer) SetCompleted(ctx context.Context, id string, completed bool) error {
	return s.mutate(ctx, "set completed", func() error { return s.repo.SetCompleted(ctx, id, completed) })
}

// CleanupNow runs a cleanup pass and reloads.
func (s *Synchronizer) CleanupNow(ctx context.Context) (cleanup.Result, error) {
	var res cleanup.Result
	err := s.mutate(ctx, "cleanup", func() error {
		var err error
		res, err = s.repo.Cleanup(ctx)
		return err
	})
	return res, err
}

// Tick runs one automatic cycle: cleanup then reload. It does nothing and
// returns false when the list is empty, a load is in flight, or another cycle
// holds the slot. Cleanup errors are logged, not recorded in State.
func (s *Synchronizer) Tick(ctx context.Context) bool {
	s.mu.Lock()
	idle := len(s.reminders) > 0 && s.loads == 0
	s.mu.Unlock()
	if !idle {
		return false
	}
	if !s.cycling.CompareAndSwap(false, true) {
		return false
	}
	defer s.cycling.Store(false)

	if _, err := s.repo.Cleanup(ctx); err != nil {
		s.log.Error().Err(err).Msg("viewstate: automatic cleanup")
		return true
	}
	_ = s.Load(ctx)
	return true
}

// Start performs an initial load and then runs Tick every interval until
// Stop is called or ctx is done. Calling Start twice is a no-op.
func (s *Synchronizer) Start(ctx context.Context) {
	s.lifeMu.Lock()
	defer s.lifeMu.Unlock()
	if s.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})

	go func(done chan struct{}) {
		defer close(done)
		_ = s.Load(ctx)

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.Tick(ctx)
			}
		}
	}(s.done)
}

// Stop cancels the automatic cycle and waits for it to exit.
func (s *Synchronizer) Stop() {
	s.lifeMu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.lifeMu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}
