package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/dayminder/dayminder/internal/cleanup"
	"github.com/dayminder/dayminder/internal/model"
	"github.com/dayminder/dayminder/internal/store"
)

// ReminderService is the reminder repository: CRUD over the reminders
// collection with a cleanup pass in front of every list.
type ReminderService struct {
	store   store.Store
	cleaner *cleanup.Engine
	log     zerolog.Logger
	now     func() time.Time
}

// ReminderOption configures a ReminderService.
type ReminderOption func(*ReminderService)

// WithReminderClock sets the clock used for createdAt and for the location
// reminders are returned in. Pass the same clock to the cleanup engine.
func WithReminderClock(now func() time.Time) ReminderOption {
	return func(s *ReminderService) {
		if now != nil {
			s.now = now
		}
	}
}

func NewReminderService(s store.Store, cleaner *cleanup.Engine, log zerolog.Logger, opts ...ReminderOption) *ReminderService {
	svc := &ReminderService{store: s, cleaner: cleaner, log: log, now: time.Now}
	for _, o := range opts {
		o(svc)
	}
	return svc
}

// Create stores a new open reminder and returns its id. An empty userID is
// left out of the stored document.
func (s *ReminderService) Create(ctx context.Context, form model.ReminderFormData, userID string) (string, error) {
	doc, err := model.NewReminderDocument(form, userID, s.now())
	if err != nil {
		return "", s.fail("create", "", err)
	}
	id, err := s.store.Create(ctx, model.RemindersCollection, doc)
	if err != nil {
		return "", s.fail("create", "", err)
	}
	return id, nil
}

// List runs a cleanup pass and then returns reminders newest first,
// restricted to userID when it is non-empty.
func (s *ReminderService) List(ctx context.Context, userID string) ([]model.Reminder, error) {
	if _, err := s.cleaner.Run(ctx); err != nil {
		return nil, s.fail("list", "", err)
	}

	q := store.Query{OrderBy: "createdAt", Descending: true}
	if userID != "" {
		q.Where = []store.Eq{{Field: "userId", Value: userID}}
	}
	snaps, err := s.store.List(ctx, model.RemindersCollection, q)
	if err != nil {
		return nil, s.fail("list", "", err)
	}

	loc := s.now().Location()
	out := make([]model.Reminder, 0, len(snaps))
	for _, snap := range snaps {
		r, err := model.DecodeReminder(snap.ID, snap.Data, loc)
		if err != nil {
			s.log.Warn().Err(err).Str("reminder_id", snap.ID).Msg("list: skipping undecodable reminder")
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

// Update writes only the fields set in patch. An empty patch is a no-op.
func (s *ReminderService) Update(ctx context.Context, id string, patch model.ReminderPatch) error {
	fields := patch.Fields()
	if len(fields) == 0 {
		return nil
	}
	if err := s.store.Update(ctx, model.RemindersCollection, id, fields); err != nil {
		return s.fail("update", id, err)
	}
	return nil
}

// Delete removes the reminder. Unknown ids are not an error.
func (s *ReminderService) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, model.RemindersCollection, id); err != nil {
		return s.fail("delete", id, err)
	}
	return nil
}

func (s *ReminderService) SetCompleted(ctx context.Context, id string, completed bool) error {
	return s.Update(ctx, id, model.ReminderPatch{Completed: model.Some(completed)})
}

// Cleanup runs a cleanup pass on demand.
func (s *ReminderService) Cleanup(ctx context.Context) (cleanup.Result, error) {
	res, err := s.cleaner.Run(ctx)
	if err != nil {
		return res, s.fail("cleanup", "", err)
	}
	return res, nil
}

func (s *ReminderService) fail(op, id string, err error) error {
	ev := s.log.Error().Stack().Err(err).Str("op", op)
	if id != "" {
		ev = ev.Str("reminder_id", id)
	}
	ev.Msg("reminder repository call failed")
	if id != "" {
		return fmt.Errorf("%s reminder %s: %w", op, id, err)
	}
	return fmt.Errorf("%s reminders: %w", op, err)
}
