package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dayminder/dayminder/internal/timepolicy"
)

// RepeatMode controls how long a reminder lives.
type RepeatMode string

const (
	// RepeatToday reminders are only valid on the calendar day they were created.
	RepeatToday RepeatMode = "today"
	// RepeatEveryday reminders recur daily and are never purged automatically.
	RepeatEveryday RepeatMode = "everyday"
)

// Valid reports whether m is a known repeat mode.
func (m RepeatMode) Valid() bool {
	return m == RepeatToday || m == RepeatEveryday
}

// Reminder is a persisted time-of-day reminder.
type Reminder struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Time       string     `json:"time"`
	RepeatMode RepeatMode `json:"repeatMode"`
	Completed  bool       `json:"completed"`
	CreatedAt  time.Time  `json:"createdAt"`
	UserID     string     `json:"userId,omitempty"`
}

// PastDue reports whether the reminder is still open although its time has passed.
func (r Reminder) PastDue(now time.Time) bool {
	return !r.Completed && timepolicy.HasTimePassed(r.Time, now)
}

// ReminderFormData is the payload accepted when creating a reminder.
type ReminderFormData struct {
	Title      string     `json:"title"`
	Time       string     `json:"time"`
	RepeatMode RepeatMode `json:"repeatMode"`
}

// Optional carries a value that is either set or left unchanged.
// The zero value means "leave unchanged".
type Optional[T any] struct {
	Set   bool
	Value T
}

// Some returns an Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: v}
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Set {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// UnmarshalJSON only runs when the key is present; an explicit null is rejected
// so a patch never means "clear this field".
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return fmt.Errorf("%w: null is not a valid field value", ErrValidation)
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Set = true
	o.Value = v
	return nil
}

// ReminderPatch is a partial update. Unset fields are never written.
type ReminderPatch struct {
	Title      Optional[string]     `json:"title,omitzero"`
	Time       Optional[string]     `json:"time,omitzero"`
	RepeatMode Optional[RepeatMode] `json:"repeatMode,omitzero"`
	Completed  Optional[bool]       `json:"completed,omitzero"`
	UserID     Optional[string]     `json:"userId,omitzero"`
}

// IsEmpty reports whether the patch changes nothing.
func (p ReminderPatch) IsEmpty() bool {
	return len(p.Fields()) == 0
}

// Fields returns the stored-document keys and values the patch writes.
func (p ReminderPatch) Fields() map[string]any {
	out := map[string]any{}
	if p.Title.Set {
		out["title"] = p.Title.Value
	}
	if p.Time.Set {
		out["time"] = p.Time.Value
	}
	if p.RepeatMode.Set {
		out["repeatMode"] = string(p.RepeatMode.Value)
	}
	if p.Completed.Set {
		out["completed"] = p.Completed.Value
	}
	if p.UserID.Set {
		out["userId"] = p.UserID.Value
	}
	return out
}
