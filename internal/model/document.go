package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// RemindersCollection is the store collection holding reminder documents.
const RemindersCollection = "reminders"

// reminderDocument is the persisted shape of a Reminder. The id lives in the
// store key, and createdAt is unix milliseconds so drivers can order on it.
type reminderDocument struct {
	Title      string     `json:"title"`
	Time       string     `json:"time"`
	RepeatMode RepeatMode `json:"repeatMode"`
	Completed  bool       `json:"completed"`
	CreatedAt  int64      `json:"createdAt"`
	UserID     string     `json:"userId,omitempty"`
}

// NewReminderDocument encodes a fresh, not yet completed reminder.
// userID is left out of the document entirely when empty.
func NewReminderDocument(form ReminderFormData, userID string, createdAt time.Time) (json.RawMessage, error) {
	return json.Marshal(reminderDocument{
		Title:      form.Title,
		Time:       form.Time,
		RepeatMode: form.RepeatMode,
		Completed:  false,
		CreatedAt:  createdAt.UnixMilli(),
		UserID:     userID,
	})
}

// DecodeReminder rebuilds a Reminder from a stored document. The returned
// CreatedAt is in loc, or UTC when loc is nil.
//
// Only a document that is not a JSON object is an error. A field holding the
// wrong JSON type decodes as its zero value, so a reminder with a numeric
// time still lists and can still be purged by date; the time rules treat ""
// as unparseable.
func DecodeReminder(id string, data json.RawMessage, loc *time.Location) (Reminder, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil || fields == nil {
		return Reminder{}, fmt.Errorf("decode reminder %s: not a JSON object", id)
	}
	if loc == nil {
		loc = time.UTC
	}
	r := Reminder{
		ID:         id,
		Title:      lenient[string](fields["title"]),
		Time:       lenient[string](fields["time"]),
		RepeatMode: RepeatMode(lenient[string](fields["repeatMode"])),
		Completed:  lenient[bool](fields["completed"]),
		UserID:     lenient[string](fields["userId"]),
	}
	if ms := int64(lenient[float64](fields["createdAt"])); ms != 0 {
		r.CreatedAt = time.UnixMilli(ms).In(loc)
	}
	return r, nil
}

// lenient decodes raw into a T, or returns T's zero value when raw is
// missing or of another JSON type.
func lenient[T any](raw json.RawMessage) T {
	var v T
	if len(raw) == 0 {
		return v
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		var zero T
		return zero
	}
	return v
}
