package model

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReminderDocument_OmitsEmptyUserID(t *testing.T) {
	created := time.Date(2024, 3, 1, 8, 30, 0, 0, time.UTC)
	raw, err := NewReminderDocument(ReminderFormData{Title: "tea", Time: "08:45", RepeatMode: RepeatToday}, "", created)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m))
	_, has := m["userId"]
	assert.False(t, has)
	assert.Equal(t, false, m["completed"])
	assert.EqualValues(t, created.UnixMilli(), m["createdAt"])

	r, err := DecodeReminder("r1", raw, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, Reminder{
		ID: "r1", Title: "tea", Time: "08:45", RepeatMode: RepeatToday, CreatedAt: created,
	}, r)
}

func TestReminderDocument_KeepsUserID(t *testing.T) {
	raw, err := NewReminderDocument(ReminderFormData{Title: "run", Time: "06:00", RepeatMode: RepeatEveryday}, "u-42", time.Now())
	require.NoError(t, err)
	r, err := DecodeReminder("r2", raw, nil)
	require.NoError(t, err)
	assert.Equal(t, "u-42", r.UserID)
	assert.Equal(t, time.UTC, r.CreatedAt.Location())
}

func TestDecodeReminder_MissingCreatedAt(t *testing.T) {
	r, err := DecodeReminder("r3", json.RawMessage(`{"title":"x","time":"bad","repeatMode":"today"}`), time.UTC)
	require.NoError(t, err)
	assert.True(t, r.CreatedAt.IsZero())
}

func TestDecodeReminder_NotAnObject(t *testing.T) {
	for _, raw := range []string{`[1,2]`, `"x"`, `null`, `{`} {
		_, err := DecodeReminder("r4", json.RawMessage(raw), time.UTC)
		assert.Error(t, err, raw)
	}
}

func TestDecodeReminder_WrongTypedFieldsDecodeAsZero(t *testing.T) {
	created := time.Date(2024, 3, 1, 8, 30, 0, 0, time.UTC)
	raw := json.RawMessage(fmt.Sprintf(
		`{"title":5,"time":900,"repeatMode":"today","completed":"yes","createdAt":%d,"userId":null}`,
		created.UnixMilli()))

	r, err := DecodeReminder("r5", raw, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, Reminder{ID: "r5", RepeatMode: RepeatToday, CreatedAt: created}, r)
	assert.False(t, r.PastDue(created.Add(12*time.Hour)), "an unparseable time is never past due")
}

func TestReminderPatch_JSON(t *testing.T) {
	var p ReminderPatch
	require.NoError(t, json.Unmarshal([]byte(`{"completed":true}`), &p))
	assert.Equal(t, map[string]any{"completed": true}, p.Fields())
	assert.False(t, p.IsEmpty())

	out, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"completed":true}`, string(out))

	var empty ReminderPatch
	require.NoError(t, json.Unmarshal([]byte(`{}`), &empty))
	assert.True(t, empty.IsEmpty())

	var bad ReminderPatch
	err = json.Unmarshal([]byte(`{"title":null}`), &bad)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestReminder_PastDue(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	assert.True(t, Reminder{Time: "09:00"}.PastDue(now))
	assert.False(t, Reminder{Time: "09:00", Completed: true}.PastDue(now))
	assert.False(t, Reminder{Time: "13:00"}.PastDue(now))
	assert.False(t, Reminder{Time: "nope"}.PastDue(now))
}
