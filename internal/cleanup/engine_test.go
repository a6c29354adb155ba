package cleanup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dayminder/dayminder/internal/model"
	"github.com/dayminder/dayminder/internal/store"
	"github.com/dayminder/dayminder/internal/store/memory"
)

var (
	zone      = time.FixedZone("UTC+2", 2*60*60)
	now       = time.Date(2024, 5, 10, 14, 30, 0, 0, zone)
	yesterday = now.AddDate(0, 0, -1)
	lastMonth = now.AddDate(0, -1, 0)
)

func seed(t *testing.T, s store.Store, title, clock string, mode model.RepeatMode, completed bool, created time.Time) string {
	t.Helper()
	raw, err := model.NewReminderDocument(model.ReminderFormData{Title: title, Time: clock, RepeatMode: mode}, "", created)
	require.NoError(t, err)
	id, err := s.Create(context.Background(), model.RemindersCollection, raw)
	require.NoError(t, err)
	if completed {
		require.NoError(t, s.Update(context.Background(), model.RemindersCollection, id, map[string]any{"completed": true}))
	}
	return id
}

func load(t *testing.T, s store.Store) map[string]model.Reminder {
	t.Helper()
	snaps, err := s.List(context.Background(), model.RemindersCollection, store.Query{})
	require.NoError(t, err)
	out := map[string]model.Reminder{}
	for _, snap := range snaps {
		r, err := model.DecodeReminder(snap.ID, snap.Data, zone)
		if err != nil {
			continue
		}
		out[r.ID] = r
	}
	return out
}

func newEngine(s store.Store) *Engine {
	return New(s, zerolog.Nop(), WithClock(func() time.Time { return now }))
}

func TestRun_PurgesTodayReminderFromYesterday(t *testing.T) {
	s := memory.New()
	stale := seed(t, s, "dentist", "09:00", model.RepeatToday, false, yesterday)

	res, err := newEngine(s).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Result{Scanned: 1, Purged: 1}, res)
	assert.NotContains(t, load(t, s), stale)
}

func TestRun_CompletesEverydayReminderWhoseTimePassed(t *testing.T) {
	s := memory.New()
	id := seed(t, s, "vitamins", "08:00", model.RepeatEveryday, false, lastMonth)

	res, err := newEngine(s).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Result{Scanned: 1, Completed: 1}, res)

	got := load(t, s)
	require.Contains(t, got, id)
	assert.True(t, got[id].Completed)
	assert.Equal(t, "vitamins", got[id].Title)
}

func TestRun_NeverDeletesEverydayReminders(t *testing.T) {
	s := memory.New()
	ids := []string{
		seed(t, s, "a", "23:59", model.RepeatEveryday, false, lastMonth),
		seed(t, s, "b", "00:00", model.RepeatEveryday, true, now.AddDate(-3, 0, 0)),
		seed(t, s, "c", "garbage", model.RepeatEveryday, false, yesterday),
	}

	_, err := newEngine(s).Run(context.Background())
	require.NoError(t, err)
	got := load(t, s)
	for _, id := range ids {
		assert.Contains(t, got, id)
	}
}

func TestRun_LeavesCurrentAndMalformedAlone(t *testing.T) {
	s := memory.New()
	future := seed(t, s, "later", "18:00", model.RepeatToday, false, now.Add(-time.Hour))
	malformed := seed(t, s, "broken", "25:99", model.RepeatToday, false, now.Add(-time.Hour))
	done := seed(t, s, "already", "10:00", model.RepeatToday, true, now.Add(-time.Hour))

	res, err := newEngine(s).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Result{Scanned: 3}, res)
	assert.False(t, res.Changed())

	got := load(t, s)
	assert.False(t, got[future].Completed)
	assert.False(t, got[malformed].Completed)
	assert.True(t, got[done].Completed)
}

func TestRun_DeleteTakesPrecedence(t *testing.T) {
	s := memory.New()
	id := seed(t, s, "both rules", "09:00", model.RepeatToday, false, yesterday)

	res, err := newEngine(s).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Purged)
	assert.Equal(t, 0, res.Completed)
	assert.NotContains(t, load(t, s), id)
}

func TestRun_Idempotent(t *testing.T) {
	s := memory.New()
	seed(t, s, "old", "09:00", model.RepeatToday, false, yesterday)
	seed(t, s, "due", "09:00", model.RepeatEveryday, false, yesterday)
	seed(t, s, "upcoming", "20:00", model.RepeatToday, false, now)

	e := newEngine(s)
	first, err := e.Run(context.Background())
	require.NoError(t, err)
	assert.True(t, first.Changed())
	before := load(t, s)

	second, err := e.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Result{Scanned: 2}, second)
	assert.Equal(t, before, load(t, s))
}

func TestRun_UsesClockLocationForCalendarDay(t *testing.T) {
	s := memory.New()
	// 23:30 UTC on the 9th is already the 10th in UTC+2.
	id := seed(t, s, "late night", "23:45", model.RepeatToday, false,
		time.Date(2024, 5, 9, 23, 30, 0, 0, time.UTC))

	res, err := newEngine(s).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, res.Purged)
	assert.Contains(t, load(t, s), id)
}

func TestRun_WrongTypedTimeStillPurgedByDate(t *testing.T) {
	s := memory.New()
	ctx := context.Background()
	stale, err := s.Create(ctx, model.RemindersCollection, json.RawMessage(fmt.Sprintf(
		`{"title":"numeric time","time":900,"repeatMode":"today","completed":false,"createdAt":%d}`, yesterday.UnixMilli())))
	require.NoError(t, err)
	daily, err := s.Create(ctx, model.RemindersCollection, json.RawMessage(fmt.Sprintf(
		`{"title":12,"time":null,"repeatMode":"everyday","completed":false,"createdAt":%d}`, now.UnixMilli())))
	require.NoError(t, err)
	due := seed(t, s, "due", "09:00", model.RepeatEveryday, false, now)

	res, err := newEngine(s).Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, Result{Scanned: 3, Purged: 1, Completed: 1}, res)

	got := load(t, s)
	assert.NotContains(t, got, stale)
	require.Contains(t, got, daily)
	assert.False(t, got[daily].Completed, "a malformed time never completes a reminder")
	assert.True(t, got[due].Completed)
}

type failingStore struct {
	store.Store
	listErr   error
	commitErr error
	commits   int
}

func (f *failingStore) List(ctx context.Context, c string, q store.Query) ([]store.Snapshot, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.Store.List(ctx, c, q)
}

func (f *failingStore) Batch() store.Batch {
	return &failingBatch{Batch: f.Store.Batch(), parent: f}
}

type failingBatch struct {
	store.Batch
	parent *failingStore
}

func (b *failingBatch) Commit(ctx context.Context) error {
	b.parent.commits++
	if b.parent.commitErr != nil {
		return b.parent.commitErr
	}
	return b.Batch.Commit(ctx)
}

func TestRun_CommitFailureLeavesStoreUntouched(t *testing.T) {
	mem := memory.New()
	stale := seed(t, mem, "old", "09:00", model.RepeatToday, false, yesterday)
	due := seed(t, mem, "due", "09:00", model.RepeatEveryday, false, now)
	boom := errors.New("store unavailable")
	fs := &failingStore{Store: mem, commitErr: boom}

	res, err := newEngine(fs).Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.False(t, res.Changed())
	assert.Equal(t, 1, fs.commits, "no retries")

	got := load(t, mem)
	assert.Contains(t, got, stale)
	assert.False(t, got[due].Completed)
}

func TestRun_ListFailurePropagates(t *testing.T) {
	boom := errors.New("network down")
	fs := &failingStore{Store: memory.New(), listErr: boom}
	_, err := newEngine(fs).Run(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, fs.commits)
}

func TestRun_EmptyPassSkipsCommit(t *testing.T) {
	fs := &failingStore{Store: memory.New(), commitErr: errors.New("should not be called")}
	seed(t, fs.Store, "upcoming", "20:00", model.RepeatEveryday, false, now)

	res, err := newEngine(fs).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Result{Scanned: 1}, res)
	assert.Zero(t, fs.commits)
}
