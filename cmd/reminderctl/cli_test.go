package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dayminder/dayminder/client"
	"github.com/dayminder/dayminder/internal/api"
	"github.com/dayminder/dayminder/internal/cleanup"
	"github.com/dayminder/dayminder/internal/i18n"
	"github.com/dayminder/dayminder/internal/logger"
	"github.com/dayminder/dayminder/internal/services"
	"github.com/dayminder/dayminder/internal/store/memory"
)

var morning = time.Date(2024, 9, 1, 10, 0, 0, 0, time.UTC)

func newBackend(t *testing.T) *httptest.Server {
	t.Helper()
	st := memory.New()
	clock := func() time.Time { return morning }
	engine := cleanup.New(st, zerolog.Nop(), cleanup.WithClock(clock))
	svc := services.NewReminderService(st, engine, zerolog.Nop(), services.WithReminderClock(clock))
	srv := httptest.NewServer(api.NewRouter(api.RouterDeps{
		Reminders:       svc,
		DefaultLanguage: i18n.English,
		IsHealthy:       func() bool { return true },
		Log:             zerolog.Nop(),
	}))
	t.Cleanup(srv.Close)
	return srv
}

func run(t *testing.T, url string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--service-url", url}, args...))
	err := root.Execute()
	return out.String(), err
}

var createdRx = regexp.MustCompile(`Reminder created: (\S+) - `)

func TestCLI_AddListDoneDelete(t *testing.T) {
	srv := newBackend(t)

	out, err := run(t, srv.URL, "add", "--title", "Stretch", "--time", "11:00", "--repeat", "everyday")
	require.NoError(t, err)
	m := createdRx.FindStringSubmatch(out)
	require.Len(t, m, 2, out)
	id := m[1]

	out, err = run(t, srv.URL, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Stretch")
	assert.Contains(t, out, id)

	out, err = run(t, srv.URL, "done", id)
	require.NoError(t, err)
	assert.Contains(t, out, "completed=true")

	out, err = run(t, srv.URL, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "[x] 11:00  Stretch")

	_, err = run(t, srv.URL, "undo", id)
	require.NoError(t, err)

	_, err = run(t, srv.URL, "delete", id)
	require.NoError(t, err)

	out, err = run(t, srv.URL, "list")
	require.NoError(t, err)
	assert.Equal(t, "No reminders yet\n", out)
}

func TestCLI_Errors(t *testing.T) {
	srv := newBackend(t)

	_, err := run(t, srv.URL, "add", "--title", "Bad", "--time", "25:00")
	assert.ErrorIs(t, err, client.ErrInvalid)

	_, err = run(t, srv.URL, "done", "missing-id")
	assert.ErrorIs(t, err, client.ErrNotFound)

	_, err = run(t, srv.URL, "add", "--time", "10:00")
	assert.Error(t, err, "title is required")

	_, err = run(t, srv.URL, "delete")
	assert.Error(t, err, "id argument is required")
}

func TestCLI_UserScope(t *testing.T) {
	srv := newBackend(t)

	_, err := run(t, srv.URL, "--user-id", "ana", "add", "--title", "Ana's", "--time", "12:00")
	require.NoError(t, err)
	_, err = run(t, srv.URL, "add", "--title", "Shared", "--time", "12:00")
	require.NoError(t, err)

	out, err := run(t, srv.URL, "--user-id", "ana", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Ana's")
	assert.NotContains(t, out, "Shared")
}

func TestCLI_CleanupAndTexts(t *testing.T) {
	srv := newBackend(t)

	out, err := run(t, srv.URL, "cleanup")
	require.NoError(t, err)
	assert.Equal(t, "Scanned 0, purged 0, completed 0\n", out)

	out, err = run(t, srv.URL, "--lang", "hi", "texts")
	require.NoError(t, err)
	var texts i18n.Texts
	require.NoError(t, json.Unmarshal([]byte(out), &texts))
	assert.Equal(t, i18n.Hindi, texts.Lang)
	assert.Equal(t, i18n.For(i18n.Hindi).NoReminders, texts.NoReminders)

	out, err = run(t, srv.URL, "--lang", "hi", "texts", "--toggle")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &texts))
	assert.Equal(t, i18n.English, texts.Lang)
}

func TestCLI_WatchRendersUntilCanceled(t *testing.T) {
	srv := newBackend(t)
	_, err := run(t, srv.URL, "add", "--title", "Tea", "--time", "16:00")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"--service-url", srv.URL, "watch", "--interval", "50ms"})
	require.NoError(t, root.ExecuteContext(ctx))

	assert.Contains(t, out.String(), "--- Your Reminders")
	assert.Contains(t, out.String(), "Tea")
}

func TestRenderList(t *testing.T) {
	now := time.Date(2024, 9, 1, 12, 0, 0, 0, time.UTC)
	list := []client.Reminder{
		{ID: "a", Title: "Breakfast", Time: "08:00", RepeatMode: client.RepeatToday},
		{ID: "b", Title: "Dinner", Time: "19:00", RepeatMode: client.RepeatEveryday},
		{ID: "c", Title: "Coffee", Time: "09:00", RepeatMode: client.RepeatEveryday, Completed: true},
	}

	var buf bytes.Buffer
	renderList(&buf, list, i18n.English, i18n.For(i18n.English), now)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")

	require.Len(t, lines, 6)
	assert.Equal(t, "PAST DUE (1)", lines[0])
	assert.Equal(t, "  [ ] 08:00  Breakfast  📅 Just today  a  (Past due)", lines[1])
	assert.Equal(t, "", lines[2])
	assert.Equal(t, "ALL REMINDERS (2)", lines[3])
	assert.Equal(t, "  [ ] 19:00  Dinner  🔄 Every day  b", lines[4])
	assert.Equal(t, "  [x] 09:00  Coffee  🔄 Every day  c", lines[5])
}

func TestRenderList_EmptyUsesLanguage(t *testing.T) {
	var buf bytes.Buffer
	renderList(&buf, nil, i18n.Hindi, i18n.For(i18n.Hindi), time.Now())
	assert.Equal(t, i18n.For(i18n.Hindi).NoReminders+"\n", buf.String())
}

func TestExecute_LogsFailureAndReturnsExitCode(t *testing.T) {
	srv := newBackend(t)
	var logs bytes.Buffer
	log := logger.NewWithWriter("reminderctl", &logs, zerolog.InfoLevel)

	root := NewRootCmd()
	root.SetOut(io.Discard)
	root.SetArgs([]string{"--service-url", srv.URL, "done", "missing-id"})
	assert.Equal(t, 1, execute(context.Background(), root, log))
	assert.Contains(t, logs.String(), "command failed")

	logs.Reset()
	root = NewRootCmd()
	root.SetOut(io.Discard)
	root.SetArgs([]string{"--service-url", srv.URL, "cleanup"})
	assert.Equal(t, 0, execute(context.Background(), root, log))
	assert.Empty(t, logs.String())
}
