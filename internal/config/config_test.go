package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigLoad_Defaults(t *testing.T) {
	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, "local", cfg.BuildTarget)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "data/reminders.db", cfg.SQLitePath)
	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, 60, cfg.SweepIntervalSeconds)
	assert.Equal(t, 5, cfg.BootstrapTimeoutSeconds)
	assert.Equal(t, "en", cfg.DefaultLanguage)
	assert.Equal(t, ":8080", cfg.GetHTTPAddr())
}

func TestConfigLoad_EnvOverride(t *testing.T) {
	t.Setenv("REMINDER_SERVICE_HTTP_PORT", "9191")
	t.Setenv("REMINDER_SERVICE_BOOTSTRAP_TIMEOUT_SECONDS", "10")
	t.Setenv("REMINDER_SERVICE_TIME_ZONE", "Asia/Kolkata")
	t.Setenv("REMINDER_SERVICE_SWEEP_INTERVAL_SECONDS", "0")

	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, 9191, cfg.HTTPPort)
	assert.Equal(t, 10, cfg.BootstrapTimeoutSeconds)
	assert.Equal(t, 0, cfg.SweepIntervalSeconds)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "Asia/Kolkata", loc.String())
	assert.Equal(t, "Asia/Kolkata", cfg.Clock()().Location().String())
}

func TestConfigLoad_BadTimeZone(t *testing.T) {
	t.Setenv("REMINDER_SERVICE_TIME_ZONE", "Mars/Olympus")
	_, err := New()
	assert.Error(t, err)
}

func TestLocation_Local(t *testing.T) {
	cfg := &Config{TimeZone: "Local"}
	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)
}

func TestNewForTesting(t *testing.T) {
	cfg := NewForTesting()
	require.NoError(t, cfg.ResolveDefaults())
	assert.True(t, cfg.IsTesting())
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, "memory", cfg.DBDriver)
}
