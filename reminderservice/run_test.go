package reminderservice

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dayminder/dayminder/internal/config"
	"github.com/dayminder/dayminder/internal/health"
	"github.com/dayminder/dayminder/internal/store/memory"
)

func TestCalculateStartupHealthTimeout(t *testing.T) {
	tests := []struct {
		name     string
		interval int
		want     int
	}{
		{"floor applies to short intervals", 5, 60},
		{"exactly at floor", 30, 60},
		{"doubles long intervals", 45, 90},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, calculateStartupHealthTimeout(tt.interval))
		})
	}
}

func TestStartHealthCheckers_HealthyImmediately(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.NewForTesting()
	svc := startHealthCheckers(ctx, cfg, zerolog.Nop(), memory.New())

	require.NoError(t, waitUntilHealthy(ctx, cfg, svc))
	assert.Equal(t, map[string]bool{"store": true}, svc.Components())
}

func TestWaitUntilHealthy_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	// no dependencies started, so the aggregator never reports healthy
	svc := health.NewServiceHealthChecker(zerolog.Nop())
	err := waitUntilHealthy(ctx, config.NewForTesting(), svc)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestNewHTTPServer_UsesConfiguredPort(t *testing.T) {
	cfg := config.NewForTesting()
	cfg.HTTPPort = 9191
	srv := newHTTPServer(context.Background(), cfg, nil)
	assert.Equal(t, ":9191", srv.Addr)
}
