package store

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/dayminder/dayminder/internal/health"
)

const defaultProbeTimeout = 2 * time.Second

// HealthChecker tracks store reachability through periodic HealthPing probes.
type HealthChecker struct {
	pinger       health.HealthPinger
	healthy      atomic.Int32
	lastErr      atomic.Value // string
	log          zerolog.Logger
	probeTimeout time.Duration
}

// NewHealthChecker returns a checker that starts unhealthy until its first probe succeeds.
func NewHealthChecker(p health.HealthPinger, log zerolog.Logger, probeTimeout time.Duration) *HealthChecker {
	if probeTimeout <= 0 {
		probeTimeout = defaultProbeTimeout
	}
	hc := &HealthChecker{pinger: p, log: log, probeTimeout: probeTimeout}
	hc.healthy.Store(0)
	hc.lastErr.Store("")
	return hc
}

func (hc *HealthChecker) Name() string { return "store" }

// IsHealthy returns the cached result of the last probe.
func (hc *HealthChecker) IsHealthy() bool { return hc.healthy.Load() == 1 }

// LastError is the message of the most recent failed probe, or "".
func (hc *HealthChecker) LastError() string { return hc.lastErr.Load().(string) }

// Start probes immediately and then on every tick until ctx is done.
func (hc *HealthChecker) Start(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	hc.Probe(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			hc.Probe(ctx)
		}
	}
}

// Probe pings the store once and records the outcome.
func (hc *HealthChecker) Probe(ctx context.Context) bool {
	probeCtx, cancel := context.WithTimeout(ctx, hc.probeTimeout)
	defer cancel()

	if err := hc.pinger.HealthPing(probeCtx); err != nil {
		if hc.healthy.Swap(0) == 1 || hc.LastError() == "" {
			hc.log.Error().Stack().
				Str("checker", hc.Name()).
				Err(err).
				Msg("store health check failed")
		}
		hc.lastErr.Store(err.Error())
		return false
	}
	hc.healthy.Store(1)
	hc.lastErr.Store("")
	return true
}
