package cleanup

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	runsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dayminder",
			Subsystem: "cleanup",
			Name:      "runs_total",
			Help:      "Cleanup passes by outcome.",
		},
		[]string{"outcome"},
	)

	remindersPurgedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "dayminder",
			Subsystem: "cleanup",
			Name:      "reminders_purged_total",
			Help:      "One-time reminders deleted because their day has passed.",
		},
	)

	remindersCompletedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "dayminder",
			Subsystem: "cleanup",
			Name:      "reminders_completed_total",
			Help:      "Reminders marked completed because their time has passed.",
		},
	)
)
