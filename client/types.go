package client

import (
	"github.com/dayminder/dayminder/internal/cleanup"
	"github.com/dayminder/dayminder/internal/i18n"
	"github.com/dayminder/dayminder/internal/model"
)

// Public aliases so SDK callers can name request and response types.
type (
	Reminder         = model.Reminder
	ReminderFormData = model.ReminderFormData
	ReminderPatch    = model.ReminderPatch
	RepeatMode       = model.RepeatMode
	CleanupResult    = cleanup.Result
	Texts            = i18n.Texts
)

const (
	RepeatToday    = model.RepeatToday
	RepeatEveryday = model.RepeatEveryday
)

type createRequest struct {
	ReminderFormData
	UserID string `json:"userId,omitempty"`
}

type createResponse struct {
	ID string `json:"id"`
}

type listResponse struct {
	Reminders []Reminder `json:"reminders"`
	Count     int        `json:"count"`
}

// HealthStatus is the body of GET /api/health.
type HealthStatus struct {
	Status     string          `json:"status"`
	Timestamp  string          `json:"timestamp"`
	Components map[string]bool `json:"components,omitempty"`
}

// Healthy reports whether the service said it is healthy.
func (h HealthStatus) Healthy() bool { return h.Status == "healthy" }
