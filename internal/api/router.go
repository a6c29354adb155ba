package api

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/dayminder/dayminder/internal/api/recovery"
	"github.com/dayminder/dayminder/internal/i18n"
	"github.com/dayminder/dayminder/internal/services"
)

// RouterDeps are the collaborators the HTTP routes need.
type RouterDeps struct {
	Reminders       *services.ReminderService
	DefaultLanguage i18n.Lang
	IsHealthy       func() bool
	Components      func() map[string]bool
	Log             zerolog.Logger
}

// NewRouter wires every HTTP route.
func NewRouter(d RouterDeps) *mux.Router {
	root := mux.NewRouter()
	root.Use(recovery.New(d.Log))
	root.Use(requestLogger(d.Log))

	// Reminders
	rem := NewReminderHandler(d.Reminders)
	root.HandleFunc("/api/reminders", rem.CreateReminder).Methods("POST")
	root.HandleFunc("/api/reminders", rem.ListReminders).Methods("GET")
	root.HandleFunc("/api/reminders/{id}", rem.UpdateReminder).Methods("PATCH")
	root.HandleFunc("/api/reminders/{id}", rem.DeleteReminder).Methods("DELETE")
	root.HandleFunc("/api/reminders/{id}/completed", rem.SetCompleted).Methods("PUT")
	root.HandleFunc("/api/cleanup", rem.Cleanup).Methods("POST")

	// Texts
	texts := NewTextsHandler(d.DefaultLanguage)
	root.HandleFunc("/api/texts", texts.GetTexts).Methods("GET")

	// Health & metrics
	healthHandler := NewHealthHandler(d.IsHealthy, d.Components)
	root.HandleFunc("/api/health", healthHandler.CheckHealth).Methods("GET")
	root.Handle("/metrics", promhttp.Handler()).Methods("GET")
	return root
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func requestLogger(log zerolog.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)
			log.Debug().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", rec.status).
				Dur("elapsed", time.Since(start)).
				Msg("http request")
		})
	}
}
