package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/dayminder/dayminder/internal/api/respond"
	"github.com/dayminder/dayminder/internal/api/validate"
	"github.com/dayminder/dayminder/internal/model"
	"github.com/dayminder/dayminder/internal/services"
)

// ReminderHandler is a thin HTTP transport over ReminderService.
type ReminderHandler struct {
	svc *services.ReminderService
}

func NewReminderHandler(svc *services.ReminderService) *ReminderHandler {
	return &ReminderHandler{svc: svc}
}

// CreateReminderRequest is the body of POST /api/reminders.
type CreateReminderRequest struct {
	model.ReminderFormData
	UserID string `json:"userId,omitempty"`
}

// CreateReminder POST /api/reminders
func (h *ReminderHandler) CreateReminder(w http.ResponseWriter, r *http.Request) {
	var req CreateReminderRequest
	if err := decodeBody(r, &req); err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	if err := validate.CreateReminder(req.ReminderFormData, req.UserID); err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	id, err := h.svc.Create(r.Context(), req.ReminderFormData, req.UserID)
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, map[string]string{"id": id})
}

// ListReminders GET /api/reminders?userId=
func (h *ReminderHandler) ListReminders(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if err := validate.UserID(userID); err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	rems, err := h.svc.List(r.Context(), userID)
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]any{"reminders": rems, "count": len(rems)})
}

// UpdateReminder PATCH /api/reminders/{id}
func (h *ReminderHandler) UpdateReminder(w http.ResponseWriter, r *http.Request) {
	var patch model.ReminderPatch
	if err := decodeBody(r, &patch); err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	if err := validate.ReminderPatch(patch); err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	if err := h.svc.Update(r.Context(), mux.Vars(r)["id"], patch); err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteNoContent(w)
}

// SetCompleted PUT /api/reminders/{id}/completed
func (h *ReminderHandler) SetCompleted(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Completed *bool `json:"completed"`
	}
	if err := decodeBody(r, &req); err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	if req.Completed == nil {
		respond.WriteBadRequest(w, "completed is required")
		return
	}
	if err := h.svc.SetCompleted(r.Context(), mux.Vars(r)["id"], *req.Completed); err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteNoContent(w)
}

// DeleteReminder DELETE /api/reminders/{id}
func (h *ReminderHandler) DeleteReminder(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteNoContent(w)
}

// Cleanup POST /api/cleanup
func (h *ReminderHandler) Cleanup(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.Cleanup(r.Context())
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, res)
}

func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: invalid JSON: %v", model.ErrValidation, err)
	}
	return nil
}
