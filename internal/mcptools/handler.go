// Package mcptools exposes reminder operations as MCP tools.
package mcptools

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"github.com/dayminder/dayminder/internal/api/validate"
	"github.com/dayminder/dayminder/internal/model"
	"github.com/dayminder/dayminder/viewstate"
)

// ReminderHandler registers the reminder tools on an MCP server.
type ReminderHandler struct {
	repo viewstate.Repository
	log  zerolog.Logger
	now  func() time.Time
}

// NewReminderHandler serves tools backed by repo. A nil now uses time.Now.
func NewReminderHandler(repo viewstate.Repository, log zerolog.Logger, now func() time.Time) *ReminderHandler {
	if now == nil {
		now = time.Now
	}
	return &ReminderHandler{repo: repo, log: log, now: now}
}

func (h *ReminderHandler) RegisterTools(s *server.MCPServer) error {
	add := mcp.NewTool("add_reminder",
		mcp.WithDescription("Create a reminder for a time of day; returns its id"),
		mcp.WithString("title", mcp.Required(), mcp.Description("What to be reminded about (≤200 chars)")),
		mcp.WithString("time", mcp.Required(), mcp.Description("Time of day as HH:MM, 24h")),
		mcp.WithString("repeat_mode", mcp.Description("today (default) or everyday")),
		mcp.WithString("user_id", mcp.Description("Optional owner tag")),
	)
	list := mcp.NewTool("list_reminders",
		mcp.WithDescription("List reminders newest first; stale one-time reminders are cleaned up first"),
		mcp.WithString("user_id", mcp.Description("Only reminders with this owner tag")),
	)
	pastDue := mcp.NewTool("get_past_due_reminders",
		mcp.WithDescription("List open reminders whose time has already passed today"),
		mcp.WithString("user_id", mcp.Description("Only reminders with this owner tag")),
	)
	update := mcp.NewTool("update_reminder",
		mcp.WithDescription("Change a reminder's title, time or repeat mode"),
		mcp.WithString("id", mcp.Required(), mcp.Description("Reminder id")),
		mcp.WithString("title", mcp.Description("New title")),
		mcp.WithString("time", mcp.Description("New time as HH:MM")),
		mcp.WithString("repeat_mode", mcp.Description("New repeat mode: today or everyday")),
	)
	complete := mcp.NewTool("set_reminder_completed",
		mcp.WithDescription("Mark a reminder completed or open"),
		mcp.WithString("id", mcp.Required(), mcp.Description("Reminder id")),
		mcp.WithBoolean("completed", mcp.Required(), mcp.Description("true to complete, false to reopen")),
	)
	del := mcp.NewTool("delete_reminder",
		mcp.WithDescription("Delete a reminder permanently"),
		mcp.WithString("id", mcp.Required(), mcp.Description("Reminder id")),
	)
	cleanupTool := mcp.NewTool("cleanup_reminders",
		mcp.WithDescription("Purge one-time reminders from earlier days and complete past-due ones"),
	)

	s.AddTool(add, h.handleAdd)
	s.AddTool(list, h.handleList)
	s.AddTool(pastDue, h.handlePastDue)
	s.AddTool(update, h.handleUpdate)
	s.AddTool(complete, h.handleSetCompleted)
	s.AddTool(del, h.handleDelete)
	s.AddTool(cleanupTool, h.handleCleanup)
	return nil
}

// optString returns a string argument or "" when absent.
func optString(req mcp.CallToolRequest, key string) string {
	if v, ok := req.GetArguments()[key].(string); ok {
		return v
	}
	return ""
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(string(b)), nil
}

func (h *ReminderHandler) handleAdd(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title, err := req.RequireString("title")
	if err != nil {
		return mcp.NewToolResultError("title is required"), nil
	}
	at, err := req.RequireString("time")
	if err != nil {
		return mcp.NewToolResultError("time is required"), nil
	}
	mode := model.RepeatMode(optString(req, "repeat_mode"))
	if mode == "" {
		mode = model.RepeatToday
	}

	form := model.ReminderFormData{Title: title, Time: at, RepeatMode: mode}
	userID := optString(req, "user_id")
	if err := validate.CreateReminder(form, userID); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	h.log.Debug().Str("title", title).Str("time", at).Str("repeat_mode", string(mode)).Msg("add_reminder invoked")

	start := time.Now()
	id, err := h.repo.Create(ctx, form, userID)
	if err != nil {
		h.log.Error().Err(err).Dur("elapsed", time.Since(start)).Msg("add_reminder failed")
		return mcp.NewToolResultError(fmt.Sprintf("failed to add reminder: %v", err)), nil
	}
	return jsonResult(map[string]string{"id": id})
}

func (h *ReminderHandler) handleList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	list, err := h.repo.List(ctx, optString(req, "user_id"))
	if err != nil {
		h.log.Error().Err(err).Msg("list_reminders failed")
		return mcp.NewToolResultError(fmt.Sprintf("failed to list reminders: %v", err)), nil
	}
	if len(list) == 0 {
		return mcp.NewToolResultText("No reminders found."), nil
	}
	return jsonResult(list)
}

func (h *ReminderHandler) handlePastDue(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	list, err := h.repo.List(ctx, optString(req, "user_id"))
	if err != nil {
		h.log.Error().Err(err).Msg("get_past_due_reminders failed")
		return mcp.NewToolResultError(fmt.Sprintf("failed to list reminders: %v", err)), nil
	}
	now := h.now()
	var due []model.Reminder
	for _, r := range list {
		if r.PastDue(now) {
			due = append(due, r)
		}
	}
	if len(due) == 0 {
		return mcp.NewToolResultText("No past-due reminders."), nil
	}
	return jsonResult(due)
}

func (h *ReminderHandler) handleUpdate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("id is required"), nil
	}
	var patch model.ReminderPatch
	if v := optString(req, "title"); v != "" {
		patch.Title = model.Some(v)
	}
	if v := optString(req, "time"); v != "" {
		patch.Time = model.Some(v)
	}
	if v := optString(req, "repeat_mode"); v != "" {
		patch.RepeatMode = model.Some(model.RepeatMode(v))
	}
	if patch.IsEmpty() {
		return mcp.NewToolResultError("nothing to update: pass title, time or repeat_mode"), nil
	}
	if err := validate.ReminderPatch(patch); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := h.repo.Update(ctx, id, patch); err != nil {
		h.log.Error().Err(err).Str("id", id).Msg("update_reminder failed")
		return mcp.NewToolResultError(fmt.Sprintf("failed to update reminder: %v", err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Reminder %s updated.", id)), nil
}

func (h *ReminderHandler) handleSetCompleted(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("id is required"), nil
	}
	completed, ok := req.GetArguments()["completed"].(bool)
	if !ok {
		return mcp.NewToolResultError("completed must be true or false"), nil
	}

	if err := h.repo.SetCompleted(ctx, id, completed); err != nil {
		h.log.Error().Err(err).Str("id", id).Msg("set_reminder_completed failed")
		return mcp.NewToolResultError(fmt.Sprintf("failed to set completed: %v", err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Reminder %s completed=%t.", id, completed)), nil
}

func (h *ReminderHandler) handleDelete(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("id is required"), nil
	}
	if err := h.repo.Delete(ctx, id); err != nil {
		h.log.Error().Err(err).Str("id", id).Msg("delete_reminder failed")
		return mcp.NewToolResultError(fmt.Sprintf("failed to delete reminder: %v", err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Reminder %s deleted.", id)), nil
}

func (h *ReminderHandler) handleCleanup(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	res, err := h.repo.Cleanup(ctx)
	if err != nil {
		h.log.Error().Err(err).Msg("cleanup_reminders failed")
		return mcp.NewToolResultError(fmt.Sprintf("cleanup failed: %v", err)), nil
	}
	return jsonResult(res)
}
