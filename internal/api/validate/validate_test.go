package validate

import (
	"errors"
	"strings"
	"testing"

	"github.com/dayminder/dayminder/internal/model"
)

func TestTitle(t *testing.T) {
	tests := []struct {
		name        string
		title       string
		expectError bool
		errorMsg    string
	}{
		{
			name:  "valid title",
			title: "Take medicine",
		},
		{
			name:  "unicode title",
			title: "दवा लें",
		},
		{
			name:        "empty title",
			title:       "",
			expectError: true,
			errorMsg:    "title is required",
		},
		{
			name:        "blank title",
			title:       "   ",
			expectError: true,
			errorMsg:    "title is required",
		},
		{
			name:        "title too long",
			title:       strings.Repeat("a", 201),
			expectError: true,
			errorMsg:    "title exceeds 200 characters",
		},
		{
			name:  "200 multibyte runes",
			title: strings.Repeat("ा", 200),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Title(tt.title)
			if tt.expectError {
				if err == nil {
					t.Fatalf("expected error for title %q", tt.title)
				}
				if !strings.Contains(err.Error(), tt.errorMsg) {
					t.Errorf("expected error containing %q, got %q", tt.errorMsg, err.Error())
				}
				if !errors.Is(err, model.ErrValidation) {
					t.Errorf("expected ErrValidation, got %v", err)
				}
			} else if err != nil {
				t.Errorf("unexpected error for title %q: %v", tt.title, err)
			}
		})
	}
}

func TestClock(t *testing.T) {
	for _, ok := range []string{"00:00", "09:05", "23:59"} {
		if err := Clock(ok); err != nil {
			t.Errorf("Clock(%q) unexpected error: %v", ok, err)
		}
	}
	for _, bad := range []string{"", "9:05", "24:00", "12:60", "ab:cd", "12-30", "12:30:00"} {
		if err := Clock(bad); err == nil {
			t.Errorf("Clock(%q) expected error", bad)
		}
	}
}

func TestCreateReminder(t *testing.T) {
	good := model.ReminderFormData{Title: "Exercise", Time: "07:15", RepeatMode: model.RepeatEveryday}
	if err := CreateReminder(good, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := CreateReminder(good, "user_42"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := CreateReminder(good, "has space"); err == nil {
		t.Fatalf("expected userId error")
	}

	bad := good
	bad.RepeatMode = "weekly"
	if err := CreateReminder(bad, ""); err == nil {
		t.Fatalf("expected repeatMode error")
	}
}

func TestReminderPatch(t *testing.T) {
	if err := ReminderPatch(model.ReminderPatch{}); err == nil {
		t.Fatalf("expected error for empty patch")
	}
	if err := ReminderPatch(model.ReminderPatch{Completed: model.Some(true)}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ReminderPatch(model.ReminderPatch{Time: model.Some("7pm")}); err == nil {
		t.Fatalf("expected time error")
	}
	if err := ReminderPatch(model.ReminderPatch{UserID: model.Some("")}); err == nil {
		t.Fatalf("expected error clearing userId")
	}
	if err := ReminderPatch(model.ReminderPatch{Title: model.Some("")}); err == nil {
		t.Fatalf("expected title error")
	}
}
