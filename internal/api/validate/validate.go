package validate

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/dayminder/dayminder/internal/model"
	"github.com/dayminder/dayminder/internal/timepolicy"
)

const (
	maxTitleLen  = 200
	maxUserIDLen = 64
)

// UserID is an opaque owner tag; keep it to printable, unspaced characters.
var userIDRx = regexp.MustCompile(`^[A-Za-z0-9_.@:\-]+$`)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", model.ErrValidation, fmt.Sprintf(format, args...))
}

// Title validates a reminder title:
// - not blank
// - at most 200 characters
func Title(v string) error {
	if strings.TrimSpace(v) == "" {
		return invalid("title is required")
	}
	if utf8.RuneCountInString(v) > maxTitleLen {
		return invalid("title exceeds %d characters", maxTitleLen)
	}
	return nil
}

// Clock validates a zero-padded 24-hour "HH:MM" time.
func Clock(v string) error {
	if v == "" {
		return invalid("time is required")
	}
	if _, _, err := timepolicy.ParseClock(v); err != nil {
		return invalid("time must be HH:MM (00:00-23:59)")
	}
	return nil
}

func RepeatMode(v model.RepeatMode) error {
	if !v.Valid() {
		return invalid("repeatMode must be %q or %q", model.RepeatToday, model.RepeatEveryday)
	}
	return nil
}

// UserID validates an owner tag. Empty means unscoped and is allowed.
func UserID(v string) error {
	if v == "" {
		return nil
	}
	if len(v) > maxUserIDLen || !userIDRx.MatchString(v) {
		return invalid("userId must match %s and be at most %d characters", userIDRx.String(), maxUserIDLen)
	}
	return nil
}

// -------- Request specific helpers ----------

func CreateReminder(form model.ReminderFormData, userID string) error {
	if err := Title(form.Title); err != nil {
		return err
	}
	if err := Clock(form.Time); err != nil {
		return err
	}
	if err := RepeatMode(form.RepeatMode); err != nil {
		return err
	}
	return UserID(userID)
}

// ReminderPatch validates every field the patch sets. A set userId must be
// non-empty: a patch never clears the owner tag.
func ReminderPatch(p model.ReminderPatch) error {
	if p.IsEmpty() {
		return invalid("patch sets no fields")
	}
	if p.Title.Set {
		if err := Title(p.Title.Value); err != nil {
			return err
		}
	}
	if p.Time.Set {
		if err := Clock(p.Time.Value); err != nil {
			return err
		}
	}
	if p.RepeatMode.Set {
		if err := RepeatMode(p.RepeatMode.Value); err != nil {
			return err
		}
	}
	if p.UserID.Set {
		if p.UserID.Value == "" {
			return invalid("userId cannot be cleared")
		}
		if err := UserID(p.UserID.Value); err != nil {
			return err
		}
	}
	return nil
}
