// Package timepolicy decides when a reminder's clock time has passed and
// whether a record belongs to an earlier calendar day.
package timepolicy

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

var errBadClock = errors.New("clock must be HH:MM")

// ParseClock parses a zero-padded 24-hour "HH:MM" string.
func ParseClock(s string) (hour, minute int, err error) {
	hh, mm, ok := strings.Cut(s, ":")
	if !ok || len(hh) != 2 || len(mm) != 2 {
		return 0, 0, errBadClock
	}
	hour, err = strconv.Atoi(hh)
	if err != nil || hour < 0 || hour > 23 || !isDigits(hh) {
		return 0, 0, errBadClock
	}
	minute, err = strconv.Atoi(mm)
	if err != nil || minute < 0 || minute > 59 || !isDigits(mm) {
		return 0, 0, errBadClock
	}
	return hour, minute, nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// HasTimePassed reports whether clock, placed on now's calendar day in now's
// location, lies strictly before now. Unparseable clocks never count as passed.
func HasTimePassed(clock string, now time.Time) bool {
	hour, minute, err := ParseClock(clock)
	if err != nil {
		return false
	}
	y, m, d := now.Date()
	at := time.Date(y, m, d, hour, minute, 0, 0, now.Location())
	return now.After(at)
}

// IsFromPreviousDay reports whether createdAt falls on a different calendar
// day than now, judged in now's location. A zero createdAt is never "previous".
func IsFromPreviousDay(createdAt, now time.Time) bool {
	if createdAt.IsZero() {
		return false
	}
	cy, cm, cd := createdAt.In(now.Location()).Date()
	ny, nm, nd := now.Date()
	return cy != ny || cm != nm || cd != nd
}
