package timepolicy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	h, m, err := ParseClock("09:05")
	require.NoError(t, err)
	assert.Equal(t, 9, h)
	assert.Equal(t, 5, m)

	h, m, err = ParseClock("23:59")
	require.NoError(t, err)
	assert.Equal(t, 23, h)
	assert.Equal(t, 59, m)

	for _, bad := range []string{"", "9:05", "09:5", "24:00", "12:60", "ab:cd", "+1:00", "12-30", "12:30:00", " 1:00", "-1:00"} {
		_, _, err := ParseClock(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestHasTimePassed(t *testing.T) {
	loc := time.FixedZone("test", 5*3600+1800)
	now := time.Date(2026, 3, 14, 12, 30, 15, 0, loc)

	cases := []struct {
		clock string
		want  bool
	}{
		{"00:00", true},
		{"12:29", true},
		{"12:30", true}, // seconds are zeroed, 12:30:15 is after 12:30:00
		{"12:31", false},
		{"23:59", false},
		{"", false},
		{"noon", false},
		{"25:00", false},
		{"12:3x", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, HasTimePassed(tc.clock, now), "clock %q", tc.clock)
	}
}

func TestHasTimePassed_ExactInstantIsNotPassed(t *testing.T) {
	now := time.Date(2026, 3, 14, 8, 0, 0, 0, time.UTC)
	assert.False(t, HasTimePassed("08:00", now))
}

func TestIsFromPreviousDay(t *testing.T) {
	now := time.Date(2026, 3, 14, 0, 5, 0, 0, time.UTC)

	assert.False(t, IsFromPreviousDay(now.Add(-4*time.Minute), now))
	assert.True(t, IsFromPreviousDay(now.Add(-6*time.Minute), now))
	assert.True(t, IsFromPreviousDay(now.AddDate(-1, 0, 0), now))
	assert.True(t, IsFromPreviousDay(now.AddDate(0, -1, 0), now))
	assert.False(t, IsFromPreviousDay(time.Time{}, now))
}

func TestIsFromPreviousDay_UsesNowLocation(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*3600)
	now := time.Date(2026, 3, 14, 7, 0, 0, 0, tokyo)
	// 21:00 UTC on the 13th is 06:00 on the 14th in Tokyo.
	created := time.Date(2026, 3, 13, 21, 0, 0, 0, time.UTC)
	assert.False(t, IsFromPreviousDay(created, now))
}
