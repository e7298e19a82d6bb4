package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useVenue(t *testing.T, name string) {
	t.Helper()
	prev := VenueLocation()
	require.NoError(t, SetVenueLocation(name))
	t.Cleanup(func() {
		venueMu.Lock()
		venueLoc = prev
		venueMu.Unlock()
	})
}

func TestParseLocalDate_CivilMidnight(t *testing.T) {
	d, err := ParseLocalDate("2025-11-01")
	require.NoError(t, err)

	assert.Equal(t, 2025, d.Year())
	assert.Equal(t, time.November, d.Month())
	assert.Equal(t, 1, d.Day())
	assert.Equal(t, 0, d.Hour())
	assert.Equal(t, 0, d.Minute())
	assert.Equal(t, time.Saturday, d.Weekday())
}

func TestParseLocalDate_StableAcrossCalls(t *testing.T) {
	a, err := ParseLocalDate("2025-01-10")
	require.NoError(t, err)
	b, err := ParseLocalDate("2025-01-10")
	require.NoError(t, err)
	assert.True(t, a.Equal(b))
	assert.Equal(t, a.Unix(), b.Unix())
}

// America/Santiago starts DST at midnight, so 2024-09-08 00:00 does not exist there.
func TestParseLocalDate_MidnightDSTZone(t *testing.T) {
	useVenue(t, "America/Santiago")

	d, err := ParseLocalDate("2024-09-08")
	require.NoError(t, err)
	assert.Equal(t, time.Sunday, d.Weekday())
	assert.Equal(t, 8, d.Day())
	assert.Equal(t, "2024-09-08", FormatLocalDate(d))

	prev, err := ParseLocalDate("2024-09-07")
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, d.Sub(prev))
}

func TestParseLocalDate_Invalid(t *testing.T) {
	for _, in := range []string{"", "2025-1-10", "2025-13-01", "2025-02-30", "10/01/2025", "2025-01-10T00:00", "nope"} {
		_, err := ParseLocalDate(in)
		assert.Truef(t, errors.Is(err, ErrInvalidDate), "input %q", in)
	}
}

func TestLocalDate_UsesVenueCalendar(t *testing.T) {
	useVenue(t, "America/Santiago")

	// 02:30 UTC is still the previous evening in Santiago.
	instant := time.Date(2025, time.March, 5, 2, 30, 0, 0, time.UTC)
	assert.Equal(t, "2025-03-04", FormatLocalDate(LocalDate(instant)))

	d := LocalDate(instant)
	assert.Equal(t, "2025-03-05", FormatLocalDate(d.AddDate(0, 0, 1)))
}

func TestParseClock(t *testing.T) {
	cases := map[string]int{
		"00:00": 0,
		"08:30": 510,
		"12:00": 720,
		"23:59": 1439,
	}
	for in, want := range cases {
		got, err := ParseClock(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, in := range []string{"24:00", "9:00", "09:60", "0900", "ab:cd", ""} {
		_, err := ParseClock(in)
		assert.Truef(t, errors.Is(err, ErrInvalidClock), "input %q", in)
	}
}

func TestIsTimeInRange_HalfOpen(t *testing.T) {
	cases := []struct {
		check string
		want  bool
	}{
		{"09:00", true},
		{"09:59", true},
		{"10:00", false},
		{"08:59", false},
	}
	for _, tc := range cases {
		got, err := IsTimeInRange(tc.check, "09:00", "10:00")
		require.NoError(t, err, tc.check)
		assert.Equal(t, tc.want, got, tc.check)
	}

	_, err := IsTimeInRange("9am", "09:00", "10:00")
	assert.ErrorIs(t, err, ErrInvalidClock)
	_, err = IsTimeInRange("09:00", "x", "10:00")
	assert.ErrorIs(t, err, ErrInvalidClock)
}
