// File: utils/localtime.go
package utils

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

// DateLayout is the calendar date format used across blocks and queries.
const DateLayout = "2006-01-02"

var (
	ErrInvalidDate  = errors.New("invalid date, expected YYYY-MM-DD")
	ErrInvalidClock = errors.New("invalid time, expected HH:MM")
)

var (
	venueMu  sync.RWMutex
	venueLoc = time.Local
)

// SetVenueLocation fixes the zone that decides which calendar day "now" is. An empty name keeps time.Local.
func SetVenueLocation(name string) error {
	if name == "" {
		return nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return fmt.Errorf("load venue timezone %q: %w", name, err)
	}
	venueMu.Lock()
	venueLoc = loc
	venueMu.Unlock()
	return nil
}

// VenueLocation returns the venue zone.
func VenueLocation() *time.Location {
	venueMu.RLock()
	defer venueMu.RUnlock()
	return venueLoc
}

// ParseLocalDate returns the civil date of a YYYY-MM-DD string as midnight UTC. The venue
// zone is never applied: some zones skip midnight on DST day and would shift the date back.
func ParseLocalDate(s string) (time.Time, error) {
	if len(s) != len(DateLayout) {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}

// LocalDate truncates an instant to its calendar date in the venue zone.
func LocalDate(t time.Time) time.Time {
	y, m, d := t.In(VenueLocation()).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FormatLocalDate renders a civil date from ParseLocalDate or LocalDate as YYYY-MM-DD.
func FormatLocalDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseClock converts HH:MM (24h) into minutes since midnight.
func ParseClock(s string) (int, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	h, okH := twoDigits(s[0], s[1])
	m, okM := twoDigits(s[3], s[4])
	if !okH || !okM || h > 23 || m > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	return h*60 + m, nil
}

func twoDigits(a, b byte) (int, bool) {
	if a < '0' || a > '9' || b < '0' || b > '9' {
		return 0, false
	}
	return int(a-'0')*10 + int(b-'0'), true
}

// IsTimeInRange reports start <= check < end on minute offsets. The end minute is never
// inside the range, so a slot starting exactly when a block ends is free.
func IsTimeInRange(check, start, end string) (bool, error) {
	c, err := ParseClock(check)
	if err != nil {
		return false, err
	}
	s, err := ParseClock(start)
	if err != nil {
		return false, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return false, err
	}
	return MinutesInRange(c, s, e), nil
}

// MinutesInRange is the half-open comparison on already parsed offsets.
func MinutesInRange(check, start, end int) bool {
	return start <= check && check < end
}
