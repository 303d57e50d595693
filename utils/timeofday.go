package utils

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const MinutesPerDay = 24 * 60

var (
	ErrInvalidTimeFormat = errors.New("invalid time format")
	ErrInvalidTimeValue  = errors.New("invalid time value")
)

// ParseTimeOfDay converts "H:MM" or "HH:MM" (24-hour) into minutes since midnight.
func ParseTimeOfDay(s string) (int, error) {
	s = strings.TrimSpace(s)
	hh, mm, ok := strings.Cut(s, ":")
	if !ok {
		return 0, fmt.Errorf("%w: %q has no ':'", ErrInvalidTimeFormat, s)
	}
	if len(hh) < 1 || len(hh) > 2 || !allDigits(hh) {
		return 0, fmt.Errorf("%w: bad hours in %q", ErrInvalidTimeFormat, s)
	}
	if len(mm) != 2 || !allDigits(mm) {
		return 0, fmt.Errorf("%w: minutes in %q must be two digits", ErrInvalidTimeFormat, s)
	}

	hours, _ := strconv.Atoi(hh)
	minutes, _ := strconv.Atoi(mm)
	if hours > 23 || minutes > 59 {
		return 0, fmt.Errorf("%w: %q is outside 0:00-23:59", ErrInvalidTimeValue, s)
	}
	return hours*60 + minutes, nil
}

// FormatTimeOfDay renders minutes since midnight as "H:MM".
func FormatTimeOfDay(minutes int) string {
	return fmt.Sprintf("%d:%02d", minutes/60, minutes%60)
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
