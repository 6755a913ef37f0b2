package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

var (
	ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")
	ErrInvalidTime = errors.New("invalid time, expected HH:MM")
)

// NormalizeDate rewrites "/" separators to "-" and checks the result parses as
// a calendar date. Stored dates always use the dashed form.
func NormalizeDate(date string) (string, error) {
	date = strings.ReplaceAll(strings.TrimSpace(date), "/", "-")
	if _, err := time.Parse(DateLayout, date); err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	return date, nil
}

// CombineDateTime joins a normalized date with a wall clock time (HH:MM or
// HH:MM:SS) in UTC.
func CombineDateTime(date, clock string) (time.Time, error) {
	day, err := time.ParseInLocation(DateLayout, date, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	offset, err := ParseClock(clock)
	if err != nil {
		return time.Time{}, err
	}
	return day.Add(offset), nil
}

// ParseClock returns the offset from midnight for HH:MM or HH:MM:SS.
func ParseClock(clock string) (time.Duration, error) {
	clock = strings.TrimSpace(clock)
	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err := time.Parse(layout, clock); err == nil {
			return time.Duration(t.Hour())*time.Hour +
				time.Duration(t.Minute())*time.Minute +
				time.Duration(t.Second())*time.Second, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidTime, clock)
}
