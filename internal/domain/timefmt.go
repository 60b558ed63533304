package domain

import (
	"errors"
	"strings"
	"time"
)

var ErrInvalidDateTime = errors.New("invalid date time")

var dateTimeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// ParseDateTime accepts "YYYY-MM-DD HH:MM[:SS]" with either a space or a T
// separator. Trailing fractions or zone suffixes beyond the seconds are
// ignored; the wall clock is interpreted in loc.
func ParseDateTime(value string, loc *time.Location) (time.Time, error) {
	s := strings.Replace(strings.TrimSpace(value), "T", " ", 1)
	if len(s) > 19 {
		s = s[:19]
	}

	for _, layout := range dateTimeLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidDateTime
}

// EndOfDay parses a YYYY-MM-DD date and returns 23:59:59 of that day in loc.
func EndOfDay(date string, loc *time.Location) (time.Time, error) {
	d, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(date), loc)
	if err != nil {
		return time.Time{}, ErrInvalidDateTime
	}
	return d.Add(24*time.Hour - time.Second), nil
}
