package service

import (
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// parseDate reads a YYYY-MM-DD calendar date as UTC midnight.
func parseDate(field, value string) (time.Time, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, invalid("%s must be a date in YYYY-MM-DD format", field)
	}
	return t, nil
}

// parseOptionalDate returns nil for a missing or blank value.
func parseOptionalDate(field string, value *string) (*time.Time, error) {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil, nil
	}
	t, err := parseDate(field, *value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// dateOrToday parses value, falling back to the current UTC date.
func dateOrToday(field string, value *string, now time.Time) (time.Time, error) {
	t, err := parseOptionalDate(field, value)
	if err != nil {
		return time.Time{}, err
	}
	if t == nil {
		return today(now), nil
	}
	return *t, nil
}

func today(now time.Time) time.Time {
	y, m, d := now.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
