package options

import (
	"time"
)

const (
	layoutISO      = "2006-1-2"
	layoutISOShort = "1/2"
	layoutWire     = "2006-01-02"
)

// ParseDay accepts "2026-2-28" or "2/28" for an upcoming day and returns it
// as YYYY-MM-DD.
// A short date that already passed this year is taken to mean next year.
func ParseDay(s string) (string, error) {
	if s == "" {
		return "", nil
	}
	t, err := time.Parse(layoutISO, s)
	if err != nil {
		// Let the year be the same.
		t, err = time.Parse(layoutISOShort, s)
		if err != nil {
			return "", err
		}
		now := time.Now()
		t = t.AddDate(now.Year(), 0, 0)
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		if t.Before(today) {
			t = t.AddDate(1, 0, 0)
		}
	}
	return t.Format(layoutWire), nil
}

// ParseDate accepts "2026-2-28" and returns the day as YYYY-MM-DD.
func ParseDate(s string) (string, error) {
	if s == "" {
		return "", nil
	}
	t, err := time.Parse(layoutISO, s)
	if err != nil {
		return "", err
	}
	return t.Format(layoutWire), nil
}
