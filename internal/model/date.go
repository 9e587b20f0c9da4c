package model

import (
	"fmt"
	"time"
)

// DateFormat is the on-disk representation of calendar dates.
const DateFormat = "2006-01-02"

// Date is a calendar date with day granularity and no time zone. The zero
// value means "no date" and serializes as the empty string.
type Date struct {
	y int
	m time.Month
	d int
}

// NewDate returns a normalized Date for the given year, month, and day.
func NewDate(year int, month time.Month, day int) Date {
	var d Date
	d.y, d.m, d.d = time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Date()
	return d
}

// Today returns the current date in local time.
func Today() Date {
	y, m, d := time.Now().Date()
	return Date{y, m, d}
}

// ParseDate parses a YYYY-MM-DD string. The empty string parses to the zero
// Date without error.
func ParseDate(s string) (Date, error) {
	if s == "" {
		return Date{}, nil
	}
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return Date{}, fmt.Errorf("malformed date %q: %w", s, err)
	}
	y, m, d := t.Date()
	return Date{y, m, d}, nil
}

// DateOf truncates a time to its calendar date.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{y, m, d}
}

// String formats the date as YYYY-MM-DD, or "" for the zero value.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.time().Format(DateFormat)
}

// IsZero reports whether the date is unset.
func (d Date) IsZero() bool {
	return d.y == 0 && d.m == 0 && d.d == 0
}

// Before reports whether d falls strictly before o.
func (d Date) Before(o Date) bool {
	return d.time().Before(o.time())
}

// After reports whether d falls strictly after o.
func (d Date) After(o Date) bool {
	return d.time().After(o.time())
}

func (d Date) time() time.Time {
	return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC)
}
