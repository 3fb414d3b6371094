// Package dateutils provides the date and month arithmetic used throughout
// the application: month-safe date rolling for installments and recurrence,
// and the "YYYY-MM" month keys used for skip marking and month closing.
package dateutils

import (
	"fmt"
	"strings"
	"time"
)

// Common date format constants used throughout the application.
const (
	DateLayoutISO = "2006-01-02"
	MonthLayout   = "2006-01"
)

// CommonFormats is a list of standard formats to try when parsing dates.
var CommonFormats = []string{
	DateLayoutISO,
	"02.01.2006",
	"02/01/2006",
	"2006/01/02",
}

// AddMonths returns a date n months after d (n may be negative). When the
// original day-of-month does not exist in the target month, the day is
// clamped to the target month's last day, so Jan 31 + 1 month is Feb 28 (or
// Feb 29 in a leap year). Hours and smaller units are preserved.
//
// time.Time.AddDate is not used directly because it normalizes overflowing
// days into the next month (Jan 31 + 1 month would become Mar 3).
func AddMonths(d time.Time, n int) time.Time {
	year, month, day := d.Date()

	// Normalize to a zero-based month index so negative offsets divide
	// cleanly.
	idx := year*12 + int(month) - 1 + n
	targetYear := idx / 12
	targetMonth := time.Month(idx%12 + 1)
	if idx < 0 && idx%12 != 0 {
		targetYear = (idx - 11) / 12
		targetMonth = time.Month((idx%12+12)%12 + 1)
	}

	if last := DaysIn(targetYear, targetMonth); day > last {
		day = last
	}

	hour, min, sec := d.Clock()
	return time.Date(targetYear, targetMonth, day, hour, min, sec, d.Nanosecond(), d.Location())
}

// AddMonthsPtr applies AddMonths to an optional date, preserving nil.
func AddMonthsPtr(d *time.Time, n int) *time.Time {
	if d == nil {
		return nil
	}
	shifted := AddMonths(*d, n)
	return &shifted
}

// DaysIn returns the number of days in the given month, leap-year aware.
func DaysIn(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// MonthDiff returns the whole-month distance from a to b, ignoring the
// day-of-month. It is the offset the series edit propagation shifts by.
func MonthDiff(a, b time.Time) int {
	return (b.Year()*12 + int(b.Month())) - (a.Year()*12 + int(a.Month()))
}

// MonthKey derives the "YYYY-MM" key for the month containing d.
func MonthKey(d time.Time) string {
	return d.Format(MonthLayout)
}

// ParseMonthKey parses a "YYYY-MM" key back into the first day of that month
// (UTC).
func ParseMonthKey(key string) (time.Time, error) {
	t, err := time.Parse(MonthLayout, key)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month key %q (want YYYY-MM): %w", key, err)
	}
	return t, nil
}

// NextMonthKey returns the month key one month after the given one.
func NextMonthKey(key string) (string, error) {
	t, err := ParseMonthKey(key)
	if err != nil {
		return "", err
	}
	return MonthKey(AddMonths(t, 1)), nil
}

// ParseDate attempts to parse a date string using multiple common formats.
func ParseDate(dateStr string) (time.Time, error) {
	dateStr = strings.TrimSpace(dateStr)
	for _, format := range CommonFormats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse date: %s", dateStr)
}

// ToISODate formats a time.Time value as an ISO date (YYYY-MM-DD).
func ToISODate(date time.Time) string {
	return date.Format(DateLayoutISO)
}
