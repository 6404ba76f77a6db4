// Package calendar handles civil dates, bank holidays and interest posting days.
package calendar

import (
	"fmt"
	"strings"
	"time"
)

// ISOLayout is the key format used for holidays and day grouping.
const ISOLayout = "2006-01-02"

var monthAbbr = [12]string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// Date returns the civil date y-m-d as UTC midnight.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Civil strips the time of day from t, keeping its calendar date.
func Civil(t time.Time) time.Time {
	return Date(t.Year(), t.Month(), t.Day())
}

// FormatDisplayDate renders t as "DD-Mon-YYYY", e.g. "03-Sep-2024".
func FormatDisplayDate(t time.Time) string {
	return fmt.Sprintf("%02d-%s-%04d", t.Day(), monthAbbr[t.Month()-1], t.Year())
}

// ToSimpleDateString renders t as "YYYY-MM-DD".
func ToSimpleDateString(t time.Time) string {
	return t.Format(ISOLayout)
}

// DaysBetween returns the whole number of days from start to end, rounding
// partial days up. It is zero or negative when end is not after start.
func DaysBetween(start, end time.Time) int {
	d := end.Sub(start)
	days := int(d / (24 * time.Hour))
	if d%(24*time.Hour) > 0 {
		days++
	}
	return days
}

var parseLayouts = []string{
	ISOLayout,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"02-Jan-2006",
	"2006/01/02",
}

// ParseDate reads a date in ISO, RFC 3339 or display form and returns its
// civil date.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("parse date: empty")
	}
	for _, layout := range parseLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Civil(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("parse date %q: unrecognized format", s)
}
