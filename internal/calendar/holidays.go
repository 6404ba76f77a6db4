package calendar

import (
	"sort"
	"time"
)

// HolidaySet is a set of non-business days keyed by ISO date. Saturdays are
// always holidays whether or not they are listed.
type HolidaySet struct {
	days map[string]struct{}
}

// NewHolidaySet builds a set from ISO date strings. Entries carrying a time
// component are reduced to their date.
func NewHolidaySet(dates []string) (HolidaySet, error) {
	set := HolidaySet{days: make(map[string]struct{}, len(dates))}
	for _, s := range dates {
		d, err := ParseDate(s)
		if err != nil {
			return HolidaySet{}, err
		}
		set.days[ToSimpleDateString(d)] = struct{}{}
	}
	return set, nil
}

// HolidaysFromTimes builds a set from already-parsed dates.
func HolidaysFromTimes(dates []time.Time) HolidaySet {
	set := HolidaySet{days: make(map[string]struct{}, len(dates))}
	for _, d := range dates {
		set.days[ToSimpleDateString(d)] = struct{}{}
	}
	return set
}

// Contains reports whether t's date is listed. It ignores the Saturday rule.
func (h HolidaySet) Contains(t time.Time) bool {
	_, ok := h.days[ToSimpleDateString(t)]
	return ok
}

// IsHoliday reports whether t is a Saturday or a listed holiday.
func (h HolidaySet) IsHoliday(t time.Time) bool {
	return t.Weekday() == time.Saturday || h.Contains(t)
}

// Len returns the number of listed dates.
func (h HolidaySet) Len() int {
	return len(h.days)
}

// Dates returns the listed ISO dates in order.
func (h HolidaySet) Dates() []string {
	out := make([]string, 0, len(h.days))
	for d := range h.days {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}

// Union returns a new set holding the dates of both sets.
func (h HolidaySet) Union(other HolidaySet) HolidaySet {
	out := HolidaySet{days: make(map[string]struct{}, len(h.days)+len(other.days))}
	for d := range h.days {
		out.days[d] = struct{}{}
	}
	for d := range other.days {
		out.days[d] = struct{}{}
	}
	return out
}
