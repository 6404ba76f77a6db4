package calendar

import (
	"fmt"
	"sort"
	"time"
)

const anchorLayout = "01-02"

// DefaultInterestAnchors are the month-day pairs on which interest posts.
var DefaultInterestAnchors = []string{"10-17", "01-14", "04-14", "07-16"}

// AnchorSet holds the recurring month-days on which interest is credited.
type AnchorSet struct {
	days map[string]struct{}
}

// NewAnchorSet parses "MM-DD" entries.
func NewAnchorSet(monthDays []string) (AnchorSet, error) {
	set := AnchorSet{days: make(map[string]struct{}, len(monthDays))}
	for _, md := range monthDays {
		if _, err := time.Parse(anchorLayout, md); err != nil {
			return AnchorSet{}, fmt.Errorf("parse interest anchor %q: %w", md, err)
		}
		set.days[md] = struct{}{}
	}
	return set, nil
}

// DefaultAnchors returns the set built from DefaultInterestAnchors.
func DefaultAnchors() AnchorSet {
	set, err := NewAnchorSet(DefaultInterestAnchors)
	if err != nil {
		panic(err) // constant input
	}
	return set
}

// IsAnchor reports whether interest posts on t's date.
func (a AnchorSet) IsAnchor(t time.Time) bool {
	_, ok := a.days[t.Format(anchorLayout)]
	return ok
}

// MonthDays returns the anchors in calendar order.
func (a AnchorSet) MonthDays() []string {
	out := make([]string, 0, len(a.days))
	for md := range a.days {
		out = append(out, md)
	}
	sort.Strings(out)
	return out
}
