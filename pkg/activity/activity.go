// Package activity defines the itinerary activity record and the operations
// the rest of the app performs on day lists: patching, normalizing, sorting,
// and search filtering.
package activity

import (
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

const (
	// TimeSentinel marks an activity whose start time has not been set.
	TimeSentinel = "--:--"

	// UntitledPlaceholder replaces an empty title on save.
	UntitledPlaceholder = "Untitled activity"
)

// Activity is one scheduled item in a day's itinerary. JSON field names
// match the persisted storage layout.
type Activity struct {
	ID       string `json:"id"`
	Time     string `json:"time"`
	Title    string `json:"activity"`
	Location string `json:"location,omitempty"`
	Notes    string `json:"notes,omitempty"`

	// IsNew is true only between creation and the first successful save.
	// It is never persisted as true.
	IsNew bool `json:"-"`
}

// New returns a blank activity with a fresh id and sentinel defaults,
// waiting for its first save.
func New() *Activity {
	return &Activity{
		ID:    uuid.NewString(),
		Time:  TimeSentinel,
		IsNew: true,
	}
}

// Patch enumerates the fields a save may change. Nil means leave unchanged.
type Patch struct {
	Time     *string
	Title    *string
	Location *string
	Notes    *string
}

// Apply merges the patch into a and marks it saved. Empty submitted values
// normalize to the placeholder title and the time sentinel.
func (a *Activity) Apply(p Patch) {
	if p.Time != nil {
		a.Time = *p.Time
	}
	if p.Title != nil {
		a.Title = *p.Title
	}
	if p.Location != nil {
		a.Location = *p.Location
	}
	if p.Notes != nil {
		a.Notes = *p.Notes
	}
	if strings.TrimSpace(a.Title) == "" {
		a.Title = UntitledPlaceholder
	}
	if strings.TrimSpace(a.Time) == "" {
		a.Time = TimeSentinel
	}
	a.IsNew = false
}

// ClockMinutes parses an HH:MM 24-hour time into minutes after midnight.
// The sentinel and anything unparseable return ok=false.
func ClockMinutes(s string) (int, bool) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 {
		return 0, false
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, false
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}

// Sort orders a day's activities ascending by clock time, stable so ties
// keep insertion order. Activities without a parseable time sort last.
func Sort(list []*Activity) {
	sort.SliceStable(list, func(i, j int) bool {
		mi, oki := ClockMinutes(list[i].Time)
		mj, okj := ClockMinutes(list[j].Time)
		switch {
		case oki && okj:
			return mi < mj
		case oki:
			return true
		case okj:
			return false
		default:
			return false
		}
	})
}

// Matches reports whether the query appears in the title, location, or
// notes, case-insensitively. An empty query matches everything.
func (a *Activity) Matches(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(a.Title), q) ||
		strings.Contains(strings.ToLower(a.Location), q) ||
		strings.Contains(strings.ToLower(a.Notes), q)
}

// Filter returns the activities matching query, preserving order. The
// underlying list is not modified.
func Filter(list []*Activity, query string) []*Activity {
	if strings.TrimSpace(query) == "" {
		return list
	}
	out := make([]*Activity, 0, len(list))
	for _, a := range list {
		if a.Matches(query) {
			out = append(out, a)
		}
	}
	return out
}

// FindByID returns the activity with the given id and its index, or nil, -1.
func FindByID(list []*Activity, id string) (*Activity, int) {
	for i, a := range list {
		if a.ID == id {
			return a, i
		}
	}
	return nil, -1
}

// StrPtr is a small helper for building patches from flag values.
func StrPtr(s string) *string {
	return &s
}
