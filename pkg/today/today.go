// Package today derives the header summary for the current calendar day:
// the activity to headline, how many of today's steps are done, and which
// trip day number today is.
package today

import (
	"time"

	"tableflip.dev/wayfare/pkg/activity"
	"tableflip.dev/wayfare/pkg/datekey"
	"tableflip.dev/wayfare/pkg/progress"
)

// Summary is the header-facing view of today.
type Summary struct {
	Title    string
	Time     string
	Location string

	DayNumber      int
	CompletedCount int
	TotalItems     int

	// HasSchedule is false when today has no activities at all; the header
	// shows a placeholder instead.
	HasSchedule bool
}

// Tracker remembers which activity is live for today's header. The engine
// feeds it through OnActive; it resets itself whenever the active activity
// stops being meaningful for today.
type Tracker struct {
	current *activity.Activity
}

// SetActive records the activity emitted by a timeline transition.
// Transitions on any day other than today unset the tracked activity:
// browsing history must not leak into today's header.
func (t *Tracker) SetActive(a *activity.Activity, selectedIsToday bool) {
	if !selectedIsToday {
		t.current = nil
		return
	}
	t.current = a
}

// Reconcile repairs the tracked activity against today's list after a
// mutation: it is dropped when the list is empty or its id no longer exists.
func (t *Tracker) Reconcile(todayList []*activity.Activity) {
	if t.current == nil {
		return
	}
	if len(todayList) == 0 {
		t.current = nil
		return
	}
	if a, _ := activity.FindByID(todayList, t.current.ID); a == nil {
		t.current = nil
	}
}

// Current returns the tracked activity, or nil when unset.
func (t *Tracker) Current() *activity.Activity {
	return t.current
}

// Derive computes the summary from the full itinerary map, today's stored
// progress, and the tracker. The headline falls back to today's earliest
// activity when nothing is actively tracked.
func Derive(data map[datekey.Key][]*activity.Activity, t *Tracker, todayState progress.State, now time.Time) Summary {
	key := datekey.Today(now)

	list := make([]*activity.Activity, len(data[key]))
	copy(list, data[key])
	activity.Sort(list)

	s := Summary{
		DayNumber:  dayNumber(data, key),
		TotalItems: len(list),
	}

	todayState.Clamp(len(list))
	s.CompletedCount = todayState.CompletedCount()

	headline := first(list)
	if t != nil && t.Current() != nil {
		headline = t.Current()
	}
	if headline == nil {
		return s
	}

	s.HasSchedule = true
	s.Title = headline.Title
	s.Time = headline.Time
	s.Location = headline.Location
	return s
}

func first(sorted []*activity.Activity) *activity.Activity {
	if len(sorted) == 0 {
		return nil
	}
	return sorted[0]
}

// dayNumber counts calendar days, inclusive, from the earliest date key with
// at least one activity through today. Days before the trip starts, or an
// empty itinerary, read as day 1.
func dayNumber(data map[datekey.Key][]*activity.Activity, todayKey datekey.Key) int {
	var earliest datekey.Key
	for k, list := range data {
		if len(list) == 0 {
			continue
		}
		if earliest == "" || k.Before(earliest) {
			earliest = k
		}
	}
	if earliest == "" {
		return 1
	}
	diff := datekey.DaysBetween(earliest, todayKey)
	if diff < 0 {
		return 1
	}
	return diff + 1
}
