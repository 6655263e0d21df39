package today

import (
	"testing"
	"time"

	"tableflip.dev/wayfare/pkg/activity"
	"tableflip.dev/wayfare/pkg/datekey"
	"tableflip.dev/wayfare/pkg/progress"
)

var now = time.Date(2025, 12, 3, 12, 0, 0, 0, time.Local)

const todayKey = datekey.Key("2025-12-03")

func mk(id, clock, title string) *activity.Activity {
	return &activity.Activity{ID: id, Time: clock, Title: title}
}

func TestDeriveHeadlinesEarliestActivity(t *testing.T) {
	data := map[datekey.Key][]*activity.Activity{
		todayKey: {
			mk("b", "14:00", "Lunch"),
			mk("a", "09:30", "Museum"),
		},
	}

	s := Derive(data, &Tracker{}, progress.Fresh(), now)
	if !s.HasSchedule {
		t.Fatal("expected a schedule")
	}
	if s.Title != "Museum" || s.Time != "09:30" {
		t.Fatalf("expected the earliest activity to headline, got %q %q", s.Title, s.Time)
	}
	if s.TotalItems != 2 || s.CompletedCount != 0 {
		t.Fatalf("unexpected counts: %d/%d", s.CompletedCount, s.TotalItems)
	}
}

func TestDeriveUsesTrackedActivity(t *testing.T) {
	lunch := mk("b", "14:00", "Lunch")
	data := map[datekey.Key][]*activity.Activity{
		todayKey: {mk("a", "09:30", "Museum"), lunch},
	}

	tr := &Tracker{}
	tr.SetActive(lunch, true)

	s := Derive(data, tr, progress.State{CurrentIndex: 1, CompletedUpTo: 0}, now)
	if s.Title != "Lunch" {
		t.Fatalf("expected the tracked activity to headline, got %q", s.Title)
	}
	if s.CompletedCount != 1 {
		t.Fatalf("expected 1 completed, got %d", s.CompletedCount)
	}
}

func TestDeriveEmptyToday(t *testing.T) {
	s := Derive(nil, &Tracker{}, progress.Fresh(), now)
	if s.HasSchedule {
		t.Fatal("expected no schedule")
	}
	if s.DayNumber != 1 {
		t.Fatalf("expected day 1, got %d", s.DayNumber)
	}
}

func TestDeriveClampsStaleProgress(t *testing.T) {
	data := map[datekey.Key][]*activity.Activity{
		todayKey: {mk("a", "09:30", "Museum")},
	}
	s := Derive(data, &Tracker{}, progress.State{CurrentIndex: 7, CompletedUpTo: 7}, now)
	if s.CompletedCount != 1 {
		t.Fatalf("expected stale completion to clamp to 1, got %d", s.CompletedCount)
	}
}

func TestDayNumber(t *testing.T) {
	tests := []struct {
		name  string
		days  []string
		want  int
		empty []string
	}{
		{"trip started two days ago", []string{"2025-12-01", "2025-12-03"}, 3, nil},
		{"trip starts today", []string{"2025-12-03"}, 1, nil},
		{"trip starts tomorrow", []string{"2025-12-04"}, 1, nil},
		{"empty days ignored", []string{"2025-12-02"}, 2, []string{"2025-11-01"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			data := make(map[datekey.Key][]*activity.Activity)
			for _, d := range tc.days {
				data[datekey.Key(d)] = []*activity.Activity{mk("x"+d, "09:00", "Thing")}
			}
			for _, d := range tc.empty {
				data[datekey.Key(d)] = []*activity.Activity{}
			}
			s := Derive(data, &Tracker{}, progress.Fresh(), now)
			if s.DayNumber != tc.want {
				t.Fatalf("expected day %d, got %d", tc.want, s.DayNumber)
			}
		})
	}
}

func TestTrackerIgnoresOtherDays(t *testing.T) {
	tr := &Tracker{}
	tr.SetActive(mk("a", "09:30", "Museum"), true)
	if tr.Current() == nil {
		t.Fatal("expected tracked activity")
	}

	// Browsing another day clears the header's live activity.
	tr.SetActive(mk("b", "10:00", "Elsewhere"), false)
	if tr.Current() != nil {
		t.Fatal("expected browsing another day to clear tracking")
	}
}

func TestTrackerReconcile(t *testing.T) {
	a := mk("a", "09:30", "Museum")
	tr := &Tracker{}
	tr.SetActive(a, true)

	// Still in the list: kept.
	tr.Reconcile([]*activity.Activity{a})
	if tr.Current() == nil {
		t.Fatal("expected tracking to survive")
	}

	// Deleted from the list: dropped.
	tr.Reconcile([]*activity.Activity{mk("b", "10:00", "Other")})
	if tr.Current() != nil {
		t.Fatal("expected tracking to drop with the activity")
	}

	tr.SetActive(a, true)
	tr.Reconcile(nil)
	if tr.Current() != nil {
		t.Fatal("expected tracking to drop with an empty day")
	}
}
