package activity

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestNewStartsUnsaved(t *testing.T) {
	a := New()
	if a.ID == "" {
		t.Fatal("expected a generated id")
	}
	if a.Time != TimeSentinel {
		t.Fatalf("expected time sentinel, got %q", a.Time)
	}
	if !a.IsNew {
		t.Fatal("expected IsNew")
	}
}

func TestIsNewNeverSerializes(t *testing.T) {
	a := New()
	data, err := json.Marshal(a)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(data), "IsNew") || strings.Contains(string(data), "isNew") {
		t.Fatalf("IsNew leaked into JSON: %s", data)
	}
}

func TestApplyMergesAndNormalizes(t *testing.T) {
	a := New()
	a.Apply(Patch{Title: StrPtr("Louvre"), Time: StrPtr("09:30")})
	if a.IsNew {
		t.Fatal("expected save to clear IsNew")
	}
	if a.Title != "Louvre" || a.Time != "09:30" {
		t.Fatalf("unexpected fields: %q %q", a.Title, a.Time)
	}

	// Nil fields leave values alone.
	a.Apply(Patch{Location: StrPtr("Paris")})
	if a.Title != "Louvre" || a.Time != "09:30" || a.Location != "Paris" {
		t.Fatalf("unexpected fields after partial patch: %+v", a)
	}

	// Empty submitted values fall back to the placeholders.
	a.Apply(Patch{Title: StrPtr("  "), Time: StrPtr("")})
	if a.Title != UntitledPlaceholder {
		t.Fatalf("expected placeholder title, got %q", a.Title)
	}
	if a.Time != TimeSentinel {
		t.Fatalf("expected time sentinel, got %q", a.Time)
	}
}

func TestClockMinutes(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"00:00", 0, true},
		{"09:30", 570, true},
		{"23:59", 1439, true},
		{TimeSentinel, 0, false},
		{"24:00", 0, false},
		{"12:60", 0, false},
		{"noon", 0, false},
		{"", 0, false},
	}
	for _, tc := range tests {
		got, ok := ClockMinutes(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("ClockMinutes(%q): expected (%d, %v), got (%d, %v)", tc.in, tc.want, tc.ok, got, ok)
		}
	}
}

func TestSortByTimeUnparseableLast(t *testing.T) {
	list := []*Activity{
		{ID: "a", Time: "14:00", Title: "Lunch"},
		{ID: "b", Time: TimeSentinel, Title: "Sometime"},
		{ID: "c", Time: "09:30", Title: "Museum"},
		{ID: "d", Time: TimeSentinel, Title: "Later"},
		{ID: "e", Time: "09:30", Title: "Museum tie"},
	}
	Sort(list)

	want := []string{"c", "e", "a", "b", "d"}
	for i, id := range want {
		if list[i].ID != id {
			t.Fatalf("position %d: expected %s, got %s", i, id, list[i].ID)
		}
	}
}

func TestFilterMatchesAnyField(t *testing.T) {
	list := []*Activity{
		{ID: "a", Title: "Louvre visit"},
		{ID: "b", Title: "Lunch", Location: "Le Marais"},
		{ID: "c", Title: "Walk", Notes: "bring the louvre tickets"},
	}

	got := Filter(list, "LOUVRE")
	if len(got) != 2 || got[0].ID != "a" || got[1].ID != "c" {
		t.Fatalf("unexpected filter result: %+v", got)
	}

	if got := Filter(list, "  "); len(got) != 3 {
		t.Fatalf("blank query should match everything, got %d", len(got))
	}
	if got := Filter(list, "nothing here"); len(got) != 0 {
		t.Fatalf("expected no matches, got %d", len(got))
	}
}

func TestFindByID(t *testing.T) {
	list := []*Activity{{ID: "a"}, {ID: "b"}}
	if a, i := FindByID(list, "b"); a == nil || i != 1 {
		t.Fatalf("expected b at 1, got %v %d", a, i)
	}
	if a, i := FindByID(list, "zz"); a != nil || i != -1 {
		t.Fatalf("expected miss, got %v %d", a, i)
	}
}
