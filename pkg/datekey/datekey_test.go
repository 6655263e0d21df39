package datekey

import (
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	k, err := Parse("2025-12-03")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if k != "2025-12-03" {
		t.Fatalf("expected 2025-12-03, got %s", k)
	}

	for _, bad := range []string{"", "12/03/2025", "2025-13-01", "2025-12-3", "yesterday"} {
		if _, err := Parse(bad); err == nil {
			t.Fatalf("expected error parsing %q", bad)
		}
	}
}

func TestForTruncatesToCivilDate(t *testing.T) {
	at := time.Date(2025, 12, 3, 23, 59, 59, 0, time.Local)
	if k := For(at); k != "2025-12-03" {
		t.Fatalf("expected 2025-12-03, got %s", k)
	}
}

func TestBefore(t *testing.T) {
	if !MustParse("2025-01-31").Before(MustParse("2025-02-01")) {
		t.Fatal("expected January before February")
	}
	if MustParse("2025-02-01").Before(MustParse("2025-02-01")) {
		t.Fatal("a key is not before itself")
	}
}

func TestDisplay(t *testing.T) {
	if got := MustParse("2025-12-03").Display(); got != "Wednesday, December 3, 2025" {
		t.Fatalf("unexpected display: %q", got)
	}
	// Malformed keys render as-is rather than panicking.
	if got := Key("garbage").Display(); got != "garbage" {
		t.Fatalf("unexpected display: %q", got)
	}
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"2025-12-01", "2025-12-01", 0},
		{"2025-12-01", "2025-12-03", 2},
		{"2025-12-03", "2025-12-01", -2},
		{"2025-12-28", "2026-01-02", 5},
		// Spans a DST transition in most zones; civil-day math must not care.
		{"2025-03-01", "2025-04-01", 31},
	}
	for _, tc := range tests {
		if got := DaysBetween(Key(tc.a), Key(tc.b)); got != tc.want {
			t.Fatalf("DaysBetween(%s, %s): expected %d, got %d", tc.a, tc.b, tc.want, got)
		}
	}
}

func TestTimeIsMidnightLocal(t *testing.T) {
	at := MustParse("2025-12-03").Time()
	if at.Hour() != 0 || at.Minute() != 0 {
		t.Fatalf("expected midnight, got %v", at)
	}
	if at.Location() != time.Local {
		t.Fatalf("expected local zone, got %v", at.Location())
	}
	if !Key("nope").Time().IsZero() {
		t.Fatal("expected zero time for malformed key")
	}
}
