// Package datekey provides the canonical YYYY-MM-DD value type used to key
// itinerary days and their timeline progress.
package datekey

import (
	"fmt"
	"time"
)

const layoutISO = "2006-01-02"

// Key identifies a single calendar day, formatted YYYY-MM-DD.
type Key string

// Parse validates s as a date key.
func Parse(s string) (Key, error) {
	t, err := time.Parse(layoutISO, s)
	if err != nil {
		return "", fmt.Errorf("datekey: invalid date %q: %w", s, err)
	}
	return For(t), nil
}

// MustParse panics on malformed input. Test helper.
func MustParse(s string) Key {
	k, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return k
}

// For truncates t to its civil date in t's location.
func For(t time.Time) Key {
	return Key(t.Format(layoutISO))
}

// Today returns the key for the current civil date.
func Today(now time.Time) Key {
	return For(now)
}

// Time returns midnight local time for the key. Malformed keys yield the
// zero time.
func (k Key) Time() time.Time {
	t, err := time.ParseInLocation(layoutISO, string(k), time.Local)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Valid reports whether the key parses as a date.
func (k Key) Valid() bool {
	_, err := time.Parse(layoutISO, string(k))
	return err == nil
}

func (k Key) String() string {
	return string(k)
}

// Before orders keys chronologically. The ISO layout makes this a plain
// string compare for valid keys.
func (k Key) Before(other Key) bool {
	return string(k) < string(other)
}

// Display renders the key the way day titles are shown, for example
// "Wednesday, December 3, 2025". Malformed keys render as-is.
func (k Key) Display() string {
	t, err := time.Parse(layoutISO, string(k))
	if err != nil {
		return string(k)
	}
	return t.Format("Monday, January 2, 2006")
}

// DaysBetween counts calendar days from a to b, positive when b is after a.
// Clock times and zones do not matter, only the civil dates.
func DaysBetween(a, b Key) int {
	at, errA := time.Parse(layoutISO, string(a))
	bt, errB := time.Parse(layoutISO, string(b))
	if errA != nil || errB != nil {
		return 0
	}
	// Both parse in UTC, so every day is exactly 24h.
	return int(bt.Sub(at) / (24 * time.Hour))
}
