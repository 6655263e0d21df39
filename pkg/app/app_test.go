package app

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"tableflip.dev/wayfare/pkg/activity"
	"tableflip.dev/wayfare/pkg/datekey"
	"tableflip.dev/wayfare/pkg/progress"
	"tableflip.dev/wayfare/pkg/store"
)

var fixedNow = func() time.Time {
	return time.Date(2025, 12, 3, 12, 0, 0, 0, time.Local)
}

const (
	todayKey    = datekey.Key("2025-12-03")
	tomorrowKey = datekey.Key("2025-12-04")
)

type memoryPersistence struct {
	mu       sync.Mutex
	days     map[datekey.Key][]*activity.Activity
	progress map[datekey.Key]progress.State
	premium  bool

	savedDays int
}

func newMemoryPersistence() *memoryPersistence {
	return &memoryPersistence{
		days:     make(map[datekey.Key][]*activity.Activity),
		progress: make(map[datekey.Key]progress.State),
	}
}

func (m *memoryPersistence) seed(day datekey.Key, list ...*activity.Activity) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.days[day] = cloneList(list)
}

func (m *memoryPersistence) Itinerary(_ context.Context) map[datekey.Key][]*activity.Activity {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[datekey.Key][]*activity.Activity, len(m.days))
	for k, list := range m.days {
		if len(list) == 0 {
			continue
		}
		out[k] = cloneList(list)
	}
	return out
}

func (m *memoryPersistence) Day(_ context.Context, day datekey.Key) []*activity.Activity {
	m.mu.Lock()
	defer m.mu.Unlock()
	return cloneList(m.days[day])
}

func (m *memoryPersistence) SaveDay(day datekey.Key, list []*activity.Activity) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.savedDays++
	if len(list) == 0 {
		delete(m.days, day)
		return nil
	}
	m.days[day] = cloneList(list)
	return nil
}

func (m *memoryPersistence) ProgressAll(_ context.Context) map[datekey.Key]progress.State {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[datekey.Key]progress.State, len(m.progress))
	for k, st := range m.progress {
		out[k] = st
	}
	return out
}

func (m *memoryPersistence) DayProgress(day datekey.Key) progress.State {
	m.mu.Lock()
	defer m.mu.Unlock()
	if st, ok := m.progress[day]; ok {
		return st
	}
	return progress.Fresh()
}

func (m *memoryPersistence) SaveProgress(day datekey.Key, st progress.State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.progress[day] = st
	return nil
}

func (m *memoryPersistence) Premium() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.premium
}

func (m *memoryPersistence) SetPremium(on bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.premium = on
	return nil
}

func (m *memoryPersistence) Watch(context.Context) (<-chan store.Event, error) {
	return nil, nil
}

func cloneList(list []*activity.Activity) []*activity.Activity {
	if list == nil {
		return nil
	}
	out := make([]*activity.Activity, len(list))
	for i, a := range list {
		cp := *a
		out[i] = &cp
	}
	return out
}

func mk(id, clock, title string) *activity.Activity {
	return &activity.Activity{ID: id, Time: clock, Title: title}
}

func TestStepClickPersistsProgress(t *testing.T) {
	mp := newMemoryPersistence()
	mp.seed(todayKey, mk("a", "09:30", "Museum"), mk("b", "14:00", "Lunch"))

	svc := New(context.Background(), mp, nil, fixedNow)
	svc.Select(todayKey)

	if err := svc.StepClick(0); err != nil {
		t.Fatalf("step click: %v", err)
	}

	st := mp.DayProgress(todayKey)
	if st.CurrentIndex != 1 || st.CompletedUpTo != 0 {
		t.Fatalf("unexpected persisted progress: %+v", st)
	}
}

func TestAddIsNotPersistedUntilSaved(t *testing.T) {
	mp := newMemoryPersistence()
	svc := New(context.Background(), mp, nil, fixedNow)
	svc.Select(todayKey)

	a := svc.AddActivity(todayKey)
	if !a.IsNew {
		t.Fatal("expected a new draft")
	}
	if mp.savedDays != 0 {
		t.Fatal("a draft must not hit the store")
	}
	if len(svc.Engine.View()) != 1 {
		t.Fatal("the draft should appear in the session view")
	}
}

func TestFirstSaveGatedOnSubscription(t *testing.T) {
	mp := newMemoryPersistence()
	svc := New(context.Background(), mp, nil, fixedNow)
	svc.Select(todayKey)

	a := svc.AddActivity(todayKey)
	patch := activity.Patch{Title: activity.StrPtr("Museum"), Time: activity.StrPtr("09:30")}

	saved, pending, err := svc.SaveActivity(todayKey, a.ID, patch)
	if !errors.Is(err, ErrSubscriptionRequired) {
		t.Fatalf("expected ErrSubscriptionRequired, got %v", err)
	}
	if saved != nil {
		t.Fatal("gated save must not return a record")
	}
	if pending == nil || pending.Day != todayKey {
		t.Fatalf("expected pending save for today, got %+v", pending)
	}

	// The draft is gone: from the session and from the store.
	if len(svc.Day(todayKey)) != 0 {
		t.Fatalf("expected the draft removed, got %+v", svc.Day(todayKey))
	}
	if got := mp.Day(context.Background(), todayKey); len(got) != 0 {
		t.Fatalf("expected nothing stored, got %+v", got)
	}
}

func TestPendingSaveCompletesAfterUpgrade(t *testing.T) {
	mp := newMemoryPersistence()
	svc := New(context.Background(), mp, nil, fixedNow)
	svc.Select(todayKey)

	a := svc.AddActivity(todayKey)
	patch := activity.Patch{Title: activity.StrPtr("Museum"), Time: activity.StrPtr("09:30")}
	_, pending, err := svc.SaveActivity(todayKey, a.ID, patch)
	if !errors.Is(err, ErrSubscriptionRequired) {
		t.Fatalf("expected gate, got %v", err)
	}

	if err := svc.GrantPremium(); err != nil {
		t.Fatalf("grant premium: %v", err)
	}
	landed := svc.CompletePendingSave(pending)
	if landed.IsNew {
		t.Fatal("expected the landed record to be saved")
	}
	if landed.Title != "Museum" || landed.Time != "09:30" {
		t.Fatalf("pending fields lost: %+v", landed)
	}

	stored := mp.Day(context.Background(), todayKey)
	if len(stored) != 1 || stored[0].Title != "Museum" {
		t.Fatalf("expected the record stored, got %+v", stored)
	}
}

func TestPremiumSkipsTheGate(t *testing.T) {
	mp := newMemoryPersistence()
	mp.premium = true
	svc := New(context.Background(), mp, nil, fixedNow)
	svc.Select(todayKey)

	a := svc.AddActivity(todayKey)
	saved, pending, err := svc.SaveActivity(todayKey, a.ID, activity.Patch{Title: activity.StrPtr("Museum")})
	if err != nil || pending != nil {
		t.Fatalf("expected a clean save, got %v %+v", err, pending)
	}
	if saved.IsNew {
		t.Fatal("expected IsNew cleared")
	}
	if got := mp.Day(context.Background(), todayKey); len(got) != 1 {
		t.Fatalf("expected the record stored, got %+v", got)
	}
}

func TestEditingExistingRecordNeverGated(t *testing.T) {
	mp := newMemoryPersistence()
	mp.seed(todayKey, mk("a", "09:30", "Museum"))

	svc := New(context.Background(), mp, nil, fixedNow)
	svc.Select(todayKey)

	saved, pending, err := svc.SaveActivity(todayKey, "a", activity.Patch{Title: activity.StrPtr("Museum, east wing")})
	if err != nil || pending != nil {
		t.Fatalf("expected edits to pass without premium, got %v %+v", err, pending)
	}
	if saved.Title != "Museum, east wing" {
		t.Fatalf("unexpected title: %q", saved.Title)
	}
}

func TestSaveUnknownID(t *testing.T) {
	mp := newMemoryPersistence()
	svc := New(context.Background(), mp, nil, fixedNow)
	svc.Select(todayKey)

	if _, _, err := svc.SaveActivity(todayKey, "nope", activity.Patch{}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteReclampsSelectedDay(t *testing.T) {
	mp := newMemoryPersistence()
	mp.seed(todayKey, mk("a", "09:30", "Museum"), mk("b", "14:00", "Lunch"), mk("c", "18:00", "Dinner"))

	svc := New(context.Background(), mp, nil, fixedNow)
	svc.Select(todayKey)
	if err := svc.StepClick(2); err != nil {
		t.Fatalf("step click: %v", err)
	}

	if err := svc.DeleteActivity(todayKey, "c"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	st := svc.Engine.State()
	if st.CurrentIndex != 1 || st.CompletedUpTo != 1 {
		t.Fatalf("expected reclamped state, got %+v", st)
	}
	if got := mp.Day(context.Background(), todayKey); len(got) != 2 {
		t.Fatalf("expected 2 stored, got %d", len(got))
	}
}

func TestDeleteReclampsUnselectedDay(t *testing.T) {
	mp := newMemoryPersistence()
	mp.seed(tomorrowKey, mk("a", "09:30", "Museum"), mk("b", "14:00", "Lunch"))
	mp.progress[tomorrowKey] = progress.State{CurrentIndex: 1, CompletedUpTo: 1}

	svc := New(context.Background(), mp, nil, fixedNow)
	svc.Select(todayKey)

	if err := svc.DeleteActivity(tomorrowKey, "b"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	// The unselected day's stored progress is clamped to the shrunken list.
	st := mp.DayProgress(tomorrowKey)
	if st.CurrentIndex != 0 || st.CompletedUpTo != 0 {
		t.Fatalf("expected clamped progress for the other day, got %+v", st)
	}
}

func TestDeleteUnknownID(t *testing.T) {
	mp := newMemoryPersistence()
	svc := New(context.Background(), mp, nil, fixedNow)
	svc.Select(todayKey)

	if err := svc.DeleteActivity(todayKey, "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSummaryTracksActiveActivity(t *testing.T) {
	mp := newMemoryPersistence()
	mp.seed(todayKey, mk("a", "09:30", "Museum"), mk("b", "14:00", "Lunch"))

	svc := New(context.Background(), mp, nil, fixedNow)
	svc.Select(todayKey)

	s := svc.Summary()
	if s.Title != "Museum" {
		t.Fatalf("expected the earliest activity, got %q", s.Title)
	}

	if err := svc.StepClick(0); err != nil {
		t.Fatalf("step click: %v", err)
	}
	s = svc.Summary()
	if s.Title != "Museum" {
		t.Fatalf("the clicked activity headlines, got %q", s.Title)
	}
	if s.CompletedCount != 1 || s.TotalItems != 2 {
		t.Fatalf("unexpected counts: %d/%d", s.CompletedCount, s.TotalItems)
	}
}

func TestBrowsingAnotherDayDoesNotLeakIntoSummary(t *testing.T) {
	mp := newMemoryPersistence()
	mp.seed(todayKey, mk("a", "09:30", "Museum"))
	mp.seed(tomorrowKey, mk("z", "10:00", "Airport"))

	svc := New(context.Background(), mp, nil, fixedNow)
	svc.Select(tomorrowKey)
	if err := svc.StepClick(0); err != nil {
		t.Fatalf("step click: %v", err)
	}

	s := svc.Summary()
	if s.Title != "Museum" {
		t.Fatalf("expected today's own activity, got %q", s.Title)
	}
	if s.CompletedCount != 0 {
		t.Fatalf("browsing tomorrow must not complete today's steps, got %d", s.CompletedCount)
	}
}

func TestDayNumberInSummary(t *testing.T) {
	mp := newMemoryPersistence()
	mp.seed("2025-12-01", mk("a", "09:30", "Arrival"))
	mp.seed(todayKey, mk("b", "09:30", "Museum"))

	svc := New(context.Background(), mp, nil, fixedNow)
	svc.Select(todayKey)

	if s := svc.Summary(); s.DayNumber != 3 {
		t.Fatalf("expected day 3, got %d", s.DayNumber)
	}
}

func TestSelectResetsOtherDaysOnVisit(t *testing.T) {
	mp := newMemoryPersistence()
	mp.seed(tomorrowKey, mk("a", "09:30", "Museum"), mk("b", "14:00", "Lunch"))
	mp.progress[tomorrowKey] = progress.State{CurrentIndex: 1, CompletedUpTo: 1}

	svc := New(context.Background(), mp, nil, fixedNow)
	svc.Select(tomorrowKey)

	st := svc.Engine.State()
	if st.CurrentIndex != 0 || st.CompletedUpTo != -1 {
		t.Fatalf("expected a fresh view of another day, got %+v", st)
	}
	// The reset is persisted so the stale state does not come back.
	if got := mp.DayProgress(tomorrowKey); got != progress.Fresh() {
		t.Fatalf("expected the reset persisted, got %+v", got)
	}
}
