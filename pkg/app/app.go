// Package app provides the high-level operations over the itinerary store
// and the timeline engine so the CLI runners and the TUI share one
// implementation.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"tableflip.dev/wayfare/pkg/activity"
	"tableflip.dev/wayfare/pkg/datekey"
	"tableflip.dev/wayfare/pkg/reminder"
	"tableflip.dev/wayfare/pkg/store"
	"tableflip.dev/wayfare/pkg/timeline"
	"tableflip.dev/wayfare/pkg/today"
)

var (
	// ErrNotFound means the activity id is not in that day's list.
	ErrNotFound = errors.New("app: activity not found")

	// ErrSubscriptionRequired blocks the first save of a newly created
	// activity for non-premium users. The entered fields come back as a
	// PendingSave so the payment flow can finish the job.
	ErrSubscriptionRequired = errors.New("app: saving a new activity requires a subscription")
)

// PendingSave carries the field values of a save that was intercepted by
// the subscription gate, waiting for the payment flow to succeed.
type PendingSave struct {
	Day    datekey.Key
	Fields activity.Patch
}

// Service wires persistence, the timeline engine, and today reconciliation
// together. All mutations flow through it so the engine's indices and the
// stored blobs never drift apart.
type Service struct {
	Persistence store.Persistence
	Engine      *timeline.Engine
	Tracker     *today.Tracker
	Reminders   *reminder.Client
	Now         func() time.Time

	data map[datekey.Key][]*activity.Activity
}

// New loads the full itinerary and progress maps and returns a ready
// service. A nil now defaults to time.Now.
func New(ctx context.Context, p store.Persistence, rem *reminder.Client, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	s := &Service{
		Persistence: p,
		Engine:      timeline.New(now),
		Tracker:     &today.Tracker{},
		Reminders:   rem,
		Now:         now,
	}
	s.data = p.Itinerary(ctx)
	if s.data == nil {
		s.data = make(map[datekey.Key][]*activity.Activity)
	}
	s.Engine.Restore(p.ProgressAll(ctx))
	s.Engine.OnActive = func(a *activity.Activity) {
		s.Tracker.SetActive(a, s.Engine.IsToday())
	}
	return s
}

// Data exposes the in-memory itinerary map for derivations.
func (s *Service) Data() map[datekey.Key][]*activity.Activity {
	return s.data
}

// Day returns the (unsorted) list for a day.
func (s *Service) Day(day datekey.Key) []*activity.Activity {
	return s.data[day]
}

// EnsureDate lazily creates an empty list for a day. Idempotent; empty days
// are pruned again at persistence time.
func (s *Service) EnsureDate(day datekey.Key) {
	if _, ok := s.data[day]; !ok {
		s.data[day] = []*activity.Activity{}
	}
}

// Select switches the engine to a day, creating the day lazily.
func (s *Service) Select(day datekey.Key) {
	s.EnsureDate(day)
	s.Engine.Select(day, s.data[day])
	s.persistProgress(day)
}

// SetQuery applies the search filter to the selected day's view.
func (s *Service) SetQuery(query string) {
	s.Engine.SetQuery(query)
}

// StepClick advances or rewinds the selected day's timeline and persists
// the resulting progress.
func (s *Service) StepClick(i int) error {
	if err := s.Engine.StepClick(i); err != nil {
		return err
	}
	s.persistProgress(s.Engine.Selected())
	return nil
}

// AddActivity appends a blank, unsaved activity to the day and returns it.
// Nothing is persisted until the record's first save.
func (s *Service) AddActivity(day datekey.Key) *activity.Activity {
	s.EnsureDate(day)
	a := activity.New()
	s.data[day] = append(s.data[day], a)
	s.refresh(day)
	return a
}

// SaveActivity merges the patch into the activity and persists the day.
//
// The first save of a brand-new record is gated on premium: without it the
// record is discarded and the entered fields come back as a PendingSave
// alongside ErrSubscriptionRequired. Edits to existing records always pass.
func (s *Service) SaveActivity(day datekey.Key, id string, patch activity.Patch) (*activity.Activity, *PendingSave, error) {
	list := s.data[day]
	a, idx := activity.FindByID(list, id)
	if a == nil {
		return nil, nil, ErrNotFound
	}

	if a.IsNew && !s.Persistence.Premium() {
		s.data[day] = append(list[:idx], list[idx+1:]...)
		s.refresh(day)
		return nil, &PendingSave{Day: day, Fields: patch}, ErrSubscriptionRequired
	}

	a.Apply(patch)
	s.persistDay(day)
	s.refresh(day)
	return a, nil, nil
}

// CompletePendingSave lands an intercepted save after the payment flow
// reports success: a fresh record, saved as a normal item.
func (s *Service) CompletePendingSave(p *PendingSave) *activity.Activity {
	s.EnsureDate(p.Day)
	a := activity.New()
	a.Apply(p.Fields)
	s.data[p.Day] = append(s.data[p.Day], a)
	s.persistDay(p.Day)
	s.refresh(p.Day)
	return a
}

// GrantPremium flips the subscription flag on (the mocked payment success
// path).
func (s *Service) GrantPremium() error {
	return s.Persistence.SetPremium(true)
}

// Premium reads the subscription flag; absence reads as false.
func (s *Service) Premium() bool {
	return s.Persistence.Premium()
}

// DeleteActivity removes the record and re-clamps that day's progress, on
// or off the selected day.
func (s *Service) DeleteActivity(day datekey.Key, id string) error {
	list := s.data[day]
	a, idx := activity.FindByID(list, id)
	if a == nil {
		return ErrNotFound
	}
	s.data[day] = append(list[:idx], list[idx+1:]...)
	s.persistDay(day)
	s.refresh(day)
	return nil
}

// ScheduleReminder schedules the push notification for an activity's start
// time. Callers log the outcome; the activity save has already happened and
// never rolls back.
func (s *Service) ScheduleReminder(ctx context.Context, a *activity.Activity, day datekey.Key) error {
	if !s.Reminders.Enabled() {
		return nil
	}
	r, err := reminder.For(a, day, s.Now())
	if err != nil {
		return err
	}
	return s.Reminders.Schedule(ctx, r)
}

// Summary derives the header values for today.
func (s *Service) Summary() today.Summary {
	todayKey := datekey.Today(s.Now())
	st := s.Engine.StateFor(todayKey)
	return today.Derive(s.data, s.Tracker, st, s.Now())
}

// refresh pushes a mutated day back into the engine and repairs today
// reconciliation state.
func (s *Service) refresh(day datekey.Key) {
	if s.Engine.Selected() == day {
		s.Engine.SetList(s.data[day])
		s.persistProgress(day)
	} else {
		st := s.Engine.ReclampDay(day, len(s.data[day]))
		if err := s.Persistence.SaveProgress(day, st); err != nil {
			logStoreErr(err)
		}
	}
	s.Tracker.Reconcile(s.data[datekey.Today(s.Now())])
}

func (s *Service) persistDay(day datekey.Key) {
	if err := s.Persistence.SaveDay(day, s.data[day]); err != nil {
		logStoreErr(err)
	}
}

func (s *Service) persistProgress(day datekey.Key) {
	if err := s.Persistence.SaveProgress(day, s.Engine.StateFor(day)); err != nil {
		logStoreErr(err)
	}
}

// Storage write failures are reported but never fatal to the session.
func logStoreErr(err error) {
	fmt.Fprintf(os.Stderr, "store: %v\n", err)
}
