// Package timeline implements the progress state machine for a day's
// itinerary: which step is active, which steps are completed, and how step
// clicks, day changes, and list mutations move that state.
//
// Indices always refer to positions within the sorted, search-filtered view
// current at evaluation time. Completion tracking is only meaningful in the
// unfiltered view, so step clicks are rejected while a filter is active.
package timeline

import (
	"errors"
	"time"

	"tableflip.dev/wayfare/pkg/activity"
	"tableflip.dev/wayfare/pkg/datekey"
	"tableflip.dev/wayfare/pkg/glyph"
	"tableflip.dev/wayfare/pkg/progress"
)

var (
	// ErrFiltered rejects step clicks while a search filter narrows the view.
	ErrFiltered = errors.New("timeline: step clicks are disabled while filtering")

	// ErrOutOfRange rejects clicks outside the current view.
	ErrOutOfRange = errors.New("timeline: step index out of range")
)

// Engine drives the per-day timeline traversal. All methods are expected to
// run on a single goroutine; transitions happen one user event at a time.
type Engine struct {
	// Now supplies the clock so "today" is injectable in tests.
	Now func() time.Time

	// OnActive receives the activity that should feed the header display
	// after a transition.
	OnActive func(*activity.Activity)

	// OnCompleted receives the completed count after a transition.
	OnCompleted func(int)

	// OnScroll receives the row index the UI should bring into view.
	OnScroll func(int)

	states   map[datekey.Key]progress.State
	selected datekey.Key
	lastSeen datekey.Key
	source   []*activity.Activity
	view     []*activity.Activity
	query    string
}

// New returns an Engine with no traversal state. A nil now defaults to
// time.Now.
func New(now func() time.Time) *Engine {
	if now == nil {
		now = time.Now
	}
	return &Engine{
		Now:    now,
		states: make(map[datekey.Key]progress.State),
	}
}

// Restore seeds the engine with persisted per-day progress. Stale entries
// for days whose lists have shrunk are tolerated; they clamp on use.
func (e *Engine) Restore(saved map[datekey.Key]progress.State) {
	for k, st := range saved {
		e.states[k] = st
	}
}

// Snapshot copies the per-day progress for persistence.
func (e *Engine) Snapshot() map[datekey.Key]progress.State {
	out := make(map[datekey.Key]progress.State, len(e.states))
	for k, st := range e.states {
		out[k] = st
	}
	return out
}

// Selected returns the date key the engine currently operates on.
func (e *Engine) Selected() datekey.Key {
	return e.selected
}

// IsToday reports whether the selected day is the current civil date.
func (e *Engine) IsToday() bool {
	return e.selected == datekey.Today(e.Now())
}

// Query returns the active search filter.
func (e *Engine) Query() string {
	return e.query
}

// View returns the sorted, filtered activity list indices refer to.
func (e *Engine) View() []*activity.Activity {
	return e.view
}

// State returns the selected day's progress, clamped to the current view.
func (e *Engine) State() progress.State {
	st := e.stateFor(e.selected)
	st.Clamp(len(e.view))
	return st
}

// StateFor returns the stored progress for an arbitrary day without
// selecting it. Unknown days read as fresh.
func (e *Engine) StateFor(day datekey.Key) progress.State {
	return e.stateFor(day)
}

// Current returns the active activity in the view, or nil when the view is
// empty.
func (e *Engine) Current() *activity.Activity {
	if len(e.view) == 0 {
		return nil
	}
	st := e.State()
	return e.view[st.CurrentIndex]
}

// Select switches the engine to a day and its activity list.
//
// A non-today day resets to fresh progress the first time it is visited this
// session; revisiting the day it was just on resumes its state. Today always
// resumes persisted progress as-is.
func (e *Engine) Select(day datekey.Key, list []*activity.Activity) {
	e.selected = day
	e.setSource(list)

	today := datekey.Today(e.Now())
	if day != today && day != e.lastSeen {
		e.states[day] = progress.Fresh()
	}
	e.lastSeen = day

	e.reclamp()
	e.emit()
}

// SetList replaces the selected day's activity list after an add, edit, or
// delete, re-clamping progress into the new valid range.
func (e *Engine) SetList(list []*activity.Activity) {
	e.setSource(list)
	e.reclamp()
	e.emit()
}

// SetQuery narrows the view with a case-insensitive substring filter over
// title, location, and notes. The underlying list and the stored progress
// are untouched; State() clamps transiently for display, so clearing the
// filter restores the full traversal state.
func (e *Engine) SetQuery(query string) {
	e.query = query
	e.view = activity.Filter(e.source, e.query)
	e.emit()
}

// StepClick processes a click on view row i.
//
// Clicking an already-done step rewinds: the cursor moves to i, and on today
// completion from i onward is undone. Clicking a not-yet-done step advances:
// on today completion extends to i, and the cursor moves past i. Non-today
// days only ever move the cursor; their completion history is not rewritten.
func (e *Engine) StepClick(i int) error {
	if e.query != "" {
		return ErrFiltered
	}
	n := len(e.view)
	if n == 0 || i < 0 || i >= n {
		return ErrOutOfRange
	}

	st := e.State()
	clicked := e.view[i]
	isToday := e.IsToday()

	if i <= st.CompletedUpTo {
		st.CurrentIndex = i
		if isToday {
			st.CompletedUpTo = i - 1
		}
	} else {
		if isToday && i > st.CompletedUpTo {
			st.CompletedUpTo = i
		}
		st.CurrentIndex = i + 1
		if st.CurrentIndex > n-1 {
			st.CurrentIndex = n - 1
		}
	}
	e.states[e.selected] = st

	if e.OnActive != nil {
		e.OnActive(clicked)
	}
	if e.OnCompleted != nil {
		e.OnCompleted(st.CompletedCount())
	}
	if e.OnScroll != nil {
		e.OnScroll(i)
	}
	return nil
}

// StatusAt derives the visual status of view row i.
func (e *Engine) StatusAt(i int) glyph.Status {
	st := e.State()
	switch {
	case st.Done(i):
		return glyph.Done
	case i == st.CurrentIndex:
		return glyph.Active
	default:
		return glyph.Pending
	}
}

// Statuses derives the status of every row in the view.
func (e *Engine) Statuses() []glyph.Status {
	out := make([]glyph.Status, len(e.view))
	for i := range e.view {
		out[i] = e.StatusAt(i)
	}
	return out
}

// ReclampDay clamps an arbitrary day's progress to a list length, for
// mutations on days that are not currently selected. Returns the clamped
// state so callers can persist it.
func (e *Engine) ReclampDay(day datekey.Key, length int) progress.State {
	st := e.stateFor(day)
	st.Clamp(length)
	e.states[day] = st
	return st
}

func (e *Engine) stateFor(day datekey.Key) progress.State {
	if st, ok := e.states[day]; ok {
		return st
	}
	return progress.Fresh()
}

func (e *Engine) setSource(list []*activity.Activity) {
	src := make([]*activity.Activity, len(list))
	copy(src, list)
	activity.Sort(src)
	e.source = src
	e.view = activity.Filter(e.source, e.query)
}

// reclamp bounds the selected day's stored state against the unfiltered
// list. Only real list changes rewrite stored progress; a narrowed view
// never does.
func (e *Engine) reclamp() {
	st := e.stateFor(e.selected)
	st.Clamp(len(e.source))
	e.states[e.selected] = st
}

func (e *Engine) emit() {
	st := e.State()
	if e.OnActive != nil {
		e.OnActive(e.Current())
	}
	if e.OnCompleted != nil {
		e.OnCompleted(st.CompletedCount())
	}
	if e.OnScroll != nil && len(e.view) > 0 {
		e.OnScroll(st.CurrentIndex)
	}
}
