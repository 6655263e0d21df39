// Package progress holds the per-day timeline traversal state: which step is
// active and how far completion has advanced.
package progress

// State tracks timeline traversal for one date key. CurrentIndex is the
// active step; CompletedUpTo is the highest completed index, -1 when nothing
// is done yet.
type State struct {
	CurrentIndex  int `json:"currentIndex"`
	CompletedUpTo int `json:"completedUpTo"`
}

// Fresh is the state for a day that has never been traversed.
func Fresh() State {
	return State{CurrentIndex: 0, CompletedUpTo: -1}
}

// Clamp forces the state back into the valid range for a list of the given
// length: CurrentIndex in [0, length-1], CompletedUpTo in [-1, length-1].
// An empty list resets to Fresh.
func (s *State) Clamp(length int) {
	if length <= 0 {
		*s = Fresh()
		return
	}
	if s.CurrentIndex < 0 {
		s.CurrentIndex = 0
	}
	if s.CurrentIndex > length-1 {
		s.CurrentIndex = length - 1
	}
	if s.CompletedUpTo < -1 {
		s.CompletedUpTo = -1
	}
	if s.CompletedUpTo > length-1 {
		s.CompletedUpTo = length - 1
	}
}

// Done reports whether the step at index i is completed.
func (s State) Done(i int) bool {
	return i <= s.CompletedUpTo
}

// CompletedCount is the number of completed steps.
func (s State) CompletedCount() int {
	if s.CompletedUpTo < 0 {
		return 0
	}
	return s.CompletedUpTo + 1
}
