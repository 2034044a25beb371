package progress

// UnlockEvent is the fire-once signal surfaced when a new exercise becomes
// available. ExerciseNumber is 1-based for display. Dismiss and Continue
// each acknowledge the event at most once; the state transition is
// synchronous — any exit-animation delay belongs to the presentation layer.
type UnlockEvent struct {
	ExerciseNumber int
	ExerciseName   string

	state *State
	fired bool
}

// PendingUnlock returns the unlock event for a freshly unlocked exercise,
// or nil when no unlock is pending.
func PendingUnlock(s *State) *UnlockEvent {
	if s.JustUnlocked < 0 {
		return nil
	}
	ex, err := s.catalog.ExerciseAt(s.JustUnlocked)
	if err != nil {
		return nil
	}
	return &UnlockEvent{
		ExerciseNumber: s.JustUnlocked + 1,
		ExerciseName:   ex.Name,
		state:          s,
	}
}

// Dismiss clears the unlock signal, leaving the learner on the current
// completed exercise. No-op after the event has fired.
func (e *UnlockEvent) Dismiss() {
	if e.fired {
		return
	}
	e.fired = true
	e.state.JustUnlocked = -1
}

// Continue clears the unlock signal and advances to the unlocked exercise.
// No-op after the event has fired.
func (e *UnlockEvent) Continue() {
	if e.fired {
		return
	}
	e.fired = true
	AdvanceToNextExercise(e.state)
}
