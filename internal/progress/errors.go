package progress

import "errors"

// Transition errors. Every failed transition leaves the state exactly as it
// was — no partial mutation.
var (
	// ErrOutOfRange is returned for exercise indices outside the catalog.
	ErrOutOfRange = errors.New("exercise index out of range")

	// ErrLocked is returned when navigating past the unlock frontier.
	ErrLocked = errors.New("exercise is not yet unlocked")

	// ErrMalformedResponse is returned when a server response is missing
	// required fields. The transition is refused.
	ErrMalformedResponse = errors.New("malformed server response")

	// ErrStreamMismatch is returned when a streaming update targets an
	// exercise other than the one currently open. The event is dropped.
	ErrStreamMismatch = errors.New("streaming update for inactive exercise")

	// ErrExerciseCompleted is returned when submitting an attempt for an
	// exercise already in a terminal completed state.
	ErrExerciseCompleted = errors.New("exercise already completed")

	// ErrModuleCompleted is returned for any mutating transition after the
	// module has been completed.
	ErrModuleCompleted = errors.New("module already completed")

	// ErrModuleIncomplete is returned when completing a module while some
	// exercises remain incomplete.
	ErrModuleIncomplete = errors.New("module has incomplete exercises")
)
