// Package progress owns the client-side view of a learner's walk through a
// module: which exercises are completed, the per-exercise hint/feedback
// timeline, and the unlock signal surfaced when a new exercise opens up.
//
// The state is mutated exclusively by the transition functions in this
// package. Consumers (presentation code) hold a read-only view and react to
// the fields; they never write them. Transitions are invoked serially — the
// package performs no I/O and never blocks.
package progress

import (
	"time"

	"github.com/skillloop/backend/internal/models"
)

// MaxHints is the hint budget per exercise.
const MaxHints = 3

// MaxAttempts is the attempt budget per exercise. Once spent without a
// strong assessment, the model answer is disclosed and the exercise closes.
const MaxAttempts = 3

// Message is one entry in an exercise's timeline. The set of
// implementations is closed: *HintMessage and *FeedbackMessage.
type Message interface {
	message()
}

// HintMessage records a delivered hint.
type HintMessage struct {
	ID        string
	Level     int
	Content   string
	Timestamp time.Time
}

func (*HintMessage) message() {}

// FeedbackMessage records grading feedback for one attempt. While a
// streaming evaluation is in flight, Streaming is true and Assessment is
// nil; finalization sets the assessment and clears the flag.
type FeedbackMessage struct {
	Content       string
	Timestamp     time.Time
	Assessment    *models.Assessment
	AttemptNumber int
	Streaming     bool
	ModelAnswer   string
}

func (*FeedbackMessage) message() {}

// exerciseLog is the per-exercise transient state kept across navigation so
// a revisited exercise shows its recorded timeline.
type exerciseLog struct {
	messages  []Message
	hintsUsed int
}

// State is the progress snapshot for one module session.
//
// Completed and Status only move forward: the completed set never shrinks
// and Status transitions to completed exactly once. That is the ordering
// guarantee consumers may rely on.
type State struct {
	// CurrentIndex is the exercise currently open, 0-based.
	CurrentIndex int

	// Completed is the set of completed exercise indices. Monotone.
	Completed map[int]bool

	// Responses maps exercise index to the last submitted answer text.
	Responses map[int]string

	// Assessments maps exercise index to the latest assessment level.
	Assessments map[int]models.Assessment

	// HintsUsed counts hints consumed for the open exercise.
	HintsUsed int

	// Messages is the hint/feedback timeline for the open exercise, in
	// insertion order.
	Messages []Message

	// Collapsed is the set of hint IDs collapsed in the display.
	Collapsed map[string]bool

	// JustUnlocked is the index of a freshly unlocked exercise, or -1.
	// Transient: cleared on dismiss or continue.
	JustUnlocked int

	// Status is the module-level completion status.
	Status models.SessionStatus

	catalog   *Catalog
	logs      map[int]*exerciseLog
	streaming bool // an unfinalized streaming feedback entry is open
	hintSeq   int
}

// NewState creates the snapshot for a freshly started module session.
func NewState(catalog *Catalog) *State {
	return &State{
		CurrentIndex: 0,
		Completed:    make(map[int]bool),
		Responses:    make(map[int]string),
		Assessments:  make(map[int]models.Assessment),
		Collapsed:    make(map[string]bool),
		JustUnlocked: -1,
		Status:       models.SessionInProgress,
		catalog:      catalog,
		logs:         make(map[int]*exerciseLog),
	}
}

// Catalog returns the exercise catalog this state is tracking.
func (s *State) Catalog() *Catalog {
	return s.catalog
}

// Frontier returns the highest exercise index the learner may navigate to:
// one past the highest completed index, never less than 1.
func (s *State) Frontier() int {
	max := 0
	for idx := range s.Completed {
		if idx > max {
			max = idx
		}
	}
	return max + 1
}
