package progress

import (
	"fmt"
	"log"
	"time"

	"github.com/skillloop/backend/internal/models"
)

// HandleHintReceived appends a hint timeline entry from a hint response and
// normalizes the used-hint counter from the response's remaining count.
// Delivering the same hint level twice appends a duplicate entry — the
// timeline records arrivals, it is not a set.
func HandleHintReceived(s *State, resp *models.HintResponse) error {
	if s.Status == models.SessionCompleted {
		return ErrModuleCompleted
	}
	if resp == nil || resp.Hint == "" || resp.HintLevel < 1 || resp.HintLevel > MaxHints {
		return ErrMalformedResponse
	}
	if resp.RemainingHints < 0 || resp.RemainingHints > MaxHints {
		return ErrMalformedResponse
	}

	s.hintSeq++
	s.Messages = append(s.Messages, &HintMessage{
		ID:        fmt.Sprintf("hint-%d-%d", s.CurrentIndex, s.hintSeq),
		Level:     resp.HintLevel,
		Content:   resp.Hint,
		Timestamp: time.Now(),
	})
	s.HintsUsed = MaxHints - resp.RemainingHints
	return nil
}

// HandleSubmitSuccess records a graded attempt: the answer text, a feedback
// timeline entry, and — on a strong assessment or an exhausted attempt
// budget — completion of the current exercise plus the unlock signal for
// the next one.
func HandleSubmitSuccess(s *State, resp *models.SubmitResponse, submittedAnswer string) error {
	if s.Status == models.SessionCompleted {
		return ErrModuleCompleted
	}
	if s.Completed[s.CurrentIndex] {
		return ErrExerciseCompleted
	}
	if resp == nil || !models.ValidAssessments[resp.Assessment] || resp.AttemptNumber < 1 {
		return ErrMalformedResponse
	}

	idx := s.CurrentIndex
	s.Responses[idx] = submittedAnswer
	s.Assessments[idx] = resp.Assessment

	assessment := resp.Assessment
	entry := &FeedbackMessage{
		Content:       resp.Feedback,
		Timestamp:     time.Now(),
		Assessment:    &assessment,
		AttemptNumber: resp.AttemptNumber,
	}
	if resp.ModelAnswerAvailable {
		entry.ModelAnswer = resp.ModelAnswer
	}
	s.Messages = append(s.Messages, entry)

	exhausted := resp.AttemptNumber >= MaxAttempts && resp.Assessment != models.AssessmentStrong
	if resp.Assessment == models.AssessmentStrong || exhausted {
		s.Completed[idx] = true
		if next := idx + 1; next < s.catalog.Len() {
			s.JustUnlocked = next
		}
	}
	return nil
}

// HandleStreamingUpdate applies one event of an incrementally delivered
// feedback evaluation to the single in-flight feedback entry for the given
// exercise. Partial is the accumulated text so far, not a delta. An event
// for any exercise other than the open one is dropped with a diagnostic.
// IsComplete is authoritative regardless of how many chunks arrived; a
// finalization with no open entry creates the entry in one step.
func HandleStreamingUpdate(s *State, exerciseIndex int, partial string, isComplete bool, assessment *models.Assessment) error {
	if s.Status == models.SessionCompleted {
		return ErrModuleCompleted
	}
	if exerciseIndex != s.CurrentIndex {
		log.Printf("progress: dropping streaming update for exercise %d while exercise %d is open", exerciseIndex, s.CurrentIndex)
		return ErrStreamMismatch
	}

	entry := s.openStreamingEntry()
	if entry == nil {
		entry = &FeedbackMessage{
			Timestamp:     time.Now(),
			AttemptNumber: nextAttemptNumber(s.Messages),
			Streaming:     true,
		}
		s.Messages = append(s.Messages, entry)
		s.streaming = true
	}

	entry.Content = partial
	if isComplete {
		entry.Streaming = false
		if assessment != nil {
			a := *assessment
			entry.Assessment = &a
			s.Assessments[s.CurrentIndex] = a
		}
		s.streaming = false
	}
	return nil
}

// openStreamingEntry returns the unfinalized streaming feedback entry in
// the open exercise's timeline, or nil.
func (s *State) openStreamingEntry() *FeedbackMessage {
	if !s.streaming {
		return nil
	}
	for i := len(s.Messages) - 1; i >= 0; i-- {
		if fb, ok := s.Messages[i].(*FeedbackMessage); ok && fb.Streaming {
			return fb
		}
	}
	return nil
}

// ToggleHintCollapse flips the display-collapsed flag for one hint entry.
// Purely presentation state; no effect on grading or progression.
func ToggleHintCollapse(s *State, hintID string) {
	if s.Collapsed[hintID] {
		delete(s.Collapsed, hintID)
		return
	}
	s.Collapsed[hintID] = true
}

// AdvanceToNextExercise clears the unlock signal and moves to the next
// exercise, restoring its recorded timeline if previously visited. Returns
// false without moving when already on the last exercise.
func AdvanceToNextExercise(s *State) bool {
	s.JustUnlocked = -1
	if s.CurrentIndex+1 >= s.catalog.Len() {
		return false
	}
	s.stashCurrent()
	s.CurrentIndex++
	s.restoreCurrent()
	return true
}

// NavigateToExercise jumps to a previously unlocked exercise. Indices past
// the unlock frontier are rejected, not clamped; indices outside the
// catalog are an out-of-range failure.
func NavigateToExercise(s *State, index int) error {
	if index < 0 || index >= s.catalog.Len() {
		return fmt.Errorf("navigate to %d: %w", index, ErrOutOfRange)
	}
	if index > s.Frontier() {
		return fmt.Errorf("navigate to %d past frontier %d: %w", index, s.Frontier(), ErrLocked)
	}
	if index == s.CurrentIndex {
		return nil
	}
	s.stashCurrent()
	s.CurrentIndex = index
	s.restoreCurrent()
	return nil
}

// CompleteModule marks the whole module completed. Permitted only when
// every exercise is completed; afterwards no transition mutates the state.
func CompleteModule(s *State) error {
	if s.Status == models.SessionCompleted {
		return ErrModuleCompleted
	}
	for i := 0; i < s.catalog.Len(); i++ {
		if !s.Completed[i] {
			return fmt.Errorf("exercise %d not completed: %w", i, ErrModuleIncomplete)
		}
	}
	s.Status = models.SessionCompleted
	return nil
}

func (s *State) stashCurrent() {
	// Leaving an exercise closes any in-flight streaming entry so the
	// stashed timeline never holds an unfinalized entry.
	if entry := s.openStreamingEntry(); entry != nil {
		entry.Streaming = false
	}
	s.streaming = false
	s.logs[s.CurrentIndex] = &exerciseLog{
		messages:  s.Messages,
		hintsUsed: s.HintsUsed,
	}
}

func (s *State) restoreCurrent() {
	if saved, ok := s.logs[s.CurrentIndex]; ok {
		s.Messages = saved.messages
		s.HintsUsed = saved.hintsUsed
		return
	}
	s.Messages = nil
	s.HintsUsed = 0
}

// nextAttemptNumber derives the attempt number a new feedback entry should
// carry from the numbers already present in the timeline.
func nextAttemptNumber(msgs []Message) int {
	max := 0
	for _, m := range msgs {
		if fb, ok := m.(*FeedbackMessage); ok && fb.AttemptNumber > max {
			max = fb.AttemptNumber
		}
	}
	return max + 1
}
