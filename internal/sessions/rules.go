package sessions

import (
	"github.com/skillloop/backend/internal/models"
	"github.com/skillloop/backend/internal/progress"
)

// Attempt and hint budgets are shared with the client-side progress
// machine so both sides agree on when an exercise locks.
const (
	maxAttempts = progress.MaxAttempts
	maxHints    = progress.MaxHints
)

// attemptsAt counts graded attempts recorded against one exercise.
func attemptsAt(sess *models.Session, exerciseIndex int) int {
	n := 0
	for _, a := range sess.Attempts {
		if a.ExerciseIndex == exerciseIndex {
			n++
		}
	}
	return n
}

// NextAttemptNumber returns the 1-based number the next submission on the
// exercise would receive.
func NextAttemptNumber(sess *models.Session, exerciseIndex int) int {
	return attemptsAt(sess, exerciseIndex) + 1
}

// AttemptsExhausted reports whether the exercise has used its full attempt
// budget.
func AttemptsExhausted(sess *models.Session, exerciseIndex int) bool {
	return attemptsAt(sess, exerciseIndex) >= maxAttempts
}

// ExerciseCompleted reports whether any attempt on the exercise was
// assessed strong. A completed exercise accepts no further submissions.
func ExerciseCompleted(sess *models.Session, exerciseIndex int) bool {
	for _, a := range sess.Attempts {
		if a.ExerciseIndex == exerciseIndex && a.Assessment != nil && *a.Assessment == models.AssessmentStrong {
			return true
		}
	}
	return false
}

// hintsAt counts hints already delivered for one exercise.
func hintsAt(sess *models.Session, exerciseIndex int) int {
	n := 0
	for _, h := range sess.HintsRequested {
		if h.ExerciseIndex == exerciseIndex {
			n++
		}
	}
	return n
}

// NextHintLevel returns the level the next hint on the exercise should be
// delivered at: one past the highest level already seen.
func NextHintLevel(sess *models.Session, exerciseIndex int) int {
	highest := 0
	for _, h := range sess.HintsRequested {
		if h.ExerciseIndex == exerciseIndex && h.Level > highest {
			highest = h.Level
		}
	}
	return highest + 1
}

// RemainingHints returns how many hints the exercise has left to give.
func RemainingHints(sess *models.Session, exerciseIndex int) int {
	remaining := maxHints - hintsAt(sess, exerciseIndex)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// HintAvailable reports whether another hint may be requested.
func HintAvailable(sess *models.Session, exerciseIndex int) bool {
	return RemainingHints(sess, exerciseIndex) > 0
}

// ModelAnswerAvailable reports whether the model answer may be disclosed:
// after a strong assessment, or once the attempt budget is spent.
func ModelAnswerAvailable(assessment models.Assessment, attemptNumber int) bool {
	return assessment == models.AssessmentStrong || attemptNumber >= maxAttempts
}
