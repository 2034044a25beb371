package sessions

import (
	"testing"

	"github.com/skillloop/backend/internal/models"
)

func assess(a models.Assessment) *models.Assessment { return &a }

func sessionWithAttempts(attempts ...models.Attempt) *models.Session {
	return &models.Session{Attempts: attempts}
}

func TestNextAttemptNumberCountsPerExercise(t *testing.T) {
	sess := sessionWithAttempts(
		models.Attempt{ExerciseIndex: 0, AttemptNumber: 1},
		models.Attempt{ExerciseIndex: 0, AttemptNumber: 2},
		models.Attempt{ExerciseIndex: 1, AttemptNumber: 1},
	)

	tests := []struct {
		exerciseIndex int
		want          int
	}{
		{0, 3},
		{1, 2},
		{2, 1},
	}
	for _, tt := range tests {
		if got := NextAttemptNumber(sess, tt.exerciseIndex); got != tt.want {
			t.Errorf("NextAttemptNumber(exercise %d) = %d, want %d", tt.exerciseIndex, got, tt.want)
		}
	}
}

func TestAttemptsExhausted(t *testing.T) {
	sess := sessionWithAttempts(
		models.Attempt{ExerciseIndex: 0, AttemptNumber: 1},
		models.Attempt{ExerciseIndex: 0, AttemptNumber: 2},
		models.Attempt{ExerciseIndex: 0, AttemptNumber: 3},
		models.Attempt{ExerciseIndex: 1, AttemptNumber: 1},
	)

	if !AttemptsExhausted(sess, 0) {
		t.Error("exercise 0 should be exhausted after three attempts")
	}
	if AttemptsExhausted(sess, 1) {
		t.Error("exercise 1 should still have attempts left")
	}
}

func TestExerciseCompleted(t *testing.T) {
	sess := sessionWithAttempts(
		models.Attempt{ExerciseIndex: 0, AttemptNumber: 1, Assessment: assess(models.AssessmentDeveloping)},
		models.Attempt{ExerciseIndex: 0, AttemptNumber: 2, Assessment: assess(models.AssessmentStrong)},
		models.Attempt{ExerciseIndex: 1, AttemptNumber: 1, Assessment: assess(models.AssessmentNeedsSupport)},
		models.Attempt{ExerciseIndex: 2, AttemptNumber: 1},
	)

	if !ExerciseCompleted(sess, 0) {
		t.Error("a strong attempt should complete the exercise")
	}
	if ExerciseCompleted(sess, 1) {
		t.Error("needs_support must not complete the exercise")
	}
	if ExerciseCompleted(sess, 2) {
		t.Error("an ungraded attempt must not complete the exercise")
	}
}

func TestHintLevelAndBudget(t *testing.T) {
	sess := &models.Session{
		HintsRequested: []models.Hint{
			{ExerciseIndex: 0, Level: 1},
			{ExerciseIndex: 0, Level: 2},
			{ExerciseIndex: 1, Level: 1},
		},
	}

	if got := NextHintLevel(sess, 0); got != 3 {
		t.Errorf("NextHintLevel(exercise 0) = %d, want 3", got)
	}
	if got := NextHintLevel(sess, 2); got != 1 {
		t.Errorf("NextHintLevel(fresh exercise) = %d, want 1", got)
	}
	if got := RemainingHints(sess, 0); got != 1 {
		t.Errorf("RemainingHints(exercise 0) = %d, want 1", got)
	}
	if !HintAvailable(sess, 0) {
		t.Error("one hint should still be available")
	}

	sess.HintsRequested = append(sess.HintsRequested, models.Hint{ExerciseIndex: 0, Level: 3})
	if HintAvailable(sess, 0) {
		t.Error("no hint should be available after three deliveries")
	}
	if got := RemainingHints(sess, 0); got != 0 {
		t.Errorf("RemainingHints after exhaustion = %d, want 0", got)
	}
}

func TestModelAnswerAvailable(t *testing.T) {
	tests := []struct {
		name          string
		assessment    models.Assessment
		attemptNumber int
		want          bool
	}{
		{"strong first attempt", models.AssessmentStrong, 1, true},
		{"developing first attempt", models.AssessmentDeveloping, 1, false},
		{"needs_support second attempt", models.AssessmentNeedsSupport, 2, false},
		{"developing final attempt", models.AssessmentDeveloping, 3, true},
		{"needs_support final attempt", models.AssessmentNeedsSupport, 3, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ModelAnswerAvailable(tt.assessment, tt.attemptNumber); got != tt.want {
				t.Errorf("ModelAnswerAvailable(%s, %d) = %v, want %v", tt.assessment, tt.attemptNumber, got, tt.want)
			}
		})
	}
}
