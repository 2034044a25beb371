package models

import "time"

type SessionStatus string

const (
	SessionInProgress SessionStatus = "in_progress"
	SessionCompleted  SessionStatus = "completed"
)

type Assessment string

const (
	AssessmentStrong       Assessment = "strong"
	AssessmentDeveloping   Assessment = "developing"
	AssessmentNeedsSupport Assessment = "needs_support"
)

var ValidAssessments = map[Assessment]bool{
	AssessmentStrong:       true,
	AssessmentDeveloping:   true,
	AssessmentNeedsSupport: true,
}

// ── Session Types ────────────────────────────────────────

// Hint is a server-recorded hint delivery. Appended to
// Session.HintsRequested; never removed or mutated after creation.
type Hint struct {
	ExerciseIndex int       `json:"exercise_index"`
	Level         int       `json:"level"`
	Content       string    `json:"content"`
	Timestamp     time.Time `json:"timestamp"`
}

// Attempt is one graded submission. AttemptNumber starts at 1 and counts
// per exercise, not per session. Assessment is nil until grading finishes.
type Attempt struct {
	ExerciseIndex    int         `json:"exercise_index"`
	AttemptNumber    int         `json:"attempt_number"`
	AnswerText       string      `json:"answer_text"`
	TimeSpentSeconds int         `json:"time_spent_seconds"`
	HintsUsed        int         `json:"hints_used"`
	Assessment       *Assessment `json:"assessment,omitempty"`
	InternalScore    int         `json:"internal_score"`
	Feedback         string      `json:"feedback,omitempty"`
	ShouldAdvance    bool        `json:"should_advance"`
	SubmittedAt      time.Time   `json:"created_at"`
}

// Session is the server-authoritative record of one learner's progress
// through one module. Mutated only through the hint and submit operations;
// transitions to completed exactly once.
type Session struct {
	ID                   string        `json:"id"`
	UserID               string        `json:"user_id"`
	ModuleID             string        `json:"module_id"`
	CurrentExerciseIndex int           `json:"current_exercise_index"`
	HintsRequested       []Hint        `json:"hints_requested"`
	Attempts             []Attempt     `json:"attempts"`
	Status               SessionStatus `json:"status"`
	ConfidenceRating     *int          `json:"confidence_rating,omitempty"`
	StartedAt            time.Time     `json:"started_at"`
	CompletedAt          *time.Time    `json:"completed_at,omitempty"`
}

// CurrentAttemptNumber returns the 1-based number the next attempt on the
// session's current exercise would receive.
func (s *Session) CurrentAttemptNumber() int {
	n := 0
	for _, a := range s.Attempts {
		if a.ExerciseIndex == s.CurrentExerciseIndex {
			n++
		}
	}
	return n + 1
}

// ── Request Types ────────────────────────────────────────

type SessionCreateRequest struct {
	ModuleID string `json:"module_id"`
}

type SessionUpdateRequest struct {
	CurrentExerciseIndex *int           `json:"current_exercise_index,omitempty"`
	Status               *SessionStatus `json:"status,omitempty"`
	ConfidenceRating     *int           `json:"confidence_rating,omitempty"`
}

type AnswerSubmitRequest struct {
	AnswerText       string `json:"answer_text"`
	TimeSpentSeconds int    `json:"time_spent_seconds"`
	HintsUsed        int    `json:"hints_used"`
}

type HintRequestBody struct {
	HintLevel *int `json:"hint_level,omitempty"`
}

// ── Response Types ────────────────────────────────────────

// SubmitResponse is the grading result returned to the client after an
// answer submission.
type SubmitResponse struct {
	Assessment           Assessment `json:"assessment"`
	InternalScore        int        `json:"internal_score"`
	Feedback             string     `json:"feedback"`
	ShouldAdvance        bool       `json:"should_advance"`
	AttemptNumber        int        `json:"attempt_number"`
	HintAvailable        bool       `json:"hint_available"`
	ModelAnswerAvailable bool       `json:"model_answer_available"`
	ModelAnswer          string     `json:"model_answer,omitempty"`
}

// HintResponse is the hint delivery shape. RemainingHints counts hints the
// learner has not yet seen for the current exercise.
type HintResponse struct {
	Hint           string   `json:"hint"`
	HintLevel      int      `json:"hint_level"`
	RemainingHints int      `json:"remaining_hints"`
	Session        *Session `json:"session,omitempty"`
}
