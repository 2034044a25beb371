package sessions

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/skillloop/backend/internal/evaluator"
	"github.com/skillloop/backend/internal/models"
	"github.com/skillloop/backend/internal/modules"
)

// streamChunkWords is how many words of feedback each streaming event
// carries before the final completion event.
const streamChunkWords = 6

type Handler struct {
	store     *Store
	modules   *modules.Store
	evaluator *evaluator.Service
}

func NewHandler(store *Store, moduleStore *modules.Store, eval *evaluator.Service) *Handler {
	return &Handler{store: store, modules: moduleStore, evaluator: eval}
}

// Create starts a new session against one of the caller's modules.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("user_id").(string)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req models.SessionCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ModuleID == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "module_id is required"})
		return
	}

	mod, err := h.modules.GetByID(req.ModuleID)
	if err == sql.ErrNoRows {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Module not found"})
		return
	}
	if err != nil {
		log.Println("module fetch failed:", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load module"})
		return
	}
	if mod.UserID != userID {
		writeJSON(w, http.StatusForbidden, models.ErrorResponse{Error: "Not authorized to access this module"})
		return
	}

	sess := &models.Session{
		ID:             uuid.NewString(),
		UserID:         userID,
		ModuleID:       mod.ID,
		HintsRequested: []models.Hint{},
		Attempts:       []models.Attempt{},
		Status:         models.SessionInProgress,
	}
	if err := h.store.Create(sess); err != nil {
		log.Println("session insert failed:", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to create session"})
		return
	}

	writeJSON(w, http.StatusCreated, sess)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.ownedSession(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("user_id").(string)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Unauthorized"})
		return
	}

	list, err := h.store.ListByUser(userID, r.URL.Query().Get("module_id"))
	if err != nil {
		log.Println("session list failed:", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to list sessions"})
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// Update applies partial changes: exercise navigation, completion, and the
// end-of-module confidence rating.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.ownedSession(w, r)
	if !ok {
		return
	}

	var req models.SessionUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if req.CurrentExerciseIndex != nil {
		mod, err := h.modules.GetByID(sess.ModuleID)
		if err != nil {
			log.Println("module fetch failed:", err)
			writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load module"})
			return
		}
		idx := *req.CurrentExerciseIndex
		if idx < 0 || idx >= len(mod.Exercises) {
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Exercise index out of range"})
			return
		}
		sess.CurrentExerciseIndex = idx
	}

	if req.Status != nil {
		if *req.Status != models.SessionInProgress && *req.Status != models.SessionCompleted {
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid status"})
			return
		}
		if *req.Status == models.SessionCompleted && sess.Status != models.SessionCompleted {
			now := time.Now()
			sess.CompletedAt = &now
		}
		sess.Status = *req.Status
	}

	if req.ConfidenceRating != nil {
		if *req.ConfidenceRating < 1 || *req.ConfidenceRating > 5 {
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Confidence rating must be between 1 and 5"})
			return
		}
		sess.ConfidenceRating = req.ConfidenceRating
	}

	if err := h.store.Update(sess); err != nil {
		log.Println("session update failed:", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to update session"})
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

// RequestHint delivers the next hint for the current exercise and records
// it against the session.
func (h *Handler) RequestHint(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.ownedSession(w, r)
	if !ok {
		return
	}
	if sess.Status != models.SessionInProgress {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Session is already completed"})
		return
	}

	exercise, ok := h.currentExercise(w, sess)
	if !ok {
		return
	}

	idx := sess.CurrentExerciseIndex
	if !HintAvailable(sess, idx) {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "No hints remaining for this exercise"})
		return
	}

	level := NextHintLevel(sess, idx)
	var body models.HintRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err == nil && body.HintLevel != nil {
		if *body.HintLevel < 1 || *body.HintLevel > maxHints {
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid hint level"})
			return
		}
		level = *body.HintLevel
	}
	if level > len(exercise.Hints) {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "No hint available at this level"})
		return
	}

	hint := models.Hint{
		ExerciseIndex: idx,
		Level:         level,
		Content:       exercise.Hints[level-1],
		Timestamp:     time.Now(),
	}
	sess.HintsRequested = append(sess.HintsRequested, hint)

	if err := h.store.Update(sess); err != nil {
		log.Println("session update failed:", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to record hint"})
		return
	}

	writeJSON(w, http.StatusOK, models.HintResponse{
		Hint:           hint.Content,
		HintLevel:      hint.Level,
		RemainingHints: RemainingHints(sess, idx),
		Session:        sess,
	})
}

// SubmitAnswer grades an answer to the current exercise and records the
// attempt.
func (h *Handler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	resp, status, errMsg := h.gradeSubmission(w, r)
	if errMsg != "" {
		writeJSON(w, status, models.ErrorResponse{Error: errMsg})
		return
	}
	if resp == nil {
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// SubmitAnswerStream grades an answer and streams the feedback back as
// server-sent events: cumulative partial content events followed by one
// completion event carrying the full grading result.
func (h *Handler) SubmitAnswerStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Streaming unsupported"})
		return
	}

	resp, status, errMsg := h.gradeSubmission(w, r)
	if errMsg != "" {
		writeJSON(w, status, models.ErrorResponse{Error: errMsg})
		return
	}
	if resp == nil {
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	exerciseIndex := resp.exerciseIndex
	words := strings.Fields(resp.response.Feedback)
	for i := streamChunkWords; i < len(words); i += streamChunkWords {
		ev := streamEvent{
			ExerciseIndex: exerciseIndex,
			Content:       strings.Join(words[:i], " "),
		}
		if err := writeEvent(w, flusher, ev); err != nil {
			return
		}
	}

	final := streamEvent{
		ExerciseIndex: exerciseIndex,
		Content:       resp.response.Feedback,
		IsComplete:    true,
		Result:        resp.response,
	}
	writeEvent(w, flusher, final)
}

// ── Internals ────────────────────────────────────────

// streamEvent is one server-sent event in the submit stream. Content is
// cumulative; Result is present only on the completion event.
type streamEvent struct {
	ExerciseIndex int                    `json:"exercise_index"`
	Content       string                 `json:"content"`
	IsComplete    bool                   `json:"is_complete"`
	Result        *models.SubmitResponse `json:"result,omitempty"`
}

func writeEvent(w http.ResponseWriter, flusher http.Flusher, ev streamEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "data: %s\n\n", payload); err != nil {
		return err
	}
	flusher.Flush()
	return nil
}

// gradedSubmission carries the grading result plus the exercise it applies
// to, for the streaming variant.
type gradedSubmission struct {
	response      *models.SubmitResponse
	exerciseIndex int
}

// gradeSubmission runs the shared submit pipeline: load and authorize the
// session, enforce the attempt budget, evaluate, and persist the attempt.
// A non-empty error message means nothing was written to the response yet.
func (h *Handler) gradeSubmission(w http.ResponseWriter, r *http.Request) (*gradedSubmission, int, string) {
	sess, ok := h.ownedSession(w, r)
	if !ok {
		return nil, 0, ""
	}
	if sess.Status != models.SessionInProgress {
		return nil, http.StatusBadRequest, "Session is already completed"
	}

	exercise, ok := h.currentExercise(w, sess)
	if !ok {
		return nil, 0, ""
	}
	idx := sess.CurrentExerciseIndex

	if ExerciseCompleted(sess, idx) {
		return nil, http.StatusBadRequest, "Exercise already completed"
	}
	if AttemptsExhausted(sess, idx) {
		return nil, http.StatusBadRequest, "Maximum attempts reached for this exercise"
	}

	var req models.AnswerSubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, http.StatusBadRequest, "Invalid request body"
	}
	if strings.TrimSpace(req.AnswerText) == "" {
		return nil, http.StatusBadRequest, "answer_text is required"
	}

	attemptNumber := NextAttemptNumber(sess, idx)
	eval, err := h.evaluator.EvaluateAnswer(r.Context(), *exercise, req.AnswerText, req.HintsUsed)
	if err != nil {
		log.Println("answer evaluation failed:", err)
		return nil, http.StatusBadGateway, "Evaluation failed, please try again"
	}

	assessment := eval.Assessment
	attempt := models.Attempt{
		ExerciseIndex:    idx,
		AttemptNumber:    attemptNumber,
		AnswerText:       req.AnswerText,
		TimeSpentSeconds: req.TimeSpentSeconds,
		HintsUsed:        req.HintsUsed,
		Assessment:       &assessment,
		InternalScore:    eval.InternalScore,
		Feedback:         eval.Feedback,
		ShouldAdvance:    eval.ShouldAdvance,
		SubmittedAt:      time.Now(),
	}
	sess.Attempts = append(sess.Attempts, attempt)

	if err := h.store.Update(sess); err != nil {
		log.Println("session update failed:", err)
		return nil, http.StatusInternalServerError, "Failed to record attempt"
	}

	resp := &models.SubmitResponse{
		Assessment:           eval.Assessment,
		InternalScore:        eval.InternalScore,
		Feedback:             eval.Feedback,
		ShouldAdvance:        eval.ShouldAdvance,
		AttemptNumber:        attemptNumber,
		HintAvailable:        HintAvailable(sess, idx),
		ModelAnswerAvailable: ModelAnswerAvailable(eval.Assessment, attemptNumber),
	}
	if resp.ModelAnswerAvailable {
		resp.ModelAnswer = exercise.ModelAnswer
	}

	return &gradedSubmission{response: resp, exerciseIndex: idx}, 0, ""
}

// ownedSession loads the session from the URL and verifies the caller owns
// it. On failure the error response has already been written.
func (h *Handler) ownedSession(w http.ResponseWriter, r *http.Request) (*models.Session, bool) {
	userID, ok := r.Context().Value("user_id").(string)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Unauthorized"})
		return nil, false
	}

	sess, err := h.store.GetByID(mux.Vars(r)["id"])
	if err == sql.ErrNoRows {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Session not found"})
		return nil, false
	}
	if err != nil {
		log.Println("session fetch failed:", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load session"})
		return nil, false
	}
	if sess.UserID != userID {
		writeJSON(w, http.StatusForbidden, models.ErrorResponse{Error: "Not authorized to access this session"})
		return nil, false
	}
	return sess, true
}

// currentExercise resolves the session's current exercise from its module.
// On failure the error response has already been written.
func (h *Handler) currentExercise(w http.ResponseWriter, sess *models.Session) (*models.Exercise, bool) {
	mod, err := h.modules.GetByID(sess.ModuleID)
	if err != nil {
		log.Println("module fetch failed:", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load module"})
		return nil, false
	}
	idx := sess.CurrentExerciseIndex
	if idx < 0 || idx >= len(mod.Exercises) {
		writeJSON(w, http.StatusConflict, models.ErrorResponse{Error: "Session exercise index is out of range"})
		return nil, false
	}
	ex := mod.Exercises[idx]
	return &ex, true
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
