package modules

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/skillloop/backend/internal/evaluator"
	"github.com/skillloop/backend/internal/models"
)

const (
	defaultExerciseCount = 3
	maxExerciseCount     = 5
)

type Handler struct {
	store     *Store
	evaluator *evaluator.Service
}

func NewHandler(store *Store, eval *evaluator.Service) *Handler {
	return &Handler{store: store, evaluator: eval}
}

// Generate creates a new module. The client either sends a free-form
// message, which is run through topic extraction first, or an explicit
// topic and skill level.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("user_id").(string)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req models.ModuleGenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	topic := strings.TrimSpace(req.Topic)
	skillLevel := req.SkillLevel
	if msg := strings.TrimSpace(req.Message); msg != "" {
		extraction, err := h.evaluator.ExtractTopicAndLevel(r.Context(), msg)
		if err != nil {
			log.Println("topic extraction failed:", err)
			writeJSON(w, http.StatusBadGateway, models.ErrorResponse{Error: "Could not understand the learning request"})
			return
		}
		topic = extraction.Topic
		skillLevel = extraction.SkillLevel
	}

	if topic == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Either message or topic is required"})
		return
	}
	if skillLevel == "" {
		skillLevel = models.SkillIntermediate
	}
	if !models.ValidSkillLevels[skillLevel] {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid skill level"})
		return
	}

	count := req.ExerciseCount
	if count <= 0 {
		count = defaultExerciseCount
	}
	if count > maxExerciseCount {
		count = maxExerciseCount
	}

	generated, err := h.evaluator.GenerateModule(r.Context(), topic, skillLevel, count)
	if err != nil {
		log.Println("module generation failed:", err)
		writeJSON(w, http.StatusBadGateway, models.ErrorResponse{Error: "Module generation failed, please try again"})
		return
	}

	mod := &models.Module{
		ID:         uuid.NewString(),
		UserID:     userID,
		Title:      generated.Title,
		Domain:     generated.Domain,
		SkillLevel: skillLevel,
		Exercises:  generated.Exercises,
	}
	if err := h.store.Create(mod); err != nil {
		log.Println("module insert failed:", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to save module"})
		return
	}

	writeJSON(w, http.StatusCreated, mod)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("user_id").(string)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Unauthorized"})
		return
	}

	items, err := h.store.ListByUser(userID)
	if err != nil {
		log.Println("module list failed:", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to list modules"})
		return
	}

	writeJSON(w, http.StatusOK, items)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("user_id").(string)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Unauthorized"})
		return
	}

	moduleID := mux.Vars(r)["id"]
	mod, err := h.store.GetByID(moduleID)
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

	writeJSON(w, http.StatusOK, mod)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
