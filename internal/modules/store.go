// Package modules owns generated learning modules: creating them from a
// learner's request, listing summaries, and fetching the full exercise
// payload for a session.
package modules

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/skillloop/backend/internal/models"
)

// Store persists modules. Exercises are kept as a JSONB document since they
// are written once at generation time and always read as a unit.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Create(mod *models.Module) error {
	exercises, err := json.Marshal(mod.Exercises)
	if err != nil {
		return fmt.Errorf("marshal exercises: %w", err)
	}

	return s.db.QueryRow(
		`INSERT INTO modules (id, user_id, title, domain, skill_level, exercises, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING created_at`,
		mod.ID, mod.UserID, mod.Title, mod.Domain, mod.SkillLevel, exercises, time.Now(),
	).Scan(&mod.CreatedAt)
}

// ListByUser returns summaries of the user's modules, newest first.
func (s *Store) ListByUser(userID string) ([]models.ModuleListItem, error) {
	rows, err := s.db.Query(
		`SELECT id, title, domain, skill_level, exercises, created_at
		 FROM modules WHERE user_id = $1
		 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.ModuleListItem{}
	for rows.Next() {
		var item models.ModuleListItem
		var exercisesJSON []byte
		if err := rows.Scan(&item.ID, &item.Title, &item.Domain, &item.SkillLevel, &exercisesJSON, &item.CreatedAt); err != nil {
			return nil, err
		}

		var exercises []models.Exercise
		if err := json.Unmarshal(exercisesJSON, &exercises); err != nil {
			return nil, fmt.Errorf("unmarshal exercises for module %s: %w", item.ID, err)
		}
		item.ExerciseCount = len(exercises)
		for _, ex := range exercises {
			item.EstimatedMinutes += ex.EstimatedMinutes
		}

		items = append(items, item)
	}
	return items, rows.Err()
}

// GetByID returns the full module including exercises. Returns
// sql.ErrNoRows when no module has that ID.
func (s *Store) GetByID(moduleID string) (*models.Module, error) {
	var mod models.Module
	var exercisesJSON []byte
	err := s.db.QueryRow(
		`SELECT id, user_id, title, domain, skill_level, exercises, created_at
		 FROM modules WHERE id = $1`,
		moduleID,
	).Scan(&mod.ID, &mod.UserID, &mod.Title, &mod.Domain, &mod.SkillLevel, &exercisesJSON, &mod.CreatedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(exercisesJSON, &mod.Exercises); err != nil {
		return nil, fmt.Errorf("unmarshal exercises for module %s: %w", mod.ID, err)
	}
	return &mod, nil
}
