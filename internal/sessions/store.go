// Package sessions tracks a learner's live progress through a module:
// attempts, hint deliveries, and completion. The session row is the
// authoritative record; clients only ever mutate it through these handlers.
package sessions

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/skillloop/backend/internal/models"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Create(sess *models.Session) error {
	hints, attempts, err := marshalLogs(sess)
	if err != nil {
		return err
	}

	return s.db.QueryRow(
		`INSERT INTO sessions (id, user_id, module_id, current_exercise_index,
		                       hints_requested, attempts, status, started_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING started_at`,
		sess.ID, sess.UserID, sess.ModuleID, sess.CurrentExerciseIndex,
		hints, attempts, sess.Status, time.Now(),
	).Scan(&sess.StartedAt)
}

// GetByID returns the session with its hint and attempt logs decoded.
// Returns sql.ErrNoRows when no session has that ID.
func (s *Store) GetByID(sessionID string) (*models.Session, error) {
	var sess models.Session
	var hintsJSON, attemptsJSON []byte
	err := s.db.QueryRow(
		`SELECT id, user_id, module_id, current_exercise_index, hints_requested,
		        attempts, status, confidence_rating, started_at, completed_at
		 FROM sessions WHERE id = $1`,
		sessionID,
	).Scan(&sess.ID, &sess.UserID, &sess.ModuleID, &sess.CurrentExerciseIndex,
		&hintsJSON, &attemptsJSON, &sess.Status, &sess.ConfidenceRating,
		&sess.StartedAt, &sess.CompletedAt)
	if err != nil {
		return nil, err
	}

	if err := unmarshalLogs(&sess, hintsJSON, attemptsJSON); err != nil {
		return nil, err
	}
	return &sess, nil
}

// ListByUser returns the user's sessions, newest first. moduleID narrows the
// list to one module when non-empty.
func (s *Store) ListByUser(userID, moduleID string) ([]models.Session, error) {
	query := `SELECT id, user_id, module_id, current_exercise_index, hints_requested,
	                 attempts, status, confidence_rating, started_at, completed_at
	          FROM sessions WHERE user_id = $1`
	args := []interface{}{userID}
	if moduleID != "" {
		query += ` AND module_id = $2`
		args = append(args, moduleID)
	}
	query += ` ORDER BY started_at DESC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []models.Session{}
	for rows.Next() {
		var sess models.Session
		var hintsJSON, attemptsJSON []byte
		if err := rows.Scan(&sess.ID, &sess.UserID, &sess.ModuleID, &sess.CurrentExerciseIndex,
			&hintsJSON, &attemptsJSON, &sess.Status, &sess.ConfidenceRating,
			&sess.StartedAt, &sess.CompletedAt); err != nil {
			return nil, err
		}
		if err := unmarshalLogs(&sess, hintsJSON, attemptsJSON); err != nil {
			return nil, err
		}
		list = append(list, sess)
	}
	return list, rows.Err()
}

// Update writes back every mutable field of the session.
func (s *Store) Update(sess *models.Session) error {
	hints, attempts, err := marshalLogs(sess)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(
		`UPDATE sessions
		 SET current_exercise_index = $2, hints_requested = $3, attempts = $4,
		     status = $5, confidence_rating = $6, completed_at = $7
		 WHERE id = $1`,
		sess.ID, sess.CurrentExerciseIndex, hints, attempts,
		sess.Status, sess.ConfidenceRating, sess.CompletedAt,
	)
	return err
}

func marshalLogs(sess *models.Session) (hints, attempts []byte, err error) {
	if sess.HintsRequested == nil {
		sess.HintsRequested = []models.Hint{}
	}
	if sess.Attempts == nil {
		sess.Attempts = []models.Attempt{}
	}

	hints, err = json.Marshal(sess.HintsRequested)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal hints: %w", err)
	}
	attempts, err = json.Marshal(sess.Attempts)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal attempts: %w", err)
	}
	return hints, attempts, nil
}

func unmarshalLogs(sess *models.Session, hintsJSON, attemptsJSON []byte) error {
	if err := json.Unmarshal(hintsJSON, &sess.HintsRequested); err != nil {
		return fmt.Errorf("unmarshal hints for session %s: %w", sess.ID, err)
	}
	if err := json.Unmarshal(attemptsJSON, &sess.Attempts); err != nil {
		return fmt.Errorf("unmarshal attempts for session %s: %w", sess.ID, err)
	}
	return nil
}
