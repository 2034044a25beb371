package progress

import (
	"fmt"

	"github.com/skillloop/backend/internal/models"
)

// Catalog is the read-only, ordered exercise sequence for one module.
type Catalog struct {
	exercises []models.Exercise
}

// NewCatalog wraps a module's exercises. The slice is not copied; callers
// must not mutate it afterwards.
func NewCatalog(exercises []models.Exercise) *Catalog {
	return &Catalog{exercises: exercises}
}

// Len returns the number of exercises in the catalog.
func (c *Catalog) Len() int {
	return len(c.exercises)
}

// ExerciseAt returns the exercise at the given 0-based index. Out-of-range
// access is an explicit error, never a silent default.
func (c *Catalog) ExerciseAt(index int) (models.Exercise, error) {
	if index < 0 || index >= len(c.exercises) {
		return models.Exercise{}, fmt.Errorf("exercise %d of %d: %w", index, len(c.exercises), ErrOutOfRange)
	}
	return c.exercises[index], nil
}
