package evaluator

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/skillloop/backend/internal/models"
)

// Extraction is the topic/level pair pulled from a free-form learning
// request.
type Extraction struct {
	Topic      string            `json:"topic"`
	SkillLevel models.SkillLevel `json:"skill_level"`
}

// Evaluation is the grading result for one submitted answer.
type Evaluation struct {
	Assessment    models.Assessment `json:"assessment"`
	InternalScore int               `json:"internal_score"`
	Feedback      string            `json:"feedback"`
	ShouldAdvance bool              `json:"should_advance"`
}

// GeneratedModule is the raw module payload produced by the model before it
// is stamped with an ID and owner.
type GeneratedModule struct {
	Title     string            `json:"title"`
	Domain    string            `json:"domain"`
	Exercises []models.Exercise `json:"exercises"`
}

type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Errors, "; "))
}

// ParseExtraction parses and validates a topic/level extraction response.
func ParseExtraction(responseBody string) (*Extraction, error) {
	cleaned := stripCodeFences(responseBody)

	var ex Extraction
	if err := json.Unmarshal([]byte(cleaned), &ex); err != nil {
		return nil, fmt.Errorf("failed to parse extraction response: %w", err)
	}
	if ex.Topic == "" {
		return nil, &ValidationError{Errors: []string{"missing topic"}}
	}
	if !models.ValidSkillLevels[ex.SkillLevel] {
		return nil, &ValidationError{Errors: []string{fmt.Sprintf("invalid skill level %q", ex.SkillLevel)}}
	}
	return &ex, nil
}

// ParseModule parses and validates a generated module response.
func ParseModule(responseBody string, exerciseCount int) (*GeneratedModule, error) {
	cleaned := stripCodeFences(responseBody)

	var mod GeneratedModule
	if err := json.Unmarshal([]byte(cleaned), &mod); err != nil {
		return nil, fmt.Errorf("failed to parse module response: %w", err)
	}
	if err := validateModule(&mod, exerciseCount); err != nil {
		return nil, err
	}
	return &mod, nil
}

// ParseEvaluation parses and validates an answer evaluation response.
func ParseEvaluation(responseBody string) (*Evaluation, error) {
	cleaned := stripCodeFences(responseBody)

	var eval Evaluation
	if err := json.Unmarshal([]byte(cleaned), &eval); err != nil {
		return nil, fmt.Errorf("failed to parse evaluation response: %w", err)
	}

	var errs []string
	if !models.ValidAssessments[eval.Assessment] {
		errs = append(errs, fmt.Sprintf("invalid assessment %q", eval.Assessment))
	}
	if eval.InternalScore < 0 || eval.InternalScore > 100 {
		errs = append(errs, fmt.Sprintf("score %d outside 0-100", eval.InternalScore))
	}
	if eval.Feedback == "" {
		errs = append(errs, "missing feedback")
	}
	if eval.ShouldAdvance && eval.Assessment != models.AssessmentStrong {
		errs = append(errs, "should_advance set without strong assessment")
	}
	if len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}
	return &eval, nil
}

func validateModule(mod *GeneratedModule, exerciseCount int) error {
	var errs []string

	if mod.Title == "" {
		errs = append(errs, "missing title")
	}
	if mod.Domain == "" {
		errs = append(errs, "missing domain")
	}
	if len(mod.Exercises) != exerciseCount {
		errs = append(errs, fmt.Sprintf("expected %d exercises, got %d", exerciseCount, len(mod.Exercises)))
	}
	for i, ex := range mod.Exercises {
		if !models.ValidExerciseTypes[ex.Type] {
			errs = append(errs, fmt.Sprintf("exercise %d: invalid type %q", i+1, ex.Type))
		}
		if ex.Prompt == "" {
			errs = append(errs, fmt.Sprintf("exercise %d: missing prompt", i+1))
		}
		if len(ex.Hints) != 3 {
			errs = append(errs, fmt.Sprintf("exercise %d: expected 3 hints, got %d", i+1, len(ex.Hints)))
		}
		if len(ex.ValidationCriteria) == 0 {
			errs = append(errs, fmt.Sprintf("exercise %d: missing validation criteria", i+1))
		}
		if ex.ModelAnswer == "" {
			errs = append(errs, fmt.Sprintf("exercise %d: missing model answer", i+1))
		}
	}

	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}

// stripCodeFences removes markdown fences around a JSON payload. Models
// occasionally wrap responses in ``` blocks despite instructions; if the
// fences do not line up, fall back to the outermost brace span.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimSpace(strings.TrimPrefix(s, "```json"))
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimSpace(strings.TrimPrefix(s, "```"))
	}
	if strings.HasSuffix(s, "```") {
		s = strings.TrimSpace(strings.TrimSuffix(s, "```"))
	}

	if !strings.HasPrefix(s, "{") {
		start := strings.Index(s, "{")
		end := strings.LastIndex(s, "}")
		if start != -1 && end > start {
			return s[start : end+1]
		}
	}
	return s
}
