package models

import "time"

type SkillLevel string

const (
	SkillBeginner     SkillLevel = "beginner"
	SkillIntermediate SkillLevel = "intermediate"
	SkillAdvanced     SkillLevel = "advanced"
)

var ValidSkillLevels = map[SkillLevel]bool{
	SkillBeginner:     true,
	SkillIntermediate: true,
	SkillAdvanced:     true,
}

type ExerciseType string

const (
	ExerciseAnalysis    ExerciseType = "analysis"
	ExerciseComparative ExerciseType = "comparative"
	ExerciseFramework   ExerciseType = "framework"
)

var ValidExerciseTypes = map[ExerciseType]bool{
	ExerciseAnalysis:    true,
	ExerciseComparative: true,
	ExerciseFramework:   true,
}

// ── Catalog Types ────────────────────────────────────────

// Exercise is one task within a module. Created once when a module is
// generated and never mutated afterwards.
type Exercise struct {
	Sequence           int               `json:"sequence"`
	Name               string            `json:"name"`
	Type               ExerciseType      `json:"type"`
	Prompt             string            `json:"prompt"`
	Material           string            `json:"material,omitempty"`
	Options            []string          `json:"options,omitempty"`
	Scaffold           map[string]string `json:"scaffold,omitempty"`
	Hints              []string          `json:"hints"`
	ValidationCriteria map[string]string `json:"validation_criteria"`
	ModelAnswer        string            `json:"model_answer"`
	ModelExplanation   string            `json:"model_explanation"`
	EstimatedMinutes   int               `json:"estimated_minutes"`
}

// Module is an ordered collection of exercises owned by one user.
type Module struct {
	ID         string     `json:"id"`
	UserID     string     `json:"-"`
	Title      string     `json:"title"`
	Domain     string     `json:"domain"`
	SkillLevel SkillLevel `json:"skill_level"`
	Exercises  []Exercise `json:"exercises"`
	CreatedAt  time.Time  `json:"created_at"`
}

// ModuleListItem is the summary shape returned by the list endpoint — it
// carries aggregate counts instead of the full exercise payload.
type ModuleListItem struct {
	ID               string     `json:"id"`
	Title            string     `json:"title"`
	Domain           string     `json:"domain"`
	SkillLevel       SkillLevel `json:"skill_level"`
	ExerciseCount    int        `json:"exercise_count"`
	EstimatedMinutes int        `json:"estimated_minutes"`
	CreatedAt        time.Time  `json:"created_at"`
}

// ── Request Types ────────────────────────────────────────

type ModuleGenerateRequest struct {
	Message       string     `json:"message,omitempty"`
	Topic         string     `json:"topic,omitempty"`
	SkillLevel    SkillLevel `json:"skill_level,omitempty"`
	ExerciseCount int        `json:"exercise_count,omitempty"`
}
