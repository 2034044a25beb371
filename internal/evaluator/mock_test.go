package evaluator

import (
	"strings"
	"testing"

	"github.com/skillloop/backend/internal/models"
)

func TestMockExtract(t *testing.T) {
	tests := []struct {
		message   string
		wantTopic string
		wantLevel models.SkillLevel
	}{
		{"I want to learn python", "Python Basics", models.SkillBeginner},
		{"advanced machine learning please", "Machine Learning", models.SkillAdvanced},
		{"intermediate product management", "Product Management", models.SkillIntermediate},
		{"teach me something", "General Learning", models.SkillBeginner},
	}

	for _, tt := range tests {
		got := mockExtract(tt.message)
		if got.Topic != tt.wantTopic {
			t.Errorf("mockExtract(%q).Topic = %q, want %q", tt.message, got.Topic, tt.wantTopic)
		}
		if got.SkillLevel != tt.wantLevel {
			t.Errorf("mockExtract(%q).SkillLevel = %q, want %q", tt.message, got.SkillLevel, tt.wantLevel)
		}
	}
}

func TestMockModuleShape(t *testing.T) {
	mod := mockModule("Data Science", 3)

	if len(mod.Exercises) != 3 {
		t.Fatalf("exercise count = %d, want 3", len(mod.Exercises))
	}
	wantTypes := []models.ExerciseType{models.ExerciseAnalysis, models.ExerciseComparative, models.ExerciseFramework}
	for i, ex := range mod.Exercises {
		if ex.Type != wantTypes[i] {
			t.Errorf("exercise %d type = %q, want %q", i, ex.Type, wantTypes[i])
		}
		if len(ex.Hints) != 3 {
			t.Errorf("exercise %d has %d hints, want 3", i, len(ex.Hints))
		}
		if ex.Sequence != i+1 {
			t.Errorf("exercise %d sequence = %d, want %d", i, ex.Sequence, i+1)
		}
	}

	// Generated modules must pass their own validation.
	if err := validateModule(mod, 3); err != nil {
		t.Errorf("mock module failed validation: %v", err)
	}

	// Truncation to the requested count.
	if got := len(mockModule("Data Science", 1).Exercises); got != 1 {
		t.Errorf("exercise count = %d, want 1", got)
	}
}

func TestMockEvaluate(t *testing.T) {
	ex := mockModule("Marketing", 3).Exercises[0]

	short := mockEvaluate(ex, "too short", 0)
	if short.Assessment != models.AssessmentNeedsSupport {
		t.Errorf("short answer assessment = %q, want needs_support", short.Assessment)
	}
	if short.ShouldAdvance {
		t.Error("short answer must not advance")
	}

	long := mockEvaluate(ex, strings.Repeat("the key factors include frequency severity and reach ", 10), 2)
	if long.Assessment != models.AssessmentStrong {
		t.Errorf("long answer assessment = %q, want strong", long.Assessment)
	}
	if !long.ShouldAdvance {
		t.Error("strong assessment must advance")
	}
	if long.InternalScore < 80 || long.InternalScore > 100 {
		t.Errorf("strong score = %d, want 80-100", long.InternalScore)
	}

	// Scores always land in range regardless of input.
	for _, answer := range []string{"", "one", strings.Repeat("word ", 200)} {
		eval := mockEvaluate(ex, answer, 3)
		if eval.InternalScore < 0 || eval.InternalScore > 100 {
			t.Errorf("score %d outside 0-100 for %q", eval.InternalScore, answer)
		}
	}
}
