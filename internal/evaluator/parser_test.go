package evaluator

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/skillloop/backend/internal/models"
)

func validModuleJSON(count int) string {
	mod := mockModule("Product Management", count)
	data, _ := json.Marshal(mod)
	return string(data)
}

func TestParseModule_ValidJSON(t *testing.T) {
	input := validModuleJSON(3)

	mod, err := ParseModule(input, 3)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if len(mod.Exercises) != 3 {
		t.Errorf("expected 3 exercises, got %d", len(mod.Exercises))
	}
	if mod.Domain != "product_management" {
		t.Errorf("domain = %q, want product_management", mod.Domain)
	}
}

func TestParseModule_CodeFences(t *testing.T) {
	wrapped := "```json\n" + validModuleJSON(3) + "\n```"

	mod, err := ParseModule(wrapped, 3)
	if err != nil {
		t.Fatalf("expected fenced JSON to parse, got: %v", err)
	}
	if mod.Title == "" {
		t.Error("expected module title to survive fence stripping")
	}
}

func TestParseModule_LeadingProse(t *testing.T) {
	noisy := "Here is your module:\n" + validModuleJSON(3) + "\nLet me know if you need changes."

	if _, err := ParseModule(noisy, 3); err != nil {
		t.Fatalf("expected brace-span fallback to recover JSON, got: %v", err)
	}
}

func TestParseModule_WrongExerciseCount(t *testing.T) {
	input := validModuleJSON(2)

	_, err := ParseModule(input, 3)
	if err == nil {
		t.Fatal("expected error for wrong exercise count")
	}
	if !strings.Contains(err.Error(), "expected 3 exercises") {
		t.Errorf("unexpected error message: %v", err)
	}
}

func TestParseModule_InvalidJSON(t *testing.T) {
	if _, err := ParseModule("not json at all", 3); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestParseEvaluation(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{
			name:  "valid strong",
			input: `{"assessment":"strong","internal_score":88,"feedback":"Great work.","should_advance":true}`,
		},
		{
			name:  "valid needs_support",
			input: `{"assessment":"needs_support","internal_score":30,"feedback":"Keep going.","should_advance":false}`,
		},
		{
			name:    "invalid assessment level",
			input:   `{"assessment":"beginning","internal_score":30,"feedback":"x","should_advance":false}`,
			wantErr: true,
		},
		{
			name:    "score out of range",
			input:   `{"assessment":"strong","internal_score":120,"feedback":"x","should_advance":true}`,
			wantErr: true,
		},
		{
			name:    "missing feedback",
			input:   `{"assessment":"strong","internal_score":85,"should_advance":true}`,
			wantErr: true,
		},
		{
			name:    "advance without strong",
			input:   `{"assessment":"developing","internal_score":70,"feedback":"x","should_advance":true}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eval, err := ParseEvaluation(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("expected no error, got: %v", err)
			}
			if !models.ValidAssessments[eval.Assessment] {
				t.Errorf("invalid assessment passed validation: %q", eval.Assessment)
			}
		})
	}
}

func TestParseExtraction(t *testing.T) {
	ex, err := ParseExtraction("```\n{\"topic\":\"Data Science\",\"skill_level\":\"intermediate\"}\n```")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if ex.Topic != "Data Science" || ex.SkillLevel != models.SkillIntermediate {
		t.Errorf("extraction = %+v", ex)
	}

	if _, err := ParseExtraction(`{"topic":"","skill_level":"beginner"}`); err == nil {
		t.Error("expected error for missing topic")
	}
	if _, err := ParseExtraction(`{"topic":"Go","skill_level":"wizard"}`); err == nil {
		t.Error("expected error for invalid skill level")
	}
}
