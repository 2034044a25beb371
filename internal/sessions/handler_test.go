package sessions

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/skillloop/backend/internal/models"
)

func TestWriteEventFormat(t *testing.T) {
	rec := httptest.NewRecorder()
	ev := streamEvent{ExerciseIndex: 2, Content: "partial feedback"}

	if err := writeEvent(rec, rec, ev); err != nil {
		t.Fatalf("writeEvent: %v", err)
	}
	if !rec.Flushed {
		t.Error("event was not flushed")
	}

	body := rec.Body.String()
	if !strings.HasPrefix(body, "data: ") || !strings.HasSuffix(body, "\n\n") {
		t.Fatalf("malformed SSE frame: %q", body)
	}

	var decoded streamEvent
	payload := strings.TrimSuffix(strings.TrimPrefix(body, "data: "), "\n\n")
	if err := json.Unmarshal([]byte(payload), &decoded); err != nil {
		t.Fatalf("decoding event payload: %v", err)
	}
	if decoded.ExerciseIndex != 2 || decoded.Content != "partial feedback" || decoded.IsComplete {
		t.Errorf("round-tripped event = %+v", decoded)
	}
	if decoded.Result != nil {
		t.Error("partial event must not carry a result")
	}
}

func TestWriteEventCompletionCarriesResult(t *testing.T) {
	rec := httptest.NewRecorder()
	ev := streamEvent{
		ExerciseIndex: 0,
		Content:       "full feedback",
		IsComplete:    true,
		Result: &models.SubmitResponse{
			Assessment:    models.AssessmentStrong,
			InternalScore: 88,
			Feedback:      "full feedback",
			ShouldAdvance: true,
			AttemptNumber: 1,
		},
	}

	if err := writeEvent(rec, rec, ev); err != nil {
		t.Fatalf("writeEvent: %v", err)
	}

	var decoded streamEvent
	payload := strings.TrimSuffix(strings.TrimPrefix(rec.Body.String(), "data: "), "\n\n")
	if err := json.Unmarshal([]byte(payload), &decoded); err != nil {
		t.Fatalf("decoding event payload: %v", err)
	}
	if !decoded.IsComplete {
		t.Error("completion event lost is_complete")
	}
	if decoded.Result == nil || decoded.Result.Assessment != models.AssessmentStrong {
		t.Errorf("completion event result = %+v", decoded.Result)
	}
}
