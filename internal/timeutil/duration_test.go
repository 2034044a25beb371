package timeutil

import "testing"

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{0, "0 seconds"},
		{1, "1 second"},
		{45, "45 seconds"},
		{60, "1 minute"},
		{90, "1 minute 30 seconds"},
		{61, "1 minute 1 second"},
		{120, "2 minutes"},
		{3600, "1 hour"},
		{3661, "1 hour 1 minute"}, // seconds suppressed once hours present
		{3659, "1 hour"},          // 59s remainder suppressed, no minutes
		{7380, "2 hours 3 minutes"},
		{7200, "2 hours"},
	}

	for _, tt := range tests {
		got := FormatDuration(tt.seconds)
		if got != tt.want {
			t.Errorf("FormatDuration(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestFormatDurationIgnoresSign(t *testing.T) {
	for _, s := range []int{0, 1, 45, 90, 3661, 7380} {
		if FormatDuration(s) != FormatDuration(-s) {
			t.Errorf("FormatDuration(%d) != FormatDuration(%d)", s, -s)
		}
	}
}

func TestTimeDifference(t *testing.T) {
	tests := []struct {
		start string
		end   string
		want  int
	}{
		{"2024-01-01T10:00:00.000Z", "2024-01-01T10:00:00.000Z", 0},
		{"2024-01-01T10:00:00.000Z", "2024-01-01T10:01:30.000Z", 90},
		{"2024-01-01T23:00:00.000Z", "2024-01-02T01:00:00.000Z", 7200}, // day boundary
		{"2024-01-31T23:59:00.000Z", "2024-02-01T00:01:00.000Z", 120},  // month boundary
		{"2024-01-01T10:00:00.000Z", "2024-01-01T10:00:00.900Z", 0},    // sub-second truncated
	}

	for _, tt := range tests {
		got, err := TimeDifference(tt.start, tt.end)
		if err != nil {
			t.Fatalf("TimeDifference(%q, %q) returned error: %v", tt.start, tt.end, err)
		}
		if got != tt.want {
			t.Errorf("TimeDifference(%q, %q) = %d, want %d", tt.start, tt.end, got, tt.want)
		}

		// Order-independent.
		swapped, err := TimeDifference(tt.end, tt.start)
		if err != nil {
			t.Fatalf("TimeDifference(%q, %q) returned error: %v", tt.end, tt.start, err)
		}
		if swapped != got {
			t.Errorf("TimeDifference is not symmetric: %d vs %d", got, swapped)
		}
	}
}

func TestTimeDifferenceBadInput(t *testing.T) {
	if _, err := TimeDifference("not-a-timestamp", "2024-01-01T10:00:00Z"); err == nil {
		t.Error("expected error for unparseable start timestamp")
	}
	if _, err := TimeDifference("2024-01-01T10:00:00Z", "yesterday"); err == nil {
		t.Error("expected error for unparseable end timestamp")
	}
}
