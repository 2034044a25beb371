// Package timeutil provides the duration helpers used for attempt timing.
package timeutil

import (
	"fmt"
	"strings"
	"time"
)

// FormatDuration converts a count of seconds into a human-readable phrase,
// e.g. "1 minute 30 seconds" or "2 hours 3 minutes". The sign of the input
// is ignored. Once the duration reaches an hour, remainder seconds are
// suppressed but remainder minutes are still shown.
func FormatDuration(seconds int) string {
	if seconds < 0 {
		seconds = -seconds
	}
	if seconds == 0 {
		return "0 seconds"
	}

	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60

	var parts []string
	if hours >= 1 {
		parts = append(parts, fmt.Sprintf("%d %s", hours, plural(hours, "hour")))
	}
	if minutes >= 1 {
		parts = append(parts, fmt.Sprintf("%d %s", minutes, plural(minutes, "minute")))
	}
	if secs >= 1 && hours == 0 {
		parts = append(parts, fmt.Sprintf("%d %s", secs, plural(secs, "second")))
	}
	return strings.Join(parts, " ")
}

func plural(n int, unit string) string {
	if n == 1 {
		return unit
	}
	return unit + "s"
}

// TimeDifference returns the absolute difference between two RFC 3339
// timestamps in whole seconds, truncated toward zero. The result does not
// depend on argument order.
func TimeDifference(startISO, endISO string) (int, error) {
	start, err := time.Parse(time.RFC3339, startISO)
	if err != nil {
		return 0, fmt.Errorf("parse start timestamp: %w", err)
	}
	end, err := time.Parse(time.RFC3339, endISO)
	if err != nil {
		return 0, fmt.Errorf("parse end timestamp: %w", err)
	}

	diffMs := end.UnixMilli() - start.UnixMilli()
	if diffMs < 0 {
		diffMs = -diffMs
	}
	return int(diffMs / 1000), nil
}
