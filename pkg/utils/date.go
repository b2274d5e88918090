package utils

import "time"

// TimeNowUTC returns the current time in UTC. All persisted timestamps use UTC.
func TimeNowUTC() time.Time {
	return time.Now().UTC()
}

// TruncateToDay drops the time-of-day component, keeping the UTC date.
func TruncateToDay(t time.Time) time.Time {
	return t.UTC().Truncate(24 * time.Hour)
}

// ParseFlexibleTime parses timestamps as produced by the news providers:
// RFC3339 first, then the "2006-01-02 15:04:05" form, then RFC1123.
func ParseFlexibleTime(s string) (time.Time, error) {
	layouts := []string{
		time.RFC3339,
		"2006-01-02 15:04:05",
		time.RFC1123Z,
		time.RFC1123,
	}
	var lastErr error
	for _, layout := range layouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t.UTC(), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
