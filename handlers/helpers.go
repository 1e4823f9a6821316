package handlers

import (
	"strings"
	"time"
)

func isDateYYYYMMDD(s string) bool {
	if strings.TrimSpace(s) == "" {
		return false
	}
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

// collapse inner whitespace runs and trim
func cleanName(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// parseTimestamp accepts RFC3339 (with or without fraction) and the naive
// ISO form older clients send for the sync cursor.
func parseTimestamp(s string) (time.Time, bool) {
	for _, layout := range []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05.999999999",
		"2006-01-02T15:04:05",
	} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
