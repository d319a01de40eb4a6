package timeparser

import (
	"fmt"
	"strings"
	"time"
)

// SQLFormat is the canonical form readings and status timestamps are stored in.
// Values are always rendered in UTC without an offset suffix.
const SQLFormat = "2006-01-02 15:04:05"

// ParseDeviceTimestamp attempts to parse a device-reported ISO-8601 timestamp.
// A trailing "Z" is treated as the +00:00 offset. Timestamps without an offset
// are taken as UTC.
func ParseDeviceTimestamp(dateStr string) (time.Time, error) {
	s := dateStr
	if strings.HasSuffix(s, "Z") {
		s = strings.TrimSuffix(s, "Z") + "+00:00"
	}

	formats := []string{
		"2006-01-02T15:04:05-07:00",           // ISO-8601 with offset
		"2006-01-02T15:04:05.999999999-07:00", // with fractional seconds
		"2006-01-02T15:04:05",                 // no offset, assume UTC
		"2006-01-02T15:04:05.999999999",
		"2006-01-02 15:04:05",    // already canonical
		"2006-01-02T15:04-07:00", // minute precision
		"2006-01-02T15:04",
		"2006-01-02", // date only
	}

	var lastErr error
	for _, format := range formats {
		t, err := time.ParseInLocation(format, s, time.UTC)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}

	return time.Time{}, fmt.Errorf("failed to parse timestamp '%s': %w", dateStr, lastErr)
}

// ToSQL renders a time in the canonical stored form.
func ToSQL(t time.Time) string {
	return t.UTC().Format(SQLFormat)
}

// NowSQL returns the current wall-clock UTC time in the canonical stored form.
func NowSQL() string {
	return ToSQL(time.Now())
}
