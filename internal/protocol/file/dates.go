package file

import (
	"net/http"
	"time"
)

// formatTime renders a timestamp the way HTTP does, RFC 1123 over GMT. The
// representation is locale independent, stable across runs, and round-trips
// through http.ParseTime at one-second precision.
func formatTime(t time.Time) string {
	return t.UTC().Format(http.TimeFormat)
}
