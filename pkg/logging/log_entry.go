package logging

// LogEntry represents a structured log record with fields relevant to
// multi-objective optimization runs.
type LogEntry struct {
	// Standard fields
	Time     int64
	Severity Severity
	Message  string
	File     string
	Line     int
	Function string

	// Optimization-specific fields
	RunID      string // The optimization run this entry belongs to
	Generation int    // Generation counter at the time of logging, -1 when unset

	// General structured data
	Fields map[string]interface{}
}
