package attendance

import "errors"

// Attendance domain errors
var (
	// ErrNoIngestRows is returned when uploaded files yield no usable rows.
	ErrNoIngestRows = errors.New("uploaded files contain no usable attendance rows")
)
