package validator

import (
	"strings"
	"time"
)

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

var dateLayouts = []string{"02/01/2006", "2006-01-02"}

// IsValidDate accepts report dates in day-first or ISO form.
func IsValidDate(dateStr string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if date, err := time.Parse(layout, dateStr); err == nil {
			return date, true
		}
	}
	return time.Time{}, false
}

// Slice contains check
func IsInSlice(value string, slice []string) bool {
	for _, item := range slice {
		if item == value {
			return true
		}
	}
	return false
}

// AllowedExportFormats lists the report export encodings the API accepts.
var AllowedExportFormats = []string{"xlsx", "csv"}

// IsValidExportFormat reports whether format names a supported export encoding.
func IsValidExportFormat(format string) bool {
	return IsInSlice(strings.ToLower(format), AllowedExportFormats)
}
