package history

import "errors"

// History domain errors
var (
	ErrRecordNotFound = errors.New("history record not found")
	ErrUnavailable    = errors.New("history storage is not available")
)
