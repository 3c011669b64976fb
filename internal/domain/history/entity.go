// Package history models the audit trail of the report tool: every load,
// filter application and search is recorded as a restorable snapshot.
package history

import (
	"time"

	"github.com/andina-labs/asistencia-backend-go/internal/domain/attendance"
)

// Record is one history entry with the state needed to replay it.
type Record struct {
	ID          string    `json:"id"`
	Description string    `json:"description"`
	Files       []string  `json:"files"`
	CreatedAt   time.Time `json:"created_at"`

	Snapshot attendance.Snapshot `json:"-"`
}

// Summary is the listing view of a record, without the stored dataset.
type Summary struct {
	ID          string                 `json:"id"`
	Description string                 `json:"description"`
	Files       []string               `json:"files"`
	Filters     attendance.FilterState `json:"filters"`
	CreatedAt   time.Time              `json:"created_at"`
}
