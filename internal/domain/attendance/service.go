package attendance

import (
	"context"

	"github.com/andina-labs/asistencia-backend-go/internal/domain/report"
)

// Service owns the loaded dataset, the active FilterState and the current
// report snapshot. All mutating operations are serialized by the
// implementation; callers never coordinate access themselves.
type Service interface {
	// Load replaces the active dataset: rows run through normalization,
	// identity resolution and area resolution, and the full report is
	// regenerated. Deterministic for a fixed input modulo roster state.
	Load(ctx context.Context, rows []RawRecord) ([]report.Row, error)

	// GenerateReport builds a report from the given records without touching
	// service state.
	GenerateReport(records []TaggedRecord) []report.Row

	// ApplyFilters replaces the area/date/shift selection and returns the
	// filtered report, persisting it as the current snapshot.
	ApplyFilters(ctx context.Context, req FilterRequest) ([]report.Row, error)

	// Search filters the dataset by canonical name. Blank text clears the
	// search and returns the full report.
	Search(ctx context.Context, text string) ([]report.Row, error)

	// ClearFilters resets the selection to defaults and regenerates the
	// unfiltered report.
	ClearFilters(ctx context.Context) ([]report.Row, error)

	// Reset discards the dataset and all derived state.
	Reset(ctx context.Context)

	// FilterState returns a read-only copy of the active selection.
	FilterState() FilterState

	// Options lists the filterable dates and areas of the loaded dataset.
	Options() Options

	// CurrentReport returns the report matching the active selection,
	// regenerating it from the saved FilterState when needed.
	CurrentReport() []report.Row

	// FullReport returns the unfiltered report for the loaded dataset.
	FullReport() []report.Row

	// Snapshot captures dataset and filters for history persistence.
	Snapshot() Snapshot

	// ApplySnapshot restores a captured dataset and filter selection and
	// returns the resulting report.
	ApplySnapshot(ctx context.Context, snap Snapshot) ([]report.Row, error)
}
