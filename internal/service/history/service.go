// Package history records restorable snapshots of the report state. It is
// best-effort by design: when no storage is configured the service degrades
// to a no-op for writes and reports unavailability for reads.
package history

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/andina-labs/asistencia-backend-go/internal/domain/attendance"
	"github.com/andina-labs/asistencia-backend-go/internal/domain/history"
	domainReport "github.com/andina-labs/asistencia-backend-go/internal/domain/report"
)

const listLimit = 100

// Service records and replays history snapshots.
type Service interface {
	// RecordLoad logs a dataset load from the given files.
	RecordLoad(ctx context.Context, files []string, snap attendance.Snapshot)

	// RecordFilters logs a filter application.
	RecordFilters(ctx context.Context, snap attendance.Snapshot)

	// RecordSearch logs a name search.
	RecordSearch(ctx context.Context, text string, snap attendance.Snapshot)

	// List returns the recorded history, newest first.
	List(ctx context.Context) ([]history.Summary, error)

	// Restore replays a recorded snapshot onto the attendance core and
	// returns the resulting report.
	Restore(ctx context.Context, id string) ([]domainReport.Row, error)
}

type serviceImpl struct {
	repo       history.Repository // nil when history storage is not configured
	attendance attendance.Service
}

// NewService creates the history service. A nil repository is allowed and
// yields the degraded no-op behavior.
func NewService(repo history.Repository, attendanceService attendance.Service) Service {
	return &serviceImpl{
		repo:       repo,
		attendance: attendanceService,
	}
}

func (s *serviceImpl) save(ctx context.Context, description string, files []string, snap attendance.Snapshot) {
	if s.repo == nil {
		return
	}
	record := history.Record{
		Description: description,
		Files:       files,
		Snapshot:    snap,
	}
	if err := s.repo.Save(ctx, &record); err != nil {
		slog.Warn("Failed to save history record", "description", description, "error", err)
	}
}

// RecordLoad implements Service.
func (s *serviceImpl) RecordLoad(ctx context.Context, files []string, snap attendance.Snapshot) {
	s.save(ctx, "Carga de archivos: "+strings.Join(files, ", "), files, snap)
}

// RecordFilters implements Service.
func (s *serviceImpl) RecordFilters(ctx context.Context, snap attendance.Snapshot) {
	f := snap.Filters
	dates := "NINGUNA"
	if len(f.Dates) > 0 {
		dates = strings.Join(f.Dates, ", ")
	}
	description := fmt.Sprintf("Filtros aplicados: Área=%s, Fechas=%s, Turno=%s", f.Area, dates, f.Shift)
	s.save(ctx, description, nil, snap)
}

// RecordSearch implements Service.
func (s *serviceImpl) RecordSearch(ctx context.Context, text string, snap attendance.Snapshot) {
	s.save(ctx, fmt.Sprintf("Búsqueda realizada: %q", text), nil, snap)
}

// List implements Service.
func (s *serviceImpl) List(ctx context.Context) ([]history.Summary, error) {
	if s.repo == nil {
		return nil, history.ErrUnavailable
	}
	return s.repo.List(ctx, listLimit)
}

// Restore implements Service.
func (s *serviceImpl) Restore(ctx context.Context, id string) ([]domainReport.Row, error) {
	if s.repo == nil {
		return nil, history.ErrUnavailable
	}
	record, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.attendance.ApplySnapshot(ctx, record.Snapshot)
}
