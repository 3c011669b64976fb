// Package attendance implements the stateful core of the report backend: it
// owns the loaded dataset, the active filter selection and the current report
// snapshot, and serializes every mutation behind one mutex.
package attendance

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/andina-labs/asistencia-backend-go/internal/domain/attendance"
	domainReport "github.com/andina-labs/asistencia-backend-go/internal/domain/report"
	"github.com/andina-labs/asistencia-backend-go/internal/pkg/similarity"
	"github.com/andina-labs/asistencia-backend-go/internal/pkg/textnorm"
	"github.com/andina-labs/asistencia-backend-go/internal/pkg/validator"
	"github.com/andina-labs/asistencia-backend-go/internal/service/identity"
	reportService "github.com/andina-labs/asistencia-backend-go/internal/service/report"
)

// AreaResolver maps resolved names to organizational areas and roster full
// names. Implemented by the roster service; its degraded mode resolves
// everything to the OTROS sentinel.
type AreaResolver interface {
	Area(name string) string
	FullName(name string) (string, bool)
}

// ServiceImpl is the single owner of all process-wide report state.
type ServiceImpl struct {
	mu sync.Mutex

	identity *identity.Resolver
	areas    AreaResolver
	builder  *reportService.Builder

	dataset []attendance.TaggedRecord
	filters attendance.FilterState
	current []domainReport.Row
}

// NewService creates the attendance core in its pre-load condition.
func NewService(identityResolver *identity.Resolver, areas AreaResolver, builder *reportService.Builder) *ServiceImpl {
	return &ServiceImpl{
		identity: identityResolver,
		areas:    areas,
		builder:  builder,
		filters:  attendance.DefaultFilterState(),
	}
}

var _ attendance.Service = (*ServiceImpl)(nil)

// Load implements attendance.Service.
func (s *ServiceImpl) Load(ctx context.Context, rows []attendance.RawRecord) ([]domainReport.Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	normalized := make([]string, len(rows))
	var distinct []string
	seen := make(map[string]bool)
	for i, row := range rows {
		normalized[i] = textnorm.Normalize(row.RawName)
		if !seen[normalized[i]] {
			seen[normalized[i]] = true
			distinct = append(distinct, normalized[i])
		}
	}

	representatives := s.identity.Resolve(distinct)

	// Area and full-name resolution is cached per representative: many rows
	// collapse onto few identities.
	type resolution struct {
		canonical string
		fullName  string
		area      string
	}
	resolved := make(map[string]resolution, len(representatives))

	tagged := make([]attendance.TaggedRecord, 0, len(rows))
	for i, row := range rows {
		repr := representatives[normalized[i]]
		res, ok := resolved[repr]
		if !ok {
			res.canonical = strings.ToUpper(repr)
			res.fullName = res.canonical
			if full, found := s.areas.FullName(repr); found {
				res.fullName = strings.ToUpper(full)
			}
			res.area = s.areas.Area(res.fullName)
			resolved[repr] = res
		}

		tagged = append(tagged, attendance.TaggedRecord{
			RawRecord:      row,
			NormalizedName: normalized[i],
			CanonicalName:  res.canonical,
			FullName:       res.fullName,
			Area:           res.area,
		})
	}

	s.dataset = tagged
	s.filters = attendance.DefaultFilterState()
	s.current = s.builder.Build(s.dataset)

	slog.Info("Attendance dataset loaded",
		"rows", len(tagged),
		"identities", len(resolved),
	)

	return copyRows(s.current), nil
}

// GenerateReport implements attendance.Service. It is a pure pass-through to
// the report builder and never touches service state.
func (s *ServiceImpl) GenerateReport(records []attendance.TaggedRecord) []domainReport.Row {
	return s.builder.Build(records)
}

// ApplyFilters implements attendance.Service. The filter selection is
// replaced wholesale; the search text is cleared, matching the behavior of a
// fresh filter submission. Invalid date values are skipped, an invalid shift
// token degrades to "all".
func (s *ServiceImpl) ApplyFilters(ctx context.Context, req attendance.FilterRequest) ([]domainReport.Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	area := strings.TrimSpace(req.Area)
	if area == "" {
		area = attendance.AreaAll
	}

	s.filters = attendance.FilterState{
		Area:   area,
		Dates:  append([]string{}, req.Dates...),
		Shift:  attendance.ParseShift(req.Shift),
		Search: "",
	}

	s.current = s.filteredReportLocked(s.filters)
	return copyRows(s.current), nil
}

// filteredReportLocked builds the report for the given selection. The shift
// filter runs after report generation: person rows whose selected shift shows
// NO INGRESO are dropped while headers and numbering stay untouched.
func (s *ServiceImpl) filteredReportLocked(state attendance.FilterState) []domainReport.Row {
	records := filterRecords(s.dataset, state.Area, parseDates(state.Dates))
	rows := s.builder.Build(records)
	return filterByShift(rows, state.Shift)
}

// Search implements attendance.Service. Blank text clears the whole
// selection, like the reset button of the original tool.
func (s *ServiceImpl) Search(ctx context.Context, text string) ([]domainReport.Row, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return s.ClearFilters(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	matches := searchRecords(s.dataset, text)

	s.filters.Search = text
	s.current = s.builder.Build(matches)
	return copyRows(s.current), nil
}

// ClearFilters implements attendance.Service.
func (s *ServiceImpl) ClearFilters(ctx context.Context) ([]domainReport.Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.filters = attendance.DefaultFilterState()
	s.current = s.builder.Build(s.dataset)
	return copyRows(s.current), nil
}

// Reset implements attendance.Service: full teardown back to the pre-load
// condition.
func (s *ServiceImpl) Reset(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.dataset = nil
	s.filters = attendance.DefaultFilterState()
	s.current = nil
}

// FilterState implements attendance.Service.
func (s *ServiceImpl) FilterState() attendance.FilterState {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.filters
	state.Dates = append([]string{}, s.filters.Dates...)
	return state
}

// Options implements attendance.Service.
func (s *ServiceImpl) Options() attendance.Options {
	s.mu.Lock()
	defer s.mu.Unlock()

	var dates []time.Time
	seenDates := make(map[time.Time]bool)
	areaSet := make(map[string]bool)
	for _, rec := range s.dataset {
		date := rec.Date()
		if !seenDates[date] {
			seenDates[date] = true
			dates = append(dates, date)
		}
		areaSet[rec.Area] = true
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	options := attendance.Options{
		Dates: make([]string, 0, len(dates)),
		Areas: make([]string, 0, len(areaSet)+1),
	}
	for _, d := range dates {
		options.Dates = append(options.Dates, d.Format(reportService.DateLayout))
	}
	options.Areas = append(options.Areas, attendance.AreaAll)
	areas := make([]string, 0, len(areaSet))
	for area := range areaSet {
		areas = append(areas, area)
	}
	sort.Strings(areas)
	options.Areas = append(options.Areas, areas...)

	return options
}

// CurrentReport implements attendance.Service. When no snapshot exists (for
// example right after a restore of filters without data), the report is
// regenerated from the saved selection.
func (s *ServiceImpl) CurrentReport() []domainReport.Row {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current != nil {
		return copyRows(s.current)
	}
	return s.filteredReportLocked(s.filters)
}

// FullReport implements attendance.Service.
func (s *ServiceImpl) FullReport() []domainReport.Row {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.builder.Build(s.dataset)
}

// Snapshot implements attendance.Service.
func (s *ServiceImpl) Snapshot() attendance.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := attendance.Snapshot{
		Records: append([]attendance.TaggedRecord{}, s.dataset...),
		Filters: s.filters,
	}
	snap.Filters.Dates = append([]string{}, s.filters.Dates...)
	return snap
}

// ApplySnapshot implements attendance.Service: the dataset and filter
// selection are restored as captured and the matching report regenerated.
func (s *ServiceImpl) ApplySnapshot(ctx context.Context, snap attendance.Snapshot) ([]domainReport.Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.dataset = append([]attendance.TaggedRecord{}, snap.Records...)
	s.filters = snap.Filters
	if s.filters.Area == "" {
		s.filters.Area = attendance.AreaAll
	}
	if s.filters.Shift == "" {
		s.filters.Shift = attendance.ShiftAll
	}

	if s.filters.Search != "" {
		s.current = s.builder.Build(searchRecords(s.dataset, s.filters.Search))
	} else {
		s.current = s.filteredReportLocked(s.filters)
	}
	return copyRows(s.current), nil
}

// filterRecords applies the area and date selection to the dataset.
func filterRecords(dataset []attendance.TaggedRecord, area string, dates map[time.Time]bool) []attendance.TaggedRecord {
	filtered := make([]attendance.TaggedRecord, 0, len(dataset))
	for _, rec := range dataset {
		if area != attendance.AreaAll && rec.Area != area {
			continue
		}
		if len(dates) > 0 && !dates[rec.Date()] {
			continue
		}
		filtered = append(filtered, rec)
	}
	return filtered
}

// parseDates accepts dd/mm/yyyy and yyyy-mm-dd values; anything unparsable is
// skipped silently so one bad value never voids the whole filter.
func parseDates(values []string) map[time.Time]bool {
	dates := make(map[time.Time]bool, len(values))
	for _, value := range values {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		parsed, ok := validator.IsValidDate(value)
		if !ok {
			slog.Warn("Skipping unparsable filter date", "value", value)
			continue
		}
		dates[parsed] = true
	}
	return dates
}

// filterByShift drops person rows whose selected shift reads NO INGRESO.
// Date headers and the sequence numbers of remaining rows are kept as
// generated.
func filterByShift(rows []domainReport.Row, shift attendance.Shift) []domainReport.Row {
	if shift == attendance.ShiftAll {
		return rows
	}

	kept := make([]domainReport.Row, 0, len(rows))
	for _, row := range rows {
		if !row.DateHeader {
			display := row.MorningShift
			if shift == attendance.ShiftAfternoon {
				display = row.AfternoonShift
			}
			if display == attendance.NoEntry {
				continue
			}
		}
		kept = append(kept, row)
	}
	return kept
}

// searchRecords implements the two-phase name search. Phase one requires
// every meaningful query token as a substring (relaxed to 70% for multi-token
// queries); phase two, entered only when phase one finds nothing, also
// accepts close per-token similarity.
func searchRecords(dataset []attendance.TaggedRecord, text string) []attendance.TaggedRecord {
	cleaned := textnorm.StripSearchText(text)
	var keywords []string
	for _, tok := range strings.Fields(cleaned) {
		if len(tok) > 1 {
			keywords = append(keywords, tok)
		}
	}
	if len(keywords) == 0 {
		return append([]attendance.TaggedRecord{}, dataset...)
	}

	matches := filterByName(dataset, func(name string) bool {
		return matchesAllKeywords(name, keywords)
	})
	if len(matches) > 0 {
		return matches
	}

	return filterByName(dataset, func(name string) bool {
		return matchesFuzzy(name, keywords)
	})
}

func filterByName(dataset []attendance.TaggedRecord, match func(string) bool) []attendance.TaggedRecord {
	var out []attendance.TaggedRecord
	for _, rec := range dataset {
		if match(textnorm.StripSearchText(rec.FullName)) {
			out = append(out, rec)
		}
	}
	return out
}

func matchesAllKeywords(name string, keywords []string) bool {
	hits := 0
	for _, kw := range keywords {
		if strings.Contains(name, kw) {
			hits++
		}
	}
	switch {
	case hits == len(keywords):
		return true
	case len(keywords) > 1 && float64(hits) >= float64(len(keywords))*0.7:
		return true
	case len(keywords) == 1 && hits > 0:
		return true
	}
	return false
}

func matchesFuzzy(name string, keywords []string) bool {
	parts := strings.Fields(name)
	for _, kw := range keywords {
		if len(kw) < 3 {
			continue
		}
		if strings.Contains(name, kw) {
			return true
		}
		for _, part := range parts {
			if len(part) >= 3 && similarity.Ratio(kw, part) >= 0.8 {
				return true
			}
		}
	}
	return false
}

func copyRows(rows []domainReport.Row) []domainReport.Row {
	return append([]domainReport.Row{}, rows...)
}
