// Package report builds the ordered attendance report from tagged records.
package report

import (
	"fmt"
	"sort"
	"time"

	"github.com/andina-labs/asistencia-backend-go/internal/domain/attendance"
	"github.com/andina-labs/asistencia-backend-go/internal/domain/report"
	"github.com/andina-labs/asistencia-backend-go/internal/service/reconciler"
)

// DateLayout is the display layout for report dates.
const DateLayout = "02/01/2006"

const timeOfDayLayout = "15:04:05"

// Builder turns a tagged dataset into report rows. It is stateless; every
// call produces a fresh sequence.
type Builder struct{}

// NewBuilder creates a report builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Build groups records by ascending date, emits one header pseudo-row per
// date followed by one row per person in first-seen order, and numbers the
// person rows continuously across date groups starting at zero. Empty input
// yields an empty report.
func (b *Builder) Build(records []attendance.TaggedRecord) []report.Row {
	if len(records) == 0 {
		return []report.Row{}
	}

	byDate := make(map[time.Time][]attendance.TaggedRecord)
	var dates []time.Time
	for _, rec := range records {
		date := rec.Date()
		if _, ok := byDate[date]; !ok {
			dates = append(dates, date)
		}
		byDate[date] = append(byDate[date], rec)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	rows := make([]report.Row, 0, len(records)+len(dates))
	sequence := 0

	for _, date := range dates {
		dateDisplay := date.Format(DateLayout)
		rows = append(rows, report.Row{
			DateHeader: true,
			Date:       dateDisplay,
			Name:       "Fecha de Reporte: " + dateDisplay,
		})

		for _, person := range personOrder(byDate[date]) {
			personRecords := recordsFor(byDate[date], person)
			summary := reconciler.Reconcile(personRecords)

			number := sequence
			sequence++

			rows = append(rows, report.Row{
				Date:           dateDisplay,
				Number:         &number,
				Name:           person,
				MorningShift:   shiftDisplay(summary.Morning),
				AfternoonShift: shiftDisplay(summary.Afternoon),
				TotalHours:     summary.TotalHours,
				TotalMinutes:   summary.TotalMinutes,
				Area:           personRecords[0].Area,
				Status:         string(summary.Status),
				GapDetail:      gapDetail(person, summary),
			})
		}
	}

	return rows
}

// personOrder returns the distinct display names of a date group in the order
// they first appear.
func personOrder(records []attendance.TaggedRecord) []string {
	var order []string
	seen := make(map[string]bool)
	for _, rec := range records {
		if !seen[rec.FullName] {
			seen[rec.FullName] = true
			order = append(order, rec.FullName)
		}
	}
	return order
}

func recordsFor(records []attendance.TaggedRecord, person string) []attendance.TaggedRecord {
	var out []attendance.TaggedRecord
	for _, rec := range records {
		if rec.FullName == person {
			out = append(out, rec)
		}
	}
	return out
}

// shiftDisplay renders a shift window as "hh:mm AM - hh:mm PM", or the
// NO INGRESO sentinel when nothing fell into the shift.
func shiftDisplay(window attendance.ShiftWindow) string {
	if window.Entry == nil || window.Exit == nil {
		return attendance.NoEntry
	}
	return window.Entry.Format("03:04 PM") + " - " + window.Exit.Format("03:04 PM")
}

func gapDetail(person string, summary attendance.DaySummary) *report.GapDetail {
	detail := &report.GapDetail{
		Name: person,
		Gaps: make([]report.GapInfo, 0, len(summary.Gaps)),
		Considered: report.SpanInfo{
			Start: summary.Considered.Start.Format(timeOfDayLayout),
			End:   summary.Considered.End.Format(timeOfDayLayout),
			Total: durationDisplay(summary.Considered.Total()),
		},
		RealTotal: durationDisplay(summary.RealWorked),
	}
	for _, g := range summary.Gaps {
		detail.Gaps = append(detail.Gaps, report.GapInfo{
			Exit:     g.Exit.Format(timeOfDayLayout),
			Reentry:  g.Reentry.Format(timeOfDayLayout),
			Duration: durationDisplay(g.Duration),
			Seconds:  g.Duration.Seconds(),
		})
	}
	return detail
}

func durationDisplay(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Seconds())
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}
