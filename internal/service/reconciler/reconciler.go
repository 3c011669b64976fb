// Package reconciler merges the raw check-in/check-out records of one person
// on one day into continuous work sessions, computes worked time and detects
// abnormal gaps between sessions.
package reconciler

import (
	"math"
	"sort"
	"time"

	"github.com/andina-labs/asistencia-backend-go/internal/domain/attendance"
	"github.com/shopspring/decimal"
)

const (
	// MergeTolerance is the maximum distance between one record's exit and
	// the next record's entry for both to count as the same session. It
	// absorbs clock skew and duplicate pings from the conferencing tool.
	MergeTolerance = 60 * time.Second

	// GapThreshold is the minimum distance between consecutive sessions that
	// is reported as a time gap.
	GapThreshold = 600 * time.Second

	// afternoonStart is the hour that splits the morning and afternoon
	// shifts, compared against each record's entry time of day.
	afternoonStart = 14
)

// Reconcile summarizes all records of one (person, day). Records are sorted
// by entry; adjacent records whose boundary distance is within MergeTolerance
// collapse into one session. Overlapping records never produce negative gaps:
// only positive session boundaries beyond GapThreshold are reported.
func Reconcile(records []attendance.TaggedRecord) attendance.DaySummary {
	if len(records) == 0 {
		return attendance.DaySummary{Status: attendance.StatusOK, TotalHours: "0.00"}
	}

	sorted := make([]attendance.TaggedRecord, len(records))
	copy(sorted, records)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Entry.Before(sorted[j].Entry)
	})

	sessions := mergeSessions(sorted)
	gaps := detectGaps(sessions)

	var worked time.Duration
	for _, s := range sessions {
		worked += s.Duration()
	}
	totalMinutes := int(math.Round(worked.Seconds() / 60))

	summary := attendance.DaySummary{
		Sessions:     sessions,
		Gaps:         gaps,
		TotalMinutes: totalMinutes,
		TotalHours:   hoursDisplay(totalMinutes),
		Status:       attendance.StatusOK,
	}

	summary.Morning, summary.Afternoon = shiftWindows(sorted)
	summary.Considered = consideredSpan(sorted)

	var gapTotal time.Duration
	for _, g := range gaps {
		gapTotal += g.Duration
	}
	summary.RealWorked = summary.Considered.Total() - gapTotal

	if len(gaps) > 0 {
		summary.Status = attendance.StatusWarning
	}

	return summary
}

// mergeSessions walks the entry-sorted records and joins each run whose
// boundaries stay within MergeTolerance of each other.
func mergeSessions(sorted []attendance.TaggedRecord) []attendance.Session {
	var sessions []attendance.Session

	i := 0
	for i < len(sorted) {
		entry := sorted[i].Entry
		exit := sorted[i].Exit

		j := i + 1
		for j < len(sorted) {
			delta := sorted[j].Entry.Sub(exit)
			if delta < 0 {
				delta = -delta
			}
			if delta > MergeTolerance {
				break
			}
			exit = sorted[j].Exit
			j++
		}

		sessions = append(sessions, attendance.Session{
			Person: sorted[i].CanonicalName,
			Date:   sorted[i].Date(),
			Entry:  entry,
			Exit:   exit,
		})
		i = j
	}

	return sessions
}

// detectGaps reports the boundaries between consecutive sessions that exceed
// GapThreshold. Negative boundaries (overlapping sessions) are ignored.
func detectGaps(sessions []attendance.Session) []attendance.Gap {
	var gaps []attendance.Gap
	for i := 1; i < len(sessions); i++ {
		diff := sessions[i].Entry.Sub(sessions[i-1].Exit)
		if diff > GapThreshold {
			gaps = append(gaps, attendance.Gap{
				Exit:     sessions[i-1].Exit,
				Reentry:  sessions[i].Entry,
				Duration: diff,
			})
		}
	}
	return gaps
}

// shiftWindows partitions records into the morning and afternoon shifts by
// entry time of day and keeps the widest observed window per shift.
func shiftWindows(records []attendance.TaggedRecord) (morning, afternoon attendance.ShiftWindow) {
	for _, rec := range records {
		window := &afternoon
		if rec.Entry.Hour() < afternoonStart {
			window = &morning
		}

		if window.Entry == nil || rec.Entry.Before(*window.Entry) {
			entry := rec.Entry
			window.Entry = &entry
		}
		if window.Exit == nil || rec.Exit.After(*window.Exit) {
			exit := rec.Exit
			window.Exit = &exit
		}
	}
	return morning, afternoon
}

// consideredSpan is the earliest entry to the latest exit of the day.
func consideredSpan(sorted []attendance.TaggedRecord) attendance.Span {
	span := attendance.Span{Start: sorted[0].Entry, End: sorted[0].Exit}
	for _, rec := range sorted[1:] {
		if rec.Exit.After(span.End) {
			span.End = rec.Exit
		}
	}
	return span
}

// hoursDisplay renders total minutes as decimal hours with two places.
func hoursDisplay(minutes int) string {
	return decimal.NewFromInt(int64(minutes)).
		Div(decimal.NewFromInt(60)).
		Round(2).
		StringFixed(2)
}
