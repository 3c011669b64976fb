// Package report defines the rendered report structure: an ordered sequence of
// date-header pseudo-rows and per-person rows, rebuilt from scratch on every
// generation and never mutated in place.
package report

// Row is one line of the attendance report. A date header carries only Date
// and Name (the display label); person rows carry the reconciled day values.
type Row struct {
	DateHeader     bool       `json:"date_header"`
	Date           string     `json:"date"` // dd/mm/yyyy
	Number         *int       `json:"number,omitempty"`
	Name           string     `json:"name"`
	MorningShift   string     `json:"morning_shift,omitempty"`
	AfternoonShift string     `json:"afternoon_shift,omitempty"`
	TotalHours     string     `json:"total_hours,omitempty"` // two decimals
	TotalMinutes   int        `json:"total_minutes"`
	Area           string     `json:"area,omitempty"`
	Status         string     `json:"status,omitempty"` // OK or WARNING
	GapDetail      *GapDetail `json:"gap_detail,omitempty"`
}

// GapDetail backs the warning indicator of a person row: the detected gaps and
// the considered-versus-real time accounting for the day.
type GapDetail struct {
	Name       string    `json:"name"`
	Gaps       []GapInfo `json:"gaps"`
	Considered SpanInfo  `json:"considered"`
	RealTotal  string    `json:"real_total"` // HH:MM:SS after discounting gaps
}

// GapInfo is one detected gap, formatted for display.
type GapInfo struct {
	Exit     string  `json:"exit"`     // HH:MM:SS
	Reentry  string  `json:"reentry"`  // HH:MM:SS
	Duration string  `json:"duration"` // HH:MM:SS
	Seconds  float64 `json:"seconds"`
}

// SpanInfo is the considered range of a day: earliest entry to latest exit.
type SpanInfo struct {
	Start string `json:"start"` // HH:MM:SS
	End   string `json:"end"`   // HH:MM:SS
	Total string `json:"total"` // HH:MM:SS
}
