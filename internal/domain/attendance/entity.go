package attendance

import "time"

// RawRecord is one check-in/check-out row as parsed from an uploaded export.
// The ingest boundary guarantees Entry <= Exit and drops unparsable rows, so
// the core never sees malformed timestamps.
type RawRecord struct {
	RawName string    `json:"raw_name"`
	Entry   time.Time `json:"entry"`
	Exit    time.Time `json:"exit"`
}

// Date returns the calendar day the record belongs to, derived from Entry.
func (r RawRecord) Date() time.Time {
	y, m, d := r.Entry.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, r.Entry.Location())
}

// TaggedRecord is a RawRecord after identity and area resolution.
type TaggedRecord struct {
	RawRecord
	NormalizedName string `json:"normalized_name"`
	CanonicalName  string `json:"canonical_name"` // cluster representative, upper-cased
	FullName       string `json:"full_name"`      // roster full name when matched, else CanonicalName
	Area           string `json:"area"`
}

// Session is a maximal run of records for one person/day merged under the
// contiguity tolerance.
type Session struct {
	Person string
	Date   time.Time
	Entry  time.Time
	Exit   time.Time
}

// Duration returns the session length.
func (s Session) Duration() time.Duration {
	return s.Exit.Sub(s.Entry)
}

// Gap is the interval between two consecutive sessions of the same person/day
// that exceeds the alert threshold.
type Gap struct {
	Exit     time.Time
	Reentry  time.Time
	Duration time.Duration
}

// ShiftWindow is the observed presence window inside one shift: the earliest
// entry and latest exit among the qualifying records. A nil Entry means no
// record fell into the shift.
type ShiftWindow struct {
	Entry *time.Time
	Exit  *time.Time
}

// Span is the considered range of a day: first entry to last exit, before
// discounting gaps.
type Span struct {
	Start time.Time
	End   time.Time
}

// Total returns the considered span length.
func (s Span) Total() time.Duration {
	return s.End.Sub(s.Start)
}

// DaySummary is the reconciled view of one person on one date.
type DaySummary struct {
	Sessions     []Session
	Gaps         []Gap
	TotalMinutes int
	TotalHours   string // two decimals, e.g. "7.50"
	Morning      ShiftWindow
	Afternoon    ShiftWindow
	Considered   Span
	RealWorked   time.Duration // considered span minus detected gaps
	Status       Status
}
