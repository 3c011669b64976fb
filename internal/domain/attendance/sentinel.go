package attendance

import "strings"

// Shift identifies the shift selection of a filter. The zero-value semantics
// of the original tool are preserved: anything unrecognized behaves as "all".
type Shift string

const (
	ShiftAll       Shift = "TODOS"
	ShiftMorning   Shift = "MAÑANA"
	ShiftAfternoon Shift = "TARDE"
)

// ParseShift maps a free-form token to a Shift. Unknown tokens degrade to
// ShiftAll rather than failing, so one bad filter value never aborts a request.
func ParseShift(s string) Shift {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "MAÑANA", "MANANA":
		return ShiftMorning
	case "TARDE":
		return ShiftAfternoon
	default:
		return ShiftAll
	}
}

// Status flags whether a person/day had detected time gaps.
type Status string

const (
	StatusOK      Status = "OK"
	StatusWarning Status = "WARNING"
)

const (
	// AreaAll is the area filter wildcard.
	AreaAll = "TODOS"
	// AreaOther is assigned when the roster cannot resolve a person's area.
	AreaOther = "OTROS"
	// NoEntry is the shift display used when no record fell into the shift.
	NoEntry = "NO INGRESO"
)
