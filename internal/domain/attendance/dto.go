package attendance

// FilterState is the single active filter selection. It is replaced wholesale
// on every filter, search or clear operation and read by export collaborators.
type FilterState struct {
	Area   string   `json:"area"`
	Dates  []string `json:"dates"`
	Shift  Shift    `json:"shift"`
	Search string   `json:"search"`
}

// DefaultFilterState returns the unfiltered selection.
func DefaultFilterState() FilterState {
	return FilterState{
		Area:   AreaAll,
		Dates:  []string{},
		Shift:  ShiftAll,
		Search: "",
	}
}

// FilterRequest carries a filter application from the HTTP boundary.
type FilterRequest struct {
	Area  string   `json:"area"`
	Dates []string `json:"dates"`
	Shift string   `json:"shift"`
}

// SearchRequest carries a free-text name search.
type SearchRequest struct {
	Text string `json:"text"`
}

// Options lists the filter values available for the loaded dataset.
type Options struct {
	Dates []string `json:"dates"` // dd/mm/yyyy, ascending
	Areas []string `json:"areas"` // TODOS first, then sorted
}

// Snapshot is the serializable state of the service: the loaded dataset plus
// the active filter selection. History persistence stores and replays it.
type Snapshot struct {
	Records []TaggedRecord `json:"records"`
	Filters FilterState    `json:"filters"`
}
