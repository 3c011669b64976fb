// Package roster models the external reference mapping of known full names to
// organizational areas. The roster is fetched from a remote source; its
// unavailability is a degraded mode, never an error.
package roster

// Entry is one person in the reference roster.
type Entry struct {
	Name string `json:"nombre"`
	Area string `json:"area"`
}

// Index is an immutable lookup view built from roster entries. Keys are
// normalized names; entries additionally register a reversed-token variant so
// "surname-first" spellings resolve without fuzzy matching. Entries whose
// normalized name has fewer than three tokens are not indexed.
type Index struct {
	Areas     map[string]string // normalized (and reversed) name -> area
	FullNames map[string]string // normalized (and reversed) name -> roster full name
}

// Empty returns an index with no entries, used when the roster source is
// unavailable.
func Empty() *Index {
	return &Index{
		Areas:     map[string]string{},
		FullNames: map[string]string{},
	}
}

// Len reports how many lookup keys the index holds.
func (i *Index) Len() int {
	return len(i.Areas)
}
