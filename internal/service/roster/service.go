// Package roster resolves canonical names to organizational areas and roster
// full names against the external reference roster.
package roster

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/andina-labs/asistencia-backend-go/internal/domain/attendance"
	domain "github.com/andina-labs/asistencia-backend-go/internal/domain/roster"
	"github.com/andina-labs/asistencia-backend-go/internal/pkg/similarity"
	"github.com/andina-labs/asistencia-backend-go/internal/pkg/textnorm"
)

const fuzzyCutoff = 0.6

// Fetcher retrieves roster entries from the external source.
type Fetcher interface {
	Fetch(ctx context.Context) ([]domain.Entry, error)
}

// Resolver answers area and full-name lookups against an immutable roster
// index. The index is swapped atomically on refresh; lookups are read-only.
type Resolver struct {
	fetcher Fetcher

	mu    sync.RWMutex
	index *domain.Index
}

// NewResolver creates a resolver with an empty roster. Call Refresh to load
// the reference data.
func NewResolver(fetcher Fetcher) *Resolver {
	return &Resolver{
		fetcher: fetcher,
		index:   domain.Empty(),
	}
}

// Refresh fetches the roster and rebuilds the lookup index. On failure the
// previous index is kept and the resolver keeps operating in degraded mode.
func (r *Resolver) Refresh(ctx context.Context) error {
	entries, err := r.fetcher.Fetch(ctx)
	if err != nil {
		slog.Warn("Roster refresh failed, keeping previous index", "error", err)
		return err
	}

	index := buildIndex(entries)
	r.mu.Lock()
	r.index = index
	r.mu.Unlock()

	slog.Info("Roster index rebuilt", "entries", len(entries), "keys", index.Len())
	return nil
}

// buildIndex normalizes each roster name and registers it under both its
// natural and reversed token order. Names with fewer than three tokens are
// too ambiguous to index and are skipped.
func buildIndex(entries []domain.Entry) *domain.Index {
	index := domain.Empty()
	for _, e := range entries {
		norm := textnorm.Normalize(e.Name)
		parts := strings.Fields(norm)
		if len(parts) < 3 {
			continue
		}
		index.Areas[norm] = e.Area
		index.FullNames[norm] = e.Name

		reversed := make([]string, len(parts))
		for i, p := range parts {
			reversed[len(parts)-1-i] = p
		}
		key := strings.Join(reversed, " ")
		index.Areas[key] = e.Area
		index.FullNames[key] = e.Name
	}
	return index
}

func (r *Resolver) snapshot() *domain.Index {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.index
}

// Area resolves a name to its organizational area. Resolution order, first
// hit wins: exact normalized key (natural or reversed order), token overlap of
// at least 70% of the smaller set, equal surname pair (the two
// lexicographically last tokens), first-name plus first-surname match with a
// consistent second surname, then a fuzzy closest-match pass. Unresolved
// names get the OTROS sentinel.
func (r *Resolver) Area(name string) string {
	index := r.snapshot()
	norm := textnorm.Normalize(name)

	if area, ok := index.Areas[norm]; ok {
		return area
	}

	// Sorted key order keeps resolution deterministic when several roster
	// entries pass the same threshold.
	keys := mapKeys(index.Areas)
	inputSet := similarity.TokenSet(norm)
	inputPair := surnamePair(inputSet)

	for _, key := range keys {
		keySet := similarity.TokenSet(key)

		if similarity.OverlapRatio(inputSet, keySet) >= 0.7 {
			return index.Areas[key]
		}

		if inputPair != "" && inputPair == surnamePair(keySet) {
			return index.Areas[key]
		}

		if firstNameSurnameMatch(strings.Fields(norm), strings.Fields(key)) {
			return index.Areas[key]
		}
	}

	if match, ok := similarity.ClosestMatch(norm, keys, fuzzyCutoff); ok {
		return index.Areas[match]
	}

	return attendance.AreaOther
}

// FullName returns the roster's official full name for a resolved person:
// exact normalized key first, then a two-token overlap pass, then fuzzy
// matching. The boolean reports whether the roster knew the person.
func (r *Resolver) FullName(name string) (string, bool) {
	index := r.snapshot()
	norm := textnorm.Normalize(name)

	if full, ok := index.FullNames[norm]; ok {
		return full, true
	}

	keys := mapKeys(index.FullNames)
	inputSet := similarity.TokenSet(norm)
	for _, key := range keys {
		if similarity.Intersection(inputSet, similarity.TokenSet(key)) >= 2 {
			return index.FullNames[key], true
		}
	}

	if match, ok := similarity.ClosestMatch(norm, keys, fuzzyCutoff); ok {
		return index.FullNames[match], true
	}

	return "", false
}

// surnamePair joins the two lexicographically last tokens, the stable stand-in
// for the surname pair when token order is unknown.
func surnamePair(set map[string]bool) string {
	if len(set) < 2 {
		return ""
	}
	tokens := make([]string, 0, len(set))
	for tok := range set {
		tokens = append(tokens, tok)
	}
	sort.Strings(tokens)
	return strings.Join(tokens[len(tokens)-2:], " ")
}

// firstNameSurnameMatch accepts when first name and first surname agree and,
// when both sides carry a second surname, it agrees too. A mismatched second
// surname is an explicit non-match.
func firstNameSurnameMatch(input, key []string) bool {
	if len(input) < 2 || len(key) < 2 {
		return false
	}
	if input[0] != key[0] || input[1] != key[1] {
		return false
	}
	if len(input) > 2 && len(key) > 2 && input[2] != key[2] {
		return false
	}
	return true
}

func mapKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
