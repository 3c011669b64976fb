// Package identity groups normalized name variants that belong to the same
// person and maps every variant to one representative spelling.
package identity

import (
	"strings"

	"github.com/andina-labs/asistencia-backend-go/internal/pkg/similarity"
	"github.com/andina-labs/asistencia-backend-go/internal/pkg/textnorm"
)

// candidate is a normalized name prepared for rule evaluation.
type candidate struct {
	name   string
	tokens []string
	set    map[string]bool
}

func newCandidate(name string) candidate {
	return candidate{
		name:   name,
		tokens: strings.Fields(name),
		set:    similarity.TokenSet(name),
	}
}

// withoutTitle returns the candidate with a leading personal title removed,
// or the candidate itself when none is present.
func (c candidate) withoutTitle() candidate {
	stripped := stripTitle(c.tokens)
	if len(stripped) == len(c.tokens) {
		return c
	}
	return newCandidate(strings.Join(stripped, " "))
}

// predicate decides whether two candidates refer to the same person.
type predicate struct {
	name  string
	match func(base, other candidate) bool
}

// guards reject candidate pairs outright, before any joining rule runs:
// same-surname-different-person is the default reading.
var guards = []predicate{
	{name: "same-first-two-different-third", match: func(a, b candidate) bool {
		return len(a.tokens) >= 3 && len(b.tokens) >= 3 &&
			a.tokens[0] == b.tokens[0] &&
			a.tokens[1] == b.tokens[1] &&
			a.tokens[2] != b.tokens[2]
	}},
	{name: "same-surnames-different-first", match: func(a, b candidate) bool {
		if len(a.tokens) < 2 || len(b.tokens) < 2 {
			return false
		}
		al, bl := a.tokens[len(a.tokens)-2:], b.tokens[len(b.tokens)-2:]
		return al[0] == bl[0] && al[1] == bl[1] && a.tokens[0] != b.tokens[0]
	}},
}

// rules are evaluated in order; the first match joins the candidate into the
// base group.
var rules = []predicate{
	{name: "exact", match: func(a, b candidate) bool {
		return a.name == b.name
	}},
	{name: "same-token-set", match: func(a, b candidate) bool {
		return len(a.tokens) <= 4 && len(b.tokens) <= 4 && sameSet(a.set, b.set)
	}},
	{name: "mutual-containment", match: func(a, b candidate) bool {
		inter := similarity.Intersection(a.set, b.set)
		if inter == 0 {
			return false
		}
		return float64(inter)/float64(len(a.set)) > 0.7 ||
			float64(inter)/float64(len(b.set)) > 0.7
	}},
	{name: "same-surname-similar-rest", match: func(a, b candidate) bool {
		if !sameLastToken(a, b) {
			return false
		}
		restA := strings.Join(a.tokens[:len(a.tokens)-1], " ")
		restB := strings.Join(b.tokens[:len(b.tokens)-1], " ")
		return similarity.Ratio(restA, restB) > 0.7
	}},
	{name: "same-first-shared-surname", match: func(a, b candidate) bool {
		if len(a.tokens) < 2 || len(b.tokens) < 2 || a.tokens[0] != b.tokens[0] {
			return false
		}
		restA := similarity.TokenSet(strings.Join(a.tokens[1:], " "))
		restB := similarity.TokenSet(strings.Join(b.tokens[1:], " "))
		return similarity.Intersection(restA, restB) >= 1
	}},
	{name: "title-stripped-overlap", match: func(a, b candidate) bool {
		ta, tb := stripTitle(a.tokens), stripTitle(b.tokens)
		if len(ta) < 2 || len(tb) < 2 {
			return false
		}
		setA := similarity.TokenSet(strings.Join(ta, " "))
		setB := similarity.TokenSet(strings.Join(tb, " "))
		return similarity.Intersection(setA, setB) >= 2 ||
			similarity.Jaccard(setA, setB) >= 0.6
	}},
	{name: "whole-string-similarity", match: func(a, b candidate) bool {
		return similarity.Ratio(a.name, b.name) > 0.8
	}},
	{name: "same-surname-ignoring-initials", match: func(a, b candidate) bool {
		if !sameLastToken(a, b) {
			return false
		}
		return similarity.Ratio(dropInitials(a.tokens), dropInitials(b.tokens)) > 0.7
	}},
}

func sameSet(a, b map[string]bool) bool {
	if len(a) != len(b) {
		return false
	}
	return similarity.Intersection(a, b) == len(a)
}

func sameLastToken(a, b candidate) bool {
	return len(a.tokens) > 0 && len(b.tokens) > 0 &&
		a.tokens[len(a.tokens)-1] == b.tokens[len(b.tokens)-1]
}

func stripTitle(tokens []string) []string {
	if len(tokens) > 0 && textnorm.PersonalTitles[tokens[0]] {
		return tokens[1:]
	}
	return tokens
}

func dropInitials(tokens []string) string {
	kept := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if len(tok) > 1 {
			kept = append(kept, tok)
		}
	}
	return strings.Join(kept, " ")
}

// Resolver clusters normalized name variants per load.
type Resolver struct{}

// NewResolver creates an identity resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// Resolve partitions the given normalized names into identity clusters and
// returns the mapping from each variant to its cluster representative (the
// member with the most characters). Names are processed in first-encounter
// order; duplicates are ignored. Every input name is assigned exactly once,
// singletons mapping to themselves. The scan is O(n²) in distinct names,
// which is bounded by attendee count rather than row count.
func (r *Resolver) Resolve(names []string) map[string]string {
	candidates := make([]candidate, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true
		candidates = append(candidates, newCandidate(name))
	}

	mapping := make(map[string]string, len(candidates))
	used := make([]bool, len(candidates))

	for i, base := range candidates {
		if used[i] {
			continue
		}
		group := []int{i}
		used[i] = true

		for j, other := range candidates {
			if used[j] {
				continue
			}
			if r.sameIdentity(base, other) {
				group = append(group, j)
				used[j] = true
			}
		}

		repr := candidates[group[0]].name
		for _, idx := range group[1:] {
			if len(candidates[idx].name) > len(repr) {
				repr = candidates[idx].name
			}
		}
		for _, idx := range group {
			mapping[candidates[idx].name] = repr
		}
	}

	return mapping
}

// sameIdentity applies the guards, then the joining rules in order. Guards
// compare title-stripped tokens, otherwise an honorific variant of the same
// name would look like a sibling sharing surnames and never reach the rules.
func (r *Resolver) sameIdentity(base, other candidate) bool {
	strippedBase, strippedOther := base.withoutTitle(), other.withoutTitle()
	for _, g := range guards {
		if g.match(strippedBase, strippedOther) {
			return false
		}
	}
	for _, rule := range rules {
		if rule.match(base, other) {
			return true
		}
	}
	return false
}
