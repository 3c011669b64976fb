// Package similarity implements the string and token-set comparisons used by
// identity resolution and area matching: a SequenceMatcher-compatible ratio,
// token-set overlap helpers and a closest-match search.
package similarity

import "strings"

// Ratio returns a measure of the sequences' similarity in [0, 1], computed as
// 2*M/T where M is the total size of the longest matching blocks and T the
// combined length of both strings. Equal strings score 1, disjoint strings 0.
func Ratio(a, b string) float64 {
	if len(a)+len(b) == 0 {
		return 1
	}
	matched := matchingTotal([]rune(a), []rune(b))
	return 2 * float64(matched) / float64(len([]rune(a))+len([]rune(b)))
}

// matchingTotal sums the longest matching block between the two slices and
// recurses into the unmatched left and right remainders.
func matchingTotal(a, b []rune) int {
	aStart, bStart, size := longestMatch(a, b)
	if size == 0 {
		return 0
	}
	total := size
	total += matchingTotal(a[:aStart], b[:bStart])
	total += matchingTotal(a[aStart+size:], b[bStart+size:])
	return total
}

// longestMatch finds the longest contiguous run common to a and b. Ties go to
// the earliest run in a, then the earliest in b.
func longestMatch(a, b []rune) (bestA, bestB, bestSize int) {
	if len(a) == 0 || len(b) == 0 {
		return 0, 0, 0
	}

	positions := make(map[rune][]int, len(b))
	for j, r := range b {
		positions[r] = append(positions[r], j)
	}

	// lengths[j] holds the length of the match ending at a[i-1], b[j-1].
	lengths := make(map[int]int)
	for i, r := range a {
		next := make(map[int]int, len(positions[r]))
		for _, j := range positions[r] {
			k := lengths[j-1] + 1
			next[j] = k
			if k > bestSize {
				bestA, bestB, bestSize = i-k+1, j-k+1, k
			}
		}
		lengths = next
	}
	return bestA, bestB, bestSize
}

// TokenSet splits a normalized name into its set of tokens.
func TokenSet(name string) map[string]bool {
	set := make(map[string]bool)
	for _, tok := range strings.Fields(name) {
		set[tok] = true
	}
	return set
}

// Intersection returns the number of tokens present in both sets.
func Intersection(a, b map[string]bool) int {
	if len(b) < len(a) {
		a, b = b, a
	}
	n := 0
	for tok := range a {
		if b[tok] {
			n++
		}
	}
	return n
}

// Jaccard returns |a ∩ b| / |a ∪ b|, or 0 for two empty sets.
func Jaccard(a, b map[string]bool) float64 {
	inter := Intersection(a, b)
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

// OverlapRatio returns the shared-token count divided by the size of the
// smaller set, or 0 when either set is empty.
func OverlapRatio(a, b map[string]bool) float64 {
	smaller := len(a)
	if len(b) < smaller {
		smaller = len(b)
	}
	if smaller == 0 {
		return 0
	}
	return float64(Intersection(a, b)) / float64(smaller)
}

// ClosestMatch returns the candidate with the highest Ratio against target,
// provided it reaches the cutoff. The second result reports whether any
// candidate qualified.
func ClosestMatch(target string, candidates []string, cutoff float64) (string, bool) {
	best := ""
	bestScore := 0.0
	found := false
	for _, cand := range candidates {
		score := Ratio(target, cand)
		if score >= cutoff && (!found || score > bestScore) {
			best, bestScore, found = cand, score, true
		}
	}
	return best, found
}
