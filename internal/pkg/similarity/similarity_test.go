package similarity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRatio(t *testing.T) {
	tests := []struct {
		name     string
		a, b     string
		expected float64
	}{
		{name: "equal strings", a: "juan perez", b: "juan perez", expected: 1},
		{name: "both empty", a: "", b: "", expected: 1},
		{name: "one empty", a: "juan", b: "", expected: 0},
		{name: "disjoint", a: "abc", b: "xyz", expected: 0},
		{name: "shifted block", a: "abcd", b: "bcde", expected: 0.75},
		{name: "one char typo", a: "juan perez", b: "juan peres", expected: 0.9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, Ratio(tt.a, tt.b), 1e-9)
		})
	}
}

func TestRatioSymmetricOrder(t *testing.T) {
	// The score depends only on matched blocks, not argument order, for
	// the pairs identity resolution actually compares.
	a, b := "maria lopez diaz", "maria lopes diaz"
	assert.InDelta(t, Ratio(a, b), Ratio(b, a), 1e-9)
}

func TestTokenSetHelpers(t *testing.T) {
	a := TokenSet("juan carlos perez")
	b := TokenSet("juan perez gomez")

	assert.Equal(t, 3, len(a))
	assert.Equal(t, 2, Intersection(a, b))
	assert.InDelta(t, 0.5, Jaccard(a, b), 1e-9) // 2 shared of 4 distinct
	assert.InDelta(t, 2.0/3.0, OverlapRatio(a, b), 1e-9)
}

func TestTokenSetHelpersEmpty(t *testing.T) {
	empty := TokenSet("")
	other := TokenSet("juan")

	assert.Equal(t, 0, Intersection(empty, other))
	assert.Zero(t, Jaccard(empty, empty))
	assert.Zero(t, OverlapRatio(empty, other))
}

func TestClosestMatch(t *testing.T) {
	candidates := []string{"juan perez", "maria lopez", "pedro ruiz"}

	best, ok := ClosestMatch("juan peres", candidates, 0.6)
	assert.True(t, ok)
	assert.Equal(t, "juan perez", best)

	_, ok = ClosestMatch("zzzzzz", candidates, 0.6)
	assert.False(t, ok)

	_, ok = ClosestMatch("anything", nil, 0.6)
	assert.False(t, ok)
}
