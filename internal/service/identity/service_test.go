package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveSingletons(t *testing.T) {
	r := NewResolver()

	mapping := r.Resolve([]string{"juan perez", "maria lopez"})

	assert.Equal(t, "juan perez", mapping["juan perez"])
	assert.Equal(t, "maria lopez", mapping["maria lopez"])
}

func TestResolveReversedNameOrder(t *testing.T) {
	r := NewResolver()

	mapping := r.Resolve([]string{"juan perez", "perez juan"})

	assert.Equal(t, mapping["juan perez"], mapping["perez juan"])
}

func TestResolveContainedVariant(t *testing.T) {
	r := NewResolver()

	mapping := r.Resolve([]string{"juan perez", "juan antonio perez"})

	// Both variants join one cluster and the longest member represents it.
	assert.Equal(t, "juan antonio perez", mapping["juan perez"])
	assert.Equal(t, "juan antonio perez", mapping["juan antonio perez"])
}

func TestResolveHonorificVariant(t *testing.T) {
	r := NewResolver()

	mapping := r.Resolve([]string{"maria lopez", "ing maria lopez"})

	assert.Equal(t, mapping["maria lopez"], mapping["ing maria lopez"])
}

func TestResolveSmallTypo(t *testing.T) {
	r := NewResolver()

	mapping := r.Resolve([]string{"rosa fernandez", "rosa fernandes"})

	assert.Equal(t, mapping["rosa fernandez"], mapping["rosa fernandes"])
}

func TestResolveSiblingsStaySeparate(t *testing.T) {
	r := NewResolver()

	// Same two surnames with a different first name is a different person,
	// even though the token overlap alone would join them.
	mapping := r.Resolve([]string{"ana perez gomez", "luz perez gomez"})

	assert.NotEqual(t, mapping["ana perez gomez"], mapping["luz perez gomez"])
}

func TestResolveTitledSiblingsStaySeparate(t *testing.T) {
	r := NewResolver()

	// A title on one side must not hide the surname conflict.
	mapping := r.Resolve([]string{"dra ana perez gomez", "luz perez gomez"})

	assert.NotEqual(t, mapping["dra ana perez gomez"], mapping["luz perez gomez"])
}

func TestResolveSharedGivenNamesStaySeparate(t *testing.T) {
	r := NewResolver()

	// Same first two tokens but a different third token.
	mapping := r.Resolve([]string{"juan carlos perez", "juan carlos gomez"})

	assert.NotEqual(t, mapping["juan carlos perez"], mapping["juan carlos gomez"])
}

func TestResolveDuplicatesIgnored(t *testing.T) {
	r := NewResolver()

	mapping := r.Resolve([]string{"juan perez", "juan perez", "juan perez"})

	assert.Len(t, mapping, 1)
	assert.Equal(t, "juan perez", mapping["juan perez"])
}

func TestResolveEveryNameAssigned(t *testing.T) {
	r := NewResolver()
	names := []string{
		"juan perez", "perez juan", "maria lopez",
		"ing maria lopez", "pedro ruiz", "carla torres diaz",
	}

	mapping := r.Resolve(names)

	for _, name := range names {
		assert.Contains(t, mapping, name)
		assert.NotEmpty(t, mapping[name])
	}
}
