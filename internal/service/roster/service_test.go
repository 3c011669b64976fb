package roster

import (
	"context"
	"errors"
	"testing"

	"github.com/andina-labs/asistencia-backend-go/internal/domain/attendance"
	domain "github.com/andina-labs/asistencia-backend-go/internal/domain/roster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFetcher struct {
	entries []domain.Entry
	err     error
}

func (s *stubFetcher) Fetch(ctx context.Context) ([]domain.Entry, error) {
	return s.entries, s.err
}

func testResolver(t *testing.T, entries []domain.Entry) *Resolver {
	t.Helper()
	resolver := NewResolver(&stubFetcher{entries: entries})
	require.NoError(t, resolver.Refresh(context.Background()))
	return resolver
}

var rosterEntries = []domain.Entry{
	{Name: "Juan Carlos Perez Gomez", Area: "Sistemas"},
	{Name: "Maria Elena Lopez Diaz", Area: "Marketing"},
}

func TestAreaExactMatch(t *testing.T) {
	resolver := testResolver(t, rosterEntries)

	assert.Equal(t, "Sistemas", resolver.Area("Juan Carlos Perez Gomez"))
}

func TestAreaReversedTokenOrder(t *testing.T) {
	resolver := testResolver(t, rosterEntries)

	assert.Equal(t, "Sistemas", resolver.Area("gomez perez carlos juan"))
}

func TestAreaTokenOverlap(t *testing.T) {
	// Three of three input tokens appear in the roster name.
	resolver := testResolver(t, rosterEntries)

	assert.Equal(t, "Sistemas", resolver.Area("juan perez gomez"))
}

func TestAreaUnknownFallsBackToOther(t *testing.T) {
	resolver := testResolver(t, rosterEntries)

	assert.Equal(t, attendance.AreaOther, resolver.Area("pedro ramirez quispe"))
}

func TestAreaEmptyRoster(t *testing.T) {
	resolver := NewResolver(&stubFetcher{})

	assert.Equal(t, attendance.AreaOther, resolver.Area("juan perez gomez"))
}

func TestShortRosterNamesAreSkipped(t *testing.T) {
	// Names with fewer than three tokens are too ambiguous to index.
	resolver := testResolver(t, []domain.Entry{{Name: "Ana Li", Area: "Legal"}})

	assert.Equal(t, attendance.AreaOther, resolver.Area("ana li"))
}

func TestFullName(t *testing.T) {
	resolver := testResolver(t, rosterEntries)

	full, ok := resolver.FullName("juan carlos perez gomez")
	require.True(t, ok)
	assert.Equal(t, "Juan Carlos Perez Gomez", full)

	full, ok = resolver.FullName("perez gomez")
	require.True(t, ok)
	assert.Equal(t, "Juan Carlos Perez Gomez", full)

	_, ok = resolver.FullName("persona desconocida xyz")
	assert.False(t, ok)
}

func TestRefreshFailureKeepsPreviousIndex(t *testing.T) {
	fetcher := &stubFetcher{entries: rosterEntries}
	resolver := NewResolver(fetcher)
	require.NoError(t, resolver.Refresh(context.Background()))

	fetcher.err = errors.New("roster endpoint down")
	assert.Error(t, resolver.Refresh(context.Background()))

	// Lookups still resolve against the last good index.
	assert.Equal(t, "Sistemas", resolver.Area("Juan Carlos Perez Gomez"))
}
