package idgen

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() func() time.Time {
	at := time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)
	return func() time.Time { return at }
}

func TestNextComposesTimestampAndSuffix(t *testing.T) {
	g := NewWithClock(fixedClock(), 1)

	id, err := g.Next(context.Background(), func(ctx context.Context, id int64) (bool, error) {
		return false, nil
	})
	require.NoError(t, err)

	assert.Equal(t, int64(20260314150926), id/1000)
	assert.GreaterOrEqual(t, id%1000, int64(0))
	assert.Less(t, id%1000, int64(1000))
}

func TestNextRetriesOnCollision(t *testing.T) {
	g := NewWithClock(fixedClock(), 7)

	var probes int
	id, err := g.Next(context.Background(), func(ctx context.Context, id int64) (bool, error) {
		probes++
		return probes < 4, nil
	})
	require.NoError(t, err)

	assert.Equal(t, 4, probes)
	assert.Equal(t, int64(20260314150926), id/1000)
}

func TestNextFallsBackAfterExhaustingAttempts(t *testing.T) {
	g := NewWithClock(fixedClock(), 42)

	var probes int
	id, err := g.Next(context.Background(), func(ctx context.Context, id int64) (bool, error) {
		probes++
		return true, nil
	})
	require.NoError(t, err)

	// Bounded probing, then a value from the coarser composition.
	assert.Equal(t, 10, probes)
	assert.NotEqual(t, int64(20260314150926), id/1000)
	assert.Positive(t, id)
}

func TestNextPropagatesProbeError(t *testing.T) {
	g := NewWithClock(fixedClock(), 3)

	probeErr := errors.New("connection reset")
	_, err := g.Next(context.Background(), func(ctx context.Context, id int64) (bool, error) {
		return false, probeErr
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, probeErr)
}

func TestNextNeverRepeatsAgainstRecordedIDs(t *testing.T) {
	g := New()
	seen := map[int64]bool{}

	for i := 0; i < 500; i++ {
		id, err := g.Next(context.Background(), func(ctx context.Context, id int64) (bool, error) {
			return seen[id], nil
		})
		require.NoError(t, err)
		require.False(t, seen[id], "id %d issued twice", id)
		seen[id] = true
	}
}

func TestNextIsSortableWithinAClockSecond(t *testing.T) {
	g := NewWithClock(fixedClock(), 11)

	a, err := g.Next(context.Background(), func(ctx context.Context, id int64) (bool, error) {
		return false, nil
	})
	require.NoError(t, err)

	// Same second: both ids share the timestamp prefix.
	b, err := g.Next(context.Background(), func(ctx context.Context, id int64) (bool, error) {
		return id == a, nil
	})
	require.NoError(t, err)

	assert.Equal(t, a/1000, b/1000)
	assert.NotEqual(t, a, b)
}
