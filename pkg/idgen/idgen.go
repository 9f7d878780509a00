// Package idgen produces the numeric identifiers recorded on purchase,
// order and return headers. Identifiers compose the current timestamp with a
// random low-order suffix, so generation order sorts them without a separate
// timestamp column, and a collision probe against the owning table keeps
// them unique without a pre-reserved sequence.
package idgen

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"sync"
	"time"
)

const (
	// maxAttempts bounds the collision-probe loop.
	maxAttempts = 10

	timeLayout = "20060102150405"
)

// ExistsFunc probes the owning table for an already-recorded identifier.
type ExistsFunc func(ctx context.Context, id int64) (bool, error)

// Generator builds identifiers for one entity table.
type Generator struct {
	mu  sync.Mutex
	rnd *rand.Rand
	now func() time.Time
}

func New() *Generator {
	return &Generator{
		rnd: rand.New(rand.NewSource(time.Now().UnixNano())),
		now: time.Now,
	}
}

// NewWithClock is used by tests to pin the timestamp component.
func NewWithClock(now func() time.Time, seed int64) *Generator {
	return &Generator{
		rnd: rand.New(rand.NewSource(seed)),
		now: now,
	}
}

// Next returns an identifier unique per exists. The primary composition is
// yyyymmddhhmmss * 1000 plus a random 0-999 suffix; after maxAttempts
// collisions it falls back to a unix-milliseconds composition that trades
// strict sortability for guaranteed termination.
func (g *Generator) Next(ctx context.Context, exists ExistsFunc) (int64, error) {
	base, err := g.base()
	if err != nil {
		return 0, err
	}

	for attempt := 0; attempt < maxAttempts; attempt++ {
		candidate := base*1000 + g.intn(1000)

		found, err := exists(ctx, candidate)
		if err != nil {
			return 0, fmt.Errorf("id collision probe failed: %w", err)
		}
		if !found {
			return candidate, nil
		}
	}

	return g.fallback(), nil
}

func (g *Generator) base() (int64, error) {
	g.mu.Lock()
	ts := g.now().Format(timeLayout)
	g.mu.Unlock()

	base, err := strconv.ParseInt(ts, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid timestamp base %q: %w", ts, err)
	}
	return base, nil
}

func (g *Generator) fallback() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.now().UnixMilli()*100 + 1000 + g.rnd.Int63n(9000)
}

func (g *Generator) intn(n int64) int64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rnd.Int63n(n)
}
