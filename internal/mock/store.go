// Package mock implements the resource services against in-memory data,
// imitating the future REST API so the dashboard works before that API
// exists. All services handed out by one factory share a single store, so
// cross-collection effects (link retraction on delete) behave like the
// real backend would.
package mock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/quotia-io/procure/pkg/procure"
)

// Store holds every mock collection behind one lock.
type Store struct {
	mu            sync.RWMutex
	manufacturers []procure.Manufacturer
	suppliers     []procure.Supplier
	rfqs          []procure.RFQRecord

	seq map[string]int
	now func() time.Time
}

// NewStore creates a store seeded with the demo fixtures.
func NewStore() *Store {
	store := NewEmptyStore()
	seedFixtures(store)

	return store
}

// NewEmptyStore creates a store with no records, mainly for tests.
func NewEmptyStore() *Store {
	return &Store{
		seq: make(map[string]int),
		now: time.Now,
	}
}

// SetClock overrides the store's clock, for deterministic tests.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.now = now
}

// nextID hands out sequential ids per prefix ("mfg", "sup", "rfq", "li").
// Caller holds the lock.
func (s *Store) nextID(prefix string) string {
	s.seq[prefix]++

	return fmt.Sprintf("%s-%03d", prefix, s.seq[prefix])
}

// sleep simulates backend latency while honoring cancellation.
func sleep(ctx context.Context, latency time.Duration) error {
	if latency <= 0 {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("request canceled: %w", err)
		}

		return nil
	}

	timer := time.NewTimer(latency)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return fmt.Errorf("request canceled: %w", ctx.Err())
	case <-timer.C:
		return nil
	}
}

func cloneSlice[T any](records []T) []T {
	out := make([]T, len(records))
	copy(out, records)

	return out
}
