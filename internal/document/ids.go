package document

import (
	"sync"

	"github.com/google/uuid"
)

// IDGenerator assigns document ids at creation. Implemented by
// UUIDv7Generator (production) and FixedIDs (tests).
type IDGenerator interface {
	NewID() string
}

// UUIDv7Generator generates time-sortable UUIDv7 document ids.
//
// UUIDv7 embeds a timestamp in the most significant bits, making ids
// sortable by creation time, which keeps store listings stable and is
// helpful when debugging a database by hand.
//
// Thread-safety: stateless and safe for concurrent use.
type UUIDv7Generator struct{}

// NewID creates a new UUIDv7 as a hyphenated string.
// Panics if UUID generation fails (should never happen in practice).
func (UUIDv7Generator) NewID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// FixedIDs returns predetermined ids for testing, enabling deterministic
// repository fixtures and golden comparisons.
//
// Thread-safety: safe for concurrent use via internal mutex.
type FixedIDs struct {
	mu  sync.Mutex
	ids []string
	idx int
}

// NewFixedIDs creates a generator that returns ids in order.
// Panics when the supply is exhausted - a fail-fast signal that a test
// created more documents than it declared.
func NewFixedIDs(ids ...string) *FixedIDs {
	return &FixedIDs{ids: ids}
}

// NewID returns the next predetermined id.
func (f *FixedIDs) NewID() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.idx >= len(f.ids) {
		panic("document: FixedIDs exhausted")
	}
	id := f.ids[f.idx]
	f.idx++
	return id
}
