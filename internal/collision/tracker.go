// Package collision tracks xxHash64 signal-path hashes during hierarchy
// construction, so that the hash-keyed resolve map can fall back to an exact
// path map when two distinct paths ever share a hash.
package collision

import (
	"github.com/evholm/wavescope/errs"
)

// Tracker records path hashes seen so far. It distinguishes a true duplicate
// path (an ingestion error) from a hash collision between distinct paths
// (handled by falling back to exact-path lookup).
type Tracker struct {
	paths        map[uint64]string
	hasCollision bool
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{paths: make(map[uint64]string)}
}

// Track records a path with its hash.
//
// Returns errs.ErrDuplicateSignal if the exact same path was tracked before.
// A different path mapping to the same hash is not an error; it sets the
// collision flag instead.
func (t *Tracker) Track(path string, hash uint64) error {
	if existing, ok := t.paths[hash]; ok {
		if existing == path {
			return errs.ErrDuplicateSignal
		}
		t.hasCollision = true

		return nil
	}

	t.paths[hash] = path

	return nil
}

// HasCollision reports whether any two distinct paths shared a hash.
func (t *Tracker) HasCollision() bool {
	return t.hasCollision
}

// Count returns the number of distinct hashes tracked.
func (t *Tracker) Count() int {
	return len(t.paths)
}
