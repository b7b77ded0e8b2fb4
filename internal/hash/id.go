package hash

import "github.com/cespare/xxhash/v2"

// PathID computes the xxHash64 of a full hierarchical signal path.
func PathID(path string) uint64 {
	return xxhash.Sum64String(path)
}
