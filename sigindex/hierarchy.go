// Package sigindex implements the hierarchical signal namespace of a trace:
// scope tree navigation, path-to-handle resolution and fuzzy search.
//
// The hierarchy is an arena of scope nodes addressed by integer index.
// Parent links are plain indices, children own nothing back, and all child
// ordering is the declaration order received at ingestion. Once built, a
// Hierarchy is immutable and safe for concurrent readers without locking.
package sigindex

import (
	"fmt"
	"strings"

	"github.com/evholm/wavescope/errs"
	"github.com/evholm/wavescope/internal/hash"
)

// Handle identifies a signal within one trace. Handles are dense indices
// assigned in declaration order; they are only meaningful for the trace that
// issued them.
type Handle int32

// ScopeID identifies a scope node in the arena. The root scope is always 0.
type ScopeID int32

// RootScope is the implicit top-level scope containing the whole design.
const RootScope ScopeID = 0

// SignalKind is the declared kind of a signal.
type SignalKind uint8

const (
	KindWire SignalKind = iota
	KindReg
	KindInteger
	KindReal
	KindString
	KindEnum
)

func (k SignalKind) String() string {
	switch k {
	case KindWire:
		return "wire"
	case KindReg:
		return "reg"
	case KindInteger:
		return "integer"
	case KindReal:
		return "real"
	case KindString:
		return "string"
	case KindEnum:
		return "enum"
	default:
		return "unknown"
	}
}

// Signal is the immutable identity of one signal: its place in the
// hierarchy, declared width and kind.
type Signal struct {
	Name   string // leaf name within the parent scope
	Path   string // full dot-separated path, unique per trace
	Handle Handle
	Scope  ScopeID // parent scope
	Width  int
	Kind   SignalKind
}

// Scope is one node of the scope tree.
type Scope struct {
	Name   string
	ID     ScopeID
	Parent ScopeID // parent index; RootScope's parent is itself
	depth  int
}

// Child is one entry of a scope's ordered child list: either a sub-scope or
// a leaf signal.
type Child struct {
	Name     string
	Scope    ScopeID // valid when IsSignal is false
	Signal   Handle  // valid when IsSignal is true
	IsSignal bool
}

type childRef struct {
	scope    ScopeID
	signal   Handle
	isSignal bool
}

// Hierarchy is the published, read-only signal index of a trace.
type Hierarchy struct {
	scopes   []Scope
	children [][]childRef // per scope, declaration order
	signals  []Signal     // indexed by Handle
	paths    []string     // full path per Handle, for search

	byHash       map[uint64]Handle
	byPath       map[string]Handle // populated only when hashes collided
	hasCollision bool
}

// SignalCount returns the number of signals in the hierarchy.
func (h *Hierarchy) SignalCount() int {
	return len(h.signals)
}

// ScopeCount returns the number of scope nodes, including the root.
func (h *Hierarchy) ScopeCount() int {
	return len(h.scopes)
}

// Signal returns the metadata for a handle.
func (h *Hierarchy) Signal(hd Handle) (Signal, error) {
	if hd < 0 || int(hd) >= len(h.signals) {
		return Signal{}, fmt.Errorf("%w: signal handle %d", errs.ErrNotFound, hd)
	}

	return h.signals[hd], nil
}

// Scope returns the scope node for an ID.
func (h *Hierarchy) Scope(id ScopeID) (Scope, error) {
	if id < 0 || int(id) >= len(h.scopes) {
		return Scope{}, fmt.Errorf("%w: scope %d", errs.ErrNotFound, id)
	}

	return h.scopes[id], nil
}

// ScopePath returns the full dot-separated path of a scope. The root scope
// has an empty path.
func (h *Hierarchy) ScopePath(id ScopeID) string {
	if id <= RootScope || int(id) >= len(h.scopes) {
		return ""
	}

	var parts []string
	for id != RootScope {
		parts = append(parts, h.scopes[id].Name)
		id = h.scopes[id].Parent
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}

	return strings.Join(parts, ".")
}

// Resolve maps a full dot-separated signal path to its handle.
//
// Lookup is O(1) through the path-hash map; if any two paths in this trace
// happened to share a hash, resolution transparently switches to the exact
// path map instead.
func (h *Hierarchy) Resolve(path string) (Handle, error) {
	if h.hasCollision {
		if hd, ok := h.byPath[path]; ok {
			return hd, nil
		}

		return -1, fmt.Errorf("%w: signal %q", errs.ErrNotFound, path)
	}

	hd, ok := h.byHash[hash.PathID(path)]
	if !ok {
		return -1, fmt.Errorf("%w: signal %q", errs.ErrNotFound, path)
	}

	return hd, nil
}

// Children returns the immediate children of a scope in declaration order,
// or in numeric-aware name order when natural is set.
func (h *Hierarchy) Children(id ScopeID, natural bool) ([]Child, error) {
	if id < 0 || int(id) >= len(h.scopes) {
		return nil, fmt.Errorf("%w: scope %d", errs.ErrNotFound, id)
	}

	refs := h.children[id]
	out := make([]Child, len(refs))
	for i, ref := range refs {
		if ref.isSignal {
			out[i] = Child{Name: h.signals[ref.signal].Name, Signal: ref.signal, IsSignal: true}
		} else {
			out[i] = Child{Name: h.scopes[ref.scope].Name, Scope: ref.scope}
		}
	}
	if natural {
		sortNatural(out)
	}

	return out, nil
}

// Paths returns the full path of every signal, indexed by handle. The slice
// is shared; treat as read-only.
func (h *Hierarchy) Paths() []string {
	return h.paths
}
