package sigindex

import (
	"fmt"

	"github.com/evholm/wavescope/errs"
	"github.com/evholm/wavescope/internal/collision"
	"github.com/evholm/wavescope/internal/hash"
)

// Builder assembles a Hierarchy during ingestion. It is single-goroutine
// only; the Hierarchy it produces is immutable and freely shareable.
//
// Scopes are entered and left like a stack, mirroring how declaration
// sections of trace formats are nested:
//
//	b := sigindex.NewBuilder()
//	b.EnterScope("top")
//	clk, _ := b.AddSignal("clk", 1, sigindex.KindWire)
//	b.EnterScope("core")
//	...
//	b.LeaveScope()
//	b.LeaveScope()
//	h, _ := b.Build()
type Builder struct {
	h       *Hierarchy
	tracker *collision.Tracker
	byPath  map[string]Handle
	stack   []ScopeID
	done    bool
}

// NewBuilder creates a builder with an empty root scope.
func NewBuilder() *Builder {
	h := &Hierarchy{
		scopes:   []Scope{{Name: "", ID: RootScope, Parent: RootScope}},
		children: [][]childRef{nil},
		byHash:   make(map[uint64]Handle),
	}

	return &Builder{
		h:       h,
		tracker: collision.NewTracker(),
		byPath:  make(map[string]Handle),
		stack:   []ScopeID{RootScope},
	}
}

// EnterScope declares a child scope of the current scope and makes it
// current.
func (b *Builder) EnterScope(name string) ScopeID {
	parent := b.stack[len(b.stack)-1]
	id := ScopeID(len(b.h.scopes))
	b.h.scopes = append(b.h.scopes, Scope{
		Name:   name,
		ID:     id,
		Parent: parent,
		depth:  len(b.stack),
	})
	b.h.children = append(b.h.children, nil)
	b.h.children[parent] = append(b.h.children[parent], childRef{scope: id})
	b.stack = append(b.stack, id)

	return id
}

// LeaveScope returns to the parent of the current scope.
func (b *Builder) LeaveScope() error {
	if len(b.stack) <= 1 {
		return errs.ErrScopeUnderflow
	}
	b.stack = b.stack[:len(b.stack)-1]

	return nil
}

// CurrentScope returns the scope new signals are added to.
func (b *Builder) CurrentScope() ScopeID {
	return b.stack[len(b.stack)-1]
}

// AddSignal declares a signal in the current scope and returns its handle.
//
// Width must be at least 1 for vector kinds; real and string kinds carry no
// meaningful width and may pass 1. A duplicate full path is an ingestion
// error.
func (b *Builder) AddSignal(name string, width int, kind SignalKind) (Handle, error) {
	if b.done {
		return -1, errs.ErrBuilderFinished
	}
	if width < 1 {
		return -1, fmt.Errorf("%w: signal %q width %d", errs.ErrInvalidWidth, name, width)
	}

	scope := b.stack[len(b.stack)-1]
	path := name
	if sp := b.h.ScopePath(scope); sp != "" {
		path = sp + "." + name
	}
	if _, dup := b.byPath[path]; dup {
		return -1, fmt.Errorf("%w: %q", errs.ErrDuplicateSignal, path)
	}

	hd := Handle(len(b.h.signals))
	b.h.signals = append(b.h.signals, Signal{
		Name:   name,
		Path:   path,
		Handle: hd,
		Scope:  scope,
		Width:  width,
		Kind:   kind,
	})
	b.h.paths = append(b.h.paths, path)
	b.h.children[scope] = append(b.h.children[scope], childRef{signal: hd, isSignal: true})

	id := hash.PathID(path)
	if err := b.tracker.Track(path, id); err != nil {
		return -1, fmt.Errorf("%w: %q", err, path)
	}
	b.byPath[path] = hd
	b.h.byHash[id] = hd

	return hd, nil
}

// Build freezes the hierarchy. The builder must not be used afterwards.
func (b *Builder) Build() (*Hierarchy, error) {
	if b.done {
		return nil, errs.ErrBuilderFinished
	}
	b.done = true

	if b.tracker.HasCollision() {
		// Hash lookups are ambiguous for this trace; keep the exact path
		// map alive and resolve through it instead.
		b.h.hasCollision = true
		b.h.byPath = b.byPath
		b.h.byHash = nil
	}

	return b.h, nil
}
