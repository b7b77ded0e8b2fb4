// Package trace implements the transition store: per-signal append-only
// histories of (timestamp, value) changes, frozen into an immutable Trace
// that answers point, range and nearest-edge queries by binary search.
//
// The lifecycle is strictly build-then-publish. A Builder is mutable and
// confined to the ingesting goroutine; Build freezes it into a Trace that is
// never mutated again and is therefore safe for any number of concurrent
// readers without locking. Queries perform no I/O and take no locks.
package trace

import (
	"iter"
	"sort"

	"github.com/evholm/wavescope/logic"
	"github.com/evholm/wavescope/sigindex"
)

// Transition is one recorded value change.
type Transition struct {
	Time  uint64
	Value logic.Value
}

// Trace is one complete, immutable waveform dataset: the signal hierarchy
// plus every signal's transition history.
type Trace struct {
	hier      *sigindex.Hierarchy
	series    []*series
	timescale Timescale
	endTime   uint64
}

// Hierarchy returns the signal index of this trace.
func (t *Trace) Hierarchy() *sigindex.Hierarchy {
	return t.hier
}

// Timescale returns the physical meaning of one trace time unit.
func (t *Trace) Timescale() Timescale {
	return t.timescale
}

// EndTime returns the largest transition timestamp in the trace, 0 for an
// empty trace.
func (t *Trace) EndTime() uint64 {
	return t.endTime
}

// TransitionCount returns the number of stored transitions for a signal,
// 0 for an unknown handle.
func (t *Trace) TransitionCount(h sigindex.Handle) int {
	if s := t.lookup(h); s != nil {
		return s.len()
	}

	return 0
}

// ValueAt returns the value active at time tm: the value of the greatest
// transition with timestamp ≤ tm.
//
// ok is false before the first transition of the signal and for an unknown
// handle. That is the explicit "undefined" sentinel, distinct from any
// stored value.
func (t *Trace) ValueAt(h sigindex.Handle, tm uint64) (logic.Value, bool) {
	s := t.lookup(h)
	if s == nil {
		return logic.Value{}, false
	}

	i := sort.Search(len(s.times), func(i int) bool { return s.times[i] > tm }) - 1
	if i < 0 {
		return logic.Value{}, false
	}

	return s.value(i), true
}

// TransitionsIn returns a lazy iterator over the transitions with lo ≤
// timestamp < hi, in ascending time order. The sequence is restartable:
// ranging over it again replays the same transitions.
//
// Only the requested window is touched; nothing is materialized, so
// rendering a narrow viewport of a very large signal stays cheap.
func (t *Trace) TransitionsIn(h sigindex.Handle, lo, hi uint64) iter.Seq2[uint64, logic.Value] {
	s := t.lookup(h)
	if s == nil {
		return func(yield func(uint64, logic.Value) bool) {}
	}

	return func(yield func(uint64, logic.Value) bool) {
		start := sort.Search(len(s.times), func(i int) bool { return s.times[i] >= lo })
		for i := start; i < len(s.times) && s.times[i] < hi; i++ {
			if !yield(s.times[i], s.value(i)) {
				return
			}
		}
	}
}

// NextTransition returns the nearest transition strictly after tm.
// ok is false when tm is at or past the last transition.
func (t *Trace) NextTransition(h sigindex.Handle, tm uint64) (Transition, bool) {
	s := t.lookup(h)
	if s == nil {
		return Transition{}, false
	}

	i := sort.Search(len(s.times), func(i int) bool { return s.times[i] > tm })
	if i >= len(s.times) {
		return Transition{}, false
	}

	return Transition{Time: s.times[i], Value: s.value(i)}, true
}

// PrevTransition returns the nearest transition strictly before tm.
// ok is false when tm is at or before the first transition.
func (t *Trace) PrevTransition(h sigindex.Handle, tm uint64) (Transition, bool) {
	s := t.lookup(h)
	if s == nil {
		return Transition{}, false
	}

	i := sort.Search(len(s.times), func(i int) bool { return s.times[i] >= tm }) - 1
	if i < 0 {
		return Transition{}, false
	}

	return Transition{Time: s.times[i], Value: s.value(i)}, true
}

func (t *Trace) lookup(h sigindex.Handle) *series {
	if h < 0 || int(h) >= len(t.series) {
		return nil
	}

	return t.series[h]
}
