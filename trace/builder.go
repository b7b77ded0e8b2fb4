package trace

import (
	"fmt"

	"github.com/evholm/wavescope/errs"
	"github.com/evholm/wavescope/logic"
	"github.com/evholm/wavescope/sigindex"
)

// Builder is the single ingestion-side entry point of the core: an external
// parser declares the hierarchy, streams transitions through Append, and
// calls Build to freeze everything into an immutable Trace.
//
// A Builder is not safe for concurrent use; run it on one goroutine (the
// ingest package does this). Nothing a Builder holds is visible to readers
// until Build returns, so a cancelled or failed load is discarded by simply
// dropping the Builder.
type Builder struct {
	hier      *sigindex.Builder
	series    []*series
	signals   []sigindex.Signal
	timescale Timescale
	done      bool
}

// NewBuilder creates an empty trace builder.
func NewBuilder() *Builder {
	return &Builder{
		hier:      sigindex.NewBuilder(),
		timescale: DefaultTimescale,
	}
}

// SetTimescale records the physical meaning of one trace time unit.
func (b *Builder) SetTimescale(ts Timescale) {
	b.timescale = ts
}

// EnterScope opens a child scope for subsequent declarations.
func (b *Builder) EnterScope(name string) sigindex.ScopeID {
	return b.hier.EnterScope(name)
}

// LeaveScope closes the current scope.
func (b *Builder) LeaveScope() error {
	return b.hier.LeaveScope()
}

// DeclareSignal adds a signal to the current scope and returns the handle
// used for appending transitions and for all later queries.
func (b *Builder) DeclareSignal(name string, width int, kind sigindex.SignalKind) (sigindex.Handle, error) {
	if b.done {
		return -1, errs.ErrBuilderFinished
	}

	hd, err := b.hier.AddSignal(name, width, kind)
	if err != nil {
		return -1, err
	}
	b.series = append(b.series, newSeries(width, kind))
	b.signals = append(b.signals, sigindex.Signal{Name: name, Handle: hd, Width: width, Kind: kind})

	return hd, nil
}

// Append records a value change for a signal.
//
// Timestamps per signal must be monotonically non-decreasing; an older
// timestamp fails with errs.ErrOutOfOrderTimestamp so a corrupt source can
// never produce an unsearchable store. A transition at the same timestamp as
// the previous one overwrites it (simultaneous multi-driver resolution,
// last write wins). The value must match the signal's declared kind and,
// for vector kinds, its exact declared width.
func (b *Builder) Append(h sigindex.Handle, ts uint64, v logic.Value) error {
	if b.done {
		return errs.ErrBuilderFinished
	}
	if h < 0 || int(h) >= len(b.series) {
		return fmt.Errorf("%w: signal handle %d", errs.ErrNotFound, h)
	}

	s := b.series[h]
	if err := b.checkValue(h, s, v); err != nil {
		return err
	}
	if last, ok := s.lastTime(); ok && ts < last {
		return fmt.Errorf("%w: signal %q timestamp %d after %d",
			errs.ErrOutOfOrderTimestamp, b.signals[h].Name, ts, last)
	}

	s.append(ts, v)

	return nil
}

func (b *Builder) checkValue(h sigindex.Handle, s *series, v logic.Value) error {
	name := b.signals[h].Name
	switch s.kind {
	case sigindex.KindReal:
		if v.Tag() != logic.TagReal {
			return fmt.Errorf("%w: signal %q expects real", errs.ErrKindMismatch, name)
		}
	case sigindex.KindInteger:
		if v.Tag() != logic.TagInt {
			return fmt.Errorf("%w: signal %q expects integer", errs.ErrKindMismatch, name)
		}
	case sigindex.KindString:
		if v.Tag() != logic.TagString {
			return fmt.Errorf("%w: signal %q expects string", errs.ErrKindMismatch, name)
		}
	default:
		vec, ok := v.Vector()
		if !ok {
			return fmt.Errorf("%w: signal %q expects bit-vector", errs.ErrKindMismatch, name)
		}
		if vec.Width() != s.width {
			return fmt.Errorf("%w: signal %q declared %d bits, got %d",
				errs.ErrWidthMismatch, name, s.width, vec.Width())
		}
	}

	return nil
}

// Build freezes all appended data into an immutable Trace. The builder must
// not be used afterwards.
func (b *Builder) Build() (*Trace, error) {
	if b.done {
		return nil, errs.ErrBuilderFinished
	}
	b.done = true

	hier, err := b.hier.Build()
	if err != nil {
		return nil, err
	}

	var end uint64
	for _, s := range b.series {
		if last, ok := s.lastTime(); ok && last > end {
			end = last
		}
	}

	return &Trace{
		hier:      hier,
		series:    b.series,
		timescale: b.timescale,
		endTime:   end,
	}, nil
}
