// Package session is the interaction layer on top of the core: viewport and
// cursor state, the displayed signal list with per-signal translator
// choices, an undoable action log, and a fuzzy-searchable command palette.
//
// The session only ever reads from the trace core (queries and index
// lookups); it never mutates trace data. All session state is owned by a
// single goroutine, the interactive loop.
package session

import (
	"fmt"

	"github.com/evholm/wavescope/errs"
	"github.com/evholm/wavescope/sigindex"
	"github.com/evholm/wavescope/trace"
	"github.com/evholm/wavescope/translate"
)

// DisplayedSignal is one row of the wave view: a signal plus its chosen
// display format.
type DisplayedSignal struct {
	Path   string
	Handle sigindex.Handle
	Format translate.Format
}

// Session holds all interactive state for one loaded trace.
type Session struct {
	tr       *trace.Trace
	viewport Viewport
	cursor   uint64
	signals  []DisplayedSignal

	log      []action
	logIndex int // number of applied actions; undo moves it left

	commands []Command
}

// New creates a session with the standard command registry and no trace.
func New() *Session {
	s := &Session{}
	s.commands = builtinCommands()

	return s
}

// SetTrace points the session at a newly published trace and resets all
// per-trace state: viewport to full range, cursor to zero, displayed list
// and undo log cleared. Stale handles from the previous trace never survive.
func (s *Session) SetTrace(tr *trace.Trace) {
	s.tr = tr
	s.signals = nil
	s.cursor = 0
	s.log = nil
	s.logIndex = 0
	if tr != nil {
		s.viewport = Viewport{Left: 0, Right: float64(tr.EndTime())}
		if s.viewport.Right <= 0 {
			s.viewport.Right = 1
		}
	}
}

// Trace returns the trace the session is attached to, nil when none.
func (s *Session) Trace() *trace.Trace {
	return s.tr
}

// Viewport returns the current visible range.
func (s *Session) Viewport() Viewport {
	return s.viewport
}

// Cursor returns the cursor timestamp.
func (s *Session) Cursor() uint64 {
	return s.cursor
}

// Signals returns the displayed signal list in display order. The slice is
// shared; treat as read-only.
func (s *Session) Signals() []DisplayedSignal {
	return s.signals
}

// AddSignal resolves a path and appends it to the display with its default
// format.
func (s *Session) AddSignal(path string) error {
	if s.tr == nil {
		return fmt.Errorf("%w: no trace loaded", errs.ErrNotFound)
	}
	hd, err := s.tr.Hierarchy().Resolve(path)
	if err != nil {
		return err
	}
	sig, err := s.tr.Hierarchy().Signal(hd)
	if err != nil {
		return err
	}

	s.apply(&addSignalAction{item: DisplayedSignal{
		Path:   sig.Path,
		Handle: hd,
		Format: translate.DefaultFormat(sig.Kind, sig.Width),
	}})

	return nil
}

// RemoveSignal removes the displayed row at index.
func (s *Session) RemoveSignal(index int) error {
	if index < 0 || index >= len(s.signals) {
		return fmt.Errorf("%w: display row %d", errs.ErrNotFound, index)
	}
	s.apply(&removeSignalAction{index: index, item: s.signals[index]})

	return nil
}

// SetFormat changes the translator for the displayed row at index. A format
// that does not fit the signal's shape is still accepted, with decoding
// falling back to a warning, but the mismatch is reported to the caller.
func (s *Session) SetFormat(index int, f translate.Format) error {
	if index < 0 || index >= len(s.signals) {
		return fmt.Errorf("%w: display row %d", errs.ErrNotFound, index)
	}
	s.apply(&formatAction{index: index, from: s.signals[index].Format, to: f})

	if s.tr != nil {
		if sig, err := s.tr.Hierarchy().Signal(s.signals[index].Handle); err == nil {
			return translate.New(f).Check(sig)
		}
	}

	return nil
}

// SetCursor moves the cursor.
func (s *Session) SetCursor(t uint64) {
	s.apply(&cursorAction{from: s.cursor, to: t})
}

// CursorNextEdge jumps the cursor to the next transition of the displayed
// row at index, if any.
func (s *Session) CursorNextEdge(index int) error {
	if s.tr == nil || index < 0 || index >= len(s.signals) {
		return fmt.Errorf("%w: display row %d", errs.ErrNotFound, index)
	}
	tr, ok := s.tr.NextTransition(s.signals[index].Handle, s.cursor)
	if !ok {
		return nil // already at the last edge
	}
	s.SetCursor(tr.Time)

	return nil
}

// CursorPrevEdge jumps the cursor to the previous transition of the
// displayed row at index, if any.
func (s *Session) CursorPrevEdge(index int) error {
	if s.tr == nil || index < 0 || index >= len(s.signals) {
		return fmt.Errorf("%w: display row %d", errs.ErrNotFound, index)
	}
	tr, ok := s.tr.PrevTransition(s.signals[index].Handle, s.cursor)
	if !ok {
		return nil
	}
	s.SetCursor(tr.Time)

	return nil
}

// Zoom scales the viewport by factor about a trace time and clips the
// result to the trace extent.
func (s *Session) Zoom(about, factor float64) {
	next := s.viewport.Zoomed(about, factor).ClipTo(s.fullRange())
	s.apply(&viewportAction{from: s.viewport, to: next})
}

// Pan shifts the viewport and clips it to the trace extent.
func (s *Session) Pan(delta float64) {
	next := s.viewport.Panned(delta).ClipTo(s.fullRange())
	s.apply(&viewportAction{from: s.viewport, to: next})
}

// ZoomToFit resets the viewport to the whole trace.
func (s *Session) ZoomToFit() {
	s.apply(&viewportAction{from: s.viewport, to: s.fullRange()})
}

// GoToStart pans to the beginning of the trace keeping the zoom level.
func (s *Session) GoToStart() {
	span := s.viewport.Span()
	next := Viewport{Left: 0, Right: span}.ClipTo(s.fullRange())
	s.apply(&viewportAction{from: s.viewport, to: next})
}

// GoToEnd pans to the end of the trace keeping the zoom level.
func (s *Session) GoToEnd() {
	end := s.fullRange().Right
	span := s.viewport.Span()
	next := Viewport{Left: end - span, Right: end}.ClipTo(s.fullRange())
	s.apply(&viewportAction{from: s.viewport, to: next})
}

// DecodeAt decodes the displayed row at index at the cursor position. ok is
// false before the signal's first transition (the undefined region).
func (s *Session) DecodeAt(index int) (translate.DisplayValue, bool) {
	if s.tr == nil || index < 0 || index >= len(s.signals) {
		return translate.DisplayValue{}, false
	}
	item := s.signals[index]
	val, ok := s.tr.ValueAt(item.Handle, s.cursor)
	if !ok {
		return translate.DisplayValue{}, false
	}
	sig, err := s.tr.Hierarchy().Signal(item.Handle)
	if err != nil {
		return translate.DisplayValue{}, false
	}

	return translate.New(item.Format).Decode(val, sig.Width), true
}

func (s *Session) fullRange() Viewport {
	if s.tr == nil {
		return Viewport{Left: 0, Right: 1}
	}
	end := float64(s.tr.EndTime())
	if end <= 0 {
		end = 1
	}

	return Viewport{Left: 0, Right: end}
}
