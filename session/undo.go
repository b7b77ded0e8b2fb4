package session

import (
	"slices"

	"github.com/evholm/wavescope/translate"
)

// action is one undoable state delta. Actions capture both directions so
// the log can replay either way; they touch viewport/display state only,
// never trace data.
type action interface {
	do(*Session)
	undo(*Session)
}

// apply performs an action and appends it to the log, truncating any redo
// tail beyond the current position.
func (s *Session) apply(a action) {
	a.do(s)
	s.log = append(s.log[:s.logIndex], a)
	s.logIndex = len(s.log)
}

// Undo reverts the most recent action. Returns false when there is nothing
// to undo.
func (s *Session) Undo() bool {
	if s.logIndex == 0 {
		return false
	}
	s.logIndex--
	s.log[s.logIndex].undo(s)

	return true
}

// Redo re-applies the most recently undone action. Returns false when there
// is nothing to redo.
func (s *Session) Redo() bool {
	if s.logIndex >= len(s.log) {
		return false
	}
	s.log[s.logIndex].do(s)
	s.logIndex++

	return true
}

type cursorAction struct{ from, to uint64 }

func (a *cursorAction) do(s *Session)   { s.cursor = a.to }
func (a *cursorAction) undo(s *Session) { s.cursor = a.from }

type viewportAction struct{ from, to Viewport }

func (a *viewportAction) do(s *Session)   { s.viewport = a.to }
func (a *viewportAction) undo(s *Session) { s.viewport = a.from }

type addSignalAction struct{ item DisplayedSignal }

func (a *addSignalAction) do(s *Session) { s.signals = append(s.signals, a.item) }
func (a *addSignalAction) undo(s *Session) {
	s.signals = s.signals[:len(s.signals)-1]
}

type removeSignalAction struct {
	item  DisplayedSignal
	index int
}

func (a *removeSignalAction) do(s *Session) {
	s.signals = slices.Delete(slices.Clone(s.signals), a.index, a.index+1)
}

func (a *removeSignalAction) undo(s *Session) {
	s.signals = slices.Insert(slices.Clone(s.signals), a.index, a.item)
}

type formatAction struct {
	index    int
	from, to translate.Format
}

func (a *formatAction) do(s *Session)   { s.signals[a.index].Format = a.to }
func (a *formatAction) undo(s *Session) { s.signals[a.index].Format = a.from }
