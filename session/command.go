package session

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/sahilm/fuzzy"

	"github.com/evholm/wavescope/errs"
	"github.com/evholm/wavescope/translate"
)

// Command is one entry of the static command registry.
type Command struct {
	Name string
	Help string
	// Exec runs the command with its (possibly empty) argument string.
	Exec func(s *Session, arg string) error
}

// CommandMatch is one ranked palette suggestion.
type CommandMatch struct {
	Name      string
	Help      string
	Score     int
	Positions []int // matched character offsets in Name, for highlighting
}

// MatchCommands fuzzy-matches input against the registry and returns ranked
// suggestions, best first. Ties are broken by registry order, so results are
// deterministic.
func (s *Session) MatchCommands(input string) []CommandMatch {
	if input == "" {
		out := make([]CommandMatch, len(s.commands))
		for i, c := range s.commands {
			out[i] = CommandMatch{Name: c.Name, Help: c.Help}
		}

		return out
	}

	names := make([]string, len(s.commands))
	for i, c := range s.commands {
		names[i] = c.Name
	}

	found := fuzzy.Find(input, names)
	out := make([]CommandMatch, 0, len(found))
	for _, m := range found {
		out = append(out, CommandMatch{
			Name:      m.Str,
			Help:      s.commands[m.Index].Help,
			Score:     m.Score,
			Positions: m.MatchedIndexes,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })

	return out
}

// Dispatch executes a palette command. An exact name always executes; a
// fuzzy input executes only when it matches a single command, otherwise the
// ranked candidates are returned for the caller to present and nothing runs.
func (s *Session) Dispatch(input, arg string) ([]CommandMatch, error) {
	for i := range s.commands {
		if s.commands[i].Name == input {
			return nil, s.commands[i].Exec(s, arg)
		}
	}

	matches := s.MatchCommands(input)
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%w: command %q", errs.ErrNotFound, input)
	case 1:
		for i := range s.commands {
			if s.commands[i].Name == matches[0].Name {
				return nil, s.commands[i].Exec(s, arg)
			}
		}
	}

	return matches, nil
}

func builtinCommands() []Command {
	return []Command{
		{Name: "signal_add", Help: "add a signal to the display by full path",
			Exec: func(s *Session, arg string) error { return s.AddSignal(arg) }},
		{Name: "signal_remove", Help: "remove a display row by index",
			Exec: withIndex(func(s *Session, idx int) error { return s.RemoveSignal(idx) })},
		{Name: "signal_set_format", Help: "set the translator of the focused row: <index> <format>",
			Exec: execSetFormat},
		{Name: "cursor_set", Help: "move the cursor to a timestamp",
			Exec: func(s *Session, arg string) error {
				t, err := strconv.ParseUint(arg, 10, 64)
				if err != nil {
					return fmt.Errorf("%w: timestamp %q", errs.ErrUnparsableValue, arg)
				}
				s.SetCursor(t)

				return nil
			}},
		{Name: "cursor_next_edge", Help: "jump the cursor to the next transition of a row",
			Exec: withIndex(func(s *Session, idx int) error { return s.CursorNextEdge(idx) })},
		{Name: "cursor_prev_edge", Help: "jump the cursor to the previous transition of a row",
			Exec: withIndex(func(s *Session, idx int) error { return s.CursorPrevEdge(idx) })},
		{Name: "zoom_in", Help: "zoom in about the cursor",
			Exec: func(s *Session, _ string) error { s.Zoom(float64(s.cursor), 0.5); return nil }},
		{Name: "zoom_out", Help: "zoom out about the cursor",
			Exec: func(s *Session, _ string) error { s.Zoom(float64(s.cursor), 2.0); return nil }},
		{Name: "zoom_fit", Help: "fit the whole trace in the viewport",
			Exec: func(s *Session, _ string) error { s.ZoomToFit(); return nil }},
		{Name: "goto_start", Help: "scroll to the start of the trace",
			Exec: func(s *Session, _ string) error { s.GoToStart(); return nil }},
		{Name: "goto_end", Help: "scroll to the end of the trace",
			Exec: func(s *Session, _ string) error { s.GoToEnd(); return nil }},
		{Name: "undo", Help: "undo the last action",
			Exec: func(s *Session, _ string) error { s.Undo(); return nil }},
		{Name: "redo", Help: "redo the last undone action",
			Exec: func(s *Session, _ string) error { s.Redo(); return nil }},
	}
}

func withIndex(fn func(s *Session, idx int) error) func(*Session, string) error {
	return func(s *Session, arg string) error {
		idx, err := strconv.Atoi(arg)
		if err != nil {
			return fmt.Errorf("%w: row index %q", errs.ErrUnparsableValue, arg)
		}

		return fn(s, idx)
	}
}

var formatNames = map[string]translate.Format{
	"binary":   translate.FormatBinary,
	"unsigned": translate.FormatUnsignedDecimal,
	"signed":   translate.FormatSignedDecimal,
	"hex":      translate.FormatHexadecimal,
	"octal":    translate.FormatOctal,
	"ascii":    translate.FormatASCII,
	"float16":  translate.FormatFloat16,
	"float32":  translate.FormatFloat32,
	"float64":  translate.FormatFloat64,
	"posit8":   translate.FormatPosit8,
	"posit16":  translate.FormatPosit16,
	"posit32":  translate.FormatPosit32,
}

func execSetFormat(s *Session, arg string) error {
	var idx int
	var name string
	if _, err := fmt.Sscanf(arg, "%d %s", &idx, &name); err != nil {
		return fmt.Errorf("%w: expected \"<index> <format>\", got %q", errs.ErrUnparsableValue, arg)
	}
	f, ok := formatNames[name]
	if !ok {
		return fmt.Errorf("%w: format %q", errs.ErrNotFound, name)
	}

	return s.SetFormat(idx, f)
}
