package session

import "github.com/evholm/wavescope/translate"

// SavedSignal is the serializable identity of one display row: the signal's
// full path plus the chosen translator. Handles are trace-local and are
// re-resolved on restore.
type SavedSignal struct {
	Path   string `json:"path" toml:"path"`
	Format string `json:"format" toml:"format"`
}

// Snapshot captures the displayed signal list for external persistence. The
// core does not define the container format; the caller serializes the
// returned slice however it likes.
func (s *Session) Snapshot() []SavedSignal {
	out := make([]SavedSignal, len(s.signals))
	for i, item := range s.signals {
		out[i] = SavedSignal{Path: item.Path, Format: formatName(item.Format)}
	}

	return out
}

// Restore re-adds saved signals against the current trace. Paths that no
// longer resolve are skipped and returned so the caller can warn about them;
// a saved format that no longer parses falls back to the default.
func (s *Session) Restore(saved []SavedSignal) (missing []string) {
	if s.tr == nil {
		for _, sv := range saved {
			missing = append(missing, sv.Path)
		}

		return missing
	}

	hier := s.tr.Hierarchy()
	for _, sv := range saved {
		hd, err := hier.Resolve(sv.Path)
		if err != nil {
			missing = append(missing, sv.Path)

			continue
		}
		sig, err := hier.Signal(hd)
		if err != nil {
			missing = append(missing, sv.Path)

			continue
		}

		f, ok := formatNames[sv.Format]
		if !ok {
			f = translate.DefaultFormat(sig.Kind, sig.Width)
		}
		// Appended directly; restoring a session is not an undoable user
		// action.
		s.signals = append(s.signals, DisplayedSignal{Path: sig.Path, Handle: hd, Format: f})
	}

	return missing
}

func formatName(f translate.Format) string {
	for name, v := range formatNames {
		if v == f {
			return name
		}
	}

	return "binary"
}
