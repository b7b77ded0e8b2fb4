package translate

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/BurntSushi/toml"

	"github.com/evholm/wavescope/errs"
	"github.com/evholm/wavescope/logic"
)

// EnumEntry maps one bit pattern to a label. Patterns are most significant
// bit first using the characters 0 1 x z and '-' (don't care); a '-'
// position matches any input bit, while 0/1/x/z positions require that exact
// state.
type EnumEntry struct {
	Pattern string
	Label   string
}

// EnumTable is an ordered list of pattern→label mappings for one signal
// width. First matching entry wins; an input matching no entry falls back to
// its raw binary form with a no-match marker. Tables are immutable after
// construction and safe for concurrent use.
type EnumTable struct {
	Name    string
	Width   int
	entries []EnumEntry
}

// NewEnumTable builds a table from entries. Every pattern must be exactly
// width characters of 0 1 x z or '-'.
func NewEnumTable(name string, width int, entries []EnumEntry) (*EnumTable, error) {
	if width < 1 {
		return nil, fmt.Errorf("%w: enum table %q width %d", errs.ErrInvalidWidth, name, width)
	}
	for _, e := range entries {
		if len(e.Pattern) != width {
			return nil, fmt.Errorf("%w: enum table %q pattern %q is not %d bits",
				errs.ErrFormatMismatch, name, e.Pattern, width)
		}
		for _, r := range e.Pattern {
			if _, ok := logic.BitFromRune(r); !ok && r != '-' {
				return nil, fmt.Errorf("%w: enum table %q pattern %q has bad character %q",
					errs.ErrFormatMismatch, name, e.Pattern, r)
			}
		}
	}

	return &EnumTable{Name: name, Width: width, entries: entries}, nil
}

// Decode matches the vector against the table.
func (t *EnumTable) Decode(vec logic.Vector) DisplayValue {
	if vec.Width() != t.Width {
		return DisplayValue{Text: vec.String(), Kind: KindWarn}
	}

	for _, e := range t.entries {
		if t.matches(e.Pattern, vec) {
			return DisplayValue{Text: e.Label, Kind: KindNormal}
		}
	}

	kind := KindNoMatch
	text := vec.String()
	if vec.HasUnknown() {
		// Keep the undefined marker visible even through the fallback.
		text = "· " + text
	}

	return DisplayValue{Text: text, Kind: kind}
}

func (t *EnumTable) matches(pattern string, vec logic.Vector) bool {
	for i := 0; i < t.Width; i++ {
		pc := pattern[t.Width-1-i]
		if pc == '-' {
			continue
		}
		want, _ := logic.BitFromRune(rune(pc))
		if vec.Bit(i) != want {
			return false
		}
	}

	return true
}

// enumFile is the on-disk TOML shape: one table per top-level key, each a
// map from pattern to label.
//
//	[counter_state]
//	width = 4
//	[counter_state.values]
//	"0000" = "IDLE"
//	"0001" = "BUSY"
//	"1---" = "ERROR"
type enumFile map[string]struct {
	Width  int               `toml:"width"`
	Values map[string]string `toml:"values"`
}

// LoadEnumTables reads enum table definitions from a TOML document. Map
// order inside a TOML table is not significant, so entries are sorted by
// pattern for deterministic first-match behavior; don't-care patterns sort
// after exact ones and therefore act as catch-alls.
func LoadEnumTables(r io.Reader) ([]*EnumTable, error) {
	var file enumFile
	if _, err := toml.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("parse enum tables: %w", err)
	}

	names := make([]string, 0, len(file))
	for name := range file {
		names = append(names, name)
	}
	sort.Strings(names)

	tables := make([]*EnumTable, 0, len(file))
	for _, name := range names {
		def := file[name]
		entries := make([]EnumEntry, 0, len(def.Values))
		for pattern, label := range def.Values {
			entries = append(entries, EnumEntry{Pattern: pattern, Label: label})
		}
		sort.Slice(entries, func(i, j int) bool {
			ei, ej := exactness(entries[i].Pattern), exactness(entries[j].Pattern)
			if ei != ej {
				return ei > ej
			}

			return entries[i].Pattern < entries[j].Pattern
		})

		table, err := NewEnumTable(name, def.Width, entries)
		if err != nil {
			return nil, err
		}
		tables = append(tables, table)
	}

	return tables, nil
}

// LoadEnumTableFile reads enum tables from a TOML file on disk.
func LoadEnumTableFile(path string) ([]*EnumTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open enum table file: %w", err)
	}
	defer f.Close()

	return LoadEnumTables(f)
}

// exactness counts non-don't-care positions, so fully exact patterns match
// before wildcarded ones.
func exactness(pattern string) int {
	n := 0
	for i := 0; i < len(pattern); i++ {
		if pattern[i] != '-' {
			n++
		}
	}

	return n
}
