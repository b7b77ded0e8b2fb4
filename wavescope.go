// Package wavescope provides an embeddable inspection engine for digital
// waveform captures: sparse four-state transition storage, hierarchical
// signal lookup, time-travel queries and human-readable value translation.
//
// Traces are built once and then immutable. A capture parser feeds a
// trace.Builder with scope declarations and temporally ordered transitions;
// Build seals the result into a trace.Trace whose queries (value at a time,
// transitions in a window, nearest edge) are lock-free binary searches over
// columnar storage.
//
// # Basic Usage
//
// Building a trace and querying it:
//
//	import "github.com/evholm/wavescope"
//
//	b := wavescope.NewBuilder()
//	b.EnterScope("top")
//	clk, _ := b.DeclareSignal("clk", 1, wavescope.KindWire)
//	b.LeaveScope()
//
//	b.Append(clk, 0, wavescope.MustParseValue("0"))
//	b.Append(clk, 5, wavescope.MustParseValue("1"))
//	tr, _ := b.Build()
//
//	v, ok := tr.ValueAt(clk, 7) // value of top.clk at time 7
//
// Formatting values for display:
//
//	t := wavescope.NewTranslator(wavescope.FormatHexadecimal)
//	dv := t.Decode(v, 4)
//	fmt.Println(dv.Text) // "0x7"
//
// # Package Structure
//
// This package re-exports the types needed for the common build-and-query
// flow. The subpackages carry the full surface:
//
//   - logic: four-state bits, packed vectors and tagged values
//   - trace: the transition store, builder and time queries
//   - sigindex: the scope tree, path resolution and fuzzy search
//   - translate: value formatting (radices, floats, posits, enums)
//   - ingest: trace loading with progress reporting and cancellation
//   - snapshot: binary trace cache for fast reloads
//   - session: displayed signals, viewport, cursor, commands, undo
//   - watch: capture file change notification for live reload
package wavescope

import (
	"github.com/evholm/wavescope/logic"
	"github.com/evholm/wavescope/sigindex"
	"github.com/evholm/wavescope/trace"
	"github.com/evholm/wavescope/translate"
)

// Re-exported kinds for signal declaration.
const (
	KindWire    = sigindex.KindWire
	KindReg     = sigindex.KindReg
	KindInteger = sigindex.KindInteger
	KindReal    = sigindex.KindReal
	KindString  = sigindex.KindString
	KindEnum    = sigindex.KindEnum
)

// Re-exported display formats for NewTranslator.
const (
	FormatBinary          = translate.FormatBinary
	FormatUnsignedDecimal = translate.FormatUnsignedDecimal
	FormatSignedDecimal   = translate.FormatSignedDecimal
	FormatHexadecimal     = translate.FormatHexadecimal
	FormatOctal           = translate.FormatOctal
)

// NewBuilder creates an empty trace builder positioned at the root scope.
func NewBuilder() *trace.Builder {
	return trace.NewBuilder()
}

// NewTranslator creates a value translator for a fixed display format.
func NewTranslator(f translate.Format) translate.Translator {
	return translate.New(f)
}

// ParseValue parses a most-significant-bit-first string of 0 1 x z
// characters into a vector value whose width is the string length.
func ParseValue(s string) (logic.Value, error) {
	v, err := logic.ParseVector(s)
	if err != nil {
		return logic.Value{}, err
	}

	return logic.VectorValue(v), nil
}

// MustParseValue is ParseValue for literals known to be well-formed. It
// panics on malformed input.
func MustParseValue(s string) logic.Value {
	v, err := ParseValue(s)
	if err != nil {
		panic(err)
	}

	return v
}
