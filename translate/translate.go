// Package translate converts raw signal values into human-readable display
// representations.
//
// The translator set is a closed enumeration of built-in numeric and
// encoding formats plus one open variant, the enum table, which maps exact
// bit patterns (with don't-care positions) to labels. Every translator is a
// pure function of (value, width); translators hold no mutable state and are
// safe to call concurrently for any number of signals.
//
// 4-state inputs never decode silently: a numeric format confronted with X
// or Z bits reports a composite undefined result instead of treating them as
// zero, and grouped bases (binary, octal, hex, ASCII) mark the affected
// digits individually.
package translate

import (
	"fmt"

	"github.com/evholm/wavescope/errs"
	"github.com/evholm/wavescope/logic"
	"github.com/evholm/wavescope/sigindex"
)

// Format selects a built-in translator.
type Format uint8

const (
	FormatBinary Format = iota
	FormatUnsignedDecimal
	FormatSignedDecimal
	FormatHexadecimal
	FormatOctal
	FormatASCII
	FormatFloat16
	FormatFloat32
	FormatFloat64
	FormatPosit8
	FormatPosit16
	FormatPosit32
	FormatEnum
)

func (f Format) String() string {
	switch f {
	case FormatBinary:
		return "Binary"
	case FormatUnsignedDecimal:
		return "Unsigned"
	case FormatSignedDecimal:
		return "Signed"
	case FormatHexadecimal:
		return "Hexadecimal"
	case FormatOctal:
		return "Octal"
	case FormatASCII:
		return "ASCII"
	case FormatFloat16:
		return "Float16"
	case FormatFloat32:
		return "Float32"
	case FormatFloat64:
		return "Float64"
	case FormatPosit8:
		return "Posit8"
	case FormatPosit16:
		return "Posit16"
	case FormatPosit32:
		return "Posit32"
	case FormatEnum:
		return "Enum"
	default:
		return "Unknown"
	}
}

// ValueKind qualifies a decoded result for display styling.
type ValueKind uint8

const (
	// KindNormal is a fully defined, successfully decoded value.
	KindNormal ValueKind = iota
	// KindUndef marks a result affected by X bits.
	KindUndef
	// KindHighImp marks an all-Z value.
	KindHighImp
	// KindNoMatch marks an enum input that matched no table entry; the text
	// falls back to the raw bit pattern.
	KindNoMatch
	// KindWarn marks a fallback rendering after a translator/signal shape
	// mismatch. The text is the raw binary form.
	KindWarn
)

// DisplayValue is the result of decoding one value.
type DisplayValue struct {
	Text string
	Kind ValueKind
}

// Translator decodes raw values in one chosen format. The zero Translator
// decodes as binary. Enum must be set when Fmt is FormatEnum.
type Translator struct {
	Enum *EnumTable
	Fmt  Format
}

// New returns a translator for a built-in format.
func New(f Format) Translator {
	return Translator{Fmt: f}
}

// NewEnum returns a translator backed by an enum table.
func NewEnum(table *EnumTable) Translator {
	return Translator{Fmt: FormatEnum, Enum: table}
}

// DefaultFormat picks the default translator for a signal's declared shape:
// real signals get Float64, 1-bit signals binary, anything else hexadecimal.
func DefaultFormat(kind sigindex.SignalKind, width int) Format {
	switch kind {
	case sigindex.KindReal:
		return FormatFloat64
	case sigindex.KindInteger:
		return FormatSignedDecimal
	default:
		if width == 1 {
			return FormatBinary
		}

		return FormatHexadecimal
	}
}

// Check reports whether this translator fits a signal's declared shape.
// A mismatch is advisory: Decode still works and falls back to raw binary
// with KindWarn.
func (t Translator) Check(sig sigindex.Signal) error {
	switch t.Fmt {
	case FormatFloat16, FormatPosit16:
		if sig.Width != 16 {
			return fmt.Errorf("%w: %s needs 16 bits, signal %q has %d", errs.ErrFormatMismatch, t.Fmt, sig.Name, sig.Width)
		}
	case FormatFloat32, FormatPosit32:
		if sig.Width != 32 {
			return fmt.Errorf("%w: %s needs 32 bits, signal %q has %d", errs.ErrFormatMismatch, t.Fmt, sig.Name, sig.Width)
		}
	case FormatFloat64:
		if sig.Kind != sigindex.KindReal && sig.Width != 64 {
			return fmt.Errorf("%w: %s needs 64 bits, signal %q has %d", errs.ErrFormatMismatch, t.Fmt, sig.Name, sig.Width)
		}
	case FormatPosit8:
		if sig.Width != 8 {
			return fmt.Errorf("%w: %s needs 8 bits, signal %q has %d", errs.ErrFormatMismatch, t.Fmt, sig.Name, sig.Width)
		}
	case FormatEnum:
		if t.Enum == nil {
			return fmt.Errorf("%w: enum translator without table", errs.ErrFormatMismatch)
		}
	}

	return nil
}

// Decode renders a value for display. It never fails: shape mismatches fall
// back to the raw binary rendering with KindWarn, and 4-state inputs degrade
// to composite undefined results per format.
func (t Translator) Decode(v logic.Value, width int) DisplayValue {
	switch v.Tag() {
	case logic.TagReal:
		r, _ := v.Real()
		return decodeReal(r)
	case logic.TagInt:
		n, _ := v.Int()
		return DisplayValue{Text: fmt.Sprintf("%d", n)}
	case logic.TagString:
		s, _ := v.Str()
		return DisplayValue{Text: s}
	}

	vec, _ := v.Vector()
	if vec.Width() != width {
		// Stale translator choice after a trace reload; show what we have.
		return DisplayValue{Text: vec.String(), Kind: KindWarn}
	}

	switch t.Fmt {
	case FormatBinary:
		return decodeBinary(vec)
	case FormatUnsignedDecimal:
		return decodeUnsigned(vec)
	case FormatSignedDecimal:
		return decodeSigned(vec)
	case FormatHexadecimal:
		return decodeGrouped(vec, 4, "0x", hexDigit)
	case FormatOctal:
		return decodeGrouped(vec, 3, "0o", octDigit)
	case FormatASCII:
		return decodeASCII(vec)
	case FormatFloat16, FormatFloat32, FormatFloat64:
		return decodeFloat(t.Fmt, vec)
	case FormatPosit8, FormatPosit16, FormatPosit32:
		return decodePositFormat(t.Fmt, vec)
	case FormatEnum:
		if t.Enum == nil {
			return DisplayValue{Text: vec.String(), Kind: KindWarn}
		}

		return t.Enum.Decode(vec)
	default:
		return decodeBinary(vec)
	}
}
