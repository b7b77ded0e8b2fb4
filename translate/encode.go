package translate

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/evholm/wavescope/errs"
	"github.com/evholm/wavescope/logic"
)

// Encode is the inverse of Decode for the formats that have one: binary,
// unsigned and signed decimal, hexadecimal and octal. Decoding a fully
// defined vector and encoding the text back yields the original bits.
//
// ASCII, the float reinterpretations and enum tables are lossy or ambiguous
// and have no inverse; Encode returns errs.ErrFormatMismatch for them.
func (t Translator) Encode(text string, width int) (logic.Vector, error) {
	switch t.Fmt {
	case FormatBinary:
		return encodeBinary(text, width)
	case FormatUnsignedDecimal, FormatSignedDecimal:
		return encodeDecimal(text, width, t.Fmt == FormatSignedDecimal)
	case FormatHexadecimal:
		return encodeGrouped(strings.TrimPrefix(text, "0x"), width, 4)
	case FormatOctal:
		return encodeGrouped(strings.TrimPrefix(text, "0o"), width, 3)
	default:
		return logic.Vector{}, fmt.Errorf("%w: %s has no inverse", errs.ErrFormatMismatch, t.Fmt)
	}
}

func encodeBinary(text string, width int) (logic.Vector, error) {
	if len(text) != width {
		return logic.Vector{}, fmt.Errorf("%w: %q is not %d bits", errs.ErrUnparsableValue, text, width)
	}

	return logic.ParseVector(text)
}

func encodeDecimal(text string, width int, signed bool) (logic.Vector, error) {
	n, ok := new(big.Int).SetString(text, 10)
	if !ok {
		return logic.Vector{}, fmt.Errorf("%w: %q", errs.ErrUnparsableValue, text)
	}
	if n.Sign() < 0 {
		if !signed {
			return logic.Vector{}, fmt.Errorf("%w: negative value %q in unsigned format", errs.ErrUnparsableValue, text)
		}
		// Two's complement wrap.
		mod := new(big.Int).Lsh(big.NewInt(1), uint(width))
		n.Add(n, mod)
	}
	if n.BitLen() > width {
		return logic.Vector{}, fmt.Errorf("%w: %q does not fit %d bits", errs.ErrUnparsableValue, text, width)
	}

	v := logic.FromUint64(width, 0)
	for i := range width {
		if n.Bit(i) == 1 {
			v.SetBit(i, logic.L1)
		}
	}

	return v, nil
}

func encodeGrouped(text string, width, groupSize int) (logic.Vector, error) {
	digits := (width + groupSize - 1) / groupSize
	if len(text) != digits {
		return logic.Vector{}, fmt.Errorf("%w: %q is not %d digits", errs.ErrUnparsableValue, text, digits)
	}

	v := logic.FromUint64(width, 0)
	for d := range digits {
		c := text[len(text)-1-d]
		lo := d * groupSize
		switch {
		case c == 'x' || c == 'X':
			for i := lo; i < lo+groupSize && i < width; i++ {
				v.SetBit(i, logic.LX)
			}
		case c == 'z' || c == 'Z':
			for i := lo; i < lo+groupSize && i < width; i++ {
				v.SetBit(i, logic.LZ)
			}
		default:
			val, err := digitValue(c, groupSize)
			if err != nil {
				return logic.Vector{}, err
			}
			for i := range groupSize {
				if lo+i >= width {
					if val>>uint(i) != 0 {
						return logic.Vector{}, fmt.Errorf("%w: digit %q overflows %d bits", errs.ErrUnparsableValue, c, width)
					}

					break
				}
				if val&(1<<uint(i)) != 0 {
					v.SetBit(lo+i, logic.L1)
				}
			}
		}
	}

	return v, nil
}

func digitValue(c byte, groupSize int) (uint, error) {
	var val uint
	switch {
	case c >= '0' && c <= '9':
		val = uint(c - '0')
	case c >= 'a' && c <= 'f':
		val = uint(c-'a') + 10
	case c >= 'A' && c <= 'F':
		val = uint(c-'A') + 10
	default:
		return 0, fmt.Errorf("%w: bad digit %q", errs.ErrUnparsableValue, c)
	}
	if val >= 1<<uint(groupSize) {
		return 0, fmt.Errorf("%w: digit %q out of range", errs.ErrUnparsableValue, c)
	}

	return val, nil
}
