package translate

import (
	"math"
	"strconv"

	"github.com/evholm/wavescope/logic"
)

func decodeReal(r float64) DisplayValue {
	return DisplayValue{Text: strconv.FormatFloat(r, 'g', -1, 64)}
}

// decodeFloat reinterprets the bit pattern as an IEEE 754 binary16/32/64
// value. A width mismatch falls back to raw binary with KindWarn; undefined
// bits decode as undef like the integer formats.
func decodeFloat(f Format, vec logic.Vector) DisplayValue {
	want := map[Format]int{FormatFloat16: 16, FormatFloat32: 32, FormatFloat64: 64}[f]
	if vec.Width() != want {
		return DisplayValue{Text: vec.String(), Kind: KindWarn}
	}
	if kind := vectorKind(vec); kind != KindNormal {
		return DisplayValue{Text: "undef", Kind: kind}
	}

	bits, _ := vec.Uint64()
	var v float64
	switch f {
	case FormatFloat16:
		v = float16ToFloat64(uint16(bits))
	case FormatFloat32:
		v = float64(math.Float32frombits(uint32(bits)))
	default:
		v = math.Float64frombits(bits)
	}

	return DisplayValue{Text: strconv.FormatFloat(v, 'g', -1, 64)}
}

// float16ToFloat64 widens an IEEE binary16 bit pattern. Subnormals,
// infinities and NaN are preserved.
func float16ToFloat64(h uint16) float64 {
	sign := uint64(h>>15) & 1
	exp := uint64(h>>10) & 0x1f
	frac := uint64(h) & 0x3ff

	var bits uint64
	switch exp {
	case 0x1f: // inf / NaN
		bits = sign<<63 | 0x7ff<<52 | frac<<42
	case 0:
		if frac == 0 {
			bits = sign << 63
			break
		}
		// Subnormal: normalize into the binary64 exponent range.
		e := -14
		for frac&0x400 == 0 {
			frac <<= 1
			e--
		}
		frac &= 0x3ff
		bits = sign<<63 | uint64(e+1023)<<52 | frac<<42
	default:
		bits = sign<<63 | (exp-15+1023)<<52 | frac<<42
	}

	return math.Float64frombits(bits)
}
