package translate

import (
	"math"
	"strconv"

	"github.com/evholm/wavescope/logic"
)

// Posit sizes use the classic exponent-size pairs: posit8 es=0, posit16
// es=1, posit32 es=2.
func decodePositFormat(f Format, vec logic.Vector) DisplayValue {
	var n, es int
	switch f {
	case FormatPosit8:
		n, es = 8, 0
	case FormatPosit16:
		n, es = 16, 1
	default:
		n, es = 32, 2
	}
	if vec.Width() != n {
		return DisplayValue{Text: vec.String(), Kind: KindWarn}
	}
	if kind := vectorKind(vec); kind != KindNormal {
		return DisplayValue{Text: "undef", Kind: kind}
	}

	bits, _ := vec.Uint64()
	v, nar := decodePosit(bits, n, es)
	if nar {
		return DisplayValue{Text: "NaR"}
	}

	return DisplayValue{Text: strconv.FormatFloat(v, 'g', -1, 64)}
}

// decodePosit interprets the low n bits as a posit<n,es> value. The second
// return is true for NaR (not a real).
func decodePosit(bits uint64, n, es int) (float64, bool) {
	mask := uint64(1)<<uint(n) - 1
	bits &= mask

	if bits == 0 {
		return 0, false
	}
	if bits == 1<<uint(n-1) {
		return 0, true
	}

	neg := bits>>uint(n-1)&1 == 1
	if neg {
		bits = (^bits + 1) & mask
	}

	// Regime: run of identical bits after the sign, closed by one
	// terminator bit.
	r := bits >> uint(n-2) & 1
	m := 0
	i := n - 2
	for i >= 0 && bits>>uint(i)&1 == r {
		m++
		i--
	}
	var k int
	if r == 1 {
		k = m - 1
	} else {
		k = -m
	}

	// i is the terminator index; exponent and fraction bits follow. Bits
	// that ran off the end are zero.
	remaining := i
	if remaining < 0 {
		remaining = 0
	}
	ebits := es
	if remaining < ebits {
		ebits = remaining
	}
	e := int(bits>>uint(remaining-ebits)) & (1<<uint(ebits) - 1)
	e <<= uint(es - ebits)

	fbits := remaining - ebits
	f := bits & (1<<uint(fbits) - 1)
	frac := 1.0 + float64(f)/math.Pow(2, float64(fbits))

	v := frac * math.Pow(2, float64(k*(1<<uint(es))+e))
	if neg {
		v = -v
	}

	return v, false
}
