package translate

import (
	"math/big"
	"strconv"
	"strings"

	"github.com/evholm/wavescope/logic"
)

func decodeBinary(vec logic.Vector) DisplayValue {
	return DisplayValue{Text: vec.String(), Kind: vectorKind(vec)}
}

func vectorKind(vec logic.Vector) ValueKind {
	if vec.AllZ() {
		return KindHighImp
	}
	if vec.HasUnknown() {
		return KindUndef
	}

	return KindNormal
}

func decodeUnsigned(vec logic.Vector) DisplayValue {
	if kind := vectorKind(vec); kind != KindNormal {
		return DisplayValue{Text: "undef", Kind: kind}
	}
	if v, ok := vec.Uint64(); ok {
		return DisplayValue{Text: strconv.FormatUint(v, 10)}
	}

	return DisplayValue{Text: bigUnsigned(vec).String()}
}

func decodeSigned(vec logic.Vector) DisplayValue {
	if kind := vectorKind(vec); kind != KindNormal {
		return DisplayValue{Text: "undef", Kind: kind}
	}

	w := vec.Width()
	if w <= 64 {
		v, _ := vec.Uint64()
		if w < 64 && vec.Bit(w-1) == logic.L1 {
			// Sign-extend the two's complement pattern.
			v |= ^uint64(0) << uint(w)
		}

		return DisplayValue{Text: strconv.FormatInt(int64(v), 10)}
	}

	n := bigUnsigned(vec)
	if vec.Bit(w-1) == logic.L1 {
		mod := new(big.Int).Lsh(big.NewInt(1), uint(w))
		n.Sub(n, mod)
	}

	return DisplayValue{Text: n.String()}
}

// bigUnsigned converts a fully defined vector of any width to a big.Int.
func bigUnsigned(vec logic.Vector) *big.Int {
	n := new(big.Int)
	for i := vec.Width() - 1; i >= 0; i-- {
		n.Lsh(n, 1)
		if vec.Bit(i) == logic.L1 {
			n.Or(n, big.NewInt(1))
		}
	}

	return n
}

// groupState classifies the bits of one output digit group.
type groupState struct {
	value uint
	anyX  bool
	anyZ  bool
	allZ  bool
}

func groupBits(vec logic.Vector, lo, size int) groupState {
	st := groupState{allZ: true}
	for i := range size {
		idx := lo + i
		if idx >= vec.Width() {
			break
		}
		switch vec.Bit(idx) {
		case logic.L1:
			st.value |= 1 << uint(i)
			st.allZ = false
		case logic.L0:
			st.allZ = false
		case logic.LX:
			st.anyX = true
			st.allZ = false
		case logic.LZ:
			st.anyZ = true
		}
	}

	return st
}

func hexDigit(v uint) byte { return "0123456789abcdef"[v] }
func octDigit(v uint) byte { return "01234567"[v] }

// decodeGrouped renders a vector digit-wise in a power-of-two base. A digit
// whose bits are all Z renders as 'z'; a digit containing any X, or a mix of
// Z and defined bits, renders as 'x'.
func decodeGrouped(vec logic.Vector, groupSize int, prefix string, digit func(uint) byte) DisplayValue {
	w := vec.Width()
	digits := (w + groupSize - 1) / groupSize
	var sb strings.Builder
	sb.Grow(len(prefix) + digits)
	sb.WriteString(prefix)

	kind := KindNormal
	anyX, allZ := false, true
	for d := digits - 1; d >= 0; d-- {
		st := groupBits(vec, d*groupSize, groupSize)
		switch {
		case st.allZ:
			sb.WriteByte('z')
		case st.anyX || st.anyZ:
			sb.WriteByte('x')
			anyX = true
			allZ = false
		default:
			sb.WriteByte(digit(st.value))
			allZ = false
		}
	}
	if allZ && digits > 0 {
		kind = KindHighImp
	} else if anyX || vec.HasUnknown() {
		kind = KindUndef
	}

	return DisplayValue{Text: sb.String(), Kind: kind}
}

// decodeASCII groups bits into bytes, most significant byte first. Bytes
// with undefined bits or outside the printable range render as the
// placeholder glyph. Widths not divisible by 8 pad the top byte with zeros;
// ASCII is documented as lossy and has no inverse.
func decodeASCII(vec logic.Vector) DisplayValue {
	w := vec.Width()
	bytes := (w + 7) / 8
	var sb strings.Builder
	sb.Grow(bytes)

	kind := KindNormal
	for b := bytes - 1; b >= 0; b-- {
		st := groupBits(vec, b*8, 8)
		switch {
		case st.anyX || st.anyZ:
			sb.WriteRune('·')
			kind = KindUndef
		case st.value >= 0x20 && st.value < 0x7f:
			sb.WriteByte(byte(st.value))
		default:
			sb.WriteRune('·')
		}
	}
	if vec.AllZ() {
		kind = KindHighImp
	}

	return DisplayValue{Text: sb.String(), Kind: kind}
}
