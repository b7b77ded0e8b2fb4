// Package logic implements fixed-width 4-state bit-vectors and the tagged
// value variant used throughout wavescope.
//
// A bit takes one of four states: 0, 1, X (unknown) and Z (high impedance).
// Vectors pack four bits per byte (2 bits per logic bit), so a value of a
// width-W signal always occupies exactly BytesFor(W) bytes. This fixed stride
// is what lets the transition store slice a single value out of a columnar
// payload without touching its neighbors.
//
// Bit index 0 is the least significant bit. Textual forms (String,
// ParseVector) follow the usual hardware convention of most significant bit
// first.
package logic

import (
	"fmt"
	"strings"

	"github.com/evholm/wavescope/errs"
)

// Bit is a single 4-state logic bit.
type Bit uint8

// The four logic states. The numeric values are part of the packed vector
// representation and of the snapshot format; do not reorder.
const (
	L0 Bit = 0 // logic low
	L1 Bit = 1 // logic high
	LX Bit = 2 // unknown
	LZ Bit = 3 // high impedance
)

// Rune returns the canonical display character for the bit.
func (b Bit) Rune() rune {
	switch b {
	case L0:
		return '0'
	case L1:
		return '1'
	case LX:
		return 'x'
	default:
		return 'z'
	}
}

// BitFromRune parses one of 0 1 x X z Z.
func BitFromRune(r rune) (Bit, bool) {
	switch r {
	case '0':
		return L0, true
	case '1':
		return L1, true
	case 'x', 'X':
		return LX, true
	case 'z', 'Z':
		return LZ, true
	default:
		return L0, false
	}
}

// BytesFor returns the packed byte length of a width-bit vector.
func BytesFor(width int) int {
	return (width + 3) / 4
}

// Vector is a fixed-width 4-state bit-vector. The zero Vector has width 0.
//
// A Vector may be an owned buffer (NewVector, ParseVector) or a zero-copy
// view into a larger payload (View). Views share their backing storage with
// the payload; callers that need an independent copy use Clone.
type Vector struct {
	bits  []byte
	width int
}

// NewVector returns a width-bit vector with every bit set to X.
func NewVector(width int) Vector {
	v := Vector{bits: make([]byte, BytesFor(width)), width: width}
	for i := range width {
		v.SetBit(i, LX)
	}

	return v
}

// View returns a zero-copy vector over packed payload bytes. The slice must
// be at least BytesFor(width) long and must not be mutated while the view is
// in use.
func View(width int, data []byte) Vector {
	return Vector{bits: data[:BytesFor(width)], width: width}
}

// FromUint64 returns a width-bit vector holding the low width bits of val.
func FromUint64(width int, val uint64) Vector {
	v := Vector{bits: make([]byte, BytesFor(width)), width: width}
	for i := range width {
		if i < 64 && val&(1<<uint(i)) != 0 {
			v.SetBit(i, L1)
		}
	}

	return v
}

// ParseVector parses a most-significant-bit-first string of 0 1 x z
// characters. The vector width equals the string length.
func ParseVector(s string) (Vector, error) {
	width := len(s)
	if width == 0 {
		return Vector{}, fmt.Errorf("%w: empty vector literal", errs.ErrUnparsableValue)
	}

	v := Vector{bits: make([]byte, BytesFor(width)), width: width}
	for i, r := range s {
		b, ok := BitFromRune(r)
		if !ok {
			return Vector{}, fmt.Errorf("%w: bad logic character %q", errs.ErrUnparsableValue, r)
		}
		v.SetBit(width-1-i, b)
	}

	return v, nil
}

// Width returns the number of logic bits in the vector.
func (v Vector) Width() int {
	return v.width
}

// Bit returns the bit at index i (0 = least significant).
func (v Vector) Bit(i int) Bit {
	return Bit(v.bits[i>>2]>>(uint(i&3)*2)) & 3
}

// SetBit sets the bit at index i. Only valid on owned vectors; mutating a
// View corrupts the shared payload.
func (v Vector) SetBit(i int, b Bit) {
	shift := uint(i&3) * 2
	v.bits[i>>2] = v.bits[i>>2]&^(3<<shift) | byte(b)<<shift
}

// Bytes returns the packed backing bytes. Shared with the vector; treat as
// read-only.
func (v Vector) Bytes() []byte {
	return v.bits
}

// Clone returns a vector with its own backing storage.
func (v Vector) Clone() Vector {
	out := Vector{bits: make([]byte, len(v.bits)), width: v.width}
	copy(out.bits, v.bits)

	return out
}

// HasUnknown reports whether any bit is X or Z.
func (v Vector) HasUnknown() bool {
	for i := range v.width {
		if v.Bit(i) >= LX {
			return true
		}
	}

	return false
}

// AllZ reports whether every bit is Z.
func (v Vector) AllZ() bool {
	for i := range v.width {
		if v.Bit(i) != LZ {
			return false
		}
	}

	return v.width > 0
}

// Uint64 returns the vector as an unsigned integer. It fails if the width
// exceeds 64 bits or any bit is X or Z.
func (v Vector) Uint64() (uint64, bool) {
	if v.width > 64 {
		return 0, false
	}

	var out uint64
	for i := range v.width {
		switch v.Bit(i) {
		case L1:
			out |= 1 << uint(i)
		case LX, LZ:
			return 0, false
		}
	}

	return out, true
}

// String renders the vector most significant bit first, e.g. "10xz".
func (v Vector) String() string {
	var sb strings.Builder
	sb.Grow(v.width)
	for i := v.width - 1; i >= 0; i-- {
		sb.WriteRune(v.Bit(i).Rune())
	}

	return sb.String()
}

// Equal reports bit-wise equality, including width.
func (v Vector) Equal(o Vector) bool {
	if v.width != o.width {
		return false
	}
	for i := range v.width {
		if v.Bit(i) != o.Bit(i) {
			return false
		}
	}

	return true
}
