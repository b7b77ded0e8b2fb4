package trace

import (
	"math/bits"
	"strconv"
	"strings"
)

// TimeUnit is a power-of-ten time unit, stored as its exponent relative to
// one second.
type TimeUnit int8

const (
	Femtoseconds TimeUnit = -15
	Picoseconds  TimeUnit = -12
	Nanoseconds  TimeUnit = -9
	Microseconds TimeUnit = -6
	Milliseconds TimeUnit = -3
	Seconds      TimeUnit = 0
)

func (u TimeUnit) String() string {
	switch u {
	case Femtoseconds:
		return "fs"
	case Picoseconds:
		return "ps"
	case Nanoseconds:
		return "ns"
	case Microseconds:
		return "us"
	case Milliseconds:
		return "ms"
	case Seconds:
		return "s"
	default:
		return "?"
	}
}

// Timescale maps raw trace time units to physical time: one trace tick is
// Factor × Unit. A VCD "timescale 10ns" becomes {Factor: 10, Unit:
// Nanoseconds}.
type Timescale struct {
	Factor uint32
	Unit   TimeUnit
}

// DefaultTimescale is used when a source declares none.
var DefaultTimescale = Timescale{Factor: 1, Unit: Nanoseconds}

// FormatTime renders a raw trace timestamp in the wanted display unit, e.g.
// FormatTime(1500, {1, Nanoseconds}, Microseconds) == "1.500 us".
//
// The conversion is exact decimal shifting, not floating point, so large
// timestamps keep full precision.
func FormatTime(t uint64, ts Timescale, wanted TimeUnit) string {
	factor := uint64(ts.Factor)
	if factor == 0 {
		factor = 1
	}
	scaled := formatProduct(t, factor)

	shift := int(wanted) - int(ts.Unit)
	switch {
	case shift > 0:
		// Display unit is coarser: move the decimal point left.
		if len(scaled) <= shift {
			scaled = strings.Repeat("0", shift-len(scaled)+1) + scaled
		}
		cut := len(scaled) - shift
		scaled = scaled[:cut] + "." + scaled[cut:]
	case shift < 0:
		// Display unit is finer: append zeros.
		scaled += strings.Repeat("0", -shift)
	}

	return scaled + " " + wanted.String()
}

// formatProduct renders t*factor in decimal. The product is up to 96 bits
// (factor is 32-bit), so timestamps near the top of the uint64 range must
// not go through a 64-bit multiply.
func formatProduct(t, factor uint64) string {
	hi, lo := bits.Mul64(t, factor)
	if hi == 0 {
		return strconv.FormatUint(lo, 10)
	}

	// hi < 2^32 < 1e18, so a single 128/64 division splits the product
	// into two decimal halves.
	const pow18 = 1_000_000_000_000_000_000
	q, r := bits.Div64(hi, lo, pow18)
	rem := strconv.FormatUint(r, 10)

	return strconv.FormatUint(q, 10) + strings.Repeat("0", 18-len(rem)) + rem
}
