package trace

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatTime(t *testing.T) {
	ns := Timescale{Factor: 1, Unit: Nanoseconds}

	tests := []struct {
		name   string
		t      uint64
		ts     Timescale
		wanted TimeUnit
		want   string
	}{
		{"same unit", 1500, ns, Nanoseconds, "1500 ns"},
		{"coarser unit", 1500, ns, Microseconds, "1.500 us"},
		{"much coarser", 42, ns, Milliseconds, "0.000042 ms"},
		{"finer unit", 3, ns, Picoseconds, "3000 ps"},
		{"factor applied", 7, Timescale{Factor: 10, Unit: Nanoseconds}, Nanoseconds, "70 ns"},
		{"zero", 0, ns, Nanoseconds, "0 ns"},
		{"exact shift", 2000, ns, Microseconds, "2.000 us"},
		{
			"max timestamp with factor", math.MaxUint64,
			Timescale{Factor: 1000, Unit: Nanoseconds}, Nanoseconds,
			"18446744073709551615000 ns",
		},
		{
			"max timestamp shifted", math.MaxUint64,
			Timescale{Factor: 1000, Unit: Nanoseconds}, Microseconds,
			"18446744073709551615.000 us",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, FormatTime(tt.t, tt.ts, tt.wanted))
		})
	}
}

func TestTimeUnit_String(t *testing.T) {
	require.Equal(t, "fs", Femtoseconds.String())
	require.Equal(t, "ns", Nanoseconds.String())
	require.Equal(t, "s", Seconds.String())
	require.Equal(t, "?", TimeUnit(1).String())
}
