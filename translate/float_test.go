package translate

import (
	"fmt"
	"math"
	"testing"

	"github.com/evholm/wavescope/logic"
	"github.com/stretchr/testify/require"
)

func bitsValue(t *testing.T, width int, bits uint64) logic.Value {
	t.Helper()

	return logic.VectorValue(logic.FromUint64(width, bits))
}

func TestDecode_Float16(t *testing.T) {
	tr := New(FormatFloat16)

	tests := []struct {
		name string
		bits uint64
		want string
	}{
		{"one", 0x3c00, "1"},
		{"minus two", 0xc000, "-2"},
		{"half", 0x3800, "0.5"},
		{"zero", 0x0000, "0"},
		{"negative zero", 0x8000, "-0"},
		{"smallest subnormal", 0x0001, "5.960464477539063e-08"},
		{"infinity", 0x7c00, "+Inf"},
		{"negative infinity", 0xfc00, "-Inf"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dv := tr.Decode(bitsValue(t, 16, tt.bits), 16)
			require.Equal(t, tt.want, dv.Text)
			require.Equal(t, KindNormal, dv.Kind)
		})
	}

	t.Run("nan", func(t *testing.T) {
		dv := tr.Decode(bitsValue(t, 16, 0x7e00), 16)
		require.Equal(t, "NaN", dv.Text)
	})
}

func TestDecode_Float32(t *testing.T) {
	tr := New(FormatFloat32)

	dv := tr.Decode(bitsValue(t, 32, uint64(math.Float32bits(1.5))), 32)
	require.Equal(t, "1.5", dv.Text)

	dv = tr.Decode(bitsValue(t, 32, uint64(math.Float32bits(-0.25))), 32)
	require.Equal(t, "-0.25", dv.Text)
}

func TestDecode_Float64(t *testing.T) {
	tr := New(FormatFloat64)

	dv := tr.Decode(bitsValue(t, 64, math.Float64bits(3.141592653589793)), 64)
	require.Equal(t, "3.141592653589793", dv.Text)
}

func TestDecode_Float_Undefined(t *testing.T) {
	tr := New(FormatFloat16)

	dv := tr.Decode(vec(t, "xxxxxxxxxxxxxxxx"), 16)
	require.Equal(t, "undef", dv.Text)
	require.Equal(t, KindUndef, dv.Kind)
}

func TestDecode_Posit8(t *testing.T) {
	tr := New(FormatPosit8)

	tests := []struct {
		bits uint64
		want string
	}{
		{0x00, "0"},
		{0x40, "1"},
		{0x60, "2"},
		{0x20, "0.5"},
		{0x50, "1.5"},
		{0x80, "NaR"},
		{0xc0, "-1"},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("0x%02x", tt.bits), func(t *testing.T) {
			dv := tr.Decode(bitsValue(t, 8, tt.bits), 8)
			require.Equal(t, tt.want, dv.Text)
		})
	}
}

func TestDecode_Posit16(t *testing.T) {
	tr := New(FormatPosit16)

	// 0x4000 is 1.0 for every posit size.
	dv := tr.Decode(bitsValue(t, 16, 0x4000), 16)
	require.Equal(t, "1", dv.Text)

	// es=1: regime k=1 contributes 2^2, so 0x6000 is 4.0.
	dv = tr.Decode(bitsValue(t, 16, 0x6000), 16)
	require.Equal(t, "4", dv.Text)
}

func TestDecode_Posit32(t *testing.T) {
	tr := New(FormatPosit32)

	dv := tr.Decode(bitsValue(t, 32, 0x40000000), 32)
	require.Equal(t, "1", dv.Text)

	// es=2: regime k=1 contributes 2^4.
	dv = tr.Decode(bitsValue(t, 32, 0x60000000), 32)
	require.Equal(t, "16", dv.Text)
}
