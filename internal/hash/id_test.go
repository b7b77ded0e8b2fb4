package hash

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPathID(t *testing.T) {
	require.Equal(t, PathID("top.clk"), PathID("top.clk"))
	require.NotEqual(t, PathID("top.clk"), PathID("top.rst"))

	// Known xxHash64 vector.
	require.Equal(t, uint64(0xef46db3751d8e999), PathID(""))
}
