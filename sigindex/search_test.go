package sigindex

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHierarchy_Search_ExactLeafOutranksPartial(t *testing.T) {
	h := buildDesign(t)

	matches := h.Search("clk")
	require.NotEmpty(t, matches)

	// The exact leaf-name match ranks above the substring match even
	// though the latter is also a legitimate hit.
	require.Equal(t, "top.clk", matches[0].Path)

	var paths []string
	for _, m := range matches {
		paths = append(paths, m.Path)
	}
	require.Contains(t, paths, "top.io.clk_en")
}

func TestHierarchy_Search_Deterministic(t *testing.T) {
	h := buildDesign(t)

	first := h.Search("c")
	for range 5 {
		require.Equal(t, first, h.Search("c"))
	}
}

func TestHierarchy_Search_NoMatch(t *testing.T) {
	h := buildDesign(t)

	require.Empty(t, h.Search("zzzzzz"))
	require.Empty(t, h.Search(""))
}

func TestHierarchy_Search_PositionsContained(t *testing.T) {
	h := buildDesign(t)

	for _, m := range h.Search("data") {
		require.NotEmpty(t, m.Positions)
		for _, p := range m.Positions {
			require.Less(t, p, len(m.Path))
		}
	}
}

func TestHierarchy_Search_SegmentMatchBeatsScatter(t *testing.T) {
	b := NewBuilder()
	b.EnterScope("top")
	_, err := b.AddSignal("pc", 32, KindReg)
	require.NoError(t, err)
	b.EnterScope("proc")
	_, err = b.AddSignal("counter", 8, KindReg)
	require.NoError(t, err)
	require.NoError(t, b.LeaveScope())
	require.NoError(t, b.LeaveScope())

	h, err := b.Build()
	require.NoError(t, err)

	matches := h.Search("pc")
	require.NotEmpty(t, matches)
	require.Equal(t, "top.pc", matches[0].Path)
}
