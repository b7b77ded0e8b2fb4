package sigindex

import (
	"testing"

	"github.com/evholm/wavescope/errs"
	"github.com/stretchr/testify/require"
)

// buildDesign assembles:
//
//	top
//	├── clk
//	├── rst_n
//	├── io
//	│   ├── clk_en
//	│   └── data
//	└── core
//	    └── pc
func buildDesign(t *testing.T) *Hierarchy {
	t.Helper()

	b := NewBuilder()
	b.EnterScope("top")
	_, err := b.AddSignal("clk", 1, KindWire)
	require.NoError(t, err)
	_, err = b.AddSignal("rst_n", 1, KindWire)
	require.NoError(t, err)

	b.EnterScope("io")
	_, err = b.AddSignal("clk_en", 1, KindWire)
	require.NoError(t, err)
	_, err = b.AddSignal("data", 8, KindWire)
	require.NoError(t, err)
	require.NoError(t, b.LeaveScope())

	b.EnterScope("core")
	_, err = b.AddSignal("pc", 32, KindReg)
	require.NoError(t, err)
	require.NoError(t, b.LeaveScope())
	require.NoError(t, b.LeaveScope())

	h, err := b.Build()
	require.NoError(t, err)

	return h
}

func TestHierarchy_Resolve(t *testing.T) {
	h := buildDesign(t)

	t.Run("leaf in nested scope", func(t *testing.T) {
		hd, err := h.Resolve("top.io.clk_en")
		require.NoError(t, err)

		sig, err := h.Signal(hd)
		require.NoError(t, err)
		require.Equal(t, "clk_en", sig.Name)
		require.Equal(t, "top.io.clk_en", sig.Path)
	})

	t.Run("unknown path", func(t *testing.T) {
		_, err := h.Resolve("top.nosuch")
		require.ErrorIs(t, err, errs.ErrNotFound)
	})

	t.Run("bare name is not a full path", func(t *testing.T) {
		_, err := h.Resolve("clk")
		require.ErrorIs(t, err, errs.ErrNotFound)
	})
}

func TestHierarchy_Counts(t *testing.T) {
	h := buildDesign(t)

	require.Equal(t, 5, h.SignalCount())
	// Root plus top, io, core.
	require.Equal(t, 4, h.ScopeCount())
	require.Len(t, h.Paths(), 5)
}

func TestHierarchy_Children_DeclarationOrder(t *testing.T) {
	h := buildDesign(t)

	top, err := h.Resolve("top.clk")
	require.NoError(t, err)
	sig, err := h.Signal(top)
	require.NoError(t, err)

	children, err := h.Children(sig.Scope, false)
	require.NoError(t, err)

	var names []string
	for _, c := range children {
		names = append(names, c.Name)
	}
	require.Equal(t, []string{"clk", "rst_n", "io", "core"}, names)
}

func TestHierarchy_Children_NaturalOrder(t *testing.T) {
	b := NewBuilder()
	b.EnterScope("mem")
	for _, name := range []string{"bank10", "bank2", "bank1", "ctrl"} {
		_, err := b.AddSignal(name, 1, KindWire)
		require.NoError(t, err)
	}
	require.NoError(t, b.LeaveScope())

	h, err := b.Build()
	require.NoError(t, err)

	hd, err := h.Resolve("mem.bank1")
	require.NoError(t, err)
	sig, err := h.Signal(hd)
	require.NoError(t, err)

	children, err := h.Children(sig.Scope, true)
	require.NoError(t, err)

	var names []string
	for _, c := range children {
		names = append(names, c.Name)
	}
	// Numeric-aware: bank2 before bank10.
	require.Equal(t, []string{"bank1", "bank2", "bank10", "ctrl"}, names)
}

func TestHierarchy_ScopePath(t *testing.T) {
	h := buildDesign(t)

	hd, err := h.Resolve("top.core.pc")
	require.NoError(t, err)
	sig, err := h.Signal(hd)
	require.NoError(t, err)

	require.Equal(t, "top.core", h.ScopePath(sig.Scope))
	require.Equal(t, "", h.ScopePath(RootScope))
}

func TestBuilder_DuplicatePath(t *testing.T) {
	b := NewBuilder()
	b.EnterScope("top")
	_, err := b.AddSignal("clk", 1, KindWire)
	require.NoError(t, err)

	_, err = b.AddSignal("clk", 1, KindWire)
	require.ErrorIs(t, err, errs.ErrDuplicateSignal)
}

func TestBuilder_SameNameDifferentScopes(t *testing.T) {
	b := NewBuilder()
	b.EnterScope("a")
	_, err := b.AddSignal("clk", 1, KindWire)
	require.NoError(t, err)
	require.NoError(t, b.LeaveScope())

	b.EnterScope("b")
	_, err = b.AddSignal("clk", 1, KindWire)
	require.NoError(t, err)
	require.NoError(t, b.LeaveScope())

	h, err := b.Build()
	require.NoError(t, err)

	ha, err := h.Resolve("a.clk")
	require.NoError(t, err)
	hb, err := h.Resolve("b.clk")
	require.NoError(t, err)
	require.NotEqual(t, ha, hb)
}

func TestBuilder_ScopeUnderflow(t *testing.T) {
	b := NewBuilder()
	require.ErrorIs(t, b.LeaveScope(), errs.ErrScopeUnderflow)

	b.EnterScope("top")
	require.NoError(t, b.LeaveScope())
	require.ErrorIs(t, b.LeaveScope(), errs.ErrScopeUnderflow)
}

func TestBuilder_InvalidWidth(t *testing.T) {
	b := NewBuilder()
	_, err := b.AddSignal("bad", 0, KindWire)
	require.ErrorIs(t, err, errs.ErrInvalidWidth)
}

func TestBuilder_UseAfterBuild(t *testing.T) {
	b := NewBuilder()
	_, err := b.Build()
	require.NoError(t, err)

	_, err = b.AddSignal("late", 1, KindWire)
	require.ErrorIs(t, err, errs.ErrBuilderFinished)

	_, err = b.Build()
	require.ErrorIs(t, err, errs.ErrBuilderFinished)
}

func TestSignalKind_String(t *testing.T) {
	require.Equal(t, "wire", KindWire.String())
	require.Equal(t, "real", KindReal.String())
	require.Equal(t, "enum", KindEnum.String())
}
