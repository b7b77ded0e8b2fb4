package ingest

import (
	"context"
	"log/slog"
	"testing"

	"github.com/evholm/wavescope/errs"
	"github.com/evholm/wavescope/logic"
	"github.com/evholm/wavescope/sigindex"
	"github.com/evholm/wavescope/trace"
	"github.com/stretchr/testify/require"
)

func bit(s string) logic.Value {
	v, err := logic.ParseVector(s)
	if err != nil {
		panic(err)
	}

	return logic.VectorValue(v)
}

// funcSource adapts a closure into a Source for tests.
type funcSource struct {
	name string
	read func(ctx context.Context, b *trace.Builder, p *Progress) error
}

func (f *funcSource) Name() string { return f.name }

func (f *funcSource) Read(ctx context.Context, b *trace.Builder, p *Progress) error {
	return f.read(ctx, b, p)
}

func goodSource(name string) Source {
	return &funcSource{name: name, read: func(_ context.Context, b *trace.Builder, p *Progress) error {
		b.EnterScope("top")
		clk, err := b.DeclareSignal("clk", 1, sigindex.KindWire)
		if err != nil {
			return err
		}
		if err := b.LeaveScope(); err != nil {
			return err
		}
		for i, s := range []string{"0", "1", "0"} {
			if err := b.Append(clk, uint64(i*5), bit(s)); err != nil {
				return err
			}
			p.AddRecords(1)
		}

		return nil
	}}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestLoader_Load(t *testing.T) {
	l := NewLoader(discardLogger())
	require.Nil(t, l.Current())

	tr, err := l.Load(context.Background(), goodSource("a.vcd"))
	require.NoError(t, err)
	require.NotNil(t, tr)
	require.Same(t, tr, l.Current())
	require.Equal(t, 1, tr.Hierarchy().SignalCount())

	// The in-flight progress handle is dropped once the load ends.
	require.Nil(t, l.Progress())
}

func TestLoader_Load_MalformedKeepsPriorTrace(t *testing.T) {
	l := NewLoader(discardLogger())

	prior, err := l.Load(context.Background(), goodSource("a.vcd"))
	require.NoError(t, err)

	bad := &funcSource{name: "bad.vcd", read: func(_ context.Context, b *trace.Builder, _ *Progress) error {
		sig, err := b.DeclareSignal("s", 1, sigindex.KindWire)
		if err != nil {
			return err
		}
		if err := b.Append(sig, 10, bit("0")); err != nil {
			return err
		}

		return b.Append(sig, 5, bit("1"))
	}}

	_, err = l.Load(context.Background(), bad)
	require.ErrorIs(t, err, errs.ErrOutOfOrderTimestamp)

	// The failed load never replaces the published trace.
	require.Same(t, prior, l.Current())

	hd, err := prior.Hierarchy().Resolve("top.clk")
	require.NoError(t, err)
	_, ok := prior.ValueAt(hd, 7)
	require.True(t, ok)
}

func TestLoader_Load_CancelledKeepsPriorTrace(t *testing.T) {
	l := NewLoader(discardLogger())

	prior, err := l.Load(context.Background(), goodSource("a.vcd"))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	slow := &funcSource{name: "slow.vcd", read: func(ctx context.Context, b *trace.Builder, _ *Progress) error {
		cancel()

		return ctx.Err()
	}}

	_, err = l.Load(ctx, slow)
	require.ErrorIs(t, err, errs.ErrCancelled)
	require.Same(t, prior, l.Current())
}

func TestLoader_Load_ContextCheckedAfterRead(t *testing.T) {
	l := NewLoader(discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	src := &funcSource{name: "s.vcd", read: func(_ context.Context, b *trace.Builder, _ *Progress) error {
		// Source ignores cancellation; the loader still refuses to
		// publish a trace built under a cancelled context.
		cancel()

		return nil
	}}

	_, err := l.Load(ctx, src)
	require.ErrorIs(t, err, errs.ErrCancelled)
	require.Nil(t, l.Current())
}

func TestLoader_LoadAsync(t *testing.T) {
	l := NewLoader(discardLogger())

	res := <-l.LoadAsync(context.Background(), goodSource("a.vcd"))
	require.NoError(t, res.Err)
	require.NotNil(t, res.Trace)
	require.Same(t, res.Trace, l.Current())
}

func TestLoader_Unload(t *testing.T) {
	l := NewLoader(discardLogger())

	_, err := l.Load(context.Background(), goodSource("a.vcd"))
	require.NoError(t, err)

	l.Unload()
	require.Nil(t, l.Current())
}

func TestProgress_Counters(t *testing.T) {
	p := &Progress{}

	p.SetTotalBytes(100)
	p.AddBytes(40)
	p.AddBytes(20)
	p.AddRecords(3)

	require.Equal(t, uint64(100), p.TotalBytes())
	require.Equal(t, uint64(60), p.Bytes())
	require.Equal(t, uint64(3), p.Records())
}
