package snapshot

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/evholm/wavescope/errs"
	"github.com/evholm/wavescope/format"
	"github.com/evholm/wavescope/ingest"
	"github.com/evholm/wavescope/logic"
	"github.com/evholm/wavescope/section"
	"github.com/evholm/wavescope/sigindex"
	"github.com/evholm/wavescope/trace"
	"github.com/stretchr/testify/require"
)

func bit(t *testing.T, s string) logic.Value {
	t.Helper()
	v, err := logic.ParseVector(s)
	require.NoError(t, err)

	return logic.VectorValue(v)
}

// buildTrace covers every value kind, nested scopes and an empty signal.
func buildTrace(t *testing.T) *trace.Trace {
	t.Helper()

	b := trace.NewBuilder()
	b.SetTimescale(trace.Timescale{Factor: 10, Unit: trace.Picoseconds})

	b.EnterScope("top")
	clk, err := b.DeclareSignal("clk", 1, sigindex.KindWire)
	require.NoError(t, err)
	bus, err := b.DeclareSignal("bus", 12, sigindex.KindWire)
	require.NoError(t, err)

	b.EnterScope("core")
	temp, err := b.DeclareSignal("temp", 64, sigindex.KindReal)
	require.NoError(t, err)
	count, err := b.DeclareSignal("count", 32, sigindex.KindInteger)
	require.NoError(t, err)
	state, err := b.DeclareSignal("state", 1, sigindex.KindString)
	require.NoError(t, err)
	_, err = b.DeclareSignal("quiet", 8, sigindex.KindWire)
	require.NoError(t, err)
	require.NoError(t, b.LeaveScope())
	require.NoError(t, b.LeaveScope())

	for i, s := range []string{"0", "1", "0", "1"} {
		require.NoError(t, b.Append(clk, uint64(i*5), bit(t, s)))
	}
	require.NoError(t, b.Append(bus, 0, bit(t, "0000zzzz0011")))
	require.NoError(t, b.Append(bus, 1000000, bit(t, "xxxx00001111")))
	require.NoError(t, b.Append(temp, 2, logic.RealValue(-12.5)))
	require.NoError(t, b.Append(count, 3, logic.IntValue(-400)))
	require.NoError(t, b.Append(count, 9, logic.IntValue(12345)))
	require.NoError(t, b.Append(state, 4, logic.StringValue("RESET")))
	require.NoError(t, b.Append(state, 8, logic.StringValue("RUN")))

	tr, err := b.Build()
	require.NoError(t, err)

	return tr
}

func requireTracesEqual(t *testing.T, want, got *trace.Trace) {
	t.Helper()

	require.Equal(t, want.EndTime(), got.EndTime())
	require.Equal(t, want.Timescale(), got.Timescale())
	require.Equal(t, want.Hierarchy().SignalCount(), got.Hierarchy().SignalCount())
	require.Equal(t, want.Hierarchy().ScopeCount(), got.Hierarchy().ScopeCount())

	for _, path := range want.Hierarchy().Paths() {
		wh, err := want.Hierarchy().Resolve(path)
		require.NoError(t, err)
		gh, err := got.Hierarchy().Resolve(path)
		require.NoError(t, err)

		ws, err := want.Hierarchy().Signal(wh)
		require.NoError(t, err)
		gs, err := got.Hierarchy().Signal(gh)
		require.NoError(t, err)
		require.Equal(t, ws.Width, gs.Width, path)
		require.Equal(t, ws.Kind, gs.Kind, path)

		require.Equal(t, want.TransitionCount(wh), got.TransitionCount(gh), path)

		wantSeq := map[uint64]string{}
		for ts, v := range want.TransitionsIn(wh, 0, want.EndTime()+1) {
			wantSeq[ts] = v.String()
		}
		gotSeq := map[uint64]string{}
		for ts, v := range got.TransitionsIn(gh, 0, got.EndTime()+1) {
			gotSeq[ts] = v.String()
		}
		require.Equal(t, wantSeq, gotSeq, path)
	}
}

func TestSnapshot_RoundTrip(t *testing.T) {
	codecs := []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	}
	for _, ct := range codecs {
		t.Run(ct.String(), func(t *testing.T) {
			tr := buildTrace(t)

			var buf bytes.Buffer
			require.NoError(t, Write(tr, &buf, WithCompression(ct)))

			got, err := Read(&buf)
			require.NoError(t, err)
			requireTracesEqual(t, tr, got)
		})
	}
}

func TestSnapshot_RoundTrip_BigEndian(t *testing.T) {
	tr := buildTrace(t)

	var buf bytes.Buffer
	require.NoError(t, Write(tr, &buf, WithBigEndian()))

	got, err := Decode(buf.Bytes())
	require.NoError(t, err)
	requireTracesEqual(t, tr, got)
}

func TestSnapshot_FileRoundTrip(t *testing.T) {
	tr := buildTrace(t)
	path := filepath.Join(t.TempDir(), "trace.wsc")

	require.NoError(t, WriteFile(tr, path))

	got, err := ReadFile(path)
	require.NoError(t, err)
	requireTracesEqual(t, tr, got)
}

func TestSnapshot_EmptyTrace(t *testing.T) {
	b := trace.NewBuilder()
	tr, err := b.Build()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Write(tr, &buf))

	got, err := Read(&buf)
	require.NoError(t, err)
	require.Equal(t, 0, got.Hierarchy().SignalCount())
	require.Equal(t, uint64(0), got.EndTime())
}

func TestDecode_Corrupt(t *testing.T) {
	tr := buildTrace(t)
	var buf bytes.Buffer
	require.NoError(t, Write(tr, &buf))
	good := buf.Bytes()

	t.Run("truncated header", func(t *testing.T) {
		_, err := Decode(good[:10])
		require.ErrorIs(t, err, errs.ErrInvalidHeaderSize)
	})

	t.Run("bad magic", func(t *testing.T) {
		bad := bytes.Clone(good)
		bad[0] = 0xff
		_, err := Decode(bad)
		require.ErrorIs(t, err, errs.ErrInvalidMagic)
	})

	t.Run("future version", func(t *testing.T) {
		bad := bytes.Clone(good)
		bad[2] = section.Version + 1
		_, err := Decode(bad)
		require.ErrorIs(t, err, errs.ErrUnsupportedVersion)
	})

	t.Run("truncated payload", func(t *testing.T) {
		_, err := Decode(good[:len(good)-5])
		require.ErrorIs(t, err, errs.ErrCorruptSnapshot)
	})

	t.Run("mangled payload", func(t *testing.T) {
		bad := bytes.Clone(good)
		for i := len(bad) - 8; i < len(bad); i++ {
			bad[i] ^= 0xa5
		}
		_, err := Decode(bad)
		require.ErrorIs(t, err, errs.ErrCorruptSnapshot)
	})
}

func TestSource_LoadsThroughIngest(t *testing.T) {
	tr := buildTrace(t)
	path := filepath.Join(t.TempDir(), "trace.wsc")
	require.NoError(t, WriteFile(tr, path))

	l := ingest.NewLoader(slog.New(slog.DiscardHandler))
	got, err := l.Load(context.Background(), &Source{Path: path})
	require.NoError(t, err)
	requireTracesEqual(t, tr, got)
	require.Same(t, got, l.Current())
}

func TestSource_Cancelled(t *testing.T) {
	tr := buildTrace(t)
	path := filepath.Join(t.TempDir(), "trace.wsc")
	require.NoError(t, WriteFile(tr, path))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	l := ingest.NewLoader(slog.New(slog.DiscardHandler))
	_, err := l.Load(ctx, &Source{Path: path})
	require.ErrorIs(t, err, errs.ErrCancelled)
	require.Nil(t, l.Current())
}

func TestSource_MissingFile(t *testing.T) {
	l := ingest.NewLoader(slog.New(slog.DiscardHandler))
	_, err := l.Load(context.Background(), &Source{Path: filepath.Join(t.TempDir(), "absent.wsc")})
	require.Error(t, err)
}
