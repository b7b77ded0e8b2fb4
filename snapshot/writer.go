package snapshot

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/evholm/wavescope/compress"
	"github.com/evholm/wavescope/endian"
	"github.com/evholm/wavescope/internal/options"
	"github.com/evholm/wavescope/internal/pool"
	"github.com/evholm/wavescope/logic"
	"github.com/evholm/wavescope/section"
	"github.com/evholm/wavescope/sigindex"
	"github.com/evholm/wavescope/trace"
)

// Hierarchy section opcodes. The stream is a depth-first walk of the scope
// tree in declaration order, so replaying it declares signals in the same
// order the index entries were written.
const (
	opEnterScope = 0x01
	opLeaveScope = 0x02
	opSignal     = 0x03
)

// Write serializes tr to w.
func Write(tr *trace.Trace, w io.Writer, opts ...Option) error {
	cfg := defaultConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return err
	}

	engine := endian.GetLittleEndianEngine()
	if cfg.bigEndian {
		engine = endian.GetBigEndianEngine()
	}

	codec, err := compress.GetCodec(cfg.compression)
	if err != nil {
		return err
	}

	hier := tr.Hierarchy()

	hierBuf := pool.GetSectionBuffer()
	timeBuf := pool.GetSectionBuffer()
	valueBuf := pool.GetSectionBuffer()
	defer func() {
		pool.PutSectionBuffer(hierBuf)
		pool.PutSectionBuffer(timeBuf)
		pool.PutSectionBuffer(valueBuf)
	}()

	order := make([]sigindex.Handle, 0, hier.SignalCount())
	if err = writeScope(hierBuf, hier, sigindex.RootScope, &order); err != nil {
		return err
	}

	entries := make([]section.IndexEntry, 0, len(order))
	for _, hd := range order {
		sig, sigErr := hier.Signal(hd)
		if sigErr != nil {
			return sigErr
		}

		entry := section.IndexEntry{
			Width:       uint32(sig.Width),
			Kind:        uint8(sig.Kind),
			TimeOffset:  uint32(timeBuf.Len()),
			ValueOffset: uint32(valueBuf.Len()),
		}

		var prev uint64
		for ts, v := range tr.TransitionsIn(hd, 0, math.MaxUint64) {
			timeBuf.B = binary.AppendUvarint(timeBuf.B, ts-prev)
			prev = ts
			appendValue(valueBuf, engine, sig.Kind, v)
			entry.Count++
		}
		entry.TimeLength = uint32(timeBuf.Len()) - entry.TimeOffset
		entry.ValueLength = uint32(valueBuf.Len()) - entry.ValueOffset
		entries = append(entries, entry)
	}

	hierData, err := codec.Compress(hierBuf.Bytes())
	if err != nil {
		return fmt.Errorf("compress hierarchy section: %w", err)
	}
	timeData, err := codec.Compress(timeBuf.Bytes())
	if err != nil {
		return fmt.Errorf("compress time section: %w", err)
	}
	valueData, err := codec.Compress(valueBuf.Bytes())
	if err != nil {
		return fmt.Errorf("compress value section: %w", err)
	}

	ts := tr.Timescale()
	hdr := section.Header{
		EndTime:         tr.EndTime(),
		SignalCount:     uint32(len(entries)),
		IndexOffset:     section.HeaderSize,
		HierarchyOffset: uint32(section.HeaderSize + len(entries)*section.IndexEntrySize),
		TimescaleFactor: ts.Factor,
		TimescaleUnit:   int8(ts.Unit),
		Compression:     cfg.compression,
		BigEndian:       cfg.bigEndian,
	}
	hdr.TimePayloadOffset = hdr.HierarchyOffset + uint32(len(hierData))
	hdr.ValuePayloadOffset = hdr.TimePayloadOffset + uint32(len(timeData))

	out := pool.GetSectionBuffer()
	defer pool.PutSectionBuffer(out)

	out.B = hdr.Append(out.B)
	for i := range entries {
		out.B = entries[i].Append(out.B, engine)
	}
	out.B = append(out.B, hierData...)
	out.B = append(out.B, timeData...)
	out.B = append(out.B, valueData...)

	if _, err = out.WriteTo(w); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}

	return nil
}

// WriteFile serializes tr to a file at path, replacing any existing file.
func WriteFile(tr *trace.Trace, path string, opts ...Option) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err = Write(tr, f, opts...); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}

func writeScope(buf *pool.ByteBuffer, hier *sigindex.Hierarchy, id sigindex.ScopeID, order *[]sigindex.Handle) error {
	children, err := hier.Children(id, false)
	if err != nil {
		return err
	}

	for _, c := range children {
		if c.IsSignal {
			buf.B = append(buf.B, opSignal)
			buf.B = appendName(buf.B, c.Name)
			*order = append(*order, c.Signal)
			continue
		}

		buf.B = append(buf.B, opEnterScope)
		buf.B = appendName(buf.B, c.Name)
		if err = writeScope(buf, hier, c.Scope, order); err != nil {
			return err
		}
		buf.B = append(buf.B, opLeaveScope)
	}

	return nil
}

func appendName(buf []byte, name string) []byte {
	buf = binary.AppendUvarint(buf, uint64(len(name)))

	return append(buf, name...)
}

// appendValue packs one transition value. The builder already enforced that
// the value's tag matches the signal's kind, so the accessors cannot miss.
func appendValue(buf *pool.ByteBuffer, engine endian.EndianEngine, kind sigindex.SignalKind, v logic.Value) {
	switch kind {
	case sigindex.KindReal:
		rv, _ := v.Real()
		buf.B = engine.AppendUint64(buf.B, math.Float64bits(rv))
	case sigindex.KindInteger:
		iv, _ := v.Int()
		buf.B = engine.AppendUint64(buf.B, uint64(iv))
	case sigindex.KindString:
		sv, _ := v.Str()
		buf.B = binary.AppendUvarint(buf.B, uint64(len(sv)))
		buf.B = append(buf.B, sv...)
	default:
		vec, _ := v.Vector()
		buf.B = append(buf.B, vec.Bytes()...)
	}
}
