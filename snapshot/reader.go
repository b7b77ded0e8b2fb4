package snapshot

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/evholm/wavescope/compress"
	"github.com/evholm/wavescope/endian"
	"github.com/evholm/wavescope/errs"
	"github.com/evholm/wavescope/logic"
	"github.com/evholm/wavescope/section"
	"github.com/evholm/wavescope/sigindex"
	"github.com/evholm/wavescope/trace"
)

// Read deserializes a snapshot from r.
func Read(r io.Reader) (*trace.Trace, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	return Decode(data)
}

// ReadFile deserializes a snapshot file.
func ReadFile(path string) (*trace.Trace, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return Decode(data)
}

// Decode deserializes a snapshot held in memory.
func Decode(data []byte) (*trace.Trace, error) {
	b := trace.NewBuilder()
	if err := decodeInto(data, b, nil); err != nil {
		return nil, err
	}

	return b.Build()
}

// decodeInto replays a snapshot through b. When perSignal is non-nil it is
// invoked after each signal's transitions, carrying that signal's
// transition count; a non-nil return aborts the replay.
func decodeInto(data []byte, b *trace.Builder, perSignal func(count uint64) error) error {
	var hdr section.Header
	if err := hdr.Parse(data); err != nil {
		return err
	}

	codec, err := compress.GetCodec(hdr.Compression)
	if err != nil {
		return fmt.Errorf("%w: %v", errs.ErrCorruptSnapshot, err)
	}
	engine := hdr.Engine()

	n := int(hdr.SignalCount)
	indexEnd := section.HeaderSize + n*section.IndexEntrySize
	if hdr.IndexOffset != section.HeaderSize ||
		int(hdr.HierarchyOffset) != indexEnd ||
		hdr.TimePayloadOffset < hdr.HierarchyOffset ||
		hdr.ValuePayloadOffset < hdr.TimePayloadOffset ||
		int(hdr.ValuePayloadOffset) > len(data) {
		return fmt.Errorf("%w: inconsistent section offsets", errs.ErrCorruptSnapshot)
	}

	entries := make([]section.IndexEntry, n)
	for i := range entries {
		off := section.HeaderSize + i*section.IndexEntrySize
		if err = entries[i].Parse(data[off:], engine); err != nil {
			return err
		}
	}

	hierData, err := codec.Decompress(data[hdr.HierarchyOffset:hdr.TimePayloadOffset])
	if err != nil {
		return fmt.Errorf("%w: hierarchy section: %v", errs.ErrCorruptSnapshot, err)
	}
	timeData, err := codec.Decompress(data[hdr.TimePayloadOffset:hdr.ValuePayloadOffset])
	if err != nil {
		return fmt.Errorf("%w: time section: %v", errs.ErrCorruptSnapshot, err)
	}
	valueData, err := codec.Decompress(data[hdr.ValuePayloadOffset:])
	if err != nil {
		return fmt.Errorf("%w: value section: %v", errs.ErrCorruptSnapshot, err)
	}

	b.SetTimescale(trace.Timescale{Factor: hdr.TimescaleFactor, Unit: trace.TimeUnit(hdr.TimescaleUnit)})

	handles, err := replayHierarchy(b, hierData, entries)
	if err != nil {
		return err
	}

	for i, hd := range handles {
		e := &entries[i]
		times, sliceErr := slice(timeData, e.TimeOffset, e.TimeLength)
		if sliceErr != nil {
			return sliceErr
		}
		values, sliceErr := slice(valueData, e.ValueOffset, e.ValueLength)
		if sliceErr != nil {
			return sliceErr
		}

		if err = replaySignal(b, hd, e, engine, times, values); err != nil {
			return err
		}
		if perSignal != nil {
			if err = perSignal(uint64(e.Count)); err != nil {
				return err
			}
		}
	}

	return nil
}

// replayHierarchy walks the opcode stream, recreating scopes and signals.
// Signals are declared in stream order, which matches index entry order, so
// entry i supplies the width and kind for the i-th declaration.
func replayHierarchy(b *trace.Builder, data []byte, entries []section.IndexEntry) ([]sigindex.Handle, error) {
	handles := make([]sigindex.Handle, 0, len(entries))
	pos := 0
	for pos < len(data) {
		op := data[pos]
		pos++

		switch op {
		case opLeaveScope:
			if err := b.LeaveScope(); err != nil {
				return nil, fmt.Errorf("%w: %v", errs.ErrCorruptSnapshot, err)
			}
		case opEnterScope, opSignal:
			name, next, err := readName(data, pos)
			if err != nil {
				return nil, err
			}
			pos = next

			if op == opEnterScope {
				b.EnterScope(name)
				continue
			}

			if len(handles) >= len(entries) {
				return nil, fmt.Errorf("%w: more signals than index entries", errs.ErrCorruptSnapshot)
			}
			e := &entries[len(handles)]
			hd, err := b.DeclareSignal(name, int(e.Width), sigindex.SignalKind(e.Kind))
			if err != nil {
				return nil, fmt.Errorf("%w: %v", errs.ErrCorruptSnapshot, err)
			}
			handles = append(handles, hd)
		default:
			return nil, fmt.Errorf("%w: unknown hierarchy opcode 0x%02x", errs.ErrCorruptSnapshot, op)
		}
	}

	if len(handles) != len(entries) {
		return nil, fmt.Errorf("%w: %d signals declared, index has %d", errs.ErrCorruptSnapshot, len(handles), len(entries))
	}

	return handles, nil
}

func replaySignal(b *trace.Builder, hd sigindex.Handle, e *section.IndexEntry, engine endian.EndianEngine, times, values []byte) error {
	stride := logic.BytesFor(int(e.Width))
	kind := sigindex.SignalKind(e.Kind)

	var (
		ts       uint64
		timePos  int
		valuePos int
	)
	for range e.Count {
		delta, n := binary.Uvarint(times[timePos:])
		if n <= 0 {
			return fmt.Errorf("%w: truncated time column", errs.ErrCorruptSnapshot)
		}
		timePos += n
		ts += delta

		v, next, err := readValue(values, valuePos, engine, kind, e.Width, stride)
		if err != nil {
			return err
		}
		valuePos = next

		if err = b.Append(hd, ts, v); err != nil {
			return fmt.Errorf("%w: %v", errs.ErrCorruptSnapshot, err)
		}
	}

	return nil
}

func readValue(data []byte, pos int, engine endian.EndianEngine, kind sigindex.SignalKind, width uint32, stride int) (logic.Value, int, error) {
	switch kind {
	case sigindex.KindReal:
		raw, next, err := readUint64(data, pos, engine)
		if err != nil {
			return logic.Value{}, 0, err
		}

		return logic.RealValue(math.Float64frombits(raw)), next, nil
	case sigindex.KindInteger:
		raw, next, err := readUint64(data, pos, engine)
		if err != nil {
			return logic.Value{}, 0, err
		}

		return logic.IntValue(int64(raw)), next, nil
	case sigindex.KindString:
		s, next, err := readName(data, pos)
		if err != nil {
			return logic.Value{}, 0, err
		}

		return logic.StringValue(s), next, nil
	default:
		if pos+stride > len(data) {
			return logic.Value{}, 0, fmt.Errorf("%w: truncated value column", errs.ErrCorruptSnapshot)
		}

		return logic.VectorValue(logic.View(int(width), data[pos:pos+stride])), pos + stride, nil
	}
}

func readUint64(data []byte, pos int, engine endian.EndianEngine) (uint64, int, error) {
	if pos+8 > len(data) {
		return 0, 0, fmt.Errorf("%w: truncated value column", errs.ErrCorruptSnapshot)
	}

	return engine.Uint64(data[pos : pos+8]), pos + 8, nil
}

func readName(data []byte, pos int) (string, int, error) {
	length, n := binary.Uvarint(data[pos:])
	if n <= 0 {
		return "", 0, fmt.Errorf("%w: truncated name", errs.ErrCorruptSnapshot)
	}
	pos += n
	end := pos + int(length)
	if end > len(data) || end < pos {
		return "", 0, fmt.Errorf("%w: truncated name", errs.ErrCorruptSnapshot)
	}

	return string(data[pos:end]), end, nil
}

func slice(data []byte, off, length uint32) ([]byte, error) {
	end := int(off) + int(length)
	if int(off) > len(data) || end > len(data) {
		return nil, fmt.Errorf("%w: index entry out of payload bounds", errs.ErrCorruptSnapshot)
	}

	return data[off:end], nil
}
