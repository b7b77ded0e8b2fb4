// Package section defines the fixed-size binary sections of the trace
// snapshot format: the file header and the per-signal index entries.
//
// Snapshot layout:
//
//	[Header 48B][Index N×28B][Hierarchy][Time payload][Value payload]
//
// The header and index are uncompressed; the three trailing sections are
// each independently compressed with the codec named in the header. Index
// offsets address the decompressed payloads.
package section

import (
	"github.com/evholm/wavescope/endian"
	"github.com/evholm/wavescope/errs"
	"github.com/evholm/wavescope/format"
)

const (
	// HeaderSize is the fixed byte length of the snapshot header.
	HeaderSize = 48

	// MagicNumber identifies a wavescope snapshot ("WS" little-endian).
	MagicNumber uint16 = 0x5753

	// Version is the current snapshot format version.
	Version = 1

	// flagBigEndian marks payload fields written big-endian.
	flagBigEndian = 0x01
)

// Header is the fixed-size section at the start of a snapshot.
type Header struct {
	EndTime            uint64
	SignalCount        uint32
	IndexOffset        uint32
	HierarchyOffset    uint32
	TimePayloadOffset  uint32
	ValuePayloadOffset uint32
	TimescaleFactor    uint32
	TimescaleUnit      int8
	Compression        format.CompressionType
	BigEndian          bool
}

// Engine returns the byte-order engine matching the header's endianness
// flag.
func (h *Header) Engine() endian.EndianEngine {
	if h.BigEndian {
		return endian.GetBigEndianEngine()
	}

	return endian.GetLittleEndianEngine()
}

// Append serializes the header. The magic, version and flag bytes are
// position-fixed and endian-independent so a reader can detect the byte
// order before decoding anything else.
func (h *Header) Append(buf []byte) []byte {
	engine := h.Engine()

	buf = append(buf, byte(MagicNumber&0xff), byte(MagicNumber>>8), Version, h.flags())
	buf = append(buf, byte(h.Compression), 0, 0, 0)
	buf = engine.AppendUint32(buf, h.SignalCount)
	buf = engine.AppendUint32(buf, h.IndexOffset)
	buf = engine.AppendUint32(buf, h.HierarchyOffset)
	buf = engine.AppendUint32(buf, h.TimePayloadOffset)
	buf = engine.AppendUint32(buf, h.ValuePayloadOffset)
	buf = engine.AppendUint64(buf, h.EndTime)
	buf = engine.AppendUint32(buf, h.TimescaleFactor)
	// Unit byte plus reserved padding up to HeaderSize.
	buf = append(buf, byte(h.TimescaleUnit), 0, 0, 0, 0, 0, 0, 0)

	return buf
}

func (h *Header) flags() byte {
	if h.BigEndian {
		return flagBigEndian
	}

	return 0
}

// Parse reads a header from data, validating magic, version and size.
func (h *Header) Parse(data []byte) error {
	if len(data) < HeaderSize {
		return errs.ErrInvalidHeaderSize
	}
	if uint16(data[0])|uint16(data[1])<<8 != MagicNumber {
		return errs.ErrInvalidMagic
	}
	if data[2] != Version {
		return errs.ErrUnsupportedVersion
	}

	h.BigEndian = data[3]&flagBigEndian != 0
	h.Compression = format.CompressionType(data[4])

	engine := h.Engine()
	h.SignalCount = engine.Uint32(data[8:12])
	h.IndexOffset = engine.Uint32(data[12:16])
	h.HierarchyOffset = engine.Uint32(data[16:20])
	h.TimePayloadOffset = engine.Uint32(data[20:24])
	h.ValuePayloadOffset = engine.Uint32(data[24:28])
	h.EndTime = engine.Uint64(data[28:36])
	h.TimescaleFactor = engine.Uint32(data[36:40])
	h.TimescaleUnit = int8(data[40])

	return nil
}
