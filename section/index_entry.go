package section

import (
	"github.com/evholm/wavescope/endian"
	"github.com/evholm/wavescope/errs"
)

// IndexEntrySize is the fixed byte length of one signal index entry.
const IndexEntrySize = 28

// IndexEntry describes where one signal's data lives inside the
// decompressed time and value payloads. Entries appear in handle order, so
// the entry at position i belongs to handle i.
//
// TimeLength and ValueLength are byte lengths, not element counts; the
// value payload is variable-stride for string signals so a length field is
// required to slice it without decoding.
type IndexEntry struct {
	Width       uint32
	Count       uint32
	TimeOffset  uint32
	TimeLength  uint32
	ValueOffset uint32
	ValueLength uint32
	Kind        uint8
}

// Append serializes the entry using the given byte order.
func (e *IndexEntry) Append(buf []byte, engine endian.EndianEngine) []byte {
	buf = engine.AppendUint32(buf, e.Width)
	buf = engine.AppendUint32(buf, e.Count)
	buf = engine.AppendUint32(buf, e.TimeOffset)
	buf = engine.AppendUint32(buf, e.TimeLength)
	buf = engine.AppendUint32(buf, e.ValueOffset)
	buf = engine.AppendUint32(buf, e.ValueLength)
	buf = append(buf, e.Kind, 0, 0, 0)

	return buf
}

// Parse reads the entry from data, which must hold at least IndexEntrySize
// bytes.
func (e *IndexEntry) Parse(data []byte, engine endian.EndianEngine) error {
	if len(data) < IndexEntrySize {
		return errs.ErrCorruptSnapshot
	}

	e.Width = engine.Uint32(data[0:4])
	e.Count = engine.Uint32(data[4:8])
	e.TimeOffset = engine.Uint32(data[8:12])
	e.TimeLength = engine.Uint32(data[12:16])
	e.ValueOffset = engine.Uint32(data[16:20])
	e.ValueLength = engine.Uint32(data[20:24])
	e.Kind = data[24]

	return nil
}
