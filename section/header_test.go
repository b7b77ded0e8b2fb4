package section

import (
	"testing"

	"github.com/evholm/wavescope/endian"
	"github.com/evholm/wavescope/errs"
	"github.com/evholm/wavescope/format"
	"github.com/stretchr/testify/require"
)

func sampleHeader() Header {
	return Header{
		EndTime:            123456789,
		SignalCount:        42,
		IndexOffset:        HeaderSize,
		HierarchyOffset:    HeaderSize + 42*IndexEntrySize,
		TimePayloadOffset:  5000,
		ValuePayloadOffset: 9000,
		TimescaleFactor:    10,
		TimescaleUnit:      -12,
		Compression:        format.CompressionZstd,
	}
}

func TestHeader_RoundTrip(t *testing.T) {
	t.Run("little endian", func(t *testing.T) {
		h := sampleHeader()
		buf := h.Append(nil)
		require.Len(t, buf, HeaderSize)

		var got Header
		require.NoError(t, got.Parse(buf))
		require.Equal(t, h, got)
	})

	t.Run("big endian", func(t *testing.T) {
		h := sampleHeader()
		h.BigEndian = true
		buf := h.Append(nil)
		require.Len(t, buf, HeaderSize)

		var got Header
		require.NoError(t, got.Parse(buf))
		require.Equal(t, h, got)
	})
}

func TestHeader_Parse_Errors(t *testing.T) {
	h := sampleHeader()
	buf := h.Append(nil)

	t.Run("short input", func(t *testing.T) {
		var got Header
		require.ErrorIs(t, got.Parse(buf[:HeaderSize-1]), errs.ErrInvalidHeaderSize)
	})

	t.Run("wrong magic", func(t *testing.T) {
		bad := append([]byte(nil), buf...)
		bad[1] ^= 0xff
		var got Header
		require.ErrorIs(t, got.Parse(bad), errs.ErrInvalidMagic)
	})

	t.Run("unsupported version", func(t *testing.T) {
		bad := append([]byte(nil), buf...)
		bad[2] = Version + 1
		var got Header
		require.ErrorIs(t, got.Parse(bad), errs.ErrUnsupportedVersion)
	})
}

func TestHeader_MagicIsPositionFixed(t *testing.T) {
	le := sampleHeader()
	be := sampleHeader()
	be.BigEndian = true

	lb := le.Append(nil)
	bb := be.Append(nil)

	// A reader must identify the file before knowing the byte order.
	require.Equal(t, lb[:3], bb[:3])
}

func TestIndexEntry_RoundTrip(t *testing.T) {
	e := IndexEntry{
		Width:       12,
		Count:       1000,
		TimeOffset:  64,
		TimeLength:  1500,
		ValueOffset: 4096,
		ValueLength: 4000,
		Kind:        3,
	}

	for _, engine := range []endian.EndianEngine{endian.GetLittleEndianEngine(), endian.GetBigEndianEngine()} {
		buf := e.Append(nil, engine)
		require.Len(t, buf, IndexEntrySize)

		var got IndexEntry
		require.NoError(t, got.Parse(buf, engine))
		require.Equal(t, e, got)
	}
}

func TestIndexEntry_Parse_Short(t *testing.T) {
	var got IndexEntry
	err := got.Parse(make([]byte, IndexEntrySize-1), endian.GetLittleEndianEngine())
	require.ErrorIs(t, err, errs.ErrCorruptSnapshot)
}
