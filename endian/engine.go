// Package endian provides byte order utilities for the snapshot codec.
//
// It combines the ByteOrder and AppendByteOrder interfaces of the standard
// encoding/binary package into a single EndianEngine, so section writers can
// both read fixed-offset fields and append without a scratch buffer.
//
// Snapshots are written little-endian; the big-endian engine exists for
// interoperability with captures produced on big-endian hosts.
package endian

import (
	"encoding/binary"
	"unsafe"
)

// EndianEngine combines ByteOrder and AppendByteOrder from encoding/binary.
// It is satisfied by binary.LittleEndian and binary.BigEndian.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// CheckEndianness uses a fixed integer value to determine the host's byte
// order.
func CheckEndianness() binary.ByteOrder {
	// 0x0100 is 256. For a little-endian system the LSB (0x00) comes
	// first; for a big-endian system the MSB (0x01) does.
	var i uint16 = 0x0100
	b := (*[2]byte)(unsafe.Pointer(&i))
	if b[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

func IsNativeLittleEndian() bool {
	return CheckEndianness() == binary.LittleEndian
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}
