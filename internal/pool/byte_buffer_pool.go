// Package pool provides pooled byte buffers for snapshot section encoding,
// keeping large payload assembly allocation-free across repeated saves.
package pool

import (
	"io"
	"sync"
)

const (
	// SectionBufferDefaultSize sizes fresh buffers for typical per-section
	// payloads.
	SectionBufferDefaultSize = 1024 * 16 // 16KiB
	// SectionBufferMaxThreshold discards returned buffers above this
	// capacity to avoid retaining one huge trace's worth of memory.
	SectionBufferMaxThreshold = 1024 * 1024 * 8 // 8MiB
)

// ByteBuffer is an append-oriented byte slice wrapper.
type ByteBuffer struct {
	// B is the underlying byte slice, exposed so encoders can use the
	// binary.AppendByteOrder helpers directly.
	B []byte
}

// NewByteBuffer creates a buffer with the given initial capacity.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{B: make([]byte, 0, defaultSize)}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Reset empties the buffer, retaining its allocation.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Len returns the current length.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Write appends data, growing as needed. It never fails; the error return
// satisfies io.Writer.
func (bb *ByteBuffer) Write(data []byte) (int, error) {
	bb.B = append(bb.B, data...)

	return len(data), nil
}

// WriteByte appends a single byte.
func (bb *ByteBuffer) WriteByte(b byte) error {
	bb.B = append(bb.B, b)

	return nil
}

// WriteTo writes the buffer contents to w.
func (bb *ByteBuffer) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(bb.B)

	return int64(n), err
}

// ByteBufferPool pools ByteBuffers, discarding ones that grew past a
// threshold so one oversized trace does not pin memory forever.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewByteBufferPool creates a pool handing out buffers of defaultSize
// capacity.
func NewByteBufferPool(defaultSize, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any {
				return NewByteBuffer(defaultSize)
			},
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves a buffer from the pool.
func (bbp *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := bbp.pool.Get().(*ByteBuffer)

	return bb
}

// Put returns a buffer to the pool for reuse.
func (bbp *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}
	if bbp.maxThreshold > 0 && cap(bb.B) > bbp.maxThreshold {
		return
	}

	bb.Reset()
	bbp.pool.Put(bb)
}

var sectionDefaultPool = NewByteBufferPool(SectionBufferDefaultSize, SectionBufferMaxThreshold)

// GetSectionBuffer retrieves a buffer from the default section pool.
func GetSectionBuffer() *ByteBuffer {
	return sectionDefaultPool.Get()
}

// PutSectionBuffer returns a buffer to the default section pool.
func PutSectionBuffer(bb *ByteBuffer) {
	sectionDefaultPool.Put(bb)
}
