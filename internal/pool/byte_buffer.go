// Package pool provides pooled scratch buffers for encoding and decoding
// line protocol text.
package pool

import "sync"

const (
	// LineBufferDefaultSize is the initial capacity of a pooled line buffer.
	// A single record is typically well under 1KiB.
	LineBufferDefaultSize = 1024

	// LineBufferMaxThreshold is the largest buffer returned to the pool.
	// Buffers that grew beyond this are dropped to keep the pool lean.
	LineBufferMaxThreshold = 64 * 1024
)

// ByteBuffer is a growable byte buffer with explicit ownership. It is not
// safe for concurrent use; each encode or decode call owns its own buffer.
type ByteBuffer struct {
	B []byte
}

// NewByteBuffer creates a new ByteBuffer with the given initial capacity.
func NewByteBuffer(size int) *ByteBuffer {
	return &ByteBuffer{B: make([]byte, 0, size)}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// String returns the buffer contents as a string.
func (bb *ByteBuffer) String() string {
	return string(bb.B)
}

// Len returns the number of bytes in the buffer.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Cap returns the capacity of the buffer.
func (bb *ByteBuffer) Cap() int {
	return cap(bb.B)
}

// Reset empties the buffer but retains the allocated memory for reuse.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// MustWrite appends data to the buffer, growing it as needed.
func (bb *ByteBuffer) MustWrite(data []byte) {
	bb.B = append(bb.B, data...)
}

// MustWriteByte appends a single byte to the buffer.
func (bb *ByteBuffer) MustWriteByte(b byte) {
	bb.B = append(bb.B, b)
}

// MustWriteString appends a string to the buffer.
func (bb *ByteBuffer) MustWriteString(s string) {
	bb.B = append(bb.B, s...)
}

// Truncate shortens the buffer to n bytes. Panics if n is out of range.
func (bb *ByteBuffer) Truncate(n int) {
	if n < 0 || n > len(bb.B) {
		panic("Truncate: invalid length")
	}
	bb.B = bb.B[:n]
}

var lineBufferPool = sync.Pool{
	New: func() any {
		return NewByteBuffer(LineBufferDefaultSize)
	},
}

// GetLineBuffer fetches an empty ByteBuffer from the pool.
func GetLineBuffer() *ByteBuffer {
	return lineBufferPool.Get().(*ByteBuffer) //nolint:errcheck
}

// PutLineBuffer returns a ByteBuffer to the pool. Oversized buffers are
// dropped so a single huge record does not pin memory forever.
func PutLineBuffer(bb *ByteBuffer) {
	if bb == nil || bb.Cap() > LineBufferMaxThreshold {
		return
	}

	bb.Reset()
	lineBufferPool.Put(bb)
}
