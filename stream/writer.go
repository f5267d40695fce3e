package stream

import (
	"bufio"
	"io"

	"github.com/arloliu/lineproto/internal/pool"
)

// Writer is the sink the encoder emits text into. A Writer is scoped to one
// logical serialize call; reset or flush it explicitly before reuse.
type Writer interface {
	io.Writer
	WriteByte(b byte) error
	WriteString(s string) (int, error)

	// Flush commits buffered bytes to the underlying sink, if any.
	Flush() error
}

// Buffer is an in-memory growable Writer backed by a pooled byte buffer.
type Buffer struct {
	buf *pool.ByteBuffer
}

var _ Writer = (*Buffer)(nil)

// NewBuffer fetches a pooled buffer. Call Release when done to return the
// memory to the pool.
func NewBuffer() *Buffer {
	return &Buffer{buf: pool.GetLineBuffer()}
}

func (b *Buffer) Write(p []byte) (int, error) {
	b.buf.MustWrite(p)
	return len(p), nil
}

func (b *Buffer) WriteByte(c byte) error {
	b.buf.MustWriteByte(c)
	return nil
}

func (b *Buffer) WriteString(s string) (int, error) {
	b.buf.MustWriteString(s)
	return len(s), nil
}

// Flush is a no-op for the in-memory buffer.
func (b *Buffer) Flush() error {
	return nil
}

// Bytes returns the accumulated output. The slice is invalidated by Reset
// and Release.
func (b *Buffer) Bytes() []byte {
	return b.buf.Bytes()
}

// String returns the accumulated output as a string.
func (b *Buffer) String() string {
	return b.buf.String()
}

// Len returns the number of accumulated bytes.
func (b *Buffer) Len() int {
	return b.buf.Len()
}

// Reset discards the accumulated output, keeping the allocation.
func (b *Buffer) Reset() {
	b.buf.Reset()
}

// Release returns the underlying buffer to the pool. The Buffer must not be
// used afterwards.
func (b *Buffer) Release() {
	pool.PutLineBuffer(b.buf)
	b.buf = nil
}

// SinkWriter is a buffered Writer over an arbitrary io.Writer. Bytes
// already flushed to the sink are not retracted when a later record fails;
// callers writing to non-buffered sinks must treat output as possibly
// partial on error.
type SinkWriter struct {
	bw *bufio.Writer
}

var _ Writer = (*SinkWriter)(nil)

// NewSinkWriter creates a buffered writer over w.
func NewSinkWriter(w io.Writer) *SinkWriter {
	return &SinkWriter{bw: bufio.NewWriter(w)}
}

func (s *SinkWriter) Write(p []byte) (int, error) {
	return s.bw.Write(p)
}

func (s *SinkWriter) WriteByte(c byte) error {
	return s.bw.WriteByte(c)
}

func (s *SinkWriter) WriteString(str string) (int, error) {
	return s.bw.WriteString(str)
}

func (s *SinkWriter) Flush() error {
	return s.bw.Flush()
}
