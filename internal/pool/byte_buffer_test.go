package pool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestByteBuffer_Writes(t *testing.T) {
	bb := NewByteBuffer(8)
	require.Zero(t, bb.Len())
	require.Equal(t, 8, bb.Cap())

	bb.MustWrite([]byte("abc"))
	bb.MustWriteByte(',')
	bb.MustWriteString("def")

	require.Equal(t, "abc,def", bb.String())
	require.Equal(t, []byte("abc,def"), bb.Bytes())
	require.Equal(t, 7, bb.Len())
}

func TestByteBuffer_Truncate(t *testing.T) {
	bb := NewByteBuffer(8)
	bb.MustWriteString("abcdef")

	bb.Truncate(3)
	require.Equal(t, "abc", bb.String())

	bb.Truncate(0)
	require.Zero(t, bb.Len())

	require.Panics(t, func() { bb.Truncate(1) })
	require.Panics(t, func() { bb.Truncate(-1) })
}

func TestByteBuffer_Reset(t *testing.T) {
	bb := NewByteBuffer(8)
	bb.MustWriteString("some content that grows the buffer")

	grown := bb.Cap()
	bb.Reset()
	require.Zero(t, bb.Len())
	require.Equal(t, grown, bb.Cap())
}

func TestLineBufferPool(t *testing.T) {
	bb := GetLineBuffer()
	require.Zero(t, bb.Len())
	require.GreaterOrEqual(t, bb.Cap(), LineBufferDefaultSize)

	bb.MustWriteString("m f=1i")
	PutLineBuffer(bb)

	// Pooled buffers come back empty.
	bb = GetLineBuffer()
	require.Zero(t, bb.Len())
	PutLineBuffer(bb)

	// Oversized buffers are dropped without panicking.
	big := NewByteBuffer(LineBufferMaxThreshold + 1)
	PutLineBuffer(big)
	PutLineBuffer(nil)
}
