package stream

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSliceReader_PeekAdvance(t *testing.T) {
	r := NewSliceReader([]byte("ab"))

	b, err := r.Peek()
	require.NoError(t, err)
	require.Equal(t, byte('a'), b)

	// Peek does not consume.
	b, err = r.Peek()
	require.NoError(t, err)
	require.Equal(t, byte('a'), b)

	r.Advance()
	b, err = r.Peek()
	require.NoError(t, err)
	require.Equal(t, byte('b'), b)

	r.Advance()
	_, err = r.Peek()
	require.ErrorIs(t, err, io.EOF)

	// Advancing past the end is a no-op.
	r.Advance()
	require.Equal(t, 2, r.Pos().Offset)
}

func TestReader_PositionTracking(t *testing.T) {
	const input = "ab\ncd\n\nx"

	r := NewSliceReader([]byte(input))
	require.Equal(t, Position{Offset: 0, Line: 1, Column: 1}, r.Pos())

	consume := func(n int) {
		for range n {
			r.Advance()
		}
	}

	consume(2) // "ab"
	require.Equal(t, Position{Offset: 2, Line: 1, Column: 3}, r.Pos())

	consume(1) // "\n"
	require.Equal(t, Position{Offset: 3, Line: 2, Column: 1}, r.Pos())

	consume(3) // "cd\n"
	require.Equal(t, Position{Offset: 6, Line: 3, Column: 1}, r.Pos())

	consume(2) // "\nx"
	require.Equal(t, Position{Offset: 8, Line: 4, Column: 2}, r.Pos())
}

// Both cursor implementations must report identical positions for identical
// input, byte for byte.
func TestReader_PositionParity(t *testing.T) {
	const input = "metric,tag=a field=1i 123\nnext field=2u\n# comment\nlast f=1.5"

	slice := NewSliceReader([]byte(input))
	buffered := NewIOReader(strings.NewReader(input))

	for i := 0; ; i++ {
		require.Equal(t, slice.Pos(), buffered.Pos(), "position diverged at step %d", i)

		sb, serr := slice.Peek()
		bb, berr := buffered.Peek()
		if errors.Is(serr, io.EOF) {
			require.ErrorIs(t, berr, io.EOF)
			break
		}
		require.NoError(t, serr)
		require.NoError(t, berr)
		require.Equal(t, sb, bb)

		slice.Advance()
		buffered.Advance()
	}
}

type failingReader struct {
	data []byte
	err  error
}

func (f *failingReader) Read(p []byte) (int, error) {
	if len(f.data) == 0 {
		return 0, f.err
	}
	n := copy(p, f.data)
	f.data = f.data[n:]

	return n, nil
}

func TestIOReader_SourceFailure(t *testing.T) {
	sourceErr := errors.New("connection reset")
	r := NewIOReader(&failingReader{data: []byte("ab"), err: sourceErr})

	b, err := r.Peek()
	require.NoError(t, err)
	require.Equal(t, byte('a'), b)

	r.Advance()
	r.Advance()

	_, err = r.Peek()
	require.ErrorIs(t, err, sourceErr)

	// The failure is sticky and position stops advancing.
	pos := r.Pos()
	r.Advance()
	require.Equal(t, pos, r.Pos())
}

func TestNewStringReader(t *testing.T) {
	r := NewStringReader("x")
	b, err := r.Peek()
	require.NoError(t, err)
	require.Equal(t, byte('x'), b)
}
