// Package stream provides the byte cursor and sink abstractions the codec
// parses from and emits to: a zero-copy slice cursor and a buffered cursor
// over an arbitrary io.Reader on the input side, and a pooled growable
// buffer and a buffered io.Writer sink on the output side.
//
// Both cursor implementations maintain identical absolute offset, line, and
// column counters, so a position reported in an error means the same thing
// regardless of the byte source.
package stream

import (
	"bufio"
	"fmt"
	"io"
)

// Position locates a byte in the input. Offset counts consumed bytes from
// the start of the input; Line and Column are 1-based, with a line feed
// incrementing Line and resetting Column.
type Position struct {
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("offset %d (line %d, column %d)", p.Offset, p.Line, p.Column)
}

func startPosition() Position {
	return Position{Line: 1, Column: 1}
}

// advance moves the position past one consumed byte.
func (p *Position) advance(b byte) {
	p.Offset++
	if b == '\n' {
		p.Line++
		p.Column = 1
	} else {
		p.Column++
	}
}

// Reader is a pull cursor over a byte source.
//
// Peek returns the next byte without consuming it, io.EOF at end of input,
// or the underlying source failure. Advance consumes one byte and updates
// the position counters; it is a no-op at end of input.
type Reader interface {
	Peek() (byte, error)
	Advance()
	Pos() Position
}

// SliceReader is a zero-copy cursor over an in-memory byte slice.
type SliceReader struct {
	data []byte
	pos  Position
}

var _ Reader = (*SliceReader)(nil)

// NewSliceReader creates a cursor over data.
func NewSliceReader(data []byte) *SliceReader {
	return &SliceReader{data: data, pos: startPosition()}
}

// NewStringReader creates a cursor over s without copying it.
func NewStringReader(s string) *SliceReader {
	return &SliceReader{data: []byte(s), pos: startPosition()}
}

func (r *SliceReader) Peek() (byte, error) {
	if r.pos.Offset >= len(r.data) {
		return 0, io.EOF
	}

	return r.data[r.pos.Offset], nil
}

func (r *SliceReader) Advance() {
	if r.pos.Offset >= len(r.data) {
		return
	}

	r.pos.advance(r.data[r.pos.Offset])
}

func (r *SliceReader) Pos() Position {
	return r.pos
}

// IOReader is a buffered cursor over an arbitrary io.Reader. Position
// counters are maintained as bytes are consumed, not as they are buffered,
// so reported positions match SliceReader byte for byte.
type IOReader struct {
	br  *bufio.Reader
	pos Position
	err error
}

var _ Reader = (*IOReader)(nil)

// NewIOReader creates a buffered cursor over r.
func NewIOReader(r io.Reader) *IOReader {
	return &IOReader{br: bufio.NewReader(r), pos: startPosition()}
}

func (r *IOReader) Peek() (byte, error) {
	if r.err != nil {
		return 0, r.err
	}

	b, err := r.br.Peek(1)
	if err != nil {
		r.err = err
		return 0, err
	}

	return b[0], nil
}

func (r *IOReader) Advance() {
	if r.err != nil {
		return
	}

	b, err := r.br.ReadByte()
	if err != nil {
		r.err = err
		return
	}

	r.pos.advance(b)
}

func (r *IOReader) Pos() Position {
	return r.pos
}
