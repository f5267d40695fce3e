// Package bind defines the structured-binding contract between
// caller-defined aggregate types and the fixed point shape of the line
// protocol: measurement, tags, fields, timestamp.
//
// The contract is an explicit pair of interfaces rather than reflection: a
// type enumerates its component name/value pairs into a Point to marshal,
// and accepts them back from a parsed Point to unmarshal, applying the
// Value coercion accessors (point.Value.Bool and friends) where its static
// types differ from the parsed kinds.
package bind

import (
	"errors"
	"fmt"
	"io"

	"github.com/arloliu/lineproto/codec"
	"github.com/arloliu/lineproto/errs"
	"github.com/arloliu/lineproto/point"
	"github.com/arloliu/lineproto/stream"
)

// Marshaler is implemented by types that can describe themselves as a line
// protocol point. MarshalPoint populates p with the measurement, tag and
// field entries, and optional timestamp.
type Marshaler interface {
	MarshalPoint(p *point.Point) error
}

// Unmarshaler is implemented by types that can populate themselves from a
// parsed point.
type Unmarshaler interface {
	UnmarshalPoint(p point.Point) error
}

// Marshal builds a Point from m.
func Marshal(m Marshaler) (point.Point, error) {
	var p point.Point
	if err := m.MarshalPoint(&p); err != nil {
		return point.Point{}, fmt.Errorf("marshal point: %w", err)
	}

	return p, nil
}

// Unmarshal applies a parsed point to u.
func Unmarshal(p point.Point, u Unmarshaler) error {
	return u.UnmarshalPoint(p)
}

// Encode serializes m as one line protocol record.
func Encode(m Marshaler) (string, error) {
	p, err := Marshal(m)
	if err != nil {
		return "", err
	}

	buf := stream.NewBuffer()
	defer buf.Release()

	if err := codec.NewEncoder(buf).Encode(p); err != nil {
		return "", err
	}

	return buf.String(), nil
}

// Decode parses the first record of s into u.
func Decode(s string, u Unmarshaler) error {
	dec := codec.NewDecoder(stream.NewStringReader(s))

	p, err := dec.Next()
	if errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: no records to decode", errs.ErrEmptyInput)
	}
	if err != nil {
		return err
	}

	return u.UnmarshalPoint(p)
}
