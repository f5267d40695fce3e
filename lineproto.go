// Package lineproto is a bidirectional codec between an in-memory point
// model and InfluxDB Line Protocol text: a flat, single-line format
// encoding a measurement name, an optional tag set, a field set, and an
// optional nanosecond timestamp.
//
//	measurement         tag set             field set             timestamp
//	----------- ------------------- ------------------------- -------------
//	cpu,host=server01,region=us-west usage=23.5,idle=76i       1577836800
//
// # Basic Usage
//
// Encoding a point:
//
//	p := point.New("cpu")
//	p.AddTag("host", point.TextValue("server01"))
//	p.AddField("usage", point.FloatValue(23.5))
//	p.SetTimestamp(1577836800)
//
//	line, _ := lineproto.Encode(p)
//	// cpu,host=server01 usage=23.5 1577836800
//
// Decoding text:
//
//	points, _ := lineproto.DecodeAll("cpu usage=23.5\nmem free=1024i")
//
// Streaming from an arbitrary source:
//
//	dec := lineproto.NewDecoder(resp.Body)
//	for p, err := range dec.All() {
//	    ...
//	}
//
// # Package Structure
//
// This package provides convenient wrappers around the codec package,
// covering the common in-memory cases. For fine-grained control over the
// byte source and sink, construct codec.Decoder and codec.Encoder directly
// with a stream.Reader or stream.Writer.
package lineproto

import (
	"errors"
	"fmt"
	"io"

	"github.com/arloliu/lineproto/codec"
	"github.com/arloliu/lineproto/compress"
	"github.com/arloliu/lineproto/errs"
	"github.com/arloliu/lineproto/point"
	"github.com/arloliu/lineproto/stream"
)

// Encode serializes one point to its canonical text form.
func Encode(p point.Point) (string, error) {
	return EncodeAll([]point.Point{p})
}

// EncodeAll serializes points as newline-separated records, one per point,
// with no trailing separator.
func EncodeAll(points []point.Point) (string, error) {
	buf := stream.NewBuffer()
	defer buf.Release()

	enc := codec.NewEncoder(buf)
	for _, p := range points {
		if err := enc.Encode(p); err != nil {
			return "", err
		}
	}

	return buf.String(), nil
}

// EncodeTo serializes points to w as newline-separated records and flushes.
func EncodeTo(w io.Writer, points ...point.Point) error {
	sink := stream.NewSinkWriter(w)

	enc := codec.NewEncoder(sink)
	for _, p := range points {
		if err := enc.Encode(p); err != nil {
			return err
		}
	}

	return enc.Flush()
}

// Decode parses the first record of s. It fails with ErrEmptyInput if s
// contains no records.
func Decode(s string) (point.Point, error) {
	dec := codec.NewDecoder(stream.NewStringReader(s))

	p, err := dec.Next()
	if errors.Is(err, io.EOF) {
		return point.Point{}, fmt.Errorf("%w: no records to decode", errs.ErrEmptyInput)
	}

	return p, err
}

// DecodeAll parses every record of s, one point per non-empty,
// non-comment line. The first error aborts the call and discards partial
// results; use a Decoder with All for streaming consumption that retains
// prior successes.
func DecodeAll(s string) ([]point.Point, error) {
	dec := codec.NewDecoder(stream.NewStringReader(s))

	var points []point.Point
	for {
		p, err := dec.Next()
		if errors.Is(err, io.EOF) {
			return points, nil
		}
		if err != nil {
			return nil, err
		}

		points = append(points, p)
	}
}

// NewDecoder creates a streaming decoder over r.
func NewDecoder(r io.Reader, opts ...codec.DecoderOption) *codec.Decoder {
	return codec.NewDecoder(stream.NewIOReader(r), opts...)
}

// NewEncoder creates a streaming encoder over w. Call Flush when done.
func NewEncoder(w io.Writer) *codec.Encoder {
	return codec.NewEncoder(stream.NewSinkWriter(w))
}

// EncodeCompressed serializes points and compresses the resulting payload
// with the given algorithm, the shape ingestion endpoints accept for
// compressed request bodies.
func EncodeCompressed(points []point.Point, t compress.Type) ([]byte, error) {
	buf := stream.NewBuffer()
	defer buf.Release()

	enc := codec.NewEncoder(buf)
	for _, p := range points {
		if err := enc.Encode(p); err != nil {
			return nil, err
		}
	}

	c, err := compress.New(t)
	if err != nil {
		return nil, err
	}

	compressed, err := c.Compress(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("compress payload: %w", err)
	}

	// The pass-through codec aliases the pooled buffer; copy before release.
	if t == compress.None {
		compressed = append([]byte(nil), compressed...)
	}

	return compressed, nil
}

// DecodeCompressed decompresses a payload and parses every record in it.
func DecodeCompressed(data []byte, t compress.Type) ([]point.Point, error) {
	c, err := compress.New(t)
	if err != nil {
		return nil, err
	}

	text, err := c.Decompress(data)
	if err != nil {
		return nil, fmt.Errorf("decompress payload: %w", err)
	}

	dec := codec.NewDecoder(stream.NewSliceReader(text))

	var points []point.Point
	for {
		p, err := dec.Next()
		if errors.Is(err, io.EOF) {
			return points, nil
		}
		if err != nil {
			return nil, err
		}

		points = append(points, p)
	}
}
