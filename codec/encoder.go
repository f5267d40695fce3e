package codec

import (
	"fmt"
	"strconv"

	"github.com/arloliu/lineproto/errs"
	"github.com/arloliu/lineproto/point"
	"github.com/arloliu/lineproto/stream"
)

// Encoder emits line protocol text for points through a stream.Writer.
// Records are separated by a single line feed; no trailing separator is
// written after the final record.
type Encoder struct {
	w       stream.Writer
	scratch []byte
	wrote   bool
}

// NewEncoder creates an Encoder writing to w.
func NewEncoder(w stream.Writer) *Encoder {
	return &Encoder{w: w, scratch: make([]byte, 0, 256)}
}

// Encode emits one record. The structural invariants are validated before
// any bytes reach the writer: an empty measurement fails with
// ErrEmptyMeasurement, and a field set with no non-absent entry fails with
// ErrMissingField. Absent tag and field entries are skipped entirely.
func (e *Encoder) Encode(p point.Point) error {
	if p.Measurement == "" {
		return fmt.Errorf("%w: point has no measurement name", errs.ErrEmptyMeasurement)
	}
	// A leading '#' cannot be escaped and would parse back as a comment line.
	if p.Measurement[0] == hashSign {
		return fmt.Errorf("measurement %q begins with the comment marker", p.Measurement)
	}
	if !p.HasFields() {
		return fmt.Errorf("%w: point %q has no non-absent field", errs.ErrMissingField, p.Measurement)
	}

	buf := e.scratch[:0]
	if e.wrote {
		buf = append(buf, newline)
	}

	buf = appendEscaped(buf, p.Measurement, escapeMeasurement)

	var err error
	for _, kv := range p.Tags {
		if kv.Value.IsAbsent() {
			continue
		}
		buf = append(buf, comma)
		buf = appendEscaped(buf, kv.Key, escapeKey)
		buf = append(buf, equals)
		buf, err = appendValue(buf, kv.Value, false)
		if err != nil {
			return fmt.Errorf("tag %q: %w", kv.Key, err)
		}
	}

	buf = append(buf, space)
	first := true
	for _, kv := range p.Fields {
		if kv.Value.IsAbsent() {
			continue
		}
		if !first {
			buf = append(buf, comma)
		}
		first = false
		buf = appendEscaped(buf, kv.Key, escapeKey)
		buf = append(buf, equals)
		buf, err = appendValue(buf, kv.Value, true)
		if err != nil {
			return fmt.Errorf("field %q: %w", kv.Key, err)
		}
	}

	if p.Timestamp != nil {
		buf = append(buf, space)
		buf = strconv.AppendInt(buf, *p.Timestamp, 10)
	}

	e.scratch = buf[:0]

	if _, err := e.w.Write(buf); err != nil {
		return &errs.IOError{Err: err}
	}
	e.wrote = true

	return nil
}

// Flush commits buffered output to the underlying sink.
func (e *Encoder) Flush() error {
	if err := e.w.Flush(); err != nil {
		return &errs.IOError{Err: err}
	}

	return nil
}
