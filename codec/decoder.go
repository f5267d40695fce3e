package codec

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"strconv"

	"github.com/arloliu/lineproto/errs"
	"github.com/arloliu/lineproto/point"
	"github.com/arloliu/lineproto/stream"
)

// Decoder parses line protocol text from a stream.Reader, producing one
// Point per non-empty, non-comment line.
//
// The decoder is a single pass state machine over the record grammar:
//
//	record := measurement ("," tag)* WS field ("," field)* (WS timestamp)?
//
// A run of spaces or tabs outside a quoted string is the sole separator
// between the tag set and the field set, and between the field set and the
// timestamp. A line feed terminates the record.
type Decoder struct {
	r           stream.Reader
	skipInvalid bool
	scratch     []byte
}

// DecoderOption configures a Decoder.
type DecoderOption func(*Decoder)

// WithSkipInvalidLines makes Next skip past lines that fail to parse
// instead of returning the syntax error. IO failures are still fatal. The
// default is fail-fast: the first malformed line aborts the call.
func WithSkipInvalidLines() DecoderOption {
	return func(d *Decoder) {
		d.skipInvalid = true
	}
}

// NewDecoder creates a Decoder reading from r.
func NewDecoder(r stream.Reader, opts ...DecoderOption) *Decoder {
	d := &Decoder{r: r, scratch: make([]byte, 0, 64)}
	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Next parses and returns the next record. It returns io.EOF once the
// input is exhausted. Blank lines and lines beginning with `#` are skipped.
func (d *Decoder) Next() (point.Point, error) {
	for {
		if err := d.skipToRecord(); err != nil {
			return point.Point{}, err
		}

		p, err := d.parseRecord()
		if err != nil {
			var syn *errs.SyntaxError
			if d.skipInvalid && errors.As(err, &syn) {
				d.skipLine()
				continue
			}

			return point.Point{}, err
		}

		return p, nil
	}
}

// All returns an iterator over the remaining records. Records already
// yielded are not invalidated by a later failure; after the first error is
// yielded the sequence stops.
func (d *Decoder) All() iter.Seq2[point.Point, error] {
	return func(yield func(point.Point, error) bool) {
		for {
			p, err := d.Next()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				yield(point.Point{}, err)
				return
			}
			if !yield(p, nil) {
				return
			}
		}
	}
}

// peek wraps reader failures other than end-of-input in an IOError carrying
// the offset at which they occurred.
func (d *Decoder) peek() (byte, error) {
	b, err := d.r.Peek()
	if err != nil && !errors.Is(err, io.EOF) {
		return 0, &errs.IOError{Offset: d.r.Pos().Offset, Err: err}
	}

	return b, err
}

func (d *Decoder) syntaxErr(pos stream.Position, sentinel error, format string, args ...any) error {
	return &errs.SyntaxError{
		Offset: pos.Offset,
		Line:   pos.Line,
		Column: pos.Column,
		Msg:    fmt.Sprintf(format, args...),
		Err:    sentinel,
	}
}

// skipToRecord advances past whitespace, blank lines, and comment lines.
// It returns io.EOF if no record follows.
func (d *Decoder) skipToRecord() error {
	for {
		b, err := d.peek()
		if err != nil {
			return err
		}

		switch b {
		case space, tab, newline, carriage:
			d.r.Advance()
		case hashSign:
			if err := d.skipLine(); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

// skipLine consumes up to and including the next line feed.
func (d *Decoder) skipLine() error {
	for {
		b, err := d.peek()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		d.r.Advance()
		if b == newline {
			return nil
		}
	}
}

// parseRecord parses one record starting at the measurement name. The
// trailing line feed, if present, is consumed.
func (d *Decoder) parseRecord() (point.Point, error) {
	var p point.Point

	start := d.r.Pos()
	measurement, err := d.scanEscaped(escapeMeasurement)
	if err != nil {
		return point.Point{}, err
	}
	if measurement == "" {
		return point.Point{}, d.syntaxErr(start, nil, "missing measurement")
	}
	p.Measurement = measurement

	// Tag set: a comma while still in the measurement/tag states begins a
	// new tag.
	for {
		b, err := d.peek()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return point.Point{}, d.syntaxErr(d.r.Pos(), nil, "expected field set, got end of input")
			}

			return point.Point{}, err
		}
		if b != comma {
			break
		}
		d.r.Advance()

		if err := d.parseTag(&p); err != nil {
			return point.Point{}, err
		}
	}

	if err := d.expectSeparator("field set"); err != nil {
		return point.Point{}, err
	}

	// Field set.
	for {
		if err := d.parseField(&p); err != nil {
			return point.Point{}, err
		}

		b, err := d.peek()
		if err != nil || b != comma {
			break
		}
		d.r.Advance()
	}

	if err := d.parseTimestamp(&p); err != nil {
		return point.Point{}, err
	}

	return p, nil
}

func (d *Decoder) parseTag(p *point.Point) error {
	keyPos := d.r.Pos()
	key, err := d.scanEscaped(escapeKey)
	if err != nil {
		return err
	}
	if key == "" {
		return d.syntaxErr(keyPos, nil, "empty tag key")
	}
	if _, dup := p.Tag(key); dup {
		return d.syntaxErr(keyPos, errs.ErrDuplicateKey, "duplicate tag key %q", key)
	}

	if err := d.expectEquals("tag", key); err != nil {
		return err
	}

	valPos := d.r.Pos()
	raw, err := d.scanEscaped(escapeKey)
	if err != nil {
		return err
	}
	if raw == "" {
		return d.syntaxErr(valPos, nil, "empty value for tag %q", key)
	}

	p.AddTag(key, inferTagValue(raw))

	return nil
}

func (d *Decoder) parseField(p *point.Point) error {
	keyPos := d.r.Pos()
	key, err := d.scanEscaped(escapeKey)
	if err != nil {
		return err
	}
	if key == "" {
		return d.syntaxErr(keyPos, nil, "empty field key")
	}
	if _, dup := p.Field(key); dup {
		return d.syntaxErr(keyPos, errs.ErrDuplicateKey, "duplicate field key %q", key)
	}

	if err := d.expectEquals("field", key); err != nil {
		return err
	}

	v, err := d.scanFieldValue(key)
	if err != nil {
		return err
	}

	p.AddField(key, v)

	return nil
}

// parseTimestamp parses the optional trailing timestamp and consumes the
// record terminator.
func (d *Decoder) parseTimestamp(p *point.Point) error {
	b, err := d.peek()
	if errors.Is(err, io.EOF) {
		return nil
	}
	if err != nil {
		return err
	}

	switch b {
	case newline, carriage:
		return d.endRecord()
	case space, tab:
		d.skipBlanks()
	default:
		return d.syntaxErr(d.r.Pos(), nil, "unexpected character %q after field set", b)
	}

	b, err = d.peek()
	if errors.Is(err, io.EOF) {
		return nil
	}
	if err != nil {
		return err
	}
	if b == newline || b == carriage {
		// Trailing whitespace, no timestamp.
		return d.endRecord()
	}

	tokPos := d.r.Pos()
	tok, err := d.scanToken()
	if err != nil {
		return err
	}

	ts, perr := parseTimestampToken(tok)
	if perr != nil {
		return d.syntaxErr(tokPos, nil, "invalid timestamp %q", tok)
	}
	p.SetTimestamp(ts)

	d.skipBlanks()

	return d.endRecord()
}

// endRecord consumes trailing carriage returns and the terminating line
// feed, or accepts end of input.
func (d *Decoder) endRecord() error {
	for {
		b, err := d.peek()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		switch b {
		case carriage:
			d.r.Advance()
		case newline:
			d.r.Advance()
			return nil
		default:
			return d.syntaxErr(d.r.Pos(), nil, "unexpected character %q at end of record", b)
		}
	}
}

func (d *Decoder) expectSeparator(next string) error {
	b, err := d.peek()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return d.syntaxErr(d.r.Pos(), nil, "expected %s, got end of input", next)
		}

		return err
	}
	if b != space && b != tab {
		return d.syntaxErr(d.r.Pos(), nil, "expected %s, got %q", next, b)
	}

	d.skipBlanks()

	return nil
}

func (d *Decoder) expectEquals(element, key string) error {
	b, err := d.peek()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return d.syntaxErr(d.r.Pos(), nil, "expected '=' after %s key %q", element, key)
		}

		return err
	}
	if b != equals {
		return d.syntaxErr(d.r.Pos(), nil, "expected '=' after %s key %q, got %q", element, key, b)
	}
	d.r.Advance()

	return nil
}

// skipBlanks consumes the current run of spaces and tabs.
func (d *Decoder) skipBlanks() {
	for {
		b, err := d.r.Peek()
		if err != nil || (b != space && b != tab) {
			return
		}
		d.r.Advance()
	}
}

// scanEscaped consumes an escaped token of the given element class,
// stopping at the first unescaped reserved byte, whitespace, or line feed.
// A backslash before a reserved byte yields that byte literally; a
// backslash before anything else passes through unchanged.
func (d *Decoder) scanEscaped(class escapeClass) (string, error) {
	buf := d.scratch[:0]

	for {
		b, err := d.peek()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", err
		}

		if b == backslash {
			d.r.Advance()
			nb, nerr := d.peek()
			if errors.Is(nerr, io.EOF) {
				buf = append(buf, backslash)
				break
			}
			if nerr != nil {
				return "", nerr
			}
			if reserved(class, nb) {
				buf = append(buf, nb)
				d.r.Advance()
			} else {
				// Invalid escapes are preserved literally; the next byte is
				// reprocessed on its own.
				buf = append(buf, backslash)
			}

			continue
		}

		if reserved(class, b) || b == tab || b == newline || b == carriage {
			break
		}

		buf = append(buf, b)
		d.r.Advance()
	}

	d.scratch = buf

	return string(buf), nil
}

// scanToken consumes a bare token: everything up to the next unescaped
// comma, blank, or line terminator.
func (d *Decoder) scanToken() (string, error) {
	buf := d.scratch[:0]

	for {
		b, err := d.peek()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", err
		}
		if b == comma || b == space || b == tab || b == newline || b == carriage {
			break
		}

		buf = append(buf, b)
		d.r.Advance()
	}

	d.scratch = buf

	return string(buf), nil
}

// scanFieldValue parses one field value: a double-quoted string or a bare
// typed token.
func (d *Decoder) scanFieldValue(key string) (point.Value, error) {
	start := d.r.Pos()

	b, err := d.peek()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return point.Value{}, d.syntaxErr(start, nil, "missing value for field %q", key)
		}

		return point.Value{}, err
	}

	if b == quote {
		return d.scanQuoted(start)
	}

	tok, err := d.scanToken()
	if err != nil {
		return point.Value{}, err
	}
	if tok == "" {
		return point.Value{}, d.syntaxErr(start, nil, "missing value for field %q", key)
	}

	v, ok := parseFieldToken(tok)
	if !ok {
		return point.Value{}, d.syntaxErr(start, nil, "invalid field value %q", tok)
	}

	return v, nil
}

// scanQuoted parses a double-quoted string value, unescaping `\"` and `\\`.
// Any other backslash sequence is preserved literally. The value may not
// span lines.
func (d *Decoder) scanQuoted(start stream.Position) (point.Value, error) {
	d.r.Advance() // opening quote
	buf := d.scratch[:0]

	for {
		b, err := d.peek()
		if errors.Is(err, io.EOF) {
			return point.Value{}, d.syntaxErr(start, errs.ErrUnterminatedString, "unterminated string value")
		}
		if err != nil {
			return point.Value{}, err
		}

		switch b {
		case quote:
			d.r.Advance()
			d.scratch = buf

			return point.TextValue(string(buf)), nil
		case newline:
			return point.Value{}, d.syntaxErr(start, errs.ErrUnterminatedString, "unterminated string value")
		case backslash:
			d.r.Advance()
			nb, nerr := d.peek()
			if errors.Is(nerr, io.EOF) {
				return point.Value{}, d.syntaxErr(start, errs.ErrUnterminatedString, "unterminated string value")
			}
			if nerr != nil {
				return point.Value{}, nerr
			}
			if nb == quote || nb == backslash {
				buf = append(buf, nb)
				d.r.Advance()
			} else {
				buf = append(buf, backslash)
			}
		default:
			buf = append(buf, b)
			d.r.Advance()
		}
	}
}

func parseTimestampToken(tok string) (int64, error) {
	if !isIntToken(tok) {
		return 0, errors.New("not an integer")
	}

	return strconv.ParseInt(tok, 10, 64)
}
