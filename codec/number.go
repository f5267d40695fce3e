package codec

import (
	"fmt"
	"math"
	"strconv"

	"github.com/arloliu/lineproto/errs"
	"github.com/arloliu/lineproto/point"
)

// appendFloat appends the shortest decimal representation that round-trips
// exactly. The output always contains a decimal point or exponent marker so
// it stays lexically distinguishable from an integer token.
func appendFloat(dst []byte, f float64) ([]byte, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("%w: %v", errs.ErrNonFiniteFloat, f)
	}

	start := len(dst)
	dst = strconv.AppendFloat(dst, f, 'g', -1, 64)
	if !hasFloatMarker(dst[start:]) {
		dst = append(dst, '.', '0')
	}

	return dst, nil
}

func hasFloatMarker(b []byte) bool {
	for _, c := range b {
		if c == '.' || c == 'e' || c == 'E' {
			return true
		}
	}

	return false
}

// parseBoolToken maps the boolean literals the grammar accepts. Canonical
// output is always `true` or `false`; the abbreviated and capitalized forms
// are accepted on input only.
func parseBoolToken(tok string) (value, ok bool) {
	switch tok {
	case "t", "T", "true", "True", "TRUE":
		return true, true
	case "f", "F", "false", "False", "FALSE":
		return false, true
	}

	return false, false
}

// isIntToken reports whether tok is an optional minus sign followed by one
// or more decimal digits.
func isIntToken(tok string) bool {
	if len(tok) > 0 && tok[0] == '-' {
		tok = tok[1:]
	}

	return isDigits(tok)
}

func isDigits(tok string) bool {
	if len(tok) == 0 {
		return false
	}
	for i := 0; i < len(tok); i++ {
		if tok[i] < '0' || tok[i] > '9' {
			return false
		}
	}

	return true
}

// isFloatToken validates the decimal float grammar by hand so that forms
// strconv accepts but the wire format does not (hex floats, "inf", "nan")
// are rejected: [-]digits[.digits][(e|E)[+|-]digits], with at least one
// digit around a decimal point.
func isFloatToken(tok string) bool {
	i := 0
	if i < len(tok) && tok[i] == '-' {
		i++
	}

	digits := 0
	for i < len(tok) && tok[i] >= '0' && tok[i] <= '9' {
		i++
		digits++
	}

	if i < len(tok) && tok[i] == '.' {
		i++
		for i < len(tok) && tok[i] >= '0' && tok[i] <= '9' {
			i++
			digits++
		}
	}

	if digits == 0 {
		return false
	}

	if i < len(tok) && (tok[i] == 'e' || tok[i] == 'E') {
		i++
		if i < len(tok) && (tok[i] == '+' || tok[i] == '-') {
			i++
		}
		expDigits := 0
		for i < len(tok) && tok[i] >= '0' && tok[i] <= '9' {
			i++
			expDigits++
		}
		if expDigits == 0 {
			return false
		}
	}

	return i == len(tok)
}

// parseFieldToken classifies a bare (unquoted) field value token by its
// lexical form: `-?digits i` is a signed integer, `digits u` is an unsigned
// integer, a boolean literal is a boolean, and a decimal numeric form is a
// float. Any other token is untyped and therefore a syntax error for the
// caller; there is no implicit string fallback.
func parseFieldToken(tok string) (point.Value, bool) {
	if len(tok) == 0 {
		return point.Value{}, false
	}

	switch last := tok[len(tok)-1]; last {
	case 'i':
		body := tok[:len(tok)-1]
		if !isIntToken(body) {
			return point.Value{}, false
		}
		n, err := strconv.ParseInt(body, 10, 64)
		if err != nil {
			return point.Value{}, false
		}

		return point.IntegerValue(n), true
	case 'u':
		body := tok[:len(tok)-1]
		if !isDigits(body) {
			return point.Value{}, false
		}
		n, err := strconv.ParseUint(body, 10, 64)
		if err != nil {
			return point.Value{}, false
		}

		return point.UnsignedValue(n), true
	}

	if b, ok := parseBoolToken(tok); ok {
		return point.BooleanValue(b), true
	}

	if isFloatToken(tok) {
		f, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return point.Value{}, false
		}

		return point.FloatValue(f), true
	}

	return point.Value{}, false
}

// inferTagValue types a tag value token the way the typed field grammar
// would, falling back to text for anything that is not a number or boolean
// literal. This keeps typed tags stable across a serialize/deserialize
// round trip.
func inferTagValue(tok string) point.Value {
	if v, ok := parseFieldToken(tok); ok {
		return v
	}

	return point.TextValue(tok)
}

// appendValue appends the wire form of a non-absent value for the given
// element: field text is double-quoted, tag text is bare (escaped by the
// caller), numbers carry their type suffix, booleans are canonical
// `true`/`false`.
func appendValue(dst []byte, v point.Value, quoted bool) ([]byte, error) {
	switch v.Kind() {
	case point.KindFloat:
		f, _ := v.Float64()
		return appendFloat(dst, f)
	case point.KindInteger:
		i, _ := v.Int64()
		return append(strconv.AppendInt(dst, i, 10), 'i'), nil
	case point.KindUnsigned:
		u, _ := v.Uint64()
		return append(strconv.AppendUint(dst, u, 10), 'u'), nil
	case point.KindBoolean:
		b, _ := v.Bool()
		return strconv.AppendBool(dst, b), nil
	case point.KindText:
		s, _ := v.Text()
		if quoted {
			return appendQuoted(dst, s), nil
		}

		return appendEscaped(dst, s, escapeKey), nil
	default:
		return nil, fmt.Errorf("cannot format %s value", v.Kind())
	}
}
