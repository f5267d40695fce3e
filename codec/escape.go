package codec

// Reserved bytes of the line protocol grammar.
const (
	backslash = '\\'
	comma     = ','
	space     = ' '
	tab       = '\t'
	equals    = '='
	quote     = '"'
	newline   = '\n'
	carriage  = '\r'
	hashSign  = '#'
)

// escapeClass selects the reserved-character set for one element class.
type escapeClass uint8

const (
	// escapeMeasurement covers the measurement name: comma and space.
	escapeMeasurement escapeClass = iota

	// escapeKey covers tag keys, tag values, and field keys: comma, space,
	// and the key/value separator.
	escapeKey
)

// reserved reports whether b must be backslash-escaped in the given class.
func reserved(class escapeClass, b byte) bool {
	switch class {
	case escapeMeasurement:
		return b == comma || b == space
	case escapeKey:
		return b == comma || b == space || b == equals
	default:
		return false
	}
}

// appendEscaped appends s with every reserved byte of the class prefixed by
// a backslash. Escaping always runs in this direction: backslash followed
// by the reserved character.
func appendEscaped(dst []byte, s string, class escapeClass) []byte {
	for i := 0; i < len(s); i++ {
		if reserved(class, s[i]) {
			dst = append(dst, backslash)
		}
		dst = append(dst, s[i])
	}

	return dst
}

// appendQuoted appends s as a double-quoted field string value with `"` and
// `\` escaped.
func appendQuoted(dst []byte, s string) []byte {
	dst = append(dst, quote)
	for i := 0; i < len(s); i++ {
		if s[i] == quote || s[i] == backslash {
			dst = append(dst, backslash)
		}
		dst = append(dst, s[i])
	}

	return append(dst, quote)
}
