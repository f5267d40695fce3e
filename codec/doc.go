// Package codec implements the line protocol grammar: the Decoder parses
// text from a stream.Reader into points, and the Encoder emits points as
// text through a stream.Writer.
//
// Both directions share the element-class escaping rules (escape.go) and
// the exact, round-trip-safe numeric formatting and token classification
// (number.go). Field value types are determined purely by lexical form:
//
//	field1="text"   quoted string, `\"` and `\\` unescaped
//	field2=123i     signed integer
//	field3=123u     unsigned integer
//	field4=1.5      float (decimal point, exponent, or bare digits)
//	field5=true     boolean (t/T/true/True/TRUE and the false forms)
//
// Any other bare token is a syntax error; there is no implicit string
// fallback for unquoted tokens.
package codec
