package point

import (
	"fmt"
	"math"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/arloliu/lineproto/errs"
)

// Kind identifies the variant held by a Value.
type Kind uint8

const (
	KindAbsent   Kind = iota // no value; never written to output
	KindFloat                // float64 field value
	KindInteger              // int64 field value, `i` suffix on the wire
	KindUnsigned             // uint64 field value, `u` suffix on the wire
	KindText                 // string field value, double-quoted on the wire
	KindBoolean              // boolean field value
)

func (k Kind) String() string {
	switch k {
	case KindAbsent:
		return "absent"
	case KindFloat:
		return "float"
	case KindInteger:
		return "integer"
	case KindUnsigned:
		return "unsigned"
	case KindText:
		return "text"
	case KindBoolean:
		return "boolean"
	default:
		return "unknown"
	}
}

// Value is an immutable tagged union holding one line protocol scalar:
// float, signed integer, unsigned integer, text, boolean, or absent.
//
// The zero Value is absent. Absent entries are silently omitted when a
// point is serialized; they never materialize as an explicit null token.
type Value struct {
	kind Kind
	num  uint64
	str  string
}

// Absent is the explicit no-value Value.
var Absent = Value{}

// FloatValue creates a float Value.
func FloatValue(f float64) Value {
	return Value{kind: KindFloat, num: math.Float64bits(f)}
}

// IntegerValue creates a signed integer Value.
func IntegerValue(i int64) Value {
	return Value{kind: KindInteger, num: uint64(i)}
}

// UnsignedValue creates an unsigned integer Value.
func UnsignedValue(u uint64) Value {
	return Value{kind: KindUnsigned, num: u}
}

// TextValue creates a text Value.
func TextValue(s string) Value {
	return Value{kind: KindText, str: s}
}

// BooleanValue creates a boolean Value.
func BooleanValue(b bool) Value {
	var n uint64
	if b {
		n = 1
	}

	return Value{kind: KindBoolean, num: n}
}

// Kind returns the variant held by the Value.
func (v Value) Kind() Kind {
	return v.kind
}

// IsAbsent reports whether the Value holds nothing.
func (v Value) IsAbsent() bool {
	return v.kind == KindAbsent
}

// Float64 returns the value as a float64. Integer and unsigned variants
// convert only when the conversion is exact; every other kind fails with a
// CoercionError.
func (v Value) Float64() (float64, error) {
	switch v.kind {
	case KindFloat:
		return math.Float64frombits(v.num), nil
	case KindInteger:
		i := int64(v.num)
		f := float64(i)
		if int64(f) != i {
			return 0, &errs.CoercionError{From: v.kind.String(), To: "float"}
		}

		return f, nil
	case KindUnsigned:
		f := float64(v.num)
		if uint64(f) != v.num {
			return 0, &errs.CoercionError{From: v.kind.String(), To: "float"}
		}

		return f, nil
	default:
		return 0, &errs.CoercionError{From: v.kind.String(), To: "float"}
	}
}

// Int64 returns the value as an int64. Float and unsigned variants convert
// only when the conversion is exact.
func (v Value) Int64() (int64, error) {
	switch v.kind {
	case KindInteger:
		return int64(v.num), nil
	case KindUnsigned:
		if v.num > math.MaxInt64 {
			return 0, &errs.CoercionError{From: v.kind.String(), To: "integer"}
		}

		return int64(v.num), nil
	case KindFloat:
		f := math.Float64frombits(v.num)
		i := int64(f)
		if float64(i) != f {
			return 0, &errs.CoercionError{From: v.kind.String(), To: "integer"}
		}

		return i, nil
	default:
		return 0, &errs.CoercionError{From: v.kind.String(), To: "integer"}
	}
}

// Uint64 returns the value as a uint64. Float and integer variants convert
// only when the conversion is exact and non-negative.
func (v Value) Uint64() (uint64, error) {
	switch v.kind {
	case KindUnsigned:
		return v.num, nil
	case KindInteger:
		i := int64(v.num)
		if i < 0 {
			return 0, &errs.CoercionError{From: v.kind.String(), To: "unsigned"}
		}

		return uint64(i), nil
	case KindFloat:
		f := math.Float64frombits(v.num)
		if f < 0 {
			return 0, &errs.CoercionError{From: v.kind.String(), To: "unsigned"}
		}
		u := uint64(f)
		if float64(u) != f {
			return 0, &errs.CoercionError{From: v.kind.String(), To: "unsigned"}
		}

		return u, nil
	default:
		return 0, &errs.CoercionError{From: v.kind.String(), To: "unsigned"}
	}
}

// Text returns the value as a string. Only text values convert.
func (v Value) Text() (string, error) {
	if v.kind != KindText {
		return "", &errs.CoercionError{From: v.kind.String(), To: "text"}
	}

	return v.str, nil
}

// Bool returns the value as a boolean using the loose coercion table:
// text "true"/"t"/"1" (case-insensitive) is true, "false"/"f"/"0" is false,
// a nonzero numeric is true, a zero numeric is false. Anything else fails
// with a CoercionError.
//
// The table is enumerated rather than truthiness-based so the accepted
// inputs stay auditable.
func (v Value) Bool() (bool, error) {
	switch v.kind {
	case KindBoolean:
		return v.num != 0, nil
	case KindText:
		switch strings.ToLower(v.str) {
		case "true", "t", "1":
			return true, nil
		case "false", "f", "0":
			return false, nil
		}
	case KindInteger, KindUnsigned:
		return v.num != 0, nil
	case KindFloat:
		return math.Float64frombits(v.num) != 0, nil
	}

	return false, &errs.CoercionError{From: v.kind.String(), To: "boolean"}
}

// Equal reports structural equality: same kind and same payload. Distinct
// numeric kinds holding the same number compare unequal.
func (v Value) Equal(other Value) bool {
	return v.kind == other.kind && v.num == other.num && v.str == other.str
}

// String returns a debug representation; it is not the wire form.
func (v Value) String() string {
	switch v.kind {
	case KindAbsent:
		return "absent"
	case KindFloat:
		return fmt.Sprintf("float(%v)", math.Float64frombits(v.num))
	case KindInteger:
		return fmt.Sprintf("integer(%d)", int64(v.num))
	case KindUnsigned:
		return fmt.Sprintf("unsigned(%d)", v.num)
	case KindText:
		return fmt.Sprintf("text(%q)", v.str)
	case KindBoolean:
		return fmt.Sprintf("boolean(%t)", v.num != 0)
	default:
		return "unknown"
	}
}

// hash mixes the value into the digest, framing each component so adjacent
// values cannot collide by concatenation.
func (v Value) hash(d *xxhash.Digest) {
	var frame [9]byte
	frame[0] = byte(v.kind)
	if v.kind == KindText {
		putUint64(frame[1:], uint64(len(v.str)))
		_, _ = d.Write(frame[:])
		_, _ = d.WriteString(v.str)

		return
	}

	putUint64(frame[1:], v.num)
	_, _ = d.Write(frame[:])
}

func putUint64(b []byte, u uint64) {
	for i := range 8 {
		b[i] = byte(u >> (8 * i))
	}
}
