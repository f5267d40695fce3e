// Package point defines the in-memory data model for line protocol records:
// the Value tagged union and the Point record with its measurement, ordered
// tag set, ordered field set, and optional nanosecond timestamp.
//
// Points are transient: callers construct them for serialization, and the
// decoder materializes them from parsed text. The codec never retains them.
package point

import "github.com/cespare/xxhash/v2"

// KV is one entry of a tag or field set. Entry order is preserved from the
// caller and is the canonical serialization order; no sorting is applied.
type KV struct {
	Key   string
	Value Value
}

// Point is one line protocol record.
type Point struct {
	// Measurement is the series name. It must be non-empty to serialize.
	Measurement string

	// Tags is the ordered tag set. Duplicate keys are rejected at decode
	// time; the serializer emits entries in slice order.
	Tags []KV

	// Fields is the ordered field set. At least one entry with a non-absent
	// value is required to serialize.
	Fields []KV

	// Timestamp is the optional Unix timestamp in nanoseconds. Any int64
	// value is legal.
	Timestamp *int64
}

// New creates a Point with the given measurement name.
func New(measurement string) Point {
	return Point{Measurement: measurement}
}

// AddTag appends a tag entry, preserving insertion order.
func (p *Point) AddTag(key string, v Value) *Point {
	p.Tags = append(p.Tags, KV{Key: key, Value: v})
	return p
}

// AddField appends a field entry, preserving insertion order.
func (p *Point) AddField(key string, v Value) *Point {
	p.Fields = append(p.Fields, KV{Key: key, Value: v})
	return p
}

// SetTimestamp sets the nanosecond Unix timestamp.
func (p *Point) SetTimestamp(ns int64) *Point {
	p.Timestamp = &ns
	return p
}

// Tag returns the value of the first tag with the given key.
func (p Point) Tag(key string) (Value, bool) {
	return lookup(p.Tags, key)
}

// Field returns the value of the first field with the given key.
func (p Point) Field(key string) (Value, bool) {
	return lookup(p.Fields, key)
}

func lookup(entries []KV, key string) (Value, bool) {
	for _, kv := range entries {
		if kv.Key == key {
			return kv.Value, true
		}
	}

	return Value{}, false
}

// HasFields reports whether at least one field value is non-absent, the
// minimum required for the point to be serializable.
func (p Point) HasFields() bool {
	for _, kv := range p.Fields {
		if !kv.Value.IsAbsent() {
			return true
		}
	}

	return false
}

// Equal reports structural equality: same measurement, same entries in the
// same order with absent entries ignored, and same timestamp.
func (p Point) Equal(other Point) bool {
	if p.Measurement != other.Measurement {
		return false
	}
	if !entriesEqual(p.Tags, other.Tags) || !entriesEqual(p.Fields, other.Fields) {
		return false
	}
	if (p.Timestamp == nil) != (other.Timestamp == nil) {
		return false
	}
	if p.Timestamp != nil && *p.Timestamp != *other.Timestamp {
		return false
	}

	return true
}

func entriesEqual(a, b []KV) bool {
	i, j := 0, 0
	for {
		for i < len(a) && a[i].Value.IsAbsent() {
			i++
		}
		for j < len(b) && b[j].Value.IsAbsent() {
			j++
		}
		if i == len(a) || j == len(b) {
			return i == len(a) && j == len(b)
		}
		if a[i].Key != b[j].Key || !a[i].Value.Equal(b[j].Value) {
			return false
		}
		i++
		j++
	}
}

// Hash returns a structural xxHash64 of the point, suitable for
// deduplication. Points that compare Equal hash identically; absent
// entries do not contribute.
func (p Point) Hash() uint64 {
	d := xxhash.New()
	_, _ = d.WriteString(p.Measurement)
	hashEntries(d, p.Tags)
	hashEntries(d, p.Fields)
	if p.Timestamp != nil {
		var b [9]byte
		b[0] = 1
		putUint64(b[1:], uint64(*p.Timestamp))
		_, _ = d.Write(b[:])
	} else {
		_, _ = d.Write([]byte{0})
	}

	return d.Sum64()
}

func hashEntries(d *xxhash.Digest, entries []KV) {
	var sep [9]byte
	for _, kv := range entries {
		if kv.Value.IsAbsent() {
			continue
		}
		sep[0] = 0xff
		putUint64(sep[1:], uint64(len(kv.Key)))
		_, _ = d.Write(sep[:])
		_, _ = d.WriteString(kv.Key)
		kv.Value.hash(d)
	}
}
