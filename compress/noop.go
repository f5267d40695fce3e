package compress

// NoopCodec passes payloads through without compression. Useful for
// endpoints that take uncompressed bodies and for baseline benchmarks.
type NoopCodec struct{}

var _ Codec = (*NoopCodec)(nil)

// NewNoopCodec creates a pass-through codec.
func NewNoopCodec() NoopCodec {
	return NoopCodec{}
}

// Compress returns the input slice as-is, without copying. Callers must not
// modify the input while the returned slice is in use.
func (c NoopCodec) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// Decompress returns the input slice as-is, without copying.
func (c NoopCodec) Decompress(data []byte) ([]byte, error) {
	return data, nil
}
