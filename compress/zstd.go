package compress

// ZstdCodec compresses payloads with Zstandard, the best ratio of the
// supported algorithms. Suited to large batches shipped over constrained
// links or archived payload captures.
//
// Two implementations exist: a cgo binding (valyala/gozstd) used when cgo
// is available, and a pure-Go fallback (klauspost/compress/zstd). Both
// produce standard zstd frames and interoperate freely.
type ZstdCodec struct{}

var _ Codec = (*ZstdCodec)(nil)

// NewZstdCodec creates a new Zstd codec with default settings.
func NewZstdCodec() ZstdCodec {
	return ZstdCodec{}
}
