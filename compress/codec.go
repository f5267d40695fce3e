// Package compress provides block compression codecs for line protocol
// payloads. Ingestion endpoints commonly accept compressed request bodies;
// these codecs compress the full text of a batch of records in one block.
//
// Four algorithms are supported: None (pass-through), Zstd (best ratio,
// with a cgo and a pure-Go implementation selected at build time), S2
// (fastest), and LZ4 (balanced). All codecs are stateless values that are
// safe for concurrent use; internal encoder state is pooled.
package compress

import "fmt"

// Type identifies a compression algorithm.
type Type uint8

const (
	None Type = 0x1 // None represents no compression.
	Zstd Type = 0x2 // Zstd represents Zstandard compression.
	S2   Type = 0x3 // S2 represents S2 compression.
	LZ4  Type = 0x4 // LZ4 represents LZ4 block compression.
)

func (t Type) String() string {
	switch t {
	case None:
		return "None"
	case Zstd:
		return "Zstd"
	case S2:
		return "S2"
	case LZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// Compressor compresses one payload block.
//
// The returned slice is newly allocated and owned by the caller (except for
// the pass-through codec, which returns the input); the input slice is not
// modified.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor reverses a Compressor of the same algorithm. It returns an
// error if the data is corrupted or was compressed with a different
// algorithm.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both directions of one algorithm.
type Codec interface {
	Compressor
	Decompressor
}

// New returns the codec for the given type.
func New(t Type) (Codec, error) {
	switch t {
	case None:
		return NewNoopCodec(), nil
	case Zstd:
		return NewZstdCodec(), nil
	case S2:
		return NewS2Codec(), nil
	case LZ4:
		return NewLZ4Codec(), nil
	default:
		return nil, fmt.Errorf("invalid compression type: %d", t)
	}
}
