package compress

import (
	"fmt"

	"github.com/arloliu/numbench/errs"
	"github.com/arloliu/numbench/format"
)

// Compressor compresses a serialized payload.
//
// Memory management:
//   - Returned slice is newly allocated and owned by the caller
//   - Input slice is not modified
//   - Internal buffers may be reused for efficiency
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor inverts a Compressor.
//
// The input must have been produced by the same algorithm; corrupted or
// mismatched data returns an error.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both compression and decompression capabilities.
type Codec interface {
	Compressor
	Decompressor
}

// GetCodec returns a Codec for the given payload codec code.
//
// PayloadANS is not a general-purpose codec and is rejected here; entropy
// coding is handled by the ans package.
func GetCodec(codec format.PayloadCodec) (Codec, error) {
	switch codec {
	case format.PayloadNone:
		return NewNoOpCodec(), nil
	case format.PayloadZstd:
		return NewZstdCodec(DefaultZstdLevel), nil
	case format.PayloadS2:
		return NewS2Codec(), nil
	case format.PayloadLZ4:
		return NewLZ4Codec(), nil
	case format.PayloadANS:
		return nil, fmt.Errorf("%w: entropy codec has no byte-level compressor", errs.ErrInvalidPayloadCodec)
	default:
		return nil, fmt.Errorf("%w: %d", errs.ErrInvalidPayloadCodec, uint8(codec))
	}
}
