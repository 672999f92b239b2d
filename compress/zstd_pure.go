//go:build !cgo

package compress

import (
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
)

// zstdDecoderPool pools zstd decoders for reuse to eliminate allocation
// overhead. The klauspost decoder is designed to be stored and reused:
// it operates without allocations after a warmup.
var zstdDecoderPool = sync.Pool{
	New: func() any {
		decoder, err := zstd.NewReader(nil,
			zstd.WithDecoderConcurrency(1),
			zstd.WithDecoderLowmem(false),
		)
		if err != nil {
			// This should never happen with valid options
			panic(fmt.Sprintf("failed to create zstd decoder for pool: %v", err))
		}
		return decoder
	},
}

// zstdEncoders caches one encoder per compression level. EncodeAll is safe
// for concurrent use on a shared encoder, so no pooling is needed.
var (
	zstdEncodersMu sync.Mutex
	zstdEncoders   = make(map[int]*zstd.Encoder)
)

func zstdEncoderForLevel(level int) *zstd.Encoder {
	zstdEncodersMu.Lock()
	defer zstdEncodersMu.Unlock()

	if enc, ok := zstdEncoders[level]; ok {
		return enc
	}

	enc, err := zstd.NewWriter(nil,
		zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(level)),
		zstd.WithEncoderCRC(false),
	)
	if err != nil {
		// This should never happen with valid options
		panic(fmt.Sprintf("failed to create zstd encoder: %v", err))
	}
	zstdEncoders[level] = enc

	return enc
}

// Compress compresses the input data using Zstandard at the codec's level.
func (c ZstdCodec) Compress(data []byte) ([]byte, error) {
	return zstdEncoderForLevel(c.level).EncodeAll(data, nil), nil
}

// Decompress decompresses Zstd-compressed data using a pooled decoder.
func (c ZstdCodec) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	decoder := zstdDecoderPool.Get().(*zstd.Decoder)
	defer zstdDecoderPool.Put(decoder)

	decompressed, err := decoder.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("zstd decompression failed: %w", err)
	}

	return decompressed, nil
}
