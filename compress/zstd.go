package compress

// DefaultZstdLevel is the Zstd compression level used when no explicit
// level is requested.
const DefaultZstdLevel = 3

const (
	minZstdLevel = 1
	maxZstdLevel = 22
)

// ZstdCodec provides Zstandard compression at a fixed compression level.
//
// Levels follow the reference zstd scale (1-22). Higher levels trade
// compression speed for ratio; decompression speed is unaffected.
type ZstdCodec struct {
	level int
}

var _ Codec = (*ZstdCodec)(nil)

// NewZstdCodec creates a Zstd codec operating at the given level.
// Out-of-range levels are clamped to the supported 1-22 range.
func NewZstdCodec(level int) ZstdCodec {
	if level < minZstdLevel {
		level = minZstdLevel
	}
	if level > maxZstdLevel {
		level = maxZstdLevel
	}

	return ZstdCodec{level: level}
}

// Level returns the configured compression level.
func (c ZstdCodec) Level() int {
	return c.level
}
