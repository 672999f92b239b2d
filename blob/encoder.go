package blob

import (
	"fmt"

	"github.com/arloliu/numbench/ans"
	"github.com/arloliu/numbench/compress"
	"github.com/arloliu/numbench/encoding"
	"github.com/arloliu/numbench/endian"
	"github.com/arloliu/numbench/errs"
	"github.com/arloliu/numbench/format"
	"github.com/arloliu/numbench/internal/options"
	"github.com/arloliu/numbench/internal/pool"
	"github.com/arloliu/numbench/numeric"
	"github.com/arloliu/numbench/predictor"
	"github.com/arloliu/numbench/section"
)

// Containers are little-endian on the wire regardless of host order.
var wireEngine = endian.GetLittleEndianEngine()

// Encode serializes a numeric array into a container.
//
// The default configuration applies no transform and entropy-codes the
// values directly; options select the transform variant, payload codec and
// predictor parameters.
func Encode(arr numeric.Array, opts ...Option) ([]byte, error) {
	cfg := defaultEncoderConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	header := &section.Header{
		Flag:     section.NewFlag(cfg.variant, arr.Dtype(), cfg.codec),
		ArrayLen: int64(arr.Len()),
	}

	signal, runTable, err := transform(arr, cfg, header)
	if err != nil {
		return nil, err
	}

	payload, err := codePayload(arr, cfg, header, signal)
	if err != nil {
		return nil, err
	}
	header.PayloadLen = int64(len(payload))

	headerBytes, err := header.Bytes()
	if err != nil {
		return nil, err
	}

	buf := pool.GetContainerBuffer()
	defer pool.PutContainerBuffer(buf)

	buf.MustWrite(headerBytes)
	buf.MustWrite(payload)
	buf.MustWrite(runTable)

	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())

	return out, nil
}

// transform applies the configured variant to the array, records the
// variant's side information in the header, and returns the signal to be
// payload-coded plus the packed run-length table for the sparse variant.
func transform(arr numeric.Array, cfg *encoderConfig, header *section.Header) (signal []int64, runTable []byte, err error) {
	vals := arr.Int64s()

	switch cfg.variant {
	case format.VariantPlain:
		return vals, nil, nil

	case format.VariantDelta:
		first, diffs := encoding.DeltaEncode(vals)
		header.First = first

		return diffs, nil, nil

	case format.VariantPredictive:
		coeffs, initial, resid, err := predictor.FitResidual(vals, cfg.order, cfg.trainingSamples)
		if err != nil {
			return nil, nil, err
		}
		header.Coefficients = widenCoeffs(coeffs)
		header.InitialValues = initial

		return resid, nil, nil

	case format.VariantSparse:
		runLengths, nonZero, err := encoding.Segment(vals)
		if err != nil {
			return nil, nil, err
		}
		width := format.NarrowestRunWidth(encoding.MaxRun(runLengths))
		runTable, err := encoding.PackRuns(runLengths, width, wireEngine)
		if err != nil {
			return nil, nil, err
		}

		coeffs, initial, resid, err := predictor.FitResidual(nonZero, cfg.order, cfg.trainingSamples)
		if err != nil {
			return nil, nil, err
		}
		header.Flag.RunWidth = width
		header.RunCount = int64(len(runLengths))
		header.Coefficients = widenCoeffs(coeffs)
		header.InitialValues = initial

		return resid, runTable, nil

	default:
		return nil, nil, fmt.Errorf("%w: %d", errs.ErrInvalidVariant, uint8(cfg.variant))
	}
}

// codePayload turns the transformed signal into payload bytes. Entropy
// coding stores its side information in the header; the general-purpose
// codecs compress the serialized signal.
func codePayload(arr numeric.Array, cfg *encoderConfig, header *section.Header, signal []int64) ([]byte, error) {
	if cfg.codec.Entropy() {
		enc, err := ans.Encode(signal)
		if err != nil {
			return nil, err
		}
		header.Signal = &section.SignalInfo{
			BitWidth:     enc.BitWidth,
			SignalLength: enc.SignalLength,
			State:        enc.State,
			SymbolCounts: enc.SymbolCounts,
			SymbolValues: enc.SymbolValues,
		}

		return enc.Bitstream, nil
	}

	// The plain variant stores values at their natural dtype width; the
	// residual variants widen to 8-byte words since differences and
	// residuals can exceed the dtype's range.
	var raw []byte
	if cfg.variant == format.VariantPlain {
		raw = arr.Bytes(wireEngine)
	} else {
		raw = wordsToBytes(signal)
	}

	codec, err := payloadCodec(cfg)
	if err != nil {
		return nil, err
	}

	return codec.Compress(raw)
}

func payloadCodec(cfg *encoderConfig) (compress.Codec, error) {
	if cfg.codec == format.PayloadZstd {
		return compress.NewZstdCodec(cfg.zstdLevel), nil
	}

	return compress.GetCodec(cfg.codec)
}

func widenCoeffs(coeffs []float32) []float64 {
	if len(coeffs) == 0 {
		return nil
	}
	out := make([]float64, len(coeffs))
	for i, c := range coeffs {
		out[i] = float64(c)
	}

	return out
}

func wordsToBytes(vals []int64) []byte {
	out := make([]byte, 0, len(vals)*8)
	for _, v := range vals {
		out = wireEngine.AppendUint64(out, uint64(v))
	}

	return out
}
