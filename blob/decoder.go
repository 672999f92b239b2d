package blob

import (
	"fmt"

	"github.com/arloliu/numbench/ans"
	"github.com/arloliu/numbench/compress"
	"github.com/arloliu/numbench/encoding"
	"github.com/arloliu/numbench/errs"
	"github.com/arloliu/numbench/format"
	"github.com/arloliu/numbench/numeric"
	"github.com/arloliu/numbench/predictor"
	"github.com/arloliu/numbench/section"
)

// Decode parses a container and reconstructs the original numeric array.
//
// The caller declares the dtype it expects; a container holding a different
// dtype returns ErrDtypeMismatch rather than silently reinterpreting values.
func Decode(data []byte, dtype format.Dtype) (numeric.Array, error) {
	header, rest, err := section.ParseHeader(data)
	if err != nil {
		return numeric.Array{}, err
	}

	if header.Flag.Dtype != dtype {
		return numeric.Array{}, fmt.Errorf("%w: container holds %s, caller expects %s",
			errs.ErrDtypeMismatch, header.Flag.Dtype, dtype)
	}

	payload, runTable, err := splitBody(header, rest)
	if err != nil {
		return numeric.Array{}, err
	}

	// The plain variant with a byte-level codec stores values at dtype
	// width, so it skips the int64 signal path entirely.
	if header.Flag.Variant == format.VariantPlain && !header.Flag.Codec.Entropy() {
		return decodePlainRaw(header, dtype, payload)
	}

	signal, err := recoverSignal(header, payload)
	if err != nil {
		return numeric.Array{}, err
	}

	vals, err := invertTransform(header, signal, runTable)
	if err != nil {
		return numeric.Array{}, err
	}

	if int64(len(vals)) != header.ArrayLen {
		return numeric.Array{}, fmt.Errorf("%w: reconstructed %d values, header declares %d",
			errs.ErrCorruptSignal, len(vals), header.ArrayLen)
	}

	return numeric.FromInt64s(dtype, vals)
}

// splitBody separates the post-header bytes into payload and run-length
// table, validating the container's declared lengths against reality.
func splitBody(header *section.Header, rest []byte) (payload, runTable []byte, err error) {
	payloadLen := int(header.PayloadLen)
	if len(rest) < payloadLen {
		return nil, nil, fmt.Errorf("%w: payload needs %d bytes, %d remain",
			errs.ErrTruncatedContainer, payloadLen, len(rest))
	}
	payload = rest[:payloadLen]
	runTable = rest[payloadLen:]

	wantTable := 0
	if header.Flag.Variant == format.VariantSparse {
		wantTable = int(header.RunCount) * header.Flag.RunWidth.Bytes()
	}
	if len(runTable) < wantTable {
		return nil, nil, fmt.Errorf("%w: run table needs %d bytes, %d remain",
			errs.ErrTruncatedContainer, wantTable, len(runTable))
	}
	if len(runTable) > wantTable {
		return nil, nil, fmt.Errorf("%w: %d trailing bytes after container",
			errs.ErrHeaderFraming, len(runTable)-wantTable)
	}

	return payload, runTable, nil
}

func decodePlainRaw(header *section.Header, dtype format.Dtype, payload []byte) (numeric.Array, error) {
	codec, err := decoderCodec(header)
	if err != nil {
		return numeric.Array{}, err
	}
	raw, err := codec.Decompress(payload)
	if err != nil {
		return numeric.Array{}, err
	}

	arr, err := numeric.FromBytes(dtype, raw, wireEngine)
	if err != nil {
		return numeric.Array{}, err
	}
	if int64(arr.Len()) != header.ArrayLen {
		return numeric.Array{}, fmt.Errorf("%w: payload holds %d values, header declares %d",
			errs.ErrCorruptSignal, arr.Len(), header.ArrayLen)
	}

	return arr, nil
}

// recoverSignal inverts the payload coding stage back to the transformed
// int64 signal.
func recoverSignal(header *section.Header, payload []byte) ([]int64, error) {
	if header.Flag.Codec.Entropy() {
		if header.Signal == nil {
			return nil, fmt.Errorf("%w: entropy payload without signal info", errs.ErrCorruptSignal)
		}

		return ans.Decode(&ans.EncodedSignal{
			BitWidth:     header.Signal.BitWidth,
			SignalLength: header.Signal.SignalLength,
			State:        header.Signal.State,
			SymbolCounts: header.Signal.SymbolCounts,
			SymbolValues: header.Signal.SymbolValues,
			Bitstream:    payload,
		})
	}

	codec, err := decoderCodec(header)
	if err != nil {
		return nil, err
	}
	raw, err := codec.Decompress(payload)
	if err != nil {
		return nil, err
	}

	return bytesToWords(raw)
}

// invertTransform undoes the variant transform, yielding the original values.
func invertTransform(header *section.Header, signal []int64, runTable []byte) ([]int64, error) {
	switch header.Flag.Variant {
	case format.VariantPlain:
		return signal, nil

	case format.VariantDelta:
		// An empty array carries first=0 with no residual; DeltaDecode
		// would otherwise materialize the anchor as a spurious element.
		if header.ArrayLen == 0 && len(signal) == 0 {
			return nil, nil
		}

		return encoding.DeltaDecode(header.First, signal), nil

	case format.VariantPredictive:
		return predictor.Reconstruct(narrowCoeffs(header.Coefficients), header.InitialValues, signal), nil

	case format.VariantSparse:
		runLengths, err := encoding.UnpackRuns(runTable, int(header.RunCount), header.Flag.RunWidth, wireEngine)
		if err != nil {
			return nil, err
		}
		nonZero := predictor.Reconstruct(narrowCoeffs(header.Coefficients), header.InitialValues, signal)

		return encoding.Desegment(runLengths, nonZero)

	default:
		return nil, fmt.Errorf("%w: %d", errs.ErrInvalidVariant, uint8(header.Flag.Variant))
	}
}

func decoderCodec(header *section.Header) (compress.Codec, error) {
	return payloadCodec(&encoderConfig{
		codec:     header.Flag.Codec,
		zstdLevel: compress.DefaultZstdLevel,
	})
}

func narrowCoeffs(coeffs []float64) []float32 {
	if len(coeffs) == 0 {
		return nil
	}
	out := make([]float32, len(coeffs))
	for i, c := range coeffs {
		out[i] = float32(c)
	}

	return out
}

func bytesToWords(raw []byte) ([]int64, error) {
	if len(raw)%8 != 0 {
		return nil, fmt.Errorf("%w: residual payload length %d is not word-aligned",
			errs.ErrCorruptSignal, len(raw))
	}

	out := make([]int64, len(raw)/8)
	for i := range out {
		out[i] = int64(wireEngine.Uint64(raw[i*8:]))
	}

	return out, nil
}
