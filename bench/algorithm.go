package bench

import (
	"fmt"

	"github.com/arloliu/numbench/blob"
	"github.com/arloliu/numbench/format"
	"github.com/arloliu/numbench/numeric"
)

// Algorithm tags drive dataset compatibility.
const (
	// TagDeltaEncoding marks algorithms applying the delta transform.
	TagDeltaEncoding = "delta_encoding"
	// TagMarkovPrediction marks algorithms applying the linear predictor.
	TagMarkovPrediction = "markov_prediction"
	// TagZeroRLE marks algorithms applying run-length segmentation.
	TagZeroRLE = "zero_rle"
	// TagContinuous marks datasets whose neighboring samples correlate.
	TagContinuous = "continuous"
)

// Algorithm is a named, versioned encoder configuration.
type Algorithm struct {
	Name        string
	Version     string
	Description string
	Tags        []string
	Encode      func(numeric.Array) ([]byte, error)
	Decode      func([]byte, format.Dtype) (numeric.Array, error)
}

// Compatible reports whether an algorithm should run against a dataset.
// Transforms that exploit sample correlation require a continuous dataset;
// everything else runs everywhere.
func Compatible(alg Algorithm, ds Dataset) bool {
	for _, tag := range alg.Tags {
		if (tag == TagDeltaEncoding || tag == TagMarkovPrediction) && !ds.HasTag(TagContinuous) {
			return false
		}
	}

	return true
}

// containerAlgorithm builds an Algorithm from a fixed encoder configuration.
func containerAlgorithm(name, version, description string, tags []string, opts ...blob.Option) Algorithm {
	return Algorithm{
		Name:        name,
		Version:     version,
		Description: description,
		Tags:        tags,
		Encode: func(arr numeric.Array) ([]byte, error) {
			return blob.Encode(arr, opts...)
		},
		Decode: blob.Decode,
	}
}

// Algorithms returns the registered benchmark algorithms.
func Algorithms() []Algorithm {
	algs := []Algorithm{
		containerAlgorithm("ans", "1",
			"rANS entropy coding of the raw values.",
			nil,
			blob.WithVariant(format.VariantPlain),
			blob.WithPayloadCodec(format.PayloadANS)),
		containerAlgorithm("ans-delta", "1",
			"rANS entropy coding of consecutive differences.",
			[]string{TagDeltaEncoding},
			blob.WithVariant(format.VariantDelta),
			blob.WithPayloadCodec(format.PayloadANS)),
		containerAlgorithm("ans-markov", "1",
			"rANS entropy coding of linear-predictor residuals.",
			[]string{TagMarkovPrediction},
			blob.WithVariant(format.VariantPredictive),
			blob.WithPayloadCodec(format.PayloadANS)),
		containerAlgorithm("ans-markov-zrle", "1",
			"Zero run-length segmentation, then predictor residuals under rANS.",
			[]string{TagMarkovPrediction, TagZeroRLE},
			blob.WithVariant(format.VariantSparse),
			blob.WithPayloadCodec(format.PayloadANS)),
	}

	for _, level := range []int{4, 7, 10, 13, 16, 19, 22} {
		algs = append(algs, containerAlgorithm(fmt.Sprintf("zstd-%d", level), "1",
			fmt.Sprintf("Zstandard level %d over the raw values.", level),
			nil,
			blob.WithVariant(format.VariantPlain),
			blob.WithPayloadCodec(format.PayloadZstd),
			blob.WithZstdLevel(level)))
	}

	algs = append(algs,
		containerAlgorithm("zstd-22-delta", "1",
			"Zstandard level 22 over consecutive differences.",
			[]string{TagDeltaEncoding},
			blob.WithVariant(format.VariantDelta),
			blob.WithPayloadCodec(format.PayloadZstd),
			blob.WithZstdLevel(22)),
		containerAlgorithm("zstd-22-markov", "1",
			"Zstandard level 22 over linear-predictor residuals.",
			[]string{TagMarkovPrediction},
			blob.WithVariant(format.VariantPredictive),
			blob.WithPayloadCodec(format.PayloadZstd),
			blob.WithZstdLevel(22)),
		containerAlgorithm("zstd-22-markov-zrle", "1",
			"Zero run-length segmentation, then predictor residuals under Zstandard level 22.",
			[]string{TagMarkovPrediction, TagZeroRLE},
			blob.WithVariant(format.VariantSparse),
			blob.WithPayloadCodec(format.PayloadZstd),
			blob.WithZstdLevel(22)),
		containerAlgorithm("lz4", "1",
			"LZ4 block compression over the raw values.",
			nil,
			blob.WithVariant(format.VariantPlain),
			blob.WithPayloadCodec(format.PayloadLZ4)),
		containerAlgorithm("lz4-delta", "1",
			"LZ4 block compression over consecutive differences.",
			[]string{TagDeltaEncoding},
			blob.WithVariant(format.VariantDelta),
			blob.WithPayloadCodec(format.PayloadLZ4)),
		containerAlgorithm("s2", "1",
			"S2 compression over the raw values.",
			nil,
			blob.WithVariant(format.VariantPlain),
			blob.WithPayloadCodec(format.PayloadS2)),
		containerAlgorithm("s2-delta", "1",
			"S2 compression over consecutive differences.",
			[]string{TagDeltaEncoding},
			blob.WithVariant(format.VariantDelta),
			blob.WithPayloadCodec(format.PayloadS2)),
	)

	return algs
}
