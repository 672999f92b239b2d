// Package numbench provides a self-describing container format for
// compressing one-dimensional numeric arrays, together with a benchmark
// harness comparing the supported algorithms on synthetic datasets.
//
// Arrays of uint8, uint16, uint32, int16 or int32 elements are transformed
// (identity, delta, linear-predictive residual, or zero run-length
// segmentation plus prediction), then coded either with a rANS entropy
// coder or a general-purpose compressor (Zstandard, S2, LZ4). Decoding is
// always bit-exact: the container header carries the full side information
// needed to invert every stage.
//
// # Basic Usage
//
// Encoding and decoding an array:
//
//	import "github.com/arloliu/numbench"
//
//	arr := numbench.FromSlice([]int16{12, 13, 13, 15, 14})
//	data, _ := numbench.Encode(arr)
//
//	got, _ := numbench.Decode(data, format.DtypeInt16)
//
// Selecting a transform and payload codec:
//
//	data, _ := numbench.Encode(arr,
//	    blob.WithVariant(format.VariantPredictive),
//	    blob.WithPayloadCodec(format.PayloadZstd),
//	    blob.WithZstdLevel(19),
//	)
//
// Running the benchmark suite:
//
//	report, err := numbench.RunBenchmarks(bench.Config{
//	    CacheDir: ".benchmark_cache",
//	    Output:   os.Stderr,
//	})
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the blob and
// bench packages, simplifying the most common use cases. For fine-grained
// control, use those packages directly.
package numbench

import (
	"github.com/arloliu/numbench/bench"
	"github.com/arloliu/numbench/blob"
	"github.com/arloliu/numbench/format"
	"github.com/arloliu/numbench/numeric"
)

// FromSlice builds a numeric array from a typed slice.
func FromSlice[T numeric.Element](data []T) numeric.Array {
	return numeric.FromSlice(data)
}

// Encode serializes an array into a container. Options select the transform
// variant and payload codec; the default entropy-codes the raw values.
func Encode(arr numeric.Array, opts ...blob.Option) ([]byte, error) {
	return blob.Encode(arr, opts...)
}

// Decode reconstructs the array stored in a container. The dtype declares
// what the caller expects; a mismatching container is rejected.
func Decode(data []byte, dtype format.Dtype) (numeric.Array, error) {
	return blob.Decode(data, dtype)
}

// RunBenchmarks runs the benchmark suite with the given configuration.
func RunBenchmarks(cfg bench.Config) (*bench.Report, error) {
	return bench.Run(cfg)
}
