// Package blob encodes numeric arrays into self-describing containers and
// decodes them back bit-exactly.
//
// A container is a 4-byte little-endian header length, a header of packed
// 8-byte fields, the payload, and for the sparse variant a trailing
// run-length table. The header carries everything needed to invert the
// payload: the transform variant, the dtype, the payload codec and the
// per-variant side information (delta seed, predictor coefficients and
// initial values, entropy coder frequency table).
//
// Four transform variants are supported:
//
//   - Plain: the values themselves
//   - Delta: first value plus consecutive differences
//   - Predictive: residuals of a fitted linear predictor
//   - Sparse: run-length segmentation of the non-zero support, with the
//     predictive transform applied to the surviving values
//
// The transformed signal is then either entropy-coded with the ans package
// or serialized and run through one of the compress package codecs.
//
// Basic usage:
//
//	arr := numeric.FromSlice([]int16{1, 2, 3})
//	data, err := blob.Encode(arr,
//	    blob.WithVariant(format.VariantPredictive),
//	    blob.WithPayloadCodec(format.PayloadANS),
//	)
//	...
//	got, err := blob.Decode(data, format.DtypeInt16)
package blob
