// Package encoding implements the reversible numeric transforms applied
// before payload coding: first-difference encoding and run-length
// segmentation of sparse arrays.
//
// Both transforms operate on values widened to int64 so the full range of
// every supported dtype survives the transform. Differencing an unsigned
// array can produce negative values and differencing uint32 can exceed the
// int32 range; the widened representation keeps the forward/inverse pair
// exact without wraparound tricks.
//
// Each forward transform has an inverse that reconstructs the input
// bit-exactly given the side information the container header carries
// (the seed value for delta, the run-length table for segmentation).
package encoding
