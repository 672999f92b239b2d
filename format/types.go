// Package format defines the wire-level enumerations of the numbench container
// format: element dtypes, transform variants, payload codecs and run-length
// widths, together with their small-integer wire codes.
//
// All mappings are total lookup tables over closed enumerations. Conversion
// functions validate their input and return errs sentinel errors for anything
// outside the supported sets.
package format

import (
	"fmt"
	"math"

	"github.com/arloliu/numbench/errs"
)

type (
	// Dtype identifies the element type of a numeric array.
	// The constant values are the wire codes stored in container headers.
	Dtype uint8

	// Variant identifies the transform pipeline applied before payload coding.
	Variant uint8

	// PayloadCodec identifies how the (transformed) signal is turned into
	// payload bytes: either the entropy coder or a general-purpose compressor.
	PayloadCodec uint8

	// RunWidth identifies the fixed width of run-length table entries.
	// The constant values are the wire codes stored in container headers.
	RunWidth uint8
)

const (
	DtypeUint8  Dtype = 0 // unsigned 8-bit elements
	DtypeUint16 Dtype = 1 // unsigned 16-bit elements
	DtypeUint32 Dtype = 2 // unsigned 32-bit elements
	DtypeInt16  Dtype = 3 // signed 16-bit elements
	DtypeInt32  Dtype = 4 // signed 32-bit elements

	VariantPlain      Variant = 0x1 // identity transform
	VariantDelta      Variant = 0x2 // first difference, seeded by x[0]
	VariantPredictive Variant = 0x3 // linear-predictive residual
	VariantSparse     Variant = 0x4 // predictive residual on the non-zero support

	PayloadANS  PayloadCodec = 0x1 // entropy-coded bitstream (rANS)
	PayloadNone PayloadCodec = 0x2 // raw bytes, no compression
	PayloadZstd PayloadCodec = 0x3 // Zstandard-compressed bytes
	PayloadS2   PayloadCodec = 0x4 // S2-compressed bytes
	PayloadLZ4  PayloadCodec = 0x5 // LZ4-compressed bytes

	RunWidth8  RunWidth = 0 // run lengths stored as uint8
	RunWidth16 RunWidth = 1 // run lengths stored as uint16
	RunWidth32 RunWidth = 2 // run lengths stored as uint32
)

// dtypeInfo holds the static properties of one supported dtype.
type dtypeInfo struct {
	name   string
	size   int
	signed bool
	min    int64
	max    int64
}

// dtypeTable is the single source of truth for the dtype registry.
// It is indexed by wire code.
var dtypeTable = [...]dtypeInfo{
	DtypeUint8:  {name: "uint8", size: 1, signed: false, min: 0, max: math.MaxUint8},
	DtypeUint16: {name: "uint16", size: 2, signed: false, min: 0, max: math.MaxUint16},
	DtypeUint32: {name: "uint32", size: 4, signed: false, min: 0, max: math.MaxUint32},
	DtypeInt16:  {name: "int16", size: 2, signed: true, min: math.MinInt16, max: math.MaxInt16},
	DtypeInt32:  {name: "int32", size: 4, signed: true, min: math.MinInt32, max: math.MaxInt32},
}

// Code returns the wire code for the dtype.
// It fails with errs.ErrUnsupportedDtype for any value outside the registry.
func (d Dtype) Code() (uint8, error) {
	if !d.Valid() {
		return 0, fmt.Errorf("%w: %d", errs.ErrUnsupportedDtype, uint8(d))
	}

	return uint8(d), nil
}

// DtypeFromCode returns the dtype for a wire code recovered from a header.
// It fails with errs.ErrUnknownDtypeCode for codes outside 0-4.
func DtypeFromCode(code uint8) (Dtype, error) {
	d := Dtype(code)
	if !d.Valid() {
		return 0, fmt.Errorf("%w: %d", errs.ErrUnknownDtypeCode, code)
	}

	return d, nil
}

// Valid reports whether the dtype is one of the five supported element types.
func (d Dtype) Valid() bool {
	return int(d) < len(dtypeTable)
}

// Size returns the element size in bytes.
func (d Dtype) Size() int {
	if !d.Valid() {
		return 0
	}

	return dtypeTable[d].size
}

// Signed reports whether the dtype is a signed integer type.
func (d Dtype) Signed() bool {
	return d.Valid() && dtypeTable[d].signed
}

// Min returns the smallest representable value of the dtype, widened to int64.
func (d Dtype) Min() int64 {
	if !d.Valid() {
		return 0
	}

	return dtypeTable[d].min
}

// Max returns the largest representable value of the dtype, widened to int64.
func (d Dtype) Max() int64 {
	if !d.Valid() {
		return 0
	}

	return dtypeTable[d].max
}

// Contains reports whether v is representable in the dtype.
func (d Dtype) Contains(v int64) bool {
	return d.Valid() && v >= dtypeTable[d].min && v <= dtypeTable[d].max
}

func (d Dtype) String() string {
	if !d.Valid() {
		return "Unknown"
	}

	return dtypeTable[d].name
}

func (v Variant) String() string {
	switch v {
	case VariantPlain:
		return "Plain"
	case VariantDelta:
		return "Delta"
	case VariantPredictive:
		return "Predictive"
	case VariantSparse:
		return "Sparse"
	default:
		return "Unknown"
	}
}

// Valid reports whether v is one of the four defined transform variants.
func (v Variant) Valid() bool {
	return v >= VariantPlain && v <= VariantSparse
}

func (c PayloadCodec) String() string {
	switch c {
	case PayloadANS:
		return "ANS"
	case PayloadNone:
		return "None"
	case PayloadZstd:
		return "Zstd"
	case PayloadS2:
		return "S2"
	case PayloadLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// Valid reports whether c is one of the defined payload codecs.
func (c PayloadCodec) Valid() bool {
	return c >= PayloadANS && c <= PayloadLZ4
}

// Entropy reports whether the payload is an entropy-coded bitstream rather
// than a byte-oriented compressed block.
func (c PayloadCodec) Entropy() bool {
	return c == PayloadANS
}

// Bytes returns the entry width in bytes for the run-length width code.
func (w RunWidth) Bytes() int {
	switch w {
	case RunWidth8:
		return 1
	case RunWidth16:
		return 2
	case RunWidth32:
		return 4
	default:
		return 0
	}
}

// Valid reports whether w is one of the defined run-length widths.
func (w RunWidth) Valid() bool {
	return w <= RunWidth32
}

// Max returns the largest run length representable at width w.
func (w RunWidth) Max() uint32 {
	switch w {
	case RunWidth8:
		return math.MaxUint8
	case RunWidth16:
		return math.MaxUint16
	case RunWidth32:
		return math.MaxUint32
	default:
		return 0
	}
}

func (w RunWidth) String() string {
	switch w {
	case RunWidth8:
		return "uint8"
	case RunWidth16:
		return "uint16"
	case RunWidth32:
		return "uint32"
	default:
		return "Unknown"
	}
}

// NarrowestRunWidth returns the smallest run-length width able to represent
// maxRun. The result is always valid; maxRun is bounded by uint32.
func NarrowestRunWidth(maxRun uint32) RunWidth {
	switch {
	case maxRun <= math.MaxUint8:
		return RunWidth8
	case maxRun <= math.MaxUint16:
		return RunWidth16
	default:
		return RunWidth32
	}
}
