// Package numeric defines the dtype-tagged numeric array consumed and
// produced by the container format.
//
// An Array pairs one of the five supported element types with a rank-1
// sequence of values. Values are held widened to int64 so transforms and the
// entropy coder can operate on one representation regardless of dtype; the
// raw wire representation at native element width is produced on demand.
// Arrays are treated as immutable once constructed.
package numeric

import (
	"fmt"

	"github.com/arloliu/numbench/endian"
	"github.com/arloliu/numbench/errs"
	"github.com/arloliu/numbench/format"
)

// Element is the closed set of supported array element types.
type Element interface {
	uint8 | uint16 | uint32 | int16 | int32
}

// Array is an immutable rank-1 numeric array with a declared dtype.
// The zero value is an empty uint8 array.
type Array struct {
	dtype format.Dtype
	vals  []int64
}

// FromSlice builds an Array from a typed slice. The dtype is derived from
// the element type, so the result is always valid.
func FromSlice[T Element](data []T) Array {
	vals := make([]int64, len(data))
	for i, v := range data {
		vals[i] = int64(v)
	}

	return Array{dtype: dtypeOf[T](), vals: vals}
}

// FromInt64s builds an Array from widened values, validating that every
// value is representable in the declared dtype.
func FromInt64s(dtype format.Dtype, vals []int64) (Array, error) {
	if !dtype.Valid() {
		return Array{}, fmt.Errorf("%w: %d", errs.ErrUnsupportedDtype, uint8(dtype))
	}
	for i, v := range vals {
		if !dtype.Contains(v) {
			return Array{}, fmt.Errorf("%w: value %d at index %d not representable in %s",
				errs.ErrValueOutOfRange, v, i, dtype)
		}
	}

	return Array{dtype: dtype, vals: vals}, nil
}

// FromBytes reconstructs an Array from its raw little-endian wire bytes.
// The byte length must be a whole multiple of the element size.
func FromBytes(dtype format.Dtype, data []byte, engine endian.EndianEngine) (Array, error) {
	if !dtype.Valid() {
		return Array{}, fmt.Errorf("%w: %d", errs.ErrUnsupportedDtype, uint8(dtype))
	}

	size := dtype.Size()
	if len(data)%size != 0 {
		return Array{}, fmt.Errorf("%w: %d bytes is not a multiple of %s element size",
			errs.ErrTruncatedContainer, len(data), dtype)
	}

	n := len(data) / size
	vals := make([]int64, n)
	for i := range n {
		chunk := data[i*size : (i+1)*size]
		switch dtype {
		case format.DtypeUint8:
			vals[i] = int64(chunk[0])
		case format.DtypeUint16:
			vals[i] = int64(engine.Uint16(chunk))
		case format.DtypeUint32:
			vals[i] = int64(engine.Uint32(chunk))
		case format.DtypeInt16:
			vals[i] = int64(int16(engine.Uint16(chunk)))
		case format.DtypeInt32:
			vals[i] = int64(int32(engine.Uint32(chunk)))
		}
	}

	return Array{dtype: dtype, vals: vals}, nil
}

// Dtype returns the declared element type.
func (a Array) Dtype() format.Dtype {
	return a.dtype
}

// Len returns the number of elements.
func (a Array) Len() int {
	return len(a.vals)
}

// Int64s returns the widened element values. The returned slice is shared;
// callers must not modify it.
func (a Array) Int64s() []int64 {
	return a.vals
}

// Bytes serializes the array at its native element width.
func (a Array) Bytes(engine endian.EndianEngine) []byte {
	size := a.dtype.Size()
	buf := make([]byte, 0, len(a.vals)*size)
	for _, v := range a.vals {
		switch a.dtype {
		case format.DtypeUint8:
			buf = append(buf, uint8(v))
		case format.DtypeUint16:
			buf = engine.AppendUint16(buf, uint16(v))
		case format.DtypeUint32:
			buf = engine.AppendUint32(buf, uint32(v))
		case format.DtypeInt16:
			buf = engine.AppendUint16(buf, uint16(int16(v)))
		case format.DtypeInt32:
			buf = engine.AppendUint32(buf, uint32(int32(v)))
		}
	}

	return buf
}

// ByteLen returns the raw wire size in bytes.
func (a Array) ByteLen() int {
	return len(a.vals) * a.dtype.Size()
}

// Equal reports whether two arrays have the same dtype and identical
// element values.
func (a Array) Equal(other Array) bool {
	if a.dtype != other.dtype || len(a.vals) != len(other.vals) {
		return false
	}
	for i, v := range a.vals {
		if v != other.vals[i] {
			return false
		}
	}

	return true
}

// Slice converts the array back to a typed slice. It fails with
// errs.ErrDtypeMismatch when T does not match the declared dtype.
func Slice[T Element](a Array) ([]T, error) {
	if dtypeOf[T]() != a.dtype {
		return nil, fmt.Errorf("%w: array is %s", errs.ErrDtypeMismatch, a.dtype)
	}

	out := make([]T, len(a.vals))
	for i, v := range a.vals {
		out[i] = T(v)
	}

	return out, nil
}

// dtypeOf maps a compile-time element type to its dtype.
func dtypeOf[T Element]() format.Dtype {
	var zero T
	switch any(zero).(type) {
	case uint8:
		return format.DtypeUint8
	case uint16:
		return format.DtypeUint16
	case uint32:
		return format.DtypeUint32
	case int16:
		return format.DtypeInt16
	default:
		return format.DtypeInt32
	}
}
