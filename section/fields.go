package section

import (
	"fmt"
	"math"

	"github.com/arloliu/numbench/endian"
	"github.com/arloliu/numbench/errs"
)

// FieldSize is the width of every packed header field in bytes.
const FieldSize = 8

// LengthPrefixSize is the width of the header length prefix in bytes.
const LengthPrefixSize = 4

// FieldWriter packs an ordered sequence of 8-byte fields and prepends the
// 4-byte length of the packed block.
type FieldWriter struct {
	engine endian.EndianEngine
	buf    []byte
}

// NewFieldWriter creates a FieldWriter using the container's little-endian
// wire order.
func NewFieldWriter() *FieldWriter {
	return &FieldWriter{engine: endian.GetLittleEndianEngine()}
}

// PutInt appends one int64 field.
func (w *FieldWriter) PutInt(v int64) {
	w.buf = w.engine.AppendUint64(w.buf, uint64(v))
}

// PutInts appends each value as an int64 field.
func (w *FieldWriter) PutInts(vals []int64) {
	for _, v := range vals {
		w.PutInt(v)
	}
}

// PutFloat appends one IEEE-754 float64 field.
func (w *FieldWriter) PutFloat(v float64) {
	w.buf = w.engine.AppendUint64(w.buf, math.Float64bits(v))
}

// PutFloats appends each value as a float64 field.
func (w *FieldWriter) PutFloats(vals []float64) {
	for _, v := range vals {
		w.PutFloat(v)
	}
}

// Len returns the packed block size in bytes, excluding the length prefix.
func (w *FieldWriter) Len() int {
	return len(w.buf)
}

// Finish returns the length prefix followed by the packed fields.
func (w *FieldWriter) Finish() ([]byte, error) {
	if uint64(len(w.buf)) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: packed header of %d bytes exceeds length prefix",
			errs.ErrHeaderFraming, len(w.buf))
	}

	out := make([]byte, 0, LengthPrefixSize+len(w.buf))
	out = w.engine.AppendUint32(out, uint32(len(w.buf)))
	out = append(out, w.buf...)

	return out, nil
}

// FieldReader consumes 8-byte fields from a packed header block, enforcing
// that reads stay inside the declared header length.
type FieldReader struct {
	engine endian.EndianEngine
	data   []byte
	pos    int
}

// NewFieldReader reads the 4-byte length prefix from buf and returns a
// reader over exactly that many header bytes plus the remaining container
// bytes after the header. The full header is sliced up front; nothing is
// interpreted lazily.
func NewFieldReader(buf []byte) (*FieldReader, []byte, error) {
	engine := endian.GetLittleEndianEngine()
	if len(buf) < LengthPrefixSize {
		return nil, nil, fmt.Errorf("%w: %d bytes is shorter than the length prefix",
			errs.ErrHeaderFraming, len(buf))
	}

	headerLen := int(engine.Uint32(buf[:LengthPrefixSize]))
	if len(buf)-LengthPrefixSize < headerLen {
		return nil, nil, fmt.Errorf("%w: declared header length %d exceeds remaining %d bytes",
			errs.ErrHeaderFraming, headerLen, len(buf)-LengthPrefixSize)
	}
	if headerLen%FieldSize != 0 {
		return nil, nil, fmt.Errorf("%w: header length %d is not a multiple of the field size",
			errs.ErrHeaderFraming, headerLen)
	}

	r := &FieldReader{
		engine: engine,
		data:   buf[LengthPrefixSize : LengthPrefixSize+headerLen],
	}

	return r, buf[LengthPrefixSize+headerLen:], nil
}

// Int consumes one int64 field.
func (r *FieldReader) Int() (int64, error) {
	if r.pos+FieldSize > len(r.data) {
		return 0, fmt.Errorf("%w: field read past declared header length %d",
			errs.ErrHeaderFraming, len(r.data))
	}

	v := int64(r.engine.Uint64(r.data[r.pos : r.pos+FieldSize]))
	r.pos += FieldSize

	return v, nil
}

// Ints consumes count int64 fields.
func (r *FieldReader) Ints(count int) ([]int64, error) {
	if count < 0 {
		return nil, fmt.Errorf("%w: negative field count %d", errs.ErrHeaderFraming, count)
	}

	out := make([]int64, count)
	for i := range out {
		v, err := r.Int()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}

	return out, nil
}

// Float consumes one float64 field.
func (r *FieldReader) Float() (float64, error) {
	v, err := r.Int()
	if err != nil {
		return 0, err
	}

	return math.Float64frombits(uint64(v)), nil
}

// Floats consumes count float64 fields.
func (r *FieldReader) Floats(count int) ([]float64, error) {
	if count < 0 {
		return nil, fmt.Errorf("%w: negative field count %d", errs.ErrHeaderFraming, count)
	}

	out := make([]float64, count)
	for i := range out {
		v, err := r.Float()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}

	return out, nil
}

// Close verifies that every declared header byte was consumed. Trailing
// fields the layout did not account for are a framing error.
func (r *FieldReader) Close() error {
	if r.pos != len(r.data) {
		return fmt.Errorf("%w: %d trailing header bytes", errs.ErrHeaderFraming, len(r.data)-r.pos)
	}

	return nil
}
