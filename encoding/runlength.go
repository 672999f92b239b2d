package encoding

import (
	"fmt"
	"math"

	"github.com/arloliu/numbench/endian"
	"github.com/arloliu/numbench/errs"
	"github.com/arloliu/numbench/format"
)

// Segment splits vals into alternating runs of non-zero and zero elements.
//
// Even-indexed entries of runLengths are non-zero-run lengths and odd-indexed
// entries are zero-run lengths, strictly alternating. The sequence always
// starts with a non-zero-run count, which is 0 when the array begins with
// zeros, and ends with whichever run type the array ends on. nonZero is the
// concatenation of all non-zero runs in order.
//
// Segment fails with errs.ErrRunTooLong if any run exceeds the uint32 range.
func Segment(vals []int64) (runLengths []uint32, nonZero []int64, err error) {
	if len(vals) == 0 {
		return nil, nil, nil
	}

	// Alternation starts on a non-zero run; emit a zero-length one when the
	// array opens with zeros.
	if vals[0] == 0 {
		runLengths = append(runLengths, 0)
	}

	i := 0
	for i < len(vals) {
		zero := vals[i] == 0
		start := i
		for i < len(vals) && (vals[i] == 0) == zero {
			i++
		}

		runLen := i - start
		if uint64(runLen) > math.MaxUint32 {
			return nil, nil, fmt.Errorf("%w: run of %d elements", errs.ErrRunTooLong, runLen)
		}

		runLengths = append(runLengths, uint32(runLen))
		if !zero {
			nonZero = append(nonZero, vals[start:i]...)
		}
	}

	return runLengths, nonZero, nil
}

// Desegment reverses Segment: it replays the alternating runs, pulling
// consecutive slices from nonZero for non-zero runs and emitting zero-filled
// runs otherwise.
//
// It fails with errs.ErrRunLengthMismatch when the sum of even-indexed run
// lengths does not equal len(nonZero). Zero-length runs are legal anywhere
// and consume nothing.
func Desegment(runLengths []uint32, nonZero []int64) ([]int64, error) {
	var total, nonZeroTotal uint64
	for i, r := range runLengths {
		total += uint64(r)
		if i%2 == 0 {
			nonZeroTotal += uint64(r)
		}
	}
	if nonZeroTotal != uint64(len(nonZero)) {
		return nil, fmt.Errorf("%w: run lengths declare %d non-zero elements, payload has %d",
			errs.ErrRunLengthMismatch, nonZeroTotal, len(nonZero))
	}

	out := make([]int64, 0, total)
	pos := 0
	for i, r := range runLengths {
		n := int(r)
		if i%2 == 0 {
			out = append(out, nonZero[pos:pos+n]...)
			pos += n
		} else {
			out = append(out, make([]int64, n)...)
		}
	}

	return out, nil
}

// MaxRun returns the largest entry of runLengths, or 0 for an empty table.
func MaxRun(runLengths []uint32) uint32 {
	var maxRun uint32
	for _, r := range runLengths {
		if r > maxRun {
			maxRun = r
		}
	}

	return maxRun
}

// PackRuns serializes runLengths as consecutive fixed-width unsigned
// integers at the given width. It fails with errs.ErrRunTooLong when an
// entry does not fit the width; encoders that pick the width with
// format.NarrowestRunWidth never hit this.
func PackRuns(runLengths []uint32, width format.RunWidth, engine endian.EndianEngine) ([]byte, error) {
	if !width.Valid() {
		return nil, fmt.Errorf("%w: %d", errs.ErrInvalidRunWidth, uint8(width))
	}

	buf := make([]byte, 0, len(runLengths)*width.Bytes())
	for _, r := range runLengths {
		if r > width.Max() {
			return nil, fmt.Errorf("%w: run %d exceeds %s", errs.ErrRunTooLong, r, width)
		}
		switch width {
		case format.RunWidth8:
			buf = append(buf, uint8(r))
		case format.RunWidth16:
			buf = engine.AppendUint16(buf, uint16(r))
		case format.RunWidth32:
			buf = engine.AppendUint32(buf, r)
		}
	}

	return buf, nil
}

// UnpackRuns parses count fixed-width run lengths from data. The byte
// length must match count*width exactly; any surplus or shortfall is an
// errs.ErrTruncatedContainer since the table occupies the whole remainder
// of a container.
func UnpackRuns(data []byte, count int, width format.RunWidth, engine endian.EndianEngine) ([]uint32, error) {
	if !width.Valid() {
		return nil, fmt.Errorf("%w: %d", errs.ErrInvalidRunWidth, uint8(width))
	}
	if len(data) != count*width.Bytes() {
		return nil, fmt.Errorf("%w: run length table is %d bytes, expected %d entries of %s",
			errs.ErrTruncatedContainer, len(data), count, width)
	}

	runs := make([]uint32, count)
	size := width.Bytes()
	for i := range count {
		chunk := data[i*size : (i+1)*size]
		switch width {
		case format.RunWidth8:
			runs[i] = uint32(chunk[0])
		case format.RunWidth16:
			runs[i] = uint32(engine.Uint16(chunk))
		case format.RunWidth32:
			runs[i] = engine.Uint32(chunk)
		}
	}

	return runs, nil
}
