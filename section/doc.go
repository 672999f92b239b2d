// Package section implements the header codec of the container format.
//
// A header is a length-prefixed block of consecutive 8-byte fields: a 4-byte
// little-endian unsigned length followed by that many bytes of packed fields.
// Integer fields (int64) come first, followed by an IEEE-754 float64 section
// holding predictor coefficients; the counts for both sections live in the
// integer section, so the two kinds never share a bit pattern.
//
// The low-level FieldWriter/FieldReader pair handles framing: the reader
// consumes fields against the declared header length and fails with
// errs.ErrHeaderFraming on any short or trailing read. The Header struct
// layers the container's field layout on top, with symmetric Bytes and
// ParseHeader operations.
package section
