// Package errs defines the sentinel error values shared across numbench
// packages. Callers match them with errors.Is after unwrapping.
package errs

import "errors"

var (
	// ErrUnsupportedDtype is returned on the encode path when the element
	// type is not one of the five supported integer dtypes.
	ErrUnsupportedDtype = errors.New("unsupported dtype")

	// ErrUnknownDtypeCode is returned on the decode path when a header
	// carries a dtype wire code outside the 0-4 registry.
	ErrUnknownDtypeCode = errors.New("unknown dtype code")

	// ErrDtypeMismatch is returned when the caller-declared dtype disagrees
	// with the dtype code recovered from the container header.
	ErrDtypeMismatch = errors.New("declared dtype does not match header")

	// ErrHeaderFraming is returned for corrupt or truncated headers: a short
	// length prefix, fields extending past the declared header length, or
	// trailing header bytes the field layout does not account for.
	ErrHeaderFraming = errors.New("header framing error")

	// ErrTruncatedContainer is returned when the container buffer is shorter
	// than the header-declared payload and table sizes require, or carries
	// unaccounted trailing bytes.
	ErrTruncatedContainer = errors.New("truncated container")

	// ErrRunLengthMismatch is returned when the run-length table disagrees
	// with the non-zero payload or the declared array length.
	ErrRunLengthMismatch = errors.New("run length mismatch")

	// ErrRunTooLong is returned when a run length cannot be represented at
	// the selected fixed width.
	ErrRunTooLong = errors.New("run length exceeds width")

	// ErrInvalidMagicNumber is returned when the header flag field does not
	// carry the container magic number.
	ErrInvalidMagicNumber = errors.New("invalid magic number")

	// ErrInvalidVariant is returned for transform variant codes outside the
	// defined set.
	ErrInvalidVariant = errors.New("invalid transform variant")

	// ErrInvalidPayloadCodec is returned for payload codec codes outside the
	// defined set.
	ErrInvalidPayloadCodec = errors.New("invalid payload codec")

	// ErrInvalidRunWidth is returned for run-length width codes outside the
	// defined set.
	ErrInvalidRunWidth = errors.New("invalid run length width")

	// ErrValueOutOfRange is returned when a value cannot be represented in
	// the declared dtype.
	ErrValueOutOfRange = errors.New("value out of dtype range")

	// ErrCorruptSignal is returned when an entropy-coded signal is
	// internally inconsistent and cannot be decoded.
	ErrCorruptSignal = errors.New("corrupt entropy-coded signal")
)
