package section

import (
	"fmt"
	"math"

	"github.com/arloliu/numbench/errs"
	"github.com/arloliu/numbench/format"
)

const (
	// MagicNumber identifies a numbench container header.
	MagicNumber uint16 = 0xBEC1
	// FormatVersion is the current container format version.
	FormatVersion uint8 = 1
)

// Flag is the packed first header field: magic number, format version and
// the codes that determine the rest of the field layout.
type Flag struct {
	Magic    uint16
	Version  uint8
	Variant  format.Variant
	Dtype    format.Dtype
	Codec    format.PayloadCodec
	RunWidth format.RunWidth
}

// NewFlag creates a Flag for the given variant, dtype and payload codec.
// The run width is meaningful only for the sparse variant and defaults to
// the 8-bit code.
func NewFlag(variant format.Variant, dtype format.Dtype, codec format.PayloadCodec) Flag {
	return Flag{
		Magic:   MagicNumber,
		Version: FormatVersion,
		Variant: variant,
		Dtype:   dtype,
		Codec:   codec,
	}
}

// pack encodes the flag into one 8-byte header field.
// Byte layout (low to high): magic (2), version, variant, dtype code,
// payload codec, run width code, reserved.
func (f Flag) pack() int64 {
	v := uint64(f.Magic) |
		uint64(f.Version)<<16 |
		uint64(f.Variant)<<24 |
		uint64(f.Dtype)<<32 |
		uint64(f.Codec)<<40 |
		uint64(f.RunWidth)<<48

	return int64(v)
}

// unpackFlag decodes the packed flag field.
func unpackFlag(field int64) Flag {
	v := uint64(field)

	return Flag{
		Magic:    uint16(v),
		Version:  uint8(v >> 16),
		Variant:  format.Variant(v >> 24),
		Dtype:    format.Dtype(v >> 32),
		Codec:    format.PayloadCodec(v >> 40),
		RunWidth: format.RunWidth(v >> 48),
	}
}

// Validate checks the flag against the registry of supported codes.
func (f Flag) Validate() error {
	if f.Magic != MagicNumber {
		return fmt.Errorf("%w: 0x%04X", errs.ErrInvalidMagicNumber, f.Magic)
	}
	if f.Version != FormatVersion {
		return fmt.Errorf("%w: unsupported version %d", errs.ErrHeaderFraming, f.Version)
	}
	if !f.Variant.Valid() {
		return fmt.Errorf("%w: %d", errs.ErrInvalidVariant, uint8(f.Variant))
	}
	if !f.Codec.Valid() {
		return fmt.Errorf("%w: %d", errs.ErrInvalidPayloadCodec, uint8(f.Codec))
	}
	if _, err := format.DtypeFromCode(uint8(f.Dtype)); err != nil {
		return err
	}
	if f.Variant == format.VariantSparse && !f.RunWidth.Valid() {
		return fmt.Errorf("%w: %d", errs.ErrInvalidRunWidth, uint8(f.RunWidth))
	}

	return nil
}

// SignalInfo carries the entropy coder's side information through the
// header: the frequency table and coder state needed to invert the opaque
// bitstream payload.
type SignalInfo struct {
	BitWidth     int
	SignalLength int
	State        uint64
	SymbolCounts []uint32
	SymbolValues []int64
}

// Header is the complete parsed header of one container.
//
// Which fields are populated follows from the flag: Signal is present for
// entropy-coded payloads, First for the delta variant, InitialValues and
// Coefficients for the predictive variants, RunCount for the sparse variant.
type Header struct {
	Flag       Flag
	ArrayLen   int64
	PayloadLen int64

	Signal *SignalInfo

	First         int64
	InitialValues []int64
	Coefficients  []float64
	RunCount      int64
}

// Bytes serializes the header as a length-prefixed packed field block.
//
// Integer fields are written first, the float64 coefficient section last,
// with every count the parser needs preceding the counted fields.
func (h *Header) Bytes() ([]byte, error) {
	if err := h.Flag.Validate(); err != nil {
		return nil, err
	}

	w := NewFieldWriter()
	w.PutInt(h.Flag.pack())
	w.PutInt(h.ArrayLen)
	w.PutInt(h.PayloadLen)

	if h.Flag.Codec.Entropy() {
		if h.Signal == nil {
			return nil, fmt.Errorf("%w: entropy codec without signal info", errs.ErrHeaderFraming)
		}
		w.PutInt(int64(h.Signal.BitWidth))
		w.PutInt(int64(h.Signal.SignalLength))
		w.PutInt(int64(h.Signal.State))
		w.PutInt(int64(len(h.Signal.SymbolCounts)))
		for _, c := range h.Signal.SymbolCounts {
			w.PutInt(int64(c))
		}
		w.PutInts(h.Signal.SymbolValues)
	}

	switch h.Flag.Variant {
	case format.VariantPlain:
	case format.VariantDelta:
		w.PutInt(h.First)
	case format.VariantPredictive, format.VariantSparse:
		w.PutInt(int64(len(h.Coefficients)))
		w.PutInt(int64(len(h.InitialValues)))
		w.PutInts(h.InitialValues)
		if h.Flag.Variant == format.VariantSparse {
			w.PutInt(h.RunCount)
		}
		w.PutFloats(h.Coefficients)
	}

	return w.Finish()
}

// ParseHeader reads a header from the start of a container buffer and
// returns it with the remaining bytes after the declared header length.
//
// The field layout consumed here mirrors Bytes exactly; the reader enforces
// that parsing stops at the declared header length.
func ParseHeader(buf []byte) (*Header, []byte, error) {
	r, rest, err := NewFieldReader(buf)
	if err != nil {
		return nil, nil, err
	}

	flagField, err := r.Int()
	if err != nil {
		return nil, nil, err
	}

	h := &Header{Flag: unpackFlag(flagField)}
	if err := h.Flag.Validate(); err != nil {
		return nil, nil, err
	}

	if h.ArrayLen, err = r.Int(); err != nil {
		return nil, nil, err
	}
	if h.PayloadLen, err = r.Int(); err != nil {
		return nil, nil, err
	}
	if h.ArrayLen < 0 || h.PayloadLen < 0 {
		return nil, nil, fmt.Errorf("%w: negative length field", errs.ErrHeaderFraming)
	}

	if h.Flag.Codec.Entropy() {
		if err := parseSignalInfo(r, h); err != nil {
			return nil, nil, err
		}
	}

	switch h.Flag.Variant {
	case format.VariantPlain:
	case format.VariantDelta:
		if h.First, err = r.Int(); err != nil {
			return nil, nil, err
		}
	case format.VariantPredictive, format.VariantSparse:
		numCoeffs, err := r.Int()
		if err != nil {
			return nil, nil, err
		}
		numInitial, err := r.Int()
		if err != nil {
			return nil, nil, err
		}
		if h.InitialValues, err = r.Ints(int(numInitial)); err != nil {
			return nil, nil, err
		}
		if h.Flag.Variant == format.VariantSparse {
			if h.RunCount, err = r.Int(); err != nil {
				return nil, nil, err
			}
			if h.RunCount < 0 {
				return nil, nil, fmt.Errorf("%w: negative run count", errs.ErrHeaderFraming)
			}
		}
		if h.Coefficients, err = r.Floats(int(numCoeffs)); err != nil {
			return nil, nil, err
		}
	}

	if err := r.Close(); err != nil {
		return nil, nil, err
	}

	return h, rest, nil
}

// parseSignalInfo consumes the entropy-coder side fields.
func parseSignalInfo(r *FieldReader, h *Header) error {
	bitWidth, err := r.Int()
	if err != nil {
		return err
	}
	signalLen, err := r.Int()
	if err != nil {
		return err
	}
	state, err := r.Int()
	if err != nil {
		return err
	}
	numSymbols, err := r.Int()
	if err != nil {
		return err
	}
	if signalLen < 0 || numSymbols < 0 {
		return fmt.Errorf("%w: negative signal field", errs.ErrHeaderFraming)
	}

	countFields, err := r.Ints(int(numSymbols))
	if err != nil {
		return err
	}
	counts := make([]uint32, len(countFields))
	for i, c := range countFields {
		if c < 0 || c > math.MaxUint32 {
			return fmt.Errorf("%w: symbol count %d out of range", errs.ErrHeaderFraming, c)
		}
		counts[i] = uint32(c)
	}

	values, err := r.Ints(int(numSymbols))
	if err != nil {
		return err
	}

	h.Signal = &SignalInfo{
		BitWidth:     int(bitWidth),
		SignalLength: int(signalLen),
		State:        uint64(state),
		SymbolCounts: counts,
		SymbolValues: values,
	}

	return nil
}
