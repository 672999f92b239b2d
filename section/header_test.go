package section

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/numbench/errs"
	"github.com/arloliu/numbench/format"
)

func TestFlagPackUnpack(t *testing.T) {
	flag := NewFlag(format.VariantSparse, format.DtypeInt16, format.PayloadANS)
	flag.RunWidth = format.RunWidth16

	got := unpackFlag(flag.pack())
	require.Equal(t, flag, got)
	require.NoError(t, got.Validate())
}

func TestFlagValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Flag)
		wantErr error
	}{
		{"bad magic", func(f *Flag) { f.Magic = 0x1234 }, errs.ErrInvalidMagicNumber},
		{"bad version", func(f *Flag) { f.Version = 9 }, errs.ErrHeaderFraming},
		{"bad variant", func(f *Flag) { f.Variant = 0x7F }, errs.ErrInvalidVariant},
		{"bad codec", func(f *Flag) { f.Codec = 0x7F }, errs.ErrInvalidPayloadCodec},
		{"bad dtype code", func(f *Flag) { f.Dtype = 0x7F }, errs.ErrUnknownDtypeCode},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag := NewFlag(format.VariantPlain, format.DtypeUint8, format.PayloadZstd)
			tt.mutate(&flag)
			require.ErrorIs(t, flag.Validate(), tt.wantErr)
		})
	}

	t.Run("sparse requires valid run width", func(t *testing.T) {
		flag := NewFlag(format.VariantSparse, format.DtypeInt32, format.PayloadANS)
		flag.RunWidth = 0x7F
		require.ErrorIs(t, flag.Validate(), errs.ErrInvalidRunWidth)
	})
}

func TestHeaderRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		header Header
	}{
		{
			name: "plain with compressor payload",
			header: Header{
				Flag:       NewFlag(format.VariantPlain, format.DtypeUint32, format.PayloadZstd),
				ArrayLen:   1000,
				PayloadLen: 417,
			},
		},
		{
			name: "delta with entropy payload",
			header: Header{
				Flag:       NewFlag(format.VariantDelta, format.DtypeInt16, format.PayloadANS),
				ArrayLen:   6,
				PayloadLen: 8,
				First:      -300,
				Signal: &SignalInfo{
					BitWidth:     12,
					SignalLength: 5,
					State:        1 << 31,
					SymbolCounts: []uint32{2048, 1024, 1024},
					SymbolValues: []int64{-1, 0, 1},
				},
			},
		},
		{
			name: "predictive",
			header: Header{
				Flag:          NewFlag(format.VariantPredictive, format.DtypeInt32, format.PayloadLZ4),
				ArrayLen:      500,
				PayloadLen:    240,
				InitialValues: []int64{10, 20, 30},
				Coefficients:  []float64{1.5, -0.5, 0.0},
			},
		},
		{
			name: "sparse",
			header: Header{
				Flag: func() Flag {
					f := NewFlag(format.VariantSparse, format.DtypeInt16, format.PayloadANS)
					f.RunWidth = format.RunWidth8
					return f
				}(),
				ArrayLen:      6,
				PayloadLen:    8,
				InitialValues: []int64{5},
				Coefficients:  []float64{1.0},
				RunCount:      5,
				Signal: &SignalInfo{
					BitWidth:     12,
					SignalLength: 2,
					State:        1 << 31,
					SymbolCounts: []uint32{4096},
					SymbolValues: []int64{1},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf, err := tt.header.Bytes()
			require.NoError(t, err)

			got, rest, err := ParseHeader(buf)
			require.NoError(t, err)
			require.Empty(t, rest)
			require.Equal(t, &tt.header, got)
		})
	}
}

func TestHeaderParseRemainderIsPayload(t *testing.T) {
	h := Header{
		Flag:       NewFlag(format.VariantPlain, format.DtypeUint8, format.PayloadS2),
		ArrayLen:   4,
		PayloadLen: 4,
	}
	buf, err := h.Bytes()
	require.NoError(t, err)

	payload := []byte{1, 2, 3, 4}
	container := append(buf, payload...)

	got, rest, err := ParseHeader(container)
	require.NoError(t, err)
	require.Equal(t, payload, rest)
	require.Equal(t, h.ArrayLen, got.ArrayLen)
}

func TestHeaderParseErrors(t *testing.T) {
	t.Run("declared coefficients exceed header length", func(t *testing.T) {
		h := Header{
			Flag:          NewFlag(format.VariantPredictive, format.DtypeInt16, format.PayloadZstd),
			ArrayLen:      10,
			PayloadLen:    20,
			InitialValues: []int64{1, 2},
			Coefficients:  []float64{0.5, 0.25},
		}
		buf, err := h.Bytes()
		require.NoError(t, err)

		// Bump the declared coefficient count from 2 to 3 without adding a
		// field, so the reader runs off the declared header end.
		countOff := LengthPrefixSize + 3*FieldSize
		require.Equal(t, byte(2), buf[countOff])
		buf[countOff] = 3

		_, _, err = ParseHeader(buf)
		require.ErrorIs(t, err, errs.ErrHeaderFraming)
	})

	t.Run("entropy codec without signal info", func(t *testing.T) {
		h := Header{
			Flag:     NewFlag(format.VariantPlain, format.DtypeUint8, format.PayloadANS),
			ArrayLen: 1,
		}
		_, err := h.Bytes()
		require.ErrorIs(t, err, errs.ErrHeaderFraming)
	})

	t.Run("truncated container", func(t *testing.T) {
		h := Header{
			Flag:     NewFlag(format.VariantPlain, format.DtypeUint8, format.PayloadNone),
			ArrayLen: 1,
		}
		buf, err := h.Bytes()
		require.NoError(t, err)

		_, _, err = ParseHeader(buf[:len(buf)-3])
		require.ErrorIs(t, err, errs.ErrHeaderFraming)
	})

	t.Run("negative array length", func(t *testing.T) {
		h := Header{
			Flag:       NewFlag(format.VariantPlain, format.DtypeUint8, format.PayloadNone),
			ArrayLen:   5,
			PayloadLen: 5,
		}
		buf, err := h.Bytes()
		require.NoError(t, err)

		// Overwrite the arrayLen field with -1.
		off := LengthPrefixSize + FieldSize
		for i := 0; i < FieldSize; i++ {
			buf[off+i] = 0xFF
		}

		_, _, err = ParseHeader(buf)
		require.ErrorIs(t, err, errs.ErrHeaderFraming)
	})
}
