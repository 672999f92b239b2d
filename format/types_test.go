package format

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/numbench/errs"
)

func TestDtypeProperties(t *testing.T) {
	tests := []struct {
		dtype  Dtype
		name   string
		size   int
		signed bool
		min    int64
		max    int64
	}{
		{DtypeUint8, "uint8", 1, false, 0, math.MaxUint8},
		{DtypeUint16, "uint16", 2, false, 0, math.MaxUint16},
		{DtypeUint32, "uint32", 4, false, 0, math.MaxUint32},
		{DtypeInt16, "int16", 2, true, math.MinInt16, math.MaxInt16},
		{DtypeInt32, "int32", 4, true, math.MinInt32, math.MaxInt32},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.True(t, tt.dtype.Valid())
			require.Equal(t, tt.name, tt.dtype.String())
			require.Equal(t, tt.size, tt.dtype.Size())
			require.Equal(t, tt.signed, tt.dtype.Signed())
			require.Equal(t, tt.min, tt.dtype.Min())
			require.Equal(t, tt.max, tt.dtype.Max())

			require.True(t, tt.dtype.Contains(tt.min))
			require.True(t, tt.dtype.Contains(tt.max))
			require.False(t, tt.dtype.Contains(tt.min-1))
			require.False(t, tt.dtype.Contains(tt.max+1))
		})
	}
}

func TestDtypeCodes(t *testing.T) {
	for code := uint8(0); code <= 4; code++ {
		dtype, err := DtypeFromCode(code)
		require.NoError(t, err)

		back, err := dtype.Code()
		require.NoError(t, err)
		require.Equal(t, code, back)
	}

	_, err := DtypeFromCode(5)
	require.ErrorIs(t, err, errs.ErrUnknownDtypeCode)

	_, err = Dtype(99).Code()
	require.ErrorIs(t, err, errs.ErrUnsupportedDtype)
}

func TestVariantValidity(t *testing.T) {
	for _, v := range []Variant{VariantPlain, VariantDelta, VariantPredictive, VariantSparse} {
		require.True(t, v.Valid())
		require.NotEqual(t, "unknown", v.String())
	}
	require.False(t, Variant(0).Valid())
	require.False(t, Variant(0x7F).Valid())
}

func TestPayloadCodecValidity(t *testing.T) {
	for _, c := range []PayloadCodec{PayloadANS, PayloadNone, PayloadZstd, PayloadS2, PayloadLZ4} {
		require.True(t, c.Valid())
	}
	require.False(t, PayloadCodec(0).Valid())

	require.True(t, PayloadANS.Entropy())
	require.False(t, PayloadZstd.Entropy())
	require.False(t, PayloadNone.Entropy())
}

func TestRunWidth(t *testing.T) {
	tests := []struct {
		width RunWidth
		bytes int
		max   uint32
	}{
		{RunWidth8, 1, math.MaxUint8},
		{RunWidth16, 2, math.MaxUint16},
		{RunWidth32, 4, math.MaxUint32},
	}
	for _, tt := range tests {
		require.True(t, tt.width.Valid())
		require.Equal(t, tt.bytes, tt.width.Bytes())
		require.Equal(t, tt.max, tt.width.Max())
	}
	require.False(t, RunWidth(3).Valid())
}

func TestNarrowestRunWidth(t *testing.T) {
	require.Equal(t, RunWidth8, NarrowestRunWidth(0))
	require.Equal(t, RunWidth8, NarrowestRunWidth(math.MaxUint8))
	require.Equal(t, RunWidth16, NarrowestRunWidth(math.MaxUint8+1))
	require.Equal(t, RunWidth16, NarrowestRunWidth(math.MaxUint16))
	require.Equal(t, RunWidth32, NarrowestRunWidth(math.MaxUint16+1))
	require.Equal(t, RunWidth32, NarrowestRunWidth(math.MaxUint32))
}
