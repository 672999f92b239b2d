package encoding

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDeltaEncode_Basic(t *testing.T) {
	// u8 sequence from the container's reference trace: x=[10,12,11,15]
	first, diffs := DeltaEncode([]int64{10, 12, 11, 15})
	require.Equal(t, int64(10), first)
	require.Equal(t, []int64{2, -1, 4}, diffs)

	require.Equal(t, []int64{10, 12, 11, 15}, DeltaDecode(first, diffs))
}

func TestDeltaEncode_Empty(t *testing.T) {
	first, diffs := DeltaEncode(nil)
	require.Equal(t, int64(0), first)
	require.Empty(t, diffs)
}

func TestDeltaEncode_SingleElement(t *testing.T) {
	first, diffs := DeltaEncode([]int64{-42})
	require.Equal(t, int64(-42), first)
	require.Empty(t, diffs)
	require.Equal(t, []int64{-42}, DeltaDecode(first, diffs))
}

func TestDeltaEncode_UnsignedExtremes(t *testing.T) {
	// Differencing uint32 extremes requires the widened signed intermediate.
	vals := []int64{math.MaxUint32, 0, math.MaxUint32}
	first, diffs := DeltaEncode(vals)
	require.Equal(t, []int64{-math.MaxUint32, math.MaxUint32}, diffs)
	require.Equal(t, vals, DeltaDecode(first, diffs))
}

func TestDeltaRoundTrip_Random(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	vals := make([]int64, 10000)
	for i := range vals {
		vals[i] = int64(int32(rng.Uint32()))
	}

	first, diffs := DeltaEncode(vals)
	require.Equal(t, vals, DeltaDecode(first, diffs))
}
