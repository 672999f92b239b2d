package encoding

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/numbench/endian"
	"github.com/arloliu/numbench/errs"
	"github.com/arloliu/numbench/format"
)

func TestSegment(t *testing.T) {
	tests := []struct {
		name     string
		vals     []int64
		wantRuns []uint32
		wantNZ   []int64
	}{
		{
			name:     "leading zeros",
			vals:     []int64{0, 0, 5, 6, 0, 7},
			wantRuns: []uint32{0, 2, 2, 1, 1},
			wantNZ:   []int64{5, 6, 7},
		},
		{
			name:     "starts and ends non-zero",
			vals:     []int64{1, 2, 0, 3},
			wantRuns: []uint32{2, 1, 1},
			wantNZ:   []int64{1, 2, 3},
		},
		{
			name:     "ends on zeros",
			vals:     []int64{4, 0, 0, 0},
			wantRuns: []uint32{1, 3},
			wantNZ:   []int64{4},
		},
		{
			name:     "all zeros",
			vals:     []int64{0, 0, 0},
			wantRuns: []uint32{0, 3},
			wantNZ:   nil,
		},
		{
			name:     "all non-zero",
			vals:     []int64{-1, 2, -3},
			wantRuns: []uint32{3},
			wantNZ:   []int64{-1, 2, -3},
		},
		{
			name:     "empty",
			vals:     nil,
			wantRuns: nil,
			wantNZ:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runs, nonZero, err := Segment(tt.vals)
			require.NoError(t, err)
			require.Equal(t, tt.wantRuns, runs)
			require.Equal(t, tt.wantNZ, nonZero)

			// Invariants: even-indexed sum equals payload length,
			// total sum equals array length.
			var evenSum, total uint64
			for i, r := range runs {
				total += uint64(r)
				if i%2 == 0 {
					evenSum += uint64(r)
				}
			}
			require.Equal(t, uint64(len(nonZero)), evenSum)
			require.Equal(t, uint64(len(tt.vals)), total)

			back, err := Desegment(runs, nonZero)
			require.NoError(t, err)
			if len(tt.vals) == 0 {
				require.Empty(t, back)
			} else {
				require.Equal(t, tt.vals, back)
			}
		})
	}
}

func TestDesegment_PayloadMismatch(t *testing.T) {
	_, err := Desegment([]uint32{2, 1}, []int64{5})
	require.ErrorIs(t, err, errs.ErrRunLengthMismatch)

	_, err = Desegment([]uint32{0, 2}, []int64{5})
	require.ErrorIs(t, err, errs.ErrRunLengthMismatch)
}

func TestDesegment_ZeroLengthRunsAtBoundaries(t *testing.T) {
	// A zero-length zero-run at the end is legal and consumes nothing.
	out, err := Desegment([]uint32{1, 0}, []int64{9})
	require.NoError(t, err)
	require.Equal(t, []int64{9}, out)
}

func TestSegmentRoundTrip_Random(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	vals := make([]int64, 50000)
	for i := range vals {
		// Roughly 70% zeros to exercise long runs of both kinds.
		if rng.Intn(10) < 7 {
			vals[i] = 0
		} else {
			vals[i] = int64(rng.Intn(200) - 100)
		}
	}

	runs, nonZero, err := Segment(vals)
	require.NoError(t, err)

	back, err := Desegment(runs, nonZero)
	require.NoError(t, err)
	require.Equal(t, vals, back)
}

func TestNarrowestRunWidth(t *testing.T) {
	require.Equal(t, format.RunWidth8, format.NarrowestRunWidth(0))
	require.Equal(t, format.RunWidth8, format.NarrowestRunWidth(255))
	require.Equal(t, format.RunWidth16, format.NarrowestRunWidth(256))
	require.Equal(t, format.RunWidth16, format.NarrowestRunWidth(65535))
	require.Equal(t, format.RunWidth32, format.NarrowestRunWidth(65536))
}

func TestPackUnpackRuns(t *testing.T) {
	engine := endian.GetLittleEndianEngine()
	runs := []uint32{0, 300, 2, 70000}

	for _, width := range []format.RunWidth{format.RunWidth32} {
		packed, err := PackRuns(runs, width, engine)
		require.NoError(t, err)
		require.Len(t, packed, len(runs)*width.Bytes())

		back, err := UnpackRuns(packed, len(runs), width, engine)
		require.NoError(t, err)
		require.Equal(t, runs, back)
	}
}

func TestPackRuns_WidthOverflow(t *testing.T) {
	engine := endian.GetLittleEndianEngine()
	_, err := PackRuns([]uint32{300}, format.RunWidth8, engine)
	require.ErrorIs(t, err, errs.ErrRunTooLong)
}

func TestUnpackRuns_SizeMismatch(t *testing.T) {
	engine := endian.GetLittleEndianEngine()
	_, err := UnpackRuns([]byte{1, 2, 3}, 2, format.RunWidth16, engine)
	require.ErrorIs(t, err, errs.ErrTruncatedContainer)
}
