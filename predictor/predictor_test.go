package predictor

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func roundTrip(t *testing.T, signal []int64, order int) (coeffs []float32, resid []int64) {
	t.Helper()

	coeffs, initial, resid, err := FitResidual(signal, order, DefaultTrainingSamples)
	require.NoError(t, err)

	out := Reconstruct(coeffs, initial, resid)
	if len(signal) == 0 {
		require.Empty(t, out)
	} else {
		require.Equal(t, signal, out)
	}

	return coeffs, resid
}

func TestFitResidual_Empty(t *testing.T) {
	roundTrip(t, nil, DefaultOrder)
}

func TestFitResidual_ShorterThanOrder(t *testing.T) {
	signal := []int64{5, -3, 8}
	coeffs, initial, resid, err := FitResidual(signal, DefaultOrder, DefaultTrainingSamples)
	require.NoError(t, err)
	require.Empty(t, coeffs)
	require.Equal(t, signal, initial)
	require.Empty(t, resid)
	require.Equal(t, signal, Reconstruct(coeffs, initial, resid))
}

func TestFitResidual_LinearRamp(t *testing.T) {
	// A linear ramp is perfectly predicted by an AR(2) model; the residual
	// after the training burn-in should be dominated by zeros.
	signal := make([]int64, 5000)
	for i := range signal {
		signal[i] = int64(3*i + 17)
	}

	_, resid := roundTrip(t, signal, 2)

	zeros := 0
	for _, r := range resid {
		if r == 0 {
			zeros++
		}
	}
	require.Greater(t, zeros, len(resid)*9/10)
}

func TestFitResidual_ConstantSignal(t *testing.T) {
	// Constant signals make the normal equations singular; the fallback
	// previous-value predictor must still round-trip with zero residual.
	signal := make([]int64, 1000)
	for i := range signal {
		signal[i] = 42
	}

	_, resid := roundTrip(t, signal, DefaultOrder)
	for _, r := range resid {
		require.Zero(t, r)
	}
}

func TestFitResidual_AllZero(t *testing.T) {
	roundTrip(t, make([]int64, 100), DefaultOrder)
}

func TestFitResidual_NoisySine(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	signal := make([]int64, 20000)
	for i := range signal {
		signal[i] = int64(math.Round(1000*math.Sin(float64(i)/50) + rng.NormFloat64()*5))
	}

	roundTrip(t, signal, DefaultOrder)
}

func TestFitResidual_RandomExtremes(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	signal := make([]int64, 10000)
	for i := range signal {
		// Full uint32 range stresses the prediction clamp and rounding.
		signal[i] = int64(rng.Uint32())
	}

	roundTrip(t, signal, DefaultOrder)
}

func TestFitResidual_OrderZero(t *testing.T) {
	signal := []int64{9, 8, 7}
	coeffs, initial, resid, err := FitResidual(signal, 0, DefaultTrainingSamples)
	require.NoError(t, err)
	require.Empty(t, coeffs)
	require.Empty(t, initial)
	require.Equal(t, signal, resid)
	require.Equal(t, signal, Reconstruct(coeffs, initial, resid))
}

func TestFitResidual_InvalidArgs(t *testing.T) {
	_, _, _, err := FitResidual([]int64{1}, -1, 10)
	require.Error(t, err)

	_, _, _, err = FitResidual([]int64{1}, 2, 0)
	require.Error(t, err)
}
