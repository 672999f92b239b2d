// Package predictor implements the linear-predictor collaborator of the
// container format: an order-M autoregressive model fitted by least squares.
//
// FitResidual fits coefficients on a training prefix of the signal and
// returns the prediction residual; Reconstruct replays the same prediction
// arithmetic to rebuild the signal from the residual. The pair is bit-exact
// for any signal because both sides round predictions identically from the
// same float32-quantized coefficients.
package predictor

import (
	"errors"
	"fmt"
	"math"
)

const (
	// DefaultOrder is the predictor order used by the container encoder.
	DefaultOrder = 6
	// DefaultTrainingSamples caps the number of training rows in the
	// normal-equation accumulation.
	DefaultTrainingSamples = 10000
)

// predClamp bounds rounded predictions so the float-to-int conversion stays
// inside the int64 range on both the fit and reconstruct paths.
const predClamp = float64(1 << 62)

// FitResidual fits an order-M linear predictor to signal and returns the
// float32 coefficients, the first min(order, len(signal)) values needed to
// seed reconstruction, and the prediction residual for the remaining
// elements.
//
// Signals no longer than the order carry no residual: the initial values are
// the whole signal and the coefficient set is empty.
func FitResidual(signal []int64, order, trainingSamples int) (coeffs []float32, initial []int64, resid []int64, err error) {
	if order < 0 {
		return nil, nil, nil, fmt.Errorf("negative predictor order %d", order)
	}
	if trainingSamples <= 0 {
		return nil, nil, nil, errors.New("training sample count must be positive")
	}

	n := len(signal)
	if n <= order {
		initial = append([]int64(nil), signal...)
		return nil, initial, nil, nil
	}

	coeffs = fit(signal, order, trainingSamples)
	initial = append([]int64(nil), signal[:order]...)

	resid = make([]int64, n-order)
	for i := order; i < n; i++ {
		resid[i-order] = signal[i] - predict(coeffs, signal, i)
	}

	return coeffs, initial, resid, nil
}

// Reconstruct inverts FitResidual: it seeds the output with the initial
// values and replays the predictor over the already-reconstructed prefix,
// adding back each residual.
func Reconstruct(coeffs []float32, initial []int64, resid []int64) []int64 {
	out := make([]int64, 0, len(initial)+len(resid))
	out = append(out, initial...)
	for _, r := range resid {
		i := len(out)
		out = append(out, r+predict(coeffs, out, i))
	}

	return out
}

// predict evaluates the model at position i over the window x[i-order:i].
// The arithmetic is identical on the fit and reconstruct paths, which is
// what makes the residual exactly invertible.
func predict(coeffs []float32, x []int64, i int) int64 {
	p := 0.0
	for j, c := range coeffs {
		p += float64(c) * float64(x[i-1-j])
	}

	p = math.Round(p)
	if p > predClamp {
		p = predClamp
	} else if p < -predClamp {
		p = -predClamp
	}

	return int64(p)
}

// fit solves the least-squares normal equations for an order-M autoregressive
// model over at most trainingSamples rows taken from the start of the signal.
func fit(signal []int64, order, trainingSamples int) []float32 {
	if order == 0 {
		return []float32{}
	}

	rows := len(signal) - order
	if rows > trainingSamples {
		rows = trainingSamples
	}

	// Accumulate A = Σ φφᵀ and b = Σ φy where φ holds the preceding
	// `order` samples of each target y.
	a := make([][]float64, order)
	for j := range a {
		a[j] = make([]float64, order)
	}
	b := make([]float64, order)

	for r := 0; r < rows; r++ {
		i := order + r
		y := float64(signal[i])
		for j := 0; j < order; j++ {
			xj := float64(signal[i-1-j])
			b[j] += xj * y
			for k := j; k < order; k++ {
				a[j][k] += xj * float64(signal[i-1-k])
			}
		}
	}
	// Mirror the upper triangle.
	for j := 1; j < order; j++ {
		for k := 0; k < j; k++ {
			a[j][k] = a[k][j]
		}
	}

	solution, ok := solve(a, b)
	if !ok {
		// Singular systems (constant or degenerate signals) fall back to a
		// previous-value predictor, which still yields a low-entropy residual.
		fallback := make([]float32, order)
		fallback[0] = 1
		return fallback
	}

	coeffs := make([]float32, order)
	for j, v := range solution {
		coeffs[j] = float32(v)
	}

	return coeffs
}

// solve performs Gaussian elimination with partial pivoting on a copy of
// the system. It reports ok=false for singular or ill-conditioned systems.
func solve(a [][]float64, b []float64) ([]float64, bool) {
	n := len(b)
	m := make([][]float64, n)
	for i := range m {
		m[i] = append(append([]float64(nil), a[i]...), b[i])
	}

	for col := 0; col < n; col++ {
		pivot := col
		for r := col + 1; r < n; r++ {
			if math.Abs(m[r][col]) > math.Abs(m[pivot][col]) {
				pivot = r
			}
		}
		if math.Abs(m[pivot][col]) < 1e-12 {
			return nil, false
		}
		m[col], m[pivot] = m[pivot], m[col]

		for r := col + 1; r < n; r++ {
			factor := m[r][col] / m[col][col]
			for k := col; k <= n; k++ {
				m[r][k] -= factor * m[col][k]
			}
		}
	}

	out := make([]float64, n)
	for i := n - 1; i >= 0; i-- {
		sum := m[i][n]
		for k := i + 1; k < n; k++ {
			sum -= m[i][k] * out[k]
		}
		out[i] = sum / m[i][i]
		if math.IsNaN(out[i]) || math.IsInf(out[i], 0) {
			return nil, false
		}
	}

	return out, true
}
