package bench

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/arloliu/numbench/format"
	"github.com/arloliu/numbench/numeric"
)

// Dataset is a named, versioned synthetic input. Create builds the array
// on demand; generators are seeded so every run sees identical data.
type Dataset struct {
	Name        string
	Version     string
	Description string
	Tags        []string
	Dtype       format.Dtype
	Create      func() numeric.Array
}

// HasTag reports whether the dataset carries the given tag.
func (d Dataset) HasTag(tag string) bool {
	for _, t := range d.Tags {
		if t == tag {
			return true
		}
	}

	return false
}

const datasetSamples = 1_000_000

// gaussianDataset builds rounded Gaussian integers with the given standard
// deviation.
func gaussianDataset(stddev float64, seed int64) numeric.Array {
	rng := rand.New(rand.NewSource(seed))
	vals := make([]int16, datasetSamples)
	for i := range vals {
		v := math.Round(rng.NormFloat64() * stddev)
		if v > math.MaxInt16 {
			v = math.MaxInt16
		}
		if v < math.MinInt16 {
			v = math.MinInt16
		}
		vals[i] = int16(v)
	}

	return numeric.FromSlice(vals)
}

// rampDataset builds a monotonic ramp with small positive jitter, a stand-in
// for timestamps and counters.
func rampDataset(seed int64) numeric.Array {
	rng := rand.New(rand.NewSource(seed))
	vals := make([]uint32, datasetSamples)
	var acc uint32
	for i := range vals {
		acc += uint32(rng.Intn(5))
		vals[i] = acc
	}

	return numeric.FromSlice(vals)
}

// burstDataset builds a mostly-zero signal with short oscillating bursts,
// modeled on event-detection output.
func burstDataset(seed int64) numeric.Array {
	rng := rand.New(rand.NewSource(seed))
	vals := make([]int16, datasetSamples)
	pos := 0
	for pos < len(vals) {
		pos += 2000 + rng.Intn(8000) // quiet gap
		burst := 50 + rng.Intn(300)
		for j := 0; j < burst && pos < len(vals); j++ {
			amp := 800.0 * math.Exp(-float64(j)/80.0)
			vals[pos] = int16(amp * math.Sin(float64(j)/3.0))
			pos++
		}
	}

	return numeric.FromSlice(vals)
}

// stepDataset builds a piecewise-constant signal with occasional level
// shifts.
func stepDataset(seed int64) numeric.Array {
	rng := rand.New(rand.NewSource(seed))
	vals := make([]uint8, datasetSamples/2)
	level := uint8(100)
	for i := range vals {
		if rng.Intn(1000) == 0 {
			level = uint8(rng.Intn(256))
		}
		vals[i] = level
	}

	return numeric.FromSlice(vals)
}

// Datasets returns the registered benchmark datasets.
func Datasets() []Dataset {
	sets := []Dataset{
		{
			Name:        "ramp-uint32",
			Version:     "1",
			Description: "Monotonic uint32 ramp with small positive jitter.",
			Tags:        []string{"continuous"},
			Dtype:       format.DtypeUint32,
			Create:      func() numeric.Array { return rampDataset(1) },
		},
		{
			Name:        "burst-int16",
			Version:     "1",
			Description: "Mostly-zero int16 signal with short decaying oscillation bursts.",
			Tags:        []string{"continuous", "sparse"},
			Dtype:       format.DtypeInt16,
			Create:      func() numeric.Array { return burstDataset(2) },
		},
		{
			Name:        "step-uint8",
			Version:     "1",
			Description: "Piecewise-constant uint8 signal with rare level shifts.",
			Tags:        []string{"continuous"},
			Dtype:       format.DtypeUint8,
			Create:      func() numeric.Array { return stepDataset(3) },
		},
	}

	for _, stddev := range []float64{1, 2, 3, 5, 8} {
		sd := stddev
		sets = append(sets, Dataset{
			Name:        fmt.Sprintf("gaussian-%g", sd),
			Version:     "1",
			Description: fmt.Sprintf("Rounded Gaussian int16 integers with stddev=%g.", sd),
			Dtype:       format.DtypeInt16,
			Create:      func() numeric.Array { return gaussianDataset(sd, 0) },
		})
	}

	return sets
}
