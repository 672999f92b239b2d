// Package ans implements the entropy-coder collaborator of the container
// format: a streaming rANS (range asymmetric numeral system) coder over
// int64 symbol alphabets.
//
// Encode produces an EncodedSignal carrying the normalized frequency table
// (symbol counts and symbol values), the final coder state and the renormal-
// ization bitstream; Decode is its exact inverse. The container format treats
// the bitstream as an opaque blob and stores the side fields in its header.
//
// The coder operates on int64 so it accepts both raw array values of any
// supported dtype and the widened signed residuals produced by the delta and
// predictive transforms.
package ans

import (
	"fmt"
	"sort"

	"github.com/arloliu/numbench/endian"
	"github.com/arloliu/numbench/errs"
)

// ansL is the lower bound of the coder state interval [ansL, ansL << 32).
// The encoder emits 32-bit words to keep the state inside the interval.
const ansL = uint64(1) << 31

// minScaleBits is the smallest frequency-table precision used. Larger
// alphabets raise the precision so every symbol keeps a non-zero count.
const minScaleBits = 12

// maxScaleBits bounds the precision; the renormalization arithmetic requires
// scaleBits < 32 and the slot lookup table is 1<<scaleBits entries.
const maxScaleBits = 24

// EncodedSignal is the output of Encode: an opaque bitstream plus the side
// information required to invert it.
type EncodedSignal struct {
	// BitWidth is the frequency-table precision; symbol counts sum to 1<<BitWidth.
	BitWidth int
	// SignalLength is the number of symbols in the original signal.
	SignalLength int
	// State is the final coder state.
	State uint64
	// SymbolCounts holds the normalized frequency of each symbol.
	SymbolCounts []uint32
	// SymbolValues holds the distinct symbol values, ascending, parallel to
	// SymbolCounts.
	SymbolValues []int64
	// Bitstream holds the renormalization words, little-endian, in emission
	// order.
	Bitstream []byte
}

// Encode entropy-codes signal. It round-trips exactly with Decode for any
// int64 values.
func Encode(signal []int64) (*EncodedSignal, error) {
	n := len(signal)
	if n == 0 {
		return &EncodedSignal{}, nil
	}

	values, counts := histogram(signal)

	scaleBits := minScaleBits
	for 1<<scaleBits < len(values) {
		scaleBits++
	}
	if scaleBits > maxScaleBits {
		return nil, fmt.Errorf("%w: alphabet of %d symbols exceeds table precision",
			errs.ErrCorruptSignal, len(values))
	}

	freqs := normalize(counts, n, 1<<scaleBits)

	// Cumulative starts and symbol index lookup.
	cum := make([]uint64, len(freqs))
	var acc uint64
	for i, f := range freqs {
		cum[i] = acc
		acc += uint64(f)
	}
	index := make(map[int64]int, len(values))
	for i, v := range values {
		index[v] = i
	}

	// rANS encodes in reverse so the decoder emits symbols in order.
	var words []uint32
	x := ansL
	for i := n - 1; i >= 0; i-- {
		s := index[signal[i]]
		f := uint64(freqs[s])

		xMax := ((ansL >> scaleBits) << 32) * f
		if x >= xMax {
			words = append(words, uint32(x))
			x >>= 32
		}

		x = (x/f)<<scaleBits + x%f + cum[s]
	}

	engine := endian.GetLittleEndianEngine()
	bitstream := make([]byte, 0, len(words)*4)
	for _, w := range words {
		bitstream = engine.AppendUint32(bitstream, w)
	}

	return &EncodedSignal{
		BitWidth:     scaleBits,
		SignalLength: n,
		State:        x,
		SymbolCounts: freqs,
		SymbolValues: values,
		Bitstream:    bitstream,
	}, nil
}

// Decode inverts Encode, reproducing the original signal bit-exactly.
// It fails with errs.ErrCorruptSignal when the side information is
// internally inconsistent or the bitstream does not replay to the coder's
// initial state.
func Decode(enc *EncodedSignal) ([]int64, error) {
	if enc.SignalLength == 0 {
		return nil, nil
	}

	if err := validate(enc); err != nil {
		return nil, err
	}

	scaleBits := enc.BitWidth
	mask := uint64(1)<<scaleBits - 1

	// Slot-to-symbol lookup covering the full [0, 1<<scaleBits) range.
	slots := make([]uint32, 1<<scaleBits)
	cum := make([]uint64, len(enc.SymbolCounts))
	var acc uint64
	for i, f := range enc.SymbolCounts {
		cum[i] = acc
		for j := uint64(0); j < uint64(f); j++ {
			slots[acc+j] = uint32(i)
		}
		acc += uint64(f)
	}

	engine := endian.GetLittleEndianEngine()
	words := make([]uint32, len(enc.Bitstream)/4)
	for i := range words {
		words[i] = engine.Uint32(enc.Bitstream[i*4 : i*4+4])
	}

	out := make([]int64, enc.SignalLength)
	x := enc.State
	wordPos := len(words) - 1
	for i := range out {
		slot := x & mask
		s := slots[slot]
		out[i] = enc.SymbolValues[s]

		x = uint64(enc.SymbolCounts[s])*(x>>scaleBits) + slot - cum[s]
		if x < ansL {
			if wordPos < 0 {
				return nil, fmt.Errorf("%w: bitstream exhausted at symbol %d",
					errs.ErrCorruptSignal, i)
			}
			x = x<<32 | uint64(words[wordPos])
			wordPos--
		}
	}

	// A faithful replay ends at the encoder's initial state with every
	// renormalization word consumed.
	if x != ansL || wordPos != -1 {
		return nil, fmt.Errorf("%w: final state mismatch", errs.ErrCorruptSignal)
	}

	return out, nil
}

// validate checks the structural invariants of an EncodedSignal.
func validate(enc *EncodedSignal) error {
	if enc.BitWidth < 1 || enc.BitWidth > maxScaleBits {
		return fmt.Errorf("%w: bit width %d", errs.ErrCorruptSignal, enc.BitWidth)
	}
	if len(enc.SymbolCounts) != len(enc.SymbolValues) {
		return fmt.Errorf("%w: %d counts vs %d values",
			errs.ErrCorruptSignal, len(enc.SymbolCounts), len(enc.SymbolValues))
	}
	if len(enc.Bitstream)%4 != 0 {
		return fmt.Errorf("%w: bitstream length %d not word-aligned",
			errs.ErrCorruptSignal, len(enc.Bitstream))
	}

	var sum uint64
	for _, f := range enc.SymbolCounts {
		if f == 0 {
			return fmt.Errorf("%w: zero symbol count", errs.ErrCorruptSignal)
		}
		sum += uint64(f)
	}
	if sum != uint64(1)<<enc.BitWidth {
		return fmt.Errorf("%w: counts sum to %d, expected %d",
			errs.ErrCorruptSignal, sum, uint64(1)<<enc.BitWidth)
	}

	return nil
}

// histogram returns the distinct values of signal in ascending order with
// their raw occurrence counts.
func histogram(signal []int64) (values []int64, counts []uint64) {
	freq := make(map[int64]uint64, 256)
	for _, v := range signal {
		freq[v]++
	}

	values = make([]int64, 0, len(freq))
	for v := range freq {
		values = append(values, v)
	}
	sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })

	counts = make([]uint64, len(values))
	for i, v := range values {
		counts[i] = freq[v]
	}

	return values, counts
}

// normalize scales raw counts so they sum to target while keeping every
// count non-zero. The remainder is settled against the most frequent
// symbols, which distorts their probability the least.
func normalize(counts []uint64, total int, target uint32) []uint32 {
	freqs := make([]uint32, len(counts))
	var sum uint64
	for i, c := range counts {
		f := c * uint64(target) / uint64(total)
		if f == 0 {
			f = 1
		}
		freqs[i] = uint32(f)
		sum += f
	}

	// Indices by descending raw count for deterministic adjustment.
	order := make([]int, len(counts))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool {
		if counts[order[i]] != counts[order[j]] {
			return counts[order[i]] > counts[order[j]]
		}
		return order[i] < order[j]
	})

	for sum < uint64(target) {
		for _, idx := range order {
			if sum == uint64(target) {
				break
			}
			freqs[idx]++
			sum++
		}
	}
	for sum > uint64(target) {
		for _, idx := range order {
			if sum == uint64(target) {
				break
			}
			if freqs[idx] > 1 {
				freqs[idx]--
				sum--
			}
		}
	}

	return freqs
}
