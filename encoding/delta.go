package encoding

// DeltaEncode computes the first difference of vals: diffs[i] = vals[i+1] - vals[i],
// of length n-1. The first element is returned separately; it seeds the
// inverse prefix sum and travels in the container header.
//
// An empty input yields first=0 and no diffs; the container records the
// array length, so the inverse can distinguish the empty array from a
// single-element array whose value is zero.
func DeltaEncode(vals []int64) (first int64, diffs []int64) {
	if len(vals) == 0 {
		return 0, nil
	}

	first = vals[0]
	diffs = make([]int64, len(vals)-1)
	for i := 1; i < len(vals); i++ {
		diffs[i-1] = vals[i] - vals[i-1]
	}

	return first, diffs
}

// DeltaDecode reverses DeltaEncode via a prefix sum seeded by first.
// The result has len(diffs)+1 elements; callers handling the empty array
// must not call DeltaDecode for it.
func DeltaDecode(first int64, diffs []int64) []int64 {
	out := make([]int64, len(diffs)+1)
	out[0] = first
	for i, d := range diffs {
		out[i+1] = out[i] + d
	}

	return out
}
