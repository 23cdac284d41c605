// Package anomaly flags outliers with the interquartile-range rule.
package anomaly

import (
	"math"
	"slices"
)

// Fence is the IQR multiplier for the lower and upper outlier bounds.
const Fence = 1.5

// Bounds holds the quartiles of a sample and the outlier fences derived from them.
type Bounds struct {
	Q1, Q3       float64
	Lower, Upper float64
}

// IQR returns the interquartile range Q3 - Q1.
func (b Bounds) IQR() float64 {
	return b.Q3 - b.Q1
}

// Outside reports whether v lies strictly beyond either fence.
// A value equal to a fence is not an outlier.
func (b Bounds) Outside(v float64) bool {
	return v < b.Lower || v > b.Upper
}

// NewBounds computes quartiles and fences for values. values is not modified.
// ok is false for an empty sample.
func NewBounds(values []float64) (b Bounds, ok bool) {
	if len(values) == 0 {
		return Bounds{}, false
	}
	sorted := slices.Clone(values)
	slices.Sort(sorted)

	b.Q1 = Percentile(sorted, 25)
	b.Q3 = Percentile(sorted, 75)
	iqr := b.IQR()
	b.Lower = b.Q1 - Fence*iqr
	b.Upper = b.Q3 + Fence*iqr
	return b, true
}

// Detect returns the ascending 0-based positions in values that fall outside
// the IQR fences of the full sample. Empty input gives an empty result.
func Detect(values []float64) []int {
	out := []int{}
	b, ok := NewBounds(values)
	if !ok {
		return out
	}
	for i, v := range values {
		if b.Outside(v) {
			out = append(out, i)
		}
	}
	return out
}

// Percentile returns the p-th percentile (0-100) of an ascending-sorted,
// non-empty sample by linear interpolation between closest ranks: the value
// at fractional rank p/100 * (n-1).
func Percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	rank := p / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo]
	}
	frac := rank - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}
