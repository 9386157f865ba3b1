package dataprocessing

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"custclean/pkg/contracts/domain"
)

// IQRFactor scales the interquartile range into the outlier fences
const IQRFactor = 1.5

// Bounds are the outlier fences of a numeric column
type Bounds struct {
	Q1    float64
	Q3    float64
	IQR   float64
	Lower float64
	Upper float64
}

// Contains reports whether x lies inside the fences (inclusive)
func (b Bounds) Contains(x float64) bool {
	return x >= b.Lower && x <= b.Upper
}

// PresentNumbers returns the numeric cells of a column, skipping missing ones
func PresentNumbers(values []domain.Value) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if v.Kind == domain.KindNumber {
			out = append(out, v.Num)
		}
	}
	return out
}

// Mean returns the arithmetic mean, or false for an empty sample
func Mean(xs []float64) (float64, bool) {
	if len(xs) == 0 {
		return 0, false
	}
	return stat.Mean(xs, nil), true
}

// Median returns the 0.5 quantile, or false for an empty sample
func Median(xs []float64) (float64, bool) {
	return Quantile(xs, 0.5)
}

// Quantile returns the p-quantile using linear interpolation between the
// closest ranks at position (n-1)*p. xs is not modified.
func Quantile(xs []float64, p float64) (float64, bool) {
	if len(xs) == 0 || p < 0 || p > 1 || math.IsNaN(p) {
		return 0, false
	}
	sorted := make([]float64, len(xs))
	copy(sorted, xs)
	stat.SortWeighted(sorted, nil)

	pos := float64(len(sorted)-1) * p
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo], true
	}
	frac := pos - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac, true
}

// OutlierBounds computes Q1 - 1.5*IQR and Q3 + 1.5*IQR
func OutlierBounds(xs []float64) (Bounds, bool) {
	q1, ok := Quantile(xs, 0.25)
	if !ok {
		return Bounds{}, false
	}
	q3, _ := Quantile(xs, 0.75)
	iqr := q3 - q1
	return Bounds{
		Q1:    q1,
		Q3:    q3,
		IQR:   iqr,
		Lower: q1 - IQRFactor*iqr,
		Upper: q3 + IQRFactor*iqr,
	}, true
}
