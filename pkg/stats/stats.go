package stats

import "math"

// Moments accumulates count, sum and sum of squares in a single pass, so a
// whole score matrix can be summarised without holding a copy of it.
type Moments struct {
	N     int
	sum   float64
	sumSq float64
}

// Add records x. NaN and infinite values are skipped.
func (m *Moments) Add(x float64) {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return
	}
	m.N++
	m.sum += x
	m.sumSq += x * x
}

// AddAll records every value of x.
func (m *Moments) AddAll(x []float64) {
	for _, v := range x {
		m.Add(v)
	}
}

// Mean is the average of the recorded values, 0 when none were recorded.
func (m Moments) Mean() float64 {
	if m.N == 0 {
		return 0
	}
	return m.sum / float64(m.N)
}

// Variance is the population variance of the recorded values.
func (m Moments) Variance() float64 {
	if m.N == 0 {
		return 0
	}
	mean := m.Mean()
	v := m.sumSq/float64(m.N) - mean*mean
	if v < 0 {
		// rounding on near-constant input
		return 0
	}
	return v
}

// Std is the population standard deviation.
func (m Moments) Std() float64 {
	return math.Sqrt(m.Variance())
}

// Proportion returns part/whole, or 0 when whole is 0.
func Proportion(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole)
}
