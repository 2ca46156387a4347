package dsp

import "gonum.org/v1/gonum/floats"

// MovingAverage is a fixed-length ring buffer average, used for the
// squelch signal-strength estimate (§4.6: "moving average over the last
// 8 correlation magnitudes").
type MovingAverage struct {
	buf   []float64
	next  int
	count int
}

// NewMovingAverage creates a moving average over the last n samples.
func NewMovingAverage(n int) *MovingAverage {
	return &MovingAverage{buf: make([]float64, n)}
}

// Push adds a sample and returns the updated average.
func (m *MovingAverage) Push(x float64) float64 {
	m.buf[m.next] = x
	m.next = (m.next + 1) % len(m.buf)
	if m.count < len(m.buf) {
		m.count++
	}
	return m.Value()
}

// Value returns the current average without adding a sample.
func (m *MovingAverage) Value() float64 {
	if m.count == 0 {
		return 0
	}
	return floats.Sum(m.buf[:m.count]) / float64(m.count)
}

// Reset clears all accumulated history.
func (m *MovingAverage) Reset() {
	for i := range m.buf {
		m.buf[i] = 0
	}
	m.next = 0
	m.count = 0
}
