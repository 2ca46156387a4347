package dsp

import (
	"math"
	"math/cmplx"
)

// BiQuad is a second-order IIR section in direct-form-II-transposed,
// the form the spec calls out explicitly because it only needs two
// state registers (z1, z2) regardless of filter type.
type BiQuad struct {
	b0, b1, b2 float64
	a1, a2     float64
	z1, z2     float64
}

// NewBandpassBiQuad designs a Butterworth bandpass section from a
// bilinear-transform derivation: center f0 = sqrt(lowCutoff*highCutoff),
// bandwidth = highCutoff - lowCutoff, Q = f0/bandwidth.
func NewBandpassBiQuad(lowCutoff, highCutoff, sampleRate float64) *BiQuad {
	f0 := math.Sqrt(lowCutoff * highCutoff)
	bandwidth := highCutoff - lowCutoff
	q := f0 / bandwidth

	omega := twoPi * f0 / sampleRate
	sinOmega := math.Sin(omega)
	cosOmega := math.Cos(omega)
	alpha := sinOmega / (2 * q)

	b0 := alpha
	b1 := 0.0
	b2 := -alpha
	a0 := 1 + alpha
	a1 := -2 * cosOmega
	a2 := 1 - alpha

	return &BiQuad{
		b0: b0 / a0,
		b1: b1 / a0,
		b2: b2 / a0,
		a1: a1 / a0,
		a2: a2 / a0,
	}
}

// Process filters a single sample using the transposed direct-form-II
// recurrence: y = b0*x + z1; z1' = b1*x - a1*y + z2; z2' = b2*x - a2*y.
func (f *BiQuad) Process(x float64) float64 {
	y := f.b0*x + f.z1
	f.z1 = f.b1*x - f.a1*y + f.z2
	f.z2 = f.b2*x - f.a2*y
	return y
}

// ProcessBlock filters a buffer of samples in place order, returning a
// new buffer (the input is left unmodified).
func (f *BiQuad) ProcessBlock(in []float32) []float32 {
	out := make([]float32, len(in))
	for i, x := range in {
		out[i] = float32(f.Process(float64(x)))
	}
	return out
}

// Reset clears the filter's delay-line state.
func (f *BiQuad) Reset() {
	f.z1, f.z2 = 0, 0
}

// MagnitudeResponse evaluates |H(e^jw)| in closed form at freq Hz,
// without touching filter state — used by tests to verify the passband
// and stopband shape (§8 invariant 5).
func (f *BiQuad) MagnitudeResponse(freq, sampleRate float64) float64 {
	omega := twoPi * freq / sampleRate
	ejw := cmplx.Exp(complex(0, -omega))
	ejw2 := ejw * ejw
	numerator := complex(f.b0, 0) + complex(f.b1, 0)*ejw + complex(f.b2, 0)*ejw2
	denominator := complex(1, 0) + complex(f.a1, 0)*ejw + complex(f.a2, 0)*ejw2
	return cmplx.Abs(numerator / denominator)
}

// CascadedBandpass chains N identical bandpass sections for a steeper
// roll-off (~40 dB/decade per section).
type CascadedBandpass struct {
	sections []*BiQuad
}

// NewCascadedBandpass builds an n-section cascade, each section designed
// identically from the same cutoffs.
func NewCascadedBandpass(n int, lowCutoff, highCutoff, sampleRate float64) *CascadedBandpass {
	sections := make([]*BiQuad, n)
	for i := range sections {
		sections[i] = NewBandpassBiQuad(lowCutoff, highCutoff, sampleRate)
	}
	return &CascadedBandpass{sections: sections}
}

// Process filters a single sample through every section in series.
func (c *CascadedBandpass) Process(x float64) float64 {
	y := x
	for _, s := range c.sections {
		y = s.Process(y)
	}
	return y
}

// ProcessBlock filters a buffer through every section in series.
func (c *CascadedBandpass) ProcessBlock(in []float32) []float32 {
	out := make([]float32, len(in))
	for i, x := range in {
		out[i] = float32(c.Process(float64(x)))
	}
	return out
}

// Reset clears every section's delay-line state.
func (c *CascadedBandpass) Reset() {
	for _, s := range c.sections {
		s.Reset()
	}
}

// MagnitudeResponse returns the cascade's combined magnitude response,
// the product of each section's response.
func (c *CascadedBandpass) MagnitudeResponse(freq, sampleRate float64) float64 {
	resp := 1.0
	for _, s := range c.sections {
		resp *= s.MagnitudeResponse(freq, sampleRate)
	}
	return resp
}
