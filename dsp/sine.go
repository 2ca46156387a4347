// Package dsp provides the signal-processing primitives shared by the
// RTTY and PSK modems: a phase-continuous sine generator, Butterworth
// bandpass filtering, and Goertzel-based tone power/correlation.
package dsp

import "math"

const twoPi = 2 * math.Pi

// SineGenerator is a phase-accumulator oscillator. Changing the
// frequency never touches the running phase, which is what keeps FSK
// tone switches click-free.
type SineGenerator struct {
	sampleRate float64
	frequency  float64
	phase      float64 // radians, kept in [0, 2*pi)
}

// NewSineGenerator creates an oscillator at the given frequency.
func NewSineGenerator(sampleRate, frequency float64) *SineGenerator {
	return &SineGenerator{sampleRate: sampleRate, frequency: frequency}
}

// SetFrequency changes the oscillator frequency without resetting phase.
func (s *SineGenerator) SetFrequency(f float64) {
	s.frequency = f
}

// Frequency returns the oscillator's current frequency.
func (s *SineGenerator) Frequency() float64 {
	return s.frequency
}

// SetPhase forces the phase accumulator to an explicit value (radians).
func (s *SineGenerator) SetPhase(phase float64) {
	s.phase = math.Mod(phase, twoPi)
	if s.phase < 0 {
		s.phase += twoPi
	}
}

// Phase returns the current phase accumulator value (radians).
func (s *SineGenerator) Phase() float64 {
	return s.phase
}

// NextSample advances the oscillator by one sample and returns it.
func (s *SineGenerator) NextSample() float64 {
	y := math.Sin(s.phase)
	s.phase += twoPi * s.frequency / s.sampleRate
	if s.phase >= twoPi {
		s.phase -= twoPi
	}
	return y
}

// Generate produces n consecutive samples.
func (s *SineGenerator) Generate(n int) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = float32(s.NextSample())
	}
	return out
}

// GenerateDuration produces seconds worth of samples at the configured
// sample rate.
func (s *SineGenerator) GenerateDuration(seconds float64) []float32 {
	n := int(seconds*s.sampleRate + 0.5)
	return s.Generate(n)
}

// Reset zeroes the phase accumulator; frequency is left untouched.
func (s *SineGenerator) Reset() {
	s.phase = 0
}
