package dsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBandpassBiQuadMagnitudeResponse(t *testing.T) {
	const sampleRate = 48000.0
	const low = 1900.0
	const high = 2300.0
	f := NewBandpassBiQuad(low, high, sampleRate)
	center := 2100.0 // approx sqrt(low*high)

	assert.GreaterOrEqual(t, f.MagnitudeResponse(center, sampleRate), 0.9)
	assert.LessOrEqual(t, f.MagnitudeResponse(2*high, sampleRate), 0.1)
	assert.LessOrEqual(t, f.MagnitudeResponse(low/2, sampleRate), 0.1)
}

func TestBiQuadResetIdempotence(t *testing.T) {
	f := NewBandpassBiQuad(1900, 2300, 48000)
	for i := 0; i < 100; i++ {
		f.Process(float64(i%7) - 3)
	}
	f.Reset()
	first := f.Process(1.0)

	fresh := NewBandpassBiQuad(1900, 2300, 48000)
	assert.Equal(t, fresh.Process(1.0), first)
}

func TestCascadedBandpassSteeperRolloff(t *testing.T) {
	const sampleRate = 48000.0
	single := NewBandpassBiQuad(1900, 2300, sampleRate)
	cascade := NewCascadedBandpass(2, 1900, 2300, sampleRate)

	stopFreq := 2 * 2300.0
	assert.Less(t, cascade.MagnitudeResponse(stopFreq, sampleRate), single.MagnitudeResponse(stopFreq, sampleRate))
}
