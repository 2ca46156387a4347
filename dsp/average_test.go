package dsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMovingAverageWindowing(t *testing.T) {
	m := NewMovingAverage(4)
	assert.Equal(t, 0.0, m.Value())

	m.Push(1)
	m.Push(1)
	assert.Equal(t, 1.0, m.Value())

	m.Push(1)
	m.Push(1)
	m.Push(5) // evicts the first 1
	assert.InDelta(t, 2.0, m.Value(), 1e-9)
}

func TestMovingAverageReset(t *testing.T) {
	m := NewMovingAverage(8)
	for i := 0; i < 8; i++ {
		m.Push(1)
	}
	m.Reset()
	assert.Equal(t, 0.0, m.Value())
}
