package psk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func decodeAll(t *testing.T, cfg Config, samples []float32) string {
	t.Helper()
	demod := NewDemodulator(cfg)
	demod.SetSquelch(0)
	var out []rune
	demod.SetOutputCallback(func(ch rune) { out = append(out, ch) })
	for _, s := range samples {
		demod.ProcessSample(float64(s))
	}
	return string(out)
}

func TestBPSKRoundTripCleanSignal(t *testing.T) {
	cfg := DefaultPSK31Config(BPSK)
	mod := NewModulator(cfg)

	text := "cq cq de test"
	samples := mod.EncodeWithEnvelope(text, 50, 50)

	got := decodeAll(t, cfg, samples)
	assert.Equal(t, text, got)
}

func TestQPSKRoundTripCleanSignal(t *testing.T) {
	cfg := DefaultPSK31Config(QPSK)
	mod := NewModulator(cfg)

	text := "hello world"
	samples := mod.EncodeWithEnvelope(text, 50, 50)

	got := decodeAll(t, cfg, samples)
	assert.Equal(t, text, got)
}

func TestEmptyTextWithZeroPreambleProducesEmptyBuffer(t *testing.T) {
	cfg := DefaultPSK31Config(BPSK)
	mod := NewModulator(cfg)
	samples := mod.EncodeWithEnvelope("", 0, 0)
	assert.Empty(t, samples)
}

func TestModulatorResetIsIdempotent(t *testing.T) {
	cfg := DefaultPSK31Config(BPSK)
	mod := NewModulator(cfg)

	mod.EncodeWithEnvelope("first", 10, 10)
	mod.Reset()
	mod.Reset()

	samples := mod.EncodeWithEnvelope("second", 10, 10)
	got := decodeAll(t, cfg, samples)
	assert.Equal(t, "second", got)
}

func TestDemodulatorResetClearsPartialState(t *testing.T) {
	cfg := DefaultPSK31Config(BPSK)
	mod := NewModulator(cfg)
	demod := NewDemodulator(cfg)
	demod.SetSquelch(0)

	samples := mod.EncodeWithEnvelope("PARTIAL", 10, 10)
	for i, s := range samples {
		if i > len(samples)/3 {
			break
		}
		demod.ProcessSample(float64(s))
	}
	demod.Reset()
	assert.False(t, demod.havePrev)
	assert.Equal(t, cfg.SamplesPerSymbol(), demod.effectiveSymbol)
}

func TestBitsPerSymbol(t *testing.T) {
	assert.Equal(t, 1, DefaultPSK31Config(BPSK).BitsPerSymbol())
	assert.Equal(t, 2, DefaultPSK31Config(QPSK).BitsPerSymbol())
}

func TestNewConfigRejectsInvalidFields(t *testing.T) {
	_, err := NewConfig(0, 1000, 8000, BPSK)
	assert.Error(t, err)

	_, err = NewConfig(31.25, 0, 8000, BPSK)
	assert.Error(t, err)

	_, err = NewConfig(31.25, 1000, 0, BPSK)
	assert.Error(t, err)
}
