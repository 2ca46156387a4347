package rtty

import (
	"github.com/hambus/modem/baudot"
	"github.com/hambus/modem/dsp"
)

// Modulator encodes text into a phase-continuous FSK tone stream:
// start bit (space) + 5 Baudot data bits LSB-first (1=mark, 0=space) +
// 1.5 stop bits (mark), per §4.6.
type Modulator struct {
	cfg   Config
	codec *baudot.Codec
	sine  *dsp.SineGenerator
}

// NewModulator creates a modulator for cfg, starting in LETTERS shift.
func NewModulator(cfg Config) *Modulator {
	return &Modulator{
		cfg:   cfg,
		codec: baudot.NewCodec(),
		sine:  dsp.NewSineGenerator(float64(cfg.SampleRate), cfg.MarkFrequency),
	}
}

// Reset returns the modulator to idle: LETTERS shift, zero phase.
func (m *Modulator) Reset() {
	m.codec.Reset()
	m.sine.Reset()
}

// GenerateIdle returns durationSeconds of continuous mark tone (the
// RTTY idle condition between characters, and the preamble/postamble
// tone).
func (m *Modulator) GenerateIdle(durationSeconds float64) []float32 {
	if durationSeconds <= 0 {
		return nil
	}
	m.sine.SetFrequency(m.cfg.MarkFrequency)
	return m.sine.GenerateDuration(durationSeconds)
}

// EncodeWithIdle encodes text as Baudot/FSK, preceded by preambleMs of
// mark tone and followed by postambleMs of mark tone. An empty text
// with zero preamble and postamble returns an empty buffer (§7).
func (m *Modulator) EncodeWithIdle(text string, preambleMs, postambleMs int) []float32 {
	var out []float32
	out = append(out, m.GenerateIdle(float64(preambleMs)/1000.0)...)

	codes := m.codec.Encode(text)
	for _, code := range codes {
		out = append(out, m.encodeCharacter(code)...)
	}

	out = append(out, m.GenerateIdle(float64(postambleMs)/1000.0)...)
	applyTaper(out, m.cfg.SampleRate)
	return out
}

// encodeCharacter renders one 5-bit Baudot code as start+data+stop tones.
func (m *Modulator) encodeCharacter(code byte) []float32 {
	spb := m.cfg.SamplesPerBit()
	out := make([]float32, 0, spb*7)

	m.sine.SetFrequency(m.cfg.SpaceFrequency()) // start bit
	out = append(out, m.sine.Generate(spb)...)

	for i := 0; i < 5; i++ {
		if (code>>uint(i))&1 == 1 {
			m.sine.SetFrequency(m.cfg.MarkFrequency)
		} else {
			m.sine.SetFrequency(m.cfg.SpaceFrequency())
		}
		out = append(out, m.sine.Generate(spb)...)
	}

	m.sine.SetFrequency(m.cfg.MarkFrequency) // 1.5 stop bits
	stopSamples := int(1.5*float64(spb) + 0.5)
	out = append(out, m.sine.Generate(stopSamples)...)

	return out
}

// applyTaper ramps the first/last ~2ms of samples linearly to bound
// the transient at the very start/end of a transmission.
func applyTaper(samples []float32, sampleRate int) {
	taperLen := int(0.002 * float64(sampleRate))
	if taperLen > len(samples)/2 {
		taperLen = len(samples) / 2
	}
	for i := 0; i < taperLen; i++ {
		gain := float32(i) / float32(taperLen)
		samples[i] *= gain
		samples[len(samples)-1-i] *= gain
	}
}
