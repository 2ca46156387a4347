package psk

import (
	"math"

	"gonum.org/v1/gonum/dsp/window"

	"github.com/hambus/modem/dsp"
	"github.com/hambus/modem/varicode"
)

// Modulator renders Varicode-framed text as a differentially phase
// modulated, raised-cosine-shaped carrier (§4.7).
type Modulator struct {
	cfg      Config
	carrier  *dsp.SineGenerator
	envelope []float64
}

// NewModulator creates a modulator for cfg.
func NewModulator(cfg Config) *Modulator {
	return &Modulator{
		cfg:      cfg,
		carrier:  dsp.NewSineGenerator(float64(cfg.SampleRate), cfg.CenterFrequency),
		envelope: raisedCosineWindow(cfg.SamplesPerSymbol()),
	}
}

// raisedCosineWindow builds a roll-off 1.0 raised-cosine amplitude
// envelope of the given length: a full-length Tukey window with
// alpha=1 degenerates to exactly this shape (no flat top, pure cosine
// taper end to end), which is what §4.7 calls for.
func raisedCosineWindow(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = 1
	}
	return window.NewTukey(1.0)(w)
}

// Reset zeroes the carrier phase. Mode/baud changes are handled by
// constructing a new Modulator (§4.7: "reset on mode change").
func (m *Modulator) Reset() {
	m.carrier.Reset()
}

// phaseStep returns the differential phase increment for one symbol's
// worth of Varicode bits, consuming bits from buf starting at i and
// returning how many bits were consumed.
func (m *Modulator) phaseStep(buf []bool, i int) (delta float64, consumed int) {
	if m.cfg.Modulation == BPSK {
		// invert (add pi) = 0, keep (add 0) = 1.
		if !buf[i] {
			return math.Pi, 1
		}
		return 0, 1
	}

	b0 := buf[i]
	b1 := false
	consumed = 1
	if i+1 < len(buf) {
		b1 = buf[i+1]
		consumed = 2
	}
	index := 0
	if b0 {
		index |= 2
	}
	if b1 {
		index |= 1
	}
	return float64(index) * math.Pi / 2, consumed
}

// symbol renders one symbol's worth of samples for the given phase
// jump, applying the raised-cosine envelope.
func (m *Modulator) symbol(delta float64) []float32 {
	if delta != 0 {
		m.carrier.SetPhase(m.carrier.Phase() + delta)
	}
	out := make([]float32, len(m.envelope))
	for i := range out {
		out[i] = float32(m.carrier.NextSample() * m.envelope[i])
	}
	return out
}

// GenerateCarrier returns durationSeconds of unmodulated carrier (the
// PSK idle/preamble/postamble condition).
func (m *Modulator) GenerateCarrier(durationSeconds float64) []float32 {
	if durationSeconds <= 0 {
		return nil
	}
	return m.carrier.GenerateDuration(durationSeconds)
}

// EncodeWithEnvelope Varicode-encodes text, differentially
// phase-modulates it with the raised-cosine envelope applied at every
// symbol boundary, and surrounds it with preambleMs/postambleMs of
// unmodulated carrier.
func (m *Modulator) EncodeWithEnvelope(text string, preambleMs, postambleMs int) []float32 {
	var out []float32
	out = append(out, m.GenerateCarrier(float64(preambleMs)/1000.0)...)

	bits := varicode.EncodeBits(text)
	for i := 0; i < len(bits); {
		delta, consumed := m.phaseStep(bits, i)
		out = append(out, m.symbol(delta)...)
		i += consumed
	}

	out = append(out, m.GenerateCarrier(float64(postambleMs)/1000.0)...)
	return out
}
