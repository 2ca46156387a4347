package psk

import (
	"math"

	"github.com/hambus/modem/dsp"
	"github.com/hambus/modem/varicode"
)

// gardnerStep is the per-symbol sample-count nudge applied by the
// timing-error detector; adjustTiming bounds the effective symbol length
// to within nominal/8 samples of the nominal samples-per-symbol.
const gardnerStep = 1

// Demodulator downconverts a PSK carrier to baseband with a carrier
// NCO, recovers symbol timing with a Gardner-style detector, makes a
// differential phase decision per symbol, and feeds the recovered bits
// into a Varicode decoder.
type Demodulator struct {
	cfg Config

	cos, sin *dsp.SineGenerator

	iAcc, qAcc       float64
	count            int
	effectiveSymbol  int
	midI, midQ       float64
	haveMid          bool
	havePrev         bool
	prevI, prevQ     float64

	magAvg       *dsp.MovingAverage
	longTermMax  float64
	squelchLevel float64

	dec            *varicode.Decoder
	onCharacter    func(rune)
	onSignalChange func(bool)
	signalPresent  bool
}

const defaultPSKSquelch = 0.15

// NewDemodulator creates a demodulator for cfg.
func NewDemodulator(cfg Config) *Demodulator {
	sps := cfg.SamplesPerSymbol()
	d := &Demodulator{
		cfg:             cfg,
		cos:             dsp.NewSineGenerator(float64(cfg.SampleRate), cfg.CenterFrequency),
		sin:             dsp.NewSineGenerator(float64(cfg.SampleRate), cfg.CenterFrequency),
		effectiveSymbol: sps,
		magAvg:          dsp.NewMovingAverage(8),
		squelchLevel:    defaultPSKSquelch,
		dec:             varicode.NewDecoder(),
	}
	d.sin.SetPhase(math.Pi / 2) // sin(phase+pi/2) = cos(phase): shares the cos branch's frequency, offset a quarter cycle
	return d
}

// SetOutputCallback installs the function called with each decoded
// character.
func (d *Demodulator) SetOutputCallback(fn func(rune)) {
	d.onCharacter = fn
}

// SetSquelch sets the minimum normalized signal strength treated as
// signal present.
func (d *Demodulator) SetSquelch(threshold float64) {
	d.squelchLevel = threshold
}

// SetSignalChangeCallback installs the function called whenever squelch
// open/close state changes.
func (d *Demodulator) SetSignalChangeCallback(fn func(bool)) {
	d.onSignalChange = fn
}

// SignalStrength returns the smoothed |z_n| normalized against its
// long-term maximum, as used for squelch decisions.
func (d *Demodulator) SignalStrength() float64 {
	if d.longTermMax <= 0 {
		return 0
	}
	return d.magAvg.Value() / d.longTermMax
}

// Reset discards any partial symbol and partial Varicode character and
// returns timing recovery to its nominal symbol length (§4.7: "reset
// on mode change").
func (d *Demodulator) Reset() {
	d.cos.Reset()
	d.sin.Reset()
	d.sin.SetPhase(math.Pi / 2)
	d.iAcc, d.qAcc = 0, 0
	d.count = 0
	d.effectiveSymbol = d.cfg.SamplesPerSymbol()
	d.haveMid = false
	d.havePrev = false
	d.magAvg.Reset()
	d.longTermMax = 0
	d.dec.Reset()
}

// ProcessSample feeds one audio sample through carrier downconversion,
// symbol accumulation, and (at each completed symbol) timing recovery,
// bit decision, and Varicode decode.
func (d *Demodulator) ProcessSample(x float64) {
	c := d.cos.NextSample()
	s := d.sin.NextSample()
	d.iAcc += x * c
	d.qAcc += x * s
	d.count++

	if d.count == d.effectiveSymbol/2 {
		d.midI, d.midQ = d.iAcc, d.qAcc
		d.haveMid = true
	}

	if d.count >= d.effectiveSymbol {
		n := float64(d.effectiveSymbol)
		zI, zQ := d.iAcc/n, d.qAcc/n
		d.onSymbol(zI, zQ)
		d.iAcc, d.qAcc, d.count = 0, 0, 0
		d.haveMid = false
	}
}

// onSymbol runs the Gardner timing update, the differential phase
// decision, squelch, and Varicode decode for one completed symbol.
func (d *Demodulator) onSymbol(zI, zQ float64) {
	mag := math.Hypot(zI, zQ)
	avg := d.magAvg.Push(mag)
	if mag > d.longTermMax {
		d.longTermMax = mag
	} else {
		d.longTermMax *= 0.999
	}
	signalStrength := 0.0
	if d.longTermMax > 0 {
		signalStrength = avg / d.longTermMax
	}
	d.updateSignalPresence(signalStrength >= d.squelchLevel)

	if d.havePrev {
		// Gardner timing-error detector: the midpoint sample should be
		// orthogonal to the transition between consecutive symbol
		// decisions when timing is correctly aligned.
		if d.haveMid {
			err := d.midI*(zI-d.prevI) + d.midQ*(zQ-d.prevQ)
			d.adjustTiming(err)
		}

		bits := d.decideBits(zI, zQ)
		for _, bit := range bits {
			ch, ok := d.dec.PushBit(bit)
			if ok && signalStrength >= d.squelchLevel && d.onCharacter != nil {
				d.onCharacter(ch)
			}
		}
	}

	d.prevI, d.prevQ = zI, zQ
	d.havePrev = true
}

func (d *Demodulator) updateSignalPresence(present bool) {
	if present == d.signalPresent {
		return
	}
	d.signalPresent = present
	if d.onSignalChange != nil {
		d.onSignalChange(present)
	}
}

// adjustTiming nudges the effective symbol length toward better
// alignment, bounded to +/-12.5% of the nominal samples-per-symbol.
func (d *Demodulator) adjustTiming(err float64) {
	nominal := d.cfg.SamplesPerSymbol()
	bound := nominal / 8
	if bound < 1 {
		return
	}
	switch {
	case err > 0:
		d.effectiveSymbol += gardnerStep
	case err < 0:
		d.effectiveSymbol -= gardnerStep
	}
	if d.effectiveSymbol > nominal+bound {
		d.effectiveSymbol = nominal + bound
	}
	if d.effectiveSymbol < nominal-bound {
		d.effectiveSymbol = nominal - bound
	}
}

// decideBits computes the differential phase between this symbol and
// the last, then maps it to one bit (BPSK) or two bits (QPSK).
func (d *Demodulator) decideBits(zI, zQ float64) []bool {
	real := zI*d.prevI + zQ*d.prevQ
	imag := zQ*d.prevI - zI*d.prevQ
	deltaTheta := math.Atan2(imag, real)

	if d.cfg.Modulation == BPSK {
		// keep phase = 1, invert = 0, the same convention as the modulator.
		return []bool{math.Abs(deltaTheta) < math.Pi/2}
	}

	index := int(math.Round(deltaTheta/(math.Pi/2))) & 3
	return []bool{index&2 != 0, index&1 != 0}
}
