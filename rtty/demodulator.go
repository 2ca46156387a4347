package rtty

import (
	"math"

	"github.com/hambus/modem/baudot"
	"github.com/hambus/modem/dsp"
)

type demodState int

const (
	waitingForStart demodState = iota
	inStart
	receiving
	inStop
)

// ticksPerBit is the oversampling factor between successive
// correlation decisions within one bit period (§4.3: block size gives
// four correlation samples per bit, enough to locate the mid-bit
// sample point without tracking every individual sample in the state
// machine).
const ticksPerBit = 4

// afcStep is the per-adjustment frequency nudge; afcMaxCorrection
// bounds the cumulative correction magnitude (§3: AFC range +/-50Hz).
const (
	afcStep           = 0.5
	afcMaxCorrection  = 50.0
	afcHoldoffSamples = 0 // correction applies every mark-bit observation
)

// defaultSquelchThreshold is the minimum smoothed correlation
// magnitude treated as "signal present."
const defaultSquelchThreshold = 0.2

// Demodulator is a single-channel FSK/Baudot receiver: Goertzel
// correlation for mark/space discrimination, a 4-state bit-timing
// state machine (§3), auxiliary-bin AFC, and moving-average squelch.
type Demodulator struct {
	cfg Config

	corr          *dsp.FSKCorrelator
	afcLow        *dsp.Goertzel
	afcHigh       *dsp.Goertzel
	squelch       *dsp.MovingAverage
	squelchLevel  float64
	codec         *baudot.Codec

	afcEnabled       bool
	afcCorrection    float64
	samplesSinceGood int

	state     demodState
	ticks     int
	bitIndex  int
	dataBits  byte

	onCharacter    func(rune)
	onSignalChange func(bool)
	signalPresent  bool
}

// NewDemodulator creates a demodulator for cfg with AFC enabled and the
// default squelch threshold.
func NewDemodulator(cfg Config) *Demodulator {
	blockSize := cfg.SamplesPerBit() / ticksPerBit
	if blockSize < 64 {
		blockSize = 64
	}

	mark, space := cfg.TunedMarkFrequency(), cfg.TunedSpaceFrequency()
	d := &Demodulator{
		cfg:          cfg,
		corr:         dsp.NewFSKCorrelator(float64(cfg.SampleRate), mark, space, blockSize),
		afcLow:       dsp.NewGoertzel(float64(cfg.SampleRate), mark-10, blockSize),
		afcHigh:      dsp.NewGoertzel(float64(cfg.SampleRate), mark+10, blockSize),
		squelch:      dsp.NewMovingAverage(8),
		squelchLevel: defaultSquelchThreshold,
		codec:        baudot.NewCodec(),
		afcEnabled:   true,
		state:        waitingForStart,
	}
	return d
}

// SetOutputCallback installs the function called with each decoded
// character.
func (d *Demodulator) SetOutputCallback(fn func(rune)) {
	d.onCharacter = fn
}

// SetSignalChangeCallback installs the function called whenever squelch
// open/close state changes.
func (d *Demodulator) SetSignalChangeCallback(fn func(bool)) {
	d.onSignalChange = fn
}

// SetSquelch sets the minimum smoothed correlation magnitude treated as
// signal present.
func (d *Demodulator) SetSquelch(threshold float64) {
	d.squelchLevel = threshold
}

// SignalStrength returns the moving-average correlation magnitude used
// for squelch decisions.
func (d *Demodulator) SignalStrength() float64 {
	return d.squelch.Value()
}

// SetAFCEnabled toggles automatic frequency tracking.
func (d *Demodulator) SetAFCEnabled(enabled bool) {
	d.afcEnabled = enabled
}

// AFCCorrection returns the current cumulative AFC offset in Hz.
func (d *Demodulator) AFCCorrection() float64 {
	return d.afcCorrection
}

// Reset returns the demodulator to its idle state: waiting for a start
// bit, zero AFC correction, LETTERS shift.
func (d *Demodulator) Reset() {
	d.corr.Reset()
	d.afcLow.Reset()
	d.afcHigh.Reset()
	d.squelch.Reset()
	d.codec.Reset()
	d.afcCorrection = 0
	d.samplesSinceGood = 0
	d.state = waitingForStart
	d.ticks = 0
	d.bitIndex = 0
	d.dataBits = 0
	d.retune()
}

// ProcessSample feeds one audio sample through the demodulator. Decoded
// characters are reported via the OnCharacter callback as the trailing
// stop bit completes.
func (d *Demodulator) ProcessSample(x float64) {
	d.corr.ProcessSample(x)
	if d.afcEnabled {
		d.afcLow.ProcessSample(x)
		d.afcHigh.ProcessSample(x)
	}
	if !d.corr.Ready() {
		return
	}

	corrVal := d.corr.Correlation()
	avg := d.squelch.Push(math.Abs(corrVal))
	present := avg >= d.squelchLevel
	d.updateSignalPresence(present)

	bit := corrVal > 0
	if d.cfg.PolarityInverted {
		bit = !bit
	}

	if d.afcEnabled && present && bit {
		d.updateAFC()
	}
	d.trackSquelchTimeout(present)

	d.step(bit)
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

func (d *Demodulator) trackSquelchTimeout(present bool) {
	if present {
		d.samplesSinceGood = 0
		return
	}
	d.samplesSinceGood += d.corr.BlockSize()
	if d.afcCorrection != 0 && d.samplesSinceGood > d.cfg.SampleRate {
		d.afcCorrection = 0
		d.retune()
	}
}

// updateAFC compares auxiliary power above/below the tuned mark tone
// while a mark bit is being received, and nudges the correction toward
// the stronger side, bounded to +/-50Hz.
func (d *Demodulator) updateAFC() {
	low := d.afcLow.Power()
	high := d.afcHigh.Power()
	if high > low {
		d.afcCorrection += afcStep
	} else if low > high {
		d.afcCorrection -= afcStep
	}
	if d.afcCorrection > afcMaxCorrection {
		d.afcCorrection = afcMaxCorrection
	}
	if d.afcCorrection < -afcMaxCorrection {
		d.afcCorrection = -afcMaxCorrection
	}
	d.retune()
}

func (d *Demodulator) retune() {
	mark := d.cfg.TunedMarkFrequency() + d.afcCorrection
	space := mark - d.cfg.Shift
	d.corr.Retune(mark, space)
	d.afcLow.Retune(mark - 10)
	d.afcHigh.Retune(mark + 10)
}

// step advances the bit-timing state machine by one correlation tick.
func (d *Demodulator) step(bit bool) {
	switch d.state {
	case waitingForStart:
		if !bit {
			d.state = inStart
			d.ticks = 1
		}

	case inStart:
		d.ticks++
		if d.ticks == ticksPerBit/2 {
			if bit {
				// False start: what looked like a start edge wasn't
				// space at mid-bit. Abandon and keep scanning.
				d.state = waitingForStart
				d.ticks = 0
				return
			}
		}
		if d.ticks >= ticksPerBit {
			d.state = receiving
			d.ticks = 0
			d.bitIndex = 0
			d.dataBits = 0
		}

	case receiving:
		d.ticks++
		if d.ticks == ticksPerBit/2 {
			if bit {
				d.dataBits |= 1 << uint(d.bitIndex)
			}
		}
		if d.ticks >= ticksPerBit {
			d.ticks = 0
			d.bitIndex++
			if d.bitIndex >= 5 {
				d.state = inStop
			}
		}

	case inStop:
		d.ticks++
		if d.ticks == ticksPerBit/2 && !bit {
			// Framing error: expected mark at the stop bit's center.
			// Drop the character and resynchronize.
			d.state = waitingForStart
			d.ticks = 0
			return
		}
		if d.ticks >= ticksPerBit+ticksPerBit/2 { // 1.5 stop bits elapsed
			if ch, ok := d.codec.DecodeCode(d.dataBits); ok && d.signalPresent && d.onCharacter != nil {
				// §4.6: "a character is suppressed (never delivered)
				// unless signal_strength >= squelch_level at emission
				// time."
				d.onCharacter(ch)
			}
			d.state = waitingForStart
			d.ticks = 0
		}
	}
}
