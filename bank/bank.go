package bank

import (
	"fmt"

	"github.com/hambus/modem/psk"
	"github.com/hambus/modem/rtty"
)

// defaultRTTYGrid is the eight-channel, 170 Hz-spaced default grid
// (§4.8).
var defaultRTTYGrid = []float64{1275, 1445, 1615, 1785, 1955, 2125, 2295, 2465}

// defaultPSKGrid is a denser eight-channel grid sized for PSK31/63's
// narrower occupied bandwidth.
var defaultPSKGrid = []float64{1000, 1100, 1200, 1300, 1400, 1500, 1600, 1700}

// Bank is the multi-channel demodulator: an ordered set of channels of
// one mode, driven serially over each input block (§5: single-threaded
// cooperative scheduling per instance).
type Bank struct {
	mode       Mode
	sampleRate int

	rttyBaud, rttyShift float64
	pskBaud             float64
	pskModulation       psk.Modulation

	channels  []*Channel
	squelch   float64
	observers []Observer
}

// NewRTTYBank creates a Bank of RTTY channels seeded at the default
// 170 Hz-spaced grid.
func NewRTTYBank(baudRate, shift float64, sampleRate int) (*Bank, error) {
	b := &Bank{
		mode:       ModeRTTY,
		sampleRate: sampleRate,
		rttyBaud:   baudRate,
		rttyShift:  shift,
	}
	for _, f := range defaultRTTYGrid {
		if _, err := b.AddChannel(f); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// NewPSKBank creates a Bank of PSK channels seeded at a denser default
// grid.
func NewPSKBank(baudRate float64, modulation psk.Modulation, sampleRate int) (*Bank, error) {
	b := &Bank{
		mode:          ModePSK,
		sampleRate:    sampleRate,
		pskBaud:       baudRate,
		pskModulation: modulation,
	}
	for _, f := range defaultPSKGrid {
		if _, err := b.AddChannel(f); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// AddObserver registers an observer for character, signal-change, and
// channel-set-changed events.
func (b *Bank) AddObserver(o Observer) {
	b.observers = append(b.observers, o)
}

// AddChannel creates a new channel tuned to frequency and returns its
// stable id.
func (b *Bank) AddChannel(frequency float64) (ChannelID, error) {
	modem, err := b.newChannelModem(frequency)
	if err != nil {
		return ChannelID{}, err
	}
	modem.SetSquelch(b.squelch)

	id := newChannelID()
	ch := &Channel{
		info: ChannelInfo{
			ID:        id,
			Frequency: frequency,
			Mode:      b.mode,
		},
		modem: modem,
	}
	b.wireCallbacks(ch)
	b.channels = append(b.channels, ch)
	b.notifyChannelsChanged()
	return id, nil
}

// RemoveChannel destroys the channel with the given id. It reports
// whether a channel was found and removed.
func (b *Bank) RemoveChannel(id ChannelID) bool {
	for i, ch := range b.channels {
		if ch.ID() == id {
			b.channels = append(b.channels[:i], b.channels[i+1:]...)
			b.notifyChannelsChanged()
			return true
		}
	}
	return false
}

// Channels returns a snapshot of every channel's current identity and
// tuning.
func (b *Bank) Channels() []ChannelInfo {
	out := make([]ChannelInfo, len(b.channels))
	for i, ch := range b.channels {
		out[i] = ch.Snapshot()
	}
	return out
}

// SetSquelch propagates the squelch threshold to every channel.
func (b *Bank) SetSquelch(level float64) {
	b.squelch = level
	for _, ch := range b.channels {
		ch.modem.SetSquelch(level)
	}
}

// Reset resets every channel's demodulator state (partial characters,
// AFC, timing recovery) without changing the channel set.
func (b *Bank) Reset() {
	for _, ch := range b.channels {
		ch.modem.Reset()
	}
}

// Process runs one block of samples through every channel, in channel
// order (§5: cross-channel event order reflects scan order within a
// block). An AFC-driven frequency retune is published to observers as a
// ChannelsChangedEvent, same as an add/remove (§6).
func (b *Bank) Process(samples []float32) {
	retuned := false
	for _, ch := range b.channels {
		for _, s := range samples {
			ch.modem.ProcessSample(float64(s))
		}
		before := ch.Snapshot().Frequency
		ch.refreshFrequency()
		if ch.Snapshot().Frequency != before {
			retuned = true
		}
	}
	if retuned {
		b.notifyChannelsChanged()
	}
}

func (b *Bank) newChannelModem(frequency float64) (channelModem, error) {
	switch b.mode {
	case ModeRTTY:
		cfg, err := rtty.NewConfig(b.rttyBaud, frequency, b.rttyShift, b.sampleRate)
		if err != nil {
			return nil, err
		}
		return &rttyChannelModem{demod: rtty.NewDemodulator(cfg), baseFreq: frequency}, nil
	case ModePSK:
		cfg, err := psk.NewConfig(b.pskBaud, frequency, b.sampleRate, b.pskModulation)
		if err != nil {
			return nil, err
		}
		return &pskChannelModem{demod: psk.NewDemodulator(cfg), baseFreq: frequency}, nil
	default:
		return nil, fmt.Errorf("bank: unknown mode %v", b.mode)
	}
}

func (b *Bank) wireCallbacks(ch *Channel) {
	id, mode := ch.ID(), ch.Mode()
	switch m := ch.modem.(type) {
	case *rttyChannelModem:
		m.demod.SetOutputCallback(func(c rune) {
			b.emitCharacter(id, mode, c, m.demod.SignalStrength())
		})
		m.demod.SetSignalChangeCallback(func(detected bool) {
			b.emitSignalChange(id, mode, detected)
		})
	case *pskChannelModem:
		m.demod.SetOutputCallback(func(c rune) {
			b.emitCharacter(id, mode, c, m.demod.SignalStrength())
		})
		m.demod.SetSignalChangeCallback(func(detected bool) {
			b.emitSignalChange(id, mode, detected)
		})
	}
}

func (b *Bank) emitCharacter(id ChannelID, mode Mode, ch rune, strength float64) {
	ev := CharacterEvent{Channel: id, Mode: mode, Character: ch, SignalStrength: strength}
	for _, o := range b.observers {
		o.OnCharacter(ev)
	}
}

func (b *Bank) emitSignalChange(id ChannelID, mode Mode, detected bool) {
	ev := SignalChangeEvent{Channel: id, Mode: mode, Detected: detected}
	for _, o := range b.observers {
		o.OnSignalChange(ev)
	}
}

func (b *Bank) notifyChannelsChanged() {
	ev := ChannelsChangedEvent{Channels: b.Channels()}
	for _, o := range b.observers {
		o.OnChannelsChanged(ev)
	}
}
