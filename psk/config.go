// Package psk implements a BPSK/QPSK PSK31/PSK63 modem: a
// raised-cosine-shaped differential phase modulator and a carrier-NCO
// demodulator with Gardner-style symbol timing recovery, framed with
// Varicode.
package psk

import "fmt"

// Modulation selects the phase alphabet: BPSK carries one Varicode bit
// per symbol, QPSK carries two.
type Modulation int

const (
	BPSK Modulation = iota
	QPSK
)

func (m Modulation) String() string {
	if m == QPSK {
		return "QPSK"
	}
	return "BPSK"
}

// Config is an immutable PSK parameter bundle (§3 PSKConfiguration).
// Switching modulation or baud rate means constructing a new Config and
// a new Modulator/Demodulator (§4.7: "reset on mode change") rather
// than mutating this one.
type Config struct {
	BaudRate        float64
	CenterFrequency float64
	SampleRate      int
	Modulation      Modulation
}

// NewConfig validates and builds a PSK configuration.
func NewConfig(baudRate, centerFrequency float64, sampleRate int, modulation Modulation) (Config, error) {
	cfg := Config{
		BaudRate:        baudRate,
		CenterFrequency: centerFrequency,
		SampleRate:      sampleRate,
		Modulation:      modulation,
	}
	if cfg.BaudRate <= 0 {
		return Config{}, fmt.Errorf("psk: baud rate must be positive, got %v", cfg.BaudRate)
	}
	if cfg.CenterFrequency <= 0 {
		return Config{}, fmt.Errorf("psk: center frequency must be positive, got %v", cfg.CenterFrequency)
	}
	if cfg.SampleRate <= 0 {
		return Config{}, fmt.Errorf("psk: sample rate must be positive, got %v", cfg.SampleRate)
	}
	if modulation != BPSK && modulation != QPSK {
		return Config{}, fmt.Errorf("psk: unknown modulation %v", modulation)
	}
	return cfg, nil
}

// DefaultPSK31Config returns 31.25 baud with the given modulation at a
// 1000 Hz center frequency, 8 kHz sample rate — the standard PSK31
// parameters.
func DefaultPSK31Config(modulation Modulation) Config {
	cfg, err := NewConfig(31.25, 1000, 8000, modulation)
	if err != nil {
		panic(err) // unreachable: constants above are always valid
	}
	return cfg
}

// DefaultPSK63Config returns 62.5 baud at a 1000 Hz center frequency,
// 8 kHz sample rate — the standard PSK63 parameters.
func DefaultPSK63Config(modulation Modulation) Config {
	cfg, err := NewConfig(62.5, 1000, 8000, modulation)
	if err != nil {
		panic(err)
	}
	return cfg
}

// SamplesPerSymbol is round(sample_rate / baud_rate).
func (c Config) SamplesPerSymbol() int {
	return int(float64(c.SampleRate)/c.BaudRate + 0.5)
}

// BitsPerSymbol is 1 for BPSK, 2 for QPSK.
func (c Config) BitsPerSymbol() int {
	if c.Modulation == QPSK {
		return 2
	}
	return 1
}
