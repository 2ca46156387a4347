// Package rtty implements a single-channel RTTY (Baudot over FSK) modem:
// a phase-continuous tone modulator and a Goertzel/state-machine
// demodulator with AFC and squelch.
package rtty

import "fmt"

// Config is an immutable RTTY parameter bundle (§3 RTTYConfiguration).
// Construct it with NewConfig; it is never mutated in place (§9 design
// note: "value-type constructors").
type Config struct {
	BaudRate         float64
	MarkFrequency    float64
	Shift            float64
	SampleRate       int
	PolarityInverted bool
	FrequencyOffset  float64
}

// Option customizes an optional Config field.
type Option func(*Config)

// WithPolarityInverted swaps the mark/space roles used by the
// demodulator's bit decision.
func WithPolarityInverted(inverted bool) Option {
	return func(c *Config) { c.PolarityInverted = inverted }
}

// WithFrequencyOffset adds a static offset to the configured mark
// frequency before AFC tracking begins.
func WithFrequencyOffset(hz float64) Option {
	return func(c *Config) { c.FrequencyOffset = hz }
}

// NewConfig validates and builds an RTTY configuration from the given
// values; it applies no defaults (DefaultConfig returns the standard
// amateur parameters).
func NewConfig(baudRate, markFrequency, shift float64, sampleRate int, opts ...Option) (Config, error) {
	cfg := Config{
		BaudRate:      baudRate,
		MarkFrequency: markFrequency,
		Shift:         shift,
		SampleRate:    sampleRate,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.BaudRate <= 0 {
		return Config{}, fmt.Errorf("rtty: baud rate must be positive, got %v", cfg.BaudRate)
	}
	if cfg.MarkFrequency <= 0 {
		return Config{}, fmt.Errorf("rtty: mark frequency must be positive, got %v", cfg.MarkFrequency)
	}
	if cfg.Shift <= 0 {
		return Config{}, fmt.Errorf("rtty: shift must be positive, got %v", cfg.Shift)
	}
	if cfg.SampleRate <= 0 {
		return Config{}, fmt.Errorf("rtty: sample rate must be positive, got %v", cfg.SampleRate)
	}
	if cfg.MarkFrequency-cfg.Shift <= 0 {
		return Config{}, fmt.Errorf("rtty: mark - shift must be positive (mark=%v shift=%v)", cfg.MarkFrequency, cfg.Shift)
	}

	return cfg, nil
}

// DefaultConfig returns the standard amateur RTTY configuration: 45.45
// baud, 2125 Hz mark, 170 Hz shift, 48 kHz sample rate.
func DefaultConfig() Config {
	cfg, err := NewConfig(45.45, 2125, 170, 48000)
	if err != nil {
		panic(err) // unreachable: constants above are always valid
	}
	return cfg
}

// SamplesPerBit is round(sample_rate / baud_rate).
func (c Config) SamplesPerBit() int {
	return int(float64(c.SampleRate)/c.BaudRate + 0.5)
}

// SpaceFrequency is mark - shift, before any AFC or frequency offset.
func (c Config) SpaceFrequency() float64 {
	return c.MarkFrequency - c.Shift
}

// TunedMarkFrequency is the mark frequency AFC starts tracking from:
// the configured mark plus the static frequency offset.
func (c Config) TunedMarkFrequency() float64 {
	return c.MarkFrequency + c.FrequencyOffset
}

// TunedSpaceFrequency is TunedMarkFrequency - Shift.
func (c Config) TunedSpaceFrequency() float64 {
	return c.TunedMarkFrequency() - c.Shift
}
