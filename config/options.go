// Package config loads the YAML-tagged parameter surface (§6) and
// turns it into validated rtty.Config / psk.Config values.
package config

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/hambus/modem/psk"
	"github.com/hambus/modem/rtty"
)

// RTTYOptions mirrors §3 RTTYConfiguration plus the operational
// options of §6 (squelch, AFC) that aren't part of the modem's own
// Config.
type RTTYOptions struct {
	BaudRate         float64 `yaml:"baud_rate"`
	MarkFrequency    float64 `yaml:"mark_frequency"`
	Shift            float64 `yaml:"shift"`
	PolarityInverted bool    `yaml:"polarity_inverted"`
	FrequencyOffset  float64 `yaml:"frequency_offset"`
	SquelchLevel     float64 `yaml:"squelch_level"`
	AFCEnabled       bool    `yaml:"afc_enabled"`
}

// PSKOptions mirrors §3 PSKConfiguration plus the operational options
// of §6.
type PSKOptions struct {
	CenterFrequency float64 `yaml:"center_frequency"`
	Modulation      string  `yaml:"modulation"`
	BaudRate        float64 `yaml:"baud_rate"`
	SquelchLevel    float64 `yaml:"squelch_level"`
	AFCEnabled      bool    `yaml:"afc_enabled"`
}

// Options is the top-level YAML document: an RTTY section, a PSK
// section, and a sample rate shared by both.
type Options struct {
	SampleRate int         `yaml:"sample_rate"`
	RTTY       RTTYOptions `yaml:"rtty"`
	PSK        PSKOptions  `yaml:"psk"`
}

// Load parses a YAML document into Options. It does not validate
// field ranges; call RTTYConfig/PSKConfig for that.
func Load(data []byte) (Options, error) {
	var opts Options
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return Options{}, fmt.Errorf("config: parse: %w", err)
	}
	if opts.SampleRate == 0 {
		opts.SampleRate = 48000
	}
	return opts, nil
}

// RTTYConfig builds an rtty.Config from the RTTY section, delegating
// all range validation to rtty.NewConfig (§7: the one place outside
// that constructor allowed to build a Config).
func (o Options) RTTYConfig() (rtty.Config, error) {
	var opts []rtty.Option
	if o.RTTY.PolarityInverted {
		opts = append(opts, rtty.WithPolarityInverted(true))
	}
	if o.RTTY.FrequencyOffset != 0 {
		opts = append(opts, rtty.WithFrequencyOffset(o.RTTY.FrequencyOffset))
	}
	return rtty.NewConfig(o.RTTY.BaudRate, o.RTTY.MarkFrequency, o.RTTY.Shift, o.SampleRate, opts...)
}

// PSKConfig builds a psk.Config from the PSK section.
func (o Options) PSKConfig() (psk.Config, error) {
	mod, err := parseModulation(o.PSK.Modulation)
	if err != nil {
		return psk.Config{}, err
	}
	return psk.NewConfig(o.PSK.BaudRate, o.PSK.CenterFrequency, o.SampleRate, mod)
}

func parseModulation(s string) (psk.Modulation, error) {
	switch s {
	case "", "BPSK":
		return psk.BPSK, nil
	case "QPSK":
		return psk.QPSK, nil
	default:
		return 0, fmt.Errorf("config: unknown modulation %q", s)
	}
}
