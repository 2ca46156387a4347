package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hambus/modem/psk"
)

const sample = `
sample_rate: 48000
rtty:
  baud_rate: 45.45
  mark_frequency: 2125
  shift: 170
  polarity_inverted: false
  frequency_offset: 5
  squelch_level: 0.2
  afc_enabled: true
psk:
  center_frequency: 1000
  modulation: QPSK
  baud_rate: 31.25
  squelch_level: 0.15
  afc_enabled: false
`

func TestLoadParsesBothSections(t *testing.T) {
	opts, err := Load([]byte(sample))
	require.NoError(t, err)
	assert.Equal(t, 48000, opts.SampleRate)
	assert.Equal(t, 45.45, opts.RTTY.BaudRate)
	assert.Equal(t, "QPSK", opts.PSK.Modulation)
}

func TestRTTYConfigAppliesOptions(t *testing.T) {
	opts, err := Load([]byte(sample))
	require.NoError(t, err)

	cfg, err := opts.RTTYConfig()
	require.NoError(t, err)
	assert.Equal(t, 5.0, cfg.FrequencyOffset)
	assert.Equal(t, 2125.0, cfg.MarkFrequency)
}

func TestPSKConfigParsesModulation(t *testing.T) {
	opts, err := Load([]byte(sample))
	require.NoError(t, err)

	cfg, err := opts.PSKConfig()
	require.NoError(t, err)
	assert.Equal(t, psk.QPSK, cfg.Modulation)
}

func TestPSKConfigRejectsUnknownModulation(t *testing.T) {
	opts, err := Load([]byte(`psk:
  modulation: FOO
  center_frequency: 1000
  baud_rate: 31.25
`))
	require.NoError(t, err)
	_, err = opts.PSKConfig()
	assert.Error(t, err)
}

func TestLoadDefaultsSampleRate(t *testing.T) {
	opts, err := Load([]byte(`rtty:
  baud_rate: 45.45
  mark_frequency: 2125
  shift: 170
`))
	require.NoError(t, err)
	assert.Equal(t, 48000, opts.SampleRate)
}

func TestLoadRejectsInvalidYAML(t *testing.T) {
	_, err := Load([]byte("not: [valid"))
	assert.Error(t, err)
}
