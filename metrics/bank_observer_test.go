package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hambus/modem/bank"
)

func TestOnCharacterIncrementsCounter(t *testing.T) {
	reg := prometheus.NewRegistry()
	obs := NewBankObserver(reg)

	id := bank.ChannelID{}
	obs.OnCharacter(bank.CharacterEvent{Channel: id, Mode: bank.ModeRTTY, Character: 'A', SignalStrength: 0.9})
	obs.OnCharacter(bank.CharacterEvent{Channel: id, Mode: bank.ModeRTTY, Character: 'B', SignalStrength: 0.9})

	got := testutil.ToFloat64(obs.charactersDecoded.WithLabelValues(id.String(), "RTTY"))
	assert.Equal(t, 2.0, got)
}

func TestOnSignalChangeSetsGauge(t *testing.T) {
	reg := prometheus.NewRegistry()
	obs := NewBankObserver(reg)
	id := bank.ChannelID{}

	obs.OnSignalChange(bank.SignalChangeEvent{Channel: id, Mode: bank.ModePSK, Detected: true})
	assert.Equal(t, 1.0, testutil.ToFloat64(obs.signalDetected.WithLabelValues(id.String(), "PSK")))

	obs.OnSignalChange(bank.SignalChangeEvent{Channel: id, Mode: bank.ModePSK, Detected: false})
	assert.Equal(t, 0.0, testutil.ToFloat64(obs.signalDetected.WithLabelValues(id.String(), "PSK")))
}

func TestOnChannelsChangedSeedsAFCGauge(t *testing.T) {
	reg := prometheus.NewRegistry()
	obs := NewBankObserver(reg)
	id := bank.ChannelID{}

	obs.OnChannelsChanged(bank.ChannelsChangedEvent{
		Channels: []bank.ChannelInfo{{ID: id, Frequency: 2125, Mode: bank.ModeRTTY}},
	})
	assert.Equal(t, 0.0, testutil.ToFloat64(obs.afcCorrectionHz.WithLabelValues(id.String())))

	obs.SetAFCCorrection(id, 12.5)
	assert.Equal(t, 12.5, testutil.ToFloat64(obs.afcCorrectionHz.WithLabelValues(id.String())))
}

func TestNewBankObserverRegistersWithGivenRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	_ = NewBankObserver(reg)

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}
