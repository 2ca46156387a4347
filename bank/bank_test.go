package bank

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hambus/modem/psk"
	"github.com/hambus/modem/rtty"
)

type recordingObserver struct {
	chars   map[ChannelID][]rune
	changed []ChannelsChangedEvent
	signals []SignalChangeEvent
}

func newRecordingObserver() *recordingObserver {
	return &recordingObserver{chars: make(map[ChannelID][]rune)}
}

func (o *recordingObserver) OnCharacter(ev CharacterEvent) {
	o.chars[ev.Channel] = append(o.chars[ev.Channel], ev.Character)
}
func (o *recordingObserver) OnSignalChange(ev SignalChangeEvent) { o.signals = append(o.signals, ev) }
func (o *recordingObserver) OnChannelsChanged(ev ChannelsChangedEvent) {
	o.changed = append(o.changed, ev)
}

func TestRTTYBankSeedsDefaultGrid(t *testing.T) {
	b, err := NewRTTYBank(45.45, 170, 8000)
	require.NoError(t, err)
	assert.Len(t, b.Channels(), len(defaultRTTYGrid))
}

func TestPSKBankSeedsDefaultGrid(t *testing.T) {
	b, err := NewPSKBank(31.25, psk.BPSK, 8000)
	require.NoError(t, err)
	assert.Len(t, b.Channels(), len(defaultPSKGrid))
}

func TestAddAndRemoveChannelNotifiesObserver(t *testing.T) {
	b, err := NewRTTYBank(45.45, 170, 8000)
	require.NoError(t, err)
	obs := newRecordingObserver()
	b.AddObserver(obs)

	id, err := b.AddChannel(2000)
	require.NoError(t, err)
	assert.Len(t, b.Channels(), len(defaultRTTYGrid)+1)

	removed := b.RemoveChannel(id)
	assert.True(t, removed)
	assert.Len(t, b.Channels(), len(defaultRTTYGrid))

	assert.NotEmpty(t, obs.changed)
}

func TestRemoveUnknownChannelReturnsFalse(t *testing.T) {
	b, err := NewRTTYBank(45.45, 170, 8000)
	require.NoError(t, err)
	assert.False(t, b.RemoveChannel(ChannelID{}))
}

func TestMultiChannelRTTYDecodesIndependently(t *testing.T) {
	const sampleRate = 8000
	frequencies := []float64{1500, 1700, 1900, 2100}
	texts := []string{"ONE", "TWO", "THREE", "FOUR"}

	b := &Bank{mode: ModeRTTY, sampleRate: sampleRate, rttyBaud: 45.45, rttyShift: 170}
	ids := make([]ChannelID, len(frequencies))
	for i, f := range frequencies {
		id, err := b.AddChannel(f)
		require.NoError(t, err)
		ids[i] = id
	}

	obs := newRecordingObserver()
	b.AddObserver(obs)

	mixed := mixRTTYStreams(t, frequencies, texts, sampleRate)
	b.Process(mixed)

	for i, id := range ids {
		assert.Equal(t, texts[i], string(obs.chars[id]))
	}
}

func mixRTTYStreams(t *testing.T, frequencies []float64, texts []string, sampleRate int) []float32 {
	t.Helper()
	var streams [][]float32
	maxLen := 0
	for i, f := range frequencies {
		cfg, err := rtty.NewConfig(45.45, f, 170, sampleRate)
		require.NoError(t, err)
		mod := rtty.NewModulator(cfg)
		samples := mod.EncodeWithIdle(texts[i], 20, 20)
		streams = append(streams, samples)
		if len(samples) > maxLen {
			maxLen = len(samples)
		}
	}

	mixed := make([]float32, maxLen)
	for _, s := range streams {
		for i, v := range s {
			mixed[i] += v * 0.25
		}
	}
	return mixed
}

func TestSetSquelchPropagatesToAllChannels(t *testing.T) {
	b, err := NewRTTYBank(45.45, 170, 8000)
	require.NoError(t, err)
	b.SetSquelch(0.5)
	assert.Equal(t, 0.5, b.squelch)
}

func TestResetDoesNotChangeChannelSet(t *testing.T) {
	b, err := NewRTTYBank(45.45, 170, 8000)
	require.NoError(t, err)
	before := len(b.Channels())
	b.Reset()
	assert.Equal(t, before, len(b.Channels()))
}
