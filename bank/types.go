// Package bank implements the multi-channel demodulator (§4.8): a
// fixed-grid-seeded, opaque-identity set of independent RTTY or PSK
// channels, driven serially over the same input block and reporting
// decoded characters and squelch transitions through an observer.
package bank

import "github.com/google/uuid"

// ChannelID is a channel's stable opaque identity. Frequency may move
// under AFC; ChannelID never changes for the lifetime of a channel.
type ChannelID uuid.UUID

// String renders the channel id as a UUID string.
func (id ChannelID) String() string {
	return uuid.UUID(id).String()
}

func newChannelID() ChannelID {
	return ChannelID(uuid.New())
}

// Mode names the demodulator family running on a channel.
type Mode int

const (
	ModeRTTY Mode = iota
	ModePSK
)

func (m Mode) String() string {
	if m == ModePSK {
		return "PSK"
	}
	return "RTTY"
}

// ChannelInfo is a snapshot of one channel's identity and tuning.
type ChannelInfo struct {
	ID        ChannelID
	Frequency float64
	Mode      Mode
}

// CharacterEvent reports one decoded character on one channel.
type CharacterEvent struct {
	Channel        ChannelID
	Mode           Mode
	Character      rune
	SignalStrength float64
}

// SignalChangeEvent reports a squelch open/close transition on one
// channel.
type SignalChangeEvent struct {
	Channel  ChannelID
	Mode     Mode
	Detected bool
}

// ChannelsChangedEvent reports the current channel set after an
// add/remove.
type ChannelsChangedEvent struct {
	Channels []ChannelInfo
}

// Observer receives Bank events synchronously from the sample-delivery
// context (§5): implementations must enqueue and return promptly, never
// block or perform I/O inline.
type Observer interface {
	OnCharacter(CharacterEvent)
	OnSignalChange(SignalChangeEvent)
	OnChannelsChanged(ChannelsChangedEvent)
}
