package bank

import (
	"sync"

	"github.com/hambus/modem/psk"
	"github.com/hambus/modem/rtty"
)

// channelModem is the common surface a channel's RTTY or PSK
// demodulator must provide; it lets Bank.Process drive either family
// identically.
type channelModem interface {
	ProcessSample(x float64)
	SetSquelch(level float64)
	Reset()
	Frequency() float64
}

type rttyChannelModem struct {
	demod      *rtty.Demodulator
	baseFreq   float64
}

func (c *rttyChannelModem) ProcessSample(x float64)   { c.demod.ProcessSample(x) }
func (c *rttyChannelModem) SetSquelch(level float64)  { c.demod.SetSquelch(level) }
func (c *rttyChannelModem) Reset()                    { c.demod.Reset() }
func (c *rttyChannelModem) Frequency() float64 {
	return c.baseFreq + c.demod.AFCCorrection()
}

type pskChannelModem struct {
	demod    *psk.Demodulator
	baseFreq float64
}

func (c *pskChannelModem) ProcessSample(x float64)  { c.demod.ProcessSample(x) }
func (c *pskChannelModem) SetSquelch(level float64) { c.demod.SetSquelch(level) }
func (c *pskChannelModem) Reset()                    { c.demod.Reset() }
func (c *pskChannelModem) Frequency() float64        { return c.baseFreq }

// Channel is one live channel in a Bank: a stable identity, a mutable
// tuned frequency, and the demodulator driving it. Snapshot is the
// single synchronized access point in this tree (§5: the producer path
// itself never blocks or locks beyond this).
type Channel struct {
	mu    sync.Mutex
	info  ChannelInfo
	modem channelModem
}

// Snapshot returns a consistent copy of the channel's current identity
// and tuned frequency, safe to call from a goroutine other than the
// one feeding samples.
func (c *Channel) Snapshot() ChannelInfo {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.info
}

// refreshFrequency re-reads the modem's current tuned frequency (AFC
// may have moved it) under the same lock Snapshot uses.
func (c *Channel) refreshFrequency() {
	c.mu.Lock()
	c.info.Frequency = c.modem.Frequency()
	c.mu.Unlock()
}

func (c *Channel) ID() ChannelID { return c.info.ID }
func (c *Channel) Mode() Mode    { return c.info.Mode }
