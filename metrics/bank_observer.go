// Package metrics adapts a bank.Bank's decode/signal events onto
// Prometheus collectors, in the style of the teacher's own
// promauto-based PrometheusMetrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/hambus/modem/bank"
)

// BankObserver is a bank.Observer that publishes decode activity as
// Prometheus collectors. Every update is a non-blocking collector
// mutation, so it never slows the producer path (§5).
type BankObserver struct {
	charactersDecoded *prometheus.CounterVec
	signalDetected    *prometheus.GaugeVec
	afcCorrectionHz   *prometheus.GaugeVec
}

// NewBankObserver registers its collectors against reg and returns the
// observer. Pass prometheus.DefaultRegisterer for the global registry.
func NewBankObserver(reg prometheus.Registerer) *BankObserver {
	factory := promauto.With(reg)
	return &BankObserver{
		charactersDecoded: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "modem_characters_decoded_total",
				Help: "Total characters decoded, by channel and mode.",
			},
			[]string{"channel", "mode"},
		),
		signalDetected: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "modem_signal_detected",
				Help: "1 if squelch is currently open on this channel, else 0.",
			},
			[]string{"channel", "mode"},
		),
		afcCorrectionHz: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "modem_afc_correction_hz",
				Help: "Current cumulative AFC frequency correction in Hz.",
			},
			[]string{"channel"},
		),
	}
}

// OnCharacter implements bank.Observer.
func (o *BankObserver) OnCharacter(ev bank.CharacterEvent) {
	o.charactersDecoded.WithLabelValues(ev.Channel.String(), ev.Mode.String()).Inc()
}

// OnSignalChange implements bank.Observer.
func (o *BankObserver) OnSignalChange(ev bank.SignalChangeEvent) {
	v := 0.0
	if ev.Detected {
		v = 1.0
	}
	o.signalDetected.WithLabelValues(ev.Channel.String(), ev.Mode.String()).Set(v)
}

// OnChannelsChanged implements bank.Observer. It seeds an AFC gauge at
// zero for every RTTY channel so the metric exists before the first
// correction is ever applied.
func (o *BankObserver) OnChannelsChanged(ev bank.ChannelsChangedEvent) {
	for _, ch := range ev.Channels {
		if ch.Mode == bank.ModeRTTY {
			// WithLabelValues creates the gauge at zero if it is new and
			// leaves an existing channel's value untouched.
			o.afcCorrectionHz.WithLabelValues(ch.ID.String())
		}
	}
}

// SetAFCCorrection records the current AFC offset for a channel. Bank's
// events carry a channel's retuned frequency but not the AFC correction
// itself, so callers poll rtty.Demodulator.AFCCorrection and report it
// here on whatever cadence suits them.
func (o *BankObserver) SetAFCCorrection(channel bank.ChannelID, hz float64) {
	o.afcCorrectionHz.WithLabelValues(channel.String()).Set(hz)
}
