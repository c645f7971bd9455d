// Package notify hands finished signals to downstream delivery channels.
package notify

import (
	"github.com/rs/zerolog"

	"github.com/predeshen/telegramscalperbot-sub002/internal/metrics"
	sig "github.com/predeshen/telegramscalperbot-sub002/internal/signal"
)

// Sink implements a logger-backed publisher for signals.
type Sink struct{ log zerolog.Logger }

// NewSink wraps a zerolog logger for signal delivery.
func NewSink(log zerolog.Logger) *Sink { return &Sink{log: log} }

// Publish currently logs the signal; wire Telegram/webhook delivery later.
func (s *Sink) Publish(signal *sig.Signal) error {
	metrics.SignalsTotal.WithLabelValues(signal.Symbol, string(signal.Type)).Inc()
	s.log.Info().
		Str("sym", signal.Symbol).
		Str("side", string(signal.Type)).
		Str("hold", signal.Metadata.HoldType).
		Int("confidence", signal.Confidence).
		Float64("entry", signal.Entry).
		Float64("sl", signal.StopLoss).
		Float64("tp", signal.TakeProfit).
		Float64("rr", signal.RiskReward).
		Strs("reasons", signal.Reasoning).
		Msg("signal published")
	return nil
}
