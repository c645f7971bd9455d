package strategy

import (
	"fmt"
	"strings"

	sig "github.com/predeshen/telegramscalperbot-sub002/internal/signal"
	"github.com/predeshen/telegramscalperbot-sub002/internal/structure"
)

// Hold horizon labels attached to signal metadata.
const (
	HoldScalp    = "SCALP"
	HoldDayTrade = "DAY TRADE"
	HoldSwing    = "SWING"
)

// holdEstimate is the qualitative hold-horizon classification for a signal.
type holdEstimate struct {
	Type      string
	Days      int
	Reasoning string
}

// classifyHold estimates how long a position should be held. Each factor
// contributes a minimum day count; the estimate takes the maximum and records
// every factor that fired, in evaluation order.
func classifyHold(timeframe string, brk *structure.Break, gp *sig.Gap, adx, volumeRatio float64) holdEstimate {
	days := 0
	var reasons []string

	raise := func(min int, reason string) {
		if min > days {
			days = min
		}
		reasons = append(reasons, reason)
	}

	switch timeframe {
	case "15m", "1h":
		raise(2, fmt.Sprintf("%s timeframe favours a multi-session hold", timeframe))
	case "4h", "1d":
		raise(5, fmt.Sprintf("%s timeframe favours a multi-day hold", timeframe))
	}
	if brk != nil && brk.Strength >= 4 {
		raise(2, fmt.Sprintf("strong structure break (strength %d)", brk.Strength))
	}
	if gp != nil && gp.Percent >= 0.15 {
		raise(2, fmt.Sprintf("sizeable imbalance (%.2f%%)", gp.Percent))
	}
	if adx > 35 {
		raise(3, fmt.Sprintf("strong trend (ADX %.1f)", adx))
	}
	if volumeRatio > 2.0 {
		raise(2, fmt.Sprintf("heavy volume (%.1fx average)", volumeRatio))
	}

	reasoning := "Standard setup"
	if len(reasons) > 0 {
		reasoning = strings.Join(reasons, "; ")
	}

	holdType := HoldScalp
	switch {
	case days >= 3:
		holdType = HoldSwing
	case days >= 1:
		holdType = HoldDayTrade
	}
	return holdEstimate{Type: holdType, Days: days, Reasoning: reasoning}
}
