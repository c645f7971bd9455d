// Package risk derives stop, target, and trailing distances from ATR.
package risk

import sig "github.com/predeshen/telegramscalperbot-sub002/internal/signal"

// Multipliers scales ATR into protective and target distances.
type Multipliers struct {
	StopLoss       float64
	TakeProfitBase float64
	TrailAfter     float64
}

// Levels is the fully resolved risk annotation for one signal.
type Levels struct {
	Entry            float64
	StopLoss         float64
	TakeProfit       float64
	RiskReward       float64
	TrailAfterProfit float64
}

// takeProfitScale widens the target for longer expected holds and tightens
// it for scalps.
func takeProfitScale(holdDays int) float64 {
	switch {
	case holdDays >= 3:
		return 1.5
	case holdDays >= 1:
		return 1.0
	default:
		return 0.8
	}
}

// Compute resolves entry, stop, target, and trail levels for a signal in the
// given direction. Risk-reward reports 0 if the stop distance collapses.
func Compute(side sig.Type, entry, atr float64, holdDays int, m Multipliers) Levels {
	stopDistance := atr * m.StopLoss
	targetDistance := atr * m.TakeProfitBase * takeProfitScale(holdDays)

	levels := Levels{Entry: entry, TrailAfterProfit: atr * m.TrailAfter}
	if side == sig.Long {
		levels.StopLoss = entry - stopDistance
		levels.TakeProfit = entry + targetDistance
	} else {
		levels.StopLoss = entry + stopDistance
		levels.TakeProfit = entry - targetDistance
	}

	if stopDistance > 0 {
		levels.RiskReward = targetDistance / stopDistance
	}
	return levels
}
