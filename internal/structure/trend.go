package structure

import "github.com/predeshen/telegramscalperbot-sub002/internal/candle"

// Trend is the coarse market bias read from recent swing structure.
type Trend string

const (
	// TrendBullish means higher highs and higher lows.
	TrendBullish Trend = "bullish"
	// TrendBearish means lower highs and lower lows.
	TrendBearish Trend = "bearish"
	// TrendNeutral covers mixed or insufficient structure.
	TrendNeutral Trend = "neutral"
)

// CurrentTrend labels the window from its last two swing highs and lows.
// Anything short of two confirmed swings per side reads as neutral.
func (c *Classifier) CurrentTrend(window []candle.Candle) Trend {
	if len(window) < minWindow {
		return TrendNeutral
	}
	highs := FindSwingHighs(window, c.lookback)
	lows := FindSwingLows(window, c.lookback)
	if len(highs) < 2 || len(lows) < 2 {
		return TrendNeutral
	}

	higherHighs := highs[len(highs)-1].Price > highs[len(highs)-2].Price
	higherLows := lows[len(lows)-1].Price > lows[len(lows)-2].Price
	lowerHighs := highs[len(highs)-1].Price < highs[len(highs)-2].Price
	lowerLows := lows[len(lows)-1].Price < lows[len(lows)-2].Price

	switch {
	case higherHighs && higherLows:
		return TrendBullish
	case lowerHighs && lowerLows:
		return TrendBearish
	default:
		return TrendNeutral
	}
}
