// Package gap detects fair value gaps (three-candle price imbalances) over a
// candle window. The strategy engine consumes its output through a narrow
// interface, so detection internals stay out of the signal core.
package gap

import (
	sig "github.com/predeshen/telegramscalperbot-sub002/internal/signal"

	"github.com/predeshen/telegramscalperbot-sub002/internal/candle"
	"github.com/predeshen/telegramscalperbot-sub002/internal/structure"
)

// Detector scans the tail of a window for the most recent unfilled imbalance.
type Detector struct {
	scanDepth  int
	minPercent float64
}

// NewDetector builds a Detector scanning the last scanDepth candles for gaps
// of at least minPercent of price.
func NewDetector(scanDepth int, minPercent float64) *Detector {
	if scanDepth <= 0 {
		scanDepth = 10
	}
	if minPercent < 0 {
		minPercent = 0
	}
	return &Detector{scanDepth: scanDepth, minPercent: minPercent}
}

// Detect returns the most recent fair value gap within the scan depth, or nil.
// A bullish gap is a void between candle i-2's high and candle i's low left by
// a strong up move; bearish is the mirror.
func (d *Detector) Detect(window []candle.Candle) *sig.Gap {
	if len(window) < 3 {
		return nil
	}

	start := len(window) - d.scanDepth
	if start < 2 {
		start = 2
	}
	for i := len(window) - 1; i >= start; i-- {
		first := window[i-2]
		third := window[i]

		if third.Low > first.High {
			g := &sig.Gap{
				Type:    structure.Bullish,
				Low:     first.High,
				High:    third.Low,
				Percent: (third.Low - first.High) / first.High * 100,
			}
			if g.Percent >= d.minPercent {
				return g
			}
		}
		if third.High < first.Low {
			g := &sig.Gap{
				Type:    structure.Bearish,
				Low:     third.High,
				High:    first.Low,
				Percent: (first.Low - third.High) / first.Low * 100,
			}
			if g.Percent >= d.minPercent {
				return g
			}
		}
	}
	return nil
}
