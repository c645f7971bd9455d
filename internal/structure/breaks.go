package structure

import (
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/predeshen/telegramscalperbot-sub002/internal/candle"
)

// Direction expresses which way a structural event points.
type Direction string

const (
	// Bullish marks upward structural pressure.
	Bullish Direction = "bullish"
	// Bearish marks downward structural pressure.
	Bearish Direction = "bearish"
)

// BreakType distinguishes continuation breaks from reversal breaks.
type BreakType string

const (
	// BOS (break of structure) extends the prevailing trend beyond its most
	// recent extreme.
	BOS BreakType = "BOS"
	// CHoCH (change of character) breaches the prior opposite-side extreme,
	// hinting at a reversal.
	CHoCH BreakType = "CHoCH"
)

// Break records a single structure violation by the latest close.
type Break struct {
	Type              BreakType `json:"break_type"`
	Direction         Direction `json:"direction"`
	Price             float64   `json:"break_price"`
	PreviousStructure float64   `json:"previous_structure"`
	Strength          int       `json:"strength"`
	Timestamp         time.Time `json:"timestamp"`
}

// minWindow is the fewest candles break and trend detection will work with.
const minWindow = 20

// Classifier detects structure breaks and trend state over candle windows.
// Configuration is fixed at construction; the classifier itself is stateless
// between calls and safe to share across goroutines.
type Classifier struct {
	lookback        int
	minBreakPercent float64
	log             zerolog.Logger
}

// NewClassifier builds a Classifier, clamping nonsensical parameters to the
// defaults used across the scanner.
func NewClassifier(lookback int, minBreakPercent float64, log zerolog.Logger) *Classifier {
	if lookback <= 0 {
		lookback = 5
	}
	if minBreakPercent <= 0 {
		minBreakPercent = 0.1
	}
	return &Classifier{lookback: lookback, minBreakPercent: minBreakPercent, log: log}
}

// Lookback returns the configured swing confirmation radius.
func (c *Classifier) Lookback() int { return c.lookback }

// DetectBreak classifies the latest close against recent swing structure.
// It returns at most one break per call, preferring BOS over CHoCH, and nil
// when no level was violated by at least the configured minimum percent.
// Any internal fault is logged and reported as "no break" so the caller's
// evaluation loop keeps running.
func (c *Classifier) DetectBreak(window []candle.Candle) (brk *Break) {
	defer func() {
		if r := recover(); r != nil {
			c.log.Error().Interface("panic", r).Int("window", len(window)).Msg("structure break detection failed")
			brk = nil
		}
	}()

	if len(window) < minWindow {
		return nil
	}
	highs := FindSwingHighs(window, c.lookback)
	lows := FindSwingLows(window, c.lookback)
	if len(highs) == 0 || len(lows) == 0 {
		return nil
	}

	latest := window[len(window)-1]
	lastHigh := highs[len(highs)-1]
	lastLow := lows[len(lows)-1]

	// The later of the two extremes defines the prevailing trend and the
	// level a continuation break must clear.
	trend := Bearish
	reference := lastLow.Price
	if lastHigh.Index > lastLow.Index {
		trend = Bullish
		reference = lastHigh.Price
	}

	if trend == Bullish && latest.Close > reference {
		if bp := breakPercent(latest.Close, reference); bp >= c.minBreakPercent {
			return c.newBreak(BOS, Bullish, latest, reference, bp)
		}
	}
	if trend == Bearish && latest.Close < reference {
		if bp := breakPercent(latest.Close, reference); bp >= c.minBreakPercent {
			return c.newBreak(BOS, Bearish, latest, reference, bp)
		}
	}

	// No continuation: check for a reversal through the prior opposite-side
	// extreme (needs two swings on that side).
	if trend == Bullish && len(lows) >= 2 {
		prior := lows[len(lows)-2].Price
		if latest.Close < prior {
			if bp := breakPercent(latest.Close, prior); bp >= c.minBreakPercent {
				return c.newBreak(CHoCH, Bearish, latest, prior, bp)
			}
		}
	}
	if trend == Bearish && len(highs) >= 2 {
		prior := highs[len(highs)-2].Price
		if latest.Close > prior {
			if bp := breakPercent(latest.Close, prior); bp >= c.minBreakPercent {
				return c.newBreak(CHoCH, Bullish, latest, prior, bp)
			}
		}
	}
	return nil
}

func (c *Classifier) newBreak(kind BreakType, dir Direction, latest candle.Candle, reference, bp float64) *Break {
	return &Break{
		Type:              kind,
		Direction:         dir,
		Price:             latest.Close,
		PreviousStructure: reference,
		Strength:          breakStrength(bp, latest),
		Timestamp:         latest.Timestamp,
	}
}

// breakPercent measures how far close moved through the broken level,
// denominated in the level itself.
func breakPercent(close, reference float64) float64 {
	return math.Abs(close-reference) / reference * 100
}

// breakStrength scores a break 0..5 from its magnitude plus a volume bonus.
// A break at exactly the minimum threshold with quiet volume legitimately
// scores 0.
func breakStrength(bp float64, latest candle.Candle) int {
	strength := int(math.Floor(bp * 10))
	if latest.VolumeRatio() > 1.5 {
		strength += 2
	}
	if strength > 5 {
		strength = 5
	}
	return strength
}
