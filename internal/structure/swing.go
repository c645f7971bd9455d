// Package structure infers market structure (swing points, structure breaks,
// trend state) from a sliding candle window.
package structure

import (
	"time"

	"github.com/predeshen/telegramscalperbot-sub002/internal/candle"
)

// PointType labels which side of price a swing point sits on.
type PointType string

const (
	// SwingHigh marks a confirmed local maximum of candle highs.
	SwingHigh PointType = "high"
	// SwingLow marks a confirmed local minimum of candle lows.
	SwingLow PointType = "low"
)

// SwingPoint is a local extremum confirmed by a symmetric lookback window.
type SwingPoint struct {
	Type      PointType `json:"point_type"`
	Price     float64   `json:"price"`
	Index     int       `json:"index"`
	Timestamp time.Time `json:"timestamp"`
	Strength  int       `json:"strength"`
}

// FindSwingHighs returns every candle whose high strictly exceeds the highs
// of all neighbours within lookback on both sides. Ties never qualify.
// Windows shorter than 2*lookback+1 yield no points.
func FindSwingHighs(window []candle.Candle, lookback int) []SwingPoint {
	return findSwings(window, lookback, SwingHigh)
}

// FindSwingLows is the mirror of FindSwingHighs over candle lows.
func FindSwingLows(window []candle.Candle, lookback int) []SwingPoint {
	return findSwings(window, lookback, SwingLow)
}

func findSwings(window []candle.Candle, lookback int, kind PointType) []SwingPoint {
	var points []SwingPoint
	if lookback <= 0 || len(window) < 2*lookback+1 {
		return points
	}

	for i := lookback; i < len(window)-lookback; i++ {
		confirmed := true
		for j := i - lookback; j <= i+lookback; j++ {
			if j == i {
				continue
			}
			if kind == SwingHigh && window[j].High >= window[i].High {
				confirmed = false
				break
			}
			if kind == SwingLow && window[j].Low <= window[i].Low {
				confirmed = false
				break
			}
		}
		if !confirmed {
			continue
		}

		price := window[i].High
		if kind == SwingLow {
			price = window[i].Low
		}
		points = append(points, SwingPoint{
			Type:      kind,
			Price:     price,
			Index:     i,
			Timestamp: window[i].Timestamp,
			Strength:  lookback,
		})
	}
	return points
}
