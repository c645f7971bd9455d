// Package candle standardizes the annotated OHLCV payloads shared between the
// market data feed and the structure/strategy layers.
package candle

import (
	"fmt"
	"math"
	"time"
)

// Indicators carries the per-candle indicator values attached by the upstream
// indicator stage. Fields are NaN until computed; consumers must check with
// the Has* helpers before relying on them.
type Indicators struct {
	EMA9     float64 `json:"ema_9"`
	EMA21    float64 `json:"ema_21"`
	EMA50    float64 `json:"ema_50"`
	ATR      float64 `json:"atr"`
	ADX      float64 `json:"adx"`
	RSI      float64 `json:"rsi"`
	VolumeMA float64 `json:"volume_ma"`
}

// EmptyIndicators returns an Indicators value with every field set to NaN.
func EmptyIndicators() Indicators {
	nan := math.NaN()
	return Indicators{EMA9: nan, EMA21: nan, EMA50: nan, ATR: nan, ADX: nan, RSI: nan, VolumeMA: nan}
}

// HasVolatility reports whether ATR and ADX are both usable.
func (ind Indicators) HasVolatility() bool {
	return !math.IsNaN(ind.ATR) && !math.IsNaN(ind.ADX)
}

// HasVolumeMA reports whether the volume moving average is usable.
func (ind Indicators) HasVolumeMA() bool {
	return !math.IsNaN(ind.VolumeMA) && ind.VolumeMA > 0
}

// Candle models one closed price bar with its indicator snapshot. Candles are
// immutable once produced; windows are ordered oldest first.
type Candle struct {
	Timestamp  time.Time  `json:"timestamp"`
	Open       float64    `json:"open"`
	High       float64    `json:"high"`
	Low        float64    `json:"low"`
	Close      float64    `json:"close"`
	Volume     float64    `json:"volume"`
	Indicators Indicators `json:"indicators"`
}

// BodyPercent returns the candle body as a percentage of the full range,
// or 0 when the candle has no range.
func (c Candle) BodyPercent() float64 {
	rng := c.High - c.Low
	if rng <= 0 {
		return 0
	}
	return math.Abs(c.Close-c.Open) / rng * 100
}

// Bullish reports whether the candle closed above its open.
func (c Candle) Bullish() bool { return c.Close > c.Open }

// VolumeRatio returns volume relative to its moving average, or 0 when the
// average is unavailable.
func (c Candle) VolumeRatio() float64 {
	if !c.Indicators.HasVolumeMA() {
		return 0
	}
	return c.Volume / c.Indicators.VolumeMA
}

// ValidateWindow checks the structural assumptions the detection layers rely
// on: chronological order and sane OHLC shape. It runs once at the window
// boundary so downstream code can index freely.
func ValidateWindow(window []Candle) error {
	for i, c := range window {
		if c.High < c.Low {
			return fmt.Errorf("candle %d: high %.8f below low %.8f", i, c.High, c.Low)
		}
		if i > 0 && c.Timestamp.Before(window[i-1].Timestamp) {
			return fmt.Errorf("candle %d: timestamp %s out of order", i, c.Timestamp)
		}
	}
	return nil
}
