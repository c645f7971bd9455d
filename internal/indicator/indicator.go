// Package indicator computes the per-candle indicator snapshot the structure
// and strategy layers consume. Values that cannot be computed yet are NaN.
package indicator

import (
	"math"

	"github.com/predeshen/telegramscalperbot-sub002/internal/candle"
)

// Periods collects the lookback lengths for every attached indicator.
type Periods struct {
	EMAFast  int
	EMAMid   int
	EMASlow  int
	ATR      int
	ADX      int
	RSI      int
	VolumeMA int
}

// DefaultPeriods matches the scanner's stock indicator set.
func DefaultPeriods() Periods {
	return Periods{EMAFast: 9, EMAMid: 21, EMASlow: 50, ATR: 14, ADX: 14, RSI: 14, VolumeMA: 20}
}

// Apply returns a copy of the window with indicator fields attached to every
// candle. The input is never mutated.
func Apply(window []candle.Candle, p Periods) []candle.Candle {
	out := make([]candle.Candle, len(window))
	copy(out, window)
	if len(out) == 0 {
		return out
	}

	closes := make([]float64, len(out))
	volumes := make([]float64, len(out))
	for i, c := range out {
		closes[i] = c.Close
		volumes[i] = c.Volume
	}

	emaFast := ema(closes, p.EMAFast)
	emaMid := ema(closes, p.EMAMid)
	emaSlow := ema(closes, p.EMASlow)
	atrs := atr(out, p.ATR)
	adxs := adx(out, p.ADX)
	rsis := rsi(closes, p.RSI)
	volMA := sma(volumes, p.VolumeMA)

	for i := range out {
		out[i].Indicators = candle.Indicators{
			EMA9:     emaFast[i],
			EMA21:    emaMid[i],
			EMA50:    emaSlow[i],
			ATR:      atrs[i],
			ADX:      adxs[i],
			RSI:      rsis[i],
			VolumeMA: volMA[i],
		}
	}
	return out
}

func nans(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}

// sma is a simple moving average, NaN until a full period is available.
func sma(values []float64, period int) []float64 {
	out := nans(len(values))
	if period <= 0 || len(values) < period {
		return out
	}
	var sum float64
	for i, v := range values {
		sum += v
		if i >= period {
			sum -= values[i-period]
		}
		if i >= period-1 {
			out[i] = sum / float64(period)
		}
	}
	return out
}

// ema seeds with an SMA over the first period, then smooths with the usual
// 2/(period+1) multiplier.
func ema(values []float64, period int) []float64 {
	out := nans(len(values))
	if period <= 0 || len(values) < period {
		return out
	}
	var seed float64
	for i := 0; i < period; i++ {
		seed += values[i]
	}
	seed /= float64(period)
	out[period-1] = seed

	multiplier := 2.0 / float64(period+1)
	for i := period; i < len(values); i++ {
		out[i] = (values[i]-out[i-1])*multiplier + out[i-1]
	}
	return out
}

func trueRange(curr, prev candle.Candle) float64 {
	tr := curr.High - curr.Low
	tr = math.Max(tr, math.Abs(curr.High-prev.Close))
	return math.Max(tr, math.Abs(curr.Low-prev.Close))
}

// atr averages the true range with Wilder smoothing.
func atr(window []candle.Candle, period int) []float64 {
	out := nans(len(window))
	if period <= 0 || len(window) < period+1 {
		return out
	}

	var seed float64
	for i := 1; i <= period; i++ {
		seed += trueRange(window[i], window[i-1])
	}
	out[period] = seed / float64(period)
	for i := period + 1; i < len(window); i++ {
		out[i] = (out[i-1]*float64(period-1) + trueRange(window[i], window[i-1])) / float64(period)
	}
	return out
}

// rsi uses Wilder's smoothed gains and losses; flat series read as 100.
func rsi(values []float64, period int) []float64 {
	out := nans(len(values))
	if period <= 0 || len(values) < period+1 {
		return out
	}

	var avgGain, avgLoss float64
	for i := 1; i <= period; i++ {
		change := values[i] - values[i-1]
		if change > 0 {
			avgGain += change
		} else {
			avgLoss -= change
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)
	out[period] = rsiValue(avgGain, avgLoss)

	for i := period + 1; i < len(values); i++ {
		change := values[i] - values[i-1]
		gain, loss := 0.0, 0.0
		if change > 0 {
			gain = change
		} else {
			loss = -change
		}
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
		out[i] = rsiValue(avgGain, avgLoss)
	}
	return out
}

func rsiValue(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		return 100
	}
	return 100 - 100/(1+avgGain/avgLoss)
}

// adx follows the classic Wilder construction: smoothed directional movement
// into DI lines, DX, then a smoothed DX.
func adx(window []candle.Candle, period int) []float64 {
	out := nans(len(window))
	length := len(window)
	if period <= 0 || length < period*2 {
		return out
	}

	tr := make([]float64, length)
	plusDM := make([]float64, length)
	minusDM := make([]float64, length)
	for i := 1; i < length; i++ {
		tr[i] = trueRange(window[i], window[i-1])
		upMove := window[i].High - window[i-1].High
		downMove := window[i-1].Low - window[i].Low
		if upMove > downMove && upMove > 0 {
			plusDM[i] = upMove
		}
		if downMove > upMove && downMove > 0 {
			minusDM[i] = downMove
		}
	}

	dx := make([]float64, length)
	var smTR, smPlus, smMinus float64
	for i := 1; i < length; i++ {
		if i <= period {
			smTR += tr[i]
			smPlus += plusDM[i]
			smMinus += minusDM[i]
		} else {
			smTR += tr[i] - smTR/float64(period)
			smPlus += plusDM[i] - smPlus/float64(period)
			smMinus += minusDM[i] - smMinus/float64(period)
		}
		if i >= period && smTR > 0 {
			plusDI := 100 * smPlus / smTR
			minusDI := 100 * smMinus / smTR
			if plusDI+minusDI > 0 {
				dx[i] = 100 * math.Abs(plusDI-minusDI) / (plusDI + minusDI)
			}
		}
	}

	var seed float64
	for i := period; i < period*2; i++ {
		seed += dx[i]
	}
	out[period*2-1] = seed / float64(period)
	for i := period * 2; i < length; i++ {
		out[i] = (out[i-1]*float64(period-1) + dx[i]) / float64(period)
	}
	return out
}
