package structure

import (
	"testing"
	"time"

	"github.com/predeshen/telegramscalperbot-sub002/internal/candle"
)

// flatWindow builds n identical candles; tests mutate highs/lows to carve
// structure into it.
func flatWindow(n int, high, low float64) []candle.Candle {
	base := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	window := make([]candle.Candle, n)
	for i := range window {
		window[i] = candle.Candle{
			Timestamp:  base.Add(time.Duration(i) * 15 * time.Minute),
			Open:       (high + low) / 2,
			High:       high,
			Low:        low,
			Close:      (high + low) / 2,
			Volume:     1000,
			Indicators: candle.EmptyIndicators(),
		}
	}
	return window
}

func TestFindSwingHighsSinglePeak(t *testing.T) {
	window := flatWindow(11, 90, 80)
	window[5].High = 100

	highs := FindSwingHighs(window, 5)
	if len(highs) != 1 {
		t.Fatalf("expected exactly one swing high, got %d", len(highs))
	}
	if highs[0].Index != 5 {
		t.Fatalf("expected peak at index 5, got %d", highs[0].Index)
	}
	if highs[0].Strength != 5 {
		t.Fatalf("expected strength 5, got %d", highs[0].Strength)
	}
	if highs[0].Price != 100 {
		t.Fatalf("expected price 100, got %.2f", highs[0].Price)
	}
	if highs[0].Type != SwingHigh {
		t.Fatalf("expected point type high, got %s", highs[0].Type)
	}
}

func TestFindSwingHighsMonotonic(t *testing.T) {
	window := flatWindow(30, 90, 80)
	for i := range window {
		window[i].High = 90 + float64(i)
		window[i].Low = 80 + float64(i)
	}

	if highs := FindSwingHighs(window, 5); len(highs) != 0 {
		t.Fatalf("expected no swing highs on monotonic tape, got %d", len(highs))
	}
}

func TestFindSwingHighsInsufficientWindow(t *testing.T) {
	window := flatWindow(10, 90, 80)
	if highs := FindSwingHighs(window, 5); len(highs) != 0 {
		t.Fatalf("expected empty result for window shorter than 2*lookback+1, got %d", len(highs))
	}
}

func TestFindSwingHighsTieDoesNotCount(t *testing.T) {
	window := flatWindow(11, 90, 80)
	window[5].High = 100
	window[7].High = 100

	if highs := FindSwingHighs(window, 5); len(highs) != 0 {
		t.Fatalf("expected tie to disqualify swing, got %d points", len(highs))
	}
}

func TestFindSwingLowsSingleTrough(t *testing.T) {
	window := flatWindow(11, 90, 80)
	window[5].Low = 70

	lows := FindSwingLows(window, 5)
	if len(lows) != 1 {
		t.Fatalf("expected exactly one swing low, got %d", len(lows))
	}
	if lows[0].Index != 5 || lows[0].Price != 70 || lows[0].Type != SwingLow {
		t.Fatalf("unexpected swing low: %+v", lows[0])
	}
}

func TestFindSwingsNeighbourhoodProperty(t *testing.T) {
	window := flatWindow(40, 90, 80)
	// Carve a few peaks and troughs.
	window[7].High = 101
	window[18].High = 103
	window[30].High = 102
	window[12].Low = 72
	window[25].Low = 71

	const lookback = 3
	for _, p := range FindSwingHighs(window, lookback) {
		for j := p.Index - lookback; j <= p.Index+lookback; j++ {
			if j == p.Index {
				continue
			}
			if window[j].High >= window[p.Index].High {
				t.Fatalf("swing high at %d not strictly above neighbour %d", p.Index, j)
			}
		}
	}
	for _, p := range FindSwingLows(window, lookback) {
		for j := p.Index - lookback; j <= p.Index+lookback; j++ {
			if j == p.Index {
				continue
			}
			if window[j].Low <= window[p.Index].Low {
				t.Fatalf("swing low at %d not strictly below neighbour %d", p.Index, j)
			}
		}
	}
}
