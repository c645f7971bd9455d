package gap

import (
	"math"
	"testing"
	"time"

	"github.com/predeshen/telegramscalperbot-sub002/internal/candle"
	"github.com/predeshen/telegramscalperbot-sub002/internal/structure"
)

func series(prices ...[4]float64) []candle.Candle {
	base := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	out := make([]candle.Candle, len(prices))
	for i, p := range prices {
		out[i] = candle.Candle{
			Timestamp:  base.Add(time.Duration(i) * 15 * time.Minute),
			Open:       p[0],
			High:       p[1],
			Low:        p[2],
			Close:      p[3],
			Volume:     1000,
			Indicators: candle.EmptyIndicators(),
		}
	}
	return out
}

func TestDetectBullishGap(t *testing.T) {
	// Candle 2's low clears candle 0's high: a 100 -> 103 void.
	window := series(
		[4]float64{99, 100, 98, 100},
		[4]float64{100, 104, 100, 104},
		[4]float64{104, 106, 103, 105},
	)

	d := NewDetector(10, 0.05)
	g := d.Detect(window)
	if g == nil {
		t.Fatalf("expected a bullish gap")
	}
	if g.Type != structure.Bullish {
		t.Fatalf("expected bullish type, got %s", g.Type)
	}
	if g.Low != 100 || g.High != 103 {
		t.Fatalf("unexpected gap bounds: %.2f..%.2f", g.Low, g.High)
	}
	if math.Abs(g.Percent-3.0) > 1e-9 {
		t.Fatalf("expected 3%% gap, got %.4f", g.Percent)
	}
}

func TestDetectBearishGap(t *testing.T) {
	window := series(
		[4]float64{101, 102, 100, 100},
		[4]float64{100, 100, 96, 96},
		[4]float64{96, 97, 95, 95},
	)

	d := NewDetector(10, 0.05)
	g := d.Detect(window)
	if g == nil {
		t.Fatalf("expected a bearish gap")
	}
	if g.Type != structure.Bearish {
		t.Fatalf("expected bearish type, got %s", g.Type)
	}
	if g.Low != 97 || g.High != 100 {
		t.Fatalf("unexpected gap bounds: %.2f..%.2f", g.Low, g.High)
	}
}

func TestDetectNoGapOnContinuousTape(t *testing.T) {
	window := series(
		[4]float64{100, 101, 99, 100},
		[4]float64{100, 101.5, 99.5, 101},
		[4]float64{101, 102, 100.5, 101.5},
		[4]float64{101.5, 102.5, 101, 102},
	)

	d := NewDetector(10, 0.05)
	if g := d.Detect(window); g != nil {
		t.Fatalf("expected no gap, got %+v", g)
	}
}

func TestDetectRespectsMinPercent(t *testing.T) {
	window := series(
		[4]float64{99, 100, 98, 100},
		[4]float64{100, 100.3, 100, 100.3},
		[4]float64{100.3, 100.5, 100.05, 100.4},
	)

	// 0.05% void, detector demands 0.5%.
	d := NewDetector(10, 0.5)
	if g := d.Detect(window); g != nil {
		t.Fatalf("expected gap below min percent to be ignored, got %+v", g)
	}
}

func TestDetectPicksMostRecentGap(t *testing.T) {
	window := series(
		[4]float64{99, 100, 98, 100},
		[4]float64{100, 104, 100, 104},
		[4]float64{104, 106, 103, 105}, // older gap 100..103
		[4]float64{105, 109, 105, 109},
		[4]float64{109, 112, 108, 111}, // newer gap 106..108
	)

	d := NewDetector(10, 0.05)
	g := d.Detect(window)
	if g == nil {
		t.Fatalf("expected a gap")
	}
	if g.Low != 106 || g.High != 108 {
		t.Fatalf("expected the most recent gap 106..108, got %.2f..%.2f", g.Low, g.High)
	}
}

func TestDetectShortWindow(t *testing.T) {
	d := NewDetector(10, 0.05)
	if g := d.Detect(series([4]float64{99, 100, 98, 100})); g != nil {
		t.Fatalf("expected nil for short window")
	}
}
