package notify

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	sig "github.com/predeshen/telegramscalperbot-sub002/internal/signal"
)

func TestPublishLogsSignal(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	sink := NewSink(logger)
	err := sink.Publish(&sig.Signal{
		Timestamp:  time.Now(),
		Type:       sig.Long,
		Symbol:     "BTCUSDT",
		Timeframe:  "15m",
		Entry:      105,
		StopLoss:   102,
		TakeProfit: 109,
		Confidence: 4,
		Reasoning:  []string{"ADX 30.0 confirms trend strength"},
		Metadata:   sig.Metadata{HoldType: "DAY TRADE", HoldDays: 2},
	})
	if err != nil {
		t.Fatalf("Publish returned error: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "BTCUSDT") {
		t.Fatalf("log does not contain symbol: %s", out)
	}
	if !strings.Contains(out, "signal published") {
		t.Fatalf("log does not contain publish marker: %s", out)
	}
}
