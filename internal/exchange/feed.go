// Package exchange hosts connectors for candle sources.
package exchange

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/predeshen/telegramscalperbot-sub002/internal/candle"
	"github.com/predeshen/telegramscalperbot-sub002/internal/metrics"
)

const (
	// ProviderStub emits deterministic synthetic candles (useful for tests/offline work).
	ProviderStub = "stub"
	// ProviderBinance streams closed klines from Binance public websockets.
	ProviderBinance = "binance"
)

// Feed represents a pluggable candle stream implementation for one
// symbol/timeframe pair.
type Feed struct {
	provider     string
	symbol       string
	timeframe    string
	log          zerolog.Logger
	stubInterval time.Duration
}

// Option configures Feed construction parameters.
type Option func(*Feed)

// WithStubInterval overrides how quickly the stub provider closes candles.
func WithStubInterval(d time.Duration) Option {
	return func(f *Feed) {
		if d > 0 {
			f.stubInterval = d
		}
	}
}

// NewFeed constructs a feed backed by the requested provider.
func NewFeed(provider, symbol, timeframe string, log zerolog.Logger, opts ...Option) *Feed {
	if provider == "" {
		provider = ProviderStub
	}
	if timeframe == "" {
		timeframe = "15m"
	}
	f := &Feed{
		provider:     strings.ToLower(provider),
		symbol:       strings.ToUpper(strings.TrimSpace(symbol)),
		timeframe:    timeframe,
		log:          log,
		stubInterval: 100 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Run pushes closed candles onto the provided channel until the context is canceled.
func (f *Feed) Run(ctx context.Context, out chan<- candle.Candle) error {
	switch f.provider {
	case ProviderBinance:
		return f.runBinance(ctx, out)
	default:
		return f.runStub(ctx, out)
	}
}

// runStub synthesizes a gently trending tape with periodic pullbacks so the
// structure layers have swings to chew on.
func (f *Feed) runStub(ctx context.Context, out chan<- candle.Candle) error {
	ticker := time.NewTicker(f.stubInterval)
	defer ticker.Stop()

	px := 100.0
	i := 0
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ts := <-ticker.C:
			drift := 0.4
			if i%7 >= 5 {
				drift = -0.3
			}
			open := px
			px += drift
			wave := 0.2 * math.Abs(math.Sin(float64(i)))
			c := candle.Candle{
				Timestamp:  ts,
				Open:       open,
				High:       math.Max(open, px) + wave,
				Low:        math.Min(open, px) - wave,
				Close:      px,
				Volume:     1000 + 50*float64(i%13),
				Indicators: candle.EmptyIndicators(),
			}
			i++
			select {
			case out <- c:
				metrics.CandlesTotal.WithLabelValues(f.symbol).Inc()
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
}
