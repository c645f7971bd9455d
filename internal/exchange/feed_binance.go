package exchange

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/predeshen/telegramscalperbot-sub002/internal/candle"
	"github.com/predeshen/telegramscalperbot-sub002/internal/metrics"
)

type binanceEnvelope struct {
	Stream string      `json:"stream"`
	Data   binanceData `json:"data"`
}

type binanceData struct {
	Kline binanceKline `json:"k"`
}

type binanceKline struct {
	OpenTime int64  `json:"t"`
	Open     string `json:"o"`
	High     string `json:"h"`
	Low      string `json:"l"`
	Close    string `json:"c"`
	Volume   string `json:"v"`
	Final    bool   `json:"x"`
}

func (f *Feed) runBinance(ctx context.Context, out chan<- candle.Candle) error {
	if f.symbol == "" {
		return fmt.Errorf("binance feed requires a symbol")
	}

	stream := fmt.Sprintf("%s@kline_%s", strings.ToLower(f.symbol), f.timeframe)
	url := fmt.Sprintf("wss://stream.binance.com:9443/stream?streams=%s", stream)
	backoff := time.Second
	const maxBackoff = 30 * time.Second

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := f.consumeBinanceStream(ctx, url, out); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			f.log.Warn().Err(err).Msg("binance feed disconnected, retrying")
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return ctx.Err()
			}
			backoff = time.Duration(math.Min(float64(maxBackoff), float64(backoff)*1.8))
			continue
		}
		return nil
	}
}

func (f *Feed) consumeBinanceStream(ctx context.Context, url string, out chan<- candle.Candle) error {
	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	conn, _, err := dialer.DialContext(ctx, url, nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	f.log.Info().Str("provider", ProviderBinance).Str("symbol", f.symbol).Str("timeframe", f.timeframe).Msg("connected candle feed")

	conn.SetReadLimit(1 << 20)
	conn.SetReadDeadline(time.Now().Add(30 * time.Second))
	conn.SetPongHandler(func(appData string) error {
		conn.SetReadDeadline(time.Now().Add(30 * time.Second))
		return nil
	})

	pingCtx, pingCancel := context.WithCancel(ctx)
	defer pingCancel()
	go func() {
		ticker := time.NewTicker(15 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					f.log.Warn().Err(err).Msg("binance ping failed")
					return
				}
			case <-pingCtx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		_, message, err := conn.ReadMessage()
		if err != nil {
			return err
		}

		var env binanceEnvelope
		if err := json.Unmarshal(message, &env); err != nil {
			f.log.Warn().Err(err).Msg("failed to decode binance message")
			continue
		}
		// Only closed candles reach the engine; partial bars would make the
		// latest close unstable mid-evaluation.
		if !env.Data.Kline.Final {
			continue
		}

		c, err := parseBinanceKline(env.Data.Kline)
		if err != nil {
			f.log.Warn().Err(err).Msg("invalid kline from binance")
			continue
		}

		select {
		case out <- c:
			metrics.CandlesTotal.WithLabelValues(parseBinanceSymbol(env.Stream)).Inc()
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func parseBinanceKline(k binanceKline) (candle.Candle, error) {
	fields := [5]string{k.Open, k.High, k.Low, k.Close, k.Volume}
	var parsed [5]float64
	for i, raw := range fields {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return candle.Candle{}, fmt.Errorf("parse kline field %q: %w", raw, err)
		}
		parsed[i] = v
	}
	return candle.Candle{
		Timestamp:  time.UnixMilli(k.OpenTime),
		Open:       parsed[0],
		High:       parsed[1],
		Low:        parsed[2],
		Close:      parsed[3],
		Volume:     parsed[4],
		Indicators: candle.EmptyIndicators(),
	}, nil
}

func parseBinanceSymbol(stream string) string {
	parts := strings.Split(stream, "@")
	if len(parts) == 0 || parts[0] == "" {
		return strings.ToUpper(stream)
	}
	return strings.ToUpper(parts[0])
}
