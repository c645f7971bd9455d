package main

import (
	"context"
	"os"
	ossignal "os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/predeshen/telegramscalperbot-sub002/internal/candle"
	"github.com/predeshen/telegramscalperbot-sub002/internal/config"
	"github.com/predeshen/telegramscalperbot-sub002/internal/exchange"
	"github.com/predeshen/telegramscalperbot-sub002/internal/gap"
	"github.com/predeshen/telegramscalperbot-sub002/internal/indicator"
	"github.com/predeshen/telegramscalperbot-sub002/internal/metrics"
	"github.com/predeshen/telegramscalperbot-sub002/internal/notify"
	"github.com/predeshen/telegramscalperbot-sub002/internal/strategy"
	"github.com/predeshen/telegramscalperbot-sub002/internal/util"
)

func main() {
	_ = godotenv.Load() // best-effort

	log := util.NewLogger("info")

	cfg, err := config.Load("internal/config/config.yaml")
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	log = util.NewLogger(cfg.App.LogLevel)
	if key := os.Getenv("BINANCE_API_KEY"); key != "" {
		cfg.Exchange.APIKey = key
	}
	if secret := os.Getenv("BINANCE_API_SECRET"); secret != "" {
		cfg.Exchange.APISecret = secret
	}

	_ = metrics.Serve(cfg.App.MetricsAddr)
	log.Info().Str("addr", cfg.App.MetricsAddr).Msg("metrics up")

	ctx, cancel := ossignal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	feed := exchange.NewFeed(cfg.Exchange.Provider, cfg.Exchange.Symbol, cfg.Exchange.Timeframe, util.Component(log, "feed"))
	candles := make(chan candle.Candle, 64)

	go func() {
		if err := feed.Run(ctx, candles); err != nil {
			log.Error().Err(err).Msg("feed stopped")
			cancel()
		}
	}()

	gaps := gap.NewDetector(cfg.Gap.ScanDepth, cfg.Gap.MinPercent)
	engine := strategy.NewEngine(cfg.Exchange.Symbol, strategy.Config{
		SwingLookback:   cfg.Strategy.Params.SwingLookback,
		MinBreakPercent: cfg.Strategy.Params.MinBreakPercent,
		MinADX:          cfg.Strategy.Params.MinADX,
		MinVolumeRatio:  cfg.Strategy.Params.MinVolumeRatio,
		MinBodyPercent:  cfg.Strategy.Params.MinBodyPercent,
		StopLossATR:     cfg.Strategy.Params.StopLossATR,
		TakeProfitATR:   cfg.Strategy.Params.TakeProfitATR,
		TrailAfterATR:   cfg.Strategy.Params.TrailAfterATR,
	}, gaps, util.Component(log, "strategy"))
	sink := notify.NewSink(util.Component(log, "notify"))

	windowSize := cfg.Scanner.WindowSize
	if windowSize <= 0 {
		windowSize = 100
	}
	periods := indicator.DefaultPeriods()

	var window []candle.Candle
	log.Info().Str("symbol", cfg.Exchange.Symbol).Str("timeframe", cfg.Exchange.Timeframe).Msg("scanner started")
	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("shutting down")
			return
		case c := <-candles:
			window = append(window, c)
			if len(window) > windowSize {
				window = window[len(window)-windowSize:]
			}
			if err := candle.ValidateWindow(window); err != nil {
				log.Warn().Err(err).Msg("dropping malformed window")
				window = window[:0]
				continue
			}

			annotated := indicator.Apply(window, periods)
			signal := engine.DetectSignal(annotated, cfg.Exchange.Timeframe)
			if signal == nil {
				continue
			}
			if err := sink.Publish(signal); err != nil {
				log.Error().Err(err).Msg("publish signal")
			}
		}
	}
}
