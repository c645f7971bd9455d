// Package strategy fuses structure breaks, fair value gaps, and momentum
// filters into risk-annotated trade signals.
package strategy

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/predeshen/telegramscalperbot-sub002/internal/candle"
	"github.com/predeshen/telegramscalperbot-sub002/internal/risk"
	sig "github.com/predeshen/telegramscalperbot-sub002/internal/signal"
	"github.com/predeshen/telegramscalperbot-sub002/internal/structure"
)

// minWindow is the fewest candles the engine will evaluate.
const minWindow = 20

// GapDetector yields the most recent imbalance descriptor for a window, or
// nil when none qualifies. Detection internals live outside this package.
type GapDetector interface {
	Detect(window []candle.Candle) *sig.Gap
}

// Config groups the tunable thresholds for one engine instance. Values are
// fixed at construction; there is no shared configuration state.
type Config struct {
	SwingLookback   int
	MinBreakPercent float64
	MinADX          float64
	MinVolumeRatio  float64
	MinBodyPercent  float64
	StopLossATR     float64
	TakeProfitATR   float64
	TrailAfterATR   float64
}

// Engine evaluates candle windows for one symbol and emits at most one signal
// per call. It holds no state between calls beyond its configuration, so
// independent instances may run concurrently.
type Engine struct {
	symbol     string
	cfg        Config
	classifier *structure.Classifier
	gaps       GapDetector
	log        zerolog.Logger
}

// NewEngine builds an Engine for a symbol, clamping missing thresholds to the
// scanner defaults.
func NewEngine(symbol string, cfg Config, gaps GapDetector, log zerolog.Logger) *Engine {
	if cfg.SwingLookback <= 0 {
		cfg.SwingLookback = 5
	}
	if cfg.MinBreakPercent <= 0 {
		cfg.MinBreakPercent = 0.1
	}
	if cfg.MinADX <= 0 {
		cfg.MinADX = 25
	}
	if cfg.MinVolumeRatio <= 0 {
		cfg.MinVolumeRatio = 1.2
	}
	if cfg.MinBodyPercent <= 0 {
		cfg.MinBodyPercent = 60
	}
	if cfg.StopLossATR <= 0 {
		cfg.StopLossATR = 1.5
	}
	if cfg.TakeProfitATR <= 0 {
		cfg.TakeProfitATR = 2.0
	}
	if cfg.TrailAfterATR <= 0 {
		cfg.TrailAfterATR = 1.0
	}
	return &Engine{
		symbol:     symbol,
		cfg:        cfg,
		classifier: structure.NewClassifier(cfg.SwingLookback, cfg.MinBreakPercent, log),
		gaps:       gaps,
		log:        log,
	}
}

// Name identifies the engine in logs.
func (e *Engine) Name() string { return "StructureGap" }

// DetectSignal runs one evaluation cycle over the window. It returns nil when
// any filter rejects the setup and never lets a fault escape to the caller:
// panics are logged and converted to "no signal".
func (e *Engine) DetectSignal(window []candle.Candle, timeframe string) (out *sig.Signal) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Error().Interface("panic", r).Str("symbol", e.symbol).Msg("signal evaluation failed")
			out = nil
		}
	}()

	if len(window) < minWindow {
		return nil
	}
	latest := window[len(window)-1]
	if !latest.Indicators.HasVolatility() {
		return nil
	}

	adx := latest.Indicators.ADX
	if adx < e.cfg.MinADX {
		return nil
	}
	volumeRatio := latest.VolumeRatio()
	if volumeRatio < e.cfg.MinVolumeRatio {
		return nil
	}
	bodyPercent := latest.BodyPercent()
	if bodyPercent < e.cfg.MinBodyPercent {
		return nil
	}

	var gp *sig.Gap
	if e.gaps != nil {
		gp = e.gaps.Detect(window)
	}
	brk := e.classifier.DetectBreak(window)
	if gp == nil && brk == nil {
		return nil
	}

	side, ok := resolveDirection(latest, gp, brk)
	if !ok {
		return nil
	}

	hold := classifyHold(timeframe, brk, gp, adx, volumeRatio)

	confidence := 3
	if gp != nil {
		confidence++
	}
	if brk != nil {
		confidence++
	}
	if confidence > 5 {
		confidence = 5
	}

	levels := risk.Compute(side, latest.Close, latest.Indicators.ATR, hold.Days, risk.Multipliers{
		StopLoss:       e.cfg.StopLossATR,
		TakeProfitBase: e.cfg.TakeProfitATR,
		TrailAfter:     e.cfg.TrailAfterATR,
	})

	return &sig.Signal{
		Timestamp:  latest.Timestamp,
		Type:       side,
		Timeframe:  timeframe,
		Symbol:     e.symbol,
		Entry:      levels.Entry,
		StopLoss:   levels.StopLoss,
		TakeProfit: levels.TakeProfit,
		ATR:        latest.Indicators.ATR,
		RiskReward: levels.RiskReward,
		MarketBias: e.classifier.CurrentTrend(window),
		Confidence: confidence,
		Indicators: latest.Indicators,
		Reasoning:  buildReasoning(side, latest, gp, brk, adx, volumeRatio, bodyPercent),
		Strategy:   fmt.Sprintf("FVG + Structure Break (%s)", hold.Type),
		Metadata: sig.Metadata{
			HoldType:         hold.Type,
			HoldDays:         hold.Days,
			HoldReasoning:    hold.Reasoning,
			FVG:              gp,
			StructureBreak:   brk,
			TrailAfterProfit: levels.TrailAfterProfit,
		},
	}
}

// resolveDirection requires a directional trigger plus trend or conviction
// confirmation from the latest candle. Bullish is checked first.
func resolveDirection(latest candle.Candle, gp *sig.Gap, brk *structure.Break) (sig.Type, bool) {
	bodyPercent := latest.BodyPercent()
	ema50 := latest.Indicators.EMA50

	bullTrigger := (gp != nil && gp.Type == structure.Bullish) || (brk != nil && brk.Direction == structure.Bullish)
	if bullTrigger && (latest.Close > ema50 || (latest.Bullish() && bodyPercent > 70)) {
		return sig.Long, true
	}

	bearTrigger := (gp != nil && gp.Type == structure.Bearish) || (brk != nil && brk.Direction == structure.Bearish)
	if bearTrigger && (latest.Close < ema50 || (latest.Close < latest.Open && bodyPercent > 70)) {
		return sig.Short, true
	}
	return "", false
}

func buildReasoning(side sig.Type, latest candle.Candle, gp *sig.Gap, brk *structure.Break, adx, volumeRatio, bodyPercent float64) []string {
	reasons := []string{
		fmt.Sprintf("ADX %.1f confirms trend strength", adx),
		fmt.Sprintf("volume %.1fx its average", volumeRatio),
		fmt.Sprintf("decisive candle body (%.0f%% of range)", bodyPercent),
	}
	if gp != nil {
		reasons = append(reasons, fmt.Sprintf("%s fair value gap of %.2f%%", gp.Type, gp.Percent))
	}
	if brk != nil {
		reasons = append(reasons, fmt.Sprintf("%s %s through %.4f", brk.Direction, brk.Type, brk.PreviousStructure))
	}
	if side == sig.Long {
		reasons = append(reasons, "price holding above EMA50 or closing with conviction")
	} else {
		reasons = append(reasons, "price rejected below EMA50 or closing with conviction")
	}
	return reasons
}
