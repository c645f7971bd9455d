// Package signal standardizes the payloads shared between the strategy engine
// and downstream delivery layers.
package signal

import (
	"time"

	"github.com/predeshen/telegramscalperbot-sub002/internal/candle"
	"github.com/predeshen/telegramscalperbot-sub002/internal/structure"
)

// Type is the traded direction of a signal.
type Type string

const (
	// Long buys the instrument.
	Long Type = "LONG"
	// Short sells the instrument.
	Short Type = "SHORT"
)

// Gap is the fair value gap descriptor consumed from the gap detector:
// a price discontinuity with a direction and magnitude.
type Gap struct {
	Type    structure.Direction `json:"gap_type"`
	Low     float64             `json:"gap_low"`
	High    float64             `json:"gap_high"`
	Percent float64             `json:"gap_percent"`
}

// Metadata carries the strategy-specific annotations bundled with a signal.
// FVG and StructureBreak are nil when the corresponding trigger did not fire.
type Metadata struct {
	HoldType         string           `json:"hold_type"`
	HoldDays         int              `json:"hold_days"`
	HoldReasoning    string           `json:"hold_reasoning"`
	FVG              *Gap             `json:"fvg"`
	StructureBreak   *structure.Break `json:"structure_break"`
	TrailAfterProfit float64          `json:"trail_after_profit"`
}

// Signal is the immutable trade recommendation produced by one evaluation
// cycle. It is created once and never mutated; ownership passes to whichever
// consumer receives it.
type Signal struct {
	Timestamp  time.Time         `json:"timestamp"`
	Type       Type              `json:"signal_type"`
	Timeframe  string            `json:"timeframe"`
	Symbol     string            `json:"symbol"`
	Entry      float64           `json:"entry_price"`
	StopLoss   float64           `json:"stop_loss"`
	TakeProfit float64           `json:"take_profit"`
	ATR        float64           `json:"atr"`
	RiskReward float64           `json:"risk_reward"`
	MarketBias structure.Trend   `json:"market_bias"`
	Confidence int               `json:"confidence"`
	Indicators candle.Indicators `json:"indicators"`
	Reasoning  []string          `json:"reasoning"`
	Strategy   string            `json:"strategy"`
	Metadata   Metadata          `json:"strategy_metadata"`
}
