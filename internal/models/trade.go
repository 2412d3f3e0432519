package models

// OptionType represents the leg of a trade candidate.
type OptionType string

const (
	OptionCall OptionType = "CALL"
	OptionPut  OptionType = "PUT"
	// OptionNone marks the sentinel recommendation when no candidate exists.
	OptionNone OptionType = "NONE"
	// OptionError marks the recommendation returned on a failed analysis.
	OptionError OptionType = "ERROR"
)

// TradeCandidate is a single tradeable opportunity produced by one of the
// candidate generators. Higher score is better. Immutable.
type TradeCandidate struct {
	Type       OptionType `json:"type"`
	Strike     float64    `json:"strike"`
	BuyPrice   float64    `json:"buy_price"`
	ExitTarget float64    `json:"exit"`
	StopLoss   float64    `json:"stop_loss"`
	OIChange   int64      `json:"oi_change"`
	Volume     int64      `json:"volume"`
	IV         float64    `json:"iv"`
	Score      float64    `json:"score"`
	Reason     string     `json:"reason"`
}

// BestTrades groups the top candidates per generator pool.
type BestTrades struct {
	BestOverall []TradeCandidate `json:"best_overall"`
	BestATM     []TradeCandidate `json:"best_atm"`
	BestOTM     []TradeCandidate `json:"best_otm"`
}

// Recommendation is the single selected trade plus its explanatory text.
// Trade is nil for the NONE and ERROR sentinels.
type Recommendation struct {
	Type   OptionType      `json:"type"`
	Trade  *TradeCandidate `json:"trade,omitempty"`
	Text   string          `json:"recommendation"`
	Reason string          `json:"reason,omitempty"`
}

// NoTradeRecommendation is the sentinel emitted when no candidate pool
// produced a high-potential trade.
func NoTradeRecommendation() Recommendation {
	return Recommendation{
		Type:   OptionNone,
		Text:   "No high-potential trades found",
		Reason: "Consider checking all available trades below",
	}
}

// ChainTrade is one entry of the loose "all trades" pool: any liquid
// contract near the money, regardless of candidate filters.
type ChainTrade struct {
	Type        OptionType `json:"type"`
	Strike      float64    `json:"strike"`
	BuyPrice    float64    `json:"buy_price"`
	LastPrice   float64    `json:"current_price"`
	ExitTarget  float64    `json:"exit"`
	StopLoss    float64    `json:"stop_loss"`
	OI          int64      `json:"oi"`
	OIChange    int64      `json:"oi_change"`
	Volume      int64      `json:"volume"`
	IV          float64    `json:"iv"`
	DistancePct float64    `json:"distance_pct"`
	SpreadPct   float64    `json:"spread_pct"`
}
