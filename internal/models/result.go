package models

// SectorAnalysis is the sentiment tally for one sector, built from
// market-news stock mentions.
type SectorAnalysis struct {
	BullishCount    int       `json:"bullish_count"`
	BearishCount    int       `json:"bearish_count"`
	NeutralCount    int       `json:"neutral_count"`
	StocksMentioned []string  `json:"stocks_mentioned"`
	Sentiment       Sentiment `json:"sentiment"`
}

// AnalysisResult is the full response contract of one analysis run.
// All fields are plain value objects; monetary formatting is left to the
// presentation layer.
type AnalysisResult struct {
	Symbol          string           `json:"symbol"`
	CurrentPrice    float64          `json:"current_price"`
	MarketDirection MarketDirection  `json:"market_direction"`
	Sector          string           `json:"sector,omitempty"`
	SectorSentiment Sentiment        `json:"sector_sentiment,omitempty"`
	VolumeSignal    VolumeSignal     `json:"volume_signals"`
	News            NewsBundle       `json:"news_data"`
	BestTrade       Recommendation   `json:"best_trade"`
	BestTrades      BestTrades       `json:"best_trades"`
	ImbalanceTrades []TradeCandidate `json:"imbalance_trades"`
	AllTrades       []ChainTrade     `json:"all_trades"`
	Error           string           `json:"error,omitempty"`
}
