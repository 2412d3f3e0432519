package models

import "time"

// Sentiment classifies a news item or an aggregate.
type Sentiment string

const (
	SentimentBullish Sentiment = "Bullish"
	SentimentBearish Sentiment = "Bearish"
	SentimentNeutral Sentiment = "Neutral"
)

// SentimentConfidence expresses how consistent the classified items were.
type SentimentConfidence string

const (
	ConfidenceHigh   SentimentConfidence = "High"
	ConfidenceMedium SentimentConfidence = "Medium"
	ConfidenceLow    SentimentConfidence = "Low"
)

// NewsItem is one headline with its classified sentiment.
type NewsItem struct {
	Title          string    `json:"title"`
	Source         string    `json:"source"`
	Date           string    `json:"date"`
	URL            string    `json:"url,omitempty"`
	Sentiment      Sentiment `json:"sentiment"`
	SentimentScore float64   `json:"sentiment_score"`
	ImpactFactors  []string  `json:"impact_factors"`
}

// OverallSentiment is the weighted aggregate over recent news items.
type OverallSentiment struct {
	Sentiment  Sentiment           `json:"sentiment"`
	Score      float64             `json:"score"`
	Confidence SentimentConfidence `json:"confidence"`
	Summary    string              `json:"summary"`
}

// NoNewsSentiment is the sentinel aggregate when no news is available.
func NoNewsSentiment() OverallSentiment {
	return OverallSentiment{
		Sentiment:  SentimentNeutral,
		Confidence: ConfidenceLow,
		Summary:    "No recent news available",
	}
}

// NewsBundle groups stock-specific news, market-wide mentions of the
// symbol, and the combined aggregate sentiment.
type NewsBundle struct {
	StockNews      []NewsItem       `json:"stock_news"`
	MarketMentions []NewsItem       `json:"market_mentions"`
	Overall        OverallSentiment `json:"overall_sentiment"`
}

// MarketNews is the market-wide news feed with per-symbol mentions.
type MarketNews struct {
	Items         []NewsItem            `json:"news"`
	StockMentions map[string][]NewsItem `json:"stock_mentions"`
	LastUpdated   time.Time             `json:"last_updated"`
}
