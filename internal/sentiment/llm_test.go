package sentiment

import (
	"testing"

	"optionscout/internal/models"
)

func TestParseClassification(t *testing.T) {
	tests := []struct {
		name          string
		response      string
		wantSentiment models.Sentiment
		wantScore     float64
		wantOK        bool
	}{
		{
			name:          "well formed",
			response:      "SENTIMENT: Bullish\nSCORE: 0.7",
			wantSentiment: models.SentimentBullish,
			wantScore:     0.7,
			wantOK:        true,
		},
		{
			name:          "whitespace and extra lines",
			response:      "Here is my analysis:\n  SENTIMENT: Bearish  \n  SCORE: -0.4\n",
			wantSentiment: models.SentimentBearish,
			wantScore:     -0.4,
			wantOK:        true,
		},
		{
			name:          "score clamped",
			response:      "SENTIMENT: Bullish\nSCORE: 3.5",
			wantSentiment: models.SentimentBullish,
			wantScore:     1,
			wantOK:        true,
		},
		{
			name:     "missing score",
			response: "SENTIMENT: Neutral",
			wantOK:   false,
		},
		{
			name:     "unknown sentiment value",
			response: "SENTIMENT: Sideways\nSCORE: 0.1",
			wantOK:   false,
		},
		{
			name:     "empty response",
			response: "",
			wantOK:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sentiment, score, ok := parseClassification(tt.response)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if sentiment != tt.wantSentiment {
				t.Errorf("sentiment = %v, want %v", sentiment, tt.wantSentiment)
			}
			if score != tt.wantScore {
				t.Errorf("score = %v, want %v", score, tt.wantScore)
			}
		})
	}
}
