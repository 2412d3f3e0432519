package sector

import (
	"reflect"
	"testing"

	"optionscout/internal/models"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		symbol string
		want   string
	}{
		{"RELIANCE", "Oil & Gas"},
		{"TCS", "IT"},
		{"HDFCBANK", "Banking"},
		{"SBIN", "Banking"},
		{"TATAMOTORS", "Auto"},
		{"SUNPHARMA", "Pharma"},
		{"UNKNOWNCO", "Others"},
		{"", "Others"},
		{"reliance", "Others"},
	}
	for _, tt := range tests {
		if got := Lookup(tt.symbol); got != tt.want {
			t.Errorf("Lookup(%q) = %q, want %q", tt.symbol, got, tt.want)
		}
	}
}

func item(s models.Sentiment) models.NewsItem {
	return models.NewsItem{Title: "headline", Sentiment: s}
}

func TestBuildAnalysis(t *testing.T) {
	mentions := map[string][]models.NewsItem{
		"TCS":  {item(models.SentimentBullish), item(models.SentimentBullish)},
		"INFY": {item(models.SentimentBearish)},
		"SBIN": {item(models.SentimentNeutral)},
	}
	order := []string{"TCS", "INFY", "SBIN"}

	analysis := BuildAnalysis(mentions, order)

	it := analysis["IT"]
	if it == nil {
		t.Fatal("missing IT sector")
	}
	if !reflect.DeepEqual(it.StocksMentioned, []string{"TCS", "INFY"}) {
		t.Errorf("IT stocks = %v", it.StocksMentioned)
	}
	if it.BullishCount != 2 || it.BearishCount != 1 || it.NeutralCount != 0 {
		t.Errorf("IT tallies = %d/%d/%d", it.BullishCount, it.BearishCount, it.NeutralCount)
	}
	if it.Sentiment != models.SentimentBullish {
		t.Errorf("IT sentiment = %s, want Bullish", it.Sentiment)
	}

	bank := analysis["Banking"]
	if bank == nil {
		t.Fatal("missing Banking sector")
	}
	if bank.NeutralCount != 1 || bank.Sentiment != models.SentimentNeutral {
		t.Errorf("Banking = %+v", bank)
	}
}

func TestBuildAnalysisUnmappedStock(t *testing.T) {
	mentions := map[string][]models.NewsItem{
		"NEWLISTCO": {item(models.SentimentBearish)},
	}
	analysis := BuildAnalysis(mentions, []string{"NEWLISTCO"})

	others := analysis["Others"]
	if others == nil {
		t.Fatal("unmapped stock not grouped under Others")
	}
	if others.Sentiment != models.SentimentBearish {
		t.Errorf("Others sentiment = %s, want Bearish", others.Sentiment)
	}
}

func TestBuildAnalysisSkipsStocksWithoutMentions(t *testing.T) {
	mentions := map[string][]models.NewsItem{
		"TCS": {item(models.SentimentBullish)},
	}
	// Order lists a stock the mention map never saw.
	analysis := BuildAnalysis(mentions, []string{"RELIANCE", "TCS"})
	if _, ok := analysis["Oil & Gas"]; ok {
		t.Error("sector created for a stock with no mentions")
	}
	if _, ok := analysis["IT"]; !ok {
		t.Error("mentioned stock sector missing")
	}
}

func TestBuildAnalysisDuplicateOrderEntries(t *testing.T) {
	mentions := map[string][]models.NewsItem{
		"MARUTI": {item(models.SentimentBullish)},
	}
	analysis := BuildAnalysis(mentions, []string{"MARUTI", "MARUTI"})

	auto := analysis["Auto"]
	if auto == nil {
		t.Fatal("missing Auto sector")
	}
	if !reflect.DeepEqual(auto.StocksMentioned, []string{"MARUTI"}) {
		t.Errorf("duplicate order entry duplicated stock list: %v", auto.StocksMentioned)
	}
	// Counts tally per pass, so the duplicate doubles the bullish count.
	if auto.BullishCount != 2 {
		t.Errorf("bullish count = %d, want 2", auto.BullishCount)
	}
}

func TestSentimentFor(t *testing.T) {
	analysis := map[string]*models.SectorAnalysis{
		"IT": {
			StocksMentioned: []string{"TCS"},
			BullishCount:    1,
			BearishCount:    3,
		},
	}

	if got := SentimentFor("TCS", analysis); got != models.SentimentBearish {
		t.Errorf("SentimentFor(TCS) = %s, want Bearish", got)
	}
	if got := SentimentFor("RELIANCE", analysis); got != models.SentimentNeutral {
		t.Errorf("SentimentFor(RELIANCE) = %s, want Neutral", got)
	}
	if got := SentimentFor("TCS", nil); got != models.SentimentNeutral {
		t.Errorf("SentimentFor with nil analysis = %s, want Neutral", got)
	}
}
