package sentiment

import (
	"math"
	"reflect"
	"strings"
	"testing"

	"optionscout/internal/models"
)

func newsItem(s models.Sentiment, score float64, impacts ...string) models.NewsItem {
	return models.NewsItem{
		Title:          "headline",
		Sentiment:      s,
		SentimentScore: score,
		ImpactFactors:  impacts,
	}
}

func TestAggregateEmpty(t *testing.T) {
	got := NewWeightedAggregator().Aggregate(nil)

	if got.Sentiment != models.SentimentNeutral {
		t.Errorf("sentiment = %v, want Neutral", got.Sentiment)
	}
	if got.Confidence != models.ConfidenceLow {
		t.Errorf("confidence = %v, want Low", got.Confidence)
	}
	if got.Summary != "No recent news available" {
		t.Errorf("summary = %q", got.Summary)
	}
}

func TestAggregateSingleItem(t *testing.T) {
	got := NewWeightedAggregator().Aggregate([]models.NewsItem{
		newsItem(models.SentimentBullish, 0.8),
	})

	if math.Abs(got.Score-0.8) > 1e-9 {
		t.Errorf("score = %v, want 0.8 with full weight", got.Score)
	}
	if got.Sentiment != models.SentimentBullish {
		t.Errorf("sentiment = %v, want Bullish", got.Sentiment)
	}
	// One distinct sentiment means full agreement.
	if got.Confidence != models.ConfidenceHigh {
		t.Errorf("confidence = %v, want High", got.Confidence)
	}
}

func TestAggregateRecencyWeighting(t *testing.T) {
	got := NewWeightedAggregator().Aggregate([]models.NewsItem{
		newsItem(models.SentimentBullish, 0.6),
		newsItem(models.SentimentBullish, 0.5),
		newsItem(models.SentimentBearish, -0.4),
	})

	want := (0.6*1.0 + 0.5*0.7 + -0.4*0.4) / (1.0 + 0.7 + 0.4)
	if math.Abs(got.Score-want) > 1e-9 {
		t.Errorf("score = %v, want %v", got.Score, want)
	}
	if got.Sentiment != models.SentimentBullish {
		t.Errorf("sentiment = %v, want Bullish", got.Sentiment)
	}
	// Two distinct sentiments across the items.
	if got.Confidence != models.ConfidenceMedium {
		t.Errorf("confidence = %v, want Medium", got.Confidence)
	}
	if !strings.HasPrefix(got.Summary, "Bullish sentiment with medium confidence") {
		t.Errorf("summary = %q", got.Summary)
	}
}

func TestAggregateThreeDistinctSentiments(t *testing.T) {
	got := NewWeightedAggregator().Aggregate([]models.NewsItem{
		newsItem(models.SentimentBullish, 0.9),
		newsItem(models.SentimentBearish, -0.9),
		newsItem(models.SentimentNeutral, 0),
	})
	if got.Confidence != models.ConfidenceLow {
		t.Errorf("confidence = %v, want Low for full disagreement", got.Confidence)
	}
}

func TestAggregateTruncatesToThreeItems(t *testing.T) {
	items := []models.NewsItem{
		newsItem(models.SentimentNeutral, 0),
		newsItem(models.SentimentNeutral, 0),
		newsItem(models.SentimentNeutral, 0),
		newsItem(models.SentimentBearish, -1),
	}
	got := NewWeightedAggregator().Aggregate(items)
	if got.Score != 0 {
		t.Errorf("score = %v, want 0; fourth item must not contribute", got.Score)
	}
}

func TestAggregateImpactFactorDedupe(t *testing.T) {
	got := NewWeightedAggregator().Aggregate([]models.NewsItem{
		newsItem(models.SentimentBullish, 0.6, "Earnings/Results", "M&A Activity"),
		newsItem(models.SentimentBullish, 0.6, "M&A Activity"),
		newsItem(models.SentimentBullish, 0.6, "Corporate Action"),
	})

	wantFactors := "Earnings/Results, M&A Activity, Corporate Action"
	if !strings.HasSuffix(got.Summary, "Key factors: "+wantFactors) {
		t.Errorf("summary = %q, want factors %q in first-seen order", got.Summary, wantFactors)
	}
}

func TestAggregateDeterministic(t *testing.T) {
	items := []models.NewsItem{
		newsItem(models.SentimentBullish, 0.6, "Earnings/Results"),
		newsItem(models.SentimentBearish, -0.2, "Corporate Action", "Earnings/Results"),
	}
	first := NewWeightedAggregator().Aggregate(items)
	second := NewWeightedAggregator().Aggregate(items)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("aggregate differs between identical runs:\n%+v\n%+v", first, second)
	}
}
