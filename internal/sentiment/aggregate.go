package sentiment

import (
	"fmt"
	"strings"

	"optionscout/internal/models"
)

// Recency weights for aggregation: newest item counts most. Only as many
// weights are used as there are items, and the divisor is the sum of the
// weights actually used.
var recencyWeights = []float64{1.0, 0.7, 0.4}

const maxAggregateItems = 3

// WeightedAggregator folds classified headlines into one overall
// sentiment using recency weighting.
type WeightedAggregator struct{}

func NewWeightedAggregator() *WeightedAggregator {
	return &WeightedAggregator{}
}

// Aggregate combines up to three items. Confidence reflects agreement:
// one distinct sentiment is High, two is Medium, three is Low.
func (a *WeightedAggregator) Aggregate(items []models.NewsItem) models.OverallSentiment {
	if len(items) == 0 {
		return models.NoNewsSentiment()
	}
	if len(items) > maxAggregateItems {
		items = items[:maxAggregateItems]
	}

	var weightedSum, weightTotal float64
	distinct := map[models.Sentiment]struct{}{}
	var factors []string
	seen := map[string]struct{}{}

	for i, item := range items {
		w := recencyWeights[i]
		weightedSum += item.SentimentScore * w
		weightTotal += w
		distinct[item.Sentiment] = struct{}{}
		for _, f := range item.ImpactFactors {
			if _, ok := seen[f]; ok {
				continue
			}
			seen[f] = struct{}{}
			factors = append(factors, f)
		}
	}

	score := weightedSum / weightTotal

	sentiment := models.SentimentNeutral
	switch {
	case score > bullishThreshold:
		sentiment = models.SentimentBullish
	case score < bearishThreshold:
		sentiment = models.SentimentBearish
	}

	confidence := models.ConfidenceLow
	switch len(distinct) {
	case 1:
		confidence = models.ConfidenceHigh
	case 2:
		confidence = models.ConfidenceMedium
	}

	summary := fmt.Sprintf("%s sentiment with %s confidence",
		sentiment, strings.ToLower(string(confidence)))
	if len(factors) > maxAggregateItems {
		factors = factors[:maxAggregateItems]
	}
	if len(factors) > 0 {
		summary += ". Key factors: " + strings.Join(factors, ", ")
	}

	return models.OverallSentiment{
		Sentiment:  sentiment,
		Score:      score,
		Confidence: confidence,
		Summary:    summary,
	}
}
