package analysis

import (
	"fmt"
	"sort"

	"optionscout/internal/models"
)

// RankInput carries everything the ranker joins: the three candidate pools
// (each sorted descending by score) and the directional signals used for
// alignment filtering.
type RankInput struct {
	ATM             []models.TradeCandidate
	OTM             []models.TradeCandidate
	Imbalance       []models.TradeCandidate
	Direction       models.MarketDirection
	News            models.OverallSentiment
	Sector          string
	SectorSentiment models.Sentiment
}

// RankOutput is the ranker's result: the per-pool bests and the single
// selected recommendation.
type RankOutput struct {
	BestTrades     models.BestTrades
	Recommendation models.Recommendation
}

// Rank pools candidates from all generators, prefers the highest-scored
// candidate aligned with market bias, news, and sector sentiment, and
// falls back to the overall best when nothing aligns. An empty pool
// produces the no-trade sentinel. Always terminates; never fails.
func Rank(in RankInput) RankOutput {
	best := models.BestTrades{
		BestOverall: topN(mergeSorted(in.ATM, in.OTM), 1),
		BestATM:     topN(in.ATM, 2),
		BestOTM:     topN(in.OTM, 2),
	}

	// Merge order defines tie-breaking: overall, atm, otm, imbalance.
	pool := make([]models.TradeCandidate, 0,
		len(best.BestOverall)+len(best.BestATM)+len(best.BestOTM)+2)
	pool = append(pool, best.BestOverall...)
	pool = append(pool, best.BestATM...)
	pool = append(pool, best.BestOTM...)
	pool = append(pool, topN(in.Imbalance, 2)...)

	sort.SliceStable(pool, func(i, j int) bool {
		return pool[i].Score > pool[j].Score
	})

	if len(pool) == 0 {
		return RankOutput{
			BestTrades:     best,
			Recommendation: models.NoTradeRecommendation(),
		}
	}

	selected := pool[0]
	for _, c := range pool {
		if aligned(c, in) {
			selected = c
			break
		}
	}

	trade := selected
	return RankOutput{
		BestTrades: best,
		Recommendation: models.Recommendation{
			Type:   trade.Type,
			Trade:  &trade,
			Text:   recommendationText(trade, in),
			Reason: trade.Reason,
		},
	}
}

// aligned reports whether a candidate's direction agrees with the market
// bias and is not contradicted by news or sector sentiment.
func aligned(c models.TradeCandidate, in RankInput) bool {
	switch c.Type {
	case models.OptionCall:
		return in.Direction.Bias == models.BiasBullish &&
			in.News.Sentiment != models.SentimentBearish &&
			in.SectorSentiment != models.SentimentBearish
	case models.OptionPut:
		return in.Direction.Bias == models.BiasBearish &&
			in.News.Sentiment != models.SentimentBullish &&
			in.SectorSentiment != models.SentimentBullish
	}
	return false
}

// recommendationText composes the human-readable recommendation citing
// market bias, sector sentiment, and news context. Plain decimal numbers;
// currency formatting is a presentation concern.
func recommendationText(trade models.TradeCandidate, in RankInput) string {
	sector := in.Sector
	if sector == "" {
		sector = "Others"
	}
	sectorSentiment := in.SectorSentiment
	if sectorSentiment == "" {
		sectorSentiment = models.SentimentNeutral
	}
	newsSummary := in.News.Summary
	if newsSummary == "" {
		newsSummary = models.NoNewsSentiment().Summary
	}

	return fmt.Sprintf(
		"BEST TRADE: %s at strike %.2f. Market: %s with %.0f%% confidence. Sector: %s sentiment is %s. News: %s",
		trade.Type, trade.Strike,
		in.Direction.Bias, in.Direction.Confidence,
		sector, sectorSentiment,
		newsSummary,
	)
}

// mergeSorted concatenates already-sorted pools and re-sorts stably so
// ties keep the concatenation order.
func mergeSorted(pools ...[]models.TradeCandidate) []models.TradeCandidate {
	var merged []models.TradeCandidate
	for _, p := range pools {
		merged = append(merged, p...)
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Score > merged[j].Score
	})
	return merged
}

func topN(candidates []models.TradeCandidate, n int) []models.TradeCandidate {
	if len(candidates) < n {
		n = len(candidates)
	}
	out := make([]models.TradeCandidate, n)
	copy(out, candidates[:n])
	return out
}
