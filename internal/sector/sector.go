// Package sector maps NSE symbols to sectors and tallies sector-level
// sentiment from market-news stock mentions.
package sector

import (
	"optionscout/internal/models"
)

// DefaultSector is returned for any symbol not in the mapping.
const DefaultSector = "Others"

// Static mapping for large-cap F&O names. Anything unmapped falls into
// Others rather than failing the lookup.
var sectorMapping = map[string]string{
	"RELIANCE":   "Oil & Gas",
	"TCS":        "IT",
	"INFY":       "IT",
	"HDFCBANK":   "Banking",
	"ICICIBANK":  "Banking",
	"HDFC":       "Banking",
	"KOTAKBANK":  "Banking",
	"LT":         "Infrastructure",
	"AXISBANK":   "Banking",
	"SBIN":       "Banking",
	"BHARTIARTL": "Telecom",
	"ITC":        "FMCG",
	"HCLTECH":    "IT",
	"TITAN":      "Consumer Goods",
	"BAJFINANCE": "Financial Services",
	"ASIANPAINT": "Chemicals",
	"MARUTI":     "Auto",
	"SUNPHARMA":  "Pharma",
	"TATAMOTORS": "Auto",
}

// Lookup returns the sector for a symbol, DefaultSector when unmapped.
func Lookup(symbol string) string {
	if s, ok := sectorMapping[symbol]; ok {
		return s
	}
	return DefaultSector
}

// BuildAnalysis groups per-stock news mentions by sector and tallies
// sentiment counts. Mentioned-stock order follows first mention so the
// output is deterministic for the same input order.
func BuildAnalysis(stockMentions map[string][]models.NewsItem, order []string) map[string]*models.SectorAnalysis {
	analysis := make(map[string]*models.SectorAnalysis)

	for _, stock := range order {
		mentions, ok := stockMentions[stock]
		if !ok {
			continue
		}
		name := Lookup(stock)
		sa := analysis[name]
		if sa == nil {
			sa = &models.SectorAnalysis{}
			analysis[name] = sa
		}
		if !contains(sa.StocksMentioned, stock) {
			sa.StocksMentioned = append(sa.StocksMentioned, stock)
		}
		for _, m := range mentions {
			switch m.Sentiment {
			case models.SentimentBullish:
				sa.BullishCount++
			case models.SentimentBearish:
				sa.BearishCount++
			default:
				sa.NeutralCount++
			}
		}
	}

	for _, sa := range analysis {
		sa.Sentiment = tallySentiment(sa.BullishCount, sa.BearishCount)
	}
	return analysis
}

// SentimentFor finds the sector sentiment applying to a symbol: the
// tally of whichever sector analysis mentions it, Neutral when none does.
func SentimentFor(symbol string, analysis map[string]*models.SectorAnalysis) models.Sentiment {
	for _, sa := range analysis {
		if contains(sa.StocksMentioned, symbol) {
			return tallySentiment(sa.BullishCount, sa.BearishCount)
		}
	}
	return models.SentimentNeutral
}

func tallySentiment(bullish, bearish int) models.Sentiment {
	switch {
	case bullish > bearish:
		return models.SentimentBullish
	case bearish > bullish:
		return models.SentimentBearish
	}
	return models.SentimentNeutral
}

func contains(list []string, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}
