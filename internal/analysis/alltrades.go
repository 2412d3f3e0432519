package analysis

import (
	"math"
	"sort"

	"optionscout/internal/models"
)

// Loose-pool filters: anything liquid within 10% of spot with a spread
// under 10% of last price.
const (
	allTradesWindow    = 0.10
	allTradesMaxSpread = 0.10
)

// AllTrades builds the unfiltered pool of tradeable contracts around the
// current price, both legs, sorted by absolute distance from spot. It
// applies only liquidity filters, not the candidate-generator rules.
func AllTrades(snap models.ChainSnapshot, currentPrice float64) []models.ChainTrade {
	if currentPrice <= 0 {
		return nil
	}

	var out []models.ChainTrade
	for _, row := range snap.Strikes {
		priceDiffPct := (row.Strike - currentPrice) / currentPrice
		if math.Abs(priceDiffPct) > allTradesWindow {
			continue
		}

		if row.CallVolume > 0 && row.CallOI > 0 && row.CallLTP > 0 {
			if spreadPct, ok := row.CallSpreadPct(); ok && spreadPct < allTradesMaxSpread {
				out = append(out, models.ChainTrade{
					Type:        models.OptionCall,
					Strike:      row.Strike,
					BuyPrice:    row.CallAsk,
					LastPrice:   row.CallLTP,
					ExitTarget:  row.CallAsk * 1.5,
					StopLoss:    row.CallBid * 0.7,
					OI:          row.CallOI,
					OIChange:    row.CallOIChange,
					Volume:      row.CallVolume,
					IV:          row.CallIV,
					DistancePct: priceDiffPct * 100,
					SpreadPct:   spreadPct * 100,
				})
			}
		}

		if row.PutVolume > 0 && row.PutOI > 0 && row.PutLTP > 0 {
			if spreadPct, ok := row.PutSpreadPct(); ok && spreadPct < allTradesMaxSpread {
				out = append(out, models.ChainTrade{
					Type:        models.OptionPut,
					Strike:      row.Strike,
					BuyPrice:    row.PutAsk,
					LastPrice:   row.PutLTP,
					ExitTarget:  row.PutAsk * 1.5,
					StopLoss:    row.PutBid * 0.7,
					OI:          row.PutOI,
					OIChange:    row.PutOIChange,
					Volume:      row.PutVolume,
					IV:          row.PutIV,
					DistancePct: priceDiffPct * 100,
					SpreadPct:   spreadPct * 100,
				})
			}
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return math.Abs(out[i].DistancePct) < math.Abs(out[j].DistancePct)
	})
	return out
}
