package analysis

import (
	"fmt"
	"math"
	"sort"

	"optionscout/internal/models"
)

// Candidate-generation windows and filters.
const (
	atmWindow       = 0.02
	otmWindowNear   = 0.02
	otmWindowFar    = 0.10
	imbalanceWindow = 0.07

	atmMinVolume       int64 = 1000
	otmMinVolume       int64 = 500
	imbalanceMinVolume int64 = 500

	atmMaxSpreadPct       = 0.05
	otmMaxSpreadPct       = 0.08
	imbalanceMaxSpreadPct = 0.05
)

// volumeBiasFactor boosts calls when the external volume score is positive
// and puts when it is negative.
func volumeBiasFactor(volumeScore float64, optType models.OptionType) float64 {
	switch optType {
	case models.OptionCall:
		if volumeScore > 0 {
			return 1 + volumeScore/20
		}
	case models.OptionPut:
		if volumeScore < 0 {
			return 1 + math.Abs(volumeScore)/20
		}
	}
	return 1
}

// volumeReason appends the external volume signal to a candidate reason.
func volumeReason(vol *models.VolumeSignal) string {
	if vol == nil || vol.Label == "" {
		return ""
	}
	return fmt.Sprintf(" Volume signal: %s", vol.Label)
}

// ATMCandidates generates call and put candidates from strikes within ±2%
// of the current price. Requires positive OI buildup, volume above 1000,
// and a spread under 5% of last price. The score is adjusted for
// moneyness, volume-to-OI ratio, and the external volume bias.
func ATMCandidates(snap models.ChainSnapshot, currentPrice float64, vol *models.VolumeSignal) []models.TradeCandidate {
	if currentPrice <= 0 {
		return nil
	}

	var volumeScore float64
	if vol != nil {
		volumeScore = vol.Score
	}

	var out []models.TradeCandidate
	for _, row := range snap.Strikes {
		priceDiffPct := (row.Strike - currentPrice) / currentPrice
		if math.Abs(priceDiffPct) > atmWindow {
			continue
		}

		// CALL side
		if row.CallOIChange > 0 && row.CallVolume > atmMinVolume {
			if spreadPct, ok := row.CallSpreadPct(); ok && spreadPct < atmMaxSpreadPct {
				// A strike below spot is in-the-money for a call.
				moneyness := 0.9
				if priceDiffPct < 0 {
					moneyness = 1.2
				}
				var volOIRatio float64
				if row.CallOI > 0 {
					volOIRatio = float64(row.CallVolume) / float64(row.CallOI)
				}
				score := Score(float64(row.CallOIChange), float64(row.CallVolume), spreadPct, row.CallIV) *
					moneyness *
					(1 + minFloat(volOIRatio*0.1, 0.5)) *
					volumeBiasFactor(volumeScore, models.OptionCall)

				out = append(out, models.TradeCandidate{
					Type:       models.OptionCall,
					Strike:     row.Strike,
					BuyPrice:   row.CallAsk,
					ExitTarget: row.CallAsk * 1.5,
					StopLoss:   row.CallBid * 0.7,
					OIChange:   row.CallOIChange,
					Volume:     row.CallVolume,
					IV:         row.CallIV,
					Score:      score,
					Reason:     "ATM CALL with strong OI buildup and volume." + volumeReason(vol),
				})
			}
		}

		// PUT side
		if row.PutOIChange > 0 && row.PutVolume > atmMinVolume {
			if spreadPct, ok := row.PutSpreadPct(); ok && spreadPct < atmMaxSpreadPct {
				// A strike above spot is in-the-money for a put.
				moneyness := 0.9
				if priceDiffPct > 0 {
					moneyness = 1.2
				}
				var volOIRatio float64
				if row.PutOI > 0 {
					volOIRatio = float64(row.PutVolume) / float64(row.PutOI)
				}
				score := Score(float64(row.PutOIChange), float64(row.PutVolume), spreadPct, row.PutIV) *
					moneyness *
					(1 + minFloat(volOIRatio*0.1, 0.5)) *
					volumeBiasFactor(volumeScore, models.OptionPut)

				out = append(out, models.TradeCandidate{
					Type:       models.OptionPut,
					Strike:     row.Strike,
					BuyPrice:   row.PutAsk,
					ExitTarget: row.PutAsk * 1.5,
					StopLoss:   row.PutBid * 0.7,
					OIChange:   row.PutOIChange,
					Volume:     row.PutVolume,
					IV:         row.PutIV,
					Score:      score,
					Reason:     "ATM PUT with strong OI buildup and volume." + volumeReason(vol),
				})
			}
		}
	}

	sortByScore(out)
	return out
}

// OTMCandidates generates momentum candidates from strikes 2-10% away from
// the current price in the direction matching the option type: above spot
// for calls, below for puts. Uses a tighter 0.6x bid stop-loss and a 2x
// ask exit, with a risk-reward multiplier on the score.
func OTMCandidates(snap models.ChainSnapshot, currentPrice float64, vol *models.VolumeSignal) []models.TradeCandidate {
	if currentPrice <= 0 {
		return nil
	}

	var volumeScore float64
	if vol != nil {
		volumeScore = vol.Score
	}

	var out []models.TradeCandidate
	for _, row := range snap.Strikes {
		priceDiffPct := (row.Strike - currentPrice) / currentPrice
		dist := math.Abs(priceDiffPct)
		if dist <= otmWindowNear || dist > otmWindowFar {
			continue
		}

		if priceDiffPct > 0 {
			// OTM CALL
			if row.CallOIChange > 0 && row.CallVolume > otmMinVolume {
				if spreadPct, ok := row.CallSpreadPct(); ok && spreadPct < otmMaxSpreadPct {
					riskReward := riskRewardRatio(row.CallAsk, row.CallBid)
					score := Score(float64(row.CallOIChange), float64(row.CallVolume), spreadPct, row.CallIV) *
						minFloat(riskReward*0.2, 1.5) *
						volumeBiasFactor(volumeScore, models.OptionCall)

					out = append(out, models.TradeCandidate{
						Type:       models.OptionCall,
						Strike:     row.Strike,
						BuyPrice:   row.CallAsk,
						ExitTarget: row.CallAsk * 2,
						StopLoss:   row.CallBid * 0.6,
						OIChange:   row.CallOIChange,
						Volume:     row.CallVolume,
						IV:         row.CallIV,
						Score:      score,
						Reason:     fmt.Sprintf("OTM CALL with potential momentum, Risk:Reward = 1:%.1f.%s", riskReward, volumeReason(vol)),
					})
				}
			}
		} else {
			// OTM PUT
			if row.PutOIChange > 0 && row.PutVolume > otmMinVolume {
				if spreadPct, ok := row.PutSpreadPct(); ok && spreadPct < otmMaxSpreadPct {
					riskReward := riskRewardRatio(row.PutAsk, row.PutBid)
					score := Score(float64(row.PutOIChange), float64(row.PutVolume), spreadPct, row.PutIV) *
						minFloat(riskReward*0.2, 1.5) *
						volumeBiasFactor(volumeScore, models.OptionPut)

					out = append(out, models.TradeCandidate{
						Type:       models.OptionPut,
						Strike:     row.Strike,
						BuyPrice:   row.PutAsk,
						ExitTarget: row.PutAsk * 2,
						StopLoss:   row.PutBid * 0.6,
						OIChange:   row.PutOIChange,
						Volume:     row.PutVolume,
						IV:         row.PutIV,
						Score:      score,
						Reason:     fmt.Sprintf("OTM PUT with potential momentum, Risk:Reward = 1:%.1f.%s", riskReward, volumeReason(vol)),
					})
				}
			}
		}
	}

	sortByScore(out)
	return out
}

// riskRewardRatio computes reward (exit at 2x ask minus entry) over risk
// (entry minus the 0.6x bid stop).
func riskRewardRatio(ask, bid float64) float64 {
	risk := ask - bid*0.6
	reward := ask*2 - ask
	if risk <= 0 {
		return 0
	}
	return reward / risk
}

// ImbalanceCandidates finds strikes where one leg is priced far out of line
// with the other. A call/put last-price ratio above 1.5 marks calls as
// relatively expensive (PUT candidate); below 0.67 marks puts as expensive
// (CALL candidate). Both legs must be liquid with tight spreads.
func ImbalanceCandidates(snap models.ChainSnapshot, currentPrice float64) []models.TradeCandidate {
	if currentPrice <= 0 {
		return nil
	}

	var out []models.TradeCandidate
	for _, row := range snap.Strikes {
		if row.CallLTP <= 0 || row.PutLTP <= 0 {
			continue
		}
		if math.Abs(row.Strike-currentPrice)/currentPrice > imbalanceWindow {
			continue
		}
		if row.CallVolume < imbalanceMinVolume || row.PutVolume < imbalanceMinVolume {
			continue
		}
		callSpread, _ := row.CallSpreadPct()
		putSpread, _ := row.PutSpreadPct()
		if callSpread > imbalanceMaxSpreadPct || putSpread > imbalanceMaxSpreadPct {
			continue
		}

		ratio := row.CallLTP / row.PutLTP
		switch {
		case ratio > 1.5:
			out = append(out, models.TradeCandidate{
				Type:       models.OptionPut,
				Strike:     row.Strike,
				BuyPrice:   row.PutAsk,
				ExitTarget: row.PutAsk * 1.5,
				StopLoss:   row.PutBid * 0.7,
				OIChange:   row.PutOIChange,
				Volume:     row.PutVolume,
				IV:         row.PutIV,
				Score:      minFloat((ratio-1.5)*10, 10),
				Reason:     fmt.Sprintf("Calls expensive relative to puts (ratio: %.2f)", ratio),
			})
		case ratio < 0.67:
			out = append(out, models.TradeCandidate{
				Type:       models.OptionCall,
				Strike:     row.Strike,
				BuyPrice:   row.CallAsk,
				ExitTarget: row.CallAsk * 1.5,
				StopLoss:   row.CallBid * 0.7,
				OIChange:   row.CallOIChange,
				Volume:     row.CallVolume,
				IV:         row.CallIV,
				Score:      minFloat((0.67/ratio-1)*10, 10),
				Reason:     fmt.Sprintf("Puts expensive relative to calls (ratio: %.2f)", ratio),
			})
		}
	}

	sortByScore(out)
	return out
}

// sortByScore sorts candidates by descending score, preserving input order
// on ties.
func sortByScore(candidates []models.TradeCandidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})
}
