// Package analysis implements the option-chain trade-scoring engine:
// market direction, candidate generation, scoring, and ranking.
package analysis

import (
	"strings"

	"optionscout/internal/models"
)

// Near-the-money window used for directional aggregation.
const directionWindow = 0.05

// AnalyzeDirection derives the market bias from open interest and volume of
// strikes within ±5% of the current price. It never fails: an empty
// snapshot yields a Neutral zero-confidence direction targeting the
// current price.
func AnalyzeDirection(snap models.ChainSnapshot, currentPrice float64) models.MarketDirection {
	if snap.Empty() || currentPrice <= 0 {
		return models.NeutralDirection(currentPrice)
	}

	var callOISum, putOISum, callVolSum, putVolSum int64
	var maxCallOI, maxPutOI int64
	var maxCallOIStrike, maxPutOIStrike float64

	for _, row := range snap.Strikes {
		if abs(row.Strike-currentPrice)/currentPrice > directionWindow {
			continue
		}
		callOISum += row.CallOI
		putOISum += row.PutOI
		callVolSum += row.CallVolume
		putVolSum += row.PutVolume

		if row.CallOI > maxCallOI {
			maxCallOI = row.CallOI
			maxCallOIStrike = row.Strike
		}
		if row.PutOI > maxPutOI {
			maxPutOI = row.PutOI
			maxPutOIStrike = row.Strike
		}
	}

	var pcr, volumeRatio float64
	if callOISum > 0 {
		pcr = float64(putOISum) / float64(callOISum)
	}
	if callVolSum > 0 {
		volumeRatio = float64(putVolSum) / float64(callVolSum)
	}

	bias := models.BiasNeutral
	confidence := 0.0
	var reasons []string

	// Extreme PCR readings are treated as contrarian reversal signals.
	if pcr > 1.5 {
		bias = models.BiasBullish
		confidence += 30
		reasons = append(reasons, "High Put-Call Ratio indicates potential reversal")
	} else if pcr < 0.7 {
		bias = models.BiasBearish
		confidence += 30
		reasons = append(reasons, "Low Put-Call Ratio indicates potential reversal")
	}

	if volumeRatio > 1.2 {
		if bias == models.BiasBearish {
			confidence += 20
		}
		reasons = append(reasons, "Higher Put volume indicates bearish sentiment")
	} else if volumeRatio < 0.8 {
		if bias == models.BiasBullish {
			confidence += 20
		}
		reasons = append(reasons, "Higher Call volume indicates bullish sentiment")
	}

	targetPrice := currentPrice
	switch bias {
	case models.BiasBullish:
		targetPrice = maxFloat(maxCallOIStrike, currentPrice*1.01)
	case models.BiasBearish:
		targetPrice = minFloat(maxPutOIStrike, currentPrice*0.99)
	}

	return models.MarketDirection{
		Bias:            bias,
		Confidence:      clamp(confidence, 0, 100),
		TargetPrice:     targetPrice,
		PutCallRatio:    pcr,
		VolumeRatio:     volumeRatio,
		MaxCallOIStrike: maxCallOIStrike,
		MaxPutOIStrike:  maxPutOIStrike,
		Reason:          strings.Join(reasons, ". "),
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

// clamp restricts a value to the given range.
func clamp(value, minVal, maxVal float64) float64 {
	if value < minVal {
		return minVal
	}
	if value > maxVal {
		return maxVal
	}
	return value
}
