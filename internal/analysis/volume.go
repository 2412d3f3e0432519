package analysis

import (
	"fmt"

	"optionscout/internal/models"
)

// AnalyzeVolume classifies order-flow data into a directional volume
// signal. The flow score is (inflow - outflow) scaled to roughly -20..+20
// in theory, -13..+13 in practice once delivery bonuses are added. A nil
// input (failed or absent fetch) yields the zero-score Neutral signal.
func AnalyzeVolume(data *models.VolumeData) models.VolumeSignal {
	if data == nil {
		return models.NeutralVolumeSignal()
	}

	signal := models.VolumeSignal{Reasons: []string{}}
	score := (data.InflowRatio - data.OutflowRatio) * 20

	switch {
	case score > 3:
		signal.Label = models.VolumeStrongBullish
		signal.Reasons = append(signal.Reasons,
			fmt.Sprintf("Strong buying pressure with %.1f%% inflow ratio", data.InflowRatio*100))
	case score > 1:
		signal.Label = models.VolumeBullish
		signal.Reasons = append(signal.Reasons,
			fmt.Sprintf("Moderate buying with %.1f%% inflow ratio", data.InflowRatio*100))
	case score < -3:
		signal.Label = models.VolumeStrongBearish
		signal.Reasons = append(signal.Reasons,
			fmt.Sprintf("Strong selling pressure with %.1f%% outflow ratio", data.OutflowRatio*100))
	case score < -1:
		signal.Label = models.VolumeBearish
		signal.Reasons = append(signal.Reasons,
			fmt.Sprintf("Moderate selling with %.1f%% outflow ratio", data.OutflowRatio*100))
	default:
		signal.Label = models.VolumeNeutral
		signal.Reasons = append(signal.Reasons, "Balanced buying and selling pressure")
	}

	// Delivery percentage adjusts the score after classification: the
	// label reflects flow alone, conviction shows up in the number.
	if data.DeliveryKnown {
		switch {
		case data.DeliveryPercent > 60:
			score += 3
			signal.Reasons = append(signal.Reasons,
				fmt.Sprintf("High delivery percentage (%.1f%%) indicates strong conviction", data.DeliveryPercent))
		case data.DeliveryPercent > 40:
			score += 1
			signal.Reasons = append(signal.Reasons,
				fmt.Sprintf("Good delivery percentage (%.1f%%) shows investor interest", data.DeliveryPercent))
		}
	}

	signal.Score = score
	return signal
}
