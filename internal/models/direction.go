package models

// Bias represents the derived market direction.
type Bias string

const (
	BiasBullish Bias = "Bullish"
	BiasBearish Bias = "Bearish"
	BiasNeutral Bias = "Neutral"
)

// MarketDirection is the aggregate directional read of an option chain.
// It is computed fresh from a ChainSnapshot and has no independent lifecycle.
type MarketDirection struct {
	Bias            Bias    `json:"bias"`
	Confidence      float64 `json:"confidence"`
	TargetPrice     float64 `json:"target_price"`
	PutCallRatio    float64 `json:"pcr"`
	VolumeRatio     float64 `json:"volume_ratio"`
	MaxCallOIStrike float64 `json:"max_call_oi_strike"`
	MaxPutOIStrike  float64 `json:"max_put_oi_strike"`
	Reason          string  `json:"reason"`
}

// NeutralDirection returns the direction emitted when no strike data is
// available: Neutral bias, zero confidence, target at the current price.
func NeutralDirection(currentPrice float64) MarketDirection {
	return MarketDirection{
		Bias:        BiasNeutral,
		TargetPrice: currentPrice,
	}
}
