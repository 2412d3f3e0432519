package models

// VolumeData holds order-flow data for one symbol. For stocks the ratios
// come from total buy/sell quantities, for indices from the advance/decline
// breadth of the derivatives universe.
type VolumeData struct {
	Symbol          string  `json:"symbol"`
	InflowRatio     float64 `json:"inflow_ratio"`
	OutflowRatio    float64 `json:"outflow_ratio"`
	NetFlow         float64 `json:"net_flow"`
	Advances        int     `json:"advances,omitempty"`
	Declines        int     `json:"declines,omitempty"`
	Unchanged       int     `json:"unchanged,omitempty"`
	DeliveryPercent float64 `json:"delivery_percentage,omitempty"`
	// DeliveryKnown is set when delivery data was present in the source;
	// a genuine 0% delivery and absent data score differently.
	DeliveryKnown      bool    `json:"-"`
	PriceChange        float64 `json:"price_change,omitempty"`
	PriceChangePercent float64 `json:"price_change_percent,omitempty"`
}

// VolumeLabel classifies a volume score.
type VolumeLabel string

const (
	VolumeStrongBullish VolumeLabel = "Strong Bullish"
	VolumeBullish       VolumeLabel = "Bullish"
	VolumeNeutral       VolumeLabel = "Neutral"
	VolumeBearish       VolumeLabel = "Bearish"
	VolumeStrongBearish VolumeLabel = "Strong Bearish"
)

// VolumeSignal is the classified order-flow signal for one symbol.
type VolumeSignal struct {
	Score   float64     `json:"volume_score"`
	Label   VolumeLabel `json:"volume_signal"`
	Reasons []string    `json:"reasons"`
}

// NeutralVolumeSignal is the zero-score signal used when flow data is
// absent or the fetch failed.
func NeutralVolumeSignal() VolumeSignal {
	return VolumeSignal{Label: VolumeNeutral, Reasons: []string{}}
}
