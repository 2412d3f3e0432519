package analysis

import (
	"math"
	"testing"

	"optionscout/internal/models"
)

func TestAnalyzeVolumeNilData(t *testing.T) {
	got := AnalyzeVolume(nil)

	if got.Score != 0 {
		t.Errorf("score = %v, want 0", got.Score)
	}
	if got.Label != models.VolumeNeutral {
		t.Errorf("label = %v, want Neutral", got.Label)
	}
	if got.Reasons == nil || len(got.Reasons) != 0 {
		t.Errorf("reasons = %v, want empty non-nil slice", got.Reasons)
	}
}

func TestAnalyzeVolume(t *testing.T) {
	tests := []struct {
		name      string
		data      models.VolumeData
		wantScore float64
		wantLabel models.VolumeLabel
		wantFirst string
	}{
		{
			name:      "strong buying",
			data:      models.VolumeData{InflowRatio: 0.7, OutflowRatio: 0.3},
			wantScore: 8,
			wantLabel: models.VolumeStrongBullish,
			wantFirst: "Strong buying pressure with 70.0% inflow ratio",
		},
		{
			name:      "moderate buying",
			data:      models.VolumeData{InflowRatio: 0.55, OutflowRatio: 0.45},
			wantScore: 2,
			wantLabel: models.VolumeBullish,
			wantFirst: "Moderate buying with 55.0% inflow ratio",
		},
		{
			name:      "balanced",
			data:      models.VolumeData{InflowRatio: 0.5, OutflowRatio: 0.5},
			wantScore: 0,
			wantLabel: models.VolumeNeutral,
			wantFirst: "Balanced buying and selling pressure",
		},
		{
			name:      "moderate selling",
			data:      models.VolumeData{InflowRatio: 0.45, OutflowRatio: 0.55},
			wantScore: -2,
			wantLabel: models.VolumeBearish,
			wantFirst: "Moderate selling with 55.0% outflow ratio",
		},
		{
			name:      "strong selling",
			data:      models.VolumeData{InflowRatio: 0.2, OutflowRatio: 0.8},
			wantScore: -12,
			wantLabel: models.VolumeStrongBearish,
			wantFirst: "Strong selling pressure with 80.0% outflow ratio",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AnalyzeVolume(&tt.data)
			if math.Abs(got.Score-tt.wantScore) > 1e-9 {
				t.Errorf("score = %v, want %v", got.Score, tt.wantScore)
			}
			if got.Label != tt.wantLabel {
				t.Errorf("label = %v, want %v", got.Label, tt.wantLabel)
			}
			if len(got.Reasons) == 0 || got.Reasons[0] != tt.wantFirst {
				t.Errorf("reasons = %v, want first %q", got.Reasons, tt.wantFirst)
			}
		})
	}
}

func TestAnalyzeVolumeDeliveryBonus(t *testing.T) {
	// Delivery adjusts the score after classification; the label still
	// reflects flow alone.
	got := AnalyzeVolume(&models.VolumeData{
		InflowRatio:     0.55,
		OutflowRatio:    0.45,
		DeliveryPercent: 65,
		DeliveryKnown:   true,
	})

	if math.Abs(got.Score-5) > 1e-9 {
		t.Errorf("score = %v, want 2 + 3 delivery bonus", got.Score)
	}
	if got.Label != models.VolumeBullish {
		t.Errorf("label = %v, want Bullish from flow alone", got.Label)
	}
	if len(got.Reasons) != 2 {
		t.Fatalf("reasons = %v, want flow reason plus delivery reason", got.Reasons)
	}
	if got.Reasons[1] != "High delivery percentage (65.0%) indicates strong conviction" {
		t.Errorf("delivery reason = %q", got.Reasons[1])
	}
}

func TestAnalyzeVolumeDeliveryUnknown(t *testing.T) {
	// A 65% delivery figure without the known flag adds nothing.
	got := AnalyzeVolume(&models.VolumeData{
		InflowRatio:     0.55,
		OutflowRatio:    0.45,
		DeliveryPercent: 65,
	})
	if math.Abs(got.Score-2) > 1e-9 {
		t.Errorf("score = %v, want 2 without delivery flag", got.Score)
	}
}

func TestAnalyzeVolumeModerateDelivery(t *testing.T) {
	got := AnalyzeVolume(&models.VolumeData{
		InflowRatio:     0.5,
		OutflowRatio:    0.5,
		DeliveryPercent: 45,
		DeliveryKnown:   true,
	})
	if math.Abs(got.Score-1) > 1e-9 {
		t.Errorf("score = %v, want 1", got.Score)
	}
	if got.Label != models.VolumeNeutral {
		t.Errorf("label = %v, want Neutral", got.Label)
	}
	if got.Reasons[1] != "Good delivery percentage (45.0%) shows investor interest" {
		t.Errorf("delivery reason = %q", got.Reasons[1])
	}
}
