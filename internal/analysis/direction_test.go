package analysis

import (
	"math"
	"strings"
	"testing"
	"time"

	"optionscout/internal/models"
)

func snapshot(price float64, rows ...models.StrikeRow) models.ChainSnapshot {
	return models.ChainSnapshot{
		Symbol:       "TESTCO",
		CurrentPrice: price,
		Timestamp:    time.Now(),
		Strikes:      rows,
	}
}

func TestAnalyzeDirectionEmptySnapshot(t *testing.T) {
	d := AnalyzeDirection(snapshot(100), 100)

	if d.Bias != models.BiasNeutral {
		t.Errorf("bias = %v, want Neutral", d.Bias)
	}
	if d.Confidence != 0 {
		t.Errorf("confidence = %v, want 0", d.Confidence)
	}
	if d.TargetPrice != 100 {
		t.Errorf("target = %v, want current price", d.TargetPrice)
	}
}

func TestAnalyzeDirectionHighPCR(t *testing.T) {
	snap := snapshot(100, models.StrikeRow{
		Strike:     100,
		CallOI:     1000,
		PutOI:      3000,
		CallVolume: 1000,
		PutVolume:  1000,
	})

	d := AnalyzeDirection(snap, 100)

	if d.Bias != models.BiasBullish {
		t.Fatalf("bias = %v, want Bullish", d.Bias)
	}
	if d.Confidence < 30 {
		t.Errorf("confidence = %v, want >= 30", d.Confidence)
	}
	if math.Abs(d.PutCallRatio-3.0) > 1e-9 {
		t.Errorf("pcr = %v, want 3.0", d.PutCallRatio)
	}
	if !strings.Contains(d.Reason, "High Put-Call Ratio indicates potential reversal") {
		t.Errorf("reason %q missing high-PCR explanation", d.Reason)
	}
	// Max call OI sits at spot, so the target falls back to price*1.01.
	if math.Abs(d.TargetPrice-101) > 1e-9 {
		t.Errorf("target = %v, want 101", d.TargetPrice)
	}
}

func TestAnalyzeDirectionLowPCRWithVolumeConfirmation(t *testing.T) {
	snap := snapshot(200, models.StrikeRow{
		Strike:     200,
		CallOI:     5000,
		PutOI:      1000,
		CallVolume: 1000,
		PutVolume:  2000,
	})

	d := AnalyzeDirection(snap, 200)

	if d.Bias != models.BiasBearish {
		t.Fatalf("bias = %v, want Bearish", d.Bias)
	}
	// 30 for the PCR reading plus 20 for the confirming put volume.
	if d.Confidence != 50 {
		t.Errorf("confidence = %v, want 50", d.Confidence)
	}
	if !strings.Contains(d.Reason, "Higher Put volume indicates bearish sentiment") {
		t.Errorf("reason %q missing volume explanation", d.Reason)
	}
	// Max put OI at spot, target is min(200, 198) = 198.
	if math.Abs(d.TargetPrice-198) > 1e-9 {
		t.Errorf("target = %v, want 198", d.TargetPrice)
	}
}

func TestAnalyzeDirectionIgnoresFarStrikes(t *testing.T) {
	snap := snapshot(100,
		models.StrikeRow{Strike: 100, CallOI: 1000, PutOI: 1000},
		// 10% away, outside the 5% aggregation window
		models.StrikeRow{Strike: 110, CallOI: 1, PutOI: 1_000_000},
	)

	d := AnalyzeDirection(snap, 100)

	if math.Abs(d.PutCallRatio-1.0) > 1e-9 {
		t.Errorf("pcr = %v, want 1.0 after excluding far strike", d.PutCallRatio)
	}
	if d.Bias != models.BiasNeutral {
		t.Errorf("bias = %v, want Neutral", d.Bias)
	}
}

func TestAnalyzeDirectionZeroDenominators(t *testing.T) {
	snap := snapshot(100, models.StrikeRow{
		Strike: 100,
		PutOI:  5000,
	})

	d := AnalyzeDirection(snap, 100)

	if d.PutCallRatio != 0 {
		t.Errorf("pcr = %v, want 0 when call OI is zero", d.PutCallRatio)
	}
	if d.VolumeRatio != 0 {
		t.Errorf("volume ratio = %v, want 0 when call volume is zero", d.VolumeRatio)
	}
}
