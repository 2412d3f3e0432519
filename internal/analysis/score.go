package analysis

// Scoring weights for the candidate score. Fixed design constants, not
// tunable configuration.
const (
	weightOIChange = 0.4
	weightVolume   = 0.3
	weightSpread   = 0.2
	weightIV       = 0.1
)

// Score combines open-interest change, traded volume, bid-ask spread
// quality, and implied volatility into one comparable number. Each
// sub-score is capped at 10, so the weighted result lies in [0, 10] for
// non-negative inputs. Deterministic and side-effect free; callers must
// not pass NaN or Inf.
func Score(oiChange, volume, spreadPct, iv float64) float64 {
	oiScore := minFloat(oiChange/1000, 10)
	volumeScore := minFloat(volume/5000, 10)
	spreadScore := maxFloat(10-spreadPct*100, 0)
	ivScore := minFloat(iv/5, 10)

	return oiScore*weightOIChange +
		volumeScore*weightVolume +
		spreadScore*weightSpread +
		ivScore*weightIV
}
