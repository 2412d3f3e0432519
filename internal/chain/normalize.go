// Package chain normalizes raw option-chain input into ChainSnapshot values.
package chain

import (
	"time"

	"optionscout/internal/models"
)

// Leg holds the raw fields of one option leg as delivered by the NSE API.
type Leg struct {
	OI       int64
	OIChange int64
	Volume   int64
	IV       float64
	LTP      float64
	Change   float64
	Bid      float64
	Ask      float64
}

// Record is one raw per-strike record from an API source. A record is
// usable only when both legs are present.
type Record struct {
	Strike     float64
	ExpiryDate string
	Call       *Leg
	Put        *Leg
}

// FromRecords builds a snapshot from API records. Records missing either
// leg are skipped. Output ordering mirrors input ordering.
func FromRecords(symbol string, currentPrice float64, ts time.Time, records []Record) models.ChainSnapshot {
	snap := models.ChainSnapshot{
		Symbol:       symbol,
		CurrentPrice: currentPrice,
		Timestamp:    ts,
	}

	for _, rec := range records {
		if rec.Call == nil || rec.Put == nil {
			continue
		}
		snap.Strikes = append(snap.Strikes, models.StrikeRow{
			Strike:       rec.Strike,
			CallOI:       rec.Call.OI,
			CallOIChange: rec.Call.OIChange,
			CallVolume:   rec.Call.Volume,
			CallIV:       rec.Call.IV,
			CallLTP:      rec.Call.LTP,
			CallChange:   rec.Call.Change,
			CallBid:      rec.Call.Bid,
			CallAsk:      rec.Call.Ask,
			PutOI:        rec.Put.OI,
			PutOIChange:  rec.Put.OIChange,
			PutVolume:    rec.Put.Volume,
			PutIV:        rec.Put.IV,
			PutLTP:       rec.Put.LTP,
			PutChange:    rec.Put.Change,
			PutBid:       rec.Put.Bid,
			PutAsk:       rec.Put.Ask,
		})
		if snap.ExpiryDate == "" {
			snap.ExpiryDate = rec.ExpiryDate
		}
	}

	return snap
}
