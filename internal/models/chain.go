// Package models provides domain models for option-chain analysis.
package models

import "time"

// StrikeRow represents one strike of an option chain, with the call leg,
// the put leg, and the strike price. Values are immutable once constructed.
type StrikeRow struct {
	Strike       float64 `json:"strike"`
	CallOI       int64   `json:"call_oi"`
	CallOIChange int64   `json:"call_oi_chng"`
	CallVolume   int64   `json:"call_volume"`
	CallIV       float64 `json:"call_iv"`
	CallLTP      float64 `json:"call_ltp"`
	CallChange   float64 `json:"call_chng"`
	CallBid      float64 `json:"call_bid"`
	CallAsk      float64 `json:"call_ask"`
	PutOI        int64   `json:"put_oi"`
	PutOIChange  int64   `json:"put_oi_chng"`
	PutVolume    int64   `json:"put_volume"`
	PutIV        float64 `json:"put_iv"`
	PutLTP       float64 `json:"put_ltp"`
	PutChange    float64 `json:"put_chng"`
	PutBid       float64 `json:"put_bid"`
	PutAsk       float64 `json:"put_ask"`
}

// CallSpreadPct returns the call bid-ask spread as a fraction of last price.
// Returns false when the last price is zero and no spread can be computed.
func (r StrikeRow) CallSpreadPct() (float64, bool) {
	if r.CallLTP <= 0 {
		return 0, false
	}
	return (r.CallAsk - r.CallBid) / r.CallLTP, true
}

// PutSpreadPct returns the put bid-ask spread as a fraction of last price.
func (r StrikeRow) PutSpreadPct() (float64, bool) {
	if r.PutLTP <= 0 {
		return 0, false
	}
	return (r.PutAsk - r.PutBid) / r.PutLTP, true
}

// ChainSnapshot is an option chain for one symbol at one point in time.
// Strike ordering mirrors the source; consumers must not assume sorting.
type ChainSnapshot struct {
	Symbol       string      `json:"symbol"`
	CurrentPrice float64     `json:"current_price"`
	Timestamp    time.Time   `json:"timestamp"`
	ExpiryDate   string      `json:"expiry_date,omitempty"`
	Strikes      []StrikeRow `json:"strikes"`
}

// Empty reports whether the snapshot carries no strike data.
func (s ChainSnapshot) Empty() bool {
	return len(s.Strikes) == 0
}
