package chain

import (
	"strings"
	"testing"
)

// csvRow builds a 23-column NSE export row from the leg values.
func csvRow(cells map[int]string) string {
	row := make([]string, 23)
	for i := range row {
		row[i] = "-"
	}
	for idx, v := range cells {
		row[idx] = v
	}
	return strings.Join(row, ",")
}

const csvHeaders = "CALLS,,,,,,,,,,,STRIKE,,,,,,,,,,PUTS,\n" +
	"OI,CHNG IN OI,VOLUME,IV,LTP,CHNG,BID QTY,BID,ASK,ASK QTY,,PRICE,BID QTY,BID,ASK,ASK QTY,CHNG,LTP,IV,VOLUME,CHNG IN OI,OI,\n"

func TestReadCSV(t *testing.T) {
	// Quoted cells with thousands separators, the NSE export style.
	data := csvHeaders +
		`,"1,20,000","5,000","45,000",22.5,105.50,2.30,,104.00,106.00,,"24,000",,95.00,97.00,,-1.10,96.20,24.1,"38,000","4,200","98,000",` + "\n" +
		csvRow(map[int]string{
			colCallOI: "500", colStrike: "24500", colPutOI: "700",
		}) + "\n"

	snap := ReadCSV(strings.NewReader(data), "NIFTY", 24100)

	if snap.Symbol != "NIFTY" || snap.CurrentPrice != 24100 {
		t.Fatalf("snapshot identity = %s/%v", snap.Symbol, snap.CurrentPrice)
	}
	if len(snap.Strikes) != 2 {
		t.Fatalf("got %d strikes, want 2", len(snap.Strikes))
	}

	first := snap.Strikes[0]
	if first.Strike != 24000 {
		t.Errorf("strike = %v, want 24000", first.Strike)
	}
	if first.CallOI != 120000 {
		t.Errorf("call OI = %v, want 120000 with separators stripped", first.CallOI)
	}
	if first.CallOIChange != 5000 || first.CallVolume != 45000 {
		t.Errorf("call oi chng/volume = %v/%v", first.CallOIChange, first.CallVolume)
	}
	if first.CallIV != 22.5 || first.CallLTP != 105.50 {
		t.Errorf("call iv/ltp = %v/%v", first.CallIV, first.CallLTP)
	}
	if first.CallBid != 104 || first.CallAsk != 106 {
		t.Errorf("call bid/ask = %v/%v", first.CallBid, first.CallAsk)
	}
	if first.PutBid != 95 || first.PutAsk != 97 {
		t.Errorf("put bid/ask = %v/%v", first.PutBid, first.PutAsk)
	}
	if first.PutChange != -1.10 || first.PutLTP != 96.20 {
		t.Errorf("put chng/ltp = %v/%v", first.PutChange, first.PutLTP)
	}
	if first.PutOI != 98000 || first.PutOIChange != 4200 || first.PutVolume != 38000 {
		t.Errorf("put oi/chng/volume = %v/%v/%v", first.PutOI, first.PutOIChange, first.PutVolume)
	}

	// Dashes in the second row decode as zeroes.
	second := snap.Strikes[1]
	if second.Strike != 24500 || second.CallOI != 500 || second.PutOI != 700 {
		t.Errorf("second row = %+v", second)
	}
	if second.CallLTP != 0 || second.PutVolume != 0 {
		t.Errorf("dash cells not zero: %+v", second)
	}
}

func TestReadCSVSkipsShortRows(t *testing.T) {
	data := csvHeaders +
		"too,short,row\n" +
		csvRow(map[int]string{colStrike: "100"}) + "\n"

	snap := ReadCSV(strings.NewReader(data), "TESTCO", 100)
	if len(snap.Strikes) != 1 {
		t.Fatalf("got %d strikes, want 1 after skipping the short row", len(snap.Strikes))
	}
	if snap.Strikes[0].Strike != 100 {
		t.Errorf("strike = %v, want 100", snap.Strikes[0].Strike)
	}
}

func TestReadCSVEmptySource(t *testing.T) {
	snap := ReadCSV(strings.NewReader(""), "TESTCO", 100)
	if !snap.Empty() {
		t.Errorf("snapshot not empty: %+v", snap)
	}
	if snap.Symbol != "TESTCO" || snap.CurrentPrice != 100 {
		t.Errorf("identity lost on empty source: %s/%v", snap.Symbol, snap.CurrentPrice)
	}
}

func TestReadCSVHeaderOnly(t *testing.T) {
	snap := ReadCSV(strings.NewReader(csvHeaders), "TESTCO", 100)
	if !snap.Empty() {
		t.Errorf("snapshot not empty: %+v", snap)
	}
}

func TestParseFloat(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"", 0},
		{"-", 0},
		{"  -  ", 0},
		{"1,20,000", 120000},
		{"22.5", 22.5},
		{"-1.10", -1.1},
		{"garbage", 0},
	}
	for _, tt := range tests {
		if got := parseFloat(tt.in); got != tt.want {
			t.Errorf("parseFloat(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
