package chain

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"
	"time"

	"optionscout/internal/models"
)

// Column positions in the NSE option-chain CSV export. Calls occupy the
// left side, the strike sits in the middle, puts mirror on the right.
const (
	colCallOI       = 1
	colCallOIChange = 2
	colCallVolume   = 3
	colCallIV       = 4
	colCallLTP      = 5
	colCallChange   = 6
	colCallBid      = 8
	colCallAsk      = 9
	colStrike       = 11
	colPutBid       = 13
	colPutAsk       = 14
	colPutChange    = 16
	colPutLTP       = 17
	colPutIV        = 18
	colPutVolume    = 19
	colPutOIChange  = 20
	colPutOI        = 21

	// minColumns is the smallest row that still carries put OI.
	minColumns = 22
)

// parseFloat converts an NSE CSV cell to a float. Thousands separators are
// stripped; a lone dash or an empty cell denotes zero, as does anything
// unparseable.
func parseFloat(value string) float64 {
	v := strings.TrimSpace(value)
	if v == "" || v == "-" {
		return 0
	}
	v = strings.ReplaceAll(v, ",", "")
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0
	}
	return f
}

// parseInt converts an NSE CSV cell to an integer, with the same zero
// conventions as parseFloat.
func parseInt(value string) int64 {
	return int64(parseFloat(value))
}

// ReadCSV parses an NSE option-chain CSV export. The first two rows are
// headers. Short or malformed rows are skipped silently; an unreadable
// source yields an empty snapshot, never an error, so callers can report
// "no data" distinctly from a mid-stream parse problem.
func ReadCSV(r io.Reader, symbol string, currentPrice float64) models.ChainSnapshot {
	snap := models.ChainSnapshot{
		Symbol:       symbol,
		CurrentPrice: currentPrice,
		Timestamp:    time.Now(),
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	// Header and subheader rows
	for i := 0; i < 2; i++ {
		if _, err := reader.Read(); err != nil {
			return snap
		}
	}

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Malformed row, not fatal
			if _, ok := err.(*csv.ParseError); ok {
				continue
			}
			break
		}
		if len(row) < minColumns {
			continue
		}

		snap.Strikes = append(snap.Strikes, models.StrikeRow{
			Strike:       parseFloat(row[colStrike]),
			CallOI:       parseInt(row[colCallOI]),
			CallOIChange: parseInt(row[colCallOIChange]),
			CallVolume:   parseInt(row[colCallVolume]),
			CallIV:       parseFloat(row[colCallIV]),
			CallLTP:      parseFloat(row[colCallLTP]),
			CallChange:   parseFloat(row[colCallChange]),
			CallBid:      parseFloat(row[colCallBid]),
			CallAsk:      parseFloat(row[colCallAsk]),
			PutOI:        parseInt(row[colPutOI]),
			PutOIChange:  parseInt(row[colPutOIChange]),
			PutVolume:    parseInt(row[colPutVolume]),
			PutIV:        parseFloat(row[colPutIV]),
			PutLTP:       parseFloat(row[colPutLTP]),
			PutChange:    parseFloat(row[colPutChange]),
			PutBid:       parseFloat(row[colPutBid]),
			PutAsk:       parseFloat(row[colPutAsk]),
		})
	}

	return snap
}
