package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	oerrors "optionscout/internal/errors"
)

func TestRenderErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantSymbol string
	}{
		{
			name:       "validation error",
			err:        oerrors.NewValidationError("symbol", "", "symbol is required"),
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "fetch error carries symbol",
			err:        oerrors.NewFetchError("option-chain", "NIFTY", 500, nil),
			wantStatus: http.StatusBadGateway,
			wantSymbol: "NIFTY",
		},
		{
			name:       "malformed upstream response",
			err:        oerrors.NewDataError("option-chain", "RELIANCE", "malformed response", errors.New("unexpected end of JSON input")),
			wantStatus: http.StatusBadGateway,
			wantSymbol: "RELIANCE",
		},
		{
			name:       "no data sentinel",
			err:        oerrors.ErrNoData,
			wantStatus: http.StatusBadGateway,
		},
		{
			name:       "computation error",
			err:        oerrors.NewComputationError("TCS", "scoring", errors.New("bad snapshot")),
			wantStatus: http.StatusInternalServerError,
			wantSymbol: "TCS",
		},
		{
			name:       "unknown error",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
		},
	}

	s := testServer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/chain", nil)
			s.renderError(rec, req, tt.err)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			var body errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid JSON: %v", err)
			}
			if body.Symbol != tt.wantSymbol {
				t.Errorf("symbol = %q, want %q", body.Symbol, tt.wantSymbol)
			}
		})
	}
}
