package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	oerrors "optionscout/internal/errors"
)

// analyzeChainRequest is the body of POST /api/chain.
type analyzeChainRequest struct {
	Symbol string `json:"symbol"`
	Expiry string `json:"expiry,omitempty"`
}

func (req *analyzeChainRequest) Bind(r *http.Request) error {
	req.Symbol = strings.ToUpper(strings.TrimSpace(req.Symbol))
	if req.Symbol == "" {
		return oerrors.NewValidationError("symbol", req.Symbol, "symbol is required")
	}
	return nil
}

// handleAnalyzeLive runs the full fetch-and-analyze pipeline for a
// symbol against the live option chain.
func (s *Server) handleAnalyzeLive(w http.ResponseWriter, r *http.Request) {
	req := &analyzeChainRequest{}
	if err := render.Bind(r, req); err != nil {
		var vErr *oerrors.ValidationError
		if !oerrors.As(err, &vErr) {
			err = oerrors.NewValidationError("body", nil, "invalid request body")
		}
		s.renderError(w, r, err)
		return
	}

	result, err := s.pipeline.AnalyzeSymbol(r.Context(), req.Symbol, req.Expiry)
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	render.JSON(w, r, result)
}

// handleAnalyzeUpload analyzes an uploaded option-chain CSV. Multipart
// fields: file, symbol, current_price.
func (s *Server) handleAnalyzeUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(s.cfg.MaxUploadBytes); err != nil {
		s.renderError(w, r, oerrors.NewValidationError("file", nil, "invalid multipart form"))
		return
	}

	symbol := strings.ToUpper(strings.TrimSpace(r.FormValue("symbol")))
	if symbol == "" {
		s.renderError(w, r, oerrors.NewValidationError("symbol", symbol, "symbol is required"))
		return
	}

	price, err := strconv.ParseFloat(strings.TrimSpace(r.FormValue("current_price")), 64)
	if err != nil || price <= 0 {
		s.renderError(w, r, oerrors.NewValidationError("current_price", r.FormValue("current_price"), "current price must be a positive number"))
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		s.renderError(w, r, oerrors.NewValidationError("file", nil, "option chain file is required"))
		return
	}
	defer file.Close()

	result, err := s.pipeline.AnalyzeUpload(r.Context(), symbol, price, file)
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	render.JSON(w, r, result)
}

func (s *Server) handleMarketNews(w http.ResponseWriter, r *http.Request) {
	result, err := s.pipeline.MarketNews(r.Context())
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	render.JSON(w, r, result)
}

func (s *Server) handleStockNews(w http.ResponseWriter, r *http.Request) {
	symbol := strings.ToUpper(chi.URLParam(r, "symbol"))
	items, overall, err := s.pipeline.StockNews(r.Context(), symbol)
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	render.JSON(w, r, map[string]interface{}{
		"symbol":            symbol,
		"news":              items,
		"overall_sentiment": overall,
	})
}

func (s *Server) handleSymbols(w http.ResponseWriter, r *http.Request) {
	symbols, err := s.pipeline.Symbols(r.Context())
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	render.JSON(w, r, map[string]interface{}{"symbols": symbols})
}

func (s *Server) handlePrice(w http.ResponseWriter, r *http.Request) {
	symbol := strings.ToUpper(chi.URLParam(r, "symbol"))
	price, err := s.pipeline.Price(r.Context(), symbol)
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	render.JSON(w, r, price)
}

func (s *Server) handleVolumeTrend(w http.ResponseWriter, r *http.Request) {
	symbol := strings.ToUpper(chi.URLParam(r, "symbol"))

	days := 0
	if v := r.URL.Query().Get("days"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			s.renderError(w, r, oerrors.NewValidationError("days", v, "days must be a positive integer"))
			return
		}
		days = parsed
	}

	trend, err := s.pipeline.VolumeTrend(r.Context(), symbol, days)
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	render.JSON(w, r, trend)
}

func (s *Server) handleJournal(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.renderError(w, r, oerrors.ErrDatabaseError)
		return
	}

	symbol := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("symbol")))
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			s.renderError(w, r, oerrors.NewValidationError("limit", v, "limit must be a positive integer"))
			return
		}
		limit = parsed
	}

	entries, err := s.store.ListAnalyses(r.Context(), symbol, limit)
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	render.JSON(w, r, map[string]interface{}{"entries": entries})
}
