package server

import (
	"net/http"

	"github.com/go-chi/render"

	oerrors "optionscout/internal/errors"
)

// errorResponse is the JSON error body for all non-2xx responses.
type errorResponse struct {
	Error  string `json:"error"`
	Symbol string `json:"symbol,omitempty"`
}

// renderError maps the error taxonomy onto HTTP statuses: invalid input
// is a 400, upstream data unavailability is a 502, computation failures
// and everything else are a 500.
func (s *Server) renderError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError

	var fetchErr *oerrors.FetchError
	var dataErr *oerrors.DataError
	var compErr *oerrors.ComputationError
	symbol := ""

	switch {
	case oerrors.Is(err, oerrors.ErrInvalidInput):
		status = http.StatusBadRequest
	case oerrors.As(err, &fetchErr):
		status = http.StatusBadGateway
		symbol = fetchErr.Symbol
	case oerrors.As(err, &dataErr):
		status = http.StatusBadGateway
		symbol = dataErr.Symbol
	case oerrors.Is(err, oerrors.ErrDataUnavailable) || oerrors.Is(err, oerrors.ErrNoData):
		status = http.StatusBadGateway
	case oerrors.As(err, &compErr):
		symbol = compErr.Symbol
	}

	if status >= http.StatusInternalServerError {
		s.logger.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
	} else {
		s.logger.Warn().Err(err).Str("path", r.URL.Path).Msg("request rejected")
	}

	render.Status(r, status)
	render.JSON(w, r, errorResponse{Error: err.Error(), Symbol: symbol})
}
