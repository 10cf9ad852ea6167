package api

import (
	"errors"
	"net/http"
	"unicode"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
	"github.com/trogers1052/stock-dashboard/internal/alphavantage"
	"github.com/trogers1052/stock-dashboard/internal/market"
	"github.com/trogers1052/stock-dashboard/internal/watchlist"
)

const rateLimitDetail = "API rate limit exceeded. Please try again later."

// errorStatus maps a domain error to its HTTP status and client-facing detail.
func errorStatus(err error) (int, string) {
	var transportErr *alphavantage.TransportError
	switch {
	case errors.Is(err, alphavantage.ErrRateLimited):
		return http.StatusTooManyRequests, rateLimitDetail
	case errors.Is(err, alphavantage.ErrInvalidSymbol),
		errors.Is(err, watchlist.ErrDuplicate),
		errors.Is(err, watchlist.ErrEmptySymbol),
		errors.Is(err, market.ErrTooManySymbols):
		return http.StatusBadRequest, capitalize(err.Error())
	case errors.Is(err, watchlist.ErrNotFound),
		errors.Is(err, market.ErrNotFound):
		return http.StatusNotFound, capitalize(err.Error())
	case errors.As(err, &transportErr):
		return http.StatusInternalServerError, transportErr.Error()
	default:
		return http.StatusInternalServerError, err.Error()
	}
}

func respondError(w http.ResponseWriter, r *http.Request, err error) {
	status, detail := errorStatus(err)
	if status >= 500 {
		log.Error().Err(err).
			Str("request_id", GetRequestID(r.Context())).
			Str("path", r.URL.Path).
			Msg("request failed")
	}
	respondDetail(w, status, detail)
}

func respondDetail(w http.ResponseWriter, status int, detail string) {
	respondJSON(w, status, map[string]string{"detail": detail})
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
