package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
	"github.com/trogers1052/stock-dashboard/internal/market"
	"github.com/trogers1052/stock-dashboard/internal/models"
)

// SourceAPI tags quotes published after a client request.
const SourceAPI = "api"

// MarketService answers market data queries. *market.Service implements it.
type MarketService interface {
	Search(ctx context.Context, query string) ([]models.SearchResult, error)
	Quote(ctx context.Context, symbol string) (*models.Quote, error)
	Historical(ctx context.Context, symbol, period string) (*models.HistoricalSeries, error)
	Compare(ctx context.Context, symbols []string, period string) (*models.Comparison, error)
}

// WatchlistService manages the watchlist. *watchlist.Service implements it.
type WatchlistService interface {
	Add(ctx context.Context, symbol, name string) (*models.WatchlistEntry, error)
	Remove(ctx context.Context, symbol string) error
	List(ctx context.Context) ([]models.WatchlistEntry, error)
}

// QuotePublisher fans out fetched quotes. *stream.Publisher implements it.
type QuotePublisher interface {
	PublishQuote(ctx context.Context, quote *models.Quote, source string) error
}

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	market    MarketService
	watchlist WatchlistService
	publisher QuotePublisher
	store     Pinger
	validate  *validator.Validate
}

// NewHandler creates a new Handler. publisher and store may be nil.
func NewHandler(ms MarketService, ws WatchlistService, publisher QuotePublisher, store Pinger) *Handler {
	return &Handler{
		market:    ms,
		watchlist: ws,
		publisher: publisher,
		store:     store,
		validate:  validator.New(validator.WithRequiredStructEnabled()),
	}
}

// addWatchlistRequest is the body of POST /api/watchlist
type addWatchlistRequest struct {
	Symbol string `json:"symbol" validate:"required,max=16"`
	Name   string `json:"name" validate:"max=255"`
}

// Root handles GET /api/
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"message": "Stock Dashboard API is running!"})
}

// Search handles GET /api/search/{query}
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	results, err := h.market.Search(r.Context(), mux.Vars(r)["query"])
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"results": results})
}

// AddToWatchlist handles POST /api/watchlist
func (h *Handler) AddToWatchlist(w http.ResponseWriter, r *http.Request) {
	var req addWatchlistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			respondDetail(w, http.StatusBadRequest, "Invalid field: "+verrs[0].Field())
			return
		}
		respondDetail(w, http.StatusBadRequest, err.Error())
		return
	}

	entry, err := h.watchlist.Add(r.Context(), req.Symbol, req.Name)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"message": "Stock added to watchlist",
		"item":    entry,
	})
}

// GetWatchlist handles GET /api/watchlist
func (h *Handler) GetWatchlist(w http.ResponseWriter, r *http.Request) {
	entries, err := h.watchlist.List(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"watchlist": entries})
}

// RemoveFromWatchlist handles DELETE /api/watchlist/{symbol}
func (h *Handler) RemoveFromWatchlist(w http.ResponseWriter, r *http.Request) {
	if err := h.watchlist.Remove(r.Context(), mux.Vars(r)["symbol"]); err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Stock removed from watchlist"})
}

// Quote handles GET /api/quote/{symbol}
func (h *Handler) Quote(w http.ResponseWriter, r *http.Request) {
	quote, err := h.market.Quote(r.Context(), mux.Vars(r)["symbol"])
	if err != nil {
		respondError(w, r, err)
		return
	}

	if h.publisher != nil {
		if err := h.publisher.PublishQuote(r.Context(), quote, SourceAPI); err != nil {
			log.Warn().Err(err).Str("symbol", quote.Symbol).Msg("failed to publish quote")
		}
	}

	respondJSON(w, http.StatusOK, quote)
}

// Historical handles GET /api/historical/{symbol}?period=
func (h *Handler) Historical(w http.ResponseWriter, r *http.Request) {
	period := r.URL.Query().Get("period")
	if period == "" {
		period = market.DefaultPeriod
	}

	series, err := h.market.Historical(r.Context(), mux.Vars(r)["symbol"], period)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, series)
}

// Comparison handles GET /api/comparison?symbols=&period=
func (h *Handler) Comparison(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	if !query.Has("symbols") {
		respondDetail(w, http.StatusBadRequest, "Query parameter symbols is required")
		return
	}
	period := query.Get("period")
	if period == "" {
		period = market.DefaultPeriod
	}

	result, err := h.market.Compare(r.Context(), market.ParseSymbols(query.Get("symbols")), period)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	if h.store != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.store.Ping(ctx); err != nil {
			respondJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "unhealthy",
				"error":  err.Error(),
			})
			return
		}
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}
