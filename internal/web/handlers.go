package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/vitos/crypto_market_view/internal/domain"
	"go.uber.org/zap"
)

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Failed to encode response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, code, message string) {
	s.writeJSON(w, status, errorBody{Error: code, Message: message})
}

// errorStatus maps the domain error taxonomy onto HTTP status + error code.
func errorStatus(err error) (int, string, string) {
	switch {
	case errors.Is(err, domain.ErrCoinNotFound):
		return http.StatusNotFound, "COIN_NOT_FOUND", "Coin not found"
	case errors.Is(err, domain.ErrNoData):
		return http.StatusNotFound, "NO_DATA", "No price data available for this coin"
	case errors.Is(err, domain.ErrTimeout):
		return http.StatusGatewayTimeout, "TIMEOUT_ERROR", "Request timed out. Please try again."
	case errors.Is(err, domain.ErrNetwork):
		return http.StatusServiceUnavailable, "NETWORK_ERROR", "Unable to reach the market data provider."
	case errors.Is(err, domain.ErrParse):
		return http.StatusInternalServerError, "PARSE_ERROR", "Invalid response from the market data provider"
	default:
		return http.StatusInternalServerError, "FETCH_ERROR", "Failed to fetch coin data"
	}
}

// baseSymbol uppercases a path symbol and strips the quote-currency suffix,
// so both "btc" and "BTCUSDT" resolve the same coin.
func baseSymbol(symbol string) string {
	return strings.TrimSuffix(strings.ToUpper(symbol), "USDT")
}

func (s *Server) handleMarkets(w http.ResponseWriter, r *http.Request) {
	coins, err := s.market.Listing(r.Context())
	if err != nil {
		s.logger.Error("Failed to fetch market listing", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "UPSTREAM_ERROR", "Failed to fetch market listing")
		return
	}
	s.writeJSON(w, http.StatusOK, coins)
}

func (s *Server) handleCoinDetail(w http.ResponseWriter, r *http.Request) {
	symbol := baseSymbol(r.PathValue("symbol"))

	detail, err := s.market.Detail(r.Context(), symbol)
	if err != nil {
		status, code, message := errorStatus(err)
		if status >= http.StatusInternalServerError {
			s.logger.Error("Failed to fetch coin detail",
				zap.String("symbol", symbol), zap.Error(err))
		}
		s.writeError(w, status, code, message)
		return
	}
	s.writeJSON(w, http.StatusOK, detail)
}

func (s *Server) handleKlines(w http.ResponseWriter, r *http.Request) {
	symbol := baseSymbol(r.PathValue("symbol"))

	days, err := strconv.Atoi(r.URL.Query().Get("days"))
	if err != nil || days < 1 {
		days = 1
	}

	klines, err := s.market.Candles(r.Context(), symbol, days)
	if err != nil {
		status, code, message := errorStatus(err)
		if status >= http.StatusInternalServerError {
			s.logger.Error("Failed to fetch klines",
				zap.String("symbol", symbol), zap.Int("days", days), zap.Error(err))
		}
		s.writeError(w, status, code, message)
		return
	}
	s.writeJSON(w, http.StatusOK, klines)
}
