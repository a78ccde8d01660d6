package provider

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/vitos/crypto_market_view/internal/domain"
	"go.uber.org/zap"
)

func newTestClient(handler http.Handler) (*CoinGeckoClient, *httptest.Server) {
	server := httptest.NewServer(handler)
	return NewCoinGeckoClient(server.URL, zap.NewNop()), server
}

func TestCoinGeckoClient_Markets(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/coins/markets" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("vs_currency") != "usd" || q.Get("order") != "market_cap_desc" {
			t.Errorf("unexpected query %s", r.URL.RawQuery)
		}
		if q.Get("per_page") != "150" {
			t.Errorf("listing page size must be 150, got %s", q.Get("per_page"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"id":"bitcoin","symbol":"btc","name":"Bitcoin","image":"https://img/btc.png",
			 "current_price":67000.5,"price_change_24h":500.25,
			 "price_change_percentage_24h":0.75,"total_volume":35000000000}
		]`))
	}))
	defer server.Close()

	tickers, err := client.Markets(context.Background())
	if err != nil {
		t.Fatalf("Markets failed: %v", err)
	}
	if len(tickers) != 1 {
		t.Fatalf("expected 1 ticker, got %d", len(tickers))
	}
	ticker := tickers[0]
	if ticker.ID != "bitcoin" || ticker.Symbol != "btc" || ticker.CurrentPrice != 67000.5 {
		t.Errorf("unexpected ticker %+v", ticker)
	}
}

func TestCoinGeckoClient_CoinData_FlattensMarketData(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/coins/bitcoin" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{
			"id":"bitcoin","symbol":"btc","name":"Bitcoin",
			"image":{"large":"https://img/btc-large.png","small":"https://img/btc-small.png"},
			"market_data":{
				"current_price":{"usd":67000.5},
				"price_change_24h":500.25,
				"price_change_percentage_24h":0.75,
				"high_24h":{"usd":68000},
				"low_24h":{"usd":66000},
				"total_volume":{"usd":35000000000}
			}
		}`))
	}))
	defer server.Close()

	data, err := client.CoinData(context.Background(), "bitcoin")
	if err != nil {
		t.Fatalf("CoinData failed: %v", err)
	}
	if data.CurrentPriceUSD != 67000.5 || data.High24hUSD != 68000 || data.Low24hUSD != 66000 {
		t.Errorf("unexpected market data %+v", data)
	}
	if data.Image != "https://img/btc-large.png" {
		t.Errorf("large image preferred, got %s", data.Image)
	}
}

func TestCoinGeckoClient_CoinData_MissingMarketDataIsParseError(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":"bitcoin","symbol":"btc","name":"Bitcoin"}`))
	}))
	defer server.Close()

	_, err := client.CoinData(context.Background(), "bitcoin")
	if !errors.Is(err, domain.ErrParse) {
		t.Fatalf("expected ErrParse, got %v", err)
	}
}

func TestCoinGeckoClient_MarketChart(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/coins/bitcoin/market_chart" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("days") != "30" {
			t.Errorf("unexpected days %s", r.URL.Query().Get("days"))
		}
		w.Write([]byte(`{"prices":[[1717200000000,100.5],[1717203600000,101.25]]}`))
	}))
	defer server.Close()

	points, err := client.MarketChart(context.Background(), "bitcoin", 30)
	if err != nil {
		t.Fatalf("MarketChart failed: %v", err)
	}
	if len(points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(points))
	}
	if points[0].Time != 1717200000000 || points[0].Price != 100.5 {
		t.Errorf("unexpected point %+v", points[0])
	}
}

func TestCoinGeckoClient_NotFoundClassified(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"coin not found"}`, http.StatusNotFound)
	}))
	defer server.Close()

	_, err := client.CoinData(context.Background(), "no-such-coin")
	if !errors.Is(err, domain.ErrCoinNotFound) {
		t.Fatalf("expected ErrCoinNotFound, got %v", err)
	}
}

func TestCoinGeckoClient_ServerErrorClassified(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal", http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := client.Markets(context.Background())
	if !errors.Is(err, domain.ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
}

func TestCoinGeckoClient_MalformedBodyClassified(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>rate limited</html>`))
	}))
	defer server.Close()

	_, err := client.Markets(context.Background())
	if !errors.Is(err, domain.ErrParse) {
		t.Fatalf("expected ErrParse, got %v", err)
	}
}

func TestCoinGeckoClient_UnreachableHostClassified(t *testing.T) {
	// Nothing listens here; the dial fails immediately.
	client := NewCoinGeckoClient("http://127.0.0.1:1", zap.NewNop())

	_, err := client.Markets(context.Background())
	if !errors.Is(err, domain.ErrNetwork) {
		t.Fatalf("expected ErrNetwork, got %v", err)
	}
}

func TestCoinGeckoClient_DeadlineClassifiedAsTimeout(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := client.Markets(ctx)
	if !errors.Is(err, domain.ErrTimeout) {
		t.Fatalf("expected ErrTimeout, got %v", err)
	}
}
