package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/vitos/crypto_market_view/internal/domain"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL = "https://api.coingecko.com/api/v3"

	// Listing size: top coins by market cap, single page.
	marketsPerPage = 150

	// Per-call ceilings. Chart history payloads are larger, so they get a
	// longer wait.
	defaultTimeout = 10 * time.Second
	chartTimeout   = 15 * time.Second
)

// CoinGeckoClient implements domain.MarketProvider against the CoinGecko
// public REST API. The free tier is heavily rate limited, so every call
// waits on a shared limiter first.
type CoinGeckoClient struct {
	client  *resty.Client
	limiter *rate.Limiter
	logger  *zap.Logger
}

func NewCoinGeckoClient(baseURL string, logger *zap.Logger) *CoinGeckoClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	client := resty.New()
	client.SetBaseURL(baseURL)
	client.SetHeader("Accept", "application/json")

	return &CoinGeckoClient{
		client: client,
		// ~30 requests/minute with a small burst, under the public limit.
		limiter: rate.NewLimiter(rate.Limit(0.5), 2),
		logger:  logger,
	}
}

func (c *CoinGeckoClient) Markets(ctx context.Context) ([]domain.MarketTicker, error) {
	body, err := c.get(ctx, "/coins/markets", map[string]string{
		"vs_currency": "usd",
		"order":       "market_cap_desc",
		"per_page":    strconv.Itoa(marketsPerPage),
		"page":        "1",
		"sparkline":   "false",
	}, defaultTimeout)
	if err != nil {
		return nil, err
	}

	var tickers []domain.MarketTicker
	if err := json.Unmarshal(body, &tickers); err != nil {
		return nil, fmt.Errorf("%w: markets: %v", domain.ErrParse, err)
	}
	return tickers, nil
}

func (c *CoinGeckoClient) CoinData(ctx context.Context, id string) (*domain.CoinData, error) {
	body, err := c.get(ctx, "/coins/"+url.PathEscape(id), map[string]string{
		"localization":   "false",
		"tickers":        "false",
		"market_data":    "true",
		"community_data": "false",
		"developer_data": "false",
		"sparkline":      "false",
	}, defaultTimeout)
	if err != nil {
		return nil, err
	}

	var payload struct {
		ID     string `json:"id"`
		Symbol string `json:"symbol"`
		Name   string `json:"name"`
		Image  struct {
			Large string `json:"large"`
			Small string `json:"small"`
		} `json:"image"`
		MarketData *struct {
			CurrentPrice       map[string]float64 `json:"current_price"`
			PriceChange24h     float64            `json:"price_change_24h"`
			PriceChangePercent float64            `json:"price_change_percentage_24h"`
			High24h            map[string]float64 `json:"high_24h"`
			Low24h             map[string]float64 `json:"low_24h"`
			TotalVolume        map[string]float64 `json:"total_volume"`
		} `json:"market_data"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: coin %s: %v", domain.ErrParse, id, err)
	}
	if payload.MarketData == nil {
		return nil, fmt.Errorf("%w: coin %s: missing market_data", domain.ErrParse, id)
	}

	image := payload.Image.Large
	if image == "" {
		image = payload.Image.Small
	}

	md := payload.MarketData
	return &domain.CoinData{
		ID:                    payload.ID,
		Symbol:                payload.Symbol,
		Name:                  payload.Name,
		Image:                 image,
		CurrentPriceUSD:       md.CurrentPrice["usd"],
		PriceChange24h:        md.PriceChange24h,
		PriceChangePercent24h: md.PriceChangePercent,
		High24hUSD:            md.High24h["usd"],
		Low24hUSD:             md.Low24h["usd"],
		TotalVolumeUSD:        md.TotalVolume["usd"],
	}, nil
}

func (c *CoinGeckoClient) MarketChart(ctx context.Context, id string, days int) ([]domain.PricePoint, error) {
	body, err := c.get(ctx, "/coins/"+url.PathEscape(id)+"/market_chart", map[string]string{
		"vs_currency": "usd",
		"days":        strconv.Itoa(days),
	}, chartTimeout)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Prices [][2]float64 `json:"prices"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: market_chart %s: %v", domain.ErrParse, id, err)
	}

	points := make([]domain.PricePoint, 0, len(payload.Prices))
	for _, p := range payload.Prices {
		points = append(points, domain.PricePoint{Time: int64(p[0]), Price: p[1]})
	}
	return points, nil
}

func (c *CoinGeckoClient) CoinList(ctx context.Context) ([]domain.CatalogEntry, error) {
	body, err := c.get(ctx, "/coins/list", nil, defaultTimeout)
	if err != nil {
		return nil, err
	}

	var entries []domain.CatalogEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("%w: coins/list: %v", domain.ErrParse, err)
	}
	return entries, nil
}

// get performs one rate-limited GET and returns the raw body on 2xx.
// Failures are classified into the domain error taxonomy here, so callers
// only ever see sentinel-wrapped errors.
func (c *CoinGeckoClient) get(ctx context.Context, path string, params map[string]string, timeout time.Duration) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %s: rate limiter: %v", domain.ErrTimeout, path, err)
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(params).
		Get(path)
	if err != nil {
		return nil, c.classify(path, err)
	}

	switch {
	case resp.StatusCode() == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", domain.ErrCoinNotFound, path)
	case resp.StatusCode() < 200 || resp.StatusCode() > 299:
		c.logger.Warn("provider returned error status",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode()))
		return nil, fmt.Errorf("%w: %s: status %d", domain.ErrUpstream, path, resp.StatusCode())
	}

	return resp.Body(), nil
}

func (c *CoinGeckoClient) classify(path string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s", domain.ErrTimeout, path)
	}
	var ue *url.Error
	if errors.As(err, &ue) && ue.Timeout() {
		return fmt.Errorf("%w: %s", domain.ErrTimeout, path)
	}
	return fmt.Errorf("%w: %s: %v", domain.ErrNetwork, path, err)
}
