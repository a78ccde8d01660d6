package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/vitos/crypto_market_view/internal/domain"
	"go.uber.org/zap"
)

// CandleFetcher is the slice of MarketService the chart needs.
type CandleFetcher interface {
	Candles(ctx context.Context, symbol string, days int) ([]domain.Kline, error)
}

// ChartView holds the per-coin chart state: the selected interval and the
// displayed candle series. The default-interval series is seeded by the
// page and restored without a network call when reselected.
//
// A second interval selection may arrive while an earlier fetch is still in
// flight. Each fetch carries a monotonically increasing token and only the
// latest token may touch displayed state, so the last issued request wins.
// Superseded calls are not cancelled, they are just discarded on return.
type ChartView struct {
	fetcher CandleFetcher
	logger  *zap.Logger
	symbol  string
	seed    []domain.Kline

	mu       sync.Mutex
	interval domain.Interval
	klines   []domain.Kline
	loading  bool
	reqToken uint64
}

func NewChartView(fetcher CandleFetcher, symbol string, seed []domain.Kline, logger *zap.Logger) *ChartView {
	return &ChartView{
		fetcher:  fetcher,
		logger:   logger,
		symbol:   symbol,
		seed:     seed,
		interval: domain.DefaultInterval,
		klines:   seed,
	}
}

// SelectInterval switches the chart window. The default interval restores
// the seed series immediately; any other interval fetches its lookback.
// On fetch failure the previous series stays on screen and the error is
// returned for the caller to log or surface.
func (c *ChartView) SelectInterval(ctx context.Context, key domain.Interval) error {
	cfg, ok := domain.Intervals[key]
	if !ok {
		return fmt.Errorf("unknown interval %q", key)
	}

	c.mu.Lock()
	c.interval = key
	if key == domain.DefaultInterval {
		// Supersede any in-flight fetch so its late response is dropped.
		c.reqToken++
		c.klines = c.seed
		c.loading = false
		c.mu.Unlock()
		return nil
	}
	c.reqToken++
	token := c.reqToken
	c.loading = true
	c.mu.Unlock()

	klines, err := c.fetcher.Candles(ctx, c.symbol, cfg.Days)

	c.mu.Lock()
	defer c.mu.Unlock()
	if token != c.reqToken {
		// A newer selection already owns the display.
		return nil
	}
	c.loading = false
	if err != nil {
		c.logger.Warn("candle fetch failed",
			zap.String("symbol", c.symbol),
			zap.Int("days", cfg.Days),
			zap.Error(err))
		return err
	}
	if len(klines) > 0 {
		c.klines = klines
	}
	return nil
}

func (c *ChartView) Interval() domain.Interval {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.interval
}

func (c *ChartView) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Klines returns the displayed series.
func (c *ChartView) Klines() []domain.Kline {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.klines
}

// Label formats a close-time timestamp (epoch ms) for the current
// interval's axis granularity.
func (c *ChartView) Label(ts int64) string {
	cfg := domain.Intervals[c.Interval()]
	return FormatTimestamp(ts, cfg.TimeFormat)
}

// FormatTimestamp renders an epoch-ms timestamp at a given granularity.
func FormatTimestamp(ts int64, format domain.TimeFormat) string {
	t := time.UnixMilli(ts).UTC()
	switch format {
	case domain.FormatHour:
		return t.Format("15:04")
	case domain.FormatDay:
		return t.Format("Jan 2")
	case domain.FormatWeek:
		return t.Format("Jan 2, 06")
	case domain.FormatMonth:
		return t.Format("Jan 2006")
	}
	return t.Format("Jan 2")
}

// Series line palette: chosen by the 24h change sign, with a variant per
// ambient theme.
const (
	lineUpLight   = "#16a34a"
	lineUpDark    = "#4ade80"
	lineDownLight = "#dc2626"
	lineDownDark  = "#f87171"
)

// LineColor picks the chart line color for a coin's 24h change sign.
func LineColor(positive, darkTheme bool) string {
	switch {
	case positive && darkTheme:
		return lineUpDark
	case positive:
		return lineUpLight
	case darkTheme:
		return lineDownDark
	default:
		return lineDownLight
	}
}
