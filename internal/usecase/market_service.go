package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/vitos/crypto_market_view/internal/domain"
	"go.uber.org/zap"
)

// MarketService reshapes provider payloads into the site's record types.
type MarketService struct {
	provider domain.MarketProvider
	resolver *Resolver
	logger   *zap.Logger
}

func NewMarketService(provider domain.MarketProvider, resolver *Resolver, logger *zap.Logger) *MarketService {
	return &MarketService{
		provider: provider,
		resolver: resolver,
		logger:   logger,
	}
}

// Listing returns the bulk market listing in provider (market-cap
// descending) order, deduplicated by symbol with the first occurrence
// winning.
func (s *MarketService) Listing(ctx context.Context) ([]domain.CoinSummary, error) {
	tickers, err := s.provider.Markets(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(tickers))
	coins := make([]domain.CoinSummary, 0, len(tickers))
	for _, t := range tickers {
		symbol := strings.ToUpper(t.Symbol)
		if seen[symbol] {
			continue
		}
		seen[symbol] = true

		coins = append(coins, domain.CoinSummary{
			Symbol:             symbol,
			Name:               t.Name,
			LastPrice:          decimalString(t.CurrentPrice),
			PriceChangePercent: decimal.NewFromFloat(t.PriceChangePercent24h).StringFixed(2),
			Volume:             decimalString(t.TotalVolume),
			ProviderID:         t.ID,
			Image:              t.Image,
		})
	}
	return coins, nil
}

// Detail returns current stats for one coin. symbol must already be
// uppercased with any quote-currency suffix stripped. Fields the provider
// does not expose (order-book quantities, trade count) are zero; bid/ask
// mirror the last price. prevClosePrice is derived once here as
// currentPrice - 24h change, in decimal arithmetic.
func (s *MarketService) Detail(ctx context.Context, symbol string) (*domain.CoinDetail, error) {
	id, err := s.resolver.Resolve(ctx, symbol)
	if err != nil {
		return nil, err
	}

	data, err := s.provider.CoinData(ctx, id)
	if err != nil {
		return nil, err
	}

	name := data.Name
	if name == "" {
		name = symbol
	}

	price := decimal.NewFromFloat(data.CurrentPriceUSD)
	change := decimal.NewFromFloat(data.PriceChange24h)
	priceStr := price.String()
	volumeStr := decimalString(data.TotalVolumeUSD)

	return &domain.CoinDetail{
		Name:               name,
		Symbol:             symbol,
		LastPrice:          priceStr,
		PriceChangePercent: decimal.NewFromFloat(data.PriceChangePercent24h).StringFixed(2),
		PriceChange:        change.String(),
		HighPrice:          decimalString(data.High24hUSD),
		LowPrice:           decimalString(data.Low24hUSD),
		OpenPrice:          priceStr,
		PrevClosePrice:     price.Sub(change).String(),
		WeightedAvgPrice:   priceStr,
		Volume:             volumeStr,
		QuoteVolume:        volumeStr,
		Count:              0,
		BidPrice:           priceStr,
		BidQty:             "0",
		AskPrice:           priceStr,
		AskQty:             "0",
		LastQty:            "0",
		Image:              data.Image,
		ProviderID:         id,
	}, nil
}

// Candles returns the synthesized candle series for a lookback window.
// The provider only exposes point prices, so high/low are the max/min of
// the current and next point's price (the last point compares to itself)
// and the volume fields are zero-filled. A lossy approximation, not real
// trade data.
func (s *MarketService) Candles(ctx context.Context, symbol string, days int) ([]domain.Kline, error) {
	id, err := s.resolver.Resolve(ctx, symbol)
	if err != nil {
		return nil, err
	}

	points, err := s.provider.MarketChart(ctx, id, days)
	if err != nil {
		return nil, err
	}
	if len(points) == 0 {
		s.logger.Warn("empty price series",
			zap.String("symbol", symbol), zap.Int("days", days))
		return nil, fmt.Errorf("%w: %s", domain.ErrNoData, symbol)
	}

	klines := make([]domain.Kline, 0, len(points))
	for i, p := range points {
		next := p.Price
		if i+1 < len(points) {
			next = points[i+1].Price
		}
		high, low := p.Price, next
		if low > high {
			high, low = low, high
		}

		klines = append(klines, domain.Kline{
			OpenTime:            p.Time,
			Open:                decimalString(p.Price),
			High:                decimalString(high),
			Low:                 decimalString(low),
			Close:               decimalString(p.Price),
			Volume:              "0",
			CloseTime:           p.Time,
			QuoteVolume:         "0",
			TradeCount:          0,
			TakerBuyBaseVolume:  "0",
			TakerBuyQuoteVolume: "0",
			Ignore:              "0",
		})
	}
	return klines, nil
}

// decimalString renders a provider float as its shortest round-tripping
// decimal form, keeping display strings free of float artifacts.
func decimalString(f float64) string {
	return decimal.NewFromFloat(f).String()
}
