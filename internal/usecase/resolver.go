package usecase

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/vitos/crypto_market_view/internal/domain"
	"go.uber.org/zap"
)

// catalogTTL is how long a fetched coin catalog stays valid.
const catalogTTL = time.Hour

// staticSymbolToID maps well-known tickers straight to provider ids,
// skipping the catalog entirely. Covers the large majority of lookups.
var staticSymbolToID = map[string]string{
	"BTC":   "bitcoin",
	"ETH":   "ethereum",
	"BNB":   "binancecoin",
	"SOL":   "solana",
	"XRP":   "ripple",
	"ADA":   "cardano",
	"DOGE":  "dogecoin",
	"DOT":   "polkadot",
	"MATIC": "matic-network",
	"AVAX":  "avalanche-2",
	"LINK":  "chainlink",
	"LTC":   "litecoin",
	"BCH":   "bitcoin-cash",
	"XLM":   "stellar",
	"ATOM":  "cosmos",
	"ETC":   "ethereum-classic",
	"XMR":   "monero",
	"TRX":   "tron",
	"EOS":   "eos",
	"ALGO":  "algorand",
	"AAVE":  "aave",
	"UNI":   "uniswap",
	"COMP":  "compound-governance-token",
	"MKR":   "maker",
	"SUSHI": "sushi",
	"YFI":   "yearn-finance",
	"SNX":   "havven",
	"CRV":   "curve-dao-token",
	"1INCH": "1inch",
	"ENJ":   "enjincoin",
	"MANA":  "decentraland",
	"SAND":  "the-sandbox",
	"AXS":   "axie-infinity",
	"GALA":  "gala",
	"CHZ":   "chiliz",
	"FLOW":  "flow",
	"NEAR":  "near",
	"FTM":   "fantom",
	"HBAR":  "hedera-hashgraph",
	"EGLD":  "elrond-erd-2",
	"THETA": "theta-token",
	"ZIL":   "zilliqa",
	"BAT":   "basic-attention-token",
	"ZEC":   "zcash",
	"DASH":  "dash",
	"WAVES": "waves",
	"ICP":   "internet-computer",
	"FIL":   "filecoin",
	"XTZ":   "tezos",
	"VET":   "vechain",
	"GRT":   "the-graph",
	"CAKE":  "pancakeswap-token",
	"SHIB":  "shiba-inu",
	"PEPE":  "pepe",
	"FLOKI": "floki",
}

// Resolver maps ticker symbols to provider coin ids: static table first,
// then a case-insensitive scan of the cached catalog. Ambiguous tickers
// resolve to the first catalog match; no market-cap tie-break is applied.
type Resolver struct {
	provider domain.MarketProvider
	store    domain.CatalogStore
	logger   *zap.Logger

	mu        sync.RWMutex
	catalog   []domain.CatalogEntry
	fetchedAt time.Time

	timeNow func() time.Time
}

// NewResolver builds a resolver. store may be nil, in which case the
// catalog lives only in memory for the life of the process.
func NewResolver(provider domain.MarketProvider, store domain.CatalogStore, logger *zap.Logger) *Resolver {
	return &Resolver{
		provider: provider,
		store:    store,
		logger:   logger,
		timeNow:  time.Now,
	}
}

// Resolve returns the provider id for a ticker symbol. The caller is
// expected to have uppercased the symbol and stripped any quote-currency
// suffix. Returns domain.ErrCoinNotFound when both lookups miss; transport
// failures during a catalog refresh propagate as their own conditions.
func (r *Resolver) Resolve(ctx context.Context, symbol string) (string, error) {
	upper := strings.ToUpper(symbol)
	if id, ok := staticSymbolToID[upper]; ok {
		return id, nil
	}

	catalog, err := r.catalogEntries(ctx)
	if err != nil {
		return "", err
	}

	for _, e := range catalog {
		if strings.EqualFold(e.Symbol, symbol) {
			return e.ID, nil
		}
	}
	return "", domain.ErrCoinNotFound
}

// catalogEntries returns a valid catalog, refreshing it when stale. A
// failed refresh falls back to the stale copy if one exists; with no copy
// at all the classified fetch error propagates.
func (r *Resolver) catalogEntries(ctx context.Context) ([]domain.CatalogEntry, error) {
	r.mu.RLock()
	catalog, fetchedAt := r.catalog, r.fetchedAt
	r.mu.RUnlock()

	if len(catalog) > 0 && r.timeNow().Sub(fetchedAt) < catalogTTL {
		return catalog, nil
	}

	if len(catalog) == 0 && r.store != nil {
		stored, storedAt, err := r.store.LoadCatalog(ctx)
		if err != nil {
			r.logger.Warn("failed to load stored catalog", zap.Error(err))
		} else if len(stored) > 0 && r.timeNow().Sub(storedAt) < catalogTTL {
			r.mu.Lock()
			r.catalog, r.fetchedAt = stored, storedAt
			r.mu.Unlock()
			return stored, nil
		}
	}

	fresh, err := r.provider.CoinList(ctx)
	if err != nil {
		if len(catalog) > 0 {
			r.logger.Warn("catalog refresh failed, using stale copy",
				zap.Error(err), zap.Time("fetched_at", fetchedAt))
			return catalog, nil
		}
		return nil, err
	}

	now := r.timeNow()
	r.mu.Lock()
	r.catalog, r.fetchedAt = fresh, now
	r.mu.Unlock()

	if r.store != nil {
		if err := r.store.SaveCatalog(ctx, fresh, now); err != nil {
			r.logger.Warn("failed to persist catalog", zap.Error(err))
		}
	}

	return fresh, nil
}
