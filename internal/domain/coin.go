package domain

// CoinSummary is one row of the market listing. Price and volume fields are
// decimal strings so the frontend renders exactly what the provider sent,
// without float formatting artifacts.
type CoinSummary struct {
	Symbol             string `json:"symbol"`
	Name               string `json:"name"`
	LastPrice          string `json:"lastPrice"`
	PriceChangePercent string `json:"priceChangePercent"`
	Volume             string `json:"volume"`
	ProviderID         string `json:"coinGeckoId,omitempty"`
	Image              string `json:"image,omitempty"`
}

// CoinDetail is the single-coin stats payload. The provider exposes no
// order-book data, so bid/ask mirror the last price and the quantity and
// trade-count fields are zero.
type CoinDetail struct {
	Name               string `json:"name"`
	Symbol             string `json:"symbol"`
	LastPrice          string `json:"lastPrice"`
	PriceChangePercent string `json:"priceChangePercent"`
	PriceChange        string `json:"priceChange"`
	HighPrice          string `json:"highPrice"`
	LowPrice           string `json:"lowPrice"`
	OpenPrice          string `json:"openPrice"`
	PrevClosePrice     string `json:"prevClosePrice"`
	WeightedAvgPrice   string `json:"weightedAvgPrice"`
	Volume             string `json:"volume"`
	QuoteVolume        string `json:"quoteVolume"`
	Count              int64  `json:"count"`
	BidPrice           string `json:"bidPrice"`
	BidQty             string `json:"bidQty"`
	AskPrice           string `json:"askPrice"`
	AskQty             string `json:"askQty"`
	LastQty            string `json:"lastQty"`
	Image              string `json:"image,omitempty"`
	ProviderID         string `json:"coinGeckoId,omitempty"`
}

// CatalogEntry is one record of the provider's full coin catalog.
type CatalogEntry struct {
	ID     string `json:"id"`
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

// MarketTicker is a parsed entry of the provider's bulk markets endpoint.
type MarketTicker struct {
	ID                    string  `json:"id"`
	Symbol                string  `json:"symbol"`
	Name                  string  `json:"name"`
	Image                 string  `json:"image"`
	CurrentPrice          float64 `json:"current_price"`
	PriceChange24h        float64 `json:"price_change_24h"`
	PriceChangePercent24h float64 `json:"price_change_percentage_24h"`
	High24h               float64 `json:"high_24h"`
	Low24h                float64 `json:"low_24h"`
	TotalVolume           float64 `json:"total_volume"`
	MarketCap             float64 `json:"market_cap"`
}

// CoinData is the parsed single-coin endpoint payload, flattened to the
// USD market-data fields this site uses.
type CoinData struct {
	ID                    string
	Symbol                string
	Name                  string
	Image                 string
	CurrentPriceUSD       float64
	PriceChange24h        float64
	PriceChangePercent24h float64
	High24hUSD            float64
	Low24hUSD             float64
	TotalVolumeUSD        float64
}

// PricePoint is one (timestamp, price) sample of a historical chart series.
type PricePoint struct {
	Time  int64 // epoch ms
	Price float64
}
