package domain

import (
	"encoding/json"
	"fmt"
)

// Kline is a single candle. On the wire it is a 12-element positional array
// (Binance kline layout), which the frontend chart consumes directly:
//
//	[openTime, open, high, low, close, volume,
//	 closeTime, quoteVolume, tradeCount,
//	 takerBuyBaseVolume, takerBuyQuoteVolume, ignore]
//
// Prices and volumes are decimal strings; the two timestamps are epoch ms.
type Kline struct {
	OpenTime            int64
	Open                string
	High                string
	Low                 string
	Close               string
	Volume              string
	CloseTime           int64
	QuoteVolume         string
	TradeCount          int64
	TakerBuyBaseVolume  string
	TakerBuyQuoteVolume string
	Ignore              string
}

func (k Kline) MarshalJSON() ([]byte, error) {
	return json.Marshal([]interface{}{
		k.OpenTime,
		k.Open,
		k.High,
		k.Low,
		k.Close,
		k.Volume,
		k.CloseTime,
		k.QuoteVolume,
		k.TradeCount,
		k.TakerBuyBaseVolume,
		k.TakerBuyQuoteVolume,
		k.Ignore,
	})
}

func (k *Kline) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 12 {
		return fmt.Errorf("kline: expected 12 elements, got %d", len(raw))
	}

	fields := []interface{}{
		&k.OpenTime,
		&k.Open,
		&k.High,
		&k.Low,
		&k.Close,
		&k.Volume,
		&k.CloseTime,
		&k.QuoteVolume,
		&k.TradeCount,
		&k.TakerBuyBaseVolume,
		&k.TakerBuyQuoteVolume,
		&k.Ignore,
	}
	for i, f := range fields {
		if err := json.Unmarshal(raw[i], f); err != nil {
			return fmt.Errorf("kline: element %d: %w", i, err)
		}
	}
	return nil
}
