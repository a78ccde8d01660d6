package web

import (
	"errors"
	"html/template"
	"net/http"

	"github.com/vitos/crypto_market_view/internal/domain"
	"github.com/vitos/crypto_market_view/internal/usecase"
	"go.uber.org/zap"
)

var coinTemplate = template.Must(template.New("coin").Funcs(template.FuncMap{
	"formatPrice":  usecase.FormatPrice,
	"formatVolume": usecase.FormatVolume,
}).Parse(`<!DOCTYPE html>
<html>
<head><title>{{.Coin.Name}} ({{.Coin.Symbol}})</title></head>
<body>
<a href="/">Back to Crypto List</a>
<h1>{{.Coin.Name}} <small>{{.Coin.Symbol}}</small></h1>
<p>Price: {{formatPrice .Coin.LastPrice}} ({{.Coin.PriceChangePercent}}%)</p>
<dl>
  <dt>24h High</dt><dd>{{formatPrice .Coin.HighPrice}}</dd>
  <dt>24h Low</dt><dd>{{formatPrice .Coin.LowPrice}}</dd>
  <dt>Prev Close</dt><dd>{{formatPrice .Coin.PrevClosePrice}}</dd>
  <dt>Volume</dt><dd>{{formatVolume .Coin.Volume}}</dd>
</dl>
<nav>
  {{range .Intervals}}
    {{if .Active}}<strong>{{.Label}}</strong>{{else}}<a href="?interval={{.Key}}">{{.Label}}</a>{{end}}
  {{end}}
</nav>
<table>
  <thead><tr><th>Time</th><th>Close</th></tr></thead>
  <tbody>
  {{range .Points}}
    <tr><td>{{.Label}}</td><td>{{formatPrice .Close}}</td></tr>
  {{end}}
  </tbody>
</table>
</body>
</html>
`))

var coinErrorTemplate = template.Must(template.New("coinError").Parse(`<!DOCTYPE html>
<html>
<head><title>{{.Title}}</title></head>
<body>
<h1>{{.Title}}</h1>
<p>{{.Message}}</p>
{{if .Retry}}<a href="{{.Retry}}">Try again</a>{{end}}
<a href="/">Back to Crypto List</a>
</body>
</html>
`))

type chartPoint struct {
	Label string
	Close string
}

type intervalButton struct {
	Key    domain.Interval
	Label  string
	Active bool
}

// handleCoinPage renders the per-coin page: stats plus the chart series
// for the selected interval, seeded from a 1-day fetch. Exactly two
// failure surfaces exist: an unresolvable coin gets the not-found page,
// anything else gets a generic retry page.
func (s *Server) handleCoinPage(w http.ResponseWriter, r *http.Request) {
	symbol := baseSymbol(r.PathValue("symbol"))

	coin, err := s.market.Detail(r.Context(), symbol)
	if err == nil {
		var seed []domain.Kline
		seed, err = s.market.Candles(r.Context(), symbol, domain.Intervals[domain.DefaultInterval].Days)
		if err == nil {
			s.renderCoinPage(w, r, coin, seed)
			return
		}
	}

	if errors.Is(err, domain.ErrCoinNotFound) {
		w.WriteHeader(http.StatusNotFound)
		s.renderTemplate(w, coinErrorTemplate, map[string]interface{}{
			"Title":   "Coin Not Found",
			"Message": "We couldn't find " + symbol + ". It may not be listed.",
		})
		return
	}

	s.logger.Error("Failed to render coin page",
		zap.String("symbol", symbol), zap.Error(err))
	w.WriteHeader(http.StatusServiceUnavailable)
	s.renderTemplate(w, coinErrorTemplate, map[string]interface{}{
		"Title":   "Unable to Retrieve Data",
		"Message": "Something went wrong while loading " + symbol + ". Please try again.",
		"Retry":   r.URL.Path,
	})
}

func (s *Server) renderCoinPage(w http.ResponseWriter, r *http.Request, coin *domain.CoinDetail, seed []domain.Kline) {
	chart := usecase.NewChartView(s.market, coin.Symbol, seed, s.logger)

	if key := domain.Interval(r.URL.Query().Get("interval")); key != "" && key != chart.Interval() {
		// A failed switch keeps the seed series on screen.
		if err := chart.SelectInterval(r.Context(), key); err != nil {
			s.logger.Warn("interval switch failed",
				zap.String("symbol", coin.Symbol), zap.String("interval", string(key)), zap.Error(err))
		}
	}

	klines := chart.Klines()
	points := make([]chartPoint, 0, len(klines))
	for _, k := range klines {
		points = append(points, chartPoint{
			Label: chart.Label(k.CloseTime),
			Close: k.Close,
		})
	}

	buttons := make([]intervalButton, 0, len(domain.IntervalOrder))
	for _, key := range domain.IntervalOrder {
		buttons = append(buttons, intervalButton{
			Key:    key,
			Label:  domain.Intervals[key].Label,
			Active: key == chart.Interval(),
		})
	}

	s.renderTemplate(w, coinTemplate, map[string]interface{}{
		"Coin":      coin,
		"Points":    points,
		"Intervals": buttons,
	})
}

func (s *Server) renderTemplate(w http.ResponseWriter, tmpl *template.Template, data interface{}) {
	if err := tmpl.Execute(w, data); err != nil {
		s.logger.Error("Template error", zap.Error(err))
	}
}
