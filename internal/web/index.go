package web

import (
	"html/template"
	"net/http"
	"strconv"

	"github.com/vitos/crypto_market_view/internal/domain"
	"github.com/vitos/crypto_market_view/internal/usecase"
	"go.uber.org/zap"
)

var indexTemplate = template.Must(template.New("index").Funcs(template.FuncMap{
	"formatPrice":  usecase.FormatPrice,
	"formatVolume": usecase.FormatVolume,
	"truncate":     func(name string) string { return usecase.TruncateName(name, 12) },
}).Parse(`<!DOCTYPE html>
<html>
<head><title>Crypto Markets</title></head>
<body>
<h1>Crypto Markets</h1>
<form method="get">
  <input type="text" name="q" placeholder="Search by symbol or name..." value="{{.Search}}">
  <button type="submit">Search</button>
</form>
<table>
  <thead>
    <tr><th>Name</th><th>Symbol</th><th>Price</th><th>24h Change</th><th>Volume</th></tr>
  </thead>
  <tbody>
  {{range .Rows}}
    <tr>
      <td><a href="/crypto/{{.Symbol}}">{{truncate .Name}}</a></td>
      <td>{{.Symbol}}</td>
      <td>{{formatPrice .LastPrice}}</td>
      <td>{{.PriceChangePercent}}%</td>
      <td>{{formatVolume .Volume}}</td>
    </tr>
  {{else}}
    <tr><td colspan="5">No coins found</td></tr>
  {{end}}
  </tbody>
</table>
<nav>
  {{range .Pages}}
    {{if eq . "..."}}<span>&hellip;</span>{{else}}<a href="?q={{$.Search}}&page={{.}}">{{.}}</a>{{end}}
  {{end}}
</nav>
</body>
</html>
`))

var sortParams = map[string]domain.SortColumn{
	"name":        domain.SortName,
	"symbol":      domain.SortSymbol,
	"price":       domain.SortPrice,
	"priceChange": domain.SortPriceChange,
	"volume":      domain.SortVolume,
}

// handleIndex renders the listing page. On any upstream failure the page
// degrades to an empty table rather than an error, matching the listing
// page's no-error-state contract.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	coins, err := s.market.Listing(r.Context())
	if err != nil {
		s.logger.Warn("listing unavailable, rendering empty table", zap.Error(err))
		coins = nil
	}

	table := usecase.NewTableView(coins)

	q := r.URL.Query()
	if term := q.Get("q"); term != "" {
		table.SetSearch(term)
	}
	if column, ok := sortParams[q.Get("sort")]; ok {
		table.SetSort(column)
		if q.Get("dir") == "desc" {
			table.SetSort(column)
		}
	}
	if page, err := strconv.Atoi(q.Get("page")); err == nil {
		table.SetPage(page)
	}

	data := map[string]interface{}{
		"Rows":   table.VisibleRows(),
		"Pages":  table.PageNumbers(),
		"Search": table.SearchTerm(),
	}
	if err := indexTemplate.Execute(w, data); err != nil {
		s.logger.Error("Template error", zap.Error(err))
	}
}
