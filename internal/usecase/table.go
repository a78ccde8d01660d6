package usecase

import (
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/vitos/crypto_market_view/internal/domain"
)

// Ellipsis is the gap marker in the page-number control.
const Ellipsis = "..."

// TableView holds the listing-table state: the full coin list plus search,
// sort and pagination. The row slice is treated as immutable input; every
// derivation works on a copy. All mutation goes through the setters, which
// keep the page clamp invariant.
type TableView struct {
	rows []domain.CoinSummary

	searchTerm    string
	sortColumn    domain.SortColumn
	sortDirection domain.SortDirection
	page          int
}

func NewTableView(rows []domain.CoinSummary) *TableView {
	return &TableView{
		rows:          rows,
		sortColumn:    domain.SortNone,
		sortDirection: domain.SortAsc,
		page:          1,
	}
}

// SetSearch updates the filter term and returns to the first page.
func (t *TableView) SetSearch(term string) {
	t.searchTerm = term
	t.page = 1
}

// SetSort toggles direction when the column is already active, otherwise
// switches column and resets to ascending. Either way the view returns to
// the first page.
func (t *TableView) SetSort(column domain.SortColumn) {
	if column == t.sortColumn {
		if t.sortDirection == domain.SortAsc {
			t.sortDirection = domain.SortDesc
		} else {
			t.sortDirection = domain.SortAsc
		}
	} else {
		t.sortColumn = column
		t.sortDirection = domain.SortAsc
	}
	t.page = 1
}

// SetPage clamps n into [1, TotalPages].
func (t *TableView) SetPage(n int) {
	total := t.TotalPages()
	if n < 1 {
		n = 1
	}
	if n > total {
		n = total
	}
	t.page = n
}

func (t *TableView) Page() int { return t.page }

func (t *TableView) SearchTerm() string { return t.searchTerm }

func (t *TableView) SortState() (domain.SortColumn, domain.SortDirection) {
	return t.sortColumn, t.sortDirection
}

// VisibleRows derives the current page: filter, stable sort, slice.
func (t *TableView) VisibleRows() []domain.CoinSummary {
	sorted := t.filteredSorted()

	start := (t.page - 1) * domain.PageSize
	if start >= len(sorted) {
		return nil
	}
	end := start + domain.PageSize
	if end > len(sorted) {
		end = len(sorted)
	}
	return sorted[start:end]
}

// TotalPages is at least 1, even for an empty filtered set.
func (t *TableView) TotalPages() int {
	n := len(t.filtered())
	pages := (n + domain.PageSize - 1) / domain.PageSize
	if pages < 1 {
		pages = 1
	}
	return pages
}

// PageNumbers renders the pagination control: always the first and last
// page, up to three pages centered on the current one, and ellipses for
// the gaps. Five or fewer pages are shown in full.
func (t *TableView) PageNumbers() []string {
	total := t.TotalPages()
	if total <= 5 {
		pages := make([]string, 0, total)
		for i := 1; i <= total; i++ {
			pages = append(pages, strconv.Itoa(i))
		}
		return pages
	}

	pages := []string{"1"}
	if t.page > 3 {
		pages = append(pages, Ellipsis)
	}

	start := t.page - 1
	if start < 2 {
		start = 2
	}
	end := t.page + 1
	if end > total-1 {
		end = total - 1
	}
	for i := start; i <= end; i++ {
		pages = append(pages, strconv.Itoa(i))
	}

	if t.page < total-2 {
		pages = append(pages, Ellipsis)
	}
	return append(pages, strconv.Itoa(total))
}

func (t *TableView) filtered() []domain.CoinSummary {
	if t.searchTerm == "" {
		return t.rows
	}
	term := strings.ToLower(t.searchTerm)

	var out []domain.CoinSummary
	for _, row := range t.rows {
		if strings.Contains(strings.ToLower(row.Symbol), term) ||
			strings.Contains(strings.ToLower(row.Name), term) {
			out = append(out, row)
		}
	}
	return out
}

func (t *TableView) filteredSorted() []domain.CoinSummary {
	filtered := t.filtered()
	if t.sortColumn == domain.SortNone {
		// Input order is the provider's market-cap order, which is the
		// deterministic default.
		return filtered
	}

	sorted := make([]domain.CoinSummary, len(filtered))
	copy(sorted, filtered)

	sort.SliceStable(sorted, func(i, j int) bool {
		cmp := compareRows(sorted[i], sorted[j], t.sortColumn)
		if t.sortDirection == domain.SortDesc {
			return cmp > 0
		}
		return cmp < 0
	})
	return sorted
}

func compareRows(a, b domain.CoinSummary, column domain.SortColumn) int {
	switch column {
	case domain.SortName:
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	case domain.SortSymbol:
		return strings.Compare(strings.ToLower(a.Symbol), strings.ToLower(b.Symbol))
	case domain.SortPrice:
		return parseDecimal(a.LastPrice).Cmp(parseDecimal(b.LastPrice))
	case domain.SortPriceChange:
		return parseDecimal(a.PriceChangePercent).Cmp(parseDecimal(b.PriceChangePercent))
	case domain.SortVolume:
		return parseDecimal(a.Volume).Cmp(parseDecimal(b.Volume))
	}
	return 0
}

// parseDecimal treats unparseable values as zero, matching how the table
// renders them.
func parseDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
