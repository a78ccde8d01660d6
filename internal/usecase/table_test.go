package usecase

import (
	"fmt"
	"strings"
	"testing"

	"github.com/vitos/crypto_market_view/internal/domain"
)

func listingFixture() []domain.CoinSummary {
	return []domain.CoinSummary{
		{Symbol: "BTC", Name: "Bitcoin", LastPrice: "67000.5", PriceChangePercent: "1.20", Volume: "35000000000"},
		{Symbol: "ETH", Name: "Ethereum", LastPrice: "3200.1", PriceChangePercent: "-0.50", Volume: "18000000000"},
		{Symbol: "SOL", Name: "Solana", LastPrice: "150.25", PriceChangePercent: "3.10", Volume: "4000000000"},
		{Symbol: "DOGE", Name: "Dogecoin", LastPrice: "0.12", PriceChangePercent: "-2.00", Volume: "900000000"},
		{Symbol: "BCH", Name: "Bitcoin Cash", LastPrice: "450", PriceChangePercent: "0.00", Volume: "300000000"},
	}
}

func TestTableView_SearchFiltersSymbolOrName(t *testing.T) {
	table := NewTableView(listingFixture())
	table.SetSearch("bit")

	rows := table.VisibleRows()
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	for _, row := range rows {
		sym := strings.ToLower(row.Symbol)
		name := strings.ToLower(row.Name)
		if !strings.Contains(sym, "bit") && !strings.Contains(name, "bit") {
			t.Errorf("row %s/%s does not match term", row.Symbol, row.Name)
		}
	}
}

func TestTableView_SearchResetsPage(t *testing.T) {
	rows := make([]domain.CoinSummary, 40)
	for i := range rows {
		rows[i] = domain.CoinSummary{Symbol: fmt.Sprintf("C%02d", i), Name: fmt.Sprintf("Coin %d", i)}
	}
	table := NewTableView(rows)

	table.SetPage(3)
	if table.Page() != 3 {
		t.Fatalf("expected page 3, got %d", table.Page())
	}

	table.SetSearch("C0")
	if table.Page() != 1 {
		t.Errorf("search must reset page to 1, got %d", table.Page())
	}
}

func TestTableView_SortToggleAndReset(t *testing.T) {
	table := NewTableView(listingFixture())

	table.SetSort(domain.SortPrice)
	col, dir := table.SortState()
	if col != domain.SortPrice || dir != domain.SortAsc {
		t.Fatalf("new column must start ascending, got col=%v dir=%v", col, dir)
	}

	table.SetSort(domain.SortPrice)
	if _, dir = table.SortState(); dir != domain.SortDesc {
		t.Errorf("same column must toggle to descending")
	}

	table.SetSort(domain.SortPrice)
	if _, dir = table.SortState(); dir != domain.SortAsc {
		t.Errorf("same column must toggle back to ascending")
	}

	table.SetSort(domain.SortName)
	col, dir = table.SortState()
	if col != domain.SortName || dir != domain.SortAsc {
		t.Errorf("switching column must reset to ascending, got col=%v dir=%v", col, dir)
	}
}

func TestTableView_NumericSortParsesDecimalStrings(t *testing.T) {
	table := NewTableView(listingFixture())
	table.SetSort(domain.SortPrice)

	rows := table.VisibleRows()
	want := []string{"DOGE", "SOL", "BCH", "ETH", "BTC"}
	for i, sym := range want {
		if rows[i].Symbol != sym {
			t.Fatalf("ascending price order: expected %v, got %v at %d", sym, rows[i].Symbol, i)
		}
	}
}

func TestTableView_UnparseablePriceSortsAsZero(t *testing.T) {
	rows := []domain.CoinSummary{
		{Symbol: "A", Name: "A", LastPrice: "10"},
		{Symbol: "B", Name: "B", LastPrice: "garbage"},
		{Symbol: "C", Name: "C", LastPrice: "-5"},
	}
	table := NewTableView(rows)
	table.SetSort(domain.SortPrice)

	got := table.VisibleRows()
	want := []string{"C", "B", "A"}
	for i, sym := range want {
		if got[i].Symbol != sym {
			t.Fatalf("expected order %v, got %s at %d", want, got[i].Symbol, i)
		}
	}
}

func TestTableView_PaginationPartitionsRows(t *testing.T) {
	const k = 47
	rows := make([]domain.CoinSummary, k)
	for i := range rows {
		rows[i] = domain.CoinSummary{Symbol: fmt.Sprintf("C%02d", i), Name: fmt.Sprintf("Coin %d", i)}
	}
	table := NewTableView(rows)

	wantPages := (k + domain.PageSize - 1) / domain.PageSize
	if table.TotalPages() != wantPages {
		t.Fatalf("expected %d pages, got %d", wantPages, table.TotalPages())
	}

	var collected []string
	for p := 1; p <= table.TotalPages(); p++ {
		table.SetPage(p)
		for _, row := range table.VisibleRows() {
			collected = append(collected, row.Symbol)
		}
	}

	if len(collected) != k {
		t.Fatalf("pages must partition all rows: got %d of %d", len(collected), k)
	}
	seen := make(map[string]bool)
	for i, sym := range collected {
		if seen[sym] {
			t.Fatalf("row %s appears twice", sym)
		}
		seen[sym] = true
		if sym != rows[i].Symbol {
			t.Fatalf("page concatenation must preserve order: index %d got %s", i, sym)
		}
	}
}

func TestTableView_SetPageClamps(t *testing.T) {
	table := NewTableView(listingFixture()) // 5 rows, 1 page

	table.SetPage(99)
	if table.Page() != 1 {
		t.Errorf("page must clamp to last page, got %d", table.Page())
	}
	table.SetPage(-3)
	if table.Page() != 1 {
		t.Errorf("page must clamp to 1, got %d", table.Page())
	}
}

func TestTableView_PageNumbers(t *testing.T) {
	rows := make([]domain.CoinSummary, 10*domain.PageSize)
	for i := range rows {
		rows[i] = domain.CoinSummary{Symbol: fmt.Sprintf("C%03d", i)}
	}
	table := NewTableView(rows)

	table.SetPage(5)
	got := table.PageNumbers()
	want := []string{"1", "...", "4", "5", "6", "...", "10"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}

	table.SetPage(1)
	got = table.PageNumbers()
	want = []string{"1", "2", "...", "10"}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("page 1: expected %v, got %v", want, got)
	}

	table.SetPage(10)
	got = table.PageNumbers()
	want = []string{"1", "...", "9", "10"}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("page 10: expected %v, got %v", want, got)
	}
}

func TestTableView_FewPagesShownInFull(t *testing.T) {
	rows := make([]domain.CoinSummary, 4*domain.PageSize)
	for i := range rows {
		rows[i] = domain.CoinSummary{Symbol: fmt.Sprintf("C%03d", i)}
	}
	table := NewTableView(rows)

	got := table.PageNumbers()
	want := []string{"1", "2", "3", "4"}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestTableView_DefaultOrderIsInputOrder(t *testing.T) {
	table := NewTableView(listingFixture())

	rows := table.VisibleRows()
	want := []string{"BTC", "ETH", "SOL", "DOGE", "BCH"}
	for i, sym := range want {
		if rows[i].Symbol != sym {
			t.Fatalf("no-sort view must keep provider order, got %s at %d", rows[i].Symbol, i)
		}
	}
}
