package networth

import (
	"bytes"
	"strings"
	"testing"
)

func TestImportAssets(t *testing.T) {
	input := `{"id":"a1","ticker":"ZZZ","type":"stock","currency":"EUR","currentPrice":10.5,"history":{"2024-01-02":9.8},"sources":{"2024-01-02":"manual"}}

{"id":"a2","ticker":"AAA","type":"real_estate","currency":"EUR","income":{"kind":"rent","amountPerUnit":800,"periodsPerYear":12}}
`
	defs, err := ImportAssets(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	if len(defs) != 2 {
		t.Fatalf("got %d assets, want 2", len(defs))
	}
	// Sorted by ticker.
	if defs[0].Ticker != "AAA" || defs[1].Ticker != "ZZZ" {
		t.Errorf("assets not sorted by ticker: %s, %s", defs[0].Ticker, defs[1].Ticker)
	}

	zzz := defs[1]
	if zzz.CurrentPrice != 10.5 {
		t.Errorf("CurrentPrice = %v", zzz.CurrentPrice)
	}
	entry, ok := zzz.PriceHistory().Get(MustParseDate("2024-01-02"))
	if !ok || entry.Price != 9.8 || entry.Source != SourceManual {
		t.Errorf("price entry = %+v, %v", entry, ok)
	}

	aaa := defs[0]
	if aaa.Income.Kind != IncomeRent || aaa.Income.AmountPerUnit != 800 {
		t.Errorf("income schedule = %+v", aaa.Income)
	}
}

func TestImportAssets_badLine(t *testing.T) {
	if _, err := ImportAssets(strings.NewReader("{broken")); err == nil {
		t.Errorf("malformed line must error")
	}
}

func TestAssets_roundTrip(t *testing.T) {
	def := &AssetDefinition{ID: "a1", Ticker: "ETF", Name: "World ETF", Type: Stock, Currency: "USD", CurrentPrice: 101.5}
	def.AddPrice(MustParseDate("2024-02-01"), 99, SourceAPI)
	def.Income = IncomeSchedule{Kind: IncomeDividend, AmountPerUnit: 0.3, PeriodsPerYear: 4}

	var buf bytes.Buffer
	if err := ExportAssets(&buf, []*AssetDefinition{def}); err != nil {
		t.Fatal(err)
	}
	back, err := ImportAssets(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(back) != 1 {
		t.Fatalf("got %d assets, want 1", len(back))
	}
	got := back[0]
	if got.ID != def.ID || got.Ticker != def.Ticker || got.CurrentPrice != def.CurrentPrice {
		t.Errorf("master data lost: %+v", got)
	}
	if got.Income != def.Income {
		t.Errorf("income schedule lost: %+v", got.Income)
	}
	entry, ok := got.PriceHistory().Get(MustParseDate("2024-02-01"))
	if !ok || entry.Price != 99 || entry.Source != SourceAPI {
		t.Errorf("price history lost: %+v, %v", entry, ok)
	}
}

func TestTransactions_roundTrip(t *testing.T) {
	txs := []Transaction{
		NewSell("a1", MustParseDate("2024-03-01"), 12, Q(2), 1),
		NewBuy("a1", MustParseDate("2024-01-01"), 10, Q(5), 1.5),
	}

	var buf bytes.Buffer
	if err := ExportTransactions(&buf, txs); err != nil {
		t.Fatal(err)
	}
	back, err := ImportTransactions(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(back) != 2 {
		t.Fatalf("got %d transactions, want 2", len(back))
	}
	// Import sorts by effective date, so the buy comes first.
	if back[0].Type != Buy || back[1].Type != Sell {
		t.Errorf("transactions not sorted by effective date")
	}
	if back[0].ID != txs[1].ID {
		t.Errorf("transaction identity lost")
	}
	if !back[1].EffectiveQuantity().Equal(Q(2)) {
		t.Errorf("sell quantity lost: %s", back[1].EffectiveQuantity())
	}
}

func TestImportTransactions_rejectsInvalid(t *testing.T) {
	input := `{"id":"t1","assetId":"a1","type":"buy","purchaseDate":"2024-01-01","purchaseQuantity":0}`
	if _, err := ImportTransactions(strings.NewReader(input)); err == nil {
		t.Errorf("invalid transaction must be rejected at import")
	}
}
