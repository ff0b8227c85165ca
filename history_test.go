package networth

import (
	"testing"
)

// fixedPriceAsset builds an asset whose price is flat across the whole
// horizon, which makes expected portfolio values trivial to derive.
func fixedPriceAsset(id string, price float64) *AssetDefinition {
	def := &AssetDefinition{ID: id, Ticker: id, Type: Stock, Currency: "EUR", CurrentPrice: price}
	def.AddPrice(Today().Add(-4000), price, SourceManual)
	return def
}

func TestComputeHistory_emptyInputs(t *testing.T) {
	defs := []*AssetDefinition{fixedPriceAsset("a", 10)}
	txs := []Transaction{NewBuy("a", Today(), 10, Q(1), 0)}

	if got := ComputeHistory(nil, defs); len(got) != 0 {
		t.Errorf("no transactions: got %d points, want 0", len(got))
	}
	if got := ComputeHistory(txs, nil); len(got) != 0 {
		t.Errorf("no definitions: got %d points, want 0", len(got))
	}
}

func TestComputeHistory_isDense(t *testing.T) {
	start := Today().Add(-9)
	defs := []*AssetDefinition{fixedPriceAsset("a", 10)}
	txs := []Transaction{NewBuy("a", start, 10, Q(1), 0)}

	history := ComputeHistory(txs, defs)
	if len(history) != 10 {
		t.Fatalf("got %d points, want 10", len(history))
	}
	for i, p := range history {
		if want := start.Add(i); p.Date != want {
			t.Errorf("point %d dated %v, want %v", i, p.Date, want)
		}
	}
	if history[len(history)-1].Date != Today() {
		t.Errorf("series must end today")
	}
}

func TestComputeHistory_replayScenario(t *testing.T) {
	// Day -2: buy 10 @ 5. Day -1: nothing. Day 0: sell 4.
	defs := []*AssetDefinition{fixedPriceAsset("a", 5)}
	txs := []Transaction{
		NewBuy("a", Today().Add(-2), 5, Q(10), 0),
		NewSell("a", Today(), 5, Q(4), 0),
	}

	history := ComputeHistory(txs, defs)
	if len(history) != 3 {
		t.Fatalf("got %d points, want 3", len(history))
	}

	wantValues := []float64{50, 50, 30}
	for i, want := range wantValues {
		if history[i].Value != want {
			t.Errorf("day %d value = %v, want %v", i, history[i].Value, want)
		}
	}

	if len(history[0].Transactions) != 1 {
		t.Errorf("buy day should carry 1 transaction, got %d", len(history[0].Transactions))
	}
	if len(history[1].Transactions) != 0 {
		t.Errorf("quiet day should carry no transactions, got %d", len(history[1].Transactions))
	}
	if len(history[2].Transactions) != 1 {
		t.Errorf("sell day should carry 1 transaction, got %d", len(history[2].Transactions))
	}
}

func TestComputeHistoryForDays_boundsHorizon(t *testing.T) {
	defs := []*AssetDefinition{fixedPriceAsset("a", 2)}
	txs := []Transaction{NewBuy("a", Today().Add(-100), 2, Q(3), 0)}

	history := ComputeHistoryForDays(txs, defs, 7)
	if len(history) != 7 {
		t.Fatalf("got %d points, want 7", len(history))
	}
	// The position predates the window, so it must be warmed up and
	// carried into every point.
	for i, p := range history {
		if p.Value != 6 {
			t.Errorf("point %d value = %v, want 6", i, p.Value)
		}
	}
	if got := ComputeHistoryForDays(txs, defs, 0); len(got) != 0 {
		t.Errorf("daysBack 0: got %d points, want 0", len(got))
	}
}

func TestComputeHistory_unknownAssetSkipped(t *testing.T) {
	defs := []*AssetDefinition{fixedPriceAsset("a", 10)}
	txs := []Transaction{
		NewBuy("a", Today().Add(-1), 10, Q(2), 0),
		NewBuy("ghost", Today().Add(-1), 10, Q(5), 0),
	}

	history := ComputeHistory(txs, defs)
	if len(history) != 2 {
		t.Fatalf("got %d points, want 2", len(history))
	}
	for i, p := range history {
		if p.Value != 20 {
			t.Errorf("point %d value = %v, want 20 (unknown asset must contribute nothing)", i, p.Value)
		}
	}
}

func TestPositionsAsOf(t *testing.T) {
	day := Today().Add(-10)
	txs := []Transaction{
		NewBuy("a", day, 1, Q(10), 0),
		NewSell("a", day.Add(5), 1, Q(4), 0),
		NewBuy("b", day.Add(20), 1, Q(1), 0), // future relative to the query
	}

	positions := PositionsAsOf(txs, day.Add(6))
	if got := positions["a"]; !got.Equal(Q(6)) {
		t.Errorf("position a = %s, want 6", got)
	}
	if _, ok := positions["b"]; ok {
		t.Errorf("future transaction must not contribute to the position")
	}
}

func TestInvestedCapital(t *testing.T) {
	day := Today().Add(-10)
	txs := []Transaction{
		NewBuy("a", day, 10, Q(10), 0),   // +100
		NewSell("a", day.Add(2), 12, Q(4), 0), // -48
	}
	if got := InvestedCapital(txs, Today()); got != 52 {
		t.Errorf("InvestedCapital = %v, want 52", got)
	}
	if got := InvestedCapital(txs, day.Add(1)); got != 100 {
		t.Errorf("InvestedCapital before the sell = %v, want 100", got)
	}
}
