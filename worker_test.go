package networth

import (
	"errors"
	"testing"
)

func TestWorker_Calculate(t *testing.T) {
	w := NewWorker()
	defer w.Close()

	defs := []*AssetDefinition{fixedPriceAsset("a", 10)}
	txs := []Transaction{NewBuy("a", Today().Add(-2), 10, Q(1), 0)}

	history, err := w.Calculate(CalcRequest{
		Type:             CalculateAll,
		Transactions:     txs,
		AssetDefinitions: defs,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(history) != 3 {
		t.Errorf("got %d points, want 3", len(history))
	}

	bounded, err := w.Calculate(CalcRequest{
		Type:             CalculateAll,
		Transactions:     txs,
		AssetDefinitions: defs,
		DaysBack:         2,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(bounded) != 2 {
		t.Errorf("bounded request: got %d points, want 2", len(bounded))
	}
}

func TestWorker_unknownRequestType(t *testing.T) {
	w := NewWorker()
	defer w.Close()

	if _, err := w.Calculate(CalcRequest{Type: "fetchQuotes"}); err == nil {
		t.Errorf("unknown request type must yield an error response")
	}
}

func TestWorker_closed(t *testing.T) {
	w := NewWorker()
	w.Close()

	_, err := w.Calculate(CalcRequest{Type: CalculateAll})
	if !errors.Is(err, ErrWorkerClosed) {
		t.Errorf("Calculate after Close = %v, want ErrWorkerClosed", err)
	}
}
