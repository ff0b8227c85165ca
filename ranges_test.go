package networth

import "testing"

func TestTimeRange_DaysBack(t *testing.T) {
	tests := []struct {
		r    TimeRange
		want int
	}{
		{Week, 7},
		{Month, 30},
		{Quarter, 90},
		{HalfYear, 180},
		{Year, 365},
		{TwoYears, 730},
		{FiveYears, 1825},
	}
	for _, tt := range tests {
		got, err := tt.r.DaysBack()
		if err != nil || got != tt.want {
			t.Errorf("%s.DaysBack() = %d, %v; want %d", tt.r, got, err, tt.want)
		}
	}
	if _, err := TimeRange("9Z").DaysBack(); err == nil {
		t.Errorf("unknown range must error")
	}
}

func TestParseTimeRange(t *testing.T) {
	if r, err := ParseTimeRange("1M"); err != nil || r != Month {
		t.Errorf("ParseTimeRange(1M) = %v, %v", r, err)
	}
	if _, err := ParseTimeRange("1m"); err == nil {
		t.Errorf("range names are case sensitive")
	}
}

func TestComputeHistoryForRange(t *testing.T) {
	defs := []*AssetDefinition{fixedPriceAsset("a", 10)}
	txs := []Transaction{NewBuy("a", Today().Add(-60), 10, Q(1), 0)}

	history, err := ComputeHistoryForRange(txs, defs, Week)
	if err != nil {
		t.Fatal(err)
	}
	if len(history) != 7 {
		t.Errorf("1W history has %d points, want 7", len(history))
	}

	if _, err := ComputeHistoryForRange(txs, defs, TimeRange("bogus")); err == nil {
		t.Errorf("unknown range must error")
	}
}
