package networth

import (
	"slices"
)

// HistoryPoint is one row of the daily portfolio value series: the total
// value of all held positions at the end of that calendar day, plus the
// transactions that took effect on it.
type HistoryPoint struct {
	Date         Date          `json:"date"`
	Value        float64       `json:"value"`
	Transactions []Transaction `json:"transactions,omitempty"`
}

// ComputeHistory replays all transactions into a daily portfolio value
// series, from the earliest purchase date through today.
//
// The series is dense: exactly one point per calendar day across the whole
// horizon, positions carried forward over days with no activity. Days where
// an asset's price cannot be resolved count that asset as contributing no
// value; the day is still emitted.
//
// With no transactions or no asset definitions the result is empty, which
// is not an error.
func ComputeHistory(txs []Transaction, defs []*AssetDefinition) []HistoryPoint {
	start, ok := earliestEffectiveDate(txs)
	if !ok || len(defs) == 0 {
		Log.Info().
			Int("transactions", len(txs)).
			Int("assets", len(defs)).
			Msg("nothing to replay, returning empty portfolio history")
		return []HistoryPoint{}
	}
	return replay(txs, defs, NewRange(start, Today()))
}

// ComputeHistoryForDays is like ComputeHistory but bounded to exactly
// daysBack calendar days ending today.
func ComputeHistoryForDays(txs []Transaction, defs []*AssetDefinition, daysBack int) []HistoryPoint {
	if len(txs) == 0 || len(defs) == 0 || daysBack < 1 {
		Log.Info().
			Int("transactions", len(txs)).
			Int("assets", len(defs)).
			Int("daysBack", daysBack).
			Msg("nothing to replay, returning empty portfolio history")
		return []HistoryPoint{}
	}
	return replay(txs, defs, LastDays(daysBack))
}

// replay walks the horizon one day at a time, applying position events in
// date order and valuing the held positions through the price resolver.
func replay(txs []Transaction, defs []*AssetDefinition, horizon Range) []HistoryPoint {
	byID := make(map[string]*AssetDefinition, len(defs))
	for _, def := range defs {
		byID[def.ID] = def
	}

	// Events sorted by effective date; the walk below consumes them as the
	// day pointer passes them.
	events := slices.Clone(txs)
	slices.SortStableFunc(events, func(a, b Transaction) int {
		switch {
		case a.EffectiveDate().Before(b.EffectiveDate()):
			return -1
		case a.EffectiveDate().After(b.EffectiveDate()):
			return 1
		default:
			return 0
		}
	})

	// Positions held as of the day before the horizon starts.
	positions := make(map[string]Quantity)
	next := 0
	for next < len(events) && events[next].EffectiveDate().Before(horizon.From) {
		applyEvent(positions, events[next])
		next++
	}

	series := make([]HistoryPoint, 0, horizon.Len())
	for day := range horizon.Days() {
		var today []Transaction
		for next < len(events) && events[next].EffectiveDate() == day {
			applyEvent(positions, events[next])
			today = append(today, events[next])
			next++
		}

		var value float64
		for assetID, qty := range positions {
			if qty.IsZero() {
				continue
			}
			def, ok := byID[assetID]
			if !ok {
				Log.Warn().
					Str("asset", assetID).
					Str("date", day.String()).
					Msg("transaction references unknown asset definition, skipping")
				continue
			}
			value += qty.MulPrice(ResolvePrice(def, day))
		}

		series = append(series, HistoryPoint{Date: day, Value: value, Transactions: today})
	}
	return series
}

// applyEvent folds one transaction into the running positions: buys add,
// sells subtract, both in exact quantities.
func applyEvent(positions map[string]Quantity, tx Transaction) {
	switch tx.Type {
	case Buy:
		positions[tx.AssetID] = positions[tx.AssetID].Add(tx.EffectiveQuantity())
	case Sell:
		positions[tx.AssetID] = positions[tx.AssetID].Sub(tx.EffectiveQuantity())
	}
}

// PositionsAsOf computes the net quantity held per asset definition at the
// end of the given day.
func PositionsAsOf(txs []Transaction, day Date) map[string]Quantity {
	positions := make(map[string]Quantity)
	for _, tx := range txs {
		if tx.EffectiveDate().After(day) {
			continue
		}
		applyEvent(positions, tx)
	}
	return positions
}

// InvestedCapital sums the capital committed across all transactions as of
// the given day: buys add their value, sells subtract theirs.
func InvestedCapital(txs []Transaction, day Date) float64 {
	var total float64
	for _, tx := range txs {
		if tx.EffectiveDate().After(day) {
			continue
		}
		switch tx.Type {
		case Buy:
			total += tx.Value
		case Sell:
			total -= tx.Value
		}
	}
	return total
}

// earliestEffectiveDate returns the earliest date any transaction takes effect.
func earliestEffectiveDate(txs []Transaction) (Date, bool) {
	var earliest Date
	for _, tx := range txs {
		on := tx.EffectiveDate()
		if earliest.IsZero() || on.Before(earliest) {
			earliest = on
		}
	}
	return earliest, !earliest.IsZero()
}
