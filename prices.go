package networth

import "math"

// validPrice reports whether p is usable: a finite number strictly above zero.
func validPrice(p float64) bool {
	return p > 0 && !math.IsNaN(p) && !math.IsInf(p, 0)
}

// ResolvePrice returns the best-known price for the asset on a given day.
//
// The fallback order is:
//  1. the latest price history entry at or before the day, if its price is valid;
//  2. the asset's current price, when the day is today;
//  3. the asset's current price unconditionally, as a logged last resort.
//
// Step 3 means a past date with no historical match can resolve to the live
// price, which may be arbitrarily far in the future relative to the queried
// day. That asymmetry is intentional, matching how the app has always
// valued assets that predate their price history; don't "fix" it here.
//
// When nothing is usable the resolver returns 0 and logs at error level.
// Callers must treat 0 as "no value contribution", not "asset is worthless".
func ResolvePrice(def *AssetDefinition, on Date) float64 {
	if entry, ok := def.prices.ValueAsOf(on); ok && validPrice(entry.Price) {
		return entry.Price
	}

	if validPrice(def.CurrentPrice) {
		if on == Today() {
			return def.CurrentPrice
		}
		Log.Warn().
			Str("asset", def.Ticker).
			Str("date", on.String()).
			Msg("no historical price at or before date, falling back to current price")
		return def.CurrentPrice
	}

	Log.Error().
		Str("asset", def.Ticker).
		Str("date", on.String()).
		Msg("unresolvable price, asset contributes no value on this date")
	return 0
}
