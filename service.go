package networth

import "fmt"

// This file is the facade the rest of the application calls. Its contract
// is "never throw to the caller": any failure inside the computation core
// is logged and converted into an empty result, so UI-adjacent code renders
// "no portfolio history available" instead of crashing.

// CalculatePortfolioHistory replays transactions into a daily value series
// over the full horizon. On any internal failure it returns an empty series.
func CalculatePortfolioHistory(txs []Transaction, defs []*AssetDefinition) (history []HistoryPoint) {
	defer recoverToEmpty("CalculatePortfolioHistory", &history)
	return ComputeHistory(txs, defs)
}

// CalculatePortfolioHistoryForDays is the day-bounded variant of
// CalculatePortfolioHistory, with the same safe-fallback contract.
func CalculatePortfolioHistoryForDays(txs []Transaction, defs []*AssetDefinition, daysBack int) (history []HistoryPoint) {
	defer recoverToEmpty("CalculatePortfolioHistoryForDays", &history)
	return ComputeHistoryForDays(txs, defs, daysBack)
}

// CalculatePortfolioHistoryForRange replays over a named preset; an unknown
// preset yields an empty series, not an error.
func CalculatePortfolioHistoryForRange(txs []Transaction, defs []*AssetDefinition, r TimeRange) (history []HistoryPoint) {
	defer recoverToEmpty("CalculatePortfolioHistoryForRange", &history)
	h, err := ComputeHistoryForRange(txs, defs, r)
	if err != nil {
		Log.Error().Err(err).Msg("portfolio history range rejected, returning empty history")
		return []HistoryPoint{}
	}
	return h
}

// CalculatePerformanceMetrics derives metrics from a series; empty input
// yields all-zero metrics.
func CalculatePerformanceMetrics(history []HistoryPoint, totalInvestment float64) PerformanceMetrics {
	return ComputeMetrics(history, totalInvestment)
}

// recoverToEmpty converts a panic in the replay path into a logged empty
// result, honoring the facade's no-throw contract.
func recoverToEmpty(op string, history *[]HistoryPoint) {
	if r := recover(); r != nil {
		Log.Error().Str("op", op).Str("panic", fmt.Sprint(r)).Msg("portfolio history computation failed, returning empty history")
		*history = []HistoryPoint{}
	}
}
