package networth

// PerformanceMetrics is derived from a portfolio history series and a
// total-investment baseline. It is never persisted.
type PerformanceMetrics struct {
	TotalReturn           float64 `json:"totalReturn"`
	TotalReturnPercentage Percent `json:"totalReturnPercentage"`
	StartValue            float64 `json:"startValue"`
	EndValue              float64 `json:"endValue"`
	PeakValue             float64 `json:"peakValue"`
	LowestValue           float64 `json:"lowestValue"`
}

// ComputeMetrics derives return and peak/trough statistics from a history
// series. An empty series yields all-zero metrics rather than NaN or an
// error, so UI-adjacent callers can render "no data" without guards.
func ComputeMetrics(history []HistoryPoint, totalInvestment float64) PerformanceMetrics {
	if len(history) == 0 {
		return PerformanceMetrics{}
	}

	m := PerformanceMetrics{
		StartValue:  history[0].Value,
		EndValue:    history[len(history)-1].Value,
		PeakValue:   history[0].Value,
		LowestValue: history[0].Value,
	}
	for _, p := range history[1:] {
		if p.Value > m.PeakValue {
			m.PeakValue = p.Value
		}
		if p.Value < m.LowestValue {
			m.LowestValue = p.Value
		}
	}

	m.TotalReturn = m.EndValue - totalInvestment
	if totalInvestment > 0 {
		m.TotalReturnPercentage = Percent(m.TotalReturn / totalInvestment * 100)
	}
	return m
}
