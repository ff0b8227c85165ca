package networth

// ChartPoint is a history point shaped for plotting: raw value for the
// curve, formatted strings for tooltips and axes.
type ChartPoint struct {
	Date            string        `json:"date"`
	Value           float64       `json:"value"`
	FormattedValue  string        `json:"formattedValue"`
	FormattedDate   string        `json:"formattedDate"`
	HasTransactions bool          `json:"hasTransactions"`
	Transactions    []Transaction `json:"transactions,omitempty"`
}

const chartDateFormat = "Jan 2, 2006"

// FormatForChart converts a history series into chart points, formatting
// values in the given reporting currency.
func FormatForChart(history []HistoryPoint, currency string) []ChartPoint {
	points := make([]ChartPoint, 0, len(history))
	for _, p := range history {
		points = append(points, ChartPoint{
			Date:            p.Date.String(),
			Value:           p.Value,
			FormattedValue:  M(p.Value, currency).String(),
			FormattedDate:   p.Date.time().Format(chartDateFormat),
			HasTransactions: len(p.Transactions) > 0,
			Transactions:    p.Transactions,
		})
	}
	return points
}
