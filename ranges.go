package networth

import "fmt"

// TimeRange is a named preset for "go back N days from today".
type TimeRange string

const (
	Week     TimeRange = "1W"
	Month    TimeRange = "1M"
	Quarter  TimeRange = "3M"
	HalfYear TimeRange = "6M"
	Year     TimeRange = "1Y"
	TwoYears TimeRange = "2Y"
	FiveYears TimeRange = "5Y"
)

var rangeDays = map[TimeRange]int{
	Week:      7,
	Month:     30,
	Quarter:   90,
	HalfYear:  180,
	Year:      365,
	TwoYears:  730,
	FiveYears: 1825,
}

// AllTimeRanges lists every supported preset, shortest first. The refresh
// orchestrator regenerates history for each of these.
func AllTimeRanges() []TimeRange {
	return []TimeRange{Week, Month, Quarter, HalfYear, Year, TwoYears, FiveYears}
}

// DaysBack returns the day count behind the preset.
func (r TimeRange) DaysBack() (int, error) {
	n, ok := rangeDays[r]
	if !ok {
		return 0, fmt.Errorf("unknown time range %q", string(r))
	}
	return n, nil
}

// ParseTimeRange parses a preset name like "1M".
func ParseTimeRange(s string) (TimeRange, error) {
	r := TimeRange(s)
	if _, ok := rangeDays[r]; !ok {
		return "", fmt.Errorf("unknown time range %q", s)
	}
	return r, nil
}

// ComputeHistoryForRange replays the portfolio over a named preset.
func ComputeHistoryForRange(txs []Transaction, defs []*AssetDefinition, r TimeRange) ([]HistoryPoint, error) {
	n, err := r.DaysBack()
	if err != nil {
		return nil, err
	}
	return ComputeHistoryForDays(txs, defs, n), nil
}

// ComputeHistoryForCustomDays replays the portfolio over an arbitrary
// day count ending today.
func ComputeHistoryForCustomDays(txs []Transaction, defs []*AssetDefinition, days int) []HistoryPoint {
	return ComputeHistoryForDays(txs, defs, days)
}
