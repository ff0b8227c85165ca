package networth

// IncomeProjection summarises the passive income the currently held
// positions are expected to produce.
type IncomeProjection struct {
	Monthly float64            `json:"monthly"`
	Annual  float64            `json:"annual"`
	ByAsset map[string]float64 `json:"byAsset"` // annual income keyed by asset ID
}

// ProjectIncome derives the expected dividend/rental/interest income from
// the income schedules of all assets held as of today. Assets with no
// schedule, or with a net position of zero, contribute nothing.
func ProjectIncome(txs []Transaction, defs []*AssetDefinition) IncomeProjection {
	proj := IncomeProjection{ByAsset: make(map[string]float64)}
	positions := PositionsAsOf(txs, Today())

	for _, def := range defs {
		if def.Income.Kind == IncomeNone || def.Income.PeriodsPerYear <= 0 {
			continue
		}
		qty, ok := positions[def.ID]
		if !ok || !qty.IsPositive() {
			continue
		}
		annual := qty.MulPrice(def.Income.AmountPerUnit) * float64(def.Income.PeriodsPerYear)
		proj.ByAsset[def.ID] = annual
		proj.Annual += annual
	}
	proj.Monthly = proj.Annual / 12
	return proj
}

// NetWorth is the total portfolio value less all liability balances.
func NetWorth(portfolioValue float64, liabilities []Liability) float64 {
	worth := portfolioValue
	for _, l := range liabilities {
		worth -= l.Balance
	}
	return worth
}
