package networth

// Secondary entity kinds owned by the primary entity store. The refresh
// orchestrator re-fetches them alongside transactions and asset definitions
// so that derived caches are rebuilt from fresh data.

// Category groups transactions or expenses for display.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Liability is a debt position counted against net worth.
type Liability struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Balance float64 `json:"balance"`
}

// Expense is a recurring monthly outflow.
type Expense struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Monthly float64 `json:"monthly"`
}

// IncomeSource is a recurring monthly inflow outside the portfolio.
type IncomeSource struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Monthly float64 `json:"monthly"`
}
