package networth

// AssetType classifies an asset definition.
type AssetType string

const (
	Stock      AssetType = "stock"
	Bond       AssetType = "bond"
	RealEstate AssetType = "real_estate"
	Crypto     AssetType = "crypto"
	Cash       AssetType = "cash"
	Other      AssetType = "other"
)

// PriceSource tags where a price history entry came from. The source never
// affects which entry the resolver picks, only how it is displayed.
type PriceSource string

const (
	SourceManual PriceSource = "manual"
	SourceAPI    PriceSource = "api"
	SourceImport PriceSource = "import"
)

// PricePoint is one entry of an asset's price history.
type PricePoint struct {
	Price  float64     `json:"price"`
	Source PriceSource `json:"source,omitempty"`
}

// IncomeKind classifies the recurring income an asset produces.
type IncomeKind string

const (
	IncomeNone     IncomeKind = ""
	IncomeDividend IncomeKind = "dividend"
	IncomeRent     IncomeKind = "rent"
	IncomeInterest IncomeKind = "interest"
)

// IncomeSchedule describes the recurring income of one unit of an asset:
// a dividend per share, a monthly rent, a bond coupon.
type IncomeSchedule struct {
	Kind           IncomeKind `json:"kind,omitempty"`
	AmountPerUnit  float64    `json:"amountPerUnit,omitempty"` // paid per unit held, each period
	PeriodsPerYear int        `json:"periodsPerYear,omitempty"`
}

// AssetDefinition is the master data for a tradable or ownable thing.
// It is referenced, not owned, by many transactions. The price history is
// sparse: the most recent entry at-or-before a queried date is authoritative.
type AssetDefinition struct {
	ID           string
	Ticker       string
	Name         string
	Type         AssetType
	Currency     string
	CurrentPrice float64
	Income       IncomeSchedule

	prices History[PricePoint]
}

// AddPrice appends a price entry to the asset's history. An entry already
// recorded for that date is overwritten.
func (a *AssetDefinition) AddPrice(on Date, price float64, source PriceSource) {
	a.prices.Append(on, PricePoint{Price: price, Source: source})
}

// PriceHistory returns the asset's price history.
func (a *AssetDefinition) PriceHistory() *History[PricePoint] { return &a.prices }
