package networth

import (
	"fmt"

	"github.com/google/uuid"
)

// TransactionType is the kind of ledger event: a buy or a sell.
type TransactionType string

const (
	Buy  TransactionType = "buy"
	Sell TransactionType = "sell"
)

// Transaction records one buy or sell event against an asset definition.
//
// A buy takes effect on its purchase date. A sell takes effect on its sale
// date when one is recorded, otherwise on its purchase date; same rule for
// the quantity. Once historical snapshots have been computed from a
// transaction, editing it requires a recompute (see Refresher).
type Transaction struct {
	ID      string          `json:"id"`
	AssetID string          `json:"assetId"`
	Type    TransactionType `json:"type"`

	PurchaseDate     Date     `json:"purchaseDate"`
	PurchasePrice    float64  `json:"purchasePrice"`
	PurchaseQuantity Quantity `json:"purchaseQuantity"`

	SaleDate     Date     `json:"saleDate,omitzero"`
	SalePrice    float64  `json:"salePrice,omitempty"`
	SaleQuantity Quantity `json:"saleQuantity,omitzero"`

	// Value is price × quantity adjusted for costs, recorded at entry time.
	Value float64 `json:"value,omitempty"`
	Costs float64 `json:"costs,omitempty"`
	Notes string  `json:"notes,omitempty"`
}

// NewBuy records a purchase of quantity units at the given unit price.
func NewBuy(assetID string, on Date, price float64, quantity Quantity, costs float64) Transaction {
	return Transaction{
		ID:               uuid.NewString(),
		AssetID:          assetID,
		Type:             Buy,
		PurchaseDate:     on,
		PurchasePrice:    price,
		PurchaseQuantity: quantity,
		Costs:            costs,
		Value:            quantity.MulPrice(price) + costs,
	}
}

// NewSell records a disposal of quantity units at the given unit price.
func NewSell(assetID string, on Date, price float64, quantity Quantity, costs float64) Transaction {
	return Transaction{
		ID:           uuid.NewString(),
		AssetID:      assetID,
		Type:         Sell,
		PurchaseDate: on,
		SaleDate:     on,
		SalePrice:    price,
		SaleQuantity: quantity,
		Costs:        costs,
		Value:        quantity.MulPrice(price) - costs,
	}
}

// EffectiveDate returns the date on which the transaction changes the position.
func (t Transaction) EffectiveDate() Date {
	if t.Type == Sell && !t.SaleDate.IsZero() {
		return t.SaleDate
	}
	return t.PurchaseDate
}

// EffectiveQuantity returns the number of units the transaction moves.
func (t Transaction) EffectiveQuantity() Quantity {
	if t.Type == Sell && !t.SaleQuantity.IsZero() {
		return t.SaleQuantity
	}
	return t.PurchaseQuantity
}

// Validate checks a transaction for correctness.
func (t Transaction) Validate() error {
	switch t.Type {
	case Buy, Sell:
	default:
		return fmt.Errorf("transaction %s: unknown type %q", t.ID, t.Type)
	}
	if t.AssetID == "" {
		return fmt.Errorf("transaction %s: missing asset reference", t.ID)
	}
	if t.EffectiveDate().IsZero() {
		return fmt.Errorf("transaction %s: missing date", t.ID)
	}
	if !t.EffectiveQuantity().IsPositive() {
		return fmt.Errorf("transaction %s: quantity must be > 0, got %s", t.ID, t.EffectiveQuantity())
	}
	return nil
}
