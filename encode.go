package networth

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"
)

// This file handles the asset and transaction file formats. Both are JSONL:
// human readable, one record per line, easy to diff and merge.

// jasset is the readable JSONL shape of an asset definition. The price
// history is a single object keyed by date; sources are kept in a parallel
// object so histories written by hand stay terse.
type jasset struct {
	ID           string                 `json:"id"`
	Ticker       string                 `json:"ticker"`
	Name         string                 `json:"name,omitempty"`
	Type         AssetType              `json:"type,omitempty"`
	Currency     string                 `json:"currency,omitempty"`
	CurrentPrice float64                `json:"currentPrice,omitempty"`
	History      map[string]float64     `json:"history,omitempty"`
	Sources      map[string]PriceSource `json:"sources,omitempty"`
	Income       *IncomeSchedule        `json:"income,omitempty"`
}

// ImportAssets reads asset definitions from 'r' in the JSONL format: each
// line is one asset whose 'history' property maps dates to prices.
func ImportAssets(r io.Reader) ([]*AssetDefinition, error) {
	var defs []*AssetDefinition
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(strings.TrimSpace(string(line))) == 0 {
			continue
		}
		var ja jasset
		if err := json.Unmarshal(line, &ja); err != nil {
			return nil, fmt.Errorf("cannot parse line for asset import format: %q: %w", string(line), err)
		}

		def := &AssetDefinition{
			ID:           ja.ID,
			Ticker:       ja.Ticker,
			Name:         ja.Name,
			Type:         ja.Type,
			Currency:     ja.Currency,
			CurrentPrice: ja.CurrentPrice,
		}
		if ja.Income != nil {
			def.Income = *ja.Income
		}
		for day, price := range ja.History {
			d, err := ParseDate(day)
			if err != nil {
				return nil, fmt.Errorf("asset %q has invalid history date: %w", ja.Ticker, err)
			}
			source := SourceImport
			if s, ok := ja.Sources[day]; ok {
				source = s
			}
			def.AddPrice(d, price, source)
		}
		defs = append(defs, def)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("cannot read asset import format: %w", err)
	}

	slices.SortFunc(defs, func(a, b *AssetDefinition) int {
		return strings.Compare(a.Ticker, b.Ticker)
	})
	return defs, nil
}

// ExportAssets writes asset definitions to 'w' in the JSONL format.
func ExportAssets(w io.Writer, defs []*AssetDefinition) error {
	for _, def := range defs {
		ja := jasset{
			ID:           def.ID,
			Ticker:       def.Ticker,
			Name:         def.Name,
			Type:         def.Type,
			Currency:     def.Currency,
			CurrentPrice: def.CurrentPrice,
		}
		if def.Income.Kind != IncomeNone {
			income := def.Income
			ja.Income = &income
		}
		if def.prices.Len() > 0 {
			ja.History = make(map[string]float64)
			ja.Sources = make(map[string]PriceSource)
			for day, entry := range def.prices.Values() {
				ja.History[day.String()] = entry.Price
				if entry.Source != "" {
					ja.Sources[day.String()] = entry.Source
				}
			}
		}

		data, err := json.Marshal(ja)
		if err != nil {
			return fmt.Errorf("cannot marshal asset %q: %w", def.Ticker, err)
		}
		if _, err := w.Write(append(data, '\n')); err != nil {
			return fmt.Errorf("cannot write asset format: %w", err)
		}
	}
	return nil
}

// ImportTransactions reads transactions from 'r': one JSON transaction per
// line. Every transaction is validated before any are returned.
func ImportTransactions(r io.Reader) ([]Transaction, error) {
	var txs []Transaction
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(strings.TrimSpace(string(line))) == 0 {
			continue
		}
		var tx Transaction
		if err := json.Unmarshal(line, &tx); err != nil {
			return nil, fmt.Errorf("cannot parse line for transaction import format: %q: %w", string(line), err)
		}
		if err := tx.Validate(); err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("cannot read transaction import format: %w", err)
	}

	slices.SortStableFunc(txs, func(a, b Transaction) int {
		return strings.Compare(a.EffectiveDate().String(), b.EffectiveDate().String())
	})
	return txs, nil
}

// ExportTransactions writes transactions to 'w', one per line.
func ExportTransactions(w io.Writer, txs []Transaction) error {
	for _, tx := range txs {
		data, err := json.Marshal(tx)
		if err != nil {
			return fmt.Errorf("cannot marshal transaction %q: %w", tx.ID, err)
		}
		if _, err := w.Write(append(data, '\n')); err != nil {
			return fmt.Errorf("cannot write transaction format: %w", err)
		}
	}
	return nil
}
