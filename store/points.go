// Package store persists portfolio history in a versioned local key-value
// database (BadgerDB via badgerhold). It owns two logical tables: daily
// snapshots keyed by date and intraday points keyed by timestamp.
package store

// TransactionRef annotates a daily point with the transactions that took
// effect on that date. It is a reference, not the transaction of record:
// the primary entity store owns those.
type TransactionRef struct {
	ID       string  `json:"id"`
	Type     string  `json:"type"`
	AssetID  string  `json:"assetId"`
	Quantity float64 `json:"quantity"`
}

// DailyPoint is one row of the portfolioHistory table: the total portfolio
// value at the end of a calendar day. The date string (YYYY-MM-DD) is the
// primary key; the value carries a secondary index.
type DailyPoint struct {
	Date         string           `badgerhold:"key" json:"date"`
	Value        float64          `badgerholdIndex:"Value" json:"value"`
	Transactions []TransactionRef `json:"transactions,omitempty"`
}

// IntradayPoint is one row of the portfolioIntradayData table: a
// finer-grained value sample. The full timestamp (RFC 3339) is the primary
// key so multiple points per day coexist; the date field carries a
// secondary index for range queries. An index on the timestamp itself is
// unnecessary since the key already orders by it.
type IntradayPoint struct {
	Timestamp     string  `badgerhold:"key" json:"timestamp"`
	Date          string  `badgerholdIndex:"Date" json:"date"`
	Value         float64 `json:"value"`
	Performance   float64 `json:"performance,omitempty"`
	Change        float64 `json:"change,omitempty"`
	ChangePercent float64 `json:"changePercent,omitempty"`
}

// intradayEntry is the deprecated pre-v2 intraday row shape. It only
// exists so the v2 migration can find and destroy leftover rows; nothing
// writes it anymore.
type intradayEntry struct {
	Timestamp string `badgerhold:"key"`
	Value     float64
}
