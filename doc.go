// Package networth provides the computation core for a personal finance
// and passive-income tracker. It is designed to be local-first and
// deterministic: given the same transactions and asset definitions, every
// derived series and metric comes out the same.
//
// The core functionalities include:
//   - Price Resolution: valuing an asset on any calendar day from its
//     sparse price history, with an explicit fallback to the live price.
//   - Transaction Replay: folding buy/sell transactions into a dense daily
//     portfolio value series over any horizon.
//   - Time-Range Aggregation: named presets (1W through 5Y) and custom day
//     counts, all meaning "go back N days from today".
//   - Performance Metrics: return, peak and trough statistics derived from
//     a replayed series against an invested-capital baseline.
//   - Income Projection: expected dividend, rental, and interest income
//     from the currently held positions.
//   - Cache Refresh Orchestration: invalidate, re-fetch, recompute, and
//     persist derived data into the history store (see the store package).
//
// This package serves as the foundational logic for the `nwt` command-line
// tool, ensuring that all operations are consistent and based on a single
// source of truth.
package networth
