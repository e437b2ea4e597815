// Package folio implements a position-accounting ledger for a single stock
// portfolio. It converts a stream of buy and sell transactions into per-symbol
// holdings carrying a weighted average cost basis, accumulates realized
// profit-and-loss, and evaluates unrealized profit-and-loss against prices
// supplied by an external market-data source.
//
// The core functionalities are:
//   - Transactions: immutable buy/sell records, validated before they can
//     touch any state.
//   - Holdings: per-symbol quantity and average cost, updated by a pure
//     application rule (buys recompute the weighted average, sells never do).
//   - Ledger: the aggregate accounting state (holdings, total cost basis,
//     realized PnL) with PnL queries against supplied prices.
//   - Persistence: the full ledger state is saved to a single JSON record
//     after every mutation and restored at process start. A corrupt record is
//     recovered into an empty ledger rather than failing the process.
//   - Quotes: an Alpaca-compatible market-data client supplying current
//     prices, with credentials kept encrypted at rest.
//
// This package is the foundation for the `fol` command-line tool and the
// HTTP API in the server package; both operate on one long-lived
// AccountingSystem instance that serializes every mutate-then-save sequence.
package folio
