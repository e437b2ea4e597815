package folio

import (
	"context"
	"errors"
)

// ErrPriceSourceUnavailable is returned when current prices cannot be
// obtained at all, because no credentials are configured or because the
// upstream provider failed. PnL queries surface this failure instead of
// silently computing with zero prices.
var ErrPriceSourceUnavailable = errors.New("price source unavailable")

// ErrNoCredentials is returned when no market-data credentials are
// configured. It maps to the unauthorized surface of the PnL operation,
// distinct from an upstream failure.
var ErrNoCredentials = errors.New("no market-data credentials configured")

// PriceSource supplies the current price per symbol on demand. The ledger
// never fetches prices itself; callers fetch first, outside any ledger lock,
// then hand the result to the PnL query.
//
// Implementations return a price for every symbol they can quote and simply
// omit symbols they cannot; they return an error wrapping
// ErrPriceSourceUnavailable (or ErrNoCredentials) when they can quote nothing
// at all.
type PriceSource interface {
	LatestPrices(ctx context.Context, symbols []string) (map[string]Money, error)
}

// PriceSourceFunc adapts a function to the PriceSource interface.
type PriceSourceFunc func(ctx context.Context, symbols []string) (map[string]Money, error)

func (f PriceSourceFunc) LatestPrices(ctx context.Context, symbols []string) (map[string]Money, error) {
	return f(ctx, symbols)
}
