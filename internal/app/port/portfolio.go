package port

import (
	"context"

	"portfolio_tracker/internal/domain/entity"
)

// PortfolioService orchestrates concurrent per-chain account fetches and
// maintains the stored portfolio.
type PortfolioService interface {
	// FetchPortfolio issues one account fetch per (chain, public key) pair,
	// waits for every request to settle, normalizes the successful results
	// and atomically replaces the stored portfolio. Per-account failures are
	// returned as typed records next to the data; they never abort sibling
	// requests. An empty input map short-circuits to an empty portfolio
	// without any network call.
	FetchPortfolio(ctx context.Context, keysByChain map[entity.ChainID][]string) (entity.Portfolio, []entity.AccountFetchError)

	// RefetchTracked re-runs FetchPortfolio for the configured tracked keys.
	// Used on explicit refresh and on regained network connectivity.
	RefetchTracked(ctx context.Context) (entity.Portfolio, []entity.AccountFetchError)

	// Current returns the stored portfolio.
	Current() entity.Portfolio

	// Clear resets the stored portfolio to empty and invalidates in-flight
	// fetch cycles. Called on wallet disconnect.
	Clear()
}
