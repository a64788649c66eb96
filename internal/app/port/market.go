package port

import (
	"context"

	"portfolio_tracker/internal/domain/entity"
)

// MarketDataService provides fiat prices by asset identifier. Prices are
// decimal strings; a missing price reports ok=false and callers substitute
// zero.
type MarketDataService interface {
	// PriceUSD returns the cached USD price of an asset.
	PriceUSD(assetID entity.AssetID) (string, bool)

	// WarmPrices fetches and caches prices for the given assets.
	WarmPrices(ctx context.Context, assetIDs []entity.AssetID) error
}
