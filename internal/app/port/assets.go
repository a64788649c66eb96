package port

import "portfolio_tracker/internal/domain/entity"

// AssetRegistry provides precision and display metadata by asset
// identifier.
type AssetRegistry interface {
	// Get returns the metadata record of an asset.
	Get(assetID entity.AssetID) (entity.AssetInfo, bool)

	// AssetsForChain returns every registered asset of one chain.
	AssetsForChain(chainID entity.ChainID) []entity.AssetInfo

	// Ready is closed once the registry's data has been loaded. Fetch cycles
	// wait on it before publishing results, so valuation never runs against
	// half-loaded metadata.
	Ready() <-chan struct{}
}
