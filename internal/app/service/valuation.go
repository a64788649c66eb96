package service

import (
	"sync"

	"github.com/shopspring/decimal"

	"portfolio_tracker/internal/app/port"
	"portfolio_tracker/internal/domain/entity"
	"portfolio_tracker/internal/pkg/moneyutil"
)

// ValuationService exposes derived read views over the stored portfolio:
// held asset identifiers, per-asset balances, per-asset fiat values and the
// rounded total. All arithmetic goes through moneyutil's decimals.
type ValuationService struct {
	store  *PortfolioStore
	market port.MarketDataService
	assets port.AssetRegistry
	logger port.Logger

	// Held-asset memo. HeldAssetIDs returns the previously memoized slice
	// as long as the freshly derived identifiers form the same set, so
	// consumers comparing slices see a stable value even when the store was
	// replaced by an equivalent portfolio.
	memoMu   sync.Mutex
	memoHeld []entity.AssetID
}

// NewValuationService creates a new ValuationService over the given store.
func NewValuationService(
	store *PortfolioStore,
	market port.MarketDataService,
	assets port.AssetRegistry,
	l port.Logger,
) *ValuationService {
	return &ValuationService{store: store, market: market, assets: assets, logger: l}
}

// HeldAssetIDs returns all asset identifiers currently holding a balance.
// Memoized by set equality, not slice identity.
func (v *ValuationService) HeldAssetIDs() []entity.AssetID {
	fresh := v.store.Current().Balances.IDs

	v.memoMu.Lock()
	defer v.memoMu.Unlock()
	if sameAssetSet(v.memoHeld, fresh) {
		return v.memoHeld
	}
	held := make([]entity.AssetID, len(fresh))
	copy(held, fresh)
	v.memoHeld = held
	return held
}

// Balance returns the base-unit balance of an asset, "0" when unknown.
func (v *ValuationService) Balance(assetID entity.AssetID) string {
	if balance, ok := v.store.Current().Balances.ByID[assetID]; ok {
		return balance
	}
	return "0"
}

// FiatBalance returns the USD value of one held asset. Unknown price or
// precision degrades to zero, never to an error.
func (v *ValuationService) FiatBalance(assetID entity.AssetID) decimal.Decimal {
	balance, ok := v.store.Current().Balances.ByID[assetID]
	if !ok {
		return decimal.Zero
	}
	info, ok := v.assets.Get(assetID)
	if !ok {
		v.logger.Debug("No metadata for asset, fiat value is zero", "asset", assetID)
		return decimal.Zero
	}
	price, ok := v.market.PriceUSD(assetID)
	if !ok {
		v.logger.Debug("No price for asset, fiat value is zero", "asset", assetID)
		return decimal.Zero
	}
	return moneyutil.FiatValue(balance, info.Precision, price)
}

// TotalFiatBalance returns the exact decimal sum of all per-asset fiat
// values, rounded to 2 decimal places. Assets without price data
// contribute zero.
func (v *ValuationService) TotalFiatBalance() decimal.Decimal {
	total := decimal.Zero
	for _, assetID := range v.store.Current().Balances.IDs {
		total = total.Add(v.FiatBalance(assetID))
	}
	return moneyutil.RoundCents(total)
}

// HeldAssets maps every held asset identifier to its full metadata record.
// Assets without a registry entry are omitted.
func (v *ValuationService) HeldAssets() map[entity.AssetID]entity.AssetInfo {
	held := make(map[entity.AssetID]entity.AssetInfo)
	for _, assetID := range v.store.Current().Balances.IDs {
		if info, ok := v.assets.Get(assetID); ok {
			held[assetID] = info
		}
	}
	return held
}

// sameAssetSet reports set equality of two identifier slices regardless of
// order or container identity.
func sameAssetSet(a, b []entity.AssetID) bool {
	if len(a) != len(b) {
		return false
	}
	if len(a) == 0 {
		return a != nil
	}
	seen := make(map[entity.AssetID]struct{}, len(a))
	for _, id := range a {
		seen[id] = struct{}{}
	}
	if len(seen) != len(b) {
		return false
	}
	for _, id := range b {
		if _, ok := seen[id]; !ok {
			return false
		}
	}
	return true
}
