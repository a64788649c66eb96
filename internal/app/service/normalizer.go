package service

import (
	"fmt"
	"sort"

	"portfolio_tracker/internal/domain/entity"
	"portfolio_tracker/internal/pkg/moneyutil"
)

// AccountsToPortfolio reduces raw per-chain account records into the
// unified portfolio index. It is pure and deterministic: accounts are
// processed in sorted key order, so the same input always yields a
// structurally equal portfolio.
//
// Accounts whose chain kind cannot be decoded are skipped and reported as
// typed errors instead of vanishing silently. Every asset identifier added
// to an account's list also receives a balance entry, zero when the chain
// reported none.
func AccountsToPortfolio(accounts map[entity.AccountID]entity.ChainAccount) (entity.Portfolio, []entity.AccountFetchError) {
	portfolio := entity.NewPortfolio()
	var errs []entity.AccountFetchError

	ids := make([]entity.AccountID, 0, len(accounts))
	for id := range accounts {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, accountID := range ids {
		account := accounts[accountID]

		kind, err := entity.DecodeChainKind(account.ChainID)
		if err != nil {
			errs = append(errs, entity.AccountFetchError{
				ChainID:   account.ChainID,
				PubKey:    account.PubKey,
				AccountID: accountID,
				Message:   err.Error(),
			})
			continue
		}

		switch kind {
		case entity.KindAccountBased:
			if err := reduceAccountBased(&portfolio, accountID, account); err != nil {
				errs = append(errs, entity.AccountFetchError{
					ChainID:   account.ChainID,
					PubKey:    account.PubKey,
					AccountID: accountID,
					Message:   err.Error(),
				})
			}
		case entity.KindUTXO:
			if err := reduceUTXO(&portfolio, accountID, account); err != nil {
				errs = append(errs, entity.AccountFetchError{
					ChainID:   account.ChainID,
					PubKey:    account.PubKey,
					AccountID: accountID,
					Message:   err.Error(),
				})
			}
		default:
			errs = append(errs, entity.AccountFetchError{
				ChainID:   account.ChainID,
				PubKey:    account.PubKey,
				AccountID: accountID,
				Message:   fmt.Sprintf("chain kind %s: %v", kind, entity.ErrUnknownChainKind),
			})
		}
	}

	return portfolio, errs
}

// reduceAccountBased records the native balance plus one entry per held
// token. Token asset identifiers are derived from the contract address,
// case-normalised inside ToAssetID.
func reduceAccountBased(p *entity.Portfolio, accountID entity.AccountID, account entity.ChainAccount) error {
	nativeAssetID, err := entity.NativeAssetID(account.ChainID)
	if err != nil {
		return fmt.Errorf("resolve native asset: %w", err)
	}

	p.UpsertBalance(nativeAssetID, account.Balance, sumBalances)
	p.AddAccountAsset(accountID, nativeAssetID)

	for _, token := range account.Tokens {
		assetID := entity.ToAssetID(account.ChainID, entity.AssetNamespaceERC20, token.Contract)
		p.UpsertBalance(assetID, token.Balance, sumBalances)
		p.AddAccountAsset(accountID, assetID)
	}
	return nil
}

// reduceUTXO folds the balances of all derived addresses into one integer
// total for the account's native asset. Absent or invalid address balances
// count as zero; an account with no addresses yields a zero balance.
func reduceUTXO(p *entity.Portfolio, accountID entity.AccountID, account entity.ChainAccount) error {
	assetID, err := entity.NativeAssetID(account.ChainID)
	if err != nil {
		return fmt.Errorf("resolve native asset: %w", err)
	}

	balances := make([]string, 0, len(account.Addresses))
	for _, addr := range account.Addresses {
		balances = append(balances, addr.Balance)
	}

	p.UpsertBalance(assetID, moneyutil.SumBaseUnits(balances), sumBalances)
	p.AddAccountAsset(accountID, assetID)
	return nil
}

// sumBalances aggregates base-unit balances when several accounts hold the
// same asset.
func sumBalances(existing, delta string) string {
	return moneyutil.SumBaseUnits([]string{existing, delta})
}
