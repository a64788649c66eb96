package service

import (
	"reflect"
	"testing"

	"portfolio_tracker/internal/domain/entity"
)

const (
	ethChain = entity.ChainID("eip155:1")
	btcChain = entity.ChainID("bip122:000000000019d6689c085ae165831e93")

	ethAsset = entity.AssetID("eip155:1/slip44:60")
	btcAsset = entity.AssetID("bip122:000000000019d6689c085ae165831e93/slip44:0")
)

func ethAccount(pubKey, balance string, tokens ...entity.TokenBalance) entity.ChainAccount {
	return entity.ChainAccount{
		ChainID: ethChain,
		Kind:    entity.KindAccountBased,
		PubKey:  pubKey,
		Balance: balance,
		Tokens:  tokens,
	}
}

func TestAccountsToPortfolio_AccountBasedWithTokens(t *testing.T) {
	accountID := entity.ToAccountID(ethChain, "0xabc")
	accounts := map[entity.AccountID]entity.ChainAccount{
		accountID: ethAccount("0xabc", "1000000000000000000",
			entity.TokenBalance{Contract: "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48", Symbol: "USDC", Precision: 6, Balance: "2500000"},
			entity.TokenBalance{Contract: "0xdac17f958d2ee523a2206206994597c13d831ec7", Symbol: "USDT", Precision: 6, Balance: "990000"},
		),
	}

	portfolio, errs := AccountsToPortfolio(accounts)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}

	if got := portfolio.AssetCount(); got != 3 {
		t.Errorf("balance entries = %d, want 3 (native + 2 tokens)", got)
	}
	assetList := portfolio.Accounts.ByID[accountID]
	if len(assetList) != 3 {
		t.Errorf("account asset list length = %d, want 3", len(assetList))
	}

	usdcAsset := entity.AssetID("eip155:1/erc20:0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48")
	if got := portfolio.Balances.ByID[usdcAsset]; got != "2500000" {
		t.Errorf("usdc balance = %q, want %q (contract must be case-normalised)", got, "2500000")
	}
	if got := portfolio.Balances.ByID[ethAsset]; got != "1000000000000000000" {
		t.Errorf("native balance = %q", got)
	}
}

func TestAccountsToPortfolio_AccountBasedNoTokens(t *testing.T) {
	accountID := entity.ToAccountID(ethChain, "0xdef")
	portfolio, errs := AccountsToPortfolio(map[entity.AccountID]entity.ChainAccount{
		accountID: ethAccount("0xdef", "42"),
	})
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if got := portfolio.AssetCount(); got != 1 {
		t.Errorf("balance entries = %d, want 1", got)
	}
	if got := portfolio.Balances.ByID[ethAsset]; got != "42" {
		t.Errorf("native balance = %q, want 42", got)
	}
}

func TestAccountsToPortfolio_UTXOSumsAddresses(t *testing.T) {
	accountID := entity.ToAccountID(btcChain, "xpub123")
	portfolio, errs := AccountsToPortfolio(map[entity.AccountID]entity.ChainAccount{
		accountID: {
			ChainID: btcChain,
			Kind:    entity.KindUTXO,
			PubKey:  "xpub123",
			Addresses: []entity.AddressBalance{
				{Address: "bc1qaaa", Balance: "100"},
				{Address: "bc1qbbb", Balance: "250"},
				{Address: "bc1qccc", Balance: "0"},
			},
		},
	})
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if got := portfolio.Balances.ByID[btcAsset]; got != "350" {
		t.Errorf("utxo account balance = %q, want 350", got)
	}
}

func TestAccountsToPortfolio_UTXOInvalidAddressBalancesCoercedToZero(t *testing.T) {
	accountID := entity.ToAccountID(btcChain, "xpub456")
	portfolio, _ := AccountsToPortfolio(map[entity.AccountID]entity.ChainAccount{
		accountID: {
			ChainID: btcChain,
			PubKey:  "xpub456",
			Addresses: []entity.AddressBalance{
				{Address: "bc1qaaa", Balance: "100"},
				{Address: "bc1qbbb", Balance: "not-a-number"},
				{Address: "bc1qccc", Balance: ""},
			},
		},
	})
	if got := portfolio.Balances.ByID[btcAsset]; got != "100" {
		t.Errorf("utxo account balance = %q, want 100", got)
	}
}

func TestAccountsToPortfolio_UTXONoAddressesYieldsZero(t *testing.T) {
	accountID := entity.ToAccountID(btcChain, "xpub789")
	portfolio, errs := AccountsToPortfolio(map[entity.AccountID]entity.ChainAccount{
		accountID: {ChainID: btcChain, PubKey: "xpub789"},
	})
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if got := portfolio.Balances.ByID[btcAsset]; got != "0" {
		t.Errorf("empty utxo account balance = %q, want 0", got)
	}
}

func TestAccountsToPortfolio_UnknownChainKindReported(t *testing.T) {
	accountID := entity.AccountID("cosmos:cosmoshub-4:cosmos1xyz")
	portfolio, errs := AccountsToPortfolio(map[entity.AccountID]entity.ChainAccount{
		accountID: {ChainID: "cosmos:cosmoshub-4", PubKey: "cosmos1xyz", Balance: "100"},
	})
	if portfolio.AccountCount() != 0 || portfolio.AssetCount() != 0 {
		t.Errorf("unknown chain kind must not contribute entries, got %d accounts, %d assets",
			portfolio.AccountCount(), portfolio.AssetCount())
	}
	if len(errs) != 1 {
		t.Fatalf("expected 1 typed error, got %d", len(errs))
	}
	if errs[0].AccountID != accountID {
		t.Errorf("error account id = %q, want %q", errs[0].AccountID, accountID)
	}
}

func TestAccountsToPortfolio_Invariant(t *testing.T) {
	accounts := map[entity.AccountID]entity.ChainAccount{
		entity.ToAccountID(ethChain, "0xabc"): ethAccount("0xabc", "1",
			entity.TokenBalance{Contract: "0x1111", Balance: "5"},
		),
		entity.ToAccountID(ethChain, "0xdef"): ethAccount("0xdef", "2"),
		entity.ToAccountID(btcChain, "xpub1"): {
			ChainID:   btcChain,
			PubKey:    "xpub1",
			Addresses: []entity.AddressBalance{{Address: "bc1q", Balance: "7"}},
		},
	}

	portfolio, errs := AccountsToPortfolio(accounts)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	for accountID, assetList := range portfolio.Accounts.ByID {
		for _, assetID := range assetList {
			if _, ok := portfolio.Balances.ByID[assetID]; !ok {
				t.Errorf("asset %q listed on account %q has no balance entry", assetID, accountID)
			}
		}
	}
}

func TestAccountsToPortfolio_SharedAssetAggregates(t *testing.T) {
	// Two accounts on the same chain both hold the native asset; their
	// balances add up under the single asset key.
	portfolio, _ := AccountsToPortfolio(map[entity.AccountID]entity.ChainAccount{
		entity.ToAccountID(ethChain, "0xaaa"): ethAccount("0xaaa", "10"),
		entity.ToAccountID(ethChain, "0xbbb"): ethAccount("0xbbb", "32"),
	})
	if got := portfolio.Balances.ByID[ethAsset]; got != "42" {
		t.Errorf("aggregated native balance = %q, want 42", got)
	}
	if got := portfolio.AccountCount(); got != 2 {
		t.Errorf("account count = %d, want 2", got)
	}
}

func TestAccountsToPortfolio_Idempotent(t *testing.T) {
	accounts := map[entity.AccountID]entity.ChainAccount{
		entity.ToAccountID(ethChain, "0xabc"): ethAccount("0xabc", "100",
			entity.TokenBalance{Contract: "0x2222", Balance: "7"},
		),
		entity.ToAccountID(btcChain, "xpub1"): {
			ChainID:   btcChain,
			PubKey:    "xpub1",
			Addresses: []entity.AddressBalance{{Address: "bc1q", Balance: "3"}},
		},
	}

	first, _ := AccountsToPortfolio(accounts)
	second, _ := AccountsToPortfolio(accounts)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("normalizer is not deterministic:\nfirst  = %+v\nsecond = %+v", first, second)
	}
}
