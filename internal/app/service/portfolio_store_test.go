package service

import (
	"testing"

	"portfolio_tracker/internal/domain/entity"
)

func portfolioWithBalance(assetID entity.AssetID, balance string) entity.Portfolio {
	p := entity.NewPortfolio()
	p.SetBalance(assetID, balance)
	return p
}

func TestPortfolioStore_ReplacePublishes(t *testing.T) {
	store := NewPortfolioStore()

	gen := store.Begin()
	if !store.Replace(gen, portfolioWithBalance(ethAsset, "10")) {
		t.Fatal("replace with current generation rejected")
	}
	if got := store.Current().Balances.ByID[ethAsset]; got != "10" {
		t.Errorf("published balance = %q, want 10", got)
	}
}

func TestPortfolioStore_StaleGenerationRejected(t *testing.T) {
	store := NewPortfolioStore()

	stale := store.Begin()
	fresh := store.Begin()

	if !store.Replace(fresh, portfolioWithBalance(ethAsset, "20")) {
		t.Fatal("replace with newest generation rejected")
	}
	if store.Replace(stale, portfolioWithBalance(ethAsset, "10")) {
		t.Error("replace with superseded generation accepted")
	}
	if got := store.Current().Balances.ByID[ethAsset]; got != "20" {
		t.Errorf("balance = %q, want the newer cycle's 20", got)
	}
}

func TestPortfolioStore_OutOfOrderCompletion(t *testing.T) {
	store := NewPortfolioStore()

	older := store.Begin()
	newer := store.Begin()

	// The older cycle finishes first; that is fine.
	if !store.Replace(older, portfolioWithBalance(ethAsset, "1")) {
		t.Fatal("older generation rejected before any newer publish")
	}
	// The newer cycle still wins when it lands.
	if !store.Replace(newer, portfolioWithBalance(ethAsset, "2")) {
		t.Fatal("newer generation rejected")
	}
	if got := store.Current().Balances.ByID[ethAsset]; got != "2" {
		t.Errorf("balance = %q, want 2", got)
	}
}

func TestPortfolioStore_ClearInvalidatesInFlight(t *testing.T) {
	store := NewPortfolioStore()

	gen := store.Begin()
	if !store.Replace(gen, portfolioWithBalance(ethAsset, "10")) {
		t.Fatal("initial replace rejected")
	}

	inflight := store.Begin()
	store.Clear()

	cleared := store.Current()
	if got := cleared.AssetCount(); got != 0 {
		t.Errorf("cleared store still holds %d assets", got)
	}
	if store.Replace(inflight, portfolioWithBalance(ethAsset, "99")) {
		t.Error("cycle begun before Clear was allowed to publish after it")
	}
	after := store.Current()
	if got := after.AssetCount(); got != 0 {
		t.Errorf("store repopulated after Clear, %d assets", got)
	}
}
