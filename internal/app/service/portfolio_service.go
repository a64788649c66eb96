package service

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"portfolio_tracker/internal/app/port"
	"portfolio_tracker/internal/domain/entity"
)

// FetchMetrics receives fetch-cycle observations. The restapi package
// provides a prometheus-backed implementation; tests use a no-op.
type FetchMetrics interface {
	CycleCompleted(accounts int, failures int)
	CycleSuperseded()
}

type noopMetrics struct{}

func (noopMetrics) CycleCompleted(int, int) {}
func (noopMetrics) CycleSuperseded()        {}

// PortfolioServiceImpl implements port.PortfolioService.
type PortfolioServiceImpl struct {
	adapters      port.ChainAdapterProvider
	assets        port.AssetRegistry
	market        port.MarketDataService
	store         *PortfolioStore
	logger        port.Logger
	metrics       FetchMetrics
	trackedKeys   map[entity.ChainID][]string
	maxConcurrent int
}

// NewPortfolioService creates a new PortfolioServiceImpl. trackedKeys is
// the configured (chain -> public keys) map used by RefetchTracked.
func NewPortfolioService(
	adapters port.ChainAdapterProvider,
	assets port.AssetRegistry,
	market port.MarketDataService,
	store *PortfolioStore,
	l port.Logger,
	metrics FetchMetrics,
	trackedKeys map[entity.ChainID][]string,
	maxConcurrent int,
) *PortfolioServiceImpl {
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &PortfolioServiceImpl{
		adapters:      adapters,
		assets:        assets,
		market:        market,
		store:         store,
		logger:        l,
		metrics:       metrics,
		trackedKeys:   trackedKeys,
		maxConcurrent: maxConcurrent,
	}
}

// FetchPortfolio implements port.PortfolioService. One request is issued
// per (chain, public key) pair; every request settles before the portfolio
// is reduced and published. Individual failures are collected as typed
// records and never abort sibling requests.
func (s *PortfolioServiceImpl) FetchPortfolio(
	ctx context.Context,
	keysByChain map[entity.ChainID][]string,
) (entity.Portfolio, []entity.AccountFetchError) {
	if len(keysByChain) == 0 {
		s.logger.Debug("No public keys configured, skipping portfolio fetch")
		return entity.NewPortfolio(), nil
	}

	gen := s.store.Begin()

	var (
		mu       sync.Mutex
		accounts = make(map[entity.AccountID]entity.ChainAccount)
		errs     []entity.AccountFetchError
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrent)

	for chainID, pubKeys := range keysByChain {
		for _, pubKey := range pubKeys {
			chainID, pubKey := chainID, pubKey
			g.Go(func() error {
				adapter, err := s.adapters.GetAdapter(chainID)
				if err != nil {
					s.logger.Error("Failed to resolve chain adapter", "chain", chainID, "error", err)
					mu.Lock()
					errs = append(errs, entity.AccountFetchError{
						ChainID: chainID, PubKey: pubKey, Message: err.Error()})
					mu.Unlock()
					return nil
				}

				account, err := adapter.GetAccount(gctx, pubKey)
				if err != nil {
					s.logger.Warn("Account fetch failed",
						"chain", chainID, "pubkey", pubKey, "error", err)
					mu.Lock()
					errs = append(errs, entity.AccountFetchError{
						ChainID: chainID, PubKey: pubKey,
						AccountID: entity.ToAccountID(chainID, pubKey),
						Message:   err.Error()})
					mu.Unlock()
					return nil
				}

				mu.Lock()
				accounts[entity.ToAccountID(chainID, pubKey)] = account
				mu.Unlock()
				return nil
			})
		}
	}

	// Errors are collected per account above; Wait only gates on settlement.
	_ = g.Wait()

	// Precision and display metadata must be loaded before results are
	// published for valuation.
	select {
	case <-s.assets.Ready():
	case <-ctx.Done():
		s.logger.Warn("Context cancelled while waiting for asset registry", "error", ctx.Err())
		return entity.NewPortfolio(), errs
	}

	portfolio, normErrs := AccountsToPortfolio(accounts)
	errs = append(errs, normErrs...)

	if !s.store.Replace(gen, portfolio) {
		s.logger.Warn("Fetch cycle superseded, discarding result",
			"generation", gen, "accounts", len(accounts))
		s.metrics.CycleSuperseded()
		return portfolio, errs
	}

	s.metrics.CycleCompleted(len(accounts), len(errs))

	// Prices for the new asset set feed the valuation views; a failed warm
	// degrades those views to zero, it never fails the cycle.
	if s.market != nil && portfolio.AssetCount() > 0 {
		if err := s.market.WarmPrices(ctx, portfolio.Balances.IDs); err != nil {
			s.logger.Warn("Price warm-up failed", "error", err)
		}
	}

	s.logger.Info("Portfolio updated",
		"generation", gen,
		"accounts", portfolio.AccountCount(),
		"assets", portfolio.AssetCount(),
		"failed_accounts", len(errs))
	return portfolio, errs
}

// RefetchTracked implements port.PortfolioService.
func (s *PortfolioServiceImpl) RefetchTracked(ctx context.Context) (entity.Portfolio, []entity.AccountFetchError) {
	return s.FetchPortfolio(ctx, s.trackedKeys)
}

// Current implements port.PortfolioService.
func (s *PortfolioServiceImpl) Current() entity.Portfolio {
	return s.store.Current()
}

// Clear implements port.PortfolioService.
func (s *PortfolioServiceImpl) Clear() {
	s.store.Clear()
	s.logger.Info("Portfolio cleared")
}
