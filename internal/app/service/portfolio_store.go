package service

import (
	"sync"

	"portfolio_tracker/internal/domain/entity"
)

// PortfolioStore owns the process-wide portfolio state. All mutation goes
// through Replace and Clear, so readers only ever observe a wholesale
// result of a completed fetch cycle, never a partial write.
//
// Every fetch cycle obtains a generation from Begin before issuing
// requests. Replace rejects results from a generation older than the last
// applied one, so a slow superseded cycle cannot overwrite a newer result.
type PortfolioStore struct {
	mu        sync.RWMutex
	portfolio entity.Portfolio
	nextGen   uint64
	applied   uint64
}

// NewPortfolioStore creates an empty store.
func NewPortfolioStore() *PortfolioStore {
	return &PortfolioStore{portfolio: entity.NewPortfolio()}
}

// Begin hands out the generation for a new fetch cycle.
func (s *PortfolioStore) Begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextGen++
	return s.nextGen
}

// Replace installs a new portfolio wholesale. It returns false when the
// cycle's generation has been superseded by a later applied cycle or by a
// Clear, in which case the store is left untouched.
func (s *PortfolioStore) Replace(gen uint64, p entity.Portfolio) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen <= s.applied {
		return false
	}
	s.applied = gen
	s.portfolio = p
	return true
}

// Current returns the stored portfolio. The value is shared, not copied;
// the atomic-replace discipline keeps it immutable once published.
func (s *PortfolioStore) Current() entity.Portfolio {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.portfolio
}

// Generation returns the generation of the last applied portfolio.
func (s *PortfolioStore) Generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.applied
}

// Clear resets the portfolio to empty and invalidates every in-flight
// fetch cycle begun before the clear.
func (s *PortfolioStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.applied = s.nextGen
	s.portfolio = entity.NewPortfolio()
}
