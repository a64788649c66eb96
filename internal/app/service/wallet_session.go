package service

import (
	"sync"

	"portfolio_tracker/internal/app/port"
)

// WalletSessionImpl implements port.WalletSession. Disconnecting clears the
// portfolio so a new session never sees the previous wallet's balances.
type WalletSessionImpl struct {
	mu       sync.RWMutex
	walletID string

	portfolio port.PortfolioService
	logger    port.Logger
}

// NewWalletSession creates a disconnected session.
func NewWalletSession(portfolio port.PortfolioService, l port.Logger) *WalletSessionImpl {
	return &WalletSessionImpl{portfolio: portfolio, logger: l}
}

// IsConnected implements port.WalletSession.
func (s *WalletSessionImpl) IsConnected() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.walletID != ""
}

// WalletID implements port.WalletSession.
func (s *WalletSessionImpl) WalletID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.walletID
}

// Connect implements port.WalletSession.
func (s *WalletSessionImpl) Connect(walletID string) {
	s.mu.Lock()
	s.walletID = walletID
	s.mu.Unlock()
	s.logger.Info("Wallet connected", "wallet", walletID)
}

// Disconnect implements port.WalletSession.
func (s *WalletSessionImpl) Disconnect() {
	s.mu.Lock()
	walletID := s.walletID
	s.walletID = ""
	s.mu.Unlock()

	if walletID != "" {
		s.portfolio.Clear()
		s.logger.Info("Wallet disconnected, portfolio cleared", "wallet", walletID)
	}
}
