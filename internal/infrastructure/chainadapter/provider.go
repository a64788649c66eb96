package chainadapter

import (
	"fmt"
	"sync"
	"time"

	"portfolio_tracker/internal/app/port"
	"portfolio_tracker/internal/domain/entity"
	"portfolio_tracker/internal/infrastructure/configloader"
)

const defaultConnectionTimeout = 10 * time.Second

// Provider implements port.ChainAdapterProvider. Adapters are created
// lazily per chain, dispatched on the decoded chain kind, and cached so
// repeated fetch cycles reuse connections.
type Provider struct {
	mu       sync.Mutex
	adapters map[entity.ChainID]port.ChainAdapter

	cfg            *configloader.Config
	registry       port.AssetRegistry
	logger         port.Logger
	rpcCallTimeout time.Duration
}

// NewProvider creates a chain adapter provider over the configured chains.
func NewProvider(cfg *configloader.Config, registry port.AssetRegistry, l port.Logger) *Provider {
	return &Provider{
		adapters:       make(map[entity.ChainID]port.ChainAdapter),
		cfg:            cfg,
		registry:       registry,
		logger:         l,
		rpcCallTimeout: time.Duration(cfg.Performance.RPCCallTimeoutSeconds) * time.Second,
	}
}

// GetAdapter implements port.ChainAdapterProvider.
func (p *Provider) GetAdapter(chainID entity.ChainID) (port.ChainAdapter, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if adapter, exists := p.adapters[chainID]; exists {
		return adapter, nil
	}

	chainCfg, ok := p.cfg.ChainByID(chainID)
	if !ok {
		return nil, fmt.Errorf("chain %s is not configured", chainID)
	}

	kind, err := entity.DecodeChainKind(chainID)
	if err != nil {
		return nil, err
	}

	var adapter port.ChainAdapter
	switch kind {
	case entity.KindAccountBased:
		rpcURLs := append([]string{chainCfg.RPCURL}, chainCfg.FallbackRPCURLs...)
		adapter, err = NewEVMClient(chainID, rpcURLs, p.registry, defaultConnectionTimeout, p.rpcCallTimeout)
	case entity.KindUTXO:
		adapter, err = NewUTXOClient(chainID, chainCfg.IndexerURL, p.rpcCallTimeout)
	default:
		return nil, fmt.Errorf("chain %s kind %s: %w", chainID, kind, entity.ErrUnknownChainKind)
	}
	if err != nil {
		p.logger.Error("Failed to create chain adapter", "chain", chainID, "error", err)
		return nil, fmt.Errorf("failed to create adapter for %s: %w", chainID, err)
	}

	p.adapters[chainID] = adapter
	p.logger.Info("Chain adapter created", "chain", chainID, "kind", kind.String())
	return adapter, nil
}
