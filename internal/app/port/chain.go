package port

import (
	"context"

	"portfolio_tracker/internal/domain/entity"
)

// ChainAdapter fetches the raw account record for one chain. Implementations
// are specific to chain kinds (EVM JSON-RPC, UTXO indexer APIs).
type ChainAdapter interface {
	// GetAccount fetches the raw account record for a public key. The record
	// carries chain-specific sub-structures: token balances for
	// account-based chains, derived address balances for UTXO chains.
	GetAccount(ctx context.Context, pubKey string) (entity.ChainAccount, error)

	// ChainID returns the CAIP-2 identifier of the chain this adapter serves.
	ChainID() entity.ChainID
}

// ChainAdapterProvider resolves chain adapters by decoded chain identifier.
type ChainAdapterProvider interface {
	// GetAdapter returns the adapter for a chain, creating and caching it on
	// first use. Unknown chain kinds yield entity.ErrUnknownChainKind.
	GetAdapter(chainID entity.ChainID) (ChainAdapter, error)
}
