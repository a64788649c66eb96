package entity

// TokenBalance is one token position inside an account-based chain account.
// Balance is a base-unit integer string.
type TokenBalance struct {
	Contract  string `json:"contract"`
	Symbol    string `json:"symbol"`
	Precision uint8  `json:"precision"`
	Balance   string `json:"balance"`
}

// AddressBalance is the balance of one derived address of a UTXO account,
// in base units (satoshis for Bitcoin).
type AddressBalance struct {
	Address string `json:"address"`
	Balance string `json:"balance"`
}

// ChainAccount is the raw per-chain account record returned by a chain
// adapter, before normalization. Tokens is populated for account-based
// chains, Addresses for UTXO chains.
type ChainAccount struct {
	ChainID   ChainID          `json:"chainId"`
	Kind      ChainKind        `json:"-"`
	PubKey    string           `json:"pubkey"`
	Balance   string           `json:"balance"`
	Tokens    []TokenBalance   `json:"tokens,omitempty"`
	Addresses []AddressBalance `json:"addresses,omitempty"`
}
