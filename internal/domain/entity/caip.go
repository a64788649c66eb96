package entity

import (
	"fmt"
	"strings"
)

// ChainID is a CAIP-2 chain identifier, e.g. "eip155:1" or
// "bip122:000000000019d6689c085ae165831e93".
type ChainID string

// AccountID is a CAIP-10 account identifier: "<chainId>:<publicKey>".
// It uniquely identifies one chain account within a portfolio.
type AccountID string

// AssetID is a CAIP-19 asset identifier:
// "<chainId>/<assetNamespace>:<assetReference>". It uniquely identifies a
// native coin or token within a chain+network namespace.
type AssetID string

// ChainKind classifies how balances are modelled on a chain.
type ChainKind int

const (
	KindUnknown ChainKind = iota
	// KindAccountBased covers Ethereum-style chains: balances live on
	// accounts with discrete token lists.
	KindAccountBased
	// KindUTXO covers Bitcoin-style chains: the account balance is the sum
	// of unspent outputs across derived addresses.
	KindUTXO
)

func (k ChainKind) String() string {
	switch k {
	case KindAccountBased:
		return "account-based"
	case KindUTXO:
		return "utxo"
	default:
		return "unknown"
	}
}

// CAIP-2 namespaces recognised by this service.
const (
	NamespaceEVM  = "eip155"
	NamespaceUTXO = "bip122"
)

// Asset namespaces used when building CAIP-19 identifiers.
const (
	AssetNamespaceSLIP44 = "slip44"
	AssetNamespaceERC20  = "erc20"
)

// ErrUnknownChainKind is returned whenever a chain namespace decodes to no
// supported kind. Callers record it per account instead of dropping the
// account silently.
var ErrUnknownChainKind = fmt.Errorf("unknown chain kind")

// DecodeChainKind resolves a CAIP-2 chain identifier to its chain kind.
func DecodeChainKind(chainID ChainID) (ChainKind, error) {
	namespace, _, ok := strings.Cut(string(chainID), ":")
	if !ok {
		return KindUnknown, fmt.Errorf("malformed chain id %q: %w", chainID, ErrUnknownChainKind)
	}
	switch strings.ToLower(namespace) {
	case NamespaceEVM:
		return KindAccountBased, nil
	case NamespaceUTXO:
		return KindUTXO, nil
	default:
		return KindUnknown, fmt.Errorf("chain namespace %q: %w", namespace, ErrUnknownChainKind)
	}
}

// ToAccountID builds a CAIP-10 account identifier from a chain identifier
// and a public key.
func ToAccountID(chainID ChainID, pubKey string) AccountID {
	return AccountID(fmt.Sprintf("%s:%s", chainID, pubKey))
}

// ToAssetID builds a CAIP-19 asset identifier. The asset reference is
// case-normalised so that the same contract always yields the same key.
func ToAssetID(chainID ChainID, assetNamespace, assetReference string) AssetID {
	return AssetID(fmt.Sprintf("%s/%s:%s", chainID, assetNamespace, strings.ToLower(assetReference)))
}

// slip44 coin types for the native assets of supported namespaces.
var nativeSLIP44 = map[string]string{
	NamespaceEVM:  "60",
	NamespaceUTXO: "0",
}

// NativeAssetID returns the CAIP-19 identifier of a chain's native asset.
func NativeAssetID(chainID ChainID) (AssetID, error) {
	namespace, _, ok := strings.Cut(string(chainID), ":")
	if !ok {
		return "", fmt.Errorf("malformed chain id %q: %w", chainID, ErrUnknownChainKind)
	}
	coinType, ok := nativeSLIP44[strings.ToLower(namespace)]
	if !ok {
		return "", fmt.Errorf("chain namespace %q: %w", namespace, ErrUnknownChainKind)
	}
	return ToAssetID(chainID, AssetNamespaceSLIP44, coinType), nil
}

// ChainOf returns the CAIP-2 prefix of an asset identifier.
func (a AssetID) ChainOf() ChainID {
	chain, _, _ := strings.Cut(string(a), "/")
	return ChainID(chain)
}

// Reference returns the asset reference part of an asset identifier, e.g.
// the token contract of an erc20 asset. Empty when the identifier is
// malformed.
func (a AssetID) Reference() string {
	_, asset, ok := strings.Cut(string(a), "/")
	if !ok {
		return ""
	}
	_, ref, ok := strings.Cut(asset, ":")
	if !ok {
		return ""
	}
	return ref
}

// Namespace returns the asset namespace of an asset identifier, e.g.
// "slip44" or "erc20".
func (a AssetID) Namespace() string {
	_, asset, ok := strings.Cut(string(a), "/")
	if !ok {
		return ""
	}
	ns, _, _ := strings.Cut(asset, ":")
	return ns
}
