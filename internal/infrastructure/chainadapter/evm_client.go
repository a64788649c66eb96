package chainadapter

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"

	"portfolio_tracker/internal/app/port"
	"portfolio_tracker/internal/domain/entity"
)

// EVMClient implements port.ChainAdapter for EVM-compatible chains. One
// GetAccount call turns into a single JSON-RPC batch: eth_getBalance for
// the native asset plus one eth_call (balanceOf) per registered token.
type EVMClient struct {
	ethClient      *ethclient.Client
	chainID        entity.ChainID
	registry       port.AssetRegistry
	rpcCallTimeout time.Duration
}

// ERC20 ABI minimal part for balanceOf
const erc20ABI = `[{"constant":true,"inputs":[{"name":"_owner","type":"address"}],"name":"balanceOf","outputs":[{"name":"balance","type":"uint256"}],"payable":false,"stateMutability":"view","type":"function"}]`

var (
	parsedERC20ABI  abi.ABI
	parsedERC20Once sync.Once
	erc20MethodID   []byte
)

func initParsedERC20ABI() {
	parsedERC20Once.Do(func() {
		var err error
		parsedERC20ABI, err = abi.JSON(strings.NewReader(erc20ABI))
		if err != nil {
			panic(fmt.Sprintf("failed to parse ERC20 ABI: %v", err))
		}
		balanceOfMethod, ok := parsedERC20ABI.Methods["balanceOf"]
		if !ok {
			panic("balanceOf method not found in parsed ERC20 ABI")
		}
		erc20MethodID = balanceOfMethod.ID
	})
}

// NewEVMClient dials the chain's RPC endpoints in order, returning a client
// on the first successful connection.
func NewEVMClient(
	chainID entity.ChainID,
	rpcURLs []string,
	registry port.AssetRegistry,
	connectionTimeout time.Duration,
	rpcCallTimeout time.Duration,
) (port.ChainAdapter, error) {
	initParsedERC20ABI()
	var lastErr error

	for _, rpcURL := range rpcURLs {
		if rpcURL == "" {
			continue
		}
		ctx, cancel := context.WithTimeout(context.Background(), connectionTimeout)
		client, err := ethclient.DialContext(ctx, rpcURL)
		cancel()

		if err == nil {
			return &EVMClient{
				ethClient:      client,
				chainID:        chainID,
				registry:       registry,
				rpcCallTimeout: rpcCallTimeout,
			}, nil
		}
		lastErr = fmt.Errorf("failed to connect to RPC %s: %w", rpcURL, err)
	}

	return nil, fmt.Errorf("all RPC connection attempts failed for chain %s: %w", chainID, lastErr)
}

// ChainID implements port.ChainAdapter.
func (c *EVMClient) ChainID() entity.ChainID {
	return c.chainID
}

// GetAccount implements port.ChainAdapter.
func (c *EVMClient) GetAccount(ctx context.Context, pubKey string) (entity.ChainAccount, error) {
	tokens := c.erc20Assets()

	batchElems := make([]rpc.BatchElem, 0, len(tokens)+1)
	batchElems = append(batchElems, rpc.BatchElem{
		Method: "eth_getBalance",
		Args:   []interface{}{common.HexToAddress(pubKey), "latest"},
		Result: new(*hexutil.Big),
	})

	for _, token := range tokens {
		paddedWalletAddress := common.LeftPadBytes(common.HexToAddress(pubKey).Bytes(), 32)
		callData := append(append([]byte{}, erc20MethodID...), paddedWalletAddress...)

		callArgs := map[string]interface{}{
			"to":   common.HexToAddress(token.ID.Reference()),
			"data": hexutil.Bytes(callData),
		}
		batchElems = append(batchElems, rpc.BatchElem{
			Method: "eth_call",
			Args:   []interface{}{callArgs, "latest"},
			Result: new(hexutil.Bytes),
		})
	}

	rpcCallCtx, cancel := context.WithTimeout(ctx, c.rpcCallTimeout)
	defer cancel()

	if err := c.ethClient.Client().BatchCallContext(rpcCallCtx, batchElems); err != nil {
		return entity.ChainAccount{}, fmt.Errorf("RPC batch call failed for %s: %w", pubKey, err)
	}

	account := entity.ChainAccount{
		ChainID: c.chainID,
		Kind:    entity.KindAccountBased,
		PubKey:  pubKey,
	}

	if batchElems[0].Error != nil {
		return entity.ChainAccount{}, fmt.Errorf("eth_getBalance failed for %s: %w", pubKey, batchElems[0].Error)
	}
	nativeResult, ok := batchElems[0].Result.(**hexutil.Big)
	if !ok || nativeResult == nil || *nativeResult == nil {
		return entity.ChainAccount{}, fmt.Errorf("failed to decode native balance for %s", pubKey)
	}
	account.Balance = (*big.Int)(*nativeResult).String()

	for i, token := range tokens {
		elem := batchElems[i+1]
		if elem.Error != nil {
			return entity.ChainAccount{}, fmt.Errorf("balanceOf failed for token %s (%s): %w",
				token.Symbol, token.ID.Reference(), elem.Error)
		}
		balance, err := decodeERC20Balance(elem.Result, token.Symbol)
		if err != nil {
			return entity.ChainAccount{}, err
		}
		// Zero token balances stay out of the record, same as an account
		// that never touched the token.
		if balance.Sign() == 0 {
			continue
		}
		account.Tokens = append(account.Tokens, entity.TokenBalance{
			Contract:  token.ID.Reference(),
			Symbol:    token.Symbol,
			Precision: token.Precision,
			Balance:   balance.String(),
		})
	}

	return account, nil
}

// erc20Assets returns the registered token assets of this chain.
func (c *EVMClient) erc20Assets() []entity.AssetInfo {
	all := c.registry.AssetsForChain(c.chainID)
	tokens := make([]entity.AssetInfo, 0, len(all))
	for _, asset := range all {
		if asset.ID.Namespace() == entity.AssetNamespaceERC20 {
			tokens = append(tokens, asset)
		}
	}
	return tokens
}

func decodeERC20Balance(result interface{}, symbol string) (*big.Int, error) {
	raw, ok := result.(*hexutil.Bytes)
	if !ok || raw == nil {
		return nil, fmt.Errorf("failed to decode token balance for %s: unexpected result type", symbol)
	}
	if len(*raw) == 0 {
		return big.NewInt(0), nil
	}

	unpacked, err := parsedERC20ABI.Unpack("balanceOf", *raw)
	if err != nil {
		return nil, fmt.Errorf("failed to unpack balanceOf result for %s: %w", symbol, err)
	}
	if len(unpacked) == 0 {
		return nil, fmt.Errorf("balanceOf unpack returned no data for %s", symbol)
	}
	balance, ok := unpacked[0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("failed to assert unpacked balanceOf result to *big.Int for %s, got %T", symbol, unpacked[0])
	}
	return balance, nil
}
