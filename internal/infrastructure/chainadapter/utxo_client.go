package chainadapter

import (
	"context"
	"fmt"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/valyala/fasthttp"

	"portfolio_tracker/internal/app/port"
	"portfolio_tracker/internal/domain/entity"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// UTXOClient implements port.ChainAdapter for Bitcoin-style chains over a
// Blockbook-compatible indexer API. One account (xpub) resolves to the set
// of derived addresses the indexer has seen, each with its own base-unit
// balance; the normalizer sums them into the account total.
type UTXOClient struct {
	client  *fasthttp.Client
	baseURL string
	chainID entity.ChainID
	timeout time.Duration
}

// xpubResponse mirrors the subset of the Blockbook v2 xpub payload this
// adapter consumes. Token entries of type XPUBAddress are the derived
// addresses of the key.
type xpubResponse struct {
	Balance string `json:"balance"`
	Tokens  []struct {
		Type    string `json:"type"`
		Name    string `json:"name"`
		Balance string `json:"balance"`
	} `json:"tokens"`
}

// NewUTXOClient creates an adapter for one UTXO chain.
func NewUTXOClient(chainID entity.ChainID, baseURL string, timeout time.Duration) (port.ChainAdapter, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("indexer URL is required for chain %s", chainID)
	}
	return &UTXOClient{
		client:  &fasthttp.Client{},
		baseURL: strings.TrimRight(baseURL, "/"),
		chainID: chainID,
		timeout: timeout,
	}, nil
}

// ChainID implements port.ChainAdapter.
func (c *UTXOClient) ChainID() entity.ChainID {
	return c.chainID
}

// GetAccount implements port.ChainAdapter.
func (c *UTXOClient) GetAccount(ctx context.Context, pubKey string) (entity.ChainAccount, error) {
	requestURL := fmt.Sprintf("%s/api/v2/xpub/%s?details=tokens&tokens=used", c.baseURL, pubKey)

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(requestURL)
	req.Header.SetMethod(fasthttp.MethodGet)

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	if deadline, ok := ctx.Deadline(); ok {
		if err := c.client.DoDeadline(req, resp, deadline); err != nil {
			return entity.ChainAccount{}, fmt.Errorf("indexer request failed for %s: %w", pubKey, err)
		}
	} else {
		if err := c.client.DoTimeout(req, resp, c.timeout); err != nil {
			return entity.ChainAccount{}, fmt.Errorf("indexer request failed for %s: %w", pubKey, err)
		}
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		return entity.ChainAccount{}, fmt.Errorf("indexer returned status %d for %s", resp.StatusCode(), pubKey)
	}

	var payload xpubResponse
	if err := json.Unmarshal(resp.Body(), &payload); err != nil {
		return entity.ChainAccount{}, fmt.Errorf("failed to decode indexer response for %s: %w", pubKey, err)
	}

	account := entity.ChainAccount{
		ChainID: c.chainID,
		Kind:    entity.KindUTXO,
		PubKey:  pubKey,
		Balance: payload.Balance,
	}
	for _, token := range payload.Tokens {
		if token.Type != "XPUBAddress" {
			continue
		}
		account.Addresses = append(account.Addresses, entity.AddressBalance{
			Address: token.Name,
			Balance: token.Balance,
		})
	}

	return account, nil
}
