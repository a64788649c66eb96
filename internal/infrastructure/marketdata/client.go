package marketdata

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"portfolio_tracker/internal/domain/entity"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// PriceClient fetches USD prices for batches of asset identifiers.
type PriceClient interface {
	GetPrices(ctx context.Context, assetIDs []entity.AssetID) (map[entity.AssetID]string, error)
}

// priceClientImpl talks to a market-data API that accepts comma-separated
// asset identifiers and returns a price map of decimal strings:
//
//	GET {base}/v1/prices?assets=<id>,<id>,...
//	{"prices": {"<id>": "2.00", ...}}
type priceClientImpl struct {
	client      *fasthttp.Client
	baseURL     string
	timeout     time.Duration
	logger      *zap.Logger
	maxPerBatch int
}

// NewPriceClient creates a market-data API client.
func NewPriceClient(baseURL string, timeout time.Duration, logger *zap.Logger, maxPerBatch int) PriceClient {
	return &priceClientImpl{
		client:      &fasthttp.Client{},
		baseURL:     strings.TrimRight(baseURL, "/"),
		timeout:     timeout,
		logger:      logger.Named("PriceClient"),
		maxPerBatch: maxPerBatch,
	}
}

type pricesResponse struct {
	Prices map[string]string `json:"prices"`
}

// GetPrices implements PriceClient.
func (c *priceClientImpl) GetPrices(ctx context.Context, assetIDs []entity.AssetID) (map[entity.AssetID]string, error) {
	if len(assetIDs) == 0 {
		return nil, fmt.Errorf("assetIDs cannot be empty")
	}
	if len(assetIDs) > c.maxPerBatch {
		return nil, fmt.Errorf("number of assets (%d) exceeds max per request (%d)", len(assetIDs), c.maxPerBatch)
	}

	ids := make([]string, len(assetIDs))
	for i, id := range assetIDs {
		ids[i] = url.QueryEscape(string(id))
	}
	requestURL := fmt.Sprintf("%s/v1/prices?assets=%s", c.baseURL, strings.Join(ids, ","))

	c.logger.Debug("Requesting asset prices", zap.String("url", requestURL), zap.Int("count", len(assetIDs)))

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(requestURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.SetContentTypeBytes([]byte("application/json"))

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	if deadline, ok := ctx.Deadline(); ok {
		if err := c.client.DoDeadline(req, resp, deadline); err != nil {
			c.logger.Error("Price request failed", zap.String("url", requestURL), zap.Error(err))
			return nil, fmt.Errorf("failed to execute request to %s: %w", requestURL, err)
		}
	} else {
		if err := c.client.DoTimeout(req, resp, c.timeout); err != nil {
			c.logger.Error("Price request failed", zap.String("url", requestURL), zap.Error(err))
			return nil, fmt.Errorf("failed to execute request to %s: %w", requestURL, err)
		}
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		return nil, fmt.Errorf("price API returned status %d", resp.StatusCode())
	}

	var payload pricesResponse
	if err := json.Unmarshal(resp.Body(), &payload); err != nil {
		return nil, fmt.Errorf("failed to decode price response: %w", err)
	}

	prices := make(map[entity.AssetID]string, len(payload.Prices))
	for id, price := range payload.Prices {
		prices[entity.AssetID(id)] = price
	}
	return prices, nil
}
