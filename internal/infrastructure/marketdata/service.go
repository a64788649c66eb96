package marketdata

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"portfolio_tracker/internal/app/port"
	"portfolio_tracker/internal/domain/entity"
)

// Service implements port.MarketDataService: a TTL price cache in front of
// the market-data API, with request batching and rate limiting.
type Service struct {
	client      PriceClient
	cache       *gocache.Cache
	limiter     *rate.Limiter
	logger      port.Logger
	maxPerBatch int
}

// NewService creates a cached market-data service. cacheTTL bounds price
// staleness; requestsPerSecond throttles upstream calls.
func NewService(
	client PriceClient,
	cacheTTL time.Duration,
	requestsPerSecond float64,
	maxPerBatch int,
	l port.Logger,
) *Service {
	if maxPerBatch <= 0 {
		maxPerBatch = 30
	}
	return &Service{
		client:      client,
		cache:       gocache.New(cacheTTL, 2*cacheTTL),
		limiter:     rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
		logger:      l,
		maxPerBatch: maxPerBatch,
	}
}

// PriceUSD implements port.MarketDataService.
func (s *Service) PriceUSD(assetID entity.AssetID) (string, bool) {
	if price, found := s.cache.Get(string(assetID)); found {
		return price.(string), true
	}
	return "", false
}

// WarmPrices implements port.MarketDataService. Assets are fetched in
// batches; a failed batch is logged and skipped so the remaining batches
// still populate the cache.
func (s *Service) WarmPrices(ctx context.Context, assetIDs []entity.AssetID) error {
	for start := 0; start < len(assetIDs); start += s.maxPerBatch {
		end := start + s.maxPerBatch
		if end > len(assetIDs) {
			end = len(assetIDs)
		}
		batch := assetIDs[start:end]

		if err := s.limiter.Wait(ctx); err != nil {
			return err
		}

		prices, err := s.client.GetPrices(ctx, batch)
		if err != nil {
			s.logger.Warn("Price batch failed, prices stay unknown for its assets",
				"batch_size", len(batch), "error", err)
			continue
		}
		for assetID, price := range prices {
			s.cache.SetDefault(string(assetID), price)
		}
	}
	return nil
}
