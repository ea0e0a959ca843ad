package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"birdai/internal/domain"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/trace"
)

const (
	marketCacheKey = "market:v1"
	marketCacheTTL = 90 * time.Second
)

type MarketProvider interface {
	AssetMarkets(ctx context.Context) []domain.MetricSnapshot
	GlobalMarket(ctx context.Context) domain.GlobalMarket
}

type ChainProvider interface {
	NetworkStats(ctx context.Context) domain.SuiNetworkStats
}

type RedisClient interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
}

// MarketData is the combined payload behind GET /api/market-data.
type MarketData struct {
	Assets []domain.MetricSnapshot `json:"assets"`
	Global domain.GlobalMarket     `json:"global"`
	Sui    domain.SuiNetworkStats  `json:"sui"`
}

// MarketService assembles the dashboard's market view, with a short Redis
// cache in front of the providers. Providers fail closed, so this service
// always has something to return.
type MarketService struct {
	tracer trace.Tracer
	market MarketProvider
	chain  ChainProvider
	redis  RedisClient
}

func NewMarketService(tracer trace.Tracer, market MarketProvider, chain ChainProvider, redisClient RedisClient) *MarketService {
	return &MarketService{
		tracer: tracer,
		market: market,
		chain:  chain,
		redis:  redisClient,
	}
}

// GetMarketData returns the cached view when fresh, otherwise assembles it
// from the providers and refreshes the cache.
func (s *MarketService) GetMarketData(ctx context.Context) MarketData {
	ctx, span := s.tracer.Start(ctx, "market-service.get-market-data")
	defer span.End()

	if s.redis != nil {
		if cached := s.getCache(ctx); cached != nil {
			return *cached
		}
	}

	data := MarketData{
		Assets: s.market.AssetMarkets(ctx),
		Global: s.market.GlobalMarket(ctx),
		Sui:    s.chain.NetworkStats(ctx),
	}

	if s.redis != nil {
		if err := s.setCache(ctx, data); err != nil {
			log.Printf("market cache write error: %v", err)
		}
	}
	return data
}

func (s *MarketService) setCache(ctx context.Context, data MarketData) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return s.redis.Set(ctx, marketCacheKey, payload, marketCacheTTL).Err()
}

func (s *MarketService) getCache(ctx context.Context) *MarketData {
	payload, err := s.redis.Get(ctx, marketCacheKey).Bytes()
	if err == redis.Nil {
		return nil
	}
	if err != nil {
		log.Printf("market cache read error: %v", err)
		return nil
	}
	var data MarketData
	if err := json.Unmarshal(payload, &data); err != nil {
		return nil
	}
	return &data
}
