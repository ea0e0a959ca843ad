package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"birdai/internal/domain"

	"go.opentelemetry.io/otel/trace"
)

const coingeckoBaseURL = "https://api.coingecko.com/api/v3"

// CoinGeckoProvider fetches asset and global market data from the CoinGecko
// free API. It fails closed: any transport, status, or decode error is
// swallowed and a canned record shaped like a live one is returned instead,
// so callers never see an upstream failure.
type CoinGeckoProvider struct {
	client  *http.Client
	baseURL string
	tracer  trace.Tracer
	limiter *RateLimiter
	now     func() time.Time
}

// NewCoinGeckoProvider creates a provider rate limited to 8 requests per
// minute (one token every 7.5 seconds), CoinGecko free-tier etiquette.
func NewCoinGeckoProvider(tracer trace.Tracer) *CoinGeckoProvider {
	return &CoinGeckoProvider{
		client:  &http.Client{Timeout: 30 * time.Second},
		baseURL: coingeckoBaseURL,
		tracer:  tracer,
		limiter: NewRateLimiter(8, 7500*time.Millisecond),
		now:     time.Now,
	}
}

// AssetMarkets returns one snapshot per supported asset. On any upstream
// failure it returns the fallback set.
func (p *CoinGeckoProvider) AssetMarkets(ctx context.Context) []domain.MetricSnapshot {
	ctx, span := p.tracer.Start(ctx, "coingecko.asset-markets")
	defer span.End()

	snaps, err := p.fetchAssetMarkets(ctx)
	if err != nil {
		log.Printf("coingecko markets unavailable, serving fallback: %v", err)
		return fallbackSnapshots(p.now().UTC())
	}
	return snaps
}

// GlobalMarket returns market-wide totals, or the fallback record on failure.
func (p *CoinGeckoProvider) GlobalMarket(ctx context.Context) domain.GlobalMarket {
	ctx, span := p.tracer.Start(ctx, "coingecko.global-market")
	defer span.End()

	global, err := p.fetchGlobal(ctx)
	if err != nil {
		log.Printf("coingecko global unavailable, serving fallback: %v", err)
		return fallbackGlobal(p.now().UTC())
	}
	return global
}

func (p *CoinGeckoProvider) fetchAssetMarkets(ctx context.Context) ([]domain.MetricSnapshot, error) {
	ids := make([]string, 0, len(domain.SupportedSymbols))
	for _, symbol := range domain.SupportedSymbols {
		ids = append(ids, domain.CoinGeckoID[symbol])
	}

	url := fmt.Sprintf("%s/coins/markets?vs_currency=usd&ids=%s", p.baseURL, strings.Join(ids, ","))
	body, err := p.doRequest(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetch markets: %w", err)
	}

	var raw []struct {
		ID                 string  `json:"id"`
		CurrentPrice       float64 `json:"current_price"`
		MarketCap          float64 `json:"market_cap"`
		TotalVolume        float64 `json:"total_volume"`
		PriceChangePct24h  float64 `json:"price_change_percentage_24h"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("parse markets: %w", err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("parse markets: empty response")
	}

	now := p.now().UTC()
	snaps := make([]domain.MetricSnapshot, 0, len(raw))
	for _, coin := range raw {
		symbol, ok := domain.CoinGeckoIDToSymbol[coin.ID]
		if !ok {
			continue
		}
		snaps = append(snaps, domain.MetricSnapshot{
			Asset:        symbol,
			PriceUSD:     coin.CurrentPrice,
			MarketCap:    coin.MarketCap,
			Volume24h:    coin.TotalVolume,
			Change24hPct: coin.PriceChangePct24h,
			Context:      "live coingecko markets data",
			Timestamp:    now,
		})
	}
	return snaps, nil
}

func (p *CoinGeckoProvider) fetchGlobal(ctx context.Context) (domain.GlobalMarket, error) {
	body, err := p.doRequest(ctx, p.baseURL+"/global")
	if err != nil {
		return domain.GlobalMarket{}, fmt.Errorf("fetch global: %w", err)
	}

	var raw struct {
		Data struct {
			TotalMarketCap      map[string]float64 `json:"total_market_cap"`
			TotalVolume         map[string]float64 `json:"total_volume"`
			MarketCapPercentage map[string]float64 `json:"market_cap_percentage"`
			MarketCapChange24h  float64            `json:"market_cap_change_percentage_24h_usd"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return domain.GlobalMarket{}, fmt.Errorf("parse global: %w", err)
	}
	if raw.Data.TotalMarketCap["usd"] == 0 {
		return domain.GlobalMarket{}, fmt.Errorf("parse global: missing usd market cap")
	}

	return domain.GlobalMarket{
		TotalMarketCapUSD:     raw.Data.TotalMarketCap["usd"],
		TotalVolume24hUSD:     raw.Data.TotalVolume["usd"],
		BTCDominancePct:       raw.Data.MarketCapPercentage["btc"],
		MarketCapChange24hPct: raw.Data.MarketCapChange24h,
		Context:               "live coingecko global data",
		Timestamp:             p.now().UTC(),
	}, nil
}

func (p *CoinGeckoProvider) doRequest(ctx context.Context, url string) ([]byte, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("coingecko API error %d: %s", resp.StatusCode, string(body))
	}

	return io.ReadAll(resp.Body)
}
