package provider

import (
	"time"

	"birdai/internal/domain"
)

// Canned substitute payloads served whenever a live upstream call fails.
// Shape-identical to live records; only the context string marks them as
// indicative figures.

const fallbackContext = "indicative figures; live market feed unavailable"

const FallbackGlobalMarketCapUSD = 2_500_000_000_000

func fallbackGlobal(now time.Time) domain.GlobalMarket {
	return domain.GlobalMarket{
		TotalMarketCapUSD:     FallbackGlobalMarketCapUSD,
		TotalVolume24hUSD:     98_000_000_000,
		BTCDominancePct:       52.4,
		MarketCapChange24hPct: 1.2,
		Context:               fallbackContext,
		Timestamp:             now,
	}
}

var fallbackMarkets = map[string]domain.MetricSnapshot{
	"BTC":  {Asset: "BTC", PriceUSD: 67_500, MarketCap: 1_330_000_000_000, Volume24h: 28_000_000_000, Change24hPct: 1.8},
	"ETH":  {Asset: "ETH", PriceUSD: 3_450, MarketCap: 415_000_000_000, Volume24h: 14_000_000_000, Change24hPct: 2.1},
	"SOL":  {Asset: "SOL", PriceUSD: 158, MarketCap: 73_000_000_000, Volume24h: 2_900_000_000, Change24hPct: 3.4},
	"SUI":  {Asset: "SUI", PriceUSD: 1.62, MarketCap: 4_200_000_000, Volume24h: 480_000_000, Change24hPct: 4.2},
	"LINK": {Asset: "LINK", PriceUSD: 14.8, MarketCap: 8_700_000_000, Volume24h: 390_000_000, Change24hPct: 0.9},
}

func fallbackSnapshots(now time.Time) []domain.MetricSnapshot {
	out := make([]domain.MetricSnapshot, 0, len(domain.SupportedSymbols))
	for _, symbol := range domain.SupportedSymbols {
		snap := fallbackMarkets[symbol]
		snap.Context = fallbackContext
		snap.Timestamp = now
		out = append(out, snap)
	}
	return out
}

func fallbackSuiStats(now time.Time) domain.SuiNetworkStats {
	return domain.SuiNetworkStats{
		TotalSupplyMIST:   10_000_000_000_000_000_000,
		CheckpointSeq:     58_400_000,
		ReferenceGasPrice: 750,
		Context:           fallbackContext,
		Timestamp:         now,
	}
}
