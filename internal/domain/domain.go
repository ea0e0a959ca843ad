package domain

import "time"

type Asset struct {
	Symbol string
	Name   string
}

// SupportedSymbols lists the assets the dashboard tracks.
var SupportedSymbols = []string{"BTC", "ETH", "SOL", "SUI", "LINK"}

var CoinGeckoID = map[string]string{
	"BTC":  "bitcoin",
	"ETH":  "ethereum",
	"SOL":  "solana",
	"SUI":  "sui",
	"LINK": "chainlink",
}

var CoinGeckoIDToSymbol = func() map[string]string {
	m := make(map[string]string, len(CoinGeckoID))
	for symbol, id := range CoinGeckoID {
		m[id] = symbol
	}
	return m
}()

// MetricSnapshot is one asset's market reading at a point in time.
// Snapshots are append-only: once stored they are never updated.
type MetricSnapshot struct {
	Asset            string    `json:"asset"`
	PriceUSD         float64   `json:"price"`
	MarketCap        float64   `json:"market_cap"`
	Volume24h        float64   `json:"volume_24h"`
	Change24hPct     float64   `json:"change_24h"`
	FundamentalScore float64   `json:"fundamental_score"`
	Context          string    `json:"context"`
	Timestamp        time.Time `json:"timestamp"`
}

// GlobalMarket aggregates market-wide figures from the /global endpoint.
type GlobalMarket struct {
	TotalMarketCapUSD     float64   `json:"total_market_cap"`
	TotalVolume24hUSD     float64   `json:"total_volume_24h"`
	BTCDominancePct       float64   `json:"btc_dominance"`
	MarketCapChange24hPct float64   `json:"market_cap_change_24h"`
	Context               string    `json:"context"`
	Timestamp             time.Time `json:"timestamp"`
}

// SuiNetworkStats holds on-chain figures from a Sui full node.
type SuiNetworkStats struct {
	TotalSupplyMIST   uint64    `json:"total_supply_mist"`
	CheckpointSeq     uint64    `json:"checkpoint_seq"`
	ReferenceGasPrice uint64    `json:"reference_gas_price"`
	Context           string    `json:"context"`
	Timestamp         time.Time `json:"timestamp"`
}

type InsightType string

const (
	InsightMarketFundamental InsightType = "market_fundamental"
	InsightSentimentContext  InsightType = "sentiment_context"
	InsightCorrelation       InsightType = "correlation_analysis"
	InsightRealTime          InsightType = "real_time"
)

// Insight is a stored, human-readable interpretation derived from one or
// more snapshots. Never mutated or deleted after creation.
type Insight struct {
	ID                 string            `json:"id"`
	Type               InsightType       `json:"insight_type"`
	Title              string            `json:"title"`
	Description        string            `json:"description"`
	DataPoints         map[string]string `json:"data_points,omitempty"`
	FundamentalContext string            `json:"fundamental_context,omitempty"`
	Actionable         bool              `json:"actionable"`
	ConfidenceScore    float64           `json:"confidence_score"`
	Timestamp          time.Time         `json:"timestamp"`
}

type SentimentSource string

const (
	SourceReddit        SentimentSource = "reddit"
	SourceTwitter       SentimentSource = "twitter"
	SourceNews          SentimentSource = "news"
	SourceInstitutional SentimentSource = "institutional"
)

var SentimentSources = []SentimentSource{SourceReddit, SourceTwitter, SourceNews, SourceInstitutional}

// SentimentRecord carries one source's reading. Score is always normalized
// to [-1, 1] at the boundary regardless of the feed's native range.
type SentimentRecord struct {
	Source             SentimentSource `json:"source"`
	Asset              string          `json:"asset,omitempty"`
	Score              float64         `json:"sentiment_score"`
	Volume             int             `json:"volume"`
	Keywords           []string        `json:"keywords,omitempty"`
	Context            string          `json:"context,omitempty"`
	FundamentalContext string          `json:"fundamental_context,omitempty"`
	Timestamp          time.Time       `json:"timestamp"`
}

// EmailCapture is one submission from the marketing site's capture forms.
// Duplicates accumulate; uniqueness is not enforced.
type EmailCapture struct {
	Email     string    `json:"email"`
	Source    string    `json:"source,omitempty"`
	FileName  string    `json:"fileName,omitempty"`
	Name      string    `json:"name,omitempty"`
	Company   string    `json:"company,omitempty"`
	Message   string    `json:"message,omitempty"`
	UserAgent string    `json:"userAgent,omitempty"`
	IP        string    `json:"ip,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
