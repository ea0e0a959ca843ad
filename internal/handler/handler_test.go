package handler

import (
	"context"
	"testing"

	"birdai/internal/auth"
	"birdai/internal/domain"
	"birdai/internal/insight"
	"birdai/internal/ledger"
	"birdai/internal/provider"
	"birdai/internal/service"
	"birdai/internal/store"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
)

var testTracer = trace.NewNoopTracerProvider().Tracer("handler-test")

func init() {
	gin.SetMode(gin.TestMode)
}

// stubMarket serves the documented fallback figures, standing in for a
// provider whose upstream is down.
type stubMarket struct{}

func (stubMarket) AssetMarkets(context.Context) []domain.MetricSnapshot {
	return []domain.MetricSnapshot{
		{Asset: "BTC", PriceUSD: 67_500, MarketCap: 1.33e12, Volume24h: 2.8e10, Change24hPct: 1.8},
		{Asset: "ETH", PriceUSD: 3_450, MarketCap: 4.15e11, Volume24h: 1.4e10, Change24hPct: 2.1},
	}
}

func (stubMarket) GlobalMarket(context.Context) domain.GlobalMarket {
	return domain.GlobalMarket{
		TotalMarketCapUSD: provider.FallbackGlobalMarketCapUSD,
		TotalVolume24hUSD: 9.8e10,
		BTCDominancePct:   52.4,
	}
}

type stubChain struct{}

func (stubChain) NetworkStats(context.Context) domain.SuiNetworkStats {
	return domain.SuiNetworkStats{CheckpointSeq: 58_400_000, ReferenceGasPrice: 750}
}

// memStore is an in-memory insight.AnalyticsStore for handler tests.
type memStore struct {
	snapshots  []domain.MetricSnapshot
	insights   []domain.Insight
	sentiments []domain.SentimentRecord
}

func (m *memStore) InsertSnapshot(_ context.Context, snap domain.MetricSnapshot) error {
	m.snapshots = append(m.snapshots, snap)
	return nil
}

func (m *memStore) LatestSnapshots(_ context.Context, n int) ([]domain.MetricSnapshot, error) {
	if n > len(m.snapshots) {
		n = len(m.snapshots)
	}
	return m.snapshots[:n], nil
}

func (m *memStore) InsertInsight(_ context.Context, ins domain.Insight) error {
	m.insights = append(m.insights, ins)
	return nil
}

func (m *memStore) InsertSentiment(_ context.Context, rec domain.SentimentRecord) error {
	m.sentiments = append(m.sentiments, rec)
	return nil
}

func (m *memStore) LatestInsights(_ context.Context, n int) ([]domain.Insight, error) {
	if n > len(m.insights) {
		n = len(m.insights)
	}
	return m.insights[:n], nil
}

func (m *memStore) LatestSentiment(_ context.Context, n int) ([]domain.SentimentRecord, error) {
	if n > len(m.sentiments) {
		n = len(m.sentiments)
	}
	return m.sentiments[:n], nil
}

func newTestRouter(t *testing.T) (*gin.Engine, *Handler) {
	t.Helper()

	emails, err := store.NewEmailStore(t.TempDir())
	if err != nil {
		t.Fatalf("email store: %v", err)
	}

	insights := insight.NewService(testTracer, stubMarket{}, stubChain{}, provider.NewSentimentFeed(testTracer), &memStore{})
	market := service.NewMarketService(testTracer, stubMarket{}, stubChain{}, nil)
	authenticator := auth.New("test-secret", "admin", "birdai2025", "earlybird")
	vault := ledger.New(1_000_000)

	h := New(testTracer, market, insights, emails, authenticator, vault)
	r := gin.New()
	h.RegisterRoutes(r)
	return r, h
}
