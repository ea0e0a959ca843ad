package insight

import (
	"context"
	"errors"
	"testing"
	"time"

	"birdai/internal/domain"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
)

var testTracer = trace.NewNoopTracerProvider().Tracer("insight-test")

type mockMarkets struct {
	snaps  []domain.MetricSnapshot
	global domain.GlobalMarket
}

func (m *mockMarkets) AssetMarkets(context.Context) []domain.MetricSnapshot { return m.snaps }
func (m *mockMarkets) GlobalMarket(context.Context) domain.GlobalMarket     { return m.global }

type mockChain struct {
	stats domain.SuiNetworkStats
}

func (m *mockChain) NetworkStats(context.Context) domain.SuiNetworkStats { return m.stats }

type mockSentiment struct {
	records []domain.SentimentRecord
	calls   int
}

func (m *mockSentiment) Collect(context.Context) []domain.SentimentRecord {
	m.calls++
	return m.records
}

type mockStore struct {
	snapshots  []domain.MetricSnapshot
	insights   []domain.Insight
	sentiments []domain.SentimentRecord
	insertErr  error
}

func (m *mockStore) InsertSnapshot(_ context.Context, snap domain.MetricSnapshot) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.snapshots = append(m.snapshots, snap)
	return nil
}

func (m *mockStore) InsertInsight(_ context.Context, ins domain.Insight) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.insights = append(m.insights, ins)
	return nil
}

func (m *mockStore) InsertSentiment(_ context.Context, rec domain.SentimentRecord) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.sentiments = append(m.sentiments, rec)
	return nil
}

func (m *mockStore) LatestSnapshots(_ context.Context, n int) ([]domain.MetricSnapshot, error) {
	if n > len(m.snapshots) {
		n = len(m.snapshots)
	}
	return m.snapshots[:n], nil
}

func (m *mockStore) LatestInsights(_ context.Context, n int) ([]domain.Insight, error) {
	if n > len(m.insights) {
		n = len(m.insights)
	}
	return m.insights[:n], nil
}

func (m *mockStore) LatestSentiment(context.Context, int) ([]domain.SentimentRecord, error) {
	return m.sentiments, nil
}

func testService(store *mockStore) (*Service, *mockSentiment) {
	snaps := make([]domain.MetricSnapshot, 0, len(domain.SupportedSymbols))
	for _, symbol := range domain.SupportedSymbols {
		snaps = append(snaps, domain.MetricSnapshot{Asset: symbol, PriceUSD: 100, MarketCap: 1e10, Volume24h: 1e9, Change24hPct: 1})
	}
	sentiment := &mockSentiment{records: []domain.SentimentRecord{
		{Source: domain.SourceReddit, Score: 0.4, Volume: 1500},
		{Source: domain.SourceTwitter, Score: 0.1, Volume: 8000},
		{Source: domain.SourceNews, Score: -0.1, Volume: 300},
		{Source: domain.SourceInstitutional, Score: 0.5, Volume: 45},
	}}
	svc := NewService(
		testTracer,
		&mockMarkets{snaps: snaps, global: domain.GlobalMarket{TotalMarketCapUSD: 2.5e12, TotalVolume24hUSD: 9e10, BTCDominancePct: 52}},
		&mockChain{stats: domain.SuiNetworkStats{CheckpointSeq: 100, ReferenceGasPrice: 750, TotalSupplyMIST: 1}},
		sentiment,
		store,
	)
	svc.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	return svc, sentiment
}

func TestGenerateInsightsPersistsEverythingReturnsTen(t *testing.T) {
	t.Parallel()

	store := &mockStore{}
	svc, _ := testService(store)

	returned, total, err := svc.GenerateInsights(context.Background())
	require.NoError(t, err)

	// 1 global + 5 assets + 4 sentiment + 1 correlation
	require.Equal(t, 11, total)
	require.Len(t, returned, 10)
	require.Len(t, store.insights, 11, "every generated insight must be persisted")

	for _, ins := range store.insights {
		require.NotEmpty(t, ins.ID)
		require.NotEmpty(t, ins.Description)
		require.GreaterOrEqual(t, ins.ConfidenceScore, 0.0)
		require.LessOrEqual(t, ins.ConfidenceScore, 0.95)
		require.False(t, ins.Timestamp.IsZero())
	}
}

func TestGenerateInsightsNoDedupAcrossCalls(t *testing.T) {
	t.Parallel()

	store := &mockStore{}
	svc, _ := testService(store)

	_, _, err := svc.GenerateInsights(context.Background())
	require.NoError(t, err)
	_, _, err = svc.GenerateInsights(context.Background())
	require.NoError(t, err)
	require.Len(t, store.insights, 22, "repeated calls append duplicates")
}

func TestGenerateInsightsStoreFailure(t *testing.T) {
	t.Parallel()

	store := &mockStore{insertErr: errors.New("disk full")}
	svc, _ := testService(store)

	_, _, err := svc.GenerateInsights(context.Background())
	require.Error(t, err)
}

func TestCollectSnapshotsScoresAndStores(t *testing.T) {
	t.Parallel()

	store := &mockStore{}
	svc, _ := testService(store)

	n, err := svc.CollectSnapshots(context.Background())
	require.NoError(t, err)
	require.Equal(t, len(domain.SupportedSymbols), n)
	for _, snap := range store.snapshots {
		require.Greater(t, snap.FundamentalScore, 0.0)
		require.LessOrEqual(t, snap.FundamentalScore, 0.95)
	}
}

func TestLatestSentimentCollectsWhenEmpty(t *testing.T) {
	t.Parallel()

	store := &mockStore{}
	svc, sentiment := testService(store)

	records, err := svc.LatestSentiment(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, records, 4)
	require.Equal(t, 1, sentiment.calls, "empty store should trigger one live collection")

	// Second read now hits the store, not the feed.
	_, err = svc.LatestSentiment(context.Background(), 10)
	require.NoError(t, err)
	require.Equal(t, 1, sentiment.calls)
}

func TestRecordChainStats(t *testing.T) {
	t.Parallel()

	store := &mockStore{}
	svc, _ := testService(store)

	require.NoError(t, svc.RecordChainStats(context.Background()))
	require.Len(t, store.insights, 1)
	require.Equal(t, domain.InsightRealTime, store.insights[0].Type)
	require.False(t, store.insights[0].Actionable)
}
