package insight

import (
	"context"
	"fmt"
	"log"
	"time"

	"birdai/internal/domain"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
)

// maxReturned caps how many generated insights a single call hands back;
// everything generated is still persisted.
const maxReturned = 10

type MarketSource interface {
	AssetMarkets(ctx context.Context) []domain.MetricSnapshot
	GlobalMarket(ctx context.Context) domain.GlobalMarket
}

type ChainSource interface {
	NetworkStats(ctx context.Context) domain.SuiNetworkStats
}

type SentimentSource interface {
	Collect(ctx context.Context) []domain.SentimentRecord
}

type AnalyticsStore interface {
	InsertSnapshot(ctx context.Context, snap domain.MetricSnapshot) error
	InsertInsight(ctx context.Context, ins domain.Insight) error
	InsertSentiment(ctx context.Context, rec domain.SentimentRecord) error
	LatestSnapshots(ctx context.Context, n int) ([]domain.MetricSnapshot, error)
	LatestInsights(ctx context.Context, n int) ([]domain.Insight, error)
	LatestSentiment(ctx context.Context, n int) ([]domain.SentimentRecord, error)
}

// Service is the insight aggregator: it runs the domain scorers over adapter
// output, persists every produced insight, and returns at most the first ten.
// Calling it twice in the same minute produces duplicate insights; dedup is
// deliberately out of scope.
type Service struct {
	tracer    trace.Tracer
	markets   MarketSource
	chain     ChainSource
	sentiment SentimentSource
	store     AnalyticsStore
	now       func() time.Time
}

func NewService(tracer trace.Tracer, markets MarketSource, chain ChainSource, sentiment SentimentSource, store AnalyticsStore) *Service {
	return &Service{
		tracer:    tracer,
		markets:   markets,
		chain:     chain,
		sentiment: sentiment,
		store:     store,
		now:       time.Now,
	}
}

// GenerateInsights runs every scorer once and appends each result to the
// store. Returns the first ten insights plus the total generated count.
func (s *Service) GenerateInsights(ctx context.Context) ([]domain.Insight, int, error) {
	ctx, span := s.tracer.Start(ctx, "insight-service.generate")
	defer span.End()

	snaps := s.markets.AssetMarkets(ctx)
	global := s.markets.GlobalMarket(ctx)
	sentiments := s.sentiment.Collect(ctx)
	now := s.now().UTC()

	var insights []domain.Insight

	reading := ScoreGlobalMarket(global)
	insights = append(insights, domain.Insight{
		ID:          uuid.NewString(),
		Type:        domain.InsightMarketFundamental,
		Title:       "Global market read",
		Description: reading.Insight,
		DataPoints: map[string]string{
			"total_market_cap": fmt.Sprintf("%.0f", global.TotalMarketCapUSD),
			"btc_dominance":    fmt.Sprintf("%.1f", global.BTCDominancePct),
		},
		FundamentalContext: global.Context,
		Actionable:         reading.Score >= 0.7,
		ConfidenceScore:    reading.Score,
		Timestamp:          now,
	})

	for _, snap := range snaps {
		fund := ScoreFundamentals(snap)
		insights = append(insights, domain.Insight{
			ID:          uuid.NewString(),
			Type:        domain.InsightMarketFundamental,
			Title:       fmt.Sprintf("%s fundamentals", snap.Asset),
			Description: fund.Insight,
			DataPoints: map[string]string{
				"asset":      snap.Asset,
				"price":      fmt.Sprintf("%.2f", snap.PriceUSD),
				"change_24h": fmt.Sprintf("%.2f", snap.Change24hPct),
				"confidence": string(fund.Confidence),
			},
			FundamentalContext: snap.Context,
			Actionable:         fund.Score >= 0.7,
			ConfidenceScore:    fund.Score,
			Timestamp:          now,
		})
	}

	for _, rec := range sentiments {
		assessment := ScoreSentiment(rec)
		insights = append(insights, domain.Insight{
			ID:          uuid.NewString(),
			Type:        domain.InsightSentimentContext,
			Title:       fmt.Sprintf("%s sentiment", rec.Source),
			Description: assessment.Insight,
			DataPoints: map[string]string{
				"source": string(rec.Source),
				"score":  fmt.Sprintf("%.2f", rec.Score),
				"volume": fmt.Sprintf("%d", rec.Volume),
				"label":  assessment.Label,
			},
			FundamentalContext: rec.Context,
			Actionable:         assessment.Score >= 0.7,
			ConfidenceScore:    assessment.Score,
			Timestamp:          now,
		})
	}

	correlation := ScoreCorrelation(snaps)
	insights = append(insights, domain.Insight{
		ID:          uuid.NewString(),
		Type:        domain.InsightCorrelation,
		Title:       "Cross-asset correlation",
		Description: correlation.Insight,
		DataPoints: map[string]string{
			"agreement": fmt.Sprintf("%.2f", correlation.Agreement),
		},
		Actionable:      correlation.Score >= 0.7,
		ConfidenceScore: correlation.Score,
		Timestamp:       now,
	})

	for _, ins := range insights {
		if err := s.store.InsertInsight(ctx, ins); err != nil {
			return nil, 0, fmt.Errorf("persist insight %s: %w", ins.Type, err)
		}
	}

	total := len(insights)
	if len(insights) > maxReturned {
		insights = insights[:maxReturned]
	}
	return insights, total, nil
}

// LatestInsights lists stored insights newest-first.
func (s *Service) LatestInsights(ctx context.Context, n int) ([]domain.Insight, error) {
	ctx, span := s.tracer.Start(ctx, "insight-service.latest")
	defer span.End()

	return s.store.LatestInsights(ctx, n)
}

// CollectSnapshots fetches current asset markets, scores each snapshot, and
// appends them to the store.
func (s *Service) CollectSnapshots(ctx context.Context) (int, error) {
	ctx, span := s.tracer.Start(ctx, "insight-service.collect-snapshots")
	defer span.End()

	snaps := s.markets.AssetMarkets(ctx)
	for _, snap := range snaps {
		snap.FundamentalScore = ScoreFundamentals(snap).Score
		if err := s.store.InsertSnapshot(ctx, snap); err != nil {
			return 0, fmt.Errorf("persist snapshot %s: %w", snap.Asset, err)
		}
	}
	return len(snaps), nil
}

// LatestSnapshots lists stored market snapshots newest-first.
func (s *Service) LatestSnapshots(ctx context.Context, n int) ([]domain.MetricSnapshot, error) {
	ctx, span := s.tracer.Start(ctx, "insight-service.latest-snapshots")
	defer span.End()

	return s.store.LatestSnapshots(ctx, n)
}

// CollectSentiment pulls one round of sentiment readings and stores them.
func (s *Service) CollectSentiment(ctx context.Context) ([]domain.SentimentRecord, error) {
	ctx, span := s.tracer.Start(ctx, "insight-service.collect-sentiment")
	defer span.End()

	records := s.sentiment.Collect(ctx)
	for _, rec := range records {
		if err := s.store.InsertSentiment(ctx, rec); err != nil {
			return nil, fmt.Errorf("persist sentiment %s: %w", rec.Source, err)
		}
	}
	return records, nil
}

// LatestSentiment lists stored sentiment newest-first; if the store is still
// empty it collects a round live so the endpoint never returns nothing.
func (s *Service) LatestSentiment(ctx context.Context, n int) ([]domain.SentimentRecord, error) {
	ctx, span := s.tracer.Start(ctx, "insight-service.latest-sentiment")
	defer span.End()

	records, err := s.store.LatestSentiment(ctx, n)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return s.CollectSentiment(ctx)
	}
	return records, nil
}

// RecordChainStats snapshots Sui network figures as a real_time insight.
func (s *Service) RecordChainStats(ctx context.Context) error {
	ctx, span := s.tracer.Start(ctx, "insight-service.record-chain-stats")
	defer span.End()

	stats := s.chain.NetworkStats(ctx)
	ins := domain.Insight{
		ID:    uuid.NewString(),
		Type:  domain.InsightRealTime,
		Title: "Sui network pulse",
		Description: fmt.Sprintf("Sui is at checkpoint %d with a reference gas price of %d MIST.",
			stats.CheckpointSeq, stats.ReferenceGasPrice),
		DataPoints: map[string]string{
			"checkpoint_seq":      fmt.Sprintf("%d", stats.CheckpointSeq),
			"reference_gas_price": fmt.Sprintf("%d", stats.ReferenceGasPrice),
			"total_supply_mist":   fmt.Sprintf("%d", stats.TotalSupplyMIST),
		},
		FundamentalContext: stats.Context,
		Actionable:         false,
		ConfidenceScore:    clampScore(0.6),
		Timestamp:          s.now().UTC(),
	}
	if err := s.store.InsertInsight(ctx, ins); err != nil {
		return fmt.Errorf("persist chain insight: %w", err)
	}
	log.Printf("recorded sui network stats at checkpoint %d", stats.CheckpointSeq)
	return nil
}
