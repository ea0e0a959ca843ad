package provider

import (
	"context"
	"math/rand"
	"time"

	"birdai/internal/domain"
	"birdai/internal/insight"

	"go.opentelemetry.io/otel/trace"
)

// SentimentFeed produces demo sentiment readings: canned per-source baselines
// with random jitter so the dashboard looks alive. There is no real social
// or news ingestion behind it.
type SentimentFeed struct {
	tracer trace.Tracer
	rng    *rand.Rand
	now    func() time.Time
}

// sentimentBaseline describes one source's canned reading in that source's
// own units. Social sources report in [-1, 1]; news and institutional
// desks report a [0, 1] positivity fraction. Collect normalizes everything
// to the [-1, 1] convention before a record leaves this package.
type sentimentBaseline struct {
	score    float64
	lo, hi   float64
	volume   int
	keywords []string
	context  string
}

var sentimentBaselines = map[domain.SentimentSource]sentimentBaseline{
	domain.SourceReddit: {
		score:    0.35,
		lo:       -1,
		hi:       1,
		volume:   2400,
		keywords: []string{"accumulation", "halving", "hodl"},
		context:  "retail discussion leans constructive",
	},
	domain.SourceTwitter: {
		score:    0.15,
		lo:       -1,
		hi:       1,
		volume:   8200,
		keywords: []string{"breakout", "etf", "altseason"},
		context:  "mixed chatter with bullish skew",
	},
	domain.SourceNews: {
		score:    0.525,
		lo:       0,
		hi:       1,
		volume:   340,
		keywords: []string{"regulation", "institutional", "adoption"},
		context:  "coverage balanced between policy risk and adoption",
	},
	domain.SourceInstitutional: {
		score:    0.725,
		lo:       0,
		hi:       1,
		volume:   60,
		keywords: []string{"allocation", "treasury", "custody"},
		context:  "desk commentary constructive on digital assets",
	},
}

func NewSentimentFeed(tracer trace.Tracer) *SentimentFeed {
	return &SentimentFeed{
		tracer: tracer,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		now:    time.Now,
	}
}

// Collect returns one jittered record per source. Each raw reading is
// jittered in its source's native units, then mapped onto [-1, 1], so every
// stored score follows one convention regardless of how the source reports.
func (f *SentimentFeed) Collect(ctx context.Context) []domain.SentimentRecord {
	_, span := f.tracer.Start(ctx, "sentiment-feed.collect")
	defer span.End()

	now := f.now().UTC()
	records := make([]domain.SentimentRecord, 0, len(domain.SentimentSources))
	for _, source := range domain.SentimentSources {
		base := sentimentBaselines[source]
		raw := base.score + (f.rng.Float64()-0.5)*0.15*(base.hi-base.lo)
		score := insight.NormalizeSentiment(raw, base.lo, base.hi)
		volume := base.volume + f.rng.Intn(base.volume/4+1)

		records = append(records, domain.SentimentRecord{
			Source:    source,
			Score:     score,
			Volume:    volume,
			Keywords:  base.keywords,
			Context:   base.context,
			Timestamp: now,
		})
	}
	return records
}
