package job

import (
	"context"
	"fmt"
	"log"

	"birdai/internal/insight"

	"github.com/robfig/cron/v3"
)

// Default schedules, overridable through config for local experimentation.
const (
	DefaultSnapshotSpec    = "*/5 * * * *"
	DefaultSentimentSpec   = "*/15 * * * *"
	DefaultInsightSpec     = "0 * * * *"
	DefaultChainStatsSpec  = "30 0 * * *"
	DefaultCorrelationSpec = "0 6 * * 1"
	heartbeatSpec          = "* * * * *"
)

// Scheduler drives the background collection and insight jobs. Each job
// logs its own failures and moves on; a bad cycle never stops the cron
// loop, and there is no overlap guard because every job finishes well
// inside its interval.
type Scheduler struct {
	cron     *cron.Cron
	insights *insight.Service
	ctx      context.Context
}

func NewScheduler(ctx context.Context, insights *insight.Service) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		insights: insights,
		ctx:      ctx,
	}
}

// RegisterAll wires every recurring job. Empty specs fall back to the
// defaults above.
func (s *Scheduler) RegisterAll(snapshotSpec, sentimentSpec, insightSpec string) error {
	if snapshotSpec == "" {
		snapshotSpec = DefaultSnapshotSpec
	}
	if sentimentSpec == "" {
		sentimentSpec = DefaultSentimentSpec
	}
	if insightSpec == "" {
		insightSpec = DefaultInsightSpec
	}

	if _, err := s.cron.AddFunc(snapshotSpec, s.collectSnapshots); err != nil {
		return fmt.Errorf("register snapshot job: %w", err)
	}
	if _, err := s.cron.AddFunc(sentimentSpec, s.collectSentiment); err != nil {
		return fmt.Errorf("register sentiment job: %w", err)
	}
	if _, err := s.cron.AddFunc(insightSpec, s.generateInsights); err != nil {
		return fmt.Errorf("register insight job: %w", err)
	}
	if _, err := s.cron.AddFunc(DefaultChainStatsSpec, s.recordChainStats); err != nil {
		return fmt.Errorf("register chain stats job: %w", err)
	}
	if _, err := s.cron.AddFunc(DefaultCorrelationSpec, s.generateInsights); err != nil {
		return fmt.Errorf("register correlation sweep: %w", err)
	}
	if _, err := s.cron.AddFunc(heartbeatSpec, s.heartbeat); err != nil {
		return fmt.Errorf("register heartbeat: %w", err)
	}
	return nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	log.Println("[INFO] scheduler started")
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunStartupCollection primes the store so the dashboard has data right
// after boot instead of waiting for the first cron tick.
func (s *Scheduler) RunStartupCollection() {
	s.collectSnapshots()
	s.collectSentiment()
	s.generateInsights()
}

func (s *Scheduler) collectSnapshots() {
	n, err := s.insights.CollectSnapshots(s.ctx)
	if err != nil {
		log.Printf("[ERROR] collect snapshots: %v", err)
		return
	}
	log.Printf("[INFO] collected %d market snapshots", n)
}

func (s *Scheduler) collectSentiment() {
	records, err := s.insights.CollectSentiment(s.ctx)
	if err != nil {
		log.Printf("[ERROR] collect sentiment: %v", err)
		return
	}
	log.Printf("[INFO] collected %d sentiment readings", len(records))
}

func (s *Scheduler) generateInsights() {
	_, total, err := s.insights.GenerateInsights(s.ctx)
	if err != nil {
		log.Printf("[ERROR] generate insights: %v", err)
		return
	}
	log.Printf("[INFO] generated %d insights", total)
}

// heartbeat is a once-a-minute liveness line for log-based monitoring.
func (s *Scheduler) heartbeat() {
	log.Println("[INFO] scheduler heartbeat")
}

func (s *Scheduler) recordChainStats() {
	if err := s.insights.RecordChainStats(s.ctx); err != nil {
		log.Printf("[ERROR] record chain stats: %v", err)
	}
}
