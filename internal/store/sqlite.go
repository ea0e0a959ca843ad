package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"birdai/internal/domain"

	"go.opentelemetry.io/otel/trace"
	_ "modernc.org/sqlite"
)

// storedTimeLayout is a fixed-width UTC timestamp. RFC3339Nano trims
// trailing zeros, which breaks lexicographic ORDER BY within a second;
// padding the fraction to nine digits keeps text order equal to time order.
const storedTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// AnalyticsStore persists snapshots, insights, and sentiment to SQLite.
// All three tables are append-only: there are no update or delete paths.
type AnalyticsStore struct {
	db     *sql.DB
	tracer trace.Tracer
}

// NewAnalyticsStore opens (or creates) the database and runs the idempotent
// schema setup.
func NewAnalyticsStore(dbPath string, tracer trace.Tracer) (*AnalyticsStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL keeps dashboard reads cheap while the scheduler writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &AnalyticsStore{db: db, tracer: tracer}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("analytics store opened: %s", dbPath)
	return s, nil
}

func (s *AnalyticsStore) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS metric_snapshots (
			id                INTEGER PRIMARY KEY AUTOINCREMENT,
			asset             TEXT NOT NULL,
			price             REAL,
			market_cap        REAL,
			volume_24h        REAL,
			change_24h        REAL,
			fundamental_score REAL,
			context           TEXT,
			timestamp         TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_snapshots_ts ON metric_snapshots(timestamp DESC)`,

		`CREATE TABLE IF NOT EXISTS insights (
			id                  TEXT PRIMARY KEY,
			insight_type        TEXT NOT NULL,
			title               TEXT,
			description         TEXT,
			data_points         TEXT,
			fundamental_context TEXT,
			actionable          INTEGER NOT NULL DEFAULT 0,
			confidence_score    REAL,
			timestamp           TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_insights_ts ON insights(timestamp DESC)`,

		`CREATE TABLE IF NOT EXISTS sentiment_records (
			id              INTEGER PRIMARY KEY AUTOINCREMENT,
			source          TEXT NOT NULL,
			asset           TEXT,
			sentiment_score REAL,
			volume          INTEGER,
			keywords        TEXT,
			context         TEXT,
			timestamp       TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_sentiment_ts ON sentiment_records(timestamp DESC)`,
	}

	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:40], err)
		}
	}
	return nil
}

func (s *AnalyticsStore) InsertSnapshot(ctx context.Context, snap domain.MetricSnapshot) error {
	ctx, span := s.tracer.Start(ctx, "analytics-store.insert-snapshot")
	defer span.End()

	ts := snap.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO metric_snapshots (asset, price, market_cap, volume_24h, change_24h, fundamental_score, context, timestamp)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		snap.Asset, snap.PriceUSD, snap.MarketCap, snap.Volume24h, snap.Change24hPct,
		snap.FundamentalScore, snap.Context, ts.UTC().Format(storedTimeLayout),
	)
	return err
}

func (s *AnalyticsStore) LatestSnapshots(ctx context.Context, n int) ([]domain.MetricSnapshot, error) {
	ctx, span := s.tracer.Start(ctx, "analytics-store.latest-snapshots")
	defer span.End()

	rows, err := s.db.QueryContext(ctx,
		`SELECT asset, price, market_cap, volume_24h, change_24h, fundamental_score, context, timestamp
		 FROM metric_snapshots ORDER BY timestamp DESC LIMIT ?`, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snaps []domain.MetricSnapshot
	for rows.Next() {
		var snap domain.MetricSnapshot
		var ts string
		if err := rows.Scan(&snap.Asset, &snap.PriceUSD, &snap.MarketCap, &snap.Volume24h,
			&snap.Change24hPct, &snap.FundamentalScore, &snap.Context, &ts); err != nil {
			return nil, err
		}
		snap.Timestamp = parseStoredTime(ts)
		snaps = append(snaps, snap)
	}
	return snaps, rows.Err()
}

func (s *AnalyticsStore) InsertInsight(ctx context.Context, ins domain.Insight) error {
	ctx, span := s.tracer.Start(ctx, "analytics-store.insert-insight")
	defer span.End()

	dataPoints, err := json.Marshal(ins.DataPoints)
	if err != nil {
		return fmt.Errorf("marshal data points: %w", err)
	}

	ts := ins.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO insights (id, insight_type, title, description, data_points, fundamental_context, actionable, confidence_score, timestamp)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		ins.ID, string(ins.Type), ins.Title, ins.Description, string(dataPoints),
		ins.FundamentalContext, boolToInt(ins.Actionable), ins.ConfidenceScore,
		ts.UTC().Format(storedTimeLayout),
	)
	return err
}

func (s *AnalyticsStore) LatestInsights(ctx context.Context, n int) ([]domain.Insight, error) {
	ctx, span := s.tracer.Start(ctx, "analytics-store.latest-insights")
	defer span.End()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, insight_type, title, description, data_points, fundamental_context, actionable, confidence_score, timestamp
		 FROM insights ORDER BY timestamp DESC LIMIT ?`, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var insights []domain.Insight
	for rows.Next() {
		var ins domain.Insight
		var insType, dataPoints, ts string
		var actionable int
		if err := rows.Scan(&ins.ID, &insType, &ins.Title, &ins.Description, &dataPoints,
			&ins.FundamentalContext, &actionable, &ins.ConfidenceScore, &ts); err != nil {
			return nil, err
		}
		ins.Type = domain.InsightType(insType)
		ins.Actionable = actionable != 0
		ins.Timestamp = parseStoredTime(ts)
		if dataPoints != "" && dataPoints != "null" {
			if err := json.Unmarshal([]byte(dataPoints), &ins.DataPoints); err != nil {
				return nil, fmt.Errorf("unmarshal data points for %s: %w", ins.ID, err)
			}
		}
		insights = append(insights, ins)
	}
	return insights, rows.Err()
}

func (s *AnalyticsStore) InsertSentiment(ctx context.Context, rec domain.SentimentRecord) error {
	ctx, span := s.tracer.Start(ctx, "analytics-store.insert-sentiment")
	defer span.End()

	ts := rec.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sentiment_records (source, asset, sentiment_score, volume, keywords, context, timestamp)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		string(rec.Source), rec.Asset, rec.Score, rec.Volume,
		strings.Join(rec.Keywords, ","), rec.Context, ts.UTC().Format(storedTimeLayout),
	)
	return err
}

func (s *AnalyticsStore) LatestSentiment(ctx context.Context, n int) ([]domain.SentimentRecord, error) {
	ctx, span := s.tracer.Start(ctx, "analytics-store.latest-sentiment")
	defer span.End()

	rows, err := s.db.QueryContext(ctx,
		`SELECT source, asset, sentiment_score, volume, keywords, context, timestamp
		 FROM sentiment_records ORDER BY timestamp DESC LIMIT ?`, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.SentimentRecord
	for rows.Next() {
		var rec domain.SentimentRecord
		var source, keywords, ts string
		if err := rows.Scan(&source, &rec.Asset, &rec.Score, &rec.Volume, &keywords, &rec.Context, &ts); err != nil {
			return nil, err
		}
		rec.Source = domain.SentimentSource(source)
		if keywords != "" {
			rec.Keywords = strings.Split(keywords, ",")
		}
		rec.Timestamp = parseStoredTime(ts)
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (s *AnalyticsStore) Close() error {
	return s.db.Close()
}

func parseStoredTime(ts string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		return time.Time{}
	}
	return t
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
