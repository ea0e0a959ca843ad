package insight

import (
	"testing"

	"birdai/internal/domain"
)

func snapsWithChanges(changes ...float64) []domain.MetricSnapshot {
	out := make([]domain.MetricSnapshot, len(changes))
	for i, c := range changes {
		out[i] = domain.MetricSnapshot{Asset: "A", Change24hPct: c}
	}
	return out
}

func TestScoreCorrelationFullAgreement(t *testing.T) {
	t.Parallel()

	got := ScoreCorrelation(snapsWithChanges(1, 2, 3, 4))
	if got.Agreement != 1 {
		t.Fatalf("expected full agreement, got %f", got.Agreement)
	}
	if got.Score < 0 || got.Score > scoreCeiling {
		t.Fatalf("score out of range: %f", got.Score)
	}
}

func TestScoreCorrelationMixed(t *testing.T) {
	t.Parallel()

	got := ScoreCorrelation(snapsWithChanges(1, -1, 1, -1))
	// 6 pairs, 2 agreeing (1&1, -1&-1)
	want := 2.0 / 6.0
	if got.Agreement != want {
		t.Fatalf("expected agreement %f, got %f", want, got.Agreement)
	}
}

func TestScoreCorrelationDegenerate(t *testing.T) {
	t.Parallel()

	for _, snaps := range [][]domain.MetricSnapshot{nil, snapsWithChanges(1)} {
		got := ScoreCorrelation(snaps)
		if got.Agreement != 0 {
			t.Fatalf("expected zero agreement with no pairs, got %f", got.Agreement)
		}
		if got.Score < 0 || got.Score > scoreCeiling {
			t.Fatalf("score out of range: %f", got.Score)
		}
	}
}
