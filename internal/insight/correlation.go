package insight

import (
	"fmt"

	"birdai/internal/domain"
)

// CorrelationReading summarizes how closely the tracked assets move together
// over the last 24h, from pairwise sign agreement of the 24h changes.
type CorrelationReading struct {
	Agreement  float64
	Score      float64
	Insight    string
	Confidence Confidence
}

// ScoreCorrelation computes the share of asset pairs whose 24h changes agree
// in direction, then applies the usual additive-threshold-then-clamp rules.
func ScoreCorrelation(snaps []domain.MetricSnapshot) CorrelationReading {
	pairs, agreeing := 0, 0
	for i := 0; i < len(snaps); i++ {
		for j := i + 1; j < len(snaps); j++ {
			pairs++
			if sameSign(snaps[i].Change24hPct, snaps[j].Change24hPct) {
				agreeing++
			}
		}
	}

	agreement := 0.0
	if pairs > 0 {
		agreement = float64(agreeing) / float64(pairs)
	}

	score := 0.45
	if agreement > 0.8 {
		score += 0.25
	} else if agreement > 0.6 {
		score += 0.15
	}
	if pairs >= 6 {
		score += 0.10
	}
	score = clampScore(score)

	regime := "mixed"
	if agreement > 0.8 {
		regime = "strongly correlated"
	} else if agreement > 0.6 {
		regime = "broadly correlated"
	}

	insight := fmt.Sprintf("Tracked assets are %s: %.0f%% of pairs moved in the same direction over 24h.",
		regime, agreement*100)

	return CorrelationReading{
		Agreement:  agreement,
		Score:      score,
		Insight:    insight,
		Confidence: confidenceLabel(score),
	}
}

func sameSign(a, b float64) bool {
	return (a >= 0) == (b >= 0)
}
