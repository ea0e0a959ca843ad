package insight

import (
	"fmt"
	"math"

	"birdai/internal/domain"
)

// SentimentAssessment is the scored interpretation of one source's reading.
type SentimentAssessment struct {
	Score      float64
	Label      string
	Insight    string
	Confidence Confidence
}

// NormalizeSentiment maps a raw feed value in [lo, hi] onto [-1, 1].
// Some feeds report [0,1], others [-1,1]; every record is normalized here
// at the boundary so downstream code sees a single convention.
func NormalizeSentiment(raw, lo, hi float64) float64 {
	if hi <= lo {
		return 0
	}
	v := (raw-lo)/(hi-lo)*2 - 1
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return math.Min(math.Max(v, -1), 1)
}

// ScoreSentiment applies the additive threshold rules to a normalized
// sentiment record. Pure function.
func ScoreSentiment(rec domain.SentimentRecord) SentimentAssessment {
	score := 0.4
	if rec.Volume > 1000 {
		score += 0.15
	}
	if math.Abs(rec.Score) > 0.5 {
		score += 0.20
	} else if math.Abs(rec.Score) > 0.25 {
		score += 0.10
	}
	if rec.Source == domain.SourceInstitutional {
		score += 0.15
	}
	score = clampScore(score)

	label := "neutral"
	if rec.Score > 0.2 {
		label = "bullish"
	} else if rec.Score < -0.2 {
		label = "bearish"
	}

	insight := fmt.Sprintf("%s sentiment reads %s (%.2f) across %d mentions.",
		rec.Source, label, rec.Score, rec.Volume)

	return SentimentAssessment{
		Score:      score,
		Label:      label,
		Insight:    insight,
		Confidence: confidenceLabel(score),
	}
}
