package insight

import (
	"fmt"
	"math"

	"birdai/internal/domain"
)

// scoreCeiling caps every derived score. Nothing the scorer produces ever
// claims more than 0.95 confidence.
const scoreCeiling = 0.95

type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// FundamentalScore is the rule-based heuristic reading for one asset.
// The thresholds are deliberately fixed literals: this is a marketing
// heuristic, not a model.
type FundamentalScore struct {
	Score      float64
	Insight    string
	Confidence Confidence
}

// ScoreFundamentals applies additive threshold rules to a snapshot and
// clamps the total. Pure function: same snapshot, same result.
func ScoreFundamentals(snap domain.MetricSnapshot) FundamentalScore {
	score := 0.45
	if snap.MarketCap > 1_000_000_000_000 {
		score += 0.15
	} else if snap.MarketCap > 100_000_000_000 {
		score += 0.10
	}
	if snap.Volume24h > 10_000_000_000 {
		score += 0.10
	}
	if snap.Change24hPct > 5 {
		score += 0.10
	}
	if snap.Change24hPct > 0 {
		score += 0.05
	}
	score = clampScore(score)

	trend := "consolidating"
	if snap.Change24hPct > 2 {
		trend = "gaining momentum"
	} else if snap.Change24hPct < -2 {
		trend = "cooling off"
	}
	insight := fmt.Sprintf("%s trades at $%.2f and is %s, with 24h volume of $%.0fM supporting a fundamental score of %.2f.",
		snap.Asset, snap.PriceUSD, trend, snap.Volume24h/1e6, score)

	return FundamentalScore{
		Score:      score,
		Insight:    insight,
		Confidence: confidenceLabel(score),
	}
}

// GlobalReading is the market-wide counterpart to FundamentalScore.
type GlobalReading struct {
	Score      float64
	Insight    string
	Confidence Confidence
}

// ScoreGlobalMarket rates the overall market from the /global figures.
func ScoreGlobalMarket(global domain.GlobalMarket) GlobalReading {
	score := 0.5
	if global.TotalMarketCapUSD > 2_000_000_000_000 {
		score += 0.15
	}
	if global.TotalVolume24hUSD > 80_000_000_000 {
		score += 0.10
	}
	if global.BTCDominancePct > 50 {
		score += 0.05
	}
	if global.MarketCapChange24hPct > 0 {
		score += 0.10
	}
	score = clampScore(score)

	direction := "flat"
	if global.MarketCapChange24hPct > 0.5 {
		direction = "expanding"
	} else if global.MarketCapChange24hPct < -0.5 {
		direction = "contracting"
	}
	insight := fmt.Sprintf("Total crypto market cap stands at $%.2fT and is %s over 24h, with BTC dominance at %.1f%%.",
		global.TotalMarketCapUSD/1e12, direction, global.BTCDominancePct)

	return GlobalReading{
		Score:      score,
		Insight:    insight,
		Confidence: confidenceLabel(score),
	}
}

func confidenceLabel(score float64) Confidence {
	switch {
	case score >= 0.8:
		return ConfidenceHigh
	case score >= 0.6:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

func clampScore(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return math.Min(math.Max(v, 0), scoreCeiling)
}
