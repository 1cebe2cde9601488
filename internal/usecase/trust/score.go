// Package trust derives bounded reputation scores from trade and rating history.
package trust

import (
	"math"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
)

const (
	baseScore      = 50.0
	successWeight  = 30.0
	volumePerTrade = 0.5
	volumeCap      = 10.0
	ratingNeutral  = 3.0
	ratingWeight   = 5.0
	verifiedBonus  = 10.0
	minScore       = 0.0
	maxScore       = 100.0
)

// ComputeTrustScore returns a score in [0, 100]. Average ratings at or below
// neutral contribute nothing.
func ComputeTrustScore(user *domain.User, ratings domain.RatingSummary) float64 {
	score := baseScore

	if user.TotalTrades > 0 {
		score += float64(user.SuccessfulTrades) / float64(user.TotalTrades) * successWeight
	}

	score += math.Min(float64(user.TotalTrades)*volumePerTrade, volumeCap)

	if ratings.Count > 0 && ratings.Average > ratingNeutral {
		score += (ratings.Average - ratingNeutral) * ratingWeight
	}

	if user.IsVerified {
		score += verifiedBonus
	}

	return clamp(score)
}

// SummarizeRatings builds the aggregate for a list of overall ratings.
func SummarizeRatings(ratings []int) domain.RatingSummary {
	if len(ratings) == 0 {
		return domain.RatingSummary{}
	}
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	return domain.RatingSummary{
		Count:   int64(len(ratings)),
		Average: float64(sum) / float64(len(ratings)),
	}
}

func clamp(score float64) float64 {
	if math.IsNaN(score) {
		return minScore
	}
	return math.Max(minScore, math.Min(maxScore, score))
}
