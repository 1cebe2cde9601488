package trust

import (
	"math/rand"
	"testing"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestComputeTrustScore(t *testing.T) {
	tests := []struct {
		name    string
		user    domain.User
		ratings []int
		want    float64
	}{
		{name: "no history", user: domain.User{}, want: 50},
		{name: "no history verified", user: domain.User{IsVerified: true}, want: 60},
		{
			name: "perfect record",
			user: domain.User{TotalTrades: 10, SuccessfulTrades: 10},
			want: 50 + 30 + 5,
		},
		{
			name: "volume capped",
			user: domain.User{TotalTrades: 100, SuccessfulTrades: 50},
			want: 50 + 15 + 10,
		},
		{
			name:    "low ratings contribute nothing",
			user:    domain.User{TotalTrades: 2, SuccessfulTrades: 1},
			ratings: []int{1, 2, 3},
			want:    50 + 15 + 1,
		},
		{
			name:    "high ratings add above neutral",
			user:    domain.User{TotalTrades: 4, SuccessfulTrades: 4},
			ratings: []int{5, 4},
			want:    50 + 30 + 2 + 7.5,
		},
		{
			name:    "clamped at 100",
			user:    domain.User{TotalTrades: 40, SuccessfulTrades: 40, IsVerified: true},
			ratings: []int{5, 5, 5},
			want:    100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeTrustScore(&tt.user, SummarizeRatings(tt.ratings))
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestComputeTrustScoreAlwaysBounded(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 2000; i++ {
		total := rng.Intn(500)
		successful := 0
		if total > 0 {
			successful = rng.Intn(total + 1)
		}
		ratings := make([]int, rng.Intn(20))
		for j := range ratings {
			ratings[j] = domain.MinRating + rng.Intn(domain.MaxRating)
		}
		user := &domain.User{TotalTrades: total, SuccessfulTrades: successful, IsVerified: rng.Intn(2) == 1}

		score := ComputeTrustScore(user, SummarizeRatings(ratings))
		assert.GreaterOrEqual(t, score, 0.0)
		assert.LessOrEqual(t, score, 100.0)
	}
}

func TestSummarizeRatings(t *testing.T) {
	assert.Equal(t, domain.RatingSummary{}, SummarizeRatings(nil))
	s := SummarizeRatings([]int{4, 5, 3})
	assert.Equal(t, int64(3), s.Count)
	assert.InDelta(t, 4.0, s.Average, 1e-9)
}
