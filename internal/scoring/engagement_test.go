package scoring

import (
	"math"
	"testing"

	"pulse-digest/internal/apperr"
	"pulse-digest/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostImpactVerifiedHighReach(t *testing.T) {
	p := model.SocialPost{
		ID:            "1893457210",
		Content:       "GPT-5 benchmarks are wild",
		LikeCount:     890,
		RepostCount:   320,
		ReplyCount:    75,
		QuoteCount:    45,
		FollowerCount: 50000,
		Verified:      true,
	}
	got, err := PostImpact(p)
	require.NoError(t, err)

	// engagement = 890 + 2*320 + 3*45 + 75 = 1740
	engagement := 1740.0
	want := math.Round((engagement*(1+math.Log10(50000)/6)+VerifiedBonus)*100) / 100
	assert.Equal(t, want, got)
	assert.InDelta(t, 3152.70, got, 0.01)
}

func TestPostImpactZeroFollowersBounded(t *testing.T) {
	p := model.SocialPost{ID: "9", Content: "hello", LikeCount: 10}
	got, err := PostImpact(p)
	require.NoError(t, err)
	// log10(1)/6 = 0, so factor is exactly 1
	assert.Equal(t, 10.0, got)
}

func TestPostImpactNegativeCountsRejected(t *testing.T) {
	p := model.SocialPost{ID: "7", LikeCount: -1}
	_, err := PostImpact(p)
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
}

func TestPostImpactDeterministic(t *testing.T) {
	p := model.SocialPost{
		ID: "42", Content: "fusion", LikeCount: 12, RepostCount: 3,
		ReplyCount: 1, QuoteCount: 2, FollowerCount: 870, Verified: false,
	}
	first, err := PostImpact(p)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := PostImpact(p)
		require.NoError(t, err)
		require.Equal(t, first, again)
	}
}

func TestTagImpact(t *testing.T) {
	tag := model.Tag{Name: "agi", TotalLikes: 100, TotalReposts: 30}
	got, err := TagImpact(tag)
	require.NoError(t, err)
	// (100 + 30*2) / 10 = 16
	assert.Equal(t, 16.0, got)
}

func TestTagImpactNegativeCountsRejected(t *testing.T) {
	_, err := TagImpact(model.Tag{Name: "agi", TotalReposts: -5})
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
}
