package scoring

import (
	"fmt"
	"math"

	"pulse-digest/internal/apperr"
	"pulse-digest/internal/model"
)

// VerifiedBonus is the flat uplift for posts from verified authors.
const VerifiedBonus = 50

// PostImpact computes a post's engagement impact score. Negative counts are a
// validation error, not something to clamp away.
func PostImpact(p model.SocialPost) (float64, error) {
	if p.LikeCount < 0 || p.RepostCount < 0 || p.ReplyCount < 0 || p.QuoteCount < 0 || p.FollowerCount < 0 {
		return 0, apperr.NewValidation(fmt.Sprintf("post %s has negative engagement counts", p.ID))
	}

	engagement := float64(p.LikeCount + 2*p.RepostCount + 3*p.QuoteCount + p.ReplyCount)

	followers := p.FollowerCount
	if followers < 1 {
		followers = 1
	}
	followerFactor := math.Log10(float64(followers)) / 6

	raw := engagement * (1 + followerFactor)
	if p.Verified {
		raw += VerifiedBonus
	}
	return round2(raw), nil
}

// TagImpact computes a tag's aggregate impact. Per-post breakdown is not
// available at the tag level, so this is the cheaper aggregate formula.
func TagImpact(t model.Tag) (float64, error) {
	if t.PostCount < 0 || t.TotalLikes < 0 || t.TotalReposts < 0 || t.TotalReplies < 0 {
		return 0, apperr.NewValidation(fmt.Sprintf("tag %s has negative engagement counts", t.Name))
	}
	return round2(float64(t.TotalLikes+t.TotalReposts*2) / 10), nil
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
