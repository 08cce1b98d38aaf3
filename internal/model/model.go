package model

import "time"

// TextItem is the base shape shared by articles and digest topics.
// BaseScore is derived by the scorer from the other fields and the scoring
// time; it is never set from the outside.
type TextItem struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Body        string    `json:"body"`
	SourceName  string    `json:"source_name"`
	URL         string    `json:"url"`
	PublishedAt time.Time `json:"published_at"`
	BaseScore   float64   `json:"base_score"`
}

// ScoredItem wraps a TextItem with the signals produced by a scoring pass.
type ScoredItem struct {
	Item                     TextItem `json:"item"`
	MatchCount               int      `json:"match_count"`
	SocialImpactContribution float64  `json:"social_impact_contribution"`
	BoostPercentage          float64  `json:"boost_percentage"`
	FinalScore               float64  `json:"final_score"`
}

// ScoreUpdate is the per-item tuple handed to the external store after a
// scoring pass. The store applies it as an upsert.
type ScoreUpdate struct {
	ID              string  `json:"id" db:"id"`
	FinalScore      float64 `json:"final_score" db:"final_score"`
	BoostPercentage float64 `json:"boost_percentage" db:"boost_percentage"`
	MatchCount      int     `json:"match_count" db:"match_count"`
}

// Updates projects scored items onto the batch update contract.
func Updates(scored []ScoredItem) []ScoreUpdate {
	out := make([]ScoreUpdate, 0, len(scored))
	for _, s := range scored {
		out = append(out, ScoreUpdate{
			ID:              s.Item.ID,
			FinalScore:      s.FinalScore,
			BoostPercentage: s.BoostPercentage,
			MatchCount:      s.MatchCount,
		})
	}
	return out
}
