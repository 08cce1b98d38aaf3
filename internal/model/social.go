package model

import (
	"strings"
	"time"
)

// SocialPost is a single post from a social source. ImpactScore is recomputed
// from the engagement counts and follower count on every pass; it is never an
// input.
type SocialPost struct {
	ID            string    `json:"id"`
	Content       string    `json:"content"`
	AuthorHandle  string    `json:"author_handle"`
	FollowerCount int       `json:"follower_count"`
	LikeCount     int       `json:"like_count"`
	RepostCount   int       `json:"repost_count"`
	ReplyCount    int       `json:"reply_count"`
	QuoteCount    int       `json:"quote_count"`
	URL           string    `json:"url"`
	CreatedAt     time.Time `json:"created_at"`
	ImpactScore   float64   `json:"impact_score"`
	Verified      bool      `json:"verified"`
}

// Tag is a hashtag aggregate. Name is the lowercase unique key; repeated
// observations increment the counts, they never duplicate rows.
type Tag struct {
	Name         string  `json:"name"`
	PostCount    int     `json:"post_count"`
	TotalLikes   int     `json:"total_likes"`
	TotalReposts int     `json:"total_reposts"`
	TotalReplies int     `json:"total_replies"`
	ImpactScore  float64 `json:"impact_score"`
}

// TagFromName normalizes a bare hashtag string into a Tag record counting a
// single observation. Sources that only report tag names go through here at
// the ingestion boundary.
func TagFromName(name string) Tag {
	return Tag{
		Name:      strings.ToLower(strings.TrimPrefix(strings.TrimSpace(name), "#")),
		PostCount: 1,
	}
}

// CitationKind distinguishes article citations from social-post citations.
type CitationKind string

const (
	CitationArticle    CitationKind = "article"
	CitationSocialPost CitationKind = "social-post"
)

// Citation is a single source reference attached to a topic.
type Citation struct {
	Title string       `json:"title"`
	URL   string       `json:"url"`
	Kind  CitationKind `json:"kind"`
}

// Topic is one digest entry: a headline plus the social evidence and
// citations curated for it.
type Topic struct {
	ID                string       `json:"id"`
	Title             string       `json:"title"`
	Summary           string       `json:"summary"`
	Citations         []Citation   `json:"citations"`
	RelatedPosts      []SocialPost `json:"related_posts"`
	RelatedTags       []Tag        `json:"related_tags"`
	SocialImpactScore float64      `json:"social_impact_score"`
}
