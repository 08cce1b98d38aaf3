// Package engine runs one scoring pass: base scores and engagement impacts,
// relevance matching against the candidate pool, boost aggregation, topic
// curation, and reranking. Every computation is pure, so items and topics
// fan out over a bounded worker pool with no shared mutable state.
package engine

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"pulse-digest/internal/curator"
	"pulse-digest/internal/impact"
	"pulse-digest/internal/lexicon"
	"pulse-digest/internal/model"
	"pulse-digest/internal/rank"
	"pulse-digest/internal/relevance"
	"pulse-digest/internal/scoring"
)

const (
	defaultWorkers  = 4
	defaultTopPosts = 3
	defaultTopTags  = 3
)

// Pass holds the immutable inputs of a single scoring pass. The candidate
// pool is copied and enriched up front; the caller's slices are never
// touched.
type Pass struct {
	Items   []model.TextItem
	Topics  []model.Topic
	Posts   []model.SocialPost
	Tags    []model.Tag
	Lexicon *lexicon.Lexicon
	Now     time.Time

	Workers  int
	TopPosts int
	TopTags  int
}

// Failure records one item or topic the pass had to skip.
type Failure struct {
	ID  string
	Err error
}

// Report aggregates per-pass outcomes. A failed item never aborts the rest of
// the pass.
type Report struct {
	Succeeded int
	Failed    int
	Failures  []Failure
}

func (r *Report) fail(id string, err error) {
	r.Failed++
	r.Failures = append(r.Failures, Failure{ID: id, Err: err})
}

// prepared is the read-only state shared by all workers of a pass.
type prepared struct {
	posts   []model.SocialPost
	tags    []model.Tag
	pool    []relevance.Candidate // posts followed by tags
	scorer  *scoring.BaseScorer
	matcher *relevance.Matcher
	report  *Report
}

func (p *Pass) workers() int {
	if p.Workers > 0 {
		return p.Workers
	}
	return defaultWorkers
}

func (p *Pass) topPosts() int {
	if p.TopPosts > 0 {
		return p.TopPosts
	}
	return defaultTopPosts
}

func (p *Pass) topTags() int {
	if p.TopTags > 0 {
		return p.TopTags
	}
	return defaultTopTags
}

// prepare validates the candidate pool and computes impact scores on local
// copies. Posts and tags with negative counts are recorded and excluded.
func (p *Pass) prepare() *prepared {
	pr := &prepared{report: &Report{}}

	for _, post := range p.Posts {
		score, err := scoring.PostImpact(post)
		if err != nil {
			pr.report.fail(post.ID, err)
			continue
		}
		post.ImpactScore = score
		pr.posts = append(pr.posts, post)
	}
	for _, tag := range p.Tags {
		score, err := scoring.TagImpact(tag)
		if err != nil {
			pr.report.fail(tag.Name, err)
			continue
		}
		tag.ImpactScore = score
		pr.tags = append(pr.tags, tag)
	}

	if len(pr.posts) == 0 && len(pr.tags) == 0 {
		slog.Warn("engine: empty candidate pool, matching degrades to zero-match results")
	}

	pr.pool = relevance.PostCandidates(pr.posts)
	for _, c := range relevance.TagCandidates(pr.tags) {
		c.Index += len(pr.posts)
		pr.pool = append(pr.pool, c)
	}

	pr.scorer = scoring.NewBaseScorer(p.Lexicon)
	pr.matcher = relevance.NewMatcher(p.Lexicon.StopWords())
	return pr
}

// ScoreItems scores every input item, folds in the matched social evidence,
// and returns the collection reranked by final score. Recomputed fully on
// every call; identical inputs and Now produce identical output.
func (p *Pass) ScoreItems(ctx context.Context) ([]model.ScoredItem, *Report) {
	pr := p.prepare()

	type result struct {
		item model.ScoredItem
		done bool
	}
	results := make([]result, len(p.Items))
	p.each(ctx, len(p.Items), func(i int) {
		results[i] = result{item: p.scoreItem(pr, p.Items[i]), done: true}
	})

	scored := make([]model.ScoredItem, 0, len(results))
	for _, r := range results {
		if !r.done {
			continue // dropped by cancellation
		}
		scored = append(scored, r.item)
		pr.report.Succeeded++
	}
	return rank.RerankScored(scored), pr.report
}

func (p *Pass) scoreItem(pr *prepared, item model.TextItem) model.ScoredItem {
	item.BaseScore = pr.scorer.Score(item, p.Now)

	topN := p.topPosts() + p.topTags()
	matches := pr.matcher.FindRelevant(item.Title+" "+item.Body, pr.pool, topN)

	matchCount := 0
	var posts []model.SocialPost
	var tags []model.Tag
	for _, m := range matches {
		matchCount += m.Matches
		if m.Index < len(pr.posts) {
			posts = append(posts, pr.posts[m.Index])
		} else {
			tags = append(tags, pr.tags[m.Index-len(pr.posts)])
		}
	}

	boostPct, final := impact.Boost(item, matchCount)
	return model.ScoredItem{
		Item:                     item,
		MatchCount:               matchCount,
		SocialImpactContribution: impact.SocialImpactScore(posts, tags),
		BoostPercentage:          boostPct,
		FinalScore:               final,
	}
}

// CurateTopics enriches every topic with related posts, related tags, the
// social impact score, and curated citations, then reranks by social impact.
// Topics whose curation fails are recorded and skipped.
func (p *Pass) CurateTopics(ctx context.Context) ([]model.Topic, *Report) {
	pr := p.prepare()
	cur := curator.New(pr.matcher)

	type result struct {
		topic model.Topic
		err   error
		done  bool
	}
	results := make([]result, len(p.Topics))

	p.each(ctx, len(p.Topics), func(i int) {
		topic, err := p.curateTopic(pr, cur, p.Topics[i])
		results[i] = result{topic: topic, err: err, done: true}
	})

	topics := make([]model.Topic, 0, len(results))
	for i, r := range results {
		if !r.done {
			continue
		}
		if r.err != nil {
			pr.report.fail(p.Topics[i].ID, r.err)
			continue
		}
		topics = append(topics, r.topic)
		pr.report.Succeeded++
	}
	return rank.RerankTopics(topics), pr.report
}

func (p *Pass) curateTopic(pr *prepared, cur *curator.Curator, topic model.Topic) (model.Topic, error) {
	target := topic.Title + " " + topic.Summary

	var posts []model.SocialPost
	for _, m := range pr.matcher.FindRelevant(target, relevance.PostCandidates(pr.posts), p.topPosts()) {
		posts = append(posts, pr.posts[m.Index])
	}
	var tags []model.Tag
	for _, m := range pr.matcher.FindRelevant(target, relevance.TagCandidates(pr.tags), p.topTags()) {
		tags = append(tags, pr.tags[m.Index])
	}

	topic.RelatedPosts = posts
	topic.RelatedTags = tags
	topic.SocialImpactScore = impact.SocialImpactScore(posts, tags)

	return cur.Curate(topic, pr.posts)
}

// each runs fn(i) for i in [0,n) on the pass worker pool. Pending work is
// dropped once ctx is cancelled; slots already claimed still finish.
func (p *Pass) each(ctx context.Context, n int, fn func(i int)) {
	workers := p.workers()
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		for i := 0; i < n; i++ {
			if ctx.Err() != nil {
				return
			}
			fn(i)
		}
		return
	}

	idx := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range idx {
				fn(i)
			}
		}()
	}
	for i := 0; i < n; i++ {
		if ctx.Err() != nil {
			break
		}
		idx <- i
	}
	close(idx)
	wg.Wait()
}
