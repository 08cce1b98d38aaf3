package worker

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"pulse-digest/internal/ai"
	"pulse-digest/internal/archive"
	"pulse-digest/internal/engine"
	"pulse-digest/internal/lexicon"
	"pulse-digest/internal/model"
	"pulse-digest/internal/storage"
)

// DigestBuilder periodically runs a scoring pass over the stored period items
// and, once enough survive, writes a ranked digest file for its channel.
type DigestBuilder struct {
	Store      *storage.RedisStore
	Archive    *archive.Store
	Lexicon    *lexicon.Lexicon
	Channel    string
	Frequency  string
	TopN       int
	MinItems   int
	OutputDir  string
	Interval   time.Duration
	Language   string
	Title      string // supports {.CurrentDate}
	SkipDur    time.Duration
	Summarizer ai.Summarizer // optional

	Workers    int
	TopPosts   int
	TopTags    int
	MaxItems   int
	MaxPosts   int
	BatchSize  int
	BatchDelay time.Duration
}

func (w *DigestBuilder) Start(ctx context.Context) error {
	if w.Interval <= 0 {
		w.Interval = 30 * time.Minute
	}

	w.runOnce(ctx)

	t := time.NewTicker(w.Interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			w.runOnce(ctx)
		}
	}
}

func (w *DigestBuilder) runOnce(ctx context.Context) {
	if _, err := w.BuildOnce(ctx); err != nil {
		slog.Error("digest-builder: build error", "channel", w.Channel, "error", err)
	}
}

// BuildOnce runs one scoring pass and writes the digest file if the channel
// is due. It returns the written path, or "" when nothing was due.
func (w *DigestBuilder) BuildOnce(ctx context.Context) (string, error) {
	now := time.Now().UTC()
	period := PeriodKey(w.Frequency, now)

	published, err := w.Store.IsPublished(ctx, w.Channel, period)
	if err != nil {
		return "", fmt.Errorf("check published: %w", err)
	}
	if published {
		return "", nil
	}

	maxItems := w.MaxItems
	if maxItems <= 0 {
		maxItems = 200
	}
	maxPosts := w.MaxPosts
	if maxPosts <= 0 {
		maxPosts = 500
	}

	items, err := w.Store.Items(ctx, period, maxItems)
	if err != nil {
		return "", fmt.Errorf("load items: %w", err)
	}
	items, err = w.dropSkipped(ctx, items)
	if err != nil {
		return "", err
	}
	if len(items) == 0 {
		return "", nil
	}

	posts, err := w.Store.Posts(ctx, maxPosts)
	if err != nil {
		return "", fmt.Errorf("load posts: %w", err)
	}
	tags, err := w.Store.Tags(ctx)
	if err != nil {
		return "", fmt.Errorf("load tags: %w", err)
	}

	pass := &engine.Pass{
		Items:    items,
		Posts:    posts,
		Tags:     tags,
		Lexicon:  w.Lexicon,
		Now:      now,
		Workers:  w.Workers,
		TopPosts: w.TopPosts,
		TopTags:  w.TopTags,
	}
	scored, report := pass.ScoreItems(ctx)
	if report.Failed > 0 {
		slog.Warn("digest-builder: pass had failures", "channel", w.Channel, "failed", report.Failed)
	}
	if len(scored) < w.MinItems {
		return "", nil
	}
	if len(scored) > w.TopN {
		scored = scored[:w.TopN]
	}

	updates := model.Updates(scored)
	if err := w.Store.SetScores(ctx, period, updates); err != nil {
		slog.Error("digest-builder: set scores error", "channel", w.Channel, "error", err)
	}
	if w.Archive != nil {
		res, err := w.Archive.UpsertScores(ctx, updates, w.BatchSize, w.BatchDelay)
		if err != nil {
			return "", fmt.Errorf("archive scores: %w", err)
		}
		slog.Info("digest-builder: scores archived", "channel", w.Channel, "applied", res.Applied, "failed", res.Failed)
	}

	pass.Topics = topicsFromScored(scored)
	topics, curReport := pass.CurateTopics(ctx)
	if curReport.Failed > 0 {
		slog.Warn("digest-builder: curation skipped topics", "channel", w.Channel, "failed", curReport.Failed)
	}

	overview := ""
	if w.Summarizer != nil {
		if s, err := w.Summarizer.SummarizeDigest(ctx, topics, w.Language); err == nil {
			overview = s
		}
		for i := range topics {
			s, err := w.Summarizer.SummarizeTopic(ctx, topics[i], w.Language)
			if err != nil || s == "" {
				continue // keep the snippet summary
			}
			topics[i].Summary = s
		}
	}

	channelDir := filepath.Join(w.OutputDir, w.Channel)
	if err := os.MkdirAll(channelDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(channelDir, period+".md")
	if err := os.WriteFile(path, []byte(w.render(now, overview, topics, scored)), 0o644); err != nil {
		return "", fmt.Errorf("write digest: %w", err)
	}

	if err := w.Store.MarkPublished(ctx, w.Channel, period); err != nil {
		slog.Error("digest-builder: mark published error", "channel", w.Channel, "error", err)
	}
	for _, s := range scored {
		if err := w.Store.MarkSkipped(ctx, w.Channel, s.Item.ID, w.SkipDur); err != nil {
			slog.Error("digest-builder: mark skipped error", "id", s.Item.ID, "error", err)
		}
	}

	slog.Info("digest-builder: published", "channel", w.Channel, "period", period, "topics", len(topics), "path", path)
	return path, nil
}

func (w *DigestBuilder) dropSkipped(ctx context.Context, items []model.TextItem) ([]model.TextItem, error) {
	out := make([]model.TextItem, 0, len(items))
	for _, it := range items {
		skip, err := w.Store.IsSkipped(ctx, w.Channel, it.ID)
		if err != nil {
			return nil, fmt.Errorf("skip-check %s: %w", it.ID, err)
		}
		if !skip {
			out = append(out, it)
		}
	}
	return out, nil
}

// topicsFromScored turns the ranked items into digest topics carrying their
// article citation.
func topicsFromScored(scored []model.ScoredItem) []model.Topic {
	out := make([]model.Topic, 0, len(scored))
	for _, s := range scored {
		topic := model.Topic{
			ID:      s.Item.ID,
			Title:   s.Item.Title,
			Summary: snippet(s.Item.Body, 280),
		}
		if s.Item.URL != "" {
			topic.Citations = []model.Citation{{
				Title: s.Item.Title,
				URL:   s.Item.URL,
				Kind:  model.CitationArticle,
			}}
		}
		out = append(out, topic)
	}
	return out
}

func (w *DigestBuilder) render(now time.Time, overview string, topics []model.Topic, scored []model.ScoredItem) string {
	finals := make(map[string]model.ScoredItem, len(scored))
	for _, s := range scored {
		finals[s.Item.ID] = s
	}

	b := &strings.Builder{}
	title := ExpandVars(w.Title, now)
	if strings.TrimSpace(title) == "" {
		title = fmt.Sprintf("%s digest %s", w.Channel, now.Format("2006-01-02"))
	}
	fmt.Fprintf(b, "# %s\n\n", title)
	if overview != "" {
		fmt.Fprintf(b, "%s\n\n", overview)
	}
	for _, t := range topics {
		s, ok := finals[t.ID]
		if ok {
			fmt.Fprintf(b, "## %s (score %.0f, +%.0f%%)\n\n", t.Title, s.FinalScore, s.BoostPercentage)
		} else {
			fmt.Fprintf(b, "## %s\n\n", t.Title)
		}
		if t.Summary != "" {
			fmt.Fprintf(b, "%s\n\n", t.Summary)
		}
		for _, c := range t.Citations {
			fmt.Fprintf(b, "- [%s](%s)\n", c.Title, c.URL)
		}
		if len(t.RelatedTags) > 0 {
			names := make([]string, 0, len(t.RelatedTags))
			for _, tag := range t.RelatedTags {
				names = append(names, "#"+tag.Name)
			}
			fmt.Fprintf(b, "\nTags: %s\n", strings.Join(names, " "))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func snippet(s string, max int) string {
	s = strings.Join(strings.Fields(s), " ")
	if r := []rune(s); len(r) > max {
		return string(r[:max-3]) + "..."
	}
	return s
}

// ExpandVars performs simple placeholder substitutions for template strings
// used in config-provided text fields.
//
// Supported variables:
// - {.CurrentDate} => formatted as YYYY-MM-DD (UTC)
func ExpandVars(s string, now time.Time) string {
	if strings.TrimSpace(s) == "" {
		return s
	}
	date := now.UTC().Format("2006-01-02")
	return strings.ReplaceAll(s, "{.CurrentDate}", date)
}
