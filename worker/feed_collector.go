package worker

import (
	"context"
	"log/slog"
	"time"

	"pulse-digest/internal/config"
	"pulse-digest/internal/model"
	"pulse-digest/internal/storage"
	"pulse-digest/internal/textnorm"

	"github.com/google/uuid"
	"github.com/mmcdole/gofeed"
)

// FeedCollector polls article feeds and stores normalized text items into the
// daily and weekly period sets. It is the reference implementation of the
// external fetch boundary; everything it stores is already cleaned for the
// scoring engine.
type FeedCollector struct {
	Store    *storage.RedisStore
	Feeds    []config.FeedConfig
	Interval time.Duration

	parser *gofeed.Parser
}

func (w *FeedCollector) Start(ctx context.Context) error {
	if w.Interval <= 0 {
		w.Interval = 15 * time.Minute
	}
	w.parser = gofeed.NewParser()

	// initial run
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

func (w *FeedCollector) runOnce(ctx context.Context) {
	now := time.Now().UTC()
	day := PeriodKey("daily", now)
	week := PeriodKey("weekly", now)

	for _, feed := range w.Feeds {
		items, err := w.fetchFeed(ctx, feed)
		if err != nil {
			slog.Error("feed-collector: fetch error", "feed", feed.Name, "error", err)
			continue
		}
		stored := 0
		for _, it := range items {
			if err := w.Store.AddItem(ctx, day, it); err != nil {
				slog.Error("feed-collector: store error", "id", it.ID, "error", err)
				continue
			}
			if err := w.Store.AddItem(ctx, week, it); err != nil {
				slog.Error("feed-collector: store error", "id", it.ID, "error", err)
				continue
			}
			stored++
		}
		slog.Info("feed-collector: completed", "feed", feed.Name, "stored", stored, "periods", []string{day, week})
	}
}

func (w *FeedCollector) fetchFeed(ctx context.Context, feed config.FeedConfig) ([]model.TextItem, error) {
	parsed, err := w.parser.ParseURLWithContext(feed.URL, ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.TextItem, 0, len(parsed.Items))
	for _, entry := range parsed.Items {
		id := entry.GUID
		if id == "" {
			id = entry.Link
		}
		if id == "" {
			id = uuid.NewString()
		}
		var published time.Time
		if entry.PublishedParsed != nil {
			published = entry.PublishedParsed.UTC()
		}
		body := entry.Description
		if entry.Content != "" {
			body = body + " " + entry.Content
		}
		out = append(out, model.TextItem{
			ID:          id,
			Title:       textnorm.Clean(entry.Title),
			Body:        textnorm.Clean(body),
			SourceName:  feed.Name,
			URL:         entry.Link,
			PublishedAt: published,
		})
	}
	return out, nil
}
