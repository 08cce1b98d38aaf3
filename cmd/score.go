package cmd

import (
	"fmt"
	"time"

	"pulse-digest/internal/archive"
	"pulse-digest/internal/engine"
	"pulse-digest/internal/model"
	"pulse-digest/internal/redisclient"
	"pulse-digest/internal/storage"
	"pulse-digest/worker"

	"github.com/spf13/cobra"
)

var scoreFrequency string

// scoreCmd runs one scoring pass over the stored period items and flushes the
// updates to the period ranking and the archive.
var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Run one scoring pass and store the results",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		rdb := redisclient.New(cfg.Redis)
		defer rdb.Close()
		store := storage.NewRedisStore(rdb)

		arc, err := archive.Open(cfg.Archive.Path)
		if err != nil {
			return err
		}
		defer arc.Close()

		lex, err := loadLexicon(cfg.Scoring.LexiconPath)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		now := time.Now().UTC()
		period := worker.PeriodKey(scoreFrequency, now)

		items, err := store.Items(ctx, period, cfg.Scoring.MaxItems)
		if err != nil {
			return fmt.Errorf("load items: %w", err)
		}
		posts, err := store.Posts(ctx, cfg.Scoring.MaxPosts)
		if err != nil {
			return fmt.Errorf("load posts: %w", err)
		}
		tags, err := store.Tags(ctx)
		if err != nil {
			return fmt.Errorf("load tags: %w", err)
		}

		pass := &engine.Pass{
			Items:    items,
			Posts:    posts,
			Tags:     tags,
			Lexicon:  lex,
			Now:      now,
			Workers:  cfg.Scoring.Workers,
			TopPosts: cfg.Scoring.TopPosts,
			TopTags:  cfg.Scoring.TopTags,
		}
		scored, report := pass.ScoreItems(ctx)

		updates := model.Updates(scored)
		if err := store.SetScores(ctx, period, updates); err != nil {
			return fmt.Errorf("set scores: %w", err)
		}
		batchDelay, err := time.ParseDuration(cfg.Scoring.BatchDelay)
		if err != nil {
			return fmt.Errorf("invalid batch_delay: %w", err)
		}
		res, err := arc.UpsertScores(ctx, updates, cfg.Scoring.BatchSize, batchDelay)
		if err != nil {
			return fmt.Errorf("archive scores: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "period %s: scored %d, failed %d, archived %d (%d write failures)\n",
			period, report.Succeeded, report.Failed, res.Applied, res.Failed)
		for i, s := range scored {
			if i >= 10 {
				fmt.Fprintf(out, "... %d more\n", len(scored)-i)
				break
			}
			fmt.Fprintf(out, "%3d. %-60s score=%.0f boost=%.0f%% matches=%d\n",
				i+1, truncate(s.Item.Title, 60), s.FinalScore, s.BoostPercentage, s.MatchCount)
		}
		for _, f := range report.Failures {
			fmt.Fprintf(out, "skipped %s: %v\n", f.ID, f.Err)
		}
		return nil
	},
}

func truncate(s string, n int) string {
	if r := []rune(s); len(r) > n {
		return string(r[:n-3]) + "..."
	}
	return s
}

func init() {
	scoreCmd.Flags().StringVar(&scoreFrequency, "frequency", "daily", "period to score (daily or weekly)")
	rootCmd.AddCommand(scoreCmd)
}
