package cmd

import (
	"fmt"
	"time"

	"pulse-digest/internal/ai"
	"pulse-digest/internal/archive"
	"pulse-digest/internal/redisclient"
	"pulse-digest/internal/storage"
	"pulse-digest/worker"

	"github.com/spf13/cobra"
)

var digestChannel string

// digestCmd builds the digest for one channel immediately, regardless of the
// serve loop's schedule.
var digestCmd = &cobra.Command{
	Use:   "digest",
	Short: "Build a digest for one channel now",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		idx := -1
		for i, ch := range cfg.Digest.Channels {
			if ch.Name == digestChannel {
				idx = i
				break
			}
		}
		if idx < 0 {
			return fmt.Errorf("unknown channel %q", digestChannel)
		}
		ch := cfg.Digest.Channels[idx]

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

		var summarizer ai.Summarizer
		if cfg.OpenAI.APIKey != "" {
			summarizer = ai.NewOpenAI(ai.Config{APIKey: cfg.OpenAI.APIKey, Model: cfg.OpenAI.Model, BaseURL: cfg.OpenAI.BaseURL})
		}

		sd, err := time.ParseDuration(ch.ItemSkipDuration)
		if err != nil {
			return fmt.Errorf("invalid item_skip_duration: %w", err)
		}
		batchDelay, err := time.ParseDuration(cfg.Scoring.BatchDelay)
		if err != nil {
			return fmt.Errorf("invalid batch_delay: %w", err)
		}

		b := &worker.DigestBuilder{
			Store:      store,
			Archive:    arc,
			Lexicon:    lex,
			Channel:    ch.Name,
			Frequency:  ch.Frequency,
			TopN:       ch.TopN,
			MinItems:   ch.MinItems,
			OutputDir:  ch.OutputDir,
			Language:   ch.Language,
			Title:      ch.Title,
			SkipDur:    sd,
			Summarizer: summarizer,
			Workers:    cfg.Scoring.Workers,
			TopPosts:   cfg.Scoring.TopPosts,
			TopTags:    cfg.Scoring.TopTags,
			MaxItems:   cfg.Scoring.MaxItems,
			MaxPosts:   cfg.Scoring.MaxPosts,
			BatchSize:  cfg.Scoring.BatchSize,
			BatchDelay: batchDelay,
		}

		path, err := b.BuildOnce(cmd.Context())
		if err != nil {
			return err
		}
		if path == "" {
			fmt.Fprintln(cmd.OutOrStdout(), "nothing to publish (already published or below min_items)")
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

func init() {
	digestCmd.Flags().StringVar(&digestChannel, "channel", "", "digest channel name")
	_ = digestCmd.MarkFlagRequired("channel")
	rootCmd.AddCommand(digestCmd)
}
