package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pulse-digest/internal/ai"
	"pulse-digest/internal/archive"
	"pulse-digest/internal/lexicon"
	"pulse-digest/internal/redisclient"
	"pulse-digest/internal/storage"
	"pulse-digest/worker"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the collectors and digest builders",
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

		var summarizer ai.Summarizer
		if cfg.OpenAI.APIKey != "" {
			summarizer = ai.NewOpenAI(ai.Config{APIKey: cfg.OpenAI.APIKey, Model: cfg.OpenAI.Model, BaseURL: cfg.OpenAI.BaseURL})
		}

		var ws []worker.Worker

		if len(cfg.Sources.Feeds) > 0 {
			interval, err := time.ParseDuration(cfg.Sources.FetchInterval)
			if err != nil {
				return fmt.Errorf("invalid fetch_interval: %w", err)
			}
			slog.Info("starting feed collector", "feeds", len(cfg.Sources.Feeds))
			ws = append(ws, &worker.FeedCollector{
				Store:    store,
				Feeds:    cfg.Sources.Feeds,
				Interval: interval,
			})
		}

		builderInterval, err := time.ParseDuration(cfg.Digest.Interval)
		if err != nil {
			return fmt.Errorf("invalid digest interval: %w", err)
		}
		batchDelay, err := time.ParseDuration(cfg.Scoring.BatchDelay)
		if err != nil {
			return fmt.Errorf("invalid batch_delay: %w", err)
		}
		for _, ch := range cfg.Digest.Channels {
			sd, err := time.ParseDuration(ch.ItemSkipDuration)
			if err != nil {
				return fmt.Errorf("invalid item_skip_duration for channel %s: %w", ch.Name, err)
			}
			ws = append(ws, &worker.DigestBuilder{
				Store:      store,
				Archive:    arc,
				Lexicon:    lex,
				Channel:    ch.Name,
				Frequency:  ch.Frequency,
				TopN:       ch.TopN,
				MinItems:   ch.MinItems,
				OutputDir:  ch.OutputDir,
				Interval:   builderInterval,
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
			})
		}

		if len(ws) == 0 {
			return fmt.Errorf("nothing to run: no feeds and no digest channels configured")
		}

		mgr := worker.NewManager(ws...)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Signal handling for systemd
		sigc := make(chan os.Signal, 1)
		signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			s := <-sigc
			slog.Info("received signal, shutting down", "signal", s.String())
			cancel()
		}()

		return mgr.Start(ctx)
	},
}

// loadLexicon reads the configured lexicon file, or falls back to an empty
// lexicon with default stop words so a pass still produces base scores.
func loadLexicon(path string) (*lexicon.Lexicon, error) {
	if path == "" {
		slog.Warn("no lexicon configured, scoring with default base values only")
		return lexicon.New(nil, nil, nil), nil
	}
	return lexicon.LoadFile(path)
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
