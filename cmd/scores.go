package cmd

import (
	"fmt"
	"time"

	"pulse-digest/internal/archive"
	"pulse-digest/internal/redisclient"
	"pulse-digest/internal/storage"
	"pulse-digest/worker"

	"github.com/spf13/cobra"
)

var (
	scoresPeriod      string
	scoresFrequency   string
	scoresLimit       int
	scoresFromArchive bool
)

// scoresCmd prints a stored ranking without running a new pass.
var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the stored score ranking for a period",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		if scoresFromArchive {
			arc, err := archive.Open(cfg.Archive.Path)
			if err != nil {
				return err
			}
			defer arc.Close()

			rows, err := arc.TopScores(ctx, scoresLimit)
			if err != nil {
				return err
			}
			for i, r := range rows {
				fmt.Fprintf(out, "%3d. %-40s score=%.0f boost=%.0f%% matches=%d updated=%s\n",
					i+1, r.ID, r.FinalScore, r.BoostPercentage, r.MatchCount,
					r.UpdatedAt.Format("2006-01-02 15:04"))
			}
			return nil
		}

		period := scoresPeriod
		if period == "" {
			period = worker.PeriodKey(scoresFrequency, time.Now().UTC())
		}

		rdb := redisclient.New(cfg.Redis)
		defer rdb.Close()
		store := storage.NewRedisStore(rdb)

		items, finals, err := store.TopScored(ctx, period, scoresLimit)
		if err != nil {
			return fmt.Errorf("load ranking: %w", err)
		}
		if len(items) == 0 {
			fmt.Fprintf(out, "no scores stored for period %s\n", period)
			return nil
		}
		fmt.Fprintf(out, "period %s:\n", period)
		for i, it := range items {
			fmt.Fprintf(out, "%3d. %-60s score=%.0f %s\n",
				i+1, truncate(it.Title, 60), finals[i], it.URL)
		}
		return nil
	},
}

func init() {
	scoresCmd.Flags().StringVar(&scoresPeriod, "period", "", "period key (default: current period)")
	scoresCmd.Flags().StringVar(&scoresFrequency, "frequency", "daily", "frequency used to derive the current period")
	scoresCmd.Flags().IntVar(&scoresLimit, "limit", 20, "max entries to print")
	scoresCmd.Flags().BoolVar(&scoresFromArchive, "archive", false, "read from the score archive instead of redis")
	rootCmd.AddCommand(scoresCmd)
}
