// Package archive persists scoring pass results. Updates are applied as
// upserts in bounded batches so a slow or failing store never stalls a pass
// and downstream rate limits are respected.
package archive

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"pulse-digest/internal/model"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

const (
	// DefaultBatchSize bounds how many upserts go out per batch.
	DefaultBatchSize = 50

	// DefaultBatchDelay spaces consecutive batches.
	DefaultBatchDelay = 200 * time.Millisecond
)

// Store archives score updates in SQLite.
type Store struct {
	db *sqlx.DB
}

// Open opens the archive database and runs migrations.
func Open(path string) (*Store, error) {
	db, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Result summarizes one batched upsert run.
type Result struct {
	Applied int
	Failed  int
}

// UpsertScores applies the updates in batches of batchSize with delay between
// batches. A failure on one row is counted and logged; the rest of the batch
// continues. Cancellation is honored between batches only, returning the
// counts accumulated so far together with ctx.Err().
func (s *Store) UpsertScores(ctx context.Context, updates []model.ScoreUpdate, batchSize int, delay time.Duration) (Result, error) {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	if delay < 0 {
		delay = DefaultBatchDelay
	}

	var res Result
	for start := 0; start < len(updates); start += batchSize {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if start > 0 && delay > 0 {
			time.Sleep(delay)
		}

		end := start + batchSize
		if end > len(updates) {
			end = len(updates)
		}
		for _, u := range updates[start:end] {
			if err := s.upsertScore(ctx, u); err != nil {
				slog.Error("archive: upsert score failed", "id", u.ID, "error", err)
				res.Failed++
				continue
			}
			res.Applied++
		}
	}
	return res, nil
}

func (s *Store) upsertScore(ctx context.Context, u model.ScoreUpdate) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO score_updates (id, final_score, boost_percentage, match_count, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			final_score = excluded.final_score,
			boost_percentage = excluded.boost_percentage,
			match_count = excluded.match_count,
			updated_at = excluded.updated_at
	`, u.ID, u.FinalScore, u.BoostPercentage, u.MatchCount, time.Now().UTC())
	return err
}

// Row is one archived score update.
type Row struct {
	model.ScoreUpdate
	UpdatedAt time.Time `db:"updated_at"`
}

// TopScores lists archived updates by final score descending.
func (s *Store) TopScores(ctx context.Context, limit int) ([]Row, error) {
	if limit <= 0 {
		limit = 50
	}
	var rows []Row
	err := s.db.SelectContext(ctx, &rows,
		"SELECT * FROM score_updates ORDER BY final_score DESC LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("list score updates: %w", err)
	}
	return rows, nil
}
