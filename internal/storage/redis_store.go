package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"pulse-digest/internal/model"

	"github.com/redis/go-redis/v9"
)

// itemTTL bounds how long raw items and posts stay available for scoring.
const itemTTL = 7 * 24 * time.Hour

// RedisStore holds the candidate pool and the per-period score rankings.
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func itemKey(id string) string        { return fmt.Sprintf("digest:item:%s", id) }
func itemZKey(period string) string   { return fmt.Sprintf("digest:items:period:%s", period) }
func postKey(id string) string        { return fmt.Sprintf("digest:post:%s", id) }
func postsZKey() string               { return "digest:posts" }
func tagKey(name string) string       { return fmt.Sprintf("digest:tag:%s", name) }
func tagSetKey() string               { return "digest:tags" }
func scoresZKey(period string) string { return fmt.Sprintf("digest:scores:period:%s", period) }
func publishedKey(channel, period string) string {
	return fmt.Sprintf("digest:published:%s:%s", channel, period)
}
func skipKey(channel, id string) string { return fmt.Sprintf("digest:skip:%s:%s", channel, id) }

// AddItem stores a text item and registers it in the period set, ordered by
// publication time so a scoring pass can load the freshest first.
func (s *RedisStore) AddItem(ctx context.Context, period string, item model.TextItem) error {
	b, err := json.Marshal(item)
	if err != nil {
		return err
	}
	if err := s.rdb.Set(ctx, itemKey(item.ID), b, itemTTL).Err(); err != nil {
		return err
	}
	z := redis.Z{Score: float64(item.PublishedAt.Unix()), Member: item.ID}
	return s.rdb.ZAdd(ctx, itemZKey(period), z).Err()
}

// Items retrieves up to n items for the period, newest first.
func (s *RedisStore) Items(ctx context.Context, period string, n int) ([]model.TextItem, error) {
	ids, err := s.rdb.ZRevRange(ctx, itemZKey(period), 0, int64(n-1)).Result()
	if err != nil {
		return nil, err
	}
	out := make([]model.TextItem, 0, len(ids))
	for _, id := range ids {
		b, err := s.rdb.Get(ctx, itemKey(id)).Bytes()
		if err == redis.Nil {
			continue // item expired out from under the period set
		}
		if err != nil {
			return nil, err
		}
		var it model.TextItem
		if err := json.Unmarshal(b, &it); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, nil
}

// AddPost stores a social post into the candidate pool.
func (s *RedisStore) AddPost(ctx context.Context, post model.SocialPost) error {
	b, err := json.Marshal(post)
	if err != nil {
		return err
	}
	if err := s.rdb.Set(ctx, postKey(post.ID), b, itemTTL).Err(); err != nil {
		return err
	}
	z := redis.Z{Score: float64(post.CreatedAt.Unix()), Member: post.ID}
	return s.rdb.ZAdd(ctx, postsZKey(), z).Err()
}

// Posts retrieves up to n candidate posts, newest first.
func (s *RedisStore) Posts(ctx context.Context, n int) ([]model.SocialPost, error) {
	ids, err := s.rdb.ZRevRange(ctx, postsZKey(), 0, int64(n-1)).Result()
	if err != nil {
		return nil, err
	}
	out := make([]model.SocialPost, 0, len(ids))
	for _, id := range ids {
		b, err := s.rdb.Get(ctx, postKey(id)).Bytes()
		if err == redis.Nil {
			continue
		}
		if err != nil {
			return nil, err
		}
		var p model.SocialPost
		if err := json.Unmarshal(b, &p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// ObserveTag folds one tag observation into the aggregate. One hash per
// normalized name; repeated observations increment counts, they never
// duplicate rows.
func (s *RedisStore) ObserveTag(ctx context.Context, tag model.Tag) error {
	key := tagKey(tag.Name)
	pipe := s.rdb.Pipeline()
	pipe.HIncrBy(ctx, key, "post_count", int64(tag.PostCount))
	pipe.HIncrBy(ctx, key, "total_likes", int64(tag.TotalLikes))
	pipe.HIncrBy(ctx, key, "total_reposts", int64(tag.TotalReposts))
	pipe.HIncrBy(ctx, key, "total_replies", int64(tag.TotalReplies))
	pipe.SAdd(ctx, tagSetKey(), tag.Name)
	_, err := pipe.Exec(ctx)
	return err
}

// Tags retrieves all aggregated tags.
func (s *RedisStore) Tags(ctx context.Context) ([]model.Tag, error) {
	names, err := s.rdb.SMembers(ctx, tagSetKey()).Result()
	if err != nil {
		return nil, err
	}
	out := make([]model.Tag, 0, len(names))
	for _, name := range names {
		fields, err := s.rdb.HGetAll(ctx, tagKey(name)).Result()
		if err != nil {
			return nil, err
		}
		out = append(out, model.Tag{
			Name:         name,
			PostCount:    atoi(fields["post_count"]),
			TotalLikes:   atoi(fields["total_likes"]),
			TotalReposts: atoi(fields["total_reposts"]),
			TotalReplies: atoi(fields["total_replies"]),
		})
	}
	return out, nil
}

// SetScores records the final scores of a pass into the period ranking.
func (s *RedisStore) SetScores(ctx context.Context, period string, updates []model.ScoreUpdate) error {
	if len(updates) == 0 {
		return nil
	}
	zs := make([]redis.Z, 0, len(updates))
	for _, u := range updates {
		zs = append(zs, redis.Z{Score: u.FinalScore, Member: u.ID})
	}
	return s.rdb.ZAdd(ctx, scoresZKey(period), zs...).Err()
}

// TopScored retrieves the top n items of the period by final score.
func (s *RedisStore) TopScored(ctx context.Context, period string, n int) ([]model.TextItem, []float64, error) {
	zs, err := s.rdb.ZRevRangeWithScores(ctx, scoresZKey(period), 0, int64(n-1)).Result()
	if err != nil {
		return nil, nil, err
	}
	items := make([]model.TextItem, 0, len(zs))
	scores := make([]float64, 0, len(zs))
	for _, z := range zs {
		id, _ := z.Member.(string)
		b, err := s.rdb.Get(ctx, itemKey(id)).Bytes()
		if err == redis.Nil {
			continue
		}
		if err != nil {
			return nil, nil, err
		}
		var it model.TextItem
		if err := json.Unmarshal(b, &it); err != nil {
			return nil, nil, err
		}
		items = append(items, it)
		scores = append(scores, z.Score)
	}
	return items, scores, nil
}

func (s *RedisStore) IsPublished(ctx context.Context, channel, period string) (bool, error) {
	res, err := s.rdb.Get(ctx, publishedKey(channel, period)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return res == "1", nil
}

func (s *RedisStore) MarkPublished(ctx context.Context, channel, period string) error {
	return s.rdb.Set(ctx, publishedKey(channel, period), "1", 30*24*time.Hour).Err()
}

// IsSkipped returns true if the item is marked as skipped for the channel.
func (s *RedisStore) IsSkipped(ctx context.Context, channel, id string) (bool, error) {
	_, err := s.rdb.Get(ctx, skipKey(channel, id)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// MarkSkipped marks an item as skipped for the channel for the given duration.
func (s *RedisStore) MarkSkipped(ctx context.Context, channel, id string, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	return s.rdb.Set(ctx, skipKey(channel, id), "1", d).Err()
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
