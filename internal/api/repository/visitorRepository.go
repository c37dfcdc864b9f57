package repository

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// VisitorRepository keeps per-day visitor counters in Redis. Counters are
// best-effort: the API must keep serving when Redis is unavailable, so a nil
// repository (or a dead client) degrades to no-ops.
type VisitorRepository struct {
	client *redis.Client
}

func NewVisitorRepository(redisURL, password string) (*VisitorRepository, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	if password != "" {
		opts.Password = password
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return &VisitorRepository{client: rdb}, nil
}

func visitorKey(day time.Time) string {
	return "stats:visitors:" + day.Format("2006-01-02")
}

// CountVisit increments today's visitor counter. Keys expire after two days;
// by then the snapshot job has persisted the value.
func (r *VisitorRepository) CountVisit(ctx context.Context) error {
	if r == nil || r.client == nil {
		return nil
	}
	key := visitorKey(time.Now())
	if err := r.client.Incr(ctx, key).Err(); err != nil {
		return err
	}
	return r.client.Expire(ctx, key, 48*time.Hour).Err()
}

// VisitorsOn returns the counter for the given day, zero when absent.
func (r *VisitorRepository) VisitorsOn(ctx context.Context, day time.Time) (int64, error) {
	if r == nil || r.client == nil {
		return 0, nil
	}
	val, err := r.client.Get(ctx, visitorKey(day)).Result()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(val, 10, 64)
}

func (r *VisitorRepository) Close() error {
	if r == nil || r.client == nil {
		return nil
	}
	return r.client.Close()
}
