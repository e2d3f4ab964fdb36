package checkpoint

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	keyLatestYear = "latest_scraped_year"
	keyLatestWeek = "latest_scraped_week"
)

// Store keeps the scrape cursor (latest fully scraped year and week) in
// Redis so incremental runs know where to resume.
type Store struct {
	client *redis.Client
}

// NewStore creates a new checkpoint store connection
func NewStore(redisURL string) (*Store, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opt)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Store{client: client}, nil
}

// NewStoreWithClient wraps an existing Redis client.
func NewStoreWithClient(client *redis.Client) *Store {
	return &Store{client: client}
}

// Close closes the Redis connection
func (s *Store) Close() error {
	return s.client.Close()
}

// Client returns the underlying Redis client
func (s *Store) Client() *redis.Client {
	return s.client
}

// HealthCheck pings Redis to verify connection
func (s *Store) HealthCheck(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Latest returns the checkpointed (year, week). ok is false when no
// checkpoint has ever been written.
func (s *Store) Latest(ctx context.Context) (year, week int, ok bool, err error) {
	yearStr, err := s.client.Get(ctx, keyLatestYear).Result()
	if err == redis.Nil {
		return 0, 0, false, nil
	}
	if err != nil {
		return 0, 0, false, fmt.Errorf("reading checkpoint year: %w", err)
	}

	weekStr, err := s.client.Get(ctx, keyLatestWeek).Result()
	if err == redis.Nil {
		return 0, 0, false, nil
	}
	if err != nil {
		return 0, 0, false, fmt.Errorf("reading checkpoint week: %w", err)
	}

	year, err = strconv.Atoi(yearStr)
	if err != nil {
		return 0, 0, false, fmt.Errorf("parsing checkpoint year %q: %w", yearStr, err)
	}
	week, err = strconv.Atoi(weekStr)
	if err != nil {
		return 0, 0, false, fmt.Errorf("parsing checkpoint week %q: %w", weekStr, err)
	}

	return year, week, true, nil
}

// Save records the latest fully scraped (year, week). Keys have no TTL; the
// cursor is durable state, not a cache.
func (s *Store) Save(ctx context.Context, year, week int) error {
	if err := s.client.Set(ctx, keyLatestYear, strconv.Itoa(year), 0).Err(); err != nil {
		return fmt.Errorf("writing checkpoint year: %w", err)
	}
	if err := s.client.Set(ctx, keyLatestWeek, strconv.Itoa(week), 0).Err(); err != nil {
		return fmt.Errorf("writing checkpoint week: %w", err)
	}
	return nil
}
