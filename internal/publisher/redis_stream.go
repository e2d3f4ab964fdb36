package publisher

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	streamSeasons = "scrape.seasons.nfl"
	streamGames   = "scrape.games.nfl"
)

// RedisStreamPublisher publishes scrape events to Redis streams so
// downstream consumers (model retraining, dashboards) can follow ingest
// without polling Postgres.
type RedisStreamPublisher struct {
	client *redis.Client
}

// NewRedisStreamPublisher creates a new Redis stream publisher from existing client
func NewRedisStreamPublisher(client *redis.Client) *RedisStreamPublisher {
	return &RedisStreamPublisher{client: client}
}

// SeasonEvent describes one committed season scrape.
type SeasonEvent struct {
	Year     int `json:"year"`
	LastWeek int `json:"last_week"`
	Games    int `json:"games"`
	Skipped  int `json:"skipped"`
}

// GameEvent describes one persisted game.
type GameEvent struct {
	GameID   int    `json:"game_id"`
	Date     string `json:"date"`
	Week     int    `json:"week"`
	AwayTeam string `json:"away_team"`
	HomeTeam string `json:"home_team"`
}

// PublishSeasonScraped publishes a season-committed event to the stream.
func (p *RedisStreamPublisher) PublishSeasonScraped(ctx context.Context, event SeasonEvent) error {
	return p.publish(ctx, streamSeasons, event)
}

// PublishGameScraped publishes a game-persisted event to the stream.
func (p *RedisStreamPublisher) PublishGameScraped(ctx context.Context, event GameEvent) error {
	return p.publish(ctx, streamGames, event)
}

func (p *RedisStreamPublisher) publish(ctx context.Context, stream string, event interface{}) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: stream,
		Values: map[string]interface{}{
			"data":      string(data),
			"timestamp": time.Now().Unix(),
		},
	}).Err()
}
