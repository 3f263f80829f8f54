// Package publish pushes fresh snapshots onto Redis streams so downstream
// consumers (display boards, websocket broadcasters) see updates without
// polling the API.
package publish

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/scorewire/gamefeed/pkg/gamestate"
)

// streamMaxLen caps each stream; consumers only ever want the latest few
// snapshots.
const streamMaxLen = 100

// Publisher writes each sport's snapshot to its own stream, scores.<sport>.
type Publisher struct {
	client *redis.Client
	logger *slog.Logger
}

// New connects to Redis using a redis:// URL and verifies the connection.
func New(ctx context.Context, redisURL string, logger *slog.Logger) (*Publisher, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Publisher{client: client, logger: logger}, nil
}

// Store publishes one entry per game, binary-encoded, onto scores.<sportID>.
// All entries from one snapshot go out in a single pipeline round trip.
func (p *Publisher) Store(ctx context.Context, sportID string, games []gamestate.Game) error {
	stream := "scores." + sportID
	pipe := p.client.Pipeline()
	for i := range games {
		data, err := games[i].MarshalBinary()
		if err != nil {
			return fmt.Errorf("encode game %d: %w", games[i].GameID, err)
		}
		pipe.XAdd(ctx, &redis.XAddArgs{
			Stream: stream,
			MaxLen: streamMaxLen,
			Approx: true,
			Values: map[string]interface{}{
				"game_id": games[i].GameID,
				"data":    data,
			},
		})
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("publish to %s: %w", stream, err)
	}
	p.logger.Debug("published snapshot", "stream", stream, "games", len(games))
	return nil
}

// Close releases the Redis connection.
func (p *Publisher) Close() error {
	return p.client.Close()
}
