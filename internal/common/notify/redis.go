// internal/common/notify/redis.go
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"pixisphere/internal/common/config"

	"github.com/redis/go-redis/v9"
)

// Event is the message published for every listing state change.
type Event struct {
	Version         uint64    `json:"version"`
	Query           string    `json:"query"`
	IsLoading       bool      `json:"isLoading"`
	CollectionCount int       `json:"collectionCount"`
	FeaturedIDs     []string  `json:"featuredIds"`
	Failed          bool      `json:"failed"`
	PublishedAt     time.Time `json:"publishedAt"`
}

// RedisPublisher fans listing state changes out to a Redis channel so other
// processes can follow the directory without polling.
type RedisPublisher struct {
	Client  *redis.Client
	channel string
	timeout time.Duration
}

// NewRedisPublisher creates a new Redis-backed publisher.
func NewRedisPublisher(cfg config.RedisConfig) *RedisPublisher {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     4,
	})
	return NewRedisPublisherWithClient(rdb, cfg.Channel)
}

// NewRedisPublisherWithClient wraps an existing client.
func NewRedisPublisherWithClient(client *redis.Client, channel string) *RedisPublisher {
	return &RedisPublisher{Client: client, channel: channel, timeout: 3 * time.Second}
}

// Channel returns the channel events are published on.
func (p *RedisPublisher) Channel() string {
	return p.channel
}

// Ping tests the Redis connection
func (p *RedisPublisher) Ping(ctx context.Context) error {
	if err := p.Client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

// Publish sends one event.
func (p *RedisPublisher) Publish(ctx context.Context, event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	if err := p.Client.Publish(ctx, p.channel, data).Err(); err != nil {
		return fmt.Errorf("redis publish failed: %w", err)
	}
	return nil
}

// Close closes the Redis connection
func (p *RedisPublisher) Close() error {
	if p.Client != nil {
		return p.Client.Close()
	}
	return nil
}
