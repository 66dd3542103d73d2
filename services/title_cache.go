package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TitleCache remembers titles already resolved for a fetch URL. A miss is
// ("", false, nil).
type TitleCache interface {
	GetTitle(ctx context.Context, url string) (string, bool, error)
	SetTitle(ctx context.Context, url, title string) error
}

type RedisTitleCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisTitleCache connects to redisURL and pings it before returning.
func NewRedisTitleCache(ctx context.Context, redisURL string, ttl time.Duration) (*RedisTitleCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %v", err)
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %v", err)
	}

	return NewRedisTitleCacheFromClient(client, ttl), nil
}

func NewRedisTitleCacheFromClient(client *redis.Client, ttl time.Duration) *RedisTitleCache {
	return &RedisTitleCache{client: client, ttl: ttl}
}

func titleKey(url string) string {
	return "title:" + url
}

func (c *RedisTitleCache) GetTitle(ctx context.Context, url string) (string, bool, error) {
	title, err := c.client.Get(ctx, titleKey(url)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get title from cache: %v", err)
	}
	return title, true, nil
}

func (c *RedisTitleCache) SetTitle(ctx context.Context, url, title string) error {
	if err := c.client.Set(ctx, titleKey(url), title, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache title: %v", err)
	}
	return nil
}

func (c *RedisTitleCache) IsConnected(ctx context.Context) bool {
	return c != nil && c.client != nil && c.client.Ping(ctx).Err() == nil
}

func (c *RedisTitleCache) Close() error {
	return c.client.Close()
}
