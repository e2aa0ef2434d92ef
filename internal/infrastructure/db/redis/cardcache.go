package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Card HTML is content-addressed by a hash of its inputs, so entries never
// go stale and can live for a year, matching the immutable cache headers
// sent with the response.
const cardTTL = 365 * 24 * time.Hour

// CardCache stores rendered share-card HTML keyed by content hash.
type CardCache struct {
	client *redis.Client
}

func NewCardCache(client *redis.Client) *CardCache {
	return &CardCache{client: client}
}

func (c *CardCache) Get(ctx context.Context, key string) (string, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	html, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, err
	}
	return html, true, nil
}

func (c *CardCache) Set(ctx context.Context, key, html string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return c.client.Set(ctx, key, html, cardTTL).Err()
}
