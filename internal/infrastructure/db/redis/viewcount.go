package redis

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const viewCountKey = "issues:views"

// ViewCounter buffers issue view counts in a Redis hash so each page view is
// a single HINCRBY instead of a document write. A periodic drain folds the
// buffered counts back into the issue documents.
type ViewCounter struct {
	client *redis.Client
}

func NewViewCounter(client *redis.Client) *ViewCounter {
	return &ViewCounter{client: client}
}

func (v *ViewCounter) Bump(ctx context.Context, issueID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return v.client.HIncrBy(ctx, viewCountKey, issueID, 1).Err()
}

// Drain atomically reads and clears the buffered counts. Rename-then-read
// keeps bumps arriving mid-drain from being lost.
func (v *ViewCounter) Drain(ctx context.Context) (map[string]int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	drainKey := viewCountKey + ":draining"
	// RenameNX returning false means a previous drain crashed after the
	// rename; its leftover hash is read below.
	if _, err := v.client.RenameNX(ctx, viewCountKey, drainKey).Result(); err != nil {
		// Renaming a missing key means nothing was buffered.
		if strings.Contains(err.Error(), "no such key") {
			return nil, nil
		}
		return nil, err
	}

	raw, err := v.client.HGetAll(ctx, drainKey).Result()
	if err != nil {
		return nil, err
	}
	if err := v.client.Del(ctx, drainKey).Err(); err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(raw))
	for id, val := range raw {
		n, err := strconv.ParseInt(val, 10, 64)
		if err != nil {
			continue
		}
		counts[id] = n
	}
	if len(counts) == 0 {
		return nil, nil
	}
	return counts, nil
}
