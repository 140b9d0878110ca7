package blob

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"
)

const redisKeyPrefix = "gatewaymon:blob:"

// Redis keeps each blob as one string key. Suited to deployments that want
// shared storage without the gist API.
type Redis struct {
	client *redis.Client
}

func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

func (r *Redis) Read(ctx context.Context, name string) (string, error) {
	val, err := r.client.Get(ctx, redisKeyPrefix+name).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("blob: redis read %s: %w", name, err)
	}
	return val, nil
}

func (r *Redis) Write(ctx context.Context, name, content string) error {
	if err := r.client.Set(ctx, redisKeyPrefix+name, content, 0).Err(); err != nil {
		return fmt.Errorf("blob: redis write %s: %w", name, err)
	}
	return nil
}

func (r *Redis) Append(ctx context.Context, name, chunk string) error {
	return appendViaRewrite(ctx, r, name, chunk)
}
