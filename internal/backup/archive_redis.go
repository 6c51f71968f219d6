package backup

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	platformredis "greenlight/internal/platform/redis"
	"greenlight/pkg/sentinel"
)

const redisKeyPrefix = "greenlight:snapshot:"

// RedisArchive stores snapshot payloads in redis so backups survive process
// restarts. Payloads are written without expiry; retention is an operator
// concern.
type RedisArchive struct {
	client *platformredis.Client
}

func NewRedisArchive(client *platformredis.Client) *RedisArchive {
	return &RedisArchive{client: client}
}

func (a *RedisArchive) Save(ctx context.Context, id string, payload []byte) error {
	if err := a.client.Set(ctx, redisKeyPrefix+id, payload, 0).Err(); err != nil {
		return fmt.Errorf("save snapshot to redis: %w", err)
	}
	return nil
}

func (a *RedisArchive) Load(ctx context.Context, id string) ([]byte, error) {
	payload, err := a.client.Get(ctx, redisKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot from redis: %w", err)
	}
	return payload, nil
}
