package session

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisHandoff backs the slot with Redis so the service can run multi-replica
// without pinning a session to one process.
type RedisHandoff struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewRedisClient connects and verifies a Redis client for session state.
func NewRedisClient(ctx context.Context, addr, password string) (redis.UniversalClient, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return client, nil
}

func NewRedisHandoff(client redis.UniversalClient, ttl time.Duration) *RedisHandoff {
	if ttl <= 0 {
		ttl = DefaultHandoffTTL
	}
	return &RedisHandoff{client: client, ttl: ttl}
}

func (h *RedisHandoff) Put(ctx context.Context, sessionID, imageRef string) error {
	return h.client.Set(ctx, handoffKey(sessionID), imageRef, h.ttl).Err()
}

func (h *RedisHandoff) Take(ctx context.Context, sessionID string) (string, bool, error) {
	val, err := h.client.GetDel(ctx, handoffKey(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func handoffKey(sessionID string) string {
	return "handoff:preselected:" + sessionID
}

var _ HandoffSlot = (*RedisHandoff)(nil)
