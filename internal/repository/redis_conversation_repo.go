package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"neuratek-relay/internal/models"
)

// RedisConversationRepo stores each session as a Redis list so multiple
// relay instances can serve the same session. Expiry and the turn cap
// are enforced on every append.
type RedisConversationRepo struct {
	client   *redis.Client
	ttl      time.Duration
	maxTurns int
}

func NewRedisConversationRepo(client *redis.Client, ttl time.Duration, maxTurns int) *RedisConversationRepo {
	return &RedisConversationRepo{
		client:   client,
		ttl:      ttl,
		maxTurns: maxTurns,
	}
}

func sessionKey(sessionID string) string {
	return "conversation:" + sessionID
}

func (r *RedisConversationRepo) History(ctx context.Context, sessionID string) ([]models.Message, error) {
	entries, err := r.client.LRange(ctx, sessionKey(sessionID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read session from Redis: %w", err)
	}

	messages := make([]models.Message, 0, len(entries))
	for _, entry := range entries {
		var msg models.Message
		if err := json.Unmarshal([]byte(entry), &msg); err != nil {
			return nil, fmt.Errorf("failed to decode stored turn: %w", err)
		}
		messages = append(messages, msg)
	}
	return messages, nil
}

func (r *RedisConversationRepo) Append(ctx context.Context, sessionID string, messages ...models.Message) error {
	key := sessionKey(sessionID)

	pipe := r.client.TxPipeline()
	for _, msg := range messages {
		encoded, err := json.Marshal(msg)
		if err != nil {
			return fmt.Errorf("failed to encode turn: %w", err)
		}
		pipe.RPush(ctx, key, encoded)
	}
	if r.maxTurns > 0 {
		pipe.LTrim(ctx, key, int64(-r.maxTurns), -1)
	}
	if r.ttl > 0 {
		pipe.Expire(ctx, key, r.ttl)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to append session turns to Redis: %w", err)
	}
	return nil
}
