package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Turn is one message of a conversation.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// HistoryStore keeps conversation turns by conversation id.
type HistoryStore interface {
	Load(ctx context.Context, id string) ([]Turn, error)
	Append(ctx context.Context, id string, turns ...Turn) error
	Delete(ctx context.Context, id string) error
}

// MemoryHistory is an in-process HistoryStore.
type MemoryHistory struct {
	mu            sync.RWMutex
	conversations map[string][]Turn
}

// NewMemoryHistory creates an empty MemoryHistory.
func NewMemoryHistory() *MemoryHistory {
	return &MemoryHistory{conversations: make(map[string][]Turn)}
}

func (h *MemoryHistory) Load(_ context.Context, id string) ([]Turn, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return append([]Turn(nil), h.conversations[id]...), nil
}

func (h *MemoryHistory) Append(_ context.Context, id string, turns ...Turn) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conversations[id] = append(h.conversations[id], turns...)
	return nil
}

func (h *MemoryHistory) Delete(_ context.Context, id string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conversations, id)
	return nil
}

const (
	conversationKeyPrefix  = "blockcraft:conversation:" // list of JSON turns: blockcraft:conversation:{id}
	defaultConversationTTL = 24 * time.Hour
)

// RedisHistory stores each conversation as a redis list of JSON turns.
type RedisHistory struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisHistory creates a RedisHistory. A non-positive ttl uses 24h.
func NewRedisHistory(client *redis.Client, ttl time.Duration) *RedisHistory {
	if ttl <= 0 {
		ttl = defaultConversationTTL
	}
	return &RedisHistory{client: client, ttl: ttl}
}

func (h *RedisHistory) Load(ctx context.Context, id string) ([]Turn, error) {
	items, err := h.client.LRange(ctx, h.key(id), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load conversation: %w", err)
	}

	turns := make([]Turn, 0, len(items))
	for _, item := range items {
		var t Turn
		if err := json.Unmarshal([]byte(item), &t); err != nil {
			return nil, fmt.Errorf("failed to unmarshal turn: %w", err)
		}
		turns = append(turns, t)
	}
	return turns, nil
}

func (h *RedisHistory) Append(ctx context.Context, id string, turns ...Turn) error {
	if len(turns) == 0 {
		return nil
	}

	values := make([]any, 0, len(turns))
	for _, t := range turns {
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Errorf("failed to marshal turn: %w", err)
		}
		values = append(values, b)
	}

	key := h.key(id)
	pipe := h.client.Pipeline()
	pipe.RPush(ctx, key, values...)
	pipe.Expire(ctx, key, h.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to append conversation: %w", err)
	}
	return nil
}

func (h *RedisHistory) Delete(ctx context.Context, id string) error {
	if err := h.client.Del(ctx, h.key(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete conversation: %w", err)
	}
	return nil
}

func (h *RedisHistory) key(id string) string {
	return conversationKeyPrefix + id
}
