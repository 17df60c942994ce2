package trigger

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// keeps the cursor in a redis string key so restarts resume where they left off
type RedisCursorStore struct {
	client *redis.Client
	key    string
}

func NewRedisCursorStore(client *redis.Client, key string) *RedisCursorStore {
	return &RedisCursorStore{client: client, key: key}
}

// creates a redis cursor store from a URL and checks connectivity
func NewRedisCursorStoreFromURL(redisURL, key string) (*RedisCursorStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close() //nolint:errcheck,gosec
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisCursorStore{client: client, key: key}, nil
}

func (s *RedisCursorStore) Load(ctx context.Context) (int64, error) {
	val, err := s.client.Get(ctx, s.key).Result()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}

	if err != nil {
		return 0, fmt.Errorf("failed to load cursor: %w", err)
	}

	cursor, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("corrupt cursor %q at %s: %w", val, s.key, err)
	}

	return cursor, nil
}

func (s *RedisCursorStore) Save(ctx context.Context, cursor int64) error {
	if err := s.client.Set(ctx, s.key, strconv.FormatInt(cursor, 10), 0).Err(); err != nil {
		return fmt.Errorf("failed to save cursor: %w", err)
	}
	return nil
}

func (s *RedisCursorStore) Close() error {
	return s.client.Close()
}

// process-local cursor, lost on restart
type MemoryCursorStore struct {
	mu     sync.Mutex
	cursor int64
}

func NewMemoryCursorStore() *MemoryCursorStore {
	return &MemoryCursorStore{}
}

func (s *MemoryCursorStore) Load(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor, nil
}

func (s *MemoryCursorStore) Save(_ context.Context, cursor int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cursor = cursor
	return nil
}
