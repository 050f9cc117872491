package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/yourusername/bggame/pkg/game"
)

const redisKeyPrefix = "bggame:game:"

// RedisConfig configures the Redis backend.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration // 0 = saves never expire
}

// RedisStore keeps saved games as JSON values under bggame:game:<id>.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.SugaredLogger
}

// NewRedisStore connects and pings the server; a dead server fails fast
// here rather than on the first save.
func NewRedisStore(ctx context.Context, cfg RedisConfig, logger *zap.SugaredLogger) (*RedisStore, error) {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connecting to redis at %s: %w", cfg.Addr, err)
	}
	logger.Infow("connected to redis", "addr", cfg.Addr, "db", cfg.DB)
	return &RedisStore{client: client, ttl: cfg.TTL, logger: logger}, nil
}

// Close releases the client's connections.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

func redisKey(id string) string {
	return redisKeyPrefix + id
}

// Save writes the record, refreshing the TTL if one is configured.
func (s *RedisStore) Save(ctx context.Context, id string, sg *game.SavedGame) error {
	if id == "" {
		return fmt.Errorf("store: invalid game id %q", id)
	}
	data, err := json.Marshal(sg)
	if err != nil {
		return fmt.Errorf("encoding saved game: %w", err)
	}
	if err := s.client.Set(ctx, redisKey(id), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("writing game %s to redis: %w", id, err)
	}
	s.logger.Debugw("game saved", "id", id)
	return nil
}

// Load reads the record saved under id.
func (s *RedisStore) Load(ctx context.Context, id string) (*game.SavedGame, error) {
	data, err := s.client.Get(ctx, redisKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading game %s from redis: %w", id, err)
	}
	var sg game.SavedGame
	if err := json.Unmarshal(data, &sg); err != nil {
		return nil, fmt.Errorf("decoding game %s: %w", id, err)
	}
	return &sg, nil
}

// Delete removes the save under id.
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	n, err := s.client.Del(ctx, redisKey(id)).Result()
	if err != nil {
		return fmt.Errorf("deleting game %s from redis: %w", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// List scans the keyspace for saved game ids.
func (s *RedisStore) List(ctx context.Context) ([]string, error) {
	var ids []string
	iter := s.client.Scan(ctx, 0, redisKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		ids = append(ids, strings.TrimPrefix(iter.Val(), redisKeyPrefix))
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("scanning redis keys: %w", err)
	}
	return ids, nil
}
