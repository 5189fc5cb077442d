package storage

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/redis/go-redis/v9"

	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/logger"
	"github.com/julianstephens/habitual/internal/models"
)

// RedisKey is the Redis key holding the habit slot
const RedisKey = constants.AppName + ":" + constants.HabitsSlot

// RedisStore keeps the habit slot under a single Redis key.
type RedisStore struct {
	url    string
	client *redis.Client
}

// NewRedisStore parses a redis:// or rediss:// URL. No connection is made
// until the store is used.
func NewRedisStore(redisURL string) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid Redis URL: %w", err)
	}
	return &RedisStore{
		url:    redisURL,
		client: redis.NewClient(opts),
	}, nil
}

// ValidateRedisURL checks that redisURL parses and carries no password.
func ValidateRedisURL(redisURL string) error {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConnectionString, err)
	}
	if opts.Password != "" {
		return ErrEmbeddedCredentials
	}
	return nil
}

func (s *RedisStore) Init() error {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}

	// Seed an empty collection without touching existing data.
	if err := s.client.SetNX(ctx, RedisKey, "[]", 0).Err(); err != nil {
		return fmt.Errorf("failed to initialize redis key: %w", err)
	}
	return nil
}

func (s *RedisStore) Load() ([]models.Habit, error) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	value, err := s.client.Get(ctx, RedisKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []models.Habit{}, nil
		}
		return nil, fmt.Errorf("failed to read habits: %w", err)
	}

	return decodeHabits(value, "redis"), nil
}

func (s *RedisStore) Save(habits []models.Habit) error {
	data, err := encodeHabits(habits)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	if err := s.client.Set(ctx, RedisKey, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save habits: %w", err)
	}

	logger.Debug("Saved habits", "backend", KindRedis, "count", len(habits))
	return nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

// GetConfigPath returns the URL with any password redacted.
func (s *RedisStore) GetConfigPath() string {
	u, err := url.Parse(s.url)
	if err != nil {
		return s.url
	}
	return u.Redacted()
}
