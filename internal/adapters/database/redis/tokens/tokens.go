package tokens

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/thalyssonDEV/EventSync/internal/domain/common/errorz"
)

// Storage keeps short-lived check-in tokens. A token maps onto the
// registration it was issued for and expires on its own.
type Storage struct {
	redis *redis.Client
}

func NewStorage(client *redis.Client) *Storage {
	return &Storage{
		redis: client,
	}
}

func key(token string) string {
	return fmt.Sprintf("checkin:%s", token)
}

// Set stores a token for the registration with the given expiration.
func (s *Storage) Set(ctx context.Context, token, registrationID string, expiration time.Duration) error {
	return s.redis.Set(ctx, key(token), registrationID, expiration).Err()
}

// Resolve returns the registration id a token was issued for.
func (s *Storage) Resolve(ctx context.Context, token string) (string, error) {
	registrationID, err := s.redis.Get(ctx, key(token)).Result()
	if errors.Is(err, redis.Nil) {
		return "", errorz.ErrInvalidToken
	}
	if err != nil {
		return "", err
	}
	return registrationID, nil
}

// Revoke removes a token before its expiration.
func (s *Storage) Revoke(ctx context.Context, token string) error {
	return s.redis.Del(ctx, key(token)).Err()
}
