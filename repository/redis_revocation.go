package repository

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisRevocationStore, iptal listesini Redis'te tutar.
//
// Key formatı: "revoked:<sha256(token)>". Token'ın kendisi key'e yazılmaz:
// Redis'e erişimi olan biri geçerli token'ları okuyamamalı.
type redisRevocationStore struct {
	client *redis.Client
	prefix string
}

// NewRedisRevocationStore, constructor.
func NewRedisRevocationStore(client *redis.Client) RevocationStore {
	return &redisRevocationStore{
		client: client,
		prefix: "revoked:",
	}
}

func (s *redisRevocationStore) key(token string) string {
	sum := sha256.Sum256([]byte(token))
	return s.prefix + hex.EncodeToString(sum[:])
}

// Revoke, SET NX ile ekler: iki paralel logout'tan yalnızca biri true alır.
func (s *redisRevocationStore) Revoke(ctx context.Context, token string, expiresAt time.Time) (bool, error) {
	ok, err := s.client.SetNX(ctx, s.key(token), 1, revocationTTL(expiresAt)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to revoke token: %w", err)
	}
	return ok, nil
}

func (s *redisRevocationStore) IsRevoked(ctx context.Context, token string) (bool, error) {
	n, err := s.client.Exists(ctx, s.key(token)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check revoked token: %w", err)
	}
	return n > 0, nil
}
