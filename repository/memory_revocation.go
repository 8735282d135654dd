package repository

import (
	"context"
	"time"

	"github.com/akinalp/quill/pkg/cache"
)

// memoryRevocationStore, RevocationStore'un TTLCache üzerindeki implementasyonu.
type memoryRevocationStore struct {
	cache *cache.TTLCache[string, struct{}]
}

// NewMemoryRevocationStore, boş bir in-memory iptal listesi oluşturur.
// Dönen closer, arka plandaki temizleme goroutine'ini durdurur.
func NewMemoryRevocationStore() (RevocationStore, func()) {
	c := cache.New[string, struct{}](5 * time.Minute)
	return &memoryRevocationStore{cache: c}, c.Close
}

func (s *memoryRevocationStore) Revoke(ctx context.Context, token string, expiresAt time.Time) (bool, error) {
	return s.cache.SetIfAbsent(token, struct{}{}, revocationTTL(expiresAt)), nil
}

func (s *memoryRevocationStore) IsRevoked(ctx context.Context, token string) (bool, error) {
	_, ok := s.cache.Get(token)
	return ok, nil
}
