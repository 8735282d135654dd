// Package cache: Generic in-memory TTL cache.
//
// TTLCache, her kaydı kendi son kullanma zamanıyla tutan thread-safe,
// generic bir cache yapısıdır. Süresi dolan kayıtlar okunamaz; map'ten
// fiziksel silme arka plandaki temizleme goroutine'i ile yapılır.
//
// Kullanım alanı: logout edilen token'ların iptal listesi
// (bkz. repository.NewMemoryRevocationStore). Token zaten expire olduktan
// sonra listede tutmanın anlamı yok: TTL = token'ın kalan ömrü.
package cache

import (
	"sync"
	"time"
)

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// TTLCache, generic in-memory TTL cache.
//
//	c := cache.New[string, struct{}](5 * time.Minute)
//	c.SetIfAbsent("key", struct{}{}, 10*time.Minute)
//	_, ok := c.Get("key")
type TTLCache[K comparable, V any] struct {
	mu      sync.RWMutex
	entries map[K]entry[V]

	stopCleanup chan struct{}
	closeOnce   sync.Once
}

// New, yeni bir TTLCache oluşturur ve periyodik temizleme goroutine'ini başlatır.
// cleanupInterval: süresi dolan kayıtların map'ten silinme sıklığı.
func New[K comparable, V any](cleanupInterval time.Duration) *TTLCache[K, V] {
	c := &TTLCache[K, V]{
		entries:     make(map[K]entry[V]),
		stopCleanup: make(chan struct{}),
	}

	go func() {
		ticker := time.NewTicker(cleanupInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				c.evictExpired()
			case <-c.stopCleanup:
				return
			}
		}
	}()

	return c
}

// Get, (value, true) döner eğer key varsa ve süresi dolmamışsa.
func (c *TTLCache[K, V]) Get(key K) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok || time.Now().After(e.expiresAt) {
		var zero V
		return zero, false
	}
	return e.value, true
}

// SetIfAbsent, key yoksa (veya süresi dolmuşsa) yazar ve true döner.
// Canlı bir kayıt varsa hiçbir şey yapmaz, false döner.
// Kontrol ve yazma aynı lock altında: iki paralel çağrıdan yalnızca biri kazanır.
func (c *TTLCache[K, V]) SetIfAbsent(key K, value V, ttl time.Duration) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	if e, ok := c.entries[key]; ok && !now.After(e.expiresAt) {
		return false
	}
	c.entries[key] = entry[V]{value: value, expiresAt: now.Add(ttl)}
	return true
}

// Close, temizleme goroutine'ini durdurur. Birden fazla çağrı güvenlidir.
func (c *TTLCache[K, V]) Close() {
	c.closeOnce.Do(func() { close(c.stopCleanup) })
}

func (c *TTLCache[K, V]) evictExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for key, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, key)
		}
	}
}
