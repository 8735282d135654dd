package ratelimit

import (
	"sync"
	"time"
)

// commentBucket, bir IP için yorum sayacı ve ceza bilgisi.
// cooldownUntil zero value ise ceza yok.
type commentBucket struct {
	count         int
	windowStart   time.Time
	cooldownUntil time.Time
}

// CommentRateLimiter, IP bazlı yorum spam koruması.
//
// LoginRateLimiter'dan farkı: limit aşıldığında pencere bitimini değil,
// ayrı bir ceza süresini (cooldown) bekletir. Ör: 30 saniyede 5 yorum,
// 6.'da 2 dakika boyunca tüm yorumlar reddedilir.
type CommentRateLimiter struct {
	mu          sync.Mutex
	buckets     map[string]*commentBucket
	maxComments int
	window      time.Duration
	cooldown    time.Duration
	stopCleanup chan struct{}
	closeOnce   sync.Once
}

// NewCommentRateLimiter, maxComments <= 0 ise nil döner (kapalı).
func NewCommentRateLimiter(maxComments int, window, cooldown time.Duration) *CommentRateLimiter {
	if maxComments <= 0 {
		return nil
	}

	rl := &CommentRateLimiter{
		buckets:     make(map[string]*commentBucket),
		maxComments: maxComments,
		window:      window,
		cooldown:    cooldown,
		stopCleanup: make(chan struct{}),
	}
	go runCleanup(30*time.Second, rl.stopCleanup, rl.cleanup)
	return rl
}

// Allow, yoruma izin verilip verilmediğini döner.
//
// 1. Ceza süresindeyse → false
// 2. Ceza bittiyse veya pencere dolduysa → yeni pencere
// 3. Pencere içinde max aşılırsa → ceza başlar, false
func (rl *CommentRateLimiter) Allow(ip string) bool {
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	b, exists := rl.buckets[ip]
	if !exists {
		rl.buckets[ip] = &commentBucket{count: 1, windowStart: now}
		return true
	}

	if !b.cooldownUntil.IsZero() {
		if now.Before(b.cooldownUntil) {
			return false
		}
		*b = commentBucket{count: 1, windowStart: now}
		return true
	}

	if now.Sub(b.windowStart) > rl.window {
		b.count = 1
		b.windowStart = now
		return true
	}

	b.count++
	if b.count > rl.maxComments {
		b.cooldownUntil = now.Add(rl.cooldown)
		return false
	}
	return true
}

// CooldownSeconds, kalan ceza süresi; ceza yoksa 0.
func (rl *CommentRateLimiter) CooldownSeconds(ip string) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	b, exists := rl.buckets[ip]
	if !exists || b.cooldownUntil.IsZero() {
		return 0
	}

	remaining := time.Until(b.cooldownUntil)
	if remaining <= 0 {
		return 0
	}
	return int(remaining.Seconds()) + 1
}

// Close, temizleme goroutine'ini durdurur.
func (rl *CommentRateLimiter) Close() {
	rl.closeOnce.Do(func() { close(rl.stopCleanup) })
}

// cleanup, hem penceresi hem cezası bitmiş bucket'ları siler.
func (rl *CommentRateLimiter) cleanup() {
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	for ip, b := range rl.buckets {
		windowExpired := now.Sub(b.windowStart) > rl.window
		cooldownExpired := b.cooldownUntil.IsZero() || now.After(b.cooldownUntil)
		if windowExpired && cooldownExpired {
			delete(rl.buckets, ip)
		}
	}
}
