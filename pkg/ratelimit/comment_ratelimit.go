// CommentRateLimiter — Yorum spam koruması için kullanıcı bazlı rate limiting.
//
// LoginRateLimiter'dan farklar:
// - Key: userID (IP değil) — authenticated endpoint, kullanıcı bazlı takip.
// - Cooldown: Window süresi ve ceza süresi (cooldown) ayrıdır.
//   Limit aşıldığında kullanıcı cooldown süresi kadar bekler.
//
// Yorum spam'i iki yönden zararlı: hem moderasyon yükü hem de her yayınlanan
// yorum abonelere mail tetiklediği için gönderim kotası tüketimi.
package ratelimit

import (
	"sync"
	"time"
)

// commentBucket, bir kullanıcı için yorum sayacı ve cooldown bilgisi tutar.
type commentBucket struct {
	count         int
	windowStart   time.Time
	cooldownUntil time.Time // zero value = cooldown yok
}

// CommentRateLimiter, kullanıcı bazlı yorum spam koruması.
//
// Kullanım:
//
//	limiter := NewCommentRateLimiter(3, 30*time.Second, 2*time.Minute)
//	// Comment handler'da:
//	if !limiter.Allow(userID) { return 429 }
type CommentRateLimiter struct {
	mu          sync.RWMutex
	buckets     map[string]*commentBucket
	maxComments int
	window      time.Duration
	cooldown    time.Duration
	stopCleanup chan struct{}
}

// NewCommentRateLimiter, yeni yorum rate limiter oluşturur ve arka plan
// temizleme goroutine'ini başlatır.
func NewCommentRateLimiter(maxComments int, window, cooldown time.Duration) *CommentRateLimiter {
	rl := &CommentRateLimiter{
		buckets:     make(map[string]*commentBucket),
		maxComments: maxComments,
		window:      window,
		cooldown:    cooldown,
		stopCleanup: make(chan struct{}),
	}

	go rl.cleanupLoop()

	return rl
}

// Allow, verilen kullanıcının yorum göndermesine izin verilip verilmediğini kontrol eder.
//
// Akış:
// 1. Cooldown'daysa → reject (cooldown bitmeden hiçbir yorum geçmez).
// 2. Window dolmuşsa → yeni pencere başlat.
// 3. Window içindeyse → count artır, max aşıldıysa cooldown başlat.
func (rl *CommentRateLimiter) Allow(userID string) bool {
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	b, exists := rl.buckets[userID]
	if !exists {
		rl.buckets[userID] = &commentBucket{count: 1, windowStart: now}
		return true
	}

	if !b.cooldownUntil.IsZero() && now.Before(b.cooldownUntil) {
		return false
	}

	if !b.cooldownUntil.IsZero() {
		// Cooldown bitti — yeni pencere başlat
		b.count = 1
		b.windowStart = now
		b.cooldownUntil = time.Time{}
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

// CooldownSeconds, rate limit aşıldığında kalan cooldown süresini saniye
// cinsinden döner. HTTP Retry-After header değeri olarak kullanılır.
func (rl *CommentRateLimiter) CooldownSeconds(userID string) int {
	rl.mu.RLock()
	defer rl.mu.RUnlock()

	b, exists := rl.buckets[userID]
	if !exists {
		return 0
	}

	if b.cooldownUntil.IsZero() {
		return 0
	}

	remaining := time.Until(b.cooldownUntil)
	if remaining <= 0 {
		return 0
	}

	return int(remaining.Seconds()) + 1
}

func (rl *CommentRateLimiter) cleanupLoop() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup()
		case <-rl.stopCleanup:
			return
		}
	}
}

// Stop, arka plan temizleme goroutine'ini durdurur.
func (rl *CommentRateLimiter) Stop() {
	close(rl.stopCleanup)
}

// cleanup, hem window hem cooldown süresi geçmiş bucket'ları siler.
// Bu, cooldown'daki kullanıcıların bucket'ını yanlışlıkla silmeyi önler.
func (rl *CommentRateLimiter) cleanup() {
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	for userID, b := range rl.buckets {
		windowExpired := now.Sub(b.windowStart) > rl.window
		cooldownExpired := b.cooldownUntil.IsZero() || now.After(b.cooldownUntil)

		if windowExpired && cooldownExpired {
			delete(rl.buckets, userID)
		}
	}
}
