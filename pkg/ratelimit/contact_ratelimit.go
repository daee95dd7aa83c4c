package ratelimit

import (
	"sync"
	"time"
)

type contactBucket struct {
	count         int
	windowStart   time.Time
	cooldownUntil time.Time // zero value = cooldown yok
}

// ContactRateLimiter, public iletişim formu için IP bazlı spam koruması.
//
// LoginRateLimiter'dan farkı: limit aşıldığında pencere değil ayrı bir
// ceza süresi (cooldown) uygulanır; cooldown bitene kadar tüm gönderimler reddedilir.
//
//	limiter := NewContactRateLimiter(3, 10*time.Minute, 30*time.Minute)
type ContactRateLimiter struct {
	mu          sync.Mutex
	buckets     map[string]*contactBucket
	maxMessages int
	window      time.Duration
	cooldown    time.Duration
	now         func() time.Time

	stopCleanup chan struct{}
	stopOnce    sync.Once
}

// NewContactRateLimiter, yeni limiter oluşturur ve temizleme goroutine'ini başlatır.
func NewContactRateLimiter(maxMessages int, window, cooldown time.Duration) *ContactRateLimiter {
	rl := &ContactRateLimiter{
		buckets:     make(map[string]*contactBucket),
		maxMessages: maxMessages,
		window:      window,
		cooldown:    cooldown,
		now:         time.Now,
		stopCleanup: make(chan struct{}),
	}

	go cleanupLoop(time.Minute, rl.stopCleanup, rl.cleanup)

	return rl
}

// Allow, IP'nin yeni bir mesaj göndermesine izin varsa true döner.
//
// Akış:
// 1. Cooldown'daysa → reject.
// 2. Cooldown bitmiş veya pencere dolmuşsa → yeni pencere.
// 3. Pencere içindeyse → count artır, max aşıldıysa cooldown başlat.
func (rl *ContactRateLimiter) Allow(ip string) bool {
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	b, exists := rl.buckets[ip]
	if !exists {
		rl.buckets[ip] = &contactBucket{count: 1, windowStart: now}
		return true
	}

	if !b.cooldownUntil.IsZero() {
		if now.Before(b.cooldownUntil) {
			return false
		}
		*b = contactBucket{count: 1, windowStart: now}
		return true
	}

	if now.Sub(b.windowStart) > rl.window {
		b.count = 1
		b.windowStart = now
		return true
	}

	b.count++
	if b.count > rl.maxMessages {
		b.cooldownUntil = now.Add(rl.cooldown)
		return false
	}
	return true
}

// CooldownSeconds, kalan cooldown süresini saniye cinsinden döner; yoksa 0.
func (rl *ContactRateLimiter) CooldownSeconds(ip string) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	b, exists := rl.buckets[ip]
	if !exists || b.cooldownUntil.IsZero() {
		return 0
	}

	remaining := b.cooldownUntil.Sub(rl.now())
	if remaining <= 0 {
		return 0
	}
	return int(remaining.Seconds()) + 1
}

// Stop, temizleme goroutine'ini durdurur.
func (rl *ContactRateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stopCleanup) })
}

// cleanup: hem pencere hem cooldown bitmişse bucket silinir.
func (rl *ContactRateLimiter) cleanup() {
	now := rl.now()

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
