// Package ratelimit, IP bazlı istek sınırlayıcılar.
//
//   - LoginRateLimiter: admin girişine brute-force koruması (sabit pencere).
//   - ContactRateLimiter: public iletişim formuna spam koruması (pencere + ceza süresi).
//
// Sayaçlar bellekte tutulur (tek instance deploy); arka plan goroutine'i
// süresi dolmuş bucket'ları temizler. Stop() ile durdurulur.
//
// pkg/ratelimit hiçbir proje içi pakete bağımlı değildir (leaf dependency).
package ratelimit

import (
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

type bucket struct {
	count       int
	windowStart time.Time
}

// LoginRateLimiter, IP bazlı login rate limiting.
//
//	limiter := NewLoginRateLimiter(5, 2*time.Minute)
//	if !limiter.Allow(ip) { ... 429 ... }
//	limiter.Reset(ip) // başarılı girişte
type LoginRateLimiter struct {
	mu          sync.Mutex
	buckets     map[string]*bucket
	maxAttempts int
	window      time.Duration
	now         func() time.Time

	stopCleanup chan struct{}
	stopOnce    sync.Once
}

// NewLoginRateLimiter, yeni rate limiter oluşturur ve temizleme goroutine'ini başlatır.
func NewLoginRateLimiter(maxAttempts int, window time.Duration) *LoginRateLimiter {
	rl := &LoginRateLimiter{
		buckets:     make(map[string]*bucket),
		maxAttempts: maxAttempts,
		window:      window,
		now:         time.Now,
		stopCleanup: make(chan struct{}),
	}

	go cleanupLoop(time.Minute, rl.stopCleanup, rl.cleanup)

	return rl
}

// Allow, IP'nin yeni bir giriş denemesine izni varsa true döner.
// Her çağrı sayacı artırır; başarılı girişte Reset çağrılmalıdır.
func (rl *LoginRateLimiter) Allow(ip string) bool {
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	b, exists := rl.buckets[ip]
	if !exists || now.Sub(b.windowStart) > rl.window {
		rl.buckets[ip] = &bucket{count: 1, windowStart: now}
		return true
	}

	b.count++
	return b.count <= rl.maxAttempts
}

// Reset, başarılı giriş sonrası IP sayacını sıfırlar.
func (rl *LoginRateLimiter) Reset(ip string) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	delete(rl.buckets, ip)
}

// RetryAfterSeconds, kalan bekleme süresini saniye cinsinden döner (Retry-After header).
func (rl *LoginRateLimiter) RetryAfterSeconds(ip string) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	b, exists := rl.buckets[ip]
	if !exists {
		return 0
	}

	remaining := rl.window - rl.now().Sub(b.windowStart)
	if remaining < 0 {
		return 0
	}
	return int(remaining.Seconds()) + 1
}

// Stop, temizleme goroutine'ini durdurur.
func (rl *LoginRateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stopCleanup) })
}

func (rl *LoginRateLimiter) cleanup() {
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	for ip, b := range rl.buckets {
		if now.Sub(b.windowStart) > rl.window {
			delete(rl.buckets, ip)
		}
	}
}

func cleanupLoop(interval time.Duration, stop <-chan struct{}, fn func()) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			fn()
		case <-stop:
			return
		}
	}
}

// ExtractIP, HTTP request'ten client IP adresini çıkarır.
//
// Öncelik: X-Forwarded-For (ilk IP) → X-Real-IP → RemoteAddr.
// Production'da uygulama nginx/Caddy arkasında çalışır; RemoteAddr proxy'nin IP'sidir.
func ExtractIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// FormatWait, kalan süreyi okunabilir formata çevirir:
// (120, "tr") → "2 dakika", (45, "en") → "45 second(s)".
func FormatWait(seconds int, lang string) string {
	if lang == "en" {
		if seconds >= 60 {
			return fmt.Sprintf("%d minute(s)", (seconds+59)/60)
		}
		return fmt.Sprintf("%d second(s)", seconds)
	}
	if seconds >= 60 {
		return fmt.Sprintf("%d dakika", (seconds+59)/60)
	}
	return fmt.Sprintf("%d saniye", seconds)
}
