// Package cache, generic in-memory TTL cache.
//
// Admin oturum çözümlemesinde kullanılır: her admin isteğinde SQLite'tan
// session okuyup token'ı AES-GCM ile çözmek yerine sonuç kısa süre
// bellekte tutulur.
//
// TTL (Time To Live) nedir?
// Her entry bir "son kullanma tarihi" taşır. Tarih geçtikten sonra entry
// okunamaz (cache miss). Fiziksel silme periyodik cleanup goroutine'inde yapılır.
package cache

import (
	"sync"
	"time"
)

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// TTLCache, thread-safe generic TTL cache.
//
//	c := cache.New[string, models.AuthContext](time.Minute, 5*time.Minute)
//	c.Set("session-id", auth)
//	auth, ok := c.Get("session-id")
type TTLCache[K comparable, V any] struct {
	mu      sync.RWMutex
	entries map[K]entry[V]
	ttl     time.Duration
	now     func() time.Time

	stopCleanup chan struct{}
	closeOnce   sync.Once
}

// New, yeni bir TTLCache oluşturur ve periyodik temizleme goroutine'ini başlatır.
// cleanupInterval < ttl olmalıdır, aksi halde map gereksiz büyür.
func New[K comparable, V any](ttl, cleanupInterval time.Duration) *TTLCache[K, V] {
	c := &TTLCache[K, V]{
		entries:     make(map[K]entry[V]),
		ttl:         ttl,
		now:         time.Now,
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

// Get, key varsa ve süresi dolmamışsa (value, true) döner.
func (c *TTLCache[K, V]) Get(key K) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok || !c.now().Before(e.expiresAt) {
		var zero V
		return zero, false
	}
	return e.value, true
}

// Set, cache'e varsayılan TTL ile yazar.
func (c *TTLCache[K, V]) Set(key K, value V) {
	c.SetUntil(key, value, time.Time{})
}

// SetUntil, cache'e yazar; entry en geç `until` anında düşer.
// Session cache'inde entry'nin oturumun kendisinden uzun yaşamaması için kullanılır.
// Sıfır değerli until → sadece varsayılan TTL.
func (c *TTLCache[K, V]) SetUntil(key K, value V, until time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	expiresAt := c.now().Add(c.ttl)
	if !until.IsZero() && until.Before(expiresAt) {
		expiresAt = until
	}
	c.entries[key] = entry[V]{value: value, expiresAt: expiresAt}
}

// Delete, key'i cache'ten siler (logout, backend 401).
func (c *TTLCache[K, V]) Delete(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key)
}

// Len, cache'teki toplam entry sayısını döner (süresi dolmuşlar dahil).
func (c *TTLCache[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}

// Close, temizleme goroutine'ini durdurur. Birden fazla çağrılabilir.
func (c *TTLCache[K, V]) Close() {
	c.closeOnce.Do(func() { close(c.stopCleanup) })
}

func (c *TTLCache[K, V]) evictExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for key, e := range c.entries {
		if !now.Before(e.expiresAt) {
			delete(c.entries, key)
		}
	}
}
