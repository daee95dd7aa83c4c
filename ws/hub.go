package ws

import (
	"encoding/json"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// EventPublisher, service katmanının WebSocket event'leri göndermek için
// kullandığı interface.
//
// Service'ler Hub'ın concrete struct'ına değil bu interface'e bağımlıdır;
// testlerde fake publisher kullanılır.
type EventPublisher interface {
	BroadcastToSession(sessionID string, event Event)
	DisconnectSession(sessionID string)
}

// Hub, admin tarayıcılarının WebSocket bağlantılarını yönetir.
//
// Bağlantılar oturum id'sine göre gruplanır: aynı oturumun birden fazla
// tab'ı olabilir ve bir reorder'ın sync durumu hepsine gider.
// Register/unregister Run() goroutine'inde işlenir; broadcast
// RLock ile doğrudan client buffer'larına yazar.
type Hub struct {
	// clients: sessionID → Client set.
	clients map[string]map[*Client]bool
	mu      sync.RWMutex

	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	stopOnce   sync.Once

	seq atomic.Int64
	log *zap.Logger
}

// NewHub, yeni bir Hub oluşturur. main.go'da `go hub.Run()` ile başlatılır.
func NewHub(log *zap.Logger) *Hub {
	if log == nil {
		log = zap.NewNop()
	}
	return &Hub{
		clients:    make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		log:        log.Named("ws"),
	}
}

// Run, Hub'ın ana event loop'u. Shutdown çağrılana kadar döner.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case <-h.done:
			return
		}
	}
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.sessionID]; !ok {
		h.clients[client.sessionID] = make(map[*Client]bool)
	}
	h.clients[client.sessionID][client] = true

	h.log.Debug("client connected",
		zap.String("session", shortID(client.sessionID)),
		zap.Int("connections", len(h.clients[client.sessionID])))
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.dropLocked(client)
}

// dropLocked, client'ı map'ten çıkarır ve send channel'ını kapatır.
// Çağıran h.mu'yu yazma modunda tutmalıdır.
func (h *Hub) dropLocked(client *Client) {
	clients, ok := h.clients[client.sessionID]
	if !ok {
		return
	}
	if _, exists := clients[client]; !exists {
		return
	}
	delete(clients, client)
	close(client.send)

	if len(clients) == 0 {
		delete(h.clients, client.sessionID)
	}
	h.log.Debug("client disconnected",
		zap.String("session", shortID(client.sessionID)),
		zap.Int("remaining", len(clients)))
}

// enqueueRegister, client'ı Hub'a kaydeder. Hub kapandıysa false döner.
func (h *Hub) enqueueRegister(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

// enqueueUnregister, client'ın çıkarılmasını ister. Hub kapandıysa no-op.
func (h *Hub) enqueueUnregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// BroadcastToSession, bir oturumun tüm bağlantılarına event gönderir.
//
// Buffer'ı dolu client donmuş kabul edilir ve çıkarılır.
// Unregister ayrı goroutine'de gönderilir: RLock tutulurken Run()
// Lock alamaz, aynı goroutine'de göndermek deadlock olurdu.
func (h *Hub) BroadcastToSession(sessionID string, event Event) {
	event.Seq = h.seq.Add(1)

	data, err := json.Marshal(event)
	if err != nil {
		h.log.Error("failed to marshal event", zap.String("op", event.Op), zap.Error(err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients[sessionID] {
		select {
		case client.send <- data:
		default:
			h.log.Warn("send buffer full, dropping connection", zap.String("session", shortID(sessionID)))
			go h.enqueueUnregister(client)
		}
	}
}

// DisconnectSession, logout sonrası oturumun tüm tab'larına session_ended
// gönderir ve bağlantılarını kapatır.
func (h *Hub) DisconnectSession(sessionID string) {
	data, err := json.Marshal(Event{Op: OpSessionEnded, Seq: h.seq.Add(1)})
	if err != nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients[sessionID] {
		select {
		case client.send <- data:
		default:
		}
		h.dropLocked(client)
	}
}

// ConnectionCount, bir oturumun açık bağlantı sayısını döner.
func (h *Hub) ConnectionCount(sessionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[sessionID])
}

// Shutdown, tüm client bağlantılarını kapatır ve Run() loop'unu durdurur.
// Birden fazla çağrılabilir.
func (h *Hub) Shutdown() {
	h.stopOnce.Do(func() {
		close(h.done)

		h.mu.Lock()
		defer h.mu.Unlock()

		for _, clients := range h.clients {
			for client := range clients {
				close(client.send)
			}
		}
		h.clients = make(map[string]map[*Client]bool)
		h.log.Info("hub shut down, all connections closed")
	})
}

// shortID, oturum id'sinin log'a yazılacak kısmı. Tam id bir credential'dır.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
