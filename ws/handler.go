package ws

import (
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/portfolyo/site/pkg"
)

// SessionResolver, upgrade isteğinin hangi admin oturumuna ait olduğunu çözer.
// middleware paketi bunu cookie'den yapar; ws paketi cookie formatını bilmez.
type SessionResolver interface {
	ResolveSession(r *http.Request) (string, error)
}

// SessionResolverFunc, bir fonksiyonu SessionResolver'a çevirir.
type SessionResolverFunc func(r *http.Request) (string, error)

// ResolveSession, f(r) çağırır.
func (f SessionResolverFunc) ResolveSession(r *http.Request) (string, error) { return f(r) }

// Handler, /admin/ws endpoint'i.
type Handler struct {
	hub      *Hub
	sessions SessionResolver
	upgrader websocket.Upgrader
	log      *zap.Logger
}

// NewHandler, yeni bir Handler oluşturur.
// allowedOrigins boşsa gorilla'nın varsayılan same-origin kontrolü kullanılır.
func NewHandler(hub *Hub, sessions SessionResolver, allowedOrigins []string) *Handler {
	h := &Handler{
		hub:      hub,
		sessions: sessions,
		log:      hub.log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
	if len(allowedOrigins) > 0 {
		allowed := make(map[string]bool, len(allowedOrigins))
		for _, o := range allowedOrigins {
			allowed[o] = true
		}
		h.upgrader.CheckOrigin = func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || allowed[origin] || origin == "http://"+r.Host || origin == "https://"+r.Host
		}
	}
	return h
}

// HandleConnection, HTTP bağlantısını WebSocket'e yükseltir.
//
// Auth upgrade'den önce yapılır: geçersiz oturum normal 401 alır.
// Upgrade'den sonra WritePump ayrı goroutine'de başlar, ReadPump bu
// goroutine'i bağlantı kapanana kadar bloklar.
func (h *Handler) HandleConnection(w http.ResponseWriter, r *http.Request) {
	sessionID, err := h.sessions.ResolveSession(r)
	if err != nil || sessionID == "" {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Debug("upgrade failed", zap.Error(err))
		return
	}

	client := newClient(h.hub, conn, sessionID)
	if !h.hub.enqueueRegister(client) {
		conn.Close()
		return
	}

	go client.WritePump()
	client.ReadPump()
}
