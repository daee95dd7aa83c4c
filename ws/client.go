package ws

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	// writeWait: tek bir mesajın yazılması için en fazla bekleme süresi.
	writeWait = 10 * time.Second

	// pongWait: heartbeat gelmezse bağlantı bu süre sonunda kapanır.
	// Tarayıcı 30sn'de bir heartbeat gönderir, 3 kaçırma tolere edilir.
	pongWait = 90 * time.Second

	// maxMessageSize: client'tan gelen mesaj sınırı. Admin sayfası sadece
	// heartbeat gönderir.
	maxMessageSize = 4096

	sendBufferSize = 64
)

// Client, tek bir tarayıcı tab'ının WebSocket bağlantısı.
//
// Her client iki goroutine çalıştırır:
// ReadPump heartbeat'leri okur, WritePump send channel'ındaki mesajları yazar.
type Client struct {
	hub       *Hub
	conn      *websocket.Conn
	sessionID string
	send      chan []byte
	mu        sync.Mutex // conn.WriteMessage çağrılarını korur
	log       *zap.Logger
}

func newClient(hub *Hub, conn *websocket.Conn, sessionID string) *Client {
	return &Client{
		hub:       hub,
		conn:      conn,
		sessionID: sessionID,
		send:      make(chan []byte, sendBufferSize),
		log:       hub.log.With(zap.String("session", shortID(sessionID))),
	}
}

// ReadPump, bağlantıdan gelen mesajları okur. Bağlantı kapanana kadar bloklar.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.enqueueUnregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		return
	}

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.log.Debug("unexpected close", zap.Error(err))
			}
			return
		}

		var event Event
		if err := json.Unmarshal(raw, &event); err != nil {
			c.log.Debug("invalid message", zap.Error(err))
			continue
		}
		c.handleEvent(event)
	}
}

func (c *Client) handleEvent(event Event) {
	switch event.Op {
	case OpHeartbeat:
		if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			return
		}
		c.sendEvent(Event{Op: OpHeartbeatAck})
	default:
		c.log.Debug("unknown op", zap.String("op", event.Op))
	}
}

// sendEvent, sadece bu client'a event gönderir (heartbeat_ack gibi).
func (c *Client) sendEvent(event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		return
	}

	select {
	case c.send <- data:
	default:
		c.log.Warn("send buffer full, dropping connection")
		go c.hub.enqueueUnregister(c)
	}
}

// WritePump, send channel'ındaki mesajları bağlantıya yazar.
// Channel kapandığında (Hub client'ı çıkardı) close frame gönderip çıkar.
func (c *Client) WritePump() {
	defer c.conn.Close()

	for message := range c.send {
		if err := c.writeMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
	_ = c.writeMessage(websocket.CloseMessage, nil)
}

// writeMessage, bağlantıya mutex altında yazar.
// gorilla/websocket aynı anda birden fazla writer'a izin vermez.
func (c *Client) writeMessage(messageType int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.conn.WriteMessage(messageType, data)
}
