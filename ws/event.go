package ws

// Event, WebSocket üzerinden gönderilen/alınan her mesajın zarfı.
//
// Op event tipini belirtir, Data payload'ı taşır ("d" alanı),
// Seq sunucudan çıkan event'lerde artan sayaçtır. Tarayıcı Seq ile
// eski bir sync_state'i yenisinin üstüne yazmaz.
type Event struct {
	Op   string `json:"op"`
	Data any    `json:"d,omitempty"`
	Seq  int64  `json:"seq,omitempty"`
}

// Client → Server
const (
	OpHeartbeat = "heartbeat" // admin sayfası 30sn'de bir gönderir
)

// Server → Client
const (
	OpHeartbeatAck    = "heartbeat_ack"
	OpSyncState       = "sync_state"       // d: reorder.SyncState
	OpProjectsReorder = "projects_reorder" // d: ReorderPayload
	OpSessionEnded    = "session_ended"    // oturum kapandı, sayfa login'e döner
)

// ReorderPayload, projects_reorder event'inin payload'ı.
// Aynı oturumun diğer tab'ları listeyi bu sıraya göre yeniden dizer.
type ReorderPayload struct {
	IDs []int64 `json:"ids"`
}
