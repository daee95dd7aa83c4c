package reorder

// SyncStatus, listenin backend ile senkron durumu.
type SyncStatus string

const (
	// Synced: gösterilen sıra backend'de kayıtlı.
	Synced SyncStatus = "synced"
	// Pending: en az bir intent henüz backend'e yazılmadı.
	Pending SyncStatus = "pending"
	// Failed: son yazma başarısız oldu; gösterilen sıra geri alınmadı.
	Failed SyncStatus = "failed"
)

// Failed durumunun Reason kodları. Kullanıcıya gösterilen metin
// arayüzde bu koddan çevrilir.
const (
	ReasonUnauthorized = "unauthorized"
	ReasonForbidden    = "forbidden"
	ReasonTimeout      = "timeout"
	ReasonBackend      = "backend_error"
)

// SyncState, Synced / Pending / Failed(reason) etiketli değeri.
//
// Version her Enqueue'da artar; IntentID son intent'in kimliğidir.
// Reason sadece Failed durumunda doludur ve Reason* kodlarından biridir.
type SyncState struct {
	Status   SyncStatus `json:"status"`
	Reason   string     `json:"reason,omitempty"`
	Version  uint64     `json:"version"`
	IntentID string     `json:"intent_id,omitempty"`

	// Err, Failed durumundaki asıl hata (errors.Is kontrolü için).
	Err error `json:"-"`
}

// IsFailed, durum Failed ise true.
func (s SyncState) IsFailed() bool { return s.Status == Failed }
