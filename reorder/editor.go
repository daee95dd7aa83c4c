package reorder

import "sync"

// DragState, tek bir kaydın sürükleme durumu: idle → dragging → idle.
type DragState string

const (
	Idle     DragState = "idle"
	Dragging DragState = "dragging"
)

// Editor, ekranda gösterilen sıralı listeyi tutar.
//
// Pozisyonlar her zaman sıfırdan başlayan, boşluksuz bir permütasyondur;
// aynı id iki kez bulunamaz. Aynı anda en fazla bir kayıt sürüklenir.
type Editor[T Item] struct {
	mu       sync.RWMutex
	items    []T
	dragging int64
	active   bool
}

// NewEditor, backend'den yüklenen kayıtlarla bir Editor oluşturur.
// Tekrarlanan id'lerin sadece ilki tutulur.
func NewEditor[T Item](items []T) *Editor[T] {
	e := &Editor[T]{}
	e.items = dedupe(items)
	return e
}

// Items, gösterilen sıranın kopyasını döner.
func (e *Editor[T]) Items() []T {
	e.mu.RLock()
	defer e.mu.RUnlock()

	out := make([]T, len(e.items))
	copy(out, e.items)
	return out
}

// IDs, gösterilen sıradaki id'leri döner; backend'e gönderilen payload budur.
func (e *Editor[T]) IDs() []int64 {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return IDs(e.items)
}

// Positions, id → sıfır tabanlı pozisyon eşlemesi.
func (e *Editor[T]) Positions() map[int64]int {
	e.mu.RLock()
	defer e.mu.RUnlock()

	pos := make(map[int64]int, len(e.items))
	for i, it := range e.items {
		pos[it.ItemID()] = i
	}
	return pos
}

// Len, kayıt sayısı.
func (e *Editor[T]) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.items)
}

// BeginDrag, kaydı "dragging" durumuna alır. Başka bir kayıt sürükleniyorsa o bırakılır.
func (e *Editor[T]) BeginDrag(id int64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.indexOf(id) < 0 {
		return ErrUnknownItem
	}
	e.dragging = id
	e.active = true
	return nil
}

// CompleteDrag, sourceID'yi targetID'nin bulunduğu pozisyona taşır ve yeni
// sırayı hemen uygular. changed=false ise sıra değişmemiştir (source == target),
// backend'e bir şey gönderilmemelidir.
//
// Sonuçta tüm kayıtlar "idle" durumuna döner; hata durumunda da.
func (e *Editor[T]) CompleteDrag(sourceID, targetID int64) (ids []int64, changed bool, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.active = false
	e.dragging = 0

	from := e.indexOf(sourceID)
	to := e.indexOf(targetID)
	if from < 0 || to < 0 {
		return IDs(e.items), false, ErrUnknownItem
	}
	if from == to {
		return IDs(e.items), false, nil
	}

	e.items = Move(e.items, from, to)
	return IDs(e.items), true, nil
}

// CancelDrag, devam eden sürüklemeyi sırayı değiştirmeden bitirir.
func (e *Editor[T]) CancelDrag() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.active = false
	e.dragging = 0
}

// DragState, kaydın sürükleme durumunu döner.
func (e *Editor[T]) DragState(id int64) DragState {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.active && e.dragging == id {
		return Dragging
	}
	return Idle
}

// Replace, listeyi backend'in sırasıyla değiştirir (reconcile).
// Sürüklenen kayıt artık yoksa sürükleme iptal edilir.
func (e *Editor[T]) Replace(items []T) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.items = dedupe(items)
	if e.active && e.indexOf(e.dragging) < 0 {
		e.active = false
		e.dragging = 0
	}
}

func (e *Editor[T]) indexOf(id int64) int {
	for i, it := range e.items {
		if it.ItemID() == id {
			return i
		}
	}
	return -1
}

func dedupe[T Item](items []T) []T {
	seen := make(map[int64]struct{}, len(items))
	out := make([]T, 0, len(items))
	for _, it := range items {
		if _, ok := seen[it.ItemID()]; ok {
			continue
		}
		seen[it.ItemID()] = struct{}{}
		out = append(out, it)
	}
	return out
}
