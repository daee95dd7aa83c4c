package reorder

import (
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ListConfig, List bağımlılıkları.
type ListConfig[T Item] struct {
	Persist Persister[T]
	Load    Loader[T]
	Log     *zap.Logger
	Timeout time.Duration
}

// List, bir sayfa ziyaretine ait sıralı listeyi ve senkron kuyruğunu birleştirir.
//
// CompleteDrag yeni sırayı hemen uygular ve backend'e yazmayı kuyruğa alır.
// Yazma başarısız olursa gösterilen sıra geri alınmaz; durum Failed olur.
type List[T Item] struct {
	mu      sync.Mutex // yerel taşıma ile reconcile'ı sıralar
	editor  *Editor[T]
	syncer  *Syncer[T]
	reorder []func(ids []int64)
	obsMu   sync.Mutex
}

// NewList, backend'den yüklenen kayıtlarla bir List oluşturur.
func NewList[T Item](items []T, cfg ListConfig[T]) *List[T] {
	if cfg.Log == nil {
		cfg.Log = zap.NewNop()
	}

	l := &List[T]{editor: NewEditor(items)}
	l.syncer = NewSyncer(SyncerConfig[T]{
		Persist:   cfg.Persist,
		Load:      cfg.Load,
		Reconcile: l.applyBackendOrder,
		Log:       cfg.Log,
		Timeout:   cfg.Timeout,
	})
	return l
}

// Items, gösterilen sıra.
func (l *List[T]) Items() []T { return l.editor.Items() }

// IDs, gösterilen sıradaki id'ler.
func (l *List[T]) IDs() []int64 { return l.editor.IDs() }

// Positions, id → pozisyon.
func (l *List[T]) Positions() map[int64]int { return l.editor.Positions() }

// DragState, kaydın sürükleme durumu.
func (l *List[T]) DragState(id int64) DragState { return l.editor.DragState(id) }

// BeginDrag, kaydı sürüklemeye başlar.
func (l *List[T]) BeginDrag(id int64) error { return l.editor.BeginDrag(id) }

// CancelDrag, sürüklemeyi iptal eder.
func (l *List[T]) CancelDrag() { l.editor.CancelDrag() }

// CompleteDrag, sürüklemeyi bitirir. Sıra değiştiyse yeni sıra kuyruğa alınır.
// Dönen id'ler ekranda gösterilecek sıradır.
func (l *List[T]) CompleteDrag(sourceID, targetID int64) ([]int64, error) {
	l.mu.Lock()
	ids, changed, err := l.editor.CompleteDrag(sourceID, targetID)
	if err != nil || !changed {
		l.mu.Unlock()
		return ids, err
	}
	_, err = l.syncer.Enqueue(ids)
	l.mu.Unlock()

	if err != nil {
		return ids, err
	}
	l.emitReorder(ids)
	return ids, nil
}

// SyncState, backend senkron durumu.
func (l *List[T]) SyncState() SyncState { return l.syncer.State() }

// Retry, başarısız sırayı tekrar kuyruğa alır.
func (l *List[T]) Retry() (Intent, bool, error) { return l.syncer.Retry() }

// OnSyncChange, SyncState değişikliklerini dinler.
func (l *List[T]) OnSyncChange(fn func(SyncState)) { l.syncer.OnChange(fn) }

// OnReorder, gösterilen sıra değiştiğinde (yerel taşıma veya reconcile) çağrılır.
func (l *List[T]) OnReorder(fn func(ids []int64)) {
	l.obsMu.Lock()
	defer l.obsMu.Unlock()
	l.reorder = append(l.reorder, fn)
}

// Close, senkron worker'ını durdurur.
func (l *List[T]) Close() { l.syncer.Close() }

func (l *List[T]) applyBackendOrder(version uint64, items []T) bool {
	l.mu.Lock()
	if l.syncer.Version() != version {
		l.mu.Unlock()
		return false
	}
	l.editor.Replace(items)
	ids := l.editor.IDs()
	l.mu.Unlock()

	l.emitReorder(ids)
	return true
}

func (l *List[T]) emitReorder(ids []int64) {
	l.obsMu.Lock()
	observers := slices.Clone(l.reorder)
	l.obsMu.Unlock()

	for _, fn := range observers {
		fn(ids)
	}
}
