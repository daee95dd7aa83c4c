package reorder

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/portfolyo/site/pkg"
)

// Persister, sıralı id listesini backend'e yazar ve backend'in kaydettiği sırayı döner.
type Persister[T Item] func(ctx context.Context, ids []int64) ([]T, error)

// Loader, backend'deki güncel listeyi okur. Conflict durumunda kullanılır.
type Loader[T Item] func(ctx context.Context) ([]T, error)

// Reconciler, backend'in sırasını ekrandaki listeye uygular. version, sırayı
// üreten intent'in versiyonudur; bu arada yeni bir yerel taşıma olduysa
// Reconciler false dönüp uygulamayı reddedebilir.
type Reconciler[T Item] func(version uint64, items []T) bool

// Intent, backend'e yazılmayı bekleyen bir sıralama.
type Intent struct {
	ID      string
	Version uint64
	IDs     []int64
}

// SyncerConfig, Syncer bağımlılıkları.
type SyncerConfig[T Item] struct {
	Persist   Persister[T]
	Load      Loader[T] // nil olabilir; o zaman pkg.ErrConflict Failed olarak kalır
	Reconcile Reconciler[T]
	Log       *zap.Logger
	// Timeout, tek bir persist çağrısının üst sınırı. 0 → 15sn.
	Timeout time.Duration
}

// Syncer, reorder intent'lerini bir kuyruğa alır ve tek worker goroutine ile
// backend'e sırayla yazar.
//
// Tek worker olduğu için iki persist çağrısı asla eşzamanlı çalışmaz ve
// sırasız tamamlanamaz. Gönderilmeden önce yenisi gelen intent atlanır:
// backend'e her zaman en son sıra yazılır.
//
// Hata durumunda otomatik tekrar deneme yoktur; Retry() çağrılmalıdır.
type Syncer[T Item] struct {
	cfg SyncerConfig[T]

	// notifyMu, durum değişikliği + observer çağrısını atomik yapar;
	// observer'lar durumları değiştikleri sırayla görür.
	notifyMu sync.Mutex

	mu        sync.Mutex
	queue     []Intent
	version   uint64
	state     SyncState
	lastIDs   []int64
	observers []func(SyncState)
	closed    bool

	wake   chan struct{}
	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

// NewSyncer, Syncer oluşturur ve worker goroutine'ini başlatır.
// Kullanım bitince Close() çağrılmalıdır.
func NewSyncer[T Item](cfg SyncerConfig[T]) *Syncer[T] {
	if cfg.Log == nil {
		cfg.Log = zap.NewNop()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Syncer[T]{
		cfg:    cfg,
		state:  SyncState{Status: Synced},
		wake:   make(chan struct{}, 1),
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}

	go s.run()
	return s
}

// Enqueue, yeni sırayı kuyruğa alır ve durumu Pending yapar.
// Sıra zaten ekrana uygulanmıştır; burada sadece backend'e yazma planlanır.
func (s *Syncer[T]) Enqueue(ids []int64) (Intent, error) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return Intent{}, ErrClosed
	}

	s.version++
	intent := Intent{
		ID:      uuid.NewString(),
		Version: s.version,
		IDs:     append([]int64(nil), ids...),
	}
	s.queue = append(s.queue, intent)
	s.lastIDs = intent.IDs
	s.state = SyncState{Status: Pending, Version: intent.Version, IntentID: intent.ID}
	st, observers := s.state, s.observersLocked()
	s.mu.Unlock()

	notify(observers, st)

	select {
	case s.wake <- struct{}{}:
	default:
	}
	return intent, nil
}

// Retry, son gösterilen sırayı tekrar kuyruğa alır (retry-on-demand).
// Henüz hiç intent yoksa false döner.
func (s *Syncer[T]) Retry() (Intent, bool, error) {
	s.mu.Lock()
	ids := append([]int64(nil), s.lastIDs...)
	has := s.lastIDs != nil
	s.mu.Unlock()

	if !has {
		return Intent{}, false, nil
	}
	intent, err := s.Enqueue(ids)
	return intent, err == nil, err
}

// Version, son intent'in versiyonu (hiç intent yoksa 0).
func (s *Syncer[T]) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

// State, güncel SyncState.
func (s *Syncer[T]) State() SyncState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// OnChange, her durum değişikliğinde çağrılacak fonksiyonu kaydeder.
// Callback'ler durumu değiştiren goroutine'de çağrılır ve Syncer'ın
// Enqueue/Retry metodlarını çağırmamalıdır.
func (s *Syncer[T]) OnChange(fn func(SyncState)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, fn)
}

// Close, worker'ı durdurur ve bitmesini bekler. Devam eden persist iptal edilir.
func (s *Syncer[T]) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		<-s.done
		return
	}
	s.closed = true
	s.mu.Unlock()

	s.cancel()
	<-s.done
}

func (s *Syncer[T]) run() {
	defer close(s.done)

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-s.wake:
		}

		for {
			intent, ok := s.next()
			if !ok {
				break
			}
			s.send(intent)
			if s.ctx.Err() != nil {
				return
			}
		}
	}
}

// next, kuyruktaki en yeni intent'i alır; öncekiler atlanır (superseded).
func (s *Syncer[T]) next() (Intent, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.queue) == 0 {
		return Intent{}, false
	}
	if skipped := len(s.queue) - 1; skipped > 0 {
		s.cfg.Log.Debug("reorder intents superseded", zap.Int("skipped", skipped))
	}
	intent := s.queue[len(s.queue)-1]
	s.queue = nil
	return intent, true
}

func (s *Syncer[T]) send(intent Intent) {
	ctx, cancel := context.WithTimeout(s.ctx, s.cfg.Timeout)
	defer cancel()

	saved, err := s.cfg.Persist(ctx, intent.IDs)
	if s.ctx.Err() != nil {
		return
	}

	switch {
	case errors.Is(err, pkg.ErrConflict) && s.cfg.Load != nil:
		current, loadErr := s.cfg.Load(ctx)
		if loadErr != nil {
			s.fail(intent, loadErr)
			return
		}
		s.reconcile(intent, current, "conflict")
	case err != nil:
		s.fail(intent, err)
	case saved != nil && !equalIDs(IDs(saved), intent.IDs):
		s.reconcile(intent, saved, "order mismatch")
	default:
		s.finish(intent, SyncState{Status: Synced, Version: intent.Version, IntentID: intent.ID})
	}
}

func (s *Syncer[T]) fail(intent Intent, err error) {
	s.cfg.Log.Error("reorder persist failed",
		zap.String("intent_id", intent.ID),
		zap.Uint64("version", intent.Version),
		zap.Int64s("ids", intent.IDs),
		zap.Error(err),
	)
	s.finish(intent, SyncState{
		Status:   Failed,
		Reason:   failureReason(err),
		Version:  intent.Version,
		IntentID: intent.ID,
		Err:      err,
	})
}

// failureReason, hatayı tarayıcıya giden sabit bir koda indirger.
// Backend'in ham hata metni sadece log'a yazılır.
func failureReason(err error) string {
	switch {
	case errors.Is(err, pkg.ErrUnauthorized):
		return ReasonUnauthorized
	case errors.Is(err, pkg.ErrForbidden):
		return ReasonForbidden
	case errors.Is(err, context.DeadlineExceeded):
		return ReasonTimeout
	default:
		return ReasonBackend
	}
}

// reconcile, backend'in sırasını benimser. Reconciler uygulamayı reddederse
// (arada yeni bir yerel taşıma olduysa) sonuç yayınlanmaz; yeni intent zaten
// backend'in üzerine yazacak.
func (s *Syncer[T]) reconcile(intent Intent, items []T, reason string) {
	if s.Version() != intent.Version {
		return
	}

	applied := true
	if s.cfg.Reconcile != nil {
		applied = s.cfg.Reconcile(intent.Version, items)
	}
	if !applied {
		return
	}

	s.cfg.Log.Warn("reorder reconciled with backend order",
		zap.String("intent_id", intent.ID),
		zap.String("reason", reason),
		zap.Int64s("sent", intent.IDs),
		zap.Int64s("backend", IDs(items)),
	)

	s.mu.Lock()
	if s.version == intent.Version {
		s.lastIDs = IDs(items)
	}
	s.mu.Unlock()

	s.finish(intent, SyncState{Status: Synced, Version: intent.Version, IntentID: intent.ID})
}

// finish, intent sonucunu sadece daha yeni bir intent yoksa yayınlar.
func (s *Syncer[T]) finish(intent Intent, st SyncState) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	if s.version != intent.Version {
		s.mu.Unlock()
		return
	}
	s.state = st
	observers := s.observersLocked()
	s.mu.Unlock()

	notify(observers, st)
}

func (s *Syncer[T]) observersLocked() []func(SyncState) {
	return slices.Clone(s.observers)
}

func notify(observers []func(SyncState), st SyncState) {
	for _, fn := range observers {
		fn(st)
	}
}
