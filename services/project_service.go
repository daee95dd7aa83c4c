package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/portfolyo/site/models"
	"github.com/portfolyo/site/pkg"
	"github.com/portfolyo/site/reorder"
	"github.com/portfolyo/site/ws"
)

// EditorView, admin proje listesinin anlık görüntüsü.
// Items gösterilen sıradır; sync durumu ayrıca taşınır.
type EditorView struct {
	Items []models.Project  `json:"items"`
	IDs   []int64           `json:"ids"`
	Sync  reorder.SyncState `json:"sync"`
}

// ProjectService interface'i.
//
// CRUD çağrıları doğrudan backend'e gider. Sıralama ise oturum başına
// bir reorder.List üzerinden yapılır: sürükle-bırak sırayı hemen
// günceller, backend'e yazma kuyrukta arka planda çalışır.
type ProjectService interface {
	List(ctx context.Context) ([]models.Project, error)
	Get(ctx context.Context, id int64) (*models.Project, error)
	Create(ctx context.Context, auth models.AuthContext, in *models.ProjectInput) (*models.Project, error)
	Update(ctx context.Context, auth models.AuthContext, id int64, in *models.ProjectInput) (*models.Project, error)
	Delete(ctx context.Context, auth models.AuthContext, id int64) error

	// OpenEditor, backend'den güncel listeyi yükler ve oturum için yeni
	// bir editor açar. Önceki editor (varsa) kapatılır.
	OpenEditor(ctx context.Context, sessionID string, auth models.AuthContext) (*EditorView, error)
	BeginDrag(sessionID string, id int64) error
	CancelDrag(sessionID string) error
	CompleteDrag(sessionID string, sourceID, targetID int64) (*EditorView, error)
	EditorState(sessionID string) (*EditorView, error)
	RetrySync(sessionID string) (reorder.SyncState, error)
	CloseEditor(sessionID string)
	CloseAll()

	// OnSessionRejected, arka plandaki bir sıralama yazması backend'den
	// 401 aldığında çağrılacak callback ekler. Callback ayrı bir
	// goroutine'de çalışır; editor'ü kapatmak güvenlidir.
	OnSessionRejected(fn func(sessionID string))
}

type projectService struct {
	backend ProjectBackend
	hub     ws.EventPublisher
	timeout time.Duration
	log     *zap.Logger

	mu      sync.Mutex
	editors map[string]*reorder.List[models.Project]

	hookMu   sync.Mutex
	rejected []func(sessionID string)
	pending  sync.WaitGroup
}

// NewProjectService, constructor. timeout tek bir reorder yazmasının üst sınırıdır.
func NewProjectService(backend ProjectBackend, hub ws.EventPublisher, timeout time.Duration, log *zap.Logger) ProjectService {
	return &projectService{
		backend: backend,
		hub:     hub,
		timeout: timeout,
		log:     log.Named("projects"),
		editors: make(map[string]*reorder.List[models.Project]),
	}
}

func (s *projectService) List(ctx context.Context) ([]models.Project, error) {
	return s.backend.ListProjects(ctx)
}

func (s *projectService) Get(ctx context.Context, id int64) (*models.Project, error) {
	return s.backend.GetProject(ctx, id)
}

func (s *projectService) Create(ctx context.Context, auth models.AuthContext, in *models.ProjectInput) (*models.Project, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}
	return s.backend.CreateProject(ctx, auth, *in)
}

func (s *projectService) Update(ctx context.Context, auth models.AuthContext, id int64, in *models.ProjectInput) (*models.Project, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}
	return s.backend.UpdateProject(ctx, auth, id, *in)
}

func (s *projectService) Delete(ctx context.Context, auth models.AuthContext, id int64) error {
	return s.backend.DeleteProject(ctx, auth, id)
}

func (s *projectService) OpenEditor(ctx context.Context, sessionID string, auth models.AuthContext) (*EditorView, error) {
	projects, err := s.backend.ListProjects(ctx)
	if err != nil {
		return nil, err
	}

	list := reorder.NewList(projects, reorder.ListConfig[models.Project]{
		Persist: func(ctx context.Context, ids []int64) ([]models.Project, error) {
			return s.backend.ReorderProjects(ctx, auth, ids)
		},
		Load:    s.backend.ListProjects,
		Log:     s.log.With(zap.String("session", shortSession(sessionID))),
		Timeout: s.timeout,
	})
	list.OnSyncChange(func(st reorder.SyncState) {
		s.hub.BroadcastToSession(sessionID, ws.Event{Op: ws.OpSyncState, Data: st})
		if st.IsFailed() && errors.Is(st.Err, pkg.ErrUnauthorized) {
			s.rejectSession(sessionID)
		}
	})
	list.OnReorder(func(ids []int64) {
		s.hub.BroadcastToSession(sessionID, ws.Event{Op: ws.OpProjectsReorder, Data: ws.ReorderPayload{IDs: ids}})
	})

	s.mu.Lock()
	prev := s.editors[sessionID]
	s.editors[sessionID] = list
	s.mu.Unlock()

	if prev != nil {
		prev.Close()
	}
	return viewOf(list), nil
}

func (s *projectService) editor(sessionID string) (*reorder.List[models.Project], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, ok := s.editors[sessionID]
	if !ok {
		return nil, fmt.Errorf("%w: project editor is not open", pkg.ErrNotFound)
	}
	return list, nil
}

func (s *projectService) BeginDrag(sessionID string, id int64) error {
	list, err := s.editor(sessionID)
	if err != nil {
		return err
	}
	if err := list.BeginDrag(id); err != nil {
		return fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}
	return nil
}

func (s *projectService) CancelDrag(sessionID string) error {
	list, err := s.editor(sessionID)
	if err != nil {
		return err
	}
	list.CancelDrag()
	return nil
}

// CompleteDrag, yeni sırayı hemen döner; backend'e yazma arka planda sürer.
func (s *projectService) CompleteDrag(sessionID string, sourceID, targetID int64) (*EditorView, error) {
	list, err := s.editor(sessionID)
	if err != nil {
		return nil, err
	}
	if _, err := list.CompleteDrag(sourceID, targetID); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}
	return viewOf(list), nil
}

func (s *projectService) EditorState(sessionID string) (*EditorView, error) {
	list, err := s.editor(sessionID)
	if err != nil {
		return nil, err
	}
	return viewOf(list), nil
}

func (s *projectService) RetrySync(sessionID string) (reorder.SyncState, error) {
	list, err := s.editor(sessionID)
	if err != nil {
		return reorder.SyncState{}, err
	}
	if _, _, err := list.Retry(); err != nil {
		return reorder.SyncState{}, err
	}
	return list.SyncState(), nil
}

// CloseEditor, oturumun editor'ünü kapatır. Uçuştaki yazma iptal edilir.
func (s *projectService) CloseEditor(sessionID string) {
	s.mu.Lock()
	list := s.editors[sessionID]
	delete(s.editors, sessionID)
	s.mu.Unlock()

	if list != nil {
		list.Close()
	}
}

// CloseAll, graceful shutdown'da tüm editor'leri kapatır.
func (s *projectService) CloseAll() {
	s.mu.Lock()
	lists := make([]*reorder.List[models.Project], 0, len(s.editors))
	for id, list := range s.editors {
		lists = append(lists, list)
		delete(s.editors, id)
	}
	s.mu.Unlock()

	for _, list := range lists {
		list.Close()
	}
	s.pending.Wait()
}

func (s *projectService) OnSessionRejected(fn func(sessionID string)) {
	s.hookMu.Lock()
	defer s.hookMu.Unlock()
	s.rejected = append(s.rejected, fn)
}

// rejectSession, syncer worker'ının içinden çağrılır. Callback'ler (Logout)
// editor'ü kapatıp worker'ı beklediği için burada çalıştırılamaz.
func (s *projectService) rejectSession(sessionID string) {
	s.hookMu.Lock()
	hooks := slices.Clone(s.rejected)
	s.hookMu.Unlock()
	if len(hooks) == 0 {
		return
	}

	s.log.Warn("backend rejected session token during reorder, ending session",
		zap.String("session", shortSession(sessionID)))

	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		for _, fn := range hooks {
			fn(sessionID)
		}
	}()
}

func viewOf(list *reorder.List[models.Project]) *EditorView {
	items := list.Items()
	return &EditorView{
		Items: items,
		IDs:   reorder.IDs(items),
		Sync:  list.SyncState(),
	}
}

func shortSession(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
