package services

import (
	"context"
	"io"
	"sync"

	"github.com/portfolyo/site/apiclient"
	"github.com/portfolyo/site/models"
	"github.com/portfolyo/site/pkg"
	"github.com/portfolyo/site/ws"
)

// fakeBackend, Backend interface'inin bellek içi implementasyonu.
// failing'deki operasyon adları ErrUpstream döner.
type fakeBackend struct {
	mu sync.Mutex

	token     string
	loginErr  error
	user      *models.User
	projects  []models.Project
	posts     []models.BlogPost
	timeline  []models.TimelineItem
	messages  []models.Message
	offerings []models.Offering
	about     *models.About
	settings  *models.Settings
	failing   map[string]bool
	failWith  map[string]error

	reorders [][]int64
	updates  []models.MessageUpdate
	uploaded []apiclient.File
	bodies   []string
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{failing: map[string]bool{}, failWith: map[string]error{}}
}

func (f *fakeBackend) fail(op string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.failWith[op]; ok {
		return err
	}
	if f.failing[op] {
		return pkg.ErrUpstream
	}
	return nil
}

func (f *fakeBackend) Login(ctx context.Context, email, password string) (*models.TokenResponse, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return &models.TokenResponse{AccessToken: f.token, TokenType: "bearer"}, nil
}

func (f *fakeBackend) Me(ctx context.Context, auth models.AuthContext) (*models.User, error) {
	if err := f.fail("me"); err != nil {
		return nil, err
	}
	if f.user != nil {
		return f.user, nil
	}
	email := "admin@example.com"
	return &models.User{ID: 1, Email: &email, IsActive: true, IsSuperuser: true}, nil
}

func (f *fakeBackend) ListProjects(ctx context.Context) ([]models.Project, error) {
	if err := f.fail("projects"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Project(nil), f.projects...), nil
}

func (f *fakeBackend) GetProject(ctx context.Context, id int64) (*models.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.projects {
		if f.projects[i].ID == id {
			p := f.projects[i]
			return &p, nil
		}
	}
	return nil, pkg.ErrNotFound
}

func (f *fakeBackend) CreateProject(ctx context.Context, auth models.AuthContext, in models.ProjectInput) (*models.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := models.Project{ID: int64(len(f.projects) + 1), Title: in.Title, Description: in.Description}
	f.projects = append(f.projects, p)
	return &p, nil
}

func (f *fakeBackend) UpdateProject(ctx context.Context, auth models.AuthContext, id int64, in models.ProjectInput) (*models.Project, error) {
	return &models.Project{ID: id, Title: in.Title}, nil
}

func (f *fakeBackend) DeleteProject(ctx context.Context, auth models.AuthContext, id int64) error {
	return nil
}

func (f *fakeBackend) ReorderProjects(ctx context.Context, auth models.AuthContext, ids []int64) ([]models.Project, error) {
	if err := f.fail("reorder"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reorders = append(f.reorders, append([]int64(nil), ids...))

	byID := make(map[int64]models.Project, len(f.projects))
	for _, p := range f.projects {
		byID[p.ID] = p
	}
	ordered := make([]models.Project, 0, len(ids))
	for i, id := range ids {
		p := byID[id]
		p.Order = i
		ordered = append(ordered, p)
	}
	f.projects = ordered
	return append([]models.Project(nil), ordered...), nil
}

func (f *fakeBackend) reorderCalls() [][]int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([][]int64(nil), f.reorders...)
}

func (f *fakeBackend) ListBlogPosts(ctx context.Context) ([]models.BlogPost, error) {
	if err := f.fail("blog"); err != nil {
		return nil, err
	}
	return append([]models.BlogPost(nil), f.posts...), nil
}

func (f *fakeBackend) CreateBlogPost(ctx context.Context, auth models.AuthContext, in models.BlogPostInput) (*models.BlogPost, error) {
	return &models.BlogPost{ID: 1, Title: in.Title, Slug: in.Slug}, nil
}

func (f *fakeBackend) UpdateBlogPost(ctx context.Context, auth models.AuthContext, id int64, in models.BlogPostInput) (*models.BlogPost, error) {
	return &models.BlogPost{ID: id, Title: in.Title, Slug: in.Slug}, nil
}

func (f *fakeBackend) DeleteBlogPost(ctx context.Context, auth models.AuthContext, id int64) error {
	return nil
}

func (f *fakeBackend) ListTimeline(ctx context.Context) ([]models.TimelineItem, error) {
	if err := f.fail("timeline"); err != nil {
		return nil, err
	}
	return append([]models.TimelineItem(nil), f.timeline...), nil
}

func (f *fakeBackend) CreateTimeline(ctx context.Context, auth models.AuthContext, in models.TimelineInput) (*models.TimelineItem, error) {
	return &models.TimelineItem{ID: 1, Year: in.Year, Title: in.Title, Icon: in.Icon}, nil
}

func (f *fakeBackend) UpdateTimeline(ctx context.Context, auth models.AuthContext, id int64, in models.TimelineInput) (*models.TimelineItem, error) {
	return &models.TimelineItem{ID: id, Year: in.Year, Title: in.Title, Icon: in.Icon}, nil
}

func (f *fakeBackend) DeleteTimeline(ctx context.Context, auth models.AuthContext, id int64) error {
	return nil
}

func (f *fakeBackend) SendMessage(ctx context.Context, in models.MessageInput) (*models.Message, error) {
	if err := f.fail("send"); err != nil {
		return nil, err
	}
	return &models.Message{ID: 1, SenderName: in.SenderName, SenderEmail: in.SenderEmail, Subject: in.Subject, Content: in.Content}, nil
}

func (f *fakeBackend) ListMessages(ctx context.Context, auth models.AuthContext) ([]models.Message, error) {
	if err := f.fail("messages"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Message(nil), f.messages...), nil
}

func (f *fakeBackend) UpdateMessage(ctx context.Context, auth models.AuthContext, id int64, in models.MessageUpdate) (*models.Message, error) {
	if err := f.fail("update-message"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates = append(f.updates, in)
	for i := range f.messages {
		if f.messages[i].ID == id {
			if in.IsRead != nil {
				f.messages[i].IsRead = *in.IsRead
			}
			m := f.messages[i]
			return &m, nil
		}
	}
	return nil, pkg.ErrNotFound
}

func (f *fakeBackend) DeleteMessage(ctx context.Context, auth models.AuthContext, id int64) error {
	return nil
}

func (f *fakeBackend) ListOfferings(ctx context.Context) ([]models.Offering, error) {
	if err := f.fail("services"); err != nil {
		return nil, err
	}
	return append([]models.Offering(nil), f.offerings...), nil
}

func (f *fakeBackend) CreateOffering(ctx context.Context, auth models.AuthContext, in models.OfferingInput) (*models.Offering, error) {
	return &models.Offering{ID: 1, Title: in.Title, Status: in.Status}, nil
}

func (f *fakeBackend) GetAbout(ctx context.Context) (*models.About, error) {
	if err := f.fail("about"); err != nil {
		return nil, err
	}
	if f.about == nil {
		return nil, pkg.ErrNotFound
	}
	a := *f.about
	return &a, nil
}

func (f *fakeBackend) SaveAbout(ctx context.Context, auth models.AuthContext, in models.About) (*models.About, error) {
	f.about = &in
	return &in, nil
}

func (f *fakeBackend) GetSettings(ctx context.Context) (*models.Settings, error) {
	if err := f.fail("settings"); err != nil {
		return nil, err
	}
	if f.settings == nil {
		return nil, pkg.ErrNotFound
	}
	s := *f.settings
	return &s, nil
}

func (f *fakeBackend) SaveSettings(ctx context.Context, auth models.AuthContext, in models.Settings) (*models.Settings, error) {
	f.settings = &in
	return &in, nil
}

func (f *fakeBackend) UploadFile(ctx context.Context, auth models.AuthContext, file apiclient.File) (*models.UploadResult, error) {
	return f.recordUpload(file, "/uploads/"+file.Name)
}

func (f *fakeBackend) UploadProjectImage(ctx context.Context, auth models.AuthContext, file apiclient.File) (*models.UploadResult, error) {
	return f.recordUpload(file, "/uploads/projects/"+file.Name)
}

func (f *fakeBackend) recordUpload(file apiclient.File, url string) (*models.UploadResult, error) {
	body, err := io.ReadAll(file.Body)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploaded = append(f.uploaded, file)
	f.bodies = append(f.bodies, string(body))
	return &models.UploadResult{URL: url}, nil
}

var _ Backend = (*fakeBackend)(nil)

// fakePublisher, ws.EventPublisher'ı kaydeder.
type fakePublisher struct {
	mu           sync.Mutex
	events       map[string][]ws.Event
	disconnected []string
}

func newFakePublisher() *fakePublisher {
	return &fakePublisher{events: map[string][]ws.Event{}}
}

func (p *fakePublisher) BroadcastToSession(sessionID string, event ws.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events[sessionID] = append(p.events[sessionID], event)
}

func (p *fakePublisher) DisconnectSession(sessionID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.disconnected = append(p.disconnected, sessionID)
}

func (p *fakePublisher) disconnects() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.disconnected...)
}

func (p *fakePublisher) eventsFor(sessionID string) []ws.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]ws.Event(nil), p.events[sessionID]...)
}
