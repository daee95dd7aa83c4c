// Package services, business logic katmanını barındırır.
//
// Handler (HTTP) ile harici REST backend ve yerel oturum deposu arasında
// oturur. Service ASLA http.Request/Response bilmez; sadece domain
// modelleri alır/verir. Backend'e erişim aşağıdaki dar interface'ler
// üzerinden olur: *apiclient.Client hepsini karşılar, testler fake geçer.
package services

import (
	"context"

	"github.com/portfolyo/site/apiclient"
	"github.com/portfolyo/site/models"
)

// AuthBackend, login için gereken backend çağrıları.
type AuthBackend interface {
	Login(ctx context.Context, email, password string) (*models.TokenResponse, error)
	Me(ctx context.Context, auth models.AuthContext) (*models.User, error)
}

// ProjectBackend, proje çağrıları.
type ProjectBackend interface {
	ListProjects(ctx context.Context) ([]models.Project, error)
	GetProject(ctx context.Context, id int64) (*models.Project, error)
	CreateProject(ctx context.Context, auth models.AuthContext, in models.ProjectInput) (*models.Project, error)
	UpdateProject(ctx context.Context, auth models.AuthContext, id int64, in models.ProjectInput) (*models.Project, error)
	DeleteProject(ctx context.Context, auth models.AuthContext, id int64) error
	ReorderProjects(ctx context.Context, auth models.AuthContext, ids []int64) ([]models.Project, error)
}

// BlogBackend, blog çağrıları.
type BlogBackend interface {
	ListBlogPosts(ctx context.Context) ([]models.BlogPost, error)
	CreateBlogPost(ctx context.Context, auth models.AuthContext, in models.BlogPostInput) (*models.BlogPost, error)
	UpdateBlogPost(ctx context.Context, auth models.AuthContext, id int64, in models.BlogPostInput) (*models.BlogPost, error)
	DeleteBlogPost(ctx context.Context, auth models.AuthContext, id int64) error
}

// TimelineBackend, zaman çizelgesi çağrıları.
type TimelineBackend interface {
	ListTimeline(ctx context.Context) ([]models.TimelineItem, error)
	CreateTimeline(ctx context.Context, auth models.AuthContext, in models.TimelineInput) (*models.TimelineItem, error)
	UpdateTimeline(ctx context.Context, auth models.AuthContext, id int64, in models.TimelineInput) (*models.TimelineItem, error)
	DeleteTimeline(ctx context.Context, auth models.AuthContext, id int64) error
}

// MessageBackend, iletişim mesajı çağrıları.
type MessageBackend interface {
	SendMessage(ctx context.Context, in models.MessageInput) (*models.Message, error)
	ListMessages(ctx context.Context, auth models.AuthContext) ([]models.Message, error)
	UpdateMessage(ctx context.Context, auth models.AuthContext, id int64, in models.MessageUpdate) (*models.Message, error)
	DeleteMessage(ctx context.Context, auth models.AuthContext, id int64) error
}

// OfferingBackend, "hizmetler" çağrıları.
type OfferingBackend interface {
	ListOfferings(ctx context.Context) ([]models.Offering, error)
	CreateOffering(ctx context.Context, auth models.AuthContext, in models.OfferingInput) (*models.Offering, error)
}

// AboutBackend, profil çağrıları.
type AboutBackend interface {
	GetAbout(ctx context.Context) (*models.About, error)
	SaveAbout(ctx context.Context, auth models.AuthContext, in models.About) (*models.About, error)
}

// SettingsBackend, site ayarı çağrıları.
type SettingsBackend interface {
	GetSettings(ctx context.Context) (*models.Settings, error)
	SaveSettings(ctx context.Context, auth models.AuthContext, in models.Settings) (*models.Settings, error)
}

// UploadBackend, multipart upload çağrıları.
type UploadBackend interface {
	UploadFile(ctx context.Context, auth models.AuthContext, file apiclient.File) (*models.UploadResult, error)
	UploadProjectImage(ctx context.Context, auth models.AuthContext, file apiclient.File) (*models.UploadResult, error)
}

// Backend, tüm çağrıların birleşimi. main.go'da *apiclient.Client geçilir.
type Backend interface {
	AuthBackend
	ProjectBackend
	BlogBackend
	TimelineBackend
	MessageBackend
	OfferingBackend
	AboutBackend
	SettingsBackend
	UploadBackend
}

var _ Backend = (*apiclient.Client)(nil)
