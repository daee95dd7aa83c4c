// Package repository, yerel SQLite verisine erişim katmanı.
//
// Her repository bir interface ve onun sqlite_* implementasyonundan oluşur.
// Service katmanı sadece interface'e bağımlıdır.
package repository

import (
	"context"
	"time"

	"github.com/portfolyo/site/models"
)

// SessionRepository, admin oturumları için interface.
type SessionRepository interface {
	Create(ctx context.Context, session *models.Session) error
	GetByID(ctx context.Context, id string) (*models.Session, error)
	UpdateLanguage(ctx context.Context, id, lang string) error
	DeleteByID(ctx context.Context, id string) error
	// DeleteExpired, now anında süresi dolmuş oturumları siler ve silinen sayıyı döner.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
