package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/portfolyo/site/database"
	"github.com/portfolyo/site/models"
	"github.com/portfolyo/site/pkg"
	"github.com/portfolyo/site/pkg/cache"
	"github.com/portfolyo/site/pkg/crypto"
	"github.com/portfolyo/site/pkg/i18n"
	"github.com/portfolyo/site/repository"
)

// Principal, çözümlenmiş bir admin oturumu.
// Handler'lar backend çağrılarına Auth'u açıkça geçer.
type Principal struct {
	SessionID string
	Email     string
	Language  string
	Auth      models.AuthContext
}

// AuthService interface'i: admin oturumlarını yönetir.
//
// Token'ı backend üretir; bu servis sadece onu oturum id'sine bağlar.
// Süresi dolan oturum sessizce yenilenmez, kullanıcı tekrar login olur.
type AuthService interface {
	Login(ctx context.Context, req *models.LoginRequest, lang string) (*models.Session, error)
	Authenticate(ctx context.Context, sessionID string) (*Principal, error)
	Logout(ctx context.Context, sessionID string) error
	SetLanguage(ctx context.Context, sessionID, lang string) error
	PurgeExpired(ctx context.Context) (int64, error)
	// RunPurge, ctx iptal edilene kadar her interval'de PurgeExpired çağırır.
	RunPurge(ctx context.Context, interval time.Duration)
	// OnLogout, oturum kapandığında çağrılacak callback ekler
	// (editor kapatma, websocket bağlantılarını düşürme).
	OnLogout(fn func(sessionID string))
}

type authService struct {
	db       *sql.DB
	sessions repository.SessionRepository
	backend  AuthBackend
	sealer   *crypto.Sealer
	ttl      time.Duration
	cache    *cache.TTLCache[string, Principal]
	now      func() time.Time
	log      *zap.Logger

	hookMu sync.RWMutex
	hooks  []func(sessionID string)
}

// NewAuthService, constructor. secret'tan token şifreleme anahtarı türetilir.
// principals, çözümlenmiş oturumların tutulduğu cache'tir.
func NewAuthService(
	db *sql.DB,
	sessions repository.SessionRepository,
	backend AuthBackend,
	principals *cache.TTLCache[string, Principal],
	secret string,
	ttl time.Duration,
	log *zap.Logger,
) (AuthService, error) {
	sealer, err := crypto.NewSealer(secret)
	if err != nil {
		return nil, fmt.Errorf("failed to derive session key: %w", err)
	}
	return &authService{
		db:       db,
		sessions: sessions,
		backend:  backend,
		sealer:   sealer,
		ttl:      ttl,
		cache:    principals,
		now:      time.Now,
		log:      log.Named("auth"),
	}, nil
}

// Login, backend'den token alır ve yeni bir oturum oluşturur.
//
// Süresi dolmuş oturumların silinmesi ve yenisinin yazılması tek
// transaction'da yapılır.
func (s *authService) Login(ctx context.Context, req *models.LoginRequest, lang string) (*models.Session, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	tok, err := s.backend.Login(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	now := s.now()
	auth := models.NewAuthContext(tok.AccessToken, now, s.ttl)
	if !auth.Valid(now) {
		return nil, fmt.Errorf("%w: backend issued an expired token", pkg.ErrUnauthorized)
	}

	// Token'ın sahibi aktif bir kullanıcı olmalı; e-posta backend'deki
	// kayıttan alınır.
	user, err := s.backend.Me(ctx, auth)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, fmt.Errorf("%w: account is disabled", pkg.ErrForbidden)
	}
	email := req.Email
	if user.Email != nil && *user.Email != "" {
		email = *user.Email
	}

	// Token oturum id'sine bağlı şifrelenir.
	id := uuid.NewString()
	encrypted, err := s.sealer.Seal(auth.Token, id)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt token: %w", err)
	}

	session := &models.Session{
		ID:             id,
		Email:          email,
		EncryptedToken: encrypted,
		Language:       i18n.Normalize(lang),
		ExpiresAt:      auth.ExpiresAt,
		CreatedAt:      now,
	}

	err = database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		repo := repository.NewSQLiteSessionRepo(tx)
		if _, err := repo.DeleteExpired(ctx, now); err != nil {
			return err
		}
		return repo.Create(ctx, session)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	s.cache.SetUntil(session.ID, Principal{
		SessionID: session.ID,
		Email:     session.Email,
		Language:  session.Language,
		Auth:      auth,
	}, auth.ExpiresAt)

	s.log.Info("admin logged in", zap.String("email", session.Email))
	return session, nil
}

// Authenticate, oturum id'sini Principal'a çözer.
// Oturum yoksa, süresi dolduysa veya token çözülemezse ErrUnauthorized döner.
func (s *authService) Authenticate(ctx context.Context, sessionID string) (*Principal, error) {
	if sessionID == "" {
		return nil, pkg.ErrUnauthorized
	}
	now := s.now()

	if p, ok := s.cache.Get(sessionID); ok && p.Auth.Valid(now) {
		return &p, nil
	}

	session, err := s.sessions.GetByID(ctx, sessionID)
	if errors.Is(err, pkg.ErrNotFound) {
		return nil, pkg.ErrUnauthorized
	}
	if err != nil {
		return nil, err
	}

	if session.Expired(now) {
		_ = s.sessions.DeleteByID(ctx, sessionID)
		s.cache.Delete(sessionID)
		return nil, fmt.Errorf("%w: session expired", pkg.ErrUnauthorized)
	}

	token, err := s.sealer.Open(session.EncryptedToken, session.ID)
	if err != nil {
		// SESSION_SECRET değiştiyse eski oturumlar çözülemez.
		s.log.Warn("failed to decrypt session token", zap.Error(err))
		_ = s.sessions.DeleteByID(ctx, sessionID)
		return nil, pkg.ErrUnauthorized
	}

	auth := models.NewAuthContext(token, session.CreatedAt, s.ttl)
	auth.ExpiresAt = session.ExpiresAt

	p := Principal{
		SessionID: session.ID,
		Email:     session.Email,
		Language:  session.Language,
		Auth:      auth,
	}
	s.cache.SetUntil(sessionID, p, session.ExpiresAt)
	return &p, nil
}

// Logout, oturumu siler ve OnLogout callback'lerini çağırır.
// Olmayan oturum için de callback'ler çalışır.
func (s *authService) Logout(ctx context.Context, sessionID string) error {
	s.cache.Delete(sessionID)
	err := s.sessions.DeleteByID(ctx, sessionID)

	s.hookMu.RLock()
	hooks := slices.Clone(s.hooks)
	s.hookMu.RUnlock()
	for _, fn := range hooks {
		fn(sessionID)
	}

	if err != nil && !errors.Is(err, pkg.ErrNotFound) {
		return err
	}
	return nil
}

func (s *authService) SetLanguage(ctx context.Context, sessionID, lang string) error {
	if err := s.sessions.UpdateLanguage(ctx, sessionID, i18n.Normalize(lang)); err != nil {
		return err
	}
	s.cache.Delete(sessionID)
	return nil
}

func (s *authService) PurgeExpired(ctx context.Context) (int64, error) {
	return s.sessions.DeleteExpired(ctx, s.now())
}

func (s *authService) RunPurge(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := s.PurgeExpired(ctx)
			if err != nil {
				s.log.Warn("failed to purge expired sessions", zap.Error(err))
				continue
			}
			if n > 0 {
				s.log.Info("purged expired sessions", zap.Int64("count", n))
			}
		}
	}
}

func (s *authService) OnLogout(fn func(sessionID string)) {
	s.hookMu.Lock()
	defer s.hookMu.Unlock()
	s.hooks = append(s.hooks, fn)
}
