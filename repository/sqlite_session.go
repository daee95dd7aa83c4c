package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/portfolyo/site/database"
	"github.com/portfolyo/site/models"
	"github.com/portfolyo/site/pkg"
)

// sqliteSessionRepo, SessionRepository interface'inin SQLite implementasyonu.
// Zamanlar UTC saklanır; string karşılaştırması kronolojik sırayı korur.
type sqliteSessionRepo struct {
	db database.TxQuerier
}

// NewSQLiteSessionRepo, constructor. db: *sql.DB veya transaction içinde *sql.Tx.
func NewSQLiteSessionRepo(db database.TxQuerier) SessionRepository {
	return &sqliteSessionRepo{db: db}
}

func (r *sqliteSessionRepo) Create(ctx context.Context, session *models.Session) error {
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO sessions (id, email, encrypted_token, language, expires_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		session.ID,
		session.Email,
		session.EncryptedToken,
		session.Language,
		session.ExpiresAt.UTC(),
		session.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

func (r *sqliteSessionRepo) GetByID(ctx context.Context, id string) (*models.Session, error) {
	query := `
		SELECT id, email, encrypted_token, language, expires_at, created_at
		FROM sessions WHERE id = ?`

	session := &models.Session{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&session.ID, &session.Email, &session.EncryptedToken,
		&session.Language, &session.ExpiresAt, &session.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return session, nil
}

func (r *sqliteSessionRepo) UpdateLanguage(ctx context.Context, id, lang string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE sessions SET language = ? WHERE id = ?`, lang, id)
	if err != nil {
		return fmt.Errorf("failed to update session language: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return pkg.ErrNotFound
	}
	return nil
}

func (r *sqliteSessionRepo) DeleteByID(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func (r *sqliteSessionRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at <= ?`, now.UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired sessions: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted sessions: %w", err)
	}
	return n, nil
}
