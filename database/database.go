// Package database, yerel SQLite bağlantısını ve migration'ları yönetir.
//
// Portfolyo verisinin tamamı harici backend'dedir; burada sadece admin
// oturumları (şifreli bearer token'lar) tutulur.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite" // Pure-Go SQLite driver, CGO gerekmez
)

// dsnPragmas: WAL eşzamanlı okumaya izin verir, busy_timeout kilitli
// DB'de hemen SQLITE_BUSY yerine 5sn bekletir.
const dsnPragmas = "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"

// openTimeout, açılış sırasındaki ping + migration süresinin üst sınırı.
const openTimeout = 30 * time.Second

// DB, SQLite bağlantısını saran struct.
// *sql.DB connection pool'dur; goroutine'ler arasında paylaşılabilir.
type DB struct {
	Conn *sql.DB
	log  *zap.Logger
}

// New, dbPath'teki SQLite dosyasını açar (dizin yoksa oluşturur) ve
// migrationsFS içindeki uygulanmamış migration'ları çalıştırır.
func New(dbPath string, migrationsFS fs.FS, log *zap.Logger) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	conn, err := sql.Open("sqlite", dbPath+dsnPragmas)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// Tek yazar: oturum tablosu küçük, eşzamanlı yazma SQLITE_BUSY üretir.
	conn.SetMaxOpenConns(1)

	db := &DB{Conn: conn, log: log.Named("database")}

	ctx, cancel := context.WithTimeout(context.Background(), openTimeout)
	defer cancel()

	if err := db.Ping(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if err := db.migrate(ctx, migrationsFS); err != nil {
		conn.Close()
		return nil, err
	}

	db.log.Info("database ready", zap.String("path", dbPath))
	return db, nil
}

// Ping, bağlantının canlı olduğunu kontrol eder (/healthz).
func (db *DB) Ping(ctx context.Context) error {
	return db.Conn.PingContext(ctx)
}

// Close, bağlantıyı kapatır.
func (db *DB) Close() error {
	return db.Conn.Close()
}

// migrate, *.sql dosyalarını isim sırasıyla (001_, 002_, ...) uygular.
//
// Her dosya, schema_migrations kaydıyla birlikte tek transaction'da
// çalışır: yarım kalan dosya geri alınır ve sonraki açılışta baştan
// denenir.
func (db *DB) migrate(ctx context.Context, migrationsFS fs.FS) error {
	if _, err := db.Conn.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version    TEXT PRIMARY KEY,
			applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`); err != nil {
		return fmt.Errorf("failed to create schema_migrations: %w", err)
	}

	files, err := fs.Glob(migrationsFS, "*.sql")
	if err != nil {
		return fmt.Errorf("failed to list migrations: %w", err)
	}
	sort.Strings(files)

	applied, err := db.appliedVersions(ctx)
	if err != nil {
		return err
	}

	for _, file := range files {
		if applied[file] {
			continue
		}
		script, err := fs.ReadFile(migrationsFS, file)
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", file, err)
		}

		err = WithTx(ctx, db.Conn, func(tx *sql.Tx) error {
			if _, err := tx.ExecContext(ctx, string(script)); err != nil {
				return err
			}
			_, err := tx.ExecContext(ctx, "INSERT INTO schema_migrations (version) VALUES (?)", file)
			return err
		})
		if err != nil {
			return fmt.Errorf("migration %s failed: %w", file, err)
		}
		db.log.Info("migration applied", zap.String("file", file))
	}
	return nil
}

func (db *DB) appliedVersions(ctx context.Context) (map[string]bool, error) {
	rows, err := db.Conn.QueryContext(ctx, "SELECT version FROM schema_migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to read schema_migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[string]bool)
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		applied[v] = true
	}
	return applied, rows.Err()
}
