// Package main, portfolyo sitesinin giriş noktasıdır.
//
// Bu dosyanın görevi Dependency Injection "wire-up":
//  1. Config'i yükle, logger'ı kur
//  2. Database'i başlat (sadece oturumlar)
//  3. i18n çevirilerini ve template'leri yükle
//  4. Backend API client'ını oluştur
//  5. WebSocket Hub'ı başlat
//  6. Service'leri, handler'ları, route'ları kur
//  7. HTTP Server'ı başlat
//  8. Graceful shutdown
//
// Global değişken YOK; her şey burada oluşturulup birbirine bağlanıyor.
package main

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/portfolyo/site/apiclient"
	"github.com/portfolyo/site/config"
	"github.com/portfolyo/site/database"
	"github.com/portfolyo/site/handlers"
	"github.com/portfolyo/site/pkg/i18n"
	"github.com/portfolyo/site/pkg/logger"
	"github.com/portfolyo/site/static"
	"github.com/portfolyo/site/ws"
)

// sessionPurgeInterval, süresi dolmuş oturumların DB'den silinme aralığı.
const sessionPurgeInterval = 15 * time.Minute

func main() {
	// ─── 1. Config + Logger ───
	cfg, err := config.Load()
	if err != nil {
		// Logger henüz yok.
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{Debug: cfg.Log.Debug, Development: !cfg.IsProduction()})
	if err != nil {
		os.Stderr.WriteString("failed to create logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	os.Exit(exitCode(log, run(cfg, log)))
}

// exitCode, run sonucunu loglar ve buffer'ı boşaltır. os.Exit defer'ları
// çalıştırmadığı için Sync burada yapılır.
func exitCode(log *zap.Logger, err error) int {
	if err != nil {
		log.Error("server stopped with error", zap.Error(err))
	}
	_ = log.Sync()
	if err != nil {
		return 1
	}
	return 0
}

func run(cfg *config.Config, log *zap.Logger) error {
	log.Info("portfolyo starting",
		zap.String("env", cfg.Environment),
		zap.Int("port", cfg.Server.Port),
		zap.String("api", cfg.API.BaseURL),
	)

	// ─── 2. Database ───
	migrations, err := fs.Sub(database.EmbeddedMigrations, "migrations")
	if err != nil {
		return err
	}
	db, err := database.New(cfg.Database.Path, migrations, log)
	if err != nil {
		return err
	}
	defer db.Close()

	// ─── 3. i18n + Template'ler ───
	locales, err := fs.Sub(i18n.EmbeddedLocales, "locales")
	if err != nil {
		return err
	}
	if err := i18n.Load(locales); err != nil {
		return err
	}
	render, err := handlers.NewRenderer(static.FS, log)
	if err != nil {
		return err
	}

	// ─── 4. Backend API client ───
	transport := apiclient.DefaultTransportConfig()
	transport.Timeout = cfg.API.Timeout
	backend := apiclient.New(cfg.API.BaseURL, apiclient.NewHTTPClient(transport), log)

	// ─── 5. WebSocket Hub ───
	hub := ws.NewHub(log)
	go hub.Run()

	// ─── 6. Service / Handler / Route ───
	repos := initRepositories(db.Conn)
	svcs, err := initServices(db.Conn, repos, backend, hub, cfg, log)
	if err != nil {
		return err
	}
	defer svcs.Principals.Close()

	registerSessionCallbacks(svcs.Auth, svcs.Project, hub, log)

	limiters := initRateLimiters()
	defer limiters.Stop()

	h := initHandlers(svcs, render, limiters, hub, cfg, log)
	handler := initRoutes(h, static.Assets(), db.Ping, cfg, log)

	purgeCtx, stopPurge := context.WithCancel(context.Background())
	defer stopPurge()
	go svcs.Auth.RunPurge(purgeCtx, sessionPurgeInterval)

	// ─── 7. HTTP Server ───
	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second, // büyük dosya yüklemeleri
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// ─── 8. Graceful Shutdown ───
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	serveErr := make(chan error, 1)
	go func() {
		log.Info("server listening", zap.String("addr", cfg.Server.Addr()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-done:
	case err := <-serveErr:
		if err != nil {
			return err
		}
	}
	log.Info("shutting down...")

	// Önce WebSocket bağlantıları ve sıralama kuyrukları kapanır,
	// sonra HTTP server yeni request kabul etmeyi durdurur.
	hub.Shutdown()
	svcs.Project.CloseAll()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return err
	}

	log.Info("server stopped gracefully")
	return nil
}
