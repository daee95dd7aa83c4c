// Package config, uygulamanın tüm konfigürasyonunu merkezi olarak yönetir.
// Environment variable'lardan okur, .env dosyasını da destekler.
//
// Her yerde ayrı ayrı os.Getenv() çağırmak yerine tek bir Config nesnesi taşırız.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// devSessionSecret, development için varsayılan secret.
// Production'da bu değer ile başlatmak yasaktır (bkz. Load).
const devSessionSecret = "dev-session-secret-change-in-production"

// Config, uygulamanın tüm konfigürasyon değerlerini taşır.
type Config struct {
	Environment string
	Server      ServerConfig
	API         APIConfig
	Database    DatabaseConfig
	Session     SessionConfig
	Upload      UploadConfig
	CORS        CORSConfig
	Email       EmailConfig
	Log         LogConfig
}

// ServerConfig, HTTP server ayarları.
type ServerConfig struct {
	Host string
	Port int
}

// APIConfig, harici REST backend ayarları.
type APIConfig struct {
	BaseURL    string        // ör: http://localhost:8000/api/v1
	BackendURL string        // göreli image_url'leri mutlak yapmak için (ör: http://localhost:8000)
	Timeout    time.Duration // tek bir backend çağrısının üst sınırı
}

// DatabaseConfig, yerel SQLite (sadece oturumlar) ayarları.
type DatabaseConfig struct {
	Path string
}

// SessionConfig, admin oturum ayarları.
type SessionConfig struct {
	Secret     string        // cookie'deki oturumla eşleşen bearer token'ı şifrelemek için (GİZLİ)
	TTL        time.Duration // token'da exp claim'i yoksa kullanılan süre
	CookieName string
	Secure     bool
}

// UploadConfig, dosya yükleme ayarları.
type UploadConfig struct {
	MaxSize int64 // byte
}

// CORSConfig, /admin/api/ için izin verilen origin'ler.
type CORSConfig struct {
	AllowedOrigins []string
}

// EmailConfig, iletişim formu bildirimleri (Resend). APIKey boşsa bildirim kapalıdır.
type EmailConfig struct {
	ResendAPIKey string
	From         string
	NotifyTo     string
}

// LogConfig, logger ayarları.
type LogConfig struct {
	Debug bool
}

// Load, environment variable'lardan Config oluşturur.
// .env dosyası varsa önce onu yükler; dosya yoksa sessizce devam eder.
func Load() (*Config, error) {
	_ = godotenv.Load()

	port, err := strconv.Atoi(getEnv("SERVER_PORT", "3000"))
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}

	apiTimeout, err := strconv.Atoi(getEnv("API_TIMEOUT_SECONDS", "15"))
	if err != nil {
		return nil, fmt.Errorf("invalid API_TIMEOUT_SECONDS: %w", err)
	}

	// Backend'in ACCESS_TOKEN_EXPIRE_MINUTES varsayılanı ile aynı: 120 dk
	sessionTTL, err := strconv.Atoi(getEnv("SESSION_TTL_MINUTES", "120"))
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_TTL_MINUTES: %w", err)
	}

	maxSize, err := strconv.ParseInt(getEnv("UPLOAD_MAX_SIZE", "10485760"), 10, 64) // 10MB
	if err != nil {
		return nil, fmt.Errorf("invalid UPLOAD_MAX_SIZE: %w", err)
	}

	secureCookie, err := strconv.ParseBool(getEnv("SESSION_COOKIE_SECURE", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_COOKIE_SECURE: %w", err)
	}

	debug, err := strconv.ParseBool(getEnv("LOG_DEBUG", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_DEBUG: %w", err)
	}

	cfg := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: port,
		},
		API: APIConfig{
			BaseURL:    strings.TrimRight(getEnv("API_URL", "http://localhost:8000/api/v1"), "/"),
			BackendURL: strings.TrimRight(getEnv("BACKEND_URL", "http://localhost:8000"), "/"),
			Timeout:    time.Duration(apiTimeout) * time.Second,
		},
		Database: DatabaseConfig{
			Path: getEnv("DATABASE_PATH", "./data/portfolyo.db"),
		},
		Session: SessionConfig{
			Secret:     getEnv("SESSION_SECRET", devSessionSecret),
			TTL:        time.Duration(sessionTTL) * time.Minute,
			CookieName: getEnv("SESSION_COOKIE_NAME", "portfolyo_session"),
			Secure:     secureCookie,
		},
		Upload: UploadConfig{
			MaxSize: maxSize,
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:3000,http://127.0.0.1:3000")),
		},
		Email: EmailConfig{
			ResendAPIKey: getEnv("RESEND_API_KEY", ""),
			From:         getEnv("RESEND_FROM", ""),
			NotifyTo:     getEnv("CONTACT_NOTIFY_EMAIL", ""),
		},
		Log: LogConfig{
			Debug: debug,
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// IsProduction, ENVIRONMENT=production ise true döner.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Addr, HTTP server'ın dinleyeceği adresi döner (ör: "0.0.0.0:3000").
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// validate, production güvenlik kontrolleri.
func (c *Config) validate() error {
	if c.Session.TTL <= 0 {
		return fmt.Errorf("SESSION_TTL_MINUTES must be positive")
	}
	if !c.IsProduction() {
		return nil
	}
	if c.Session.Secret == devSessionSecret {
		return fmt.Errorf("SESSION_SECRET must be changed in production")
	}
	if len(c.Session.Secret) < 32 {
		return fmt.Errorf("SESSION_SECRET must be at least 32 characters long in production")
	}
	return nil
}

// getEnv, environment variable'ı okur, yoksa fallback değeri döner.
func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
