package apiclient

import (
	"net"
	"net/http"
	"time"
)

// TransportConfig, backend'e giden HTTP bağlantılarının zaman aşımı ve havuz ayarları.
type TransportConfig struct {
	// Timeout: isteğin tamamı için üst sınır (gövde okuma dahil).
	// Context deadline bundan kısa ise o geçerlidir.
	Timeout time.Duration

	DialTimeout     time.Duration
	KeepAlive       time.Duration
	TLSHandshake    time.Duration
	ResponseHeader  time.Duration
	IdleConnTimeout time.Duration

	MaxIdleConns        int
	MaxIdleConnsPerHost int
}

// DefaultTransportConfig, tek backend'e konuşan bir UI sunucusu için makul değerler.
func DefaultTransportConfig() TransportConfig {
	return TransportConfig{
		Timeout:             15 * time.Second,
		DialTimeout:         5 * time.Second,
		KeepAlive:           30 * time.Second,
		TLSHandshake:        5 * time.Second,
		ResponseHeader:      10 * time.Second,
		IdleConnTimeout:     90 * time.Second,
		MaxIdleConns:        50,
		MaxIdleConnsPerHost: 20,
	}
}

// NewHTTPClient, TransportConfig'ten *http.Client oluşturur.
func NewHTTPClient(cfg TransportConfig) *http.Client {
	dialer := &net.Dialer{
		Timeout:   cfg.DialTimeout,
		KeepAlive: cfg.KeepAlive,
	}

	tr := &http.Transport{
		Proxy:       http.ProxyFromEnvironment,
		DialContext: dialer.DialContext,

		ForceAttemptHTTP2: true,

		MaxIdleConns:        cfg.MaxIdleConns,
		MaxIdleConnsPerHost: cfg.MaxIdleConnsPerHost,
		IdleConnTimeout:     cfg.IdleConnTimeout,

		TLSHandshakeTimeout:   cfg.TLSHandshake,
		ResponseHeaderTimeout: cfg.ResponseHeader,
	}

	return &http.Client{
		Transport: tr,
		Timeout:   cfg.Timeout,
	}
}
