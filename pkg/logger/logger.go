// Package logger, uygulamanın zap tabanlı structured logger'ını kurar.
//
// Global logger YOK; main.go bir kere New çağırır ve *zap.Logger'ı
// service/handler constructor'larına geçer. Her bileşen kendi adıyla
// Named() alt logger'ı kullanır: "[apiclient]", "[reorder]" gibi prefix'ler
// zap'te "logger" alanına dönüşür.
package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config, logger ayarları.
type Config struct {
	Debug       bool
	Development bool // true → konsol formatı (insan okunur), false → JSON
}

// New, config'e göre bir *zap.Logger oluşturur.
func New(cfg Config) (*zap.Logger, error) {
	var zc zap.Config
	if cfg.Development {
		zc = zap.NewDevelopmentConfig()
	} else {
		zc = zap.NewProductionConfig()
		zc.EncoderConfig.TimeKey = "time"
		zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	if cfg.Debug {
		zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	} else {
		zc.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}

	l, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return l, nil
}
