// Package logger provides the process-wide structured logger. It is
// initialized once in main; components fetch it instead of carrying
// their own logging state.
package logger

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	global *zap.Logger
	once   sync.Once
)

// Config controls the process logger.
type Config struct {
	Level       string
	Development bool
}

// Init builds the global logger. Subsequent calls are no-ops.
func Init(cfg Config) error {
	var err error
	once.Do(func() {
		global, err = newLogger(cfg)
	})
	return err
}

func newLogger(cfg Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	zapCfg := zap.NewProductionConfig()
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.Encoding = "console"
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	if cfg.Development {
		zapCfg.Development = true
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger, nil
}

// Get returns the global logger, initializing a default one if main has
// not done so yet (tests rely on this).
func Get() *zap.Logger {
	if global == nil {
		_ = Init(Config{Level: "info"})
		if global == nil {
			global = zap.NewNop()
		}
	}
	return global
}

// Sync flushes buffered log entries. Called on process exit.
func Sync() {
	if global != nil {
		_ = global.Sync()
	}
}
