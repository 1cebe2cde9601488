package logger

import (
	"fmt"
	"os"
	"strings"

	"github.com/LavaJover/shvark-escrow-service/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New builds the service logger. LogOutput "stdout" (or empty) writes to
// stdout, anything else is a file path rotated by lumberjack.
func New(cfg config.LogConfig) (*zap.Logger, error) {
	al := zap.NewAtomicLevel()
	if err := al.UnmarshalText([]byte(strings.ToLower(cfg.LogLevel))); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}

	var encoder zapcore.Encoder
	switch strings.ToLower(cfg.LogFormat) {
	case "", "json":
		encoder = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	case "console", "text":
		encoder = zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	default:
		return nil, fmt.Errorf("invalid log format %q", cfg.LogFormat)
	}

	var sink zapcore.WriteSyncer
	switch cfg.LogOutput {
	case "", "stdout":
		sink = zapcore.Lock(os.Stdout)
	case "stderr":
		sink = zapcore.Lock(os.Stderr)
	default:
		sink = zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.LogOutput,
			MaxSize:    100,
			MaxBackups: 5,
			MaxAge:     14,
			Compress:   true,
		})
	}

	return zap.New(zapcore.NewCore(encoder, sink, al), zap.AddCaller()), nil
}

// OrNop returns l, or a no-op logger when l is nil.
func OrNop(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}
