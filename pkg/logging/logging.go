// Package logging builds the zap logger shared by commands and the UI.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options configures where log lines go and how verbose they are.
type Options struct {
	Level string `mapstructure:"level" json:"level"`
	// File receives log output. The TUI owns the terminal, so logs never go
	// to stdout. Empty means stderr.
	File string `mapstructure:"file" json:"file"`
}

// New builds a console-encoded logger. The returned close func flushes and
// releases the log file.
func New(o Options) (*zap.Logger, func() error, error) {
	level := zapcore.InfoLevel
	if o.Level != "" {
		parsed, err := zapcore.ParseLevel(o.Level)
		if err != nil {
			return nil, nil, fmt.Errorf("logging: %w", err)
		}
		level = parsed
	}

	var (
		sink   zapcore.WriteSyncer
		closer io.Closer
	)
	if o.File == "" {
		sink = zapcore.Lock(os.Stderr)
	} else {
		if err := os.MkdirAll(filepath.Dir(o.File), 0o755); err != nil {
			return nil, nil, fmt.Errorf("logging: ensure log dir: %w", err)
		}
		f, err := os.OpenFile(o.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("logging: open log file: %w", err)
		}
		sink = zapcore.AddSync(f)
		closer = f
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05.000")
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), sink, zap.NewAtomicLevelAt(level))

	logger := zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
	closeFn := func() error {
		_ = logger.Sync()
		if closer != nil {
			return closer.Close()
		}
		return nil
	}
	return logger, closeFn, nil
}
