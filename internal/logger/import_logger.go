package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewImportLogger creates an append-only, timestamped file logger for one
// import run and returns it together with the log file path. The logger
// is handed to the import stages explicitly rather than living in global
// state, so runs stay isolated from each other and from application logs.
// The caller owns the returned closer.
func NewImportLogger(logDir string) (*zap.Logger, string, func(), error) {
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, "", nil, fmt.Errorf("failed to create log directory %s: %w", logDir, err)
	}

	timestamp := time.Now().Format("20060102_150405")
	logFile := filepath.Join(logDir, fmt.Sprintf("data_import_%s.log", timestamp))

	file, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, "", nil, fmt.Errorf("failed to open import log file %s: %w", logFile, err)
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		MessageKey:     "msg",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
	}

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.AddSync(file),
		zapcore.InfoLevel,
	)

	runLogger := zap.New(core)
	closer := func() {
		_ = runLogger.Sync()
		_ = file.Close()
	}
	return runLogger, logFile, closer, nil
}
