// Package logging builds the structured logger.
//
// The terminal UI owns stdout and stderr, so log output goes to a file under the storage
// directory and only when enabled. Otherwise a no-op logger is returned.
package logging

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/lixenwraith/mimic/config"
)

// EnvLogLevel overrides the configured level; "off" disables logging
const EnvLogLevel = "MIMIC_LOG_LEVEL"

// New creates a logger writing JSON lines to path
// The returned close function flushes and closes the file
func New(cfg config.LogConfig, path string) (*zap.Logger, func() error, error) {
	enabled := cfg.Enabled
	level, ok := parseLevel(cfg.Level)
	if !ok {
		level = zapcore.InfoLevel
	}
	if raw := os.Getenv(EnvLogLevel); raw != "" {
		if isOff(raw) {
			enabled = false
		} else if l, ok := parseLevel(raw); ok {
			level = l
			enabled = true
		}
	}
	if !enabled {
		return zap.NewNop(), func() error { return nil }, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, errors.Wrapf(err, "create log dir for %s", path)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "open log file %s", path)
	}

	logger := zap.New(
		zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig()), zapcore.AddSync(file), level),
		zap.AddCaller(),
	)
	closeFn := func() error {
		_ = logger.Sync()
		return file.Close()
	}
	return logger, closeFn, nil
}

func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
}

func parseLevel(raw string) (zapcore.Level, bool) {
	var l zapcore.Level
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "warning" {
		raw = "warn"
	}
	if err := l.UnmarshalText([]byte(raw)); err != nil || raw == "" {
		return zapcore.InfoLevel, false
	}
	return l, true
}

func isOff(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "off", "none", "disabled", "disable":
		return true
	}
	return false
}
