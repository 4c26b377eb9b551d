package observability

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/lawchemical/Draft-Order-App/internal/config"
)

// NewLogger builds a JSON zap logger on stdout tagged with service and env.
// A configured file duplicates the output; level "debug" switches to the
// development config.
func NewLogger(service string, logCfg config.Log) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if logCfg.Level == "debug" {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.OutputPaths = []string{"stdout"}
	cfg.ErrorOutputPaths = []string{"stdout"}

	if logCfg.File != "" {
		if err := ensureLogFile(logCfg.File); err != nil {
			return nil, fmt.Errorf("prepare log file: %w", err)
		}
		cfg.OutputPaths = append(cfg.OutputPaths, logCfg.File)
		cfg.ErrorOutputPaths = append(cfg.ErrorOutputPaths, logCfg.File)
	}

	if lvl, err := zapcore.ParseLevel(logCfg.Level); err == nil {
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.MessageKey = "msg"
	cfg.EncoderConfig.EncodeTime = zapcore.RFC3339NanoTimeEncoder
	cfg.EncoderConfig.EncodeLevel = zapcore.LowercaseLevelEncoder

	cfg.InitialFields = map[string]any{
		"service": service,
		"env":     logCfg.Env,
	}

	return cfg.Build()
}

func ensureLogFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	if _, err := os.Stat(path); err != nil {
		f, createErr := os.OpenFile(path, os.O_CREATE, 0o644)
		if createErr != nil {
			return createErr
		}
		_ = f.Close()
	}
	return nil
}
