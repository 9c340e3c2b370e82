// Package logutil builds the zap logger used by the replay tool.
package logutil

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LogConfig is the [log] section of the tool's configuration.
type LogConfig struct {
	Level      string `toml:"level"`
	Format     string `toml:"format"`
	Filename   string `toml:"file"`
	MaxSize    int    `toml:"max-size-mb"`
	MaxBackups int    `toml:"max-backups"`
}

func DefaultLogConfig() LogConfig {
	return LogConfig{Level: "info", Format: "console", MaxSize: 64, MaxBackups: 3}
}

// Validate reports the first setting New would reject.
func (cfg *LogConfig) Validate() error {
	if _, err := cfg.getLevel(); err != nil {
		return err
	}
	switch strings.ToLower(cfg.Format) {
	case "", "console", "json":
	default:
		return fmt.Errorf("unsupported log format %q", cfg.Format)
	}
	if cfg.MaxSize < 0 || cfg.MaxBackups < 0 {
		return fmt.Errorf("negative log rotation settings: max-size-mb %d, max-backups %d", cfg.MaxSize, cfg.MaxBackups)
	}
	return nil
}

func (cfg *LogConfig) getLevel() (zap.AtomicLevel, error) {
	level := zap.NewAtomicLevel()
	if cfg.Level == "" {
		return level, nil
	}
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		return level, fmt.Errorf("log level %q: %w", cfg.Level, err)
	}
	return level, nil
}

func (cfg *LogConfig) getOptions() []zap.Option {
	return []zap.Option{zap.AddStacktrace(zapcore.FatalLevel), zap.AddCaller()}
}

// getSyncer returns where log entries go, and the file to close afterwards when it isn't stderr.
func (cfg *LogConfig) getSyncer() (zapcore.WriteSyncer, io.Closer) {
	if cfg.Filename == "" {
		return getConsoleSyncer(), nil
	}
	lj := &lumberjack.Logger{
		Filename:   cfg.Filename,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		LocalTime:  true,
	}
	return zapcore.AddSync(lj), lj
}

func (cfg *LogConfig) getEncoder() zapcore.Encoder {
	return getLoggerEncoder(cfg.Format)
}

func getConsoleSyncer() zapcore.WriteSyncer {
	return zapcore.Lock(os.Stderr)
}

func getLoggerEncoder(format string) zapcore.Encoder {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	if strings.ToLower(format) == "json" {
		return zapcore.NewJSONEncoder(encoderConfig)
	}
	return zapcore.NewConsoleEncoder(encoderConfig)
}

// New builds a logger from cfg, writing to stderr or, when a file is configured, to a rotated log file.
// The returned func flushes the logger and closes the log file; call it once the logger is no longer used.
func New(cfg *LogConfig) (*zap.Logger, func() error, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	level, _ := cfg.getLevel()
	syncer, closer := cfg.getSyncer()
	logger := zap.New(zapcore.NewCore(cfg.getEncoder(), syncer, level), cfg.getOptions()...)
	return logger, func() error {
		err := logger.Sync()
		if closer != nil {
			if cerr := closer.Close(); err == nil {
				err = cerr
			}
		}
		return err
	}, nil
}
