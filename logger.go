package tokenlist

import (
	"fmt"
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger returns a logger with two sinks: human readable records at
// cfg.Level and above go to console, and error records go to errorLog as
// timestamped JSON tagged with cfg.Service.
func NewLogger(cfg LogConfig, console, errorLog zapcore.WriteSyncer) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	consoleCfg := zap.NewProductionEncoderConfig()
	consoleCfg.EncodeTime = zapcore.RFC3339TimeEncoder
	consoleCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	consoleCore := zapcore.NewCore(zapcore.NewConsoleEncoder(consoleCfg), console, level)

	fileCfg := zap.NewProductionEncoderConfig()
	fileCfg.TimeKey = "timestamp"
	fileCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	fileCore := zapcore.NewCore(zapcore.NewJSONEncoder(fileCfg), errorLog, zapcore.ErrorLevel).
		With([]zapcore.Field{zap.String("service", cfg.Service)})

	return zap.New(zapcore.NewTee(consoleCore, fileCore)), nil
}

// OpenLogger opens cfg.ErrorLog for appending and returns a logger writing
// to it and to console. The returned function flushes and closes the file.
func OpenLogger(cfg LogConfig, console io.Writer) (*zap.Logger, func(), error) {
	errorLog, closeErrorLog, err := zap.Open(cfg.ErrorLog)
	if err != nil {
		return nil, nil, fmt.Errorf("opening error log: %w", err)
	}
	logger, err := NewLogger(cfg, zapcore.Lock(zapcore.AddSync(console)), errorLog)
	if err != nil {
		closeErrorLog()
		return nil, nil, err
	}
	return logger, func() {
		_ = logger.Sync()
		closeErrorLog()
	}, nil
}
