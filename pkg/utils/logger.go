package utils

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LogFileName is the rotated log file created under the configured log directory.
const LogFileName = "filmorate.log"

// InitLogger builds a logger writing to stdout and to a rotated file under dir.
// Debug switches to the console encoder at debug level; otherwise entries are
// JSON at info level.
func InitLogger(dir string, debug bool) (*zap.Logger, error) {
	if dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}

	encoder, level := newEncoder(debug)
	core := zapcore.NewTee(
		zapcore.NewCore(encoder, rotatingFile(filepath.Join(dir, LogFileName)), level),
		zapcore.NewCore(encoder, zapcore.AddSync(os.Stdout), level),
	)

	return zap.New(core, zap.AddCaller()), nil
}

func newEncoder(debug bool) (zapcore.Encoder, zapcore.Level) {
	cfg := zap.NewProductionEncoderConfig()
	if debug {
		cfg = zap.NewDevelopmentEncoderConfig()
	}
	cfg.TimeKey = "timestamp"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.CallerKey = "caller"
	cfg.EncodeCaller = zapcore.ShortCallerEncoder

	if debug {
		return zapcore.NewConsoleEncoder(cfg), zap.DebugLevel
	}
	return zapcore.NewJSONEncoder(cfg), zap.InfoLevel
}

func rotatingFile(filename string) zapcore.WriteSyncer {
	return zapcore.AddSync(&lumberjack.Logger{
		Filename:   filename,
		MaxSize:    10, // megabytes
		MaxBackups: 7,
		MaxAge:     28, // days
		Compress:   true,
	})
}
