package logger

import (
	"context"
	"os"
	"strings"

	otelzap "github.com/uptrace/opentelemetry-go-extra/otelzap"
	zap "go.uber.org/zap"
	zapcore "go.uber.org/zap/zapcore"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

type ServiceEnv struct {
	Platform string
	Service  string
	Env      string
}

type LogConfig struct {
	Path     string
	LogLevel string
	ServiceEnv
}

var global *otelzap.Logger

// Init builds the process-wide logger: console + rotated file sink,
// wrapped with otelzap so records attach to the active span.
func Init(conf *LogConfig) {
	level := parseLevel(conf.LogLevel)

	encConf := zap.NewProductionEncoderConfig()
	encConf.EncodeTime = zapcore.ISO8601TimeEncoder
	encoder := zapcore.NewJSONEncoder(encConf)

	fileSink := zapcore.AddSync(&lumberjack.Logger{
		Filename:   conf.Path,
		MaxSize:    100, // MB
		MaxBackups: 10,
		MaxAge:     7, // days
		Compress:   true,
	})

	core := zapcore.NewTee(
		zapcore.NewCore(encoder, fileSink, level),
		zapcore.NewCore(encoder, zapcore.AddSync(os.Stdout), level),
	)

	base := zap.New(core, zap.AddCaller(), zap.AddCallerSkip(2)).With(
		zap.String("platform", conf.Platform),
		zap.String("service", conf.Service),
		zap.String("env", conf.Env),
	)

	global = otelzap.New(base, otelzap.WithMinLevel(level))
}

// Close flushes buffered entries.
func Close() {
	if global != nil {
		_ = global.Sync()
	}
}

func parseLevel(s string) zapcore.Level {
	switch strings.ToLower(s) {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func logger() *otelzap.Logger {
	if global == nil {
		// Tests and tooling run without Init.
		Init(&LogConfig{Path: os.DevNull, LogLevel: "info"})
	}
	return global
}

func Debugf(ctx context.Context, format string, args ...any) {
	logger().Ctx(ctx).Sugar().Debugf(format, args...)
}

func Infof(ctx context.Context, format string, args ...any) {
	logger().Ctx(ctx).Sugar().Infof(format, args...)
}

func Warnf(ctx context.Context, format string, args ...any) {
	logger().Ctx(ctx).Sugar().Warnf(format, args...)
}

func Errorf(ctx context.Context, format string, args ...any) {
	logger().Ctx(ctx).Sugar().Errorf(format, args...)
}

func Fatalf(ctx context.Context, format string, args ...any) {
	logger().Ctx(ctx).Sugar().Fatalf(format, args...)
}
