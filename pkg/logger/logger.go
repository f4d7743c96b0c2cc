package logger

import (
	"log"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	base  *zap.Logger
	sugar *zap.SugaredLogger
	once  sync.Once
)

// Init builds the process logger. Development gets a colored console encoder
// with debug output; every other environment gets production JSON at info.
func Init(environment string) {
	var cfg zap.Config
	if environment == "development" {
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	base = l
	sugar = l.Sugar()
}

func ensure() {
	once.Do(func() {
		if base == nil {
			Init(os.Getenv("ENVIRONMENT"))
		}
	})
}

// L exposes the structured logger for call sites that log with fields.
func L() *zap.Logger {
	ensure()
	return base.WithOptions(zap.AddCallerSkip(-1))
}

func Info(format string, v ...interface{}) {
	ensure()
	sugar.Infof(format, v...)
}

func Error(format string, v ...interface{}) {
	ensure()
	sugar.Errorf(format, v...)
}

func Debug(format string, v ...interface{}) {
	ensure()
	sugar.Debugf(format, v...)
}

func Warn(format string, v ...interface{}) {
	ensure()
	sugar.Warnf(format, v...)
}

// With returns a sugared logger carrying key/value pairs, e.g.
// logger.With("hairdresserId", id).Infof("payment verified").
func With(keysAndValues ...interface{}) *zap.SugaredLogger {
	return L().Sugar().With(keysAndValues...)
}

func Sync() {
	if base != nil {
		_ = base.Sync()
	}
}
