package logger

import (
	"context"

	"go.uber.org/zap"
)

type ctxKey struct{}

var global = zap.Must(zap.NewProduction()).Sugar()

// Init replaces the default production logger. debug switches to the
// development config.
func Init(debug bool) {
	if debug {
		global = zap.Must(zap.NewDevelopment()).Sugar()
		return
	}
	global = zap.Must(zap.NewProduction()).Sugar()
}

// Sync flushes buffered log entries, for deferred use in main.
func Sync() {
	_ = global.Sync()
}

// WithFields returns a context whose log calls carry the given key-value
// pairs, request id being the usual one.
func WithFields(ctx context.Context, kv ...interface{}) context.Context {
	return context.WithValue(ctx, ctxKey{}, append(fromContext(ctx), kv...))
}

func fromContext(ctx context.Context) []interface{} {
	if kv, ok := ctx.Value(ctxKey{}).([]interface{}); ok {
		return kv
	}
	return nil
}

func sugared(ctx context.Context) *zap.SugaredLogger {
	if kv := fromContext(ctx); len(kv) > 0 {
		return global.With(kv...)
	}
	return global
}

func Info(ctx context.Context, args ...interface{}) {
	sugared(ctx).Info(args...)
}

func Infof(ctx context.Context, format string, args ...interface{}) {
	sugared(ctx).Infof(format, args...)
}

func Warnf(ctx context.Context, format string, args ...interface{}) {
	sugared(ctx).Warnf(format, args...)
}

func Error(ctx context.Context, args ...interface{}) {
	sugared(ctx).Error(args...)
}

func Errorf(ctx context.Context, format string, args ...interface{}) {
	sugared(ctx).Errorf(format, args...)
}

func Fatal(ctx context.Context, args ...interface{}) {
	sugared(ctx).Fatal(args...)
}
