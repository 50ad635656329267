package logging

import (
	"context"
	"log/slog"
	"os"
)

type (
	ctxLoggerKey  struct{}
	ctxTraceIDKey struct{}
)

// exit is swapped in tests.
var (
	osExit = os.Exit
	exit   = osExit
)

// LoggerFromContext returns the request-scoped logger, or the process logger
// when ctx carries none.
func LoggerFromContext(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(ctxLoggerKey{}).(*slog.Logger); ok && l != nil {
			return l
		}
	}
	return Logger()
}

// TraceIDFromContext returns the correlation ID of the request: the Cloud
// Trace resource when one was propagated, else the request ID.
func TraceIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(ctxTraceIDKey{}).(string)
	return id
}

func LogInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	LoggerFromContext(ctx).LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func LogWarn(ctx context.Context, msg string, attrs ...slog.Attr) {
	LoggerFromContext(ctx).LogAttrs(ctx, slog.LevelWarn, msg, attrs...)
}

// LogError logs at error severity, adding an error attribute when err is set.
func LogError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	LoggerFromContext(ctx).LogAttrs(ctx, slog.LevelError, msg, withError(attrs, err)...)
}

// LogFatal logs at emergency severity and exits with status 1.
func LogFatal(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	LoggerFromContext(ctx).LogAttrs(ctx, levelEmergency, msg, withError(attrs, err)...)
	exit(1)
}

func withError(attrs []slog.Attr, err error) []slog.Attr {
	if err == nil {
		return attrs
	}
	return append(attrs, slog.Any("error", err))
}

func contextWithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxLoggerKey{}, logger)
}

func contextWithTraceID(ctx context.Context, traceID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if traceID == "" {
		return ctx
	}
	return context.WithValue(ctx, ctxTraceIDKey{}, traceID)
}
