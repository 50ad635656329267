package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/janisto/echo-onboarding/internal/platform/timeutil"
)

var (
	loggerMu   sync.RWMutex
	baseLogger *slog.Logger
)

// gcpHandler keeps record timestamps in UTC and preserves the wrapping
// through WithAttrs and WithGroup.
type gcpHandler struct {
	slog.Handler
}

func (h *gcpHandler) Handle(ctx context.Context, r slog.Record) error {
	r.Time = r.Time.UTC()
	return h.Handler.Handle(ctx, r)
}

func (h *gcpHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &gcpHandler{Handler: h.Handler.WithAttrs(attrs)}
}

func (h *gcpHandler) WithGroup(name string) slog.Handler {
	return &gcpHandler{Handler: h.Handler.WithGroup(name)}
}

const (
	levelCritical  = slog.LevelError + 4
	levelAlert     = slog.LevelError + 8
	levelEmergency = slog.LevelError + 12
)

// gcpLevelNames are the Cloud Logging severities.
var gcpLevelNames = map[slog.Level]string{
	slog.LevelDebug: "DEBUG",
	slog.LevelInfo:  "INFO",
	slog.LevelWarn:  "WARNING",
	slog.LevelError: "ERROR",
	levelCritical:   "CRITICAL",
	levelAlert:      "ALERT",
	levelEmergency:  "EMERGENCY",
}

func replaceAttr(_ []string, a slog.Attr) slog.Attr {
	switch a.Key {
	case slog.TimeKey:
		return slog.String("timestamp", a.Value.Time().UTC().Format(timeutil.RFC3339Micros))
	case slog.LevelKey:
		a.Key = "severity"
		if level, ok := a.Value.Any().(slog.Level); ok {
			if name, found := gcpLevelNames[level]; found {
				a.Value = slog.StringValue(name)
			}
		}
	case slog.MessageKey:
		a.Key = "message"
	}
	return a
}

// New returns a logger writing GCP-shaped JSON lines to w at level and above.
func New(w io.Writer, level slog.Leveler) *slog.Logger {
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level, ReplaceAttr: replaceAttr})
	return slog.New(&gcpHandler{Handler: h})
}

// Init replaces the process-wide logger. The server keeps the default of
// stdout at info; the CLI moves logging to stderr.
func Init(w io.Writer, level slog.Leveler) {
	l := New(w, level)
	loggerMu.Lock()
	baseLogger = l
	loggerMu.Unlock()
}

// Logger returns the process-wide logger, creating the stdout default on
// first use.
func Logger() *slog.Logger {
	loggerMu.RLock()
	l := baseLogger
	loggerMu.RUnlock()
	if l != nil {
		return l
	}

	loggerMu.Lock()
	defer loggerMu.Unlock()
	if baseLogger == nil {
		baseLogger = New(os.Stdout, slog.LevelInfo)
	}
	return baseLogger
}
