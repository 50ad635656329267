package logging

import (
	"context"
	"log/slog"
)

// AuditEvent describes one auditable action. Actor and ResourceID must not
// carry raw personal data; callers hash identifiers first.
type AuditEvent struct {
	Action       string
	Actor        string
	ResourceType string
	ResourceID   string
	Result       string
	Details      map[string]any
}

// LogAuditEvent writes event at info severity under the audit.* keys.
func LogAuditEvent(ctx context.Context, event AuditEvent) {
	attrs := []slog.Attr{
		slog.String("audit.action", event.Action),
		slog.String("audit.resource_type", event.ResourceType),
		slog.String("audit.resource_id", event.ResourceID),
		slog.String("audit.result", event.Result),
	}
	if event.Actor != "" {
		attrs = append(attrs, slog.String("audit.actor", event.Actor))
	}
	if len(event.Details) > 0 {
		attrs = append(attrs, slog.Any("audit.details", event.Details))
	}
	LoggerFromContext(ctx).LogAttrs(ctx, slog.LevelInfo, "Audit event", attrs...)
}
