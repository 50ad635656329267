package logging

import (
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"sync"
)

const traceparentHeader = "traceparent"

// W3C Trace Context: {version}-{trace-id}-{parent-id}-{trace-flags}
var traceparentRe = regexp.MustCompile(
	`^([0-9a-fA-F]{2})-([0-9a-fA-F]{32})-([0-9a-fA-F]{16})-([0-9a-fA-F]{2})$`,
)

// traceContext is a parsed traceparent header.
type traceContext struct {
	traceID string
	spanID  string
	sampled bool
}

func parseTraceparent(header string) (traceContext, bool) {
	m := traceparentRe.FindStringSubmatch(header)
	if m == nil {
		return traceContext{}, false
	}
	return traceContext{traceID: m[2], spanID: m[3], sampled: m[4] == "01"}, true
}

func (tc traceContext) resource(projectID string) string {
	return fmt.Sprintf("projects/%s/traces/%s", projectID, tc.traceID)
}

// traceAttrs returns the Cloud Logging trace fields, or nil unless both the
// project and a valid header are known.
func traceAttrs(tc traceContext, ok bool, projectID string) []slog.Attr {
	if !ok || projectID == "" {
		return nil
	}
	return []slog.Attr{
		slog.String("logging.googleapis.com/trace", tc.resource(projectID)),
		slog.String("logging.googleapis.com/spanId", tc.spanID),
		slog.Bool("logging.googleapis.com/trace_sampled", tc.sampled),
	}
}

func loggerWithTrace(base *slog.Logger, header, projectID, requestID string) *slog.Logger {
	tc, ok := parseTraceparent(header)
	attrs := traceAttrs(tc, ok, projectID)
	if requestID != "" {
		attrs = append(attrs, slog.String("requestId", requestID))
	}
	if len(attrs) == 0 {
		return base
	}
	return slog.New(base.Handler().WithAttrs(attrs))
}

var projectID = sync.OnceValue(func() string {
	for _, k := range []string{"GOOGLE_CLOUD_PROJECT", "GCP_PROJECT", "GCLOUD_PROJECT", "PROJECT_ID"} {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
})
