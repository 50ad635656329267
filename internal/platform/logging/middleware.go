package logging

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v5"
)

// RequestLogger returns Echo middleware that stores a request-scoped logger
// in the request context. The logger carries Cloud Trace fields when a
// traceparent header and project ID are present, and the request ID set by
// the RequestID middleware.
func RequestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c *echo.Context) error {
			header := c.Request().Header.Get(traceparentHeader)
			project := projectID()
			reqID, _ := c.Get("request_id").(string)

			traceID := reqID
			if tc, ok := parseTraceparent(header); ok && project != "" {
				traceID = tc.resource(project)
			}

			ctx := c.Request().Context()
			ctx = contextWithTraceID(ctx, traceID)
			ctx = contextWithLogger(ctx, loggerWithTrace(Logger(), header, project, reqID))
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

// accessLevel logs server errors at error severity and client errors at warning.
func accessLevel(status int) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case status >= http.StatusBadRequest:
		return slog.LevelWarn
	}
	return slog.LevelInfo
}

// AccessLogger returns Echo middleware that logs one line per completed request.
func AccessLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c *echo.Context) error {
			start := time.Now()
			err := next(c)

			var status, size int
			if resp, uerr := echo.UnwrapResponse(c.Response()); uerr == nil {
				status, size = resp.Status, int(resp.Size)
			}
			ctx := c.Request().Context()
			LoggerFromContext(ctx).LogAttrs(ctx, accessLevel(status), "request completed",
				slog.String("method", c.Request().Method),
				slog.String("path", c.Request().URL.Path),
				slog.Int("status", status),
				slog.Int("bytes", size),
				slog.Duration("duration", time.Since(start)),
			)
			return err
		}
	}
}
