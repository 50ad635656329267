package respond

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/labstack/echo/v5"

	"github.com/janisto/echo-onboarding/internal/platform/validate"
)

// FromValidation converts field errors into a 422 problem, keeping their order.
func FromValidation(ve *validate.ValidationError) *ProblemDetails {
	fields := make([]ErrorDetail, len(ve.Fields))
	for i, f := range ve.Fields {
		fields[i] = ErrorDetail{Message: f.Message, Location: f.Field, Value: f.Value}
	}
	return Error422(ve.Message, fields...)
}

func committed(c *echo.Context) bool {
	resp, err := echo.UnwrapResponse(c.Response())
	return err == nil && resp.Committed
}

// Recoverer returns Echo middleware that turns panics into a 500 problem.
// http.ErrAbortHandler is re-panicked so net/http can abort the connection.
func Recoverer() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c *echo.Context) error {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(rec)
				}
				slog.ErrorContext(c.Request().Context(), "panic recovered",
					slog.Any("error", rec),
					slog.String("stack", string(debug.Stack())),
				)
				if !committed(c) {
					writeProblem(c.Response(), c.Request(), *Error500("internal server error"))
				}
			}()
			return next(c)
		}
	}
}

// NewHTTPErrorHandler returns the Echo error handler. Every error leaves as
// Problem Details; anything unrecognized is reported as a 500.
func NewHTTPErrorHandler() echo.HTTPErrorHandler {
	return func(c *echo.Context, err error) {
		if committed(c) {
			return
		}

		var (
			pd *ProblemDetails
			ve *validate.ValidationError
			he *echo.HTTPError
		)
		problem := Error500("internal server error")
		switch {
		case errors.As(err, &pd):
			problem = pd
		case errors.As(err, &ve):
			problem = FromValidation(ve)
		case errors.Is(err, echo.ErrNotFound):
			problem = Error404("resource not found")
		case errors.Is(err, echo.ErrMethodNotAllowed):
			problem = NewError(http.StatusMethodNotAllowed,
				fmt.Sprintf("method %s not allowed", c.Request().Method))
		case errors.As(err, &he):
			problem = NewError(he.Code, he.Message)
		}
		writeProblem(c.Response(), c.Request(), *problem)
	}
}
