package onboarding

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v5"

	onboardingsvc "github.com/janisto/echo-onboarding/internal/onboarding"
	applog "github.com/janisto/echo-onboarding/internal/platform/logging"
	"github.com/janisto/echo-onboarding/internal/platform/respond"
	"github.com/janisto/echo-onboarding/internal/platform/timeutil"
	"github.com/janisto/echo-onboarding/internal/submission"
)

// Submitter forwards an accepted record. *submission.Client implements it.
type Submitter interface {
	Submit(ctx context.Context, rec *onboardingsvc.Record) submission.Outcome
}

// Register wires onboarding routes into the provided group.
func Register(g *echo.Group, v *onboardingsvc.Validator, s Submitter) {
	g.GET("/onboarding/form", handleForm(v))
	g.POST("/onboarding/validate", handleValidate(v))
	g.POST("/onboarding", handleSubmit(v, s))
}

// handleForm godoc
//
//	@Summary		Form definition
//	@Description	Returns the onboarding form fields, service options and defaults. The service query parameter pre-selects one service.
//	@Tags			onboarding
//	@Produce		json,application/cbor
//	@Param			service	query		string	false	"Service to pre-select"	Enums(UI/UX, Branding, Web Dev, Mobile App)
//	@Success		200		{object}	onboardingsvc.Form
//	@Router			/onboarding/form [get]
func handleForm(v *onboardingsvc.Validator) echo.HandlerFunc {
	return func(c *echo.Context) error {
		return respond.Negotiate(c, http.StatusOK, onboardingsvc.Definition(v.Today(), c.Request().URL.Query()))
	}
}

// handleValidate godoc
//
//	@Summary		Validate onboarding request
//	@Description	Checks a candidate against the onboarding schema without submitting it
//	@Tags			onboarding
//	@Accept			json
//	@Produce		json,application/cbor
//	@Param			body	body		onboardingsvc.Input	true	"Onboarding candidate"
//	@Success		200		{object}	ValidationResponse
//	@Failure		400		{object}	respond.ProblemDetails
//	@Failure		422		{object}	respond.ProblemDetails
//	@Router			/onboarding/validate [post]
func handleValidate(v *onboardingsvc.Validator) echo.HandlerFunc {
	return func(c *echo.Context) error {
		rec, err := bindAndValidate(c, v)
		if err != nil {
			return err
		}
		return respond.Negotiate(c, http.StatusOK, ValidationResponse{Valid: true, Record: rec})
	}
}

// handleSubmit godoc
//
//	@Summary		Submit onboarding request
//	@Description	Validates the candidate and forwards the record to the configured endpoint
//	@Tags			onboarding
//	@Accept			json
//	@Produce		json,application/cbor
//	@Param			body	body		onboardingsvc.Input	true	"Onboarding candidate"
//	@Success		201		{object}	SubmissionResponse
//	@Failure		400		{object}	respond.ProblemDetails
//	@Failure		422		{object}	respond.ProblemDetails
//	@Failure		502		{object}	respond.ProblemDetails
//	@Failure		503		{object}	respond.ProblemDetails
//	@Router			/onboarding [post]
func handleSubmit(v *onboardingsvc.Validator, s Submitter) echo.HandlerFunc {
	return func(c *echo.Context) error {
		rec, err := bindAndValidate(c, v)
		if err != nil {
			return err
		}

		ctx := c.Request().Context()
		out := s.Submit(ctx, rec)
		audit(ctx, rec, out)

		switch out.Kind {
		case submission.Success:
			applog.LogInfo(ctx, "onboarding submitted",
				slog.Int("services", len(rec.Services)),
				slog.Int("upstream_status", out.StatusCode),
			)
			return respond.Negotiate(c, http.StatusCreated, SubmissionResponse{
				Message:     out.Message,
				Details:     rec.Summary(),
				Record:      rec,
				SubmittedAt: timeutil.Now(),
			})
		case submission.HTTPError:
			return respond.Error502(out.Message, out.StatusCode)
		default:
			applog.LogError(ctx, "onboarding endpoint unreachable", out.Err)
			return respond.Error503(out.Message)
		}
	}
}

func bindAndValidate(c *echo.Context, v *onboardingsvc.Validator) (*onboardingsvc.Record, error) {
	var in onboardingsvc.Input
	if err := c.Bind(&in); err != nil {
		return nil, err
	}
	return v.Validate(in)
}

// audit records the submission. The email is stored only as its SHA-256.
func audit(ctx context.Context, rec *onboardingsvc.Record, out submission.Outcome) {
	details := map[string]any{"services": len(rec.Services)}
	if out.StatusCode != 0 {
		details["upstream_status"] = out.StatusCode
	}
	applog.LogAuditEvent(ctx, applog.AuditEvent{
		Action:       "onboarding.submit",
		ResourceType: "onboarding",
		ResourceID:   hashEmail(rec.Email),
		Result:       out.Kind.String(),
		Details:      details,
	})
}

func hashEmail(email string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(email))))
	return hex.EncodeToString(sum[:])
}
