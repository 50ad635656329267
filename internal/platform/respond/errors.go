package respond

import (
	"fmt"
	"net/http"
)

// ProblemDetails is an RFC 9457 Problem Details body. UpstreamStatus is an
// extension member set when the submission endpoint answered with an error.
type ProblemDetails struct {
	Type           string        `json:"type"                     cbor:"type"                     example:"about:blank"`
	Title          string        `json:"title"                    cbor:"title"                    example:"Unprocessable Entity"`
	Status         int           `json:"status"                   cbor:"status"                   example:"422"`
	Detail         string        `json:"detail,omitempty"         cbor:"detail,omitempty"         example:"validation failed"`
	Instance       string        `json:"instance,omitempty"       cbor:"instance,omitempty"       example:"/v1/onboarding"`
	UpstreamStatus int           `json:"upstreamStatus,omitempty" cbor:"upstreamStatus,omitempty" example:"500"`
	Errors         []ErrorDetail `json:"errors,omitempty"         cbor:"errors,omitempty"`
}

// ErrorDetail is one field-level error. Location is the wire name of the field.
type ErrorDetail struct {
	Message  string `json:"message"            cbor:"message"            example:"Email is required"`
	Location string `json:"location,omitempty" cbor:"location,omitempty" example:"email"`
	Value    string `json:"value,omitempty"    cbor:"value,omitempty"    example:""`
}

func (p *ProblemDetails) Error() string {
	if p.Detail == "" {
		return fmt.Sprintf("%d %s", p.Status, p.Title)
	}
	return fmt.Sprintf("%d %s: %s", p.Status, p.Title, p.Detail)
}

// StatusCode lets Echo read the status of a returned problem.
func (p *ProblemDetails) StatusCode() int { return p.Status }

// NewError creates a problem with the canonical title for status.
func NewError(status int, detail string) *ProblemDetails {
	return &ProblemDetails{
		Type:   "about:blank",
		Title:  http.StatusText(status),
		Status: status,
		Detail: detail,
	}
}

func Error400(detail string) *ProblemDetails { return NewError(http.StatusBadRequest, detail) }

func Error404(detail string) *ProblemDetails { return NewError(http.StatusNotFound, detail) }

func Error415(detail string) *ProblemDetails {
	return NewError(http.StatusUnsupportedMediaType, detail)
}

// Error422 returns a validation problem carrying field errors in order.
func Error422(detail string, fields ...ErrorDetail) *ProblemDetails {
	p := NewError(http.StatusUnprocessableEntity, detail)
	p.Errors = fields
	return p
}

func Error500(detail string) *ProblemDetails {
	return NewError(http.StatusInternalServerError, detail)
}

// Error502 reports a non-2xx answer from an upstream service.
func Error502(detail string, upstreamStatus int) *ProblemDetails {
	p := NewError(http.StatusBadGateway, detail)
	p.UpstreamStatus = upstreamStatus
	return p
}

// Error503 reports that an upstream service could not be reached.
func Error503(detail string) *ProblemDetails {
	return NewError(http.StatusServiceUnavailable, detail)
}
