package onboarding

import (
	onboardingsvc "github.com/janisto/echo-onboarding/internal/onboarding"
	"github.com/janisto/echo-onboarding/internal/platform/timeutil"
)

// ValidationResponse is returned when a candidate passes validation.
type ValidationResponse struct {
	Valid  bool               `json:"valid"  cbor:"valid"  example:"true"`
	Record *onboardingsvc.Record `json:"record" cbor:"record"`
}

// SubmissionResponse is returned after the record was accepted upstream.
type SubmissionResponse struct {
	Message     string             `json:"message"     cbor:"message"     example:"Form submitted successfully!"`
	Details     string             `json:"details"     cbor:"details"     example:"John Doe from Acme Corp • Services: UI/UX"`
	Record      *onboardingsvc.Record `json:"record"      cbor:"record"`
	SubmittedAt timeutil.Time      `json:"submittedAt" cbor:"submittedAt" example:"2025-06-01T10:30:00.000Z"`
}
