package onboarding

import (
	"strings"

	"github.com/janisto/echo-onboarding/internal/platform/timeutil"
)

// Record is an accepted onboarding request, ready to submit.
type Record struct {
	FullName         string        `json:"fullName"            cbor:"fullName"`
	Email            string        `json:"email"               cbor:"email"`
	CompanyName      string        `json:"companyName"         cbor:"companyName"`
	Services         []Service     `json:"services"            cbor:"services"`
	BudgetUSD        *int          `json:"budgetUsd,omitempty" cbor:"budgetUsd,omitempty"`
	ProjectStartDate timeutil.Date `json:"projectStartDate"    cbor:"projectStartDate"`
	AcceptTerms      bool          `json:"acceptTerms"         cbor:"acceptTerms"`
}

// Summary returns the one-line description shown after a successful submit.
func (r *Record) Summary() string {
	services := make([]string, len(r.Services))
	for i, s := range r.Services {
		services[i] = string(s)
	}
	return r.FullName + " from " + r.CompanyName + " • Services: " + strings.Join(services, ", ")
}
