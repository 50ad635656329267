package onboarding

import (
	"net/url"

	"github.com/janisto/echo-onboarding/internal/platform/timeutil"
)

// FormField describes one input control. Constraint attributes mirror the
// schema so a client can hint at what the server enforces.
type FormField struct {
	Name        string          `json:"name"                  cbor:"name"`
	Label       string          `json:"label"                 cbor:"label"`
	Type        string          `json:"type"                  cbor:"type"`
	Placeholder string          `json:"placeholder,omitempty" cbor:"placeholder,omitempty"`
	Required    bool            `json:"required"              cbor:"required"`
	MinLength   int             `json:"minLength,omitempty"   cbor:"minLength,omitempty"`
	MaxLength   int             `json:"maxLength,omitempty"   cbor:"maxLength,omitempty"`
	Pattern     string          `json:"pattern,omitempty"     cbor:"pattern,omitempty"`
	Min         string          `json:"min,omitempty"         cbor:"min,omitempty"`
	Max         string          `json:"max,omitempty"         cbor:"max,omitempty"`
	Step        string          `json:"step,omitempty"        cbor:"step,omitempty"`
	Options     []ServiceOption `json:"options,omitempty"     cbor:"options,omitempty"`
}

// Defaults are the initial values of the form.
type Defaults struct {
	Services    []Service `json:"services"    cbor:"services"`
	AcceptTerms bool      `json:"acceptTerms" cbor:"acceptTerms"`
}

// Form is the full form definition.
type Form struct {
	Title       string        `json:"title"       cbor:"title"`
	Description string        `json:"description" cbor:"description"`
	MinDate     timeutil.Date `json:"minDate"     cbor:"minDate"`
	Fields      []FormField   `json:"fields"      cbor:"fields"`
	Defaults    Defaults      `json:"defaults"    cbor:"defaults"`
}

// Definition returns the form as of today with defaults taken from query.
func Definition(today timeutil.Date, query url.Values) Form {
	services := PrefillServices(query)
	if services == nil {
		services = []Service{}
	}
	return Form{
		Title:       "Let's Build Something Amazing",
		Description: "Share your project details and we'll help bring your vision to life",
		MinDate:     today,
		Fields: []FormField{
			{
				Name:        FieldFullName,
				Label:       "Full Name",
				Type:        "text",
				Placeholder: "Full Name *",
				Required:    true,
				MinLength:   2,
				MaxLength:   80,
				Pattern:     fullNamePattern.String(),
			},
			{
				Name:        FieldEmail,
				Label:       "Email Address",
				Type:        "email",
				Placeholder: "Email Address *",
				Required:    true,
			},
			{
				Name:        FieldCompanyName,
				Label:       "Company Name",
				Type:        "text",
				Placeholder: "Company Name *",
				Required:    true,
				MinLength:   2,
				MaxLength:   100,
			},
			{
				Name:     FieldServices,
				Label:    "Services You're Interested In",
				Type:     "checkbox",
				Required: true,
				Options:  Catalog(),
			},
			{
				Name:        FieldBudgetUSD,
				Label:       "Budget (USD)",
				Type:        "number",
				Placeholder: "Budget (USD) - Optional",
				Min:         "100",
				Max:         "1000000",
				Step:        "1",
			},
			{
				Name:        FieldProjectStartDate,
				Label:       "Project Start Date",
				Type:        "date",
				Placeholder: "Project Start Date *",
				Required:    true,
				Min:         today.String(),
			},
			{
				Name:     FieldAcceptTerms,
				Label:    "I accept the terms and conditions",
				Type:     "checkbox",
				Required: true,
			},
		},
		Defaults: Defaults{Services: services},
	}
}
