// Package onboarding holds the onboarding record, its validation schema, and
// the form definition served to clients.
package onboarding

import (
	"regexp"
	"time"

	"github.com/janisto/echo-onboarding/internal/platform/timeutil"
	"github.com/janisto/echo-onboarding/internal/platform/validate"
)

// Field names as they appear on the wire.
const (
	FieldFullName         = "fullName"
	FieldEmail            = "email"
	FieldCompanyName      = "companyName"
	FieldServices         = "services"
	FieldBudgetUSD        = "budgetUsd"
	FieldProjectStartDate = "projectStartDate"
	FieldAcceptTerms      = "acceptTerms"
)

const (
	minBudgetUSD = 100
	maxBudgetUSD = 1_000_000
)

var fullNamePattern = regexp.MustCompile(`^[a-zA-Z\s'-]+$`)

// schema returns the fields in declaration order. today is captured by the
// start-date chain.
func schema(today timeutil.Date) []field {
	return []field{
		chain(FieldFullName,
			func(in Input) string { return in.FullName },
			func(r *Record, v string) { r.FullName = v },
			required("Full name is required"),
			minRunes(2, "Full name must be at least 2 characters"),
			maxRunes(80, "Full name must be no more than 80 characters"),
			matches(fullNamePattern, "Full name can only contain letters, spaces, apostrophes, and hyphens"),
		),
		chain(FieldEmail,
			func(in Input) string { return in.Email },
			func(r *Record, v string) { r.Email = v },
			required("Email is required"),
			emailSyntax("Please enter a valid email address"),
		),
		chain(FieldCompanyName,
			func(in Input) string { return in.CompanyName },
			func(r *Record, v string) { r.CompanyName = v },
			required("Company name is required"),
			minRunes(2, "Company name must be at least 2 characters"),
			maxRunes(100, "Company name must be no more than 100 characters"),
		),
		chain(FieldServices,
			func(in Input) []string { return in.Services },
			func(r *Record, v []string) { r.Services = serviceSet(v) },
			knownServices(),
			atLeastOne("Please select at least one service"),
		),
		optional(chain(FieldBudgetUSD,
			func(in Input) Budget { return in.BudgetUSD },
			func(r *Record, v Budget) {
				f, _ := budgetAmount(v.raw)
				n := int(f)
				r.BudgetUSD = &n
			},
			numeric("Budget must be a number"),
			whole("Budget must be a whole number"),
			amountAtLeast(minBudgetUSD, "Budget must be at least $100"),
			amountAtMost(maxBudgetUSD, "Budget must be no more than $1,000,000"),
		), func(in Input) bool { return in.BudgetUSD.Provided() }),
		chain(FieldProjectStartDate,
			func(in Input) string { return in.ProjectStartDate },
			func(r *Record, v string) { r.ProjectStartDate = timeutil.MustParseDate(v) },
			required("Project start date is required"),
			calendarDate("Project start date must be a valid date (YYYY-MM-DD)"),
			notBefore(today, "Project start date must be today or later"),
		),
		chain(FieldAcceptTerms,
			func(in Input) bool { return in.AcceptTerms },
			func(r *Record, v bool) { r.AcceptTerms = v },
			isTrue("You must accept the terms and conditions"),
		),
	}
}

// Validate checks in against the onboarding schema as of today. It returns
// the typed record, or a *validate.ValidationError holding one message per
// failed field in declaration order. The result depends only on in and today.
func Validate(in Input, today timeutil.Date) (*Record, error) {
	var (
		rec    Record
		failed []validate.FieldError
	)
	for _, f := range schema(today) {
		if msg := f.check(in, &rec); msg != "" {
			failed = append(failed, validate.FieldError{
				Field:   f.name,
				Message: msg,
				Value:   f.value(in),
			})
		}
	}
	if len(failed) > 0 {
		return nil, &validate.ValidationError{
			Message: "validation failed",
			Fields:  failed,
		}
	}
	return &rec, nil
}

func serviceSet(values []string) []Service {
	out := make([]Service, 0, len(values))
	seen := make(map[Service]struct{}, len(values))
	for _, v := range values {
		s, _ := ParseService(v)
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// Validator evaluates the schema against the calendar date of its clock.
type Validator struct {
	now func() time.Time
}

// ValidatorOption configures a Validator.
type ValidatorOption func(*Validator)

// WithClock replaces the wall clock used to compute today.
func WithClock(now func() time.Time) ValidatorOption {
	return func(v *Validator) { v.now = now }
}

// NewValidator returns a Validator using time.Now unless overridden.
func NewValidator(opts ...ValidatorOption) *Validator {
	v := &Validator{now: time.Now}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Today returns the date the start-date rule compares against.
func (v *Validator) Today() timeutil.Date {
	return timeutil.Today(v.now())
}

// Validate runs Validate with today taken from the clock at call time, so
// the same start date can pass on one day and fail on the next.
func (v *Validator) Validate(in Input) (*Record, error) {
	return Validate(in, v.Today())
}
