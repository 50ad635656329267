package onboarding

import (
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"
)

func TestPrefillServices(t *testing.T) {
	tests := []struct {
		query string
		want  []Service
	}{
		{"service=Branding", []Service{ServiceBranding}},
		{"service=Web+Dev", []Service{ServiceWebDev}},
		{"service=UI%2FUX", []Service{ServiceUIUX}},
		{"service=Photography", nil},
		{"service=branding", nil},
		{"", nil},
		{"other=Branding", nil},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			q, err := url.ParseQuery(tt.query)
			if err != nil {
				t.Fatalf("parse query: %v", err)
			}
			if diff := cmp.Diff(tt.want, PrefillServices(q)); diff != "" {
				t.Fatalf("prefill mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNewInput_Defaults(t *testing.T) {
	in := NewInput(url.Values{})
	if in.Services == nil || len(in.Services) != 0 {
		t.Fatalf("expected empty non-nil services, got %#v", in.Services)
	}
	if in.AcceptTerms {
		t.Fatal("expected terms unchecked by default")
	}
	if in.BudgetUSD.Provided() {
		t.Fatal("expected no budget by default")
	}

	in = NewInput(url.Values{ServiceParam: {"Mobile App"}})
	if diff := cmp.Diff([]string{"Mobile App"}, in.Services); diff != "" {
		t.Fatalf("services mismatch (-want +got):\n%s", diff)
	}
}

func TestInput_YAML(t *testing.T) {
	src := `
fullName: John Doe
email: john@example.com
companyName: Acme Corp
services: [UI/UX, Branding]
budgetUsd: 5000
projectStartDate: "2025-12-01"
acceptTerms: true
`
	var in Input
	if err := yaml.Unmarshal([]byte(src), &in); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	rec, err := Validate(in, fixedToday)
	if err != nil {
		t.Fatalf("expected acceptance, got %v", err)
	}
	if rec.BudgetUSD == nil || *rec.BudgetUSD != 5000 {
		t.Fatalf("expected budget 5000, got %v", rec.BudgetUSD)
	}
	if diff := cmp.Diff([]Service{ServiceUIUX, ServiceBranding}, rec.Services); diff != "" {
		t.Fatalf("services mismatch (-want +got):\n%s", diff)
	}
}

func TestInput_YAMLNullBudget(t *testing.T) {
	var in Input
	if err := yaml.Unmarshal([]byte("budgetUsd: null\n"), &in); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if in.BudgetUSD.Provided() {
		t.Fatal("expected null budget to be not provided")
	}
	if err := yaml.Unmarshal([]byte("budgetUsd: [1, 2]\n"), &in); err == nil {
		t.Fatal("expected error for non-scalar budget")
	}
}

func TestParseService(t *testing.T) {
	for _, opt := range Catalog() {
		s, ok := ParseService(string(opt.Value))
		if !ok || s != opt.Value {
			t.Fatalf("expected %q to parse", opt.Value)
		}
		if s.Label() != opt.Label {
			t.Fatalf("expected label %q, got %q", opt.Label, s.Label())
		}
	}
	if _, ok := ParseService("Catering"); ok {
		t.Fatal("expected unknown service to be rejected")
	}
	if got := len(Catalog()); got != 4 {
		t.Fatalf("expected 4 services, got %d", got)
	}
}
