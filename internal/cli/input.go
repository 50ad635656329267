package cli

import (
	"fmt"
	"net/url"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/janisto/echo-onboarding/internal/onboarding"
)

// inputFlags are the form fields settable from the command line.
type inputFlags struct {
	name        string
	email       string
	company     string
	services    []string
	budget      string
	start       string
	acceptTerms bool
	file        string
	link        string
}

func (f *inputFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.name, "name", "", "full name")
	fl.StringVar(&f.email, "email", "", "email address")
	fl.StringVar(&f.company, "company", "", "company name")
	fl.StringArrayVar(&f.services, "service", nil, `service of interest, repeatable ("UI/UX", "Branding", "Web Dev", "Mobile App")`)
	fl.StringVar(&f.budget, "budget", "", "budget in USD (optional)")
	fl.StringVar(&f.start, "start", "", "project start date (YYYY-MM-DD)")
	fl.BoolVar(&f.acceptTerms, "accept-terms", false, "accept the terms and conditions")
	fl.StringVarP(&f.file, "file", "f", "", "read field values from a YAML or JSON file")
	fl.StringVar(&f.link, "link", "", "form link whose ?service= parameter pre-selects a service")
}

// collect builds the candidate in order: link prefill, file, then any flag
// that was set explicitly.
func (f *inputFlags) collect(cmd *cobra.Command) (onboarding.Input, error) {
	var query url.Values
	if f.link != "" {
		u, err := url.Parse(f.link)
		if err != nil {
			return onboarding.Input{}, fmt.Errorf("parse --link: %w", err)
		}
		query = u.Query()
	}
	in := onboarding.NewInput(query)

	if f.file != "" {
		b, err := os.ReadFile(f.file)
		if err != nil {
			return onboarding.Input{}, fmt.Errorf("read input file: %w", err)
		}
		if err := yaml.Unmarshal(b, &in); err != nil {
			return onboarding.Input{}, fmt.Errorf("decode input file %s: %w", f.file, err)
		}
	}

	fl := cmd.Flags()
	if fl.Changed("name") {
		in.FullName = f.name
	}
	if fl.Changed("email") {
		in.Email = f.email
	}
	if fl.Changed("company") {
		in.CompanyName = f.company
	}
	if fl.Changed("service") {
		in.Services = f.services
	}
	if fl.Changed("budget") {
		in.BudgetUSD = onboarding.ParseBudget(f.budget)
	}
	if fl.Changed("start") {
		in.ProjectStartDate = f.start
	}
	if fl.Changed("accept-terms") {
		in.AcceptTerms = f.acceptTerms
	}
	return in, nil
}
