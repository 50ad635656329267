package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/janisto/echo-onboarding/internal/onboarding"
	"github.com/janisto/echo-onboarding/internal/platform/validate"
	"github.com/janisto/echo-onboarding/internal/submission"
)

var (
	primaryColor = lipgloss.Color("39")
	mutedColor   = lipgloss.Color("241")
	successColor = lipgloss.Color("76")
	errorColor   = lipgloss.Color("196")

	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(primaryColor)
	mutedStyle   = lipgloss.NewStyle().Foreground(mutedColor)
	fieldStyle   = lipgloss.NewStyle().Bold(true).Foreground(errorColor)
	pendingStyle = lipgloss.NewStyle().Italic(true).Foreground(mutedColor)

	successBanner = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(successColor).
			Padding(0, 1)
	errorBanner = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(errorColor).
			Padding(0, 1)
)

// renderStatus returns the banner for a controller snapshot.
func renderStatus(s submission.Status) string {
	switch s.State {
	case submission.Submitting:
		return pendingStyle.Render("Submitting...")
	case submission.Succeeded:
		body := titleStyle.Render(s.Message)
		if s.Record != nil {
			body += "\n" + s.Record.Summary()
		}
		return successBanner.Render(body)
	case submission.Failed:
		return errorBanner.Render(s.Message)
	}
	return ""
}

// renderErrors lists field errors in the order they were reported.
func renderErrors(ve *validate.ValidationError) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Please fix the following:"))
	for _, f := range ve.Fields {
		fmt.Fprintf(&b, "\n  %s %s", fieldStyle.Render(f.Field+":"), f.Message)
	}
	return b.String()
}

// renderRecord prints an accepted record field by field.
func renderRecord(rec *onboarding.Record) string {
	budget := "not provided"
	if rec.BudgetUSD != nil {
		budget = fmt.Sprintf("$%d", *rec.BudgetUSD)
	}
	labels := make([]string, len(rec.Services))
	for i, s := range rec.Services {
		labels[i] = s.Label()
	}
	rows := [][2]string{
		{"Full name", rec.FullName},
		{"Email", rec.Email},
		{"Company", rec.CompanyName},
		{"Services", strings.Join(labels, ", ")},
		{"Budget", budget},
		{"Start date", rec.ProjectStartDate.String()},
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render("Looks good!"))
	for _, r := range rows {
		fmt.Fprintf(&b, "\n  %s %s", mutedStyle.Render(fmt.Sprintf("%-11s", r[0])), r[1])
	}
	return b.String()
}

func renderServices(opts []onboarding.ServiceOption) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Services"))
	for _, o := range opts {
		fmt.Fprintf(&b, "\n  %-11s %-23s %s", o.Value, o.Label, mutedStyle.Render(o.Description))
	}
	return b.String()
}
