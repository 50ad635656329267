// Package cli implements the onboard command: a terminal rendition of the
// onboarding form that validates locally and submits to the configured
// endpoint.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/janisto/echo-onboarding/internal/onboarding"
	"github.com/janisto/echo-onboarding/internal/platform/config"
	applog "github.com/janisto/echo-onboarding/internal/platform/logging"
	"github.com/janisto/echo-onboarding/internal/platform/validate"
	"github.com/janisto/echo-onboarding/internal/submission"
)

// ErrRejected is returned when the input fails validation or the endpoint
// does not accept it. The details have already been printed.
var ErrRejected = errors.New("onboarding request not accepted")

// Option configures the command tree.
type Option func(*options)

type options struct {
	now        func() time.Time
	httpClient *http.Client
}

// WithClock sets the clock used to decide which start dates are allowed.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithHTTPClient sets the client used for submissions.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) { o.httpClient = hc }
}

// NewRootCmd returns the onboard command with its subcommands.
func NewRootCmd(opts ...Option) *cobra.Command {
	o := &options{now: time.Now}
	for _, opt := range opts {
		opt(o)
	}

	var verbose bool
	root := &cobra.Command{
		Use:   "onboard",
		Short: "Fill in and submit the project onboarding form",
		Long: `onboard collects the onboarding form fields from flags or a YAML/JSON file,
validates them, and submits the record to the endpoint set by ONBOARD_URL,
the config file, or --endpoint.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelInfo
			}
			applog.Init(cmd.ErrOrStderr(), level)
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log submission details to stderr")

	validator := onboarding.NewValidator(onboarding.WithClock(o.now))
	root.AddCommand(
		newValidateCmd(validator),
		newSubmitCmd(validator, o),
		newServicesCmd(),
		newFormCmd(validator),
	)
	return root
}

// Execute runs the onboard command against os.Args.
func Execute() error {
	return NewRootCmd().Execute()
}

func newValidateCmd(v *onboarding.Validator) *cobra.Command {
	var in inputFlags
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the form fields without submitting",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			input, err := in.collect(cmd)
			if err != nil {
				return err
			}
			rec, err := v.Validate(input)
			if err != nil {
				return reportRejection(cmd, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderRecord(rec))
			return nil
		},
	}
	in.register(cmd)
	return cmd
}

func newSubmitCmd(v *onboarding.Validator, o *options) *cobra.Command {
	var (
		in         inputFlags
		endpoint   string
		configPath string
		clearFile  bool
	)
	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Validate the form fields and submit them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			input, err := in.collect(cmd)
			if err != nil {
				return err
			}

			cfg, err := config.Load(configPath, config.WithEndpoint(endpoint))
			if err != nil {
				return err
			}
			client, err := submission.NewClient(cfg.URL, submission.WithHTTPClient(o.httpClient))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			ctrl := submission.NewController(client,
				submission.WithValidator(v),
				submission.WithObserver(func(s submission.Status) {
					if banner := renderStatus(s); banner != "" {
						fmt.Fprintln(out, banner)
					}
				}),
				submission.WithResetHook(func() {
					if clearFile && in.file != "" {
						if err := os.Remove(in.file); err != nil {
							applog.LogWarn(cmd.Context(), "could not clear input file",
								slog.String("file", in.file), slog.Any("error", err))
						}
					}
				}),
			)
			defer ctrl.Close()

			result, err := ctrl.SubmitInput(cmd.Context(), input)
			if err != nil {
				return reportRejection(cmd, err)
			}
			if result.Kind != submission.Success {
				return ErrRejected
			}
			return nil
		},
	}
	in.register(cmd)
	cmd.Flags().StringVar(&endpoint, "endpoint", "", "submission endpoint, overrides ONBOARD_URL")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "YAML config file")
	cmd.Flags().BoolVar(&clearFile, "clear", false, "delete the --file input after a successful submission")
	return cmd
}

func newServicesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "services",
		Short: "List the services you can select",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), renderServices(onboarding.Catalog()))
		},
	}
}

func newFormCmd(v *onboarding.Validator) *cobra.Command {
	var service string
	cmd := &cobra.Command{
		Use:   "form",
		Short: "Print the form definition as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			query := url.Values{}
			if service != "" {
				query.Set(onboarding.ServiceParam, service)
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			enc.SetEscapeHTML(false)
			return enc.Encode(onboarding.Definition(v.Today(), query))
		},
	}
	cmd.Flags().StringVar(&service, "service", "", "service to pre-select")
	return cmd
}

// reportRejection prints field errors and maps them to ErrRejected. Other
// errors pass through.
func reportRejection(cmd *cobra.Command, err error) error {
	var ve *validate.ValidationError
	if !errors.As(err, &ve) {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderErrors(ve))
	return ErrRejected
}
