package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"shireesh.com/cutter/internal/config"
	cerrors "shireesh.com/cutter/internal/errors"
	"shireesh.com/cutter/internal/option"
	"shireesh.com/cutter/internal/output"
)

// Version is set at build time with -ldflags "-X shireesh.com/cutter/cmd.Version=...".
var Version = "dev"

// NewRootCmd builds the cutter command tree.
func NewRootCmd() *cobra.Command {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:   "cutter",
		Short: "Validate and prune projects generated from the service template",
		Long: `cutter runs around the template renderer.

  pre-gen    refuses option combinations the template cannot render
  post-gen   removes the files of the transport that was not selected
             and every directory left empty
  check      reports template markers that survived rendering
  configure  asks for option values and writes a renderer config file
  generate   runs pre-gen, the renderer, post-gen and check in one go
  options    prints the template options as a Markdown table`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			output.SetupLogging(cmd.ErrOrStderr(), verbose)
			output.Stdout = cmd.OutOrStdout()
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(newPreGenCmd())
	rootCmd.AddCommand(newPostGenCmd())
	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newConfigureCmd())
	rootCmd.AddCommand(newGenerateCmd())
	rootCmd.AddCommand(newOptionsCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := NewRootCmd().ExecuteContext(ctx)
	stop()
	if err == nil {
		return
	}

	var exitErr *cerrors.ExitError
	if !errors.As(err, &exitErr) || !exitErr.Printed {
		output.Error(err.Error())
	}
	os.Exit(cerrors.ExitCode(err))
}

// addOptionFlags registers a string flag for each named option.
func addOptionFlags(fs *pflag.FlagSet, names ...string) {
	for _, name := range names {
		desc := name
		if o, ok := option.Lookup(name); ok {
			desc = o.Description
		}
		fs.String(config.FlagName(name), "", fmt.Sprintf("%s (env: CUTTER_%s)", desc, strings.ToUpper(name)))
	}
}

func catalogueNames() []string {
	opts := option.Catalogue()
	names := make([]string, 0, len(opts))
	for _, o := range opts {
		names = append(names, o.Name)
	}
	return names
}

// loadValues merges the context file, environment and flags of cmd.
func loadValues(cmd *cobra.Command, contextFile string) (config.Context, error) {
	l := config.NewLoader()
	if err := l.BindFlags(cmd.Flags()); err != nil {
		return nil, err
	}

	values, err := l.Load(contextFile)
	if err != nil {
		return nil, &cerrors.ExitError{Code: cerrors.ExitUsageFailure, Err: err}
	}
	return values, nil
}

// reportError prints err the way the renderer expects hook failures and marks
// it as printed.
func reportError(cmd *cobra.Command, err error, code int) error {
	fmt.Fprintf(cmd.ErrOrStderr(), "ERROR: %s\n", err)
	return &cerrors.ExitError{Code: code, Err: err, Printed: true}
}
