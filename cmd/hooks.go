package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	cerrors "shireesh.com/cutter/internal/errors"
	"shireesh.com/cutter/internal/generator"
	"shireesh.com/cutter/internal/option"
	"shireesh.com/cutter/internal/output"
)

func newPreGenCmd() *cobra.Command {
	var contextFile string

	cmd := &cobra.Command{
		Use:   "pre-gen",
		Short: "Validate option values before the template is rendered",
		Long: `Validate option values before the template is rendered.

Exits with status 1 when grpc_gateway_enabled is set while grpc_enabled is not.
The renderer substitutes the values into the hook wrapper, for example:

  cutter pre-gen --grpc-enabled "{{ cookiecutter.grpc_enabled }}" \
                 --grpc-gateway-enabled "{{ cookiecutter.grpc_gateway_enabled }}"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := loadValues(cmd, contextFile)
			if err != nil {
				return err
			}

			if err := generator.PreGen(values); err != nil {
				return reportError(cmd, err, cerrors.ExitCode(err))
			}

			output.Debug("option combination is valid")
			return nil
		},
	}

	addOptionFlags(cmd.Flags(), option.GRPCEnabled, option.GRPCGatewayEnabled)
	cmd.Flags().StringVarP(&contextFile, "context", "c", "", "YAML or JSON file with option values")

	return cmd
}

func newPostGenCmd() *cobra.Command {
	var (
		contextFile string
		dir         string
		dryRun      bool
	)

	cmd := &cobra.Command{
		Use:   "post-gen",
		Short: "Remove unused feature files and empty directories from a rendered project",
		Long: `Remove unused feature files and empty directories from a rendered project.

With grpc_enabled=yes the OpenAPI files are removed:
  api/openapi.v1.yml
otherwise the gRPC files are removed:
  api/proto, tools.go, buf.gen.yaml, buf.yaml
Afterwards every directory that is empty, directly or because its
subdirectories were emptied, is deleted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := loadValues(cmd, contextFile)
			if err != nil {
				return err
			}

			report, err := generator.PostGen(dir, values, dryRun)
			if err != nil {
				return reportError(cmd, err, cerrors.ExitCode(err))
			}

			removedStatus, prunedStatus := output.StatusRemoved, output.StatusPruned
			if dryRun {
				removedStatus, prunedStatus = output.StatusPlanned, output.StatusPlanned
			}
			for _, p := range report.Removed {
				output.Println(output.FormatPathLine(p, removedStatus))
			}
			for _, p := range report.Missing {
				output.Println(output.FormatPathLine(p, output.StatusMissing))
			}
			for _, p := range report.Pruned {
				output.Println(output.FormatPathLine(p+"/", prunedStatus))
			}
			output.Println(output.FormatCheckmark(fmt.Sprintf("removed %s feature files", report.Set)))
			return nil
		},
	}

	addOptionFlags(cmd.Flags(), option.GRPCEnabled)
	cmd.Flags().StringVarP(&contextFile, "context", "c", "", "YAML or JSON file with option values")
	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "Root of the rendered project")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report what would be removed without deleting anything")

	return cmd
}
