package cmd

import (
	"github.com/spf13/cobra"

	"shireesh.com/cutter/internal/generator"
	"shireesh.com/cutter/internal/output"
)

// newRenderer is swapped out in tests.
var newRenderer = func(binary string) generator.Renderer {
	return generator.NewCookiecutter(binary)
}

func newGenerateCmd() *cobra.Command {
	var (
		contextFile string
		outputDir   string
		binary      string
		markerList  []string
	)

	cmd := &cobra.Command{
		Use:   "generate <template>",
		Short: "Render a template and run both hooks around it",
		Long: `Render a template with the external renderer and run both hooks around it.

Values come from --context, CUTTER_* environment variables and the option
flags, in increasing order of precedence. Unset options take their defaults.
The renderer runs with its own hooks disabled. If anything fails after the
renderer started, the generated project directory is removed.

Examples:
  cutter generate gh:acme/go-service-template --project-name "Billing API" --grpc-enabled yes
  cutter generate ./template --context cutter.yaml -o ./out`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := loadValues(cmd, contextFile)
			if err != nil {
				return err
			}

			res, err := generator.Generate(cmd.Context(), newRenderer(binary), generator.Options{
				Template:  args[0],
				OutputDir: outputDir,
				Values:    values,
				Markers:   markerList,
			})
			if err != nil {
				return err
			}

			for _, p := range res.Cleanup.Removed {
				output.Println(output.FormatPathLine(p, output.StatusRemoved))
			}
			for _, p := range res.Cleanup.Pruned {
				output.Println(output.FormatPathLine(p+"/", output.StatusPruned))
			}
			output.Println(output.FormatCheckmark("generated " + output.StyleNoun.Render(res.ProjectDir)))
			return nil
		},
	}

	addOptionFlags(cmd.Flags(), catalogueNames()...)
	cmd.Flags().StringVarP(&contextFile, "context", "c", "", "YAML or JSON file with option values")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", ".", "Directory the project is created in")
	cmd.Flags().StringVar(&binary, "renderer", "cookiecutter", "Renderer executable")
	cmd.Flags().StringSliceVarP(&markerList, "marker", "m", nil, "Marker to search for instead of the defaults (repeatable)")

	return cmd
}
