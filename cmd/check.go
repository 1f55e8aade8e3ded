package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	cerrors "shireesh.com/cutter/internal/errors"
	"shireesh.com/cutter/internal/generator"
	"shireesh.com/cutter/internal/output"
)

func newCheckCmd() *cobra.Command {
	var extraMarkers []string

	cmd := &cobra.Command{
		Use:   "check [dir]",
		Short: "Report template markers left in a generated project",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}

			findings, err := generator.Check(dir, extraMarkers)
			if err != nil {
				return err
			}

			if len(findings) == 0 {
				output.Println(output.FormatCheckmark("no unresolved template markers in " + output.StyleNoun.Render(dir)))
				return nil
			}

			for _, f := range findings {
				output.Println(output.FormatCross(f.String()))
			}
			err = fmt.Errorf("%w: %d finding(s) in %s", cerrors.ErrUnresolvedMarker, len(findings), dir)
			return reportError(cmd, err, cerrors.ExitFailure)
		},
	}

	cmd.Flags().StringSliceVarP(&extraMarkers, "marker", "m", nil,
		"Marker to search for instead of the defaults (repeatable)")

	return cmd
}
