package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"shireesh.com/cutter/internal/config"
	cerrors "shireesh.com/cutter/internal/errors"
	"shireesh.com/cutter/internal/option"
	"shireesh.com/cutter/internal/output"
	"shireesh.com/cutter/internal/rules"
	"shireesh.com/cutter/internal/tui"
)

// prompter is swapped out in tests.
var prompter tui.Prompter = tui.Terminal{}

// userConfig is the renderer's user config file layout.
type userConfig struct {
	DefaultContext map[string]string `yaml:"default_context"`
}

func newConfigureCmd() *cobra.Command {
	var (
		out   string
		force bool
	)

	cmd := &cobra.Command{
		Use:   "configure",
		Short: "Ask for option values and write them to a renderer config file",
		Long: `Ask for every template option and write the answers as a renderer
user config file (a "default_context" mapping).

Options that depend on a disabled feature are not asked and keep their default.
The written file can be passed to the renderer with --config-file, or to
"cutter generate --context".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.ExpandPath(out)
			if err != nil {
				return err
			}
			if _, err := os.Stat(path); err == nil && !force {
				return &cerrors.DetailError{
					Type:     "configure failed",
					Message:  "config file already exists",
					Location: path,
					Hint:     "pass --force to overwrite it",
					Cause:    cerrors.ErrAlreadyExists,
				}
			}

			values, err := tui.Ask(prompter, option.Catalogue())
			if err != nil {
				return err
			}
			if err := rules.Validate(values); err != nil {
				return reportError(cmd, err, cerrors.ExitCode(err))
			}

			data, err := yaml.Marshal(userConfig{DefaultContext: values})
			if err != nil {
				return fmt.Errorf("encoding config: %w", err)
			}
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", path, err)
			}

			output.Println(output.FormatCheckmark("wrote " + output.StyleNoun.Render(path)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "cutter.yaml", "File to write")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing file")

	return cmd
}
