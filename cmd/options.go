package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/spf13/cobra"

	"shireesh.com/cutter/internal/config"
	"shireesh.com/cutter/internal/option"
	"shireesh.com/cutter/internal/output"
)

const optionsDoc = `<!-- Code generated by cutter options. DO NOT EDIT. -->
# Options

Options whose dependencies are disabled are not asked and keep their default.
Defaults of derived options are shown for the default project name.

| Name | Description | Default | Depends on |
| :--- | :---------- | :------ | :--------- |
{{- range .}}
| {{ .Name | code }} | {{ .Description }} | {{ .Default | code }} | {{ range $i, $d := .DependsOn }}{{ if $i }}, {{ end }}{{ $d | code }}{{ end }} |
{{- end}}
`

var optionsTmpl = template.Must(template.New("options").Funcs(template.FuncMap{
	"code": func(s string) string {
		if s == "" {
			return ""
		}
		return "`" + s + "`"
	},
}).Parse(optionsDoc))

type optionRow struct {
	Name        string
	Description string
	Default     string
	DependsOn   []string
}

func optionRows() []optionRow {
	defaults := config.Context{}.WithDefaults()

	var rows []optionRow
	for _, o := range option.Catalogue() {
		rows = append(rows, optionRow{
			Name:        o.Name,
			Description: strings.ReplaceAll(o.Description, "\n", "<br>"),
			Default:     defaults[o.Name],
			DependsOn:   o.DependsOn,
		})
	}
	return rows
}

func newOptionsCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "options",
		Short: "Print the template options as a Markdown table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var w io.Writer = output.Stdout
			if out != "" {
				f, err := os.Create(out)
				if err != nil {
					return fmt.Errorf("creating %s: %w", out, err)
				}
				defer f.Close()
				w = f
			}

			if err := optionsTmpl.Execute(w, optionRows()); err != nil {
				return fmt.Errorf("rendering options: %w", err)
			}
			if out != "" {
				output.Println(output.FormatCheckmark("wrote " + output.StyleNoun.Render(out)))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "File to write instead of stdout")

	return cmd
}
