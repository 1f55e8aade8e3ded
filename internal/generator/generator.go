// Package generator runs the project generation lifecycle: validate the options,
// let the external renderer materialize the template, then prune the result.
package generator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"shireesh.com/cutter/internal/cleanup"
	"shireesh.com/cutter/internal/config"
	cerrors "shireesh.com/cutter/internal/errors"
	"shireesh.com/cutter/internal/markers"
	"shireesh.com/cutter/internal/option"
	"shireesh.com/cutter/internal/output"
)

// Options configures Generate.
type Options struct {
	Template  string
	OutputDir string
	Values    config.Context

	// Markers overrides markers.DefaultMarkers for the final check.
	Markers []string
}

// Result describes a generated project.
type Result struct {
	ProjectDir string
	Values     config.Context
	Cleanup    *cleanup.Report
}

// Generate renders opts.Template into OutputDir/<project_slug>. On any failure
// after rendering started the project directory is removed again.
func Generate(ctx context.Context, r Renderer, opts Options) (res *Result, err error) {
	values := opts.Values.WithDefaults()
	if err := values.Validate(); err != nil {
		return nil, err
	}
	if err := PreGen(values); err != nil {
		return nil, err
	}

	outputDir := opts.OutputDir
	if outputDir == "" {
		outputDir = "."
	}
	projectDir := filepath.Join(outputDir, values[option.ProjectSlug])
	if _, err := os.Stat(projectDir); err == nil {
		return nil, &cerrors.DetailError{
			Type:     "generation failed",
			Message:  "project directory already exists",
			Location: projectDir,
			Hint:     "choose another project_slug or remove the directory",
			Cause:    cerrors.ErrAlreadyExists,
		}
	}

	defer func() {
		if err != nil {
			// ignore error to not overwrite original error
			_ = os.RemoveAll(projectDir)
		}
	}()

	output.Info("rendering template", "template", opts.Template, "dir", projectDir)
	if err := r.Render(ctx, RenderRequest{Template: opts.Template, OutputDir: outputDir, Values: values}); err != nil {
		return nil, err
	}
	if info, err := os.Stat(projectDir); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("renderer did not create %s", projectDir)
	}

	output.Info("removing obsolete files", "dir", projectDir)
	report, err := PostGen(projectDir, values, false)
	if err != nil {
		return nil, err
	}

	findings, err := Check(projectDir, opts.Markers)
	if err != nil {
		return nil, err
	}
	if len(findings) > 0 {
		return nil, findingsError(projectDir, findings)
	}

	return &Result{ProjectDir: projectDir, Values: values, Cleanup: report}, nil
}

// Check scans root for unresolved template markers.
func Check(root string, extra []string) ([]markers.Finding, error) {
	return markers.NewScanner(extra...).Scan(root)
}

func findingsError(root string, findings []markers.Finding) error {
	lines := make([]string, 0, len(findings))
	for _, f := range findings {
		lines = append(lines, f.String())
	}
	return &cerrors.DetailError{
		Type:     "unresolved template markers",
		Message:  strings.Join(lines, "\n"),
		Location: root,
		Cause:    cerrors.ErrUnresolvedMarker,
	}
}
