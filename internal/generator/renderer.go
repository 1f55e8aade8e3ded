package generator

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"

	"shireesh.com/cutter/internal/config"
	"shireesh.com/cutter/internal/output"
)

// RenderRequest describes one invocation of the external renderer.
type RenderRequest struct {
	Template  string
	OutputDir string
	Values    config.Context
}

// Renderer materializes a template into OutputDir.
type Renderer interface {
	Render(ctx context.Context, req RenderRequest) error
}

// Cookiecutter runs the cookiecutter CLI with hooks disabled; the hooks run
// in-process around it.
type Cookiecutter struct {
	Binary string
	Stdout io.Writer
	Stderr io.Writer
}

// NewCookiecutter returns a renderer writing through to the process streams.
func NewCookiecutter(binary string) *Cookiecutter {
	if binary == "" {
		binary = "cookiecutter"
	}
	return &Cookiecutter{Binary: binary, Stdout: os.Stdout, Stderr: os.Stderr}
}

// Args returns the command line arguments for req.
func (c *Cookiecutter) Args(req RenderRequest) []string {
	args := []string{
		req.Template,
		"--no-input",
		"--accept-hooks", "no",
		"--output-dir", req.OutputDir,
	}
	for _, k := range req.Values.Keys() {
		args = append(args, fmt.Sprintf("%s=%s", k, req.Values[k]))
	}
	return args
}

func (c *Cookiecutter) Render(ctx context.Context, req RenderRequest) error {
	cmd := exec.CommandContext(ctx, c.Binary, c.Args(req)...)
	cmd.Stdout = c.Stdout
	cmd.Stderr = c.Stderr

	output.Debug("running renderer", "binary", c.Binary, "template", req.Template)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("running %s: %w", c.Binary, err)
	}
	return nil
}
