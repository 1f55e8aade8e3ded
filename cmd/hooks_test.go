package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cerrors "shireesh.com/cutter/internal/errors"
)

// execute runs the root command with args and returns what it wrote.
func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	var out, errOut bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)

	err = root.Execute()
	return out.String(), errOut.String(), err
}

func writeTree(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, name := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(name+"\n"), 0o644))
	}
}

func TestPreGen_Combinations(t *testing.T) {
	tests := []struct {
		grpc     string
		gateway  string
		wantCode int
	}{
		{"yes", "yes", cerrors.ExitSuccess},
		{"yes", "no", cerrors.ExitSuccess},
		{"no", "no", cerrors.ExitSuccess},
		{"no", "yes", cerrors.ExitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.grpc+"/"+tt.gateway, func(t *testing.T) {
			_, stderr, err := execute(t, "pre-gen",
				"--grpc-enabled", tt.grpc,
				"--grpc-gateway-enabled", tt.gateway)

			assert.Equal(t, tt.wantCode, cerrors.ExitCode(err))
			if tt.wantCode == cerrors.ExitFailure {
				assert.Contains(t, stderr,
					"ERROR: grpc_enabled needs to be set to 'yes' to enable the grpc_gateway_enabled option!")
				assert.ErrorIs(t, err, cerrors.ErrInvalidCombination)
			} else {
				assert.Empty(t, stderr)
			}
		})
	}
}

func TestPreGen_UnsetFlagsAreDisabled(t *testing.T) {
	_, _, err := execute(t, "pre-gen")
	assert.NoError(t, err)

	_, _, err = execute(t, "pre-gen", "--grpc-gateway-enabled", "yes")
	assert.Equal(t, cerrors.ExitFailure, cerrors.ExitCode(err))
}

func TestPreGen_InvalidTokens(t *testing.T) {
	tests := map[string]string{
		"unknown word": "maybe",
		"unrendered":   "{{ cookiecutter.grpc_enabled }}",
	}

	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			_, stderr, err := execute(t, "pre-gen", "--grpc-enabled", token, "--grpc-gateway-enabled", "no")

			assert.Equal(t, cerrors.ExitUsageFailure, cerrors.ExitCode(err))
			assert.ErrorIs(t, err, cerrors.ErrInvalidToken)
			assert.Contains(t, stderr, "grpc_enabled")
		})
	}
}

func TestPreGen_ContextFile(t *testing.T) {
	ctxFile := filepath.Join(t.TempDir(), "replay.json")
	require.NoError(t, os.WriteFile(ctxFile,
		[]byte(`{"cookiecutter": {"grpc_enabled": "no", "grpc_gateway_enabled": "yes", "_extensions": ["x"]}}`), 0o644))

	_, stderr, err := execute(t, "pre-gen", "--context", ctxFile)
	assert.Equal(t, cerrors.ExitFailure, cerrors.ExitCode(err))
	assert.Contains(t, stderr, "grpc_gateway_enabled")

	// flags win over the file
	_, _, err = execute(t, "pre-gen", "--context", ctxFile, "--grpc-enabled", "yes")
	assert.NoError(t, err)
}

func TestPreGen_MissingContextFile(t *testing.T) {
	_, _, err := execute(t, "pre-gen", "--context", filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Equal(t, cerrors.ExitUsageFailure, cerrors.ExitCode(err))
}

var projectFiles = []string{
	"api/proto/v1/service.proto",
	"api/openapi.v1.yml",
	"tools.go",
	"buf.gen.yaml",
	"buf.yaml",
	"internal/server/server.go",
	"go.mod",
}

func TestPostGen_GRPCDisabled(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, projectFiles...)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "pkg", "empty"), 0o755))

	stdout, _, err := execute(t, "post-gen", "--grpc-enabled", "no", "--dir", dir)
	require.NoError(t, err)

	for _, gone := range []string{"api/proto", "tools.go", "buf.gen.yaml", "buf.yaml", "pkg"} {
		assert.NoFileExists(t, filepath.Join(dir, gone))
		assert.NoDirExists(t, filepath.Join(dir, gone))
	}
	assert.FileExists(t, filepath.Join(dir, "api", "openapi.v1.yml"))
	assert.FileExists(t, filepath.Join(dir, "internal", "server", "server.go"))

	assert.Contains(t, stdout, "tools.go")
	assert.Contains(t, stdout, "pkg/empty/")
	assert.Contains(t, stdout, "removed grpc feature files")
}

func TestPostGen_GRPCEnabled(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, projectFiles...)

	stdout, _, err := execute(t, "post-gen", "--grpc-enabled", "yes", "--dir", dir)
	require.NoError(t, err)

	assert.NoFileExists(t, filepath.Join(dir, "api", "openapi.v1.yml"))
	assert.FileExists(t, filepath.Join(dir, "api", "proto", "v1", "service.proto"))
	assert.FileExists(t, filepath.Join(dir, "tools.go"))
	assert.Contains(t, stdout, "api/openapi.v1.yml")
	assert.Contains(t, stdout, "removed openapi feature files")
}

func TestPostGen_MissingFilesReported(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, "go.mod")

	stdout, stderr, err := execute(t, "post-gen", "--grpc-enabled", "yes", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, stdout, "missing")
	assert.Contains(t, stderr, "feature files not found in project")
	assert.Contains(t, stderr, "api/openapi.v1.yml")
}

func TestPostGen_DryRun(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, projectFiles...)

	stdout, _, err := execute(t, "post-gen", "--grpc-enabled", "no", "--dir", dir, "--dry-run")
	require.NoError(t, err)

	assert.Contains(t, stdout, "would remove")
	assert.FileExists(t, filepath.Join(dir, "tools.go"))
	assert.DirExists(t, filepath.Join(dir, "api", "proto"))
}

func TestPostGen_InvalidToken(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, projectFiles...)

	_, stderr, err := execute(t, "post-gen", "--grpc-enabled", "{{ cookiecutter.grpc_enabled }}", "--dir", dir)
	assert.Equal(t, cerrors.ExitUsageFailure, cerrors.ExitCode(err))
	assert.Contains(t, stderr, "ERROR:")
	assert.FileExists(t, filepath.Join(dir, "tools.go"), "nothing is removed on a bad token")
}
