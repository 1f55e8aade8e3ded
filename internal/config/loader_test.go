package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cerrors "shireesh.com/cutter/internal/errors"
	"shireesh.com/cutter/internal/option"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestReadContextFile(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name:    "flat yaml",
			file:    "values.yaml",
			content: "grpc_enabled: yes\ngrpc_gateway_enabled: \"no\"\nproject_slug: demo\n",
		},
		{
			name:    "replay json",
			file:    "replay.json",
			content: `{"cookiecutter": {"grpc_enabled": "yes", "grpc_gateway_enabled": "no", "project_slug": "demo", "_extensions": ["x"]}}`,
		},
		{
			name:    "user config",
			file:    "config.yaml",
			content: "default_context:\n  grpc_enabled: \"yes\"\n  grpc_gateway_enabled: false\n  project_slug: demo\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, err := ReadContextFile(writeFile(t, tt.file, tt.content))
			require.NoError(t, err)

			assert.Equal(t, "demo", ctx[option.ProjectSlug])
			grpc, err := ctx.Flag(option.GRPCEnabled)
			require.NoError(t, err)
			assert.True(t, grpc)
			gateway, err := ctx.Flag(option.GRPCGatewayEnabled)
			require.NoError(t, err)
			assert.False(t, gateway)
			assert.NotContains(t, ctx, "_extensions")
		})
	}
}

func TestReadContextFile_Errors(t *testing.T) {
	_, err := ReadContextFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = ReadContextFile(writeFile(t, "bad.yaml", "grpc_enabled: [unterminated"))
	assert.Error(t, err)
}

func TestLoader_Precedence(t *testing.T) {
	file := writeFile(t, "values.yaml", "grpc_enabled: \"no\"\ngrpc_gateway_enabled: \"no\"\nproject_name: From File\n")

	t.Setenv("CUTTER_GRPC_ENABLED", "yes")
	t.Setenv("CUTTER_GRPC_GATEWAY_ENABLED", "yes")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String(FlagName(option.GRPCGatewayEnabled), "", "")
	fs.String(FlagName(option.ProjectSlug), "", "")
	require.NoError(t, fs.Parse([]string{"--grpc-gateway-enabled=no"}))

	l := NewLoader()
	require.NoError(t, l.BindFlags(fs))

	ctx, err := l.Load(file)
	require.NoError(t, err)

	assert.Equal(t, "yes", ctx[option.GRPCEnabled], "env beats file")
	assert.Equal(t, "no", ctx[option.GRPCGatewayEnabled], "flag beats env")
	assert.Equal(t, "From File", ctx[option.ProjectName])
	assert.NotContains(t, ctx, option.ProjectSlug, "unchanged flags are not values")
}

func TestLoader_NoFile(t *testing.T) {
	t.Setenv("CUTTER_GRPC_ENABLED", "yes")

	ctx, err := NewLoader().Load("")
	require.NoError(t, err)
	assert.Equal(t, Context{option.GRPCEnabled: "yes"}, ctx)
}

func TestLoader_EmptyValuesFallBackToDefaults(t *testing.T) {
	file := writeFile(t, "values.yaml", "grpc_enabled: \"\"\nproject_description:\nproject_name: Kept\n")

	ctx, err := NewLoader().Load(file)
	require.NoError(t, err)
	assert.Equal(t, Context{option.ProjectName: "Kept"}, ctx)

	v, err := ctx.Flag(option.GRPCEnabled)
	require.NoError(t, err)
	assert.False(t, v)
}

func TestContext_Flag(t *testing.T) {
	ctx := Context{option.GRPCEnabled: "maybe"}

	_, err := ctx.Flag(option.GRPCEnabled)
	assert.ErrorIs(t, err, cerrors.ErrInvalidToken)

	v, err := ctx.Flag(option.GRPCGatewayEnabled)
	require.NoError(t, err)
	assert.False(t, v, "unset flag takes its default")

	v, err = ctx.Flag("not_an_option")
	require.NoError(t, err)
	assert.False(t, v)
}

func TestContext_WithDefaults(t *testing.T) {
	ctx := Context{option.ProjectName: "HeyDude Test Project", "extra": "kept"}.WithDefaults()

	assert.Equal(t, "heydude_test_project", ctx[option.ProjectSlug])
	assert.Equal(t, "no", ctx[option.GRPCEnabled])
	assert.Equal(t, "kept", ctx["extra"])
	assert.NoError(t, ctx.Validate())
}

func TestContext_Validate(t *testing.T) {
	assert.ErrorIs(t, Context{option.ProjectSlug: "Bad Slug"}.Validate(), cerrors.ErrInvalidToken)
	assert.NoError(t, Context{"unknown": "anything"}.Validate())
}

func TestContext_Keys(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, Context{"c": "", "a": "", "b": ""}.Keys())
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := ExpandPath("~/cutter.yaml")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "cutter.yaml"), got)

	got, err = ExpandPath("/abs/path")
	require.NoError(t, err)
	assert.Equal(t, "/abs/path", got)
}
