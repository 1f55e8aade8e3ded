package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"shireesh.com/cutter/internal/option"
)

// Environment variable prefix, e.g. CUTTER_GRPC_ENABLED.
const envPrefix = "CUTTER"

// Sections that wrap the option mapping in files written by the renderer.
const (
	replaySection     = "cookiecutter"
	userConfigSection = "default_context"
)

// Loader merges option values from a context file, the environment and flags.
// Flags win over the environment, which wins over the file.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a loader with environment bindings for every catalogue option.
func NewLoader() *Loader {
	v := viper.New()

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	for _, o := range option.Catalogue() {
		_ = v.BindEnv(o.Name)
	}

	return &Loader{v: v}
}

// FlagName returns the command-line flag name for an option.
func FlagName(name string) string {
	return strings.ReplaceAll(name, "_", "-")
}

// BindFlags binds every catalogue option that has a matching flag in fs.
func (l *Loader) BindFlags(fs *pflag.FlagSet) error {
	for _, o := range option.Catalogue() {
		f := fs.Lookup(FlagName(o.Name))
		if f == nil {
			continue
		}
		if err := l.v.BindPFlag(o.Name, f); err != nil {
			return fmt.Errorf("binding flag %s: %w", f.Name, err)
		}
	}
	return nil
}

// Load returns the merged context. An empty contextFile reads no file.
// Empty values are dropped so the option falls back to its default.
func (l *Loader) Load(contextFile string) (Context, error) {
	ctx := Context{}

	if contextFile != "" {
		fileCtx, err := ReadContextFile(contextFile)
		if err != nil {
			return nil, err
		}
		for k, v := range fileCtx {
			if strings.TrimSpace(v) == "" {
				continue
			}
			ctx[k] = v
		}
		if err := l.v.MergeConfigMap(toAny(fileCtx)); err != nil {
			return nil, fmt.Errorf("merging context file: %w", err)
		}
	}

	for _, o := range option.Catalogue() {
		if !l.v.IsSet(o.Name) {
			continue
		}
		// an empty token means "use the default"
		if v := l.v.GetString(o.Name); strings.TrimSpace(v) != "" {
			ctx[o.Name] = v
		}
	}

	return ctx, nil
}

// ReadContextFile reads a yaml or json file holding option values. The mapping
// may be flat, a replay file nested under "cookiecutter", or a user config
// nested under "default_context".
func ReadContextFile(path string) (Context, error) {
	expanded, err := ExpandPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(expanded)
	if err != nil {
		return nil, fmt.Errorf("reading context file: %w", err)
	}

	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing context file %s: %w", path, err)
	}

	for _, section := range []string{replaySection, userConfigSection} {
		if nested, ok := raw[section].(map[string]interface{}); ok {
			raw = nested
			break
		}
	}

	ctx := make(Context, len(raw))
	for k, v := range raw {
		switch val := v.(type) {
		case nil:
			ctx[k] = ""
		case bool:
			ctx[k] = option.FormatFlag(val)
		case string, int, int64, float64:
			ctx[k] = fmt.Sprint(val)
		default:
			// cookiecutter keeps private variables (e.g. _extensions) as lists
			// and maps; hooks only read scalar options.
			continue
		}
	}
	return ctx, nil
}

func toAny(ctx Context) map[string]interface{} {
	m := make(map[string]interface{}, len(ctx))
	for k, v := range ctx {
		m[k] = v
	}
	return m
}
