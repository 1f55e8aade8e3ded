// Package option describes the template's options and how their tokens are read.
package option

import (
	"fmt"
	"regexp"
	"strings"

	cerrors "shireesh.com/cutter/internal/errors"
)

// Option names understood by the hooks.
const (
	ProjectName        = "project_name"
	ProjectSlug        = "project_slug"
	ProjectDescription = "project_description"
	AppName            = "app_name"
	ModuleName         = "module_name"
	GolangciVersion    = "golangci_version"
	GRPCEnabled        = "grpc_enabled"
	GRPCGatewayEnabled = "grpc_gateway_enabled"
)

// Kind separates free text options from yes/no feature flags.
type Kind int

const (
	Text Kind = iota
	Flag
)

// Option is a single template parameter.
type Option struct {
	Name        string
	Description string
	Kind        Kind

	// Default returns the default token given the values chosen so far.
	Default func(values map[string]string) string

	// DependsOn lists flag options that must be enabled for this option to be asked.
	DependsOn []string

	// Pattern, if set, must match a text value.
	Pattern     *regexp.Regexp
	PatternHint string
}

// Validate checks a token against the option's kind and pattern.
func (o Option) Validate(token string) error {
	if err := CheckRendered(o.Name, token); err != nil {
		return err
	}

	if o.Kind == Flag {
		_, err := ParseFlag(o.Name, token)
		return err
	}

	if strings.TrimSpace(token) == "" {
		return cerrors.NewTokenError(o.Name, token, "value must not be empty")
	}

	if o.Pattern != nil && !o.Pattern.MatchString(token) {
		return cerrors.NewTokenError(o.Name, token, o.PatternHint)
	}

	return nil
}

// DependenciesMet reports whether every flag this option depends on is enabled.
// A dependency that is unset or not a valid flag counts as disabled.
func (o Option) DependenciesMet(values map[string]string) bool {
	for _, dep := range o.DependsOn {
		token, ok := values[dep]
		if !ok {
			return false
		}

		enabled, err := ParseFlag(dep, token)
		if err != nil || !enabled {
			return false
		}
	}

	return true
}

func static(v string) func(map[string]string) string {
	return func(map[string]string) string { return v }
}

// Catalogue returns the options in the order they are asked.
func Catalogue() []Option {
	return []Option{
		{
			Name:        ProjectName,
			Description: "Name of the project",
			Default:     static("Awesome Project"),
		},
		{
			Name:        ProjectSlug,
			Description: "Directory name of the generated project",
			Default: func(values map[string]string) string {
				return Slugify(values[ProjectName])
			},
			Pattern:     regexp.MustCompile(`^[a-z0-9]+([_-][a-z0-9]+)*$`),
			PatternHint: "use lowercase letters, digits, dashes and underscores",
		},
		{
			Name:        ProjectDescription,
			Description: "Short description of the project",
			Default:     static("A short description of the project"),
		},
		{
			Name:        AppName,
			Description: "Name of the application binary",
			Default: func(values map[string]string) string {
				return strings.ReplaceAll(values[ProjectSlug], "_", "-")
			},
			Pattern:     regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_-]*$`),
			PatternHint: "start with a letter, then letters, digits, dashes or underscores",
		},
		{
			Name:        ModuleName,
			Description: "Go module path",
			Default: func(values map[string]string) string {
				return fmt.Sprintf("github.com/user/%s", values[ProjectSlug])
			},
			Pattern:     regexp.MustCompile(`^[a-zA-Z0-9._~-]+(/[a-zA-Z0-9._~-]+)*$`),
			PatternHint: "use a module path such as github.com/user/repo",
		},
		{
			Name:        GolangciVersion,
			Description: "golangci-lint version used in CI",
			Default:     static("1.55.2"),
			Pattern:     regexp.MustCompile(`^\d+\.\d+\.\d+$`),
			PatternHint: "use a semantic version such as 1.55.2",
		},
		{
			Name:        GRPCEnabled,
			Description: "Generate a gRPC service instead of an OpenAPI one",
			Kind:        Flag,
			Default:     static(No),
		},
		{
			Name:        GRPCGatewayEnabled,
			Description: "Expose the gRPC service through a REST gateway",
			Kind:        Flag,
			Default:     static(No),
			DependsOn:   []string{GRPCEnabled},
		},
	}
}

// Lookup returns the catalogue entry with the given name.
func Lookup(name string) (Option, bool) {
	for _, o := range Catalogue() {
		if o.Name == name {
			return o, true
		}
	}
	return Option{}, false
}

// Slugify derives a project slug from a project name.
func Slugify(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")
}
