// Package config loads the option values a hook runs with.
package config

import (
	"fmt"
	"os"
	"sort"

	"shireesh.com/cutter/internal/option"
)

// Context maps option names to the tokens the renderer substituted.
type Context map[string]string

// Flag parses the named option as a yes/no flag. Unset flags take the
// catalogue default.
func (c Context) Flag(name string) (bool, error) {
	token, ok := c[name]
	if !ok {
		if o, found := option.Lookup(name); found {
			token = o.Default(c)
		} else {
			return false, nil
		}
	}
	return option.ParseFlag(name, token)
}

// Keys returns the option names in sorted order.
func (c Context) Keys() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// WithDefaults returns a copy where every catalogue option that is unset
// carries its default, computed in catalogue order.
func (c Context) WithDefaults() Context {
	out := make(Context, len(c))
	for k, v := range c {
		out[k] = v
	}
	for _, o := range option.Catalogue() {
		if _, ok := out[o.Name]; !ok {
			out[o.Name] = o.Default(out)
		}
	}
	return out
}

// Validate checks every catalogue option present in the context.
func (c Context) Validate() error {
	for _, o := range option.Catalogue() {
		token, ok := c[o.Name]
		if !ok {
			continue
		}
		if err := o.Validate(token); err != nil {
			return err
		}
	}
	return nil
}

// ExpandPath resolves a leading ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if len(path) == 0 || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return home + path[1:], nil
}
