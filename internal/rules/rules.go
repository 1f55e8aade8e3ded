// Package rules validates option combinations before a project is rendered.
package rules

import (
	"fmt"
	"strings"

	cerrors "shireesh.com/cutter/internal/errors"
	"shireesh.com/cutter/internal/option"
)

// Rule forbids enabling Option while Requires is disabled.
type Rule struct {
	Option   string
	Requires string
	Message  string
}

// Table is the set of rules checked by the pre-generation hook.
var Table = []Rule{
	{
		Option:   option.GRPCGatewayEnabled,
		Requires: option.GRPCEnabled,
		Message:  "grpc_enabled needs to be set to 'yes' to enable the grpc_gateway_enabled option!",
	},
}

// Violation is a broken rule.
type Violation struct {
	Rule Rule
}

func (v *Violation) Error() string {
	return v.Rule.Message
}

func (v *Violation) Unwrap() error {
	return cerrors.ErrInvalidCombination
}

// Violations collects every rule broken by one set of values.
type Violations []*Violation

func (vs Violations) Error() string {
	msgs := make([]string, 0, len(vs))
	for _, v := range vs {
		msgs = append(msgs, v.Error())
	}
	return strings.Join(msgs, "; ")
}

func (vs Violations) Unwrap() []error {
	errs := make([]error, 0, len(vs))
	for _, v := range vs {
		errs = append(errs, v)
	}
	return errs
}

// Validate checks values against Table.
func Validate(values map[string]string) error {
	return ValidateWith(Table, values)
}

// ValidateWith checks values against the given rules. Unset flags count as
// disabled; malformed flag tokens are reported before any rule is evaluated.
func ValidateWith(table []Rule, values map[string]string) error {
	flags := make(map[string]bool)
	for _, r := range table {
		for _, name := range []string{r.Option, r.Requires} {
			if _, seen := flags[name]; seen {
				continue
			}
			token, ok := values[name]
			if !ok {
				flags[name] = false
				continue
			}
			v, err := option.ParseFlag(name, token)
			if err != nil {
				return fmt.Errorf("reading %s: %w", name, err)
			}
			flags[name] = v
		}
	}

	var violations Violations
	for _, r := range table {
		if flags[r.Option] && !flags[r.Requires] {
			violations = append(violations, &Violation{Rule: r})
		}
	}

	if len(violations) > 0 {
		return violations
	}
	return nil
}
