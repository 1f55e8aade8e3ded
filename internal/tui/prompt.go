// Package tui collects option values from a terminal.
package tui

import (
	"github.com/manifoldco/promptui"

	"shireesh.com/cutter/internal/option"
)

// Prompter asks for a single value.
type Prompter interface {
	// Input asks for free text. validate is called on every candidate value.
	Input(label, def string, validate func(string) error) (string, error)

	// Choose asks for one of a fixed list of values.
	Choose(label string, choices []string, def string) (string, error)
}

// Terminal prompts with promptui for text and a bubbletea list for choices.
type Terminal struct{}

func (Terminal) Input(label, def string, validate func(string) error) (string, error) {
	prompt := promptui.Prompt{
		Label:   label,
		Default: def,
		Validate: func(s string) error {
			if validate == nil {
				return nil
			}
			return validate(s)
		},
	}
	return prompt.Run()
}

func (Terminal) Choose(label string, choices []string, def string) (string, error) {
	return Select(label, choices, def)
}

// Ask prompts for every catalogue option whose dependencies are met, in order.
// Options that are skipped take their default so later defaults can use them.
func Ask(p Prompter, opts []option.Option) (map[string]string, error) {
	values := make(map[string]string, len(opts))

	for _, o := range opts {
		def := o.Default(values)
		if !o.DependenciesMet(values) {
			values[o.Name] = def
			continue
		}

		label := o.Name
		if o.Description != "" {
			label = o.Description + " (" + o.Name + ")"
		}

		var (
			v   string
			err error
		)
		switch o.Kind {
		case option.Flag:
			v, err = askFlag(p, label, def)
		default:
			v, err = p.Input(label, def, o.Validate)
		}
		if err != nil {
			return nil, err
		}
		values[o.Name] = v
	}

	return values, nil
}

func askFlag(p Prompter, label, def string) (string, error) {
	initial := option.No
	if v, err := option.ParseFlag(label, def); err == nil {
		initial = option.FormatFlag(v)
	}
	return p.Choose(label, []string{option.No, option.Yes}, initial)
}
